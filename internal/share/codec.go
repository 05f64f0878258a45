// Package share encodes boards into URL-safe strings and share links.
package share

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/daap14/tiermaker/internal/board"
)

// Param is the query parameter that carries an encoded board.
const Param = "data"

// ErrNoPayload is returned when a link carries no data parameter.
var ErrNoPayload = errors.New("link has no shared tier list")

// payload is the shared subset of a board.
type payload struct {
	Title string       `json:"title"`
	Tiers []board.Tier `json:"columns"`
	Cards []board.Card `json:"cards"`
}

// Encode renders b as base64-encoded JSON.
func Encode(b board.Board) (string, error) {
	if b.Tiers == nil {
		b.Tiers = []board.Tier{}
	}
	if b.Cards == nil {
		b.Cards = []board.Card{}
	}
	data, err := json.Marshal(payload{Title: b.Title, Tiers: b.Tiers, Cards: b.Cards})
	if err != nil {
		return "", fmt.Errorf("marshaling shared board: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// Decode reverses Encode and returns the raw JSON. Standard and URL-safe
// alphabets are accepted, with or without padding. Payloads that are not valid
// UTF-8 are read as Latin-1, one byte per character, which is how browser
// btoa links encode text. The result is untrusted.
func Decode(encoded string) ([]byte, error) {
	// Query decoding turns an unescaped '+' into a space.
	encoded = strings.ReplaceAll(strings.TrimSpace(encoded), " ", "+")
	if encoded == "" {
		return nil, ErrNoPayload
	}
	trimmed := strings.TrimRight(encoded, "=")
	for _, enc := range []*base64.Encoding{base64.RawStdEncoding, base64.RawURLEncoding} {
		if data, err := enc.DecodeString(trimmed); err == nil {
			return latin1ToUTF8(data), nil
		}
	}
	return nil, fmt.Errorf("decoding shared board: invalid base64")
}

func latin1ToUTF8(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}
	out := make([]byte, 0, len(data)*2)
	for _, b := range data {
		out = utf8.AppendRune(out, rune(b))
	}
	return out
}

// Link returns baseURL with the encoded board set as its data parameter.
func Link(baseURL, encoded string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parsing base url: %w", err)
	}
	q := u.Query()
	q.Set(Param, encoded)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// FromLink extracts the encoded board from a share link.
func FromLink(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("parsing share link: %w", err)
	}
	encoded := u.Query().Get(Param)
	if encoded == "" {
		return "", ErrNoPayload
	}
	return encoded, nil
}
