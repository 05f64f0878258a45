package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/daap14/tiermaker/internal/board"
	"github.com/daap14/tiermaker/internal/persistence"
	"github.com/daap14/tiermaker/internal/share"
	"github.com/daap14/tiermaker/internal/validation"
)

// ErrNoGateway is returned by persistence operations on a Store built without one.
var ErrNoGateway = errors.New("no persistence gateway configured")

// ErrInvalidPayload is wrapped by every PayloadError.
var ErrInvalidPayload = errors.New("invalid tier list data")

// PayloadError lists the reasons a loaded board was rejected.
type PayloadError struct {
	Fields []validation.FieldError
}

func (e *PayloadError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidPayload, validation.Join(e.Fields))
}

func (e *PayloadError) Unwrap() error {
	return ErrInvalidPayload
}

// savedList is the blob written to the gateway.
type savedList struct {
	board.Board
	SavedAt string `json:"savedAt"`
}

// SavedList describes one saved board.
type SavedList struct {
	Name    string
	Title   string
	SavedAt time.Time
}

// Save writes the current board under a key derived from its title,
// overwriting any earlier save with the same sanitized title.
func (s *Store) Save(ctx context.Context) (string, error) {
	if s.gateway == nil {
		return "", ErrNoGateway
	}
	blob, err := json.Marshal(savedList{
		Board:   s.board.Clone(),
		SavedAt: s.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return "", fmt.Errorf("marshaling saved list: %w", err)
	}
	key := persistence.Key(s.board.Title)
	if err := s.gateway.Put(ctx, key, blob); err != nil {
		return "", fmt.Errorf("saving %q: %w", key, err)
	}
	return persistence.Name(key), nil
}

// Load replaces the board with the save stored under name and clears history.
// On any failure the current board is left untouched.
func (s *Store) Load(ctx context.Context, name string) error {
	if s.gateway == nil {
		return ErrNoGateway
	}
	blob, err := s.gateway.Get(ctx, persistence.KeyPrefix+name)
	if err != nil {
		return fmt.Errorf("loading %q: %w", name, err)
	}
	return s.LoadFromData(blob)
}

// LoadFromData replaces the board with an untrusted JSON payload
// ({title, columns, cards}) and clears history. Rejected payloads leave the
// board untouched and return a *PayloadError.
func (s *Store) LoadFromData(raw []byte) error {
	b, errs := validation.ValidateBoard(raw)
	if len(errs) > 0 {
		return &PayloadError{Fields: errs}
	}
	s.replace(*b)
	return nil
}

// ShareLink encodes the current board into a link rooted at baseURL.
func (s *Store) ShareLink(baseURL string) (string, error) {
	encoded, err := share.Encode(s.board)
	if err != nil {
		return "", err
	}
	return share.Link(baseURL, encoded)
}

// OpenShareLink loads the board carried by a share link.
func (s *Store) OpenShareLink(rawURL string) error {
	encoded, err := share.FromLink(rawURL)
	if err != nil {
		return err
	}
	raw, err := share.Decode(encoded)
	if err != nil {
		return err
	}
	return s.LoadFromData(raw)
}

// ListSaved returns every saved board, newest first. Unreadable saves are
// skipped.
func (s *Store) ListSaved(ctx context.Context) ([]SavedList, error) {
	if s.gateway == nil {
		return nil, ErrNoGateway
	}
	keys, err := s.gateway.Keys(ctx, persistence.KeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("listing saved lists: %w", err)
	}

	lists := make([]SavedList, 0, len(keys))
	for _, key := range keys {
		blob, err := s.gateway.Get(ctx, key)
		if err != nil {
			slog.Warn("failed to read saved list", "key", key, "error", err)
			continue
		}
		var meta struct {
			Title   string `json:"title"`
			SavedAt string `json:"savedAt"`
		}
		if err := json.Unmarshal(blob, &meta); err != nil {
			slog.Warn("failed to parse saved list", "key", key, "error", err)
			continue
		}
		// A missing or malformed savedAt sorts last.
		savedAt, _ := time.Parse(time.RFC3339, meta.SavedAt)
		lists = append(lists, SavedList{
			Name:    persistence.Name(key),
			Title:   meta.Title,
			SavedAt: savedAt,
		})
	}

	sort.SliceStable(lists, func(i, j int) bool {
		return lists[i].SavedAt.After(lists[j].SavedAt)
	})
	return lists, nil
}

// DeleteSaved removes the save stored under name.
func (s *Store) DeleteSaved(ctx context.Context, name string) error {
	if s.gateway == nil {
		return ErrNoGateway
	}
	if err := s.gateway.Delete(ctx, persistence.KeyPrefix+name); err != nil {
		return fmt.Errorf("deleting %q: %w", name, err)
	}
	return nil
}
