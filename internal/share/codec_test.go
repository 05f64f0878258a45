package share_test

import (
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daap14/tiermaker/internal/board"
	"github.com/daap14/tiermaker/internal/share"
)

func TestEncode_PayloadShape(t *testing.T) {
	b := board.New()
	b.Cards = append(b.Cards, board.Card{ID: "c1", TierID: "S", Content: "Go"})

	encoded, err := share.Encode(b)
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)
	var top map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &top))
	assert.Len(t, top, 3)
	assert.JSONEq(t, `"Tier Maker"`, string(top["title"]))
	assert.JSONEq(t, `[{"id":"c1","columnId":"S","content":"Go"}]`, string(top["cards"]))
}

func TestEncode_NilSlicesBecomeArrays(t *testing.T) {
	encoded, err := share.Encode(board.Board{Title: "empty"})
	require.NoError(t, err)

	raw, err := share.Decode(encoded)
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"empty","columns":[],"cards":[]}`, string(raw))
}

func TestDecode_Alphabets(t *testing.T) {
	const payload = `{"title":"??>>"}`
	tests := map[string]string{
		"std":           base64.StdEncoding.EncodeToString([]byte(payload)),
		"std unpadded":  base64.RawStdEncoding.EncodeToString([]byte(payload)),
		"url":           base64.URLEncoding.EncodeToString([]byte(payload)),
		"url unpadded":  base64.RawURLEncoding.EncodeToString([]byte(payload)),
		"plus as space": replacePlus(base64.StdEncoding.EncodeToString([]byte(payload))),
	}

	for name, encoded := range tests {
		t.Run(name, func(t *testing.T) {
			raw, err := share.Decode(encoded)
			require.NoError(t, err)
			assert.Equal(t, payload, string(raw))
		})
	}
}

func replacePlus(s string) string {
	out := []byte(s)
	for i := range out {
		if out[i] == '+' {
			out[i] = ' '
		}
	}
	return string(out)
}

func TestDecode_Latin1Payload(t *testing.T) {
	latin1 := []byte("{\"title\":\"Caf\xe9 cr\xe8me\"}")
	encoded := base64.StdEncoding.EncodeToString(latin1)

	raw, err := share.Decode(encoded)

	require.NoError(t, err)
	assert.Equal(t, `{"title":"Café crème"}`, string(raw))
}

func TestDecode_KeepsUTF8Payload(t *testing.T) {
	const payload = `{"title":"Café ✓"}`

	raw, err := share.Decode(base64.StdEncoding.EncodeToString([]byte(payload)))

	require.NoError(t, err)
	assert.Equal(t, payload, string(raw))
}

func TestDecode_Errors(t *testing.T) {
	_, err := share.Decode("")
	assert.ErrorIs(t, err, share.ErrNoPayload)

	_, err = share.Decode("***")
	assert.Error(t, err)
}

func TestLinkAndFromLink(t *testing.T) {
	encoded, err := share.Encode(board.New())
	require.NoError(t, err)

	link, err := share.Link("https://tiers.example.com/app?theme=dark", encoded)
	require.NoError(t, err)
	assert.Contains(t, link, "theme=dark")
	assert.Contains(t, link, "data=")

	got, err := share.FromLink(link)
	require.NoError(t, err)
	assert.Equal(t, encoded, got)

	_, err = share.FromLink("https://tiers.example.com/")
	assert.ErrorIs(t, err, share.ErrNoPayload)
}
