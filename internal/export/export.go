// Package export renders boards to files and reads them back.
package export

import (
	"encoding/json"
	"fmt"
	"regexp"

	"sigs.k8s.io/yaml"

	"github.com/daap14/tiermaker/internal/board"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

type document struct {
	Title string       `json:"title"`
	Tiers []board.Tier `json:"columns"`
	Cards []board.Card `json:"cards"`
}

func toDocument(b board.Board) document {
	d := document{Title: b.Title, Tiers: b.Tiers, Cards: b.Cards}
	if d.Tiers == nil {
		d.Tiers = []board.Tier{}
	}
	if d.Cards == nil {
		d.Cards = []board.Card{}
	}
	return d
}

// JSON renders b as indented JSON in the share payload shape.
func JSON(b board.Board) ([]byte, error) {
	data, err := json.MarshalIndent(toDocument(b), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling board json: %w", err)
	}
	return append(data, '\n'), nil
}

// YAML renders b as YAML in the share payload shape.
func YAML(b board.Board) ([]byte, error) {
	data, err := yaml.Marshal(toDocument(b))
	if err != nil {
		return nil, fmt.Errorf("marshaling board yaml: %w", err)
	}
	return data, nil
}

// FromYAML converts a YAML document to JSON so it can be validated like any
// other untrusted payload.
func FromYAML(data []byte) ([]byte, error) {
	raw, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("converting yaml: %w", err)
	}
	return raw, nil
}

// FileName returns the download name for a board exported with extension ext.
func FileName(title, ext string) string {
	return whitespaceRun.ReplaceAllString(title, "_") + "_tier_list." + ext
}
