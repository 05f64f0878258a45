// Package validation checks untrusted tier list payloads before they replace a board.
package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/daap14/tiermaker/internal/board"
)

// FieldError represents a validation error on a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// Join renders a list of field errors as one line.
func Join(errs []FieldError) string {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "; ")
}

type rawTier struct {
	ID    *board.ID `json:"id"`
	Title *string   `json:"title"`
	Color *string   `json:"color"`
}

type rawCard struct {
	ID      *board.ID `json:"id"`
	TierID  *board.ID `json:"columnId"`
	Content *string   `json:"content"`
	Image   *string   `json:"imageUrl"`
}

// ValidateBoard parses raw as a board payload ({title, columns, cards}).
// It returns the board only when no field errors were found.
func ValidateBoard(raw []byte) (*board.Board, []FieldError) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil || top == nil {
		return nil, []FieldError{{Field: "payload", Message: "payload must be a JSON object"}}
	}

	var errs []FieldError
	out := board.Board{Tiers: []board.Tier{}, Cards: []board.Card{}}

	if !isKind(top["title"], '"') {
		errs = append(errs, FieldError{Field: "title", Message: "title must be a string"})
	} else if err := json.Unmarshal(top["title"], &out.Title); err != nil {
		errs = append(errs, FieldError{Field: "title", Message: "title must be a string"})
	}

	var tiers []json.RawMessage
	if !isKind(top["columns"], '[') {
		errs = append(errs, FieldError{Field: "columns", Message: "columns must be an array"})
	} else if err := json.Unmarshal(top["columns"], &tiers); err != nil {
		errs = append(errs, FieldError{Field: "columns", Message: "columns must be an array"})
	}

	var cards []json.RawMessage
	if !isKind(top["cards"], '[') {
		errs = append(errs, FieldError{Field: "cards", Message: "cards must be an array"})
	} else if err := json.Unmarshal(top["cards"], &cards); err != nil {
		errs = append(errs, FieldError{Field: "cards", Message: "cards must be an array"})
	}

	if len(errs) > 0 {
		return nil, errs
	}

	tierIDs := make(map[board.ID]bool, len(tiers))
	for i, item := range tiers {
		field := fmt.Sprintf("columns[%d]", i)
		var rt rawTier
		if err := json.Unmarshal(item, &rt); err != nil {
			errs = append(errs, FieldError{Field: field, Message: "column must be an object with string fields"})
			continue
		}
		switch {
		case rt.ID == nil || *rt.ID == "":
			errs = append(errs, FieldError{Field: field + ".id", Message: "id is required"})
			continue
		case tierIDs[*rt.ID]:
			errs = append(errs, FieldError{Field: field + ".id", Message: fmt.Sprintf("duplicate column id %q", *rt.ID)})
			continue
		}
		tierIDs[*rt.ID] = true
		t := board.Tier{ID: *rt.ID}
		if rt.Title != nil {
			t.Title = *rt.Title
		}
		if rt.Color != nil {
			t.Color = *rt.Color
		}
		out.Tiers = append(out.Tiers, t)
	}

	cardIDs := make(map[board.ID]bool, len(cards))
	for i, item := range cards {
		field := fmt.Sprintf("cards[%d]", i)
		var rc rawCard
		if err := json.Unmarshal(item, &rc); err != nil {
			errs = append(errs, FieldError{Field: field, Message: "card must be an object with string fields"})
			continue
		}
		if rc.ID == nil || *rc.ID == "" {
			errs = append(errs, FieldError{Field: field + ".id", Message: "id is required"})
			continue
		}
		if cardIDs[*rc.ID] {
			errs = append(errs, FieldError{Field: field + ".id", Message: fmt.Sprintf("duplicate card id %q", *rc.ID)})
			continue
		}
		cardIDs[*rc.ID] = true
		if rc.TierID == nil || !tierIDs[*rc.TierID] {
			errs = append(errs, FieldError{Field: field + ".columnId", Message: "columnId must reference an existing column"})
			continue
		}
		c := board.Card{ID: *rc.ID, TierID: *rc.TierID}
		if rc.Content != nil {
			c.Content = *rc.Content
		}
		if rc.Image != nil {
			c.Image = *rc.Image
		}
		out.Cards = append(out.Cards, c)
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return &out, nil
}

// isKind reports whether the JSON value starts with the given delimiter.
func isKind(v json.RawMessage, delim byte) bool {
	v = bytes.TrimSpace(v)
	return len(v) > 0 && v[0] == delim
}
