package board

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID identifies a tier or a card. It is assigned at creation and never changes.
type ID string

// UnmarshalJSON accepts both string and numeric identifiers and stores them
// in their string form.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or a number: %w", err)
	}
	if _, err := strconv.ParseFloat(n.String(), 64); err != nil {
		return fmt.Errorf("id must be a string or a number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Tier is one ranking bucket. Display order is its position in Board.Tiers.
type Tier struct {
	ID    ID     `json:"id"`
	Title string `json:"title"`
	Color string `json:"color"`
}

// Card is one ranked item. It belongs to the tier named by TierID; its order
// among the cards of that tier is its relative position in Board.Cards.
type Card struct {
	ID      ID     `json:"id"`
	TierID  ID     `json:"columnId"`
	Content string `json:"content"`
	Image   string `json:"imageUrl,omitempty"`
}

// HasImage reports whether the card carries an image payload.
func (c Card) HasImage() bool {
	return c.Image != ""
}

// Board is a complete tier list.
type Board struct {
	Title string `json:"title"`
	Tiers []Tier `json:"columns"`
	Cards []Card `json:"cards"`
}

// Clone returns a copy of b that shares no backing arrays with it.
func (b Board) Clone() Board {
	out := Board{
		Title: b.Title,
		Tiers: make([]Tier, len(b.Tiers)),
		Cards: make([]Card, len(b.Cards)),
	}
	copy(out.Tiers, b.Tiers)
	copy(out.Cards, b.Cards)
	return out
}

// TierIndex returns the position of the tier with the given ID, or -1.
func (b Board) TierIndex(id ID) int {
	for i := range b.Tiers {
		if b.Tiers[i].ID == id {
			return i
		}
	}
	return -1
}

// CardIndex returns the position of the card with the given ID, or -1.
func (b Board) CardIndex(id ID) int {
	for i := range b.Cards {
		if b.Cards[i].ID == id {
			return i
		}
	}
	return -1
}

// CardsIn returns the cards of a tier in display order.
func (b Board) CardsIn(tierID ID) []Card {
	cards := []Card{}
	for _, c := range b.Cards {
		if c.TierID == tierID {
			cards = append(cards, c)
		}
	}
	return cards
}

// Equal reports whether two boards hold the same title, tiers and cards in the same order.
func (b Board) Equal(other Board) bool {
	if b.Title != other.Title || len(b.Tiers) != len(other.Tiers) || len(b.Cards) != len(other.Cards) {
		return false
	}
	for i := range b.Tiers {
		if b.Tiers[i] != other.Tiers[i] {
			return false
		}
	}
	for i := range b.Cards {
		if b.Cards[i] != other.Cards[i] {
			return false
		}
	}
	return true
}
