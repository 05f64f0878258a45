package store

import "github.com/daap14/tiermaker/internal/board"

// Kind distinguishes the two draggable entities.
type Kind int

const (
	KindTier Kind = iota + 1
	KindCard
)

func (k Kind) String() string {
	switch k {
	case KindTier:
		return "tier"
	case KindCard:
		return "card"
	default:
		return "unknown"
	}
}

// Item names a draggable entity or a drop target.
type Item struct {
	Kind Kind
	ID   board.ID
}

// Active returns the entity currently being dragged.
func (s *Store) Active() (Item, bool) {
	if s.active == nil {
		return Item{}, false
	}
	return *s.active, true
}

// DragStart marks active as being dragged. The board is not changed.
func (s *Store) DragStart(active Item) {
	if active.Kind != KindTier && active.Kind != KindCard {
		return
	}
	a := active
	s.active = &a
}

// DragOver moves a dragged card while it hovers over another card or a tier.
// It reports whether the board changed; only changes are recorded in history.
func (s *Store) DragOver(active Item, over *Item) bool {
	if over == nil || active.Kind != KindCard || active.ID == over.ID {
		return false
	}
	changed := false
	_ = s.apply(func(b *board.Board) error {
		ai := b.CardIndex(active.ID)
		if ai < 0 {
			return errUnchanged
		}
		switch over.Kind {
		case KindCard:
			oi := b.CardIndex(over.ID)
			if oi < 0 {
				return errUnchanged
			}
			target := b.Cards[oi].TierID
			if b.Cards[ai].TierID == target {
				b.Cards = move(b.Cards, ai, oi)
			} else {
				b.Cards = moveBefore(b.Cards, ai, over.ID, target)
			}
		case KindTier:
			if b.TierIndex(over.ID) < 0 || b.Cards[ai].TierID == over.ID {
				return errUnchanged
			}
			b.Cards[ai].TierID = over.ID
		default:
			return errUnchanged
		}
		changed = true
		return nil
	})
	return changed
}

// DragEnd clears the drag markers and, when a tier was dropped onto a
// different tier (or onto a card inside one), moves it to that tier's position.
// It reports whether the tier order changed.
func (s *Store) DragEnd(active Item, over *Item) bool {
	s.active = nil
	if over == nil || active.Kind != KindTier {
		return false
	}
	changed := false
	_ = s.apply(func(b *board.Board) error {
		target := over.ID
		if over.Kind == KindCard {
			ci := b.CardIndex(over.ID)
			if ci < 0 {
				return errUnchanged
			}
			target = b.Cards[ci].TierID
		}
		if target == active.ID {
			return errUnchanged
		}
		from, to := b.TierIndex(active.ID), b.TierIndex(target)
		if from < 0 || to < 0 {
			return errUnchanged
		}
		b.Tiers = move(b.Tiers, from, to)
		changed = true
		return nil
	})
	return changed
}

// move removes the element at from and reinserts it at to.
func move[T any](s []T, from, to int) []T {
	if from == to {
		return s
	}
	v := s[from]
	if from < to {
		copy(s[from:to], s[from+1:to+1])
	} else {
		copy(s[to+1:from+1], s[to:from])
	}
	s[to] = v
	return s
}

// moveBefore reassigns the card at from to tierID and reinserts it directly
// in front of the card named before.
func moveBefore(cards []board.Card, from int, before, tierID board.ID) []board.Card {
	c := cards[from]
	c.TierID = tierID
	rest := append(cards[:from:from], cards[from+1:]...)
	at := 0
	for i := range rest {
		if rest[i].ID == before {
			at = i
			break
		}
	}
	out := make([]board.Card, 0, len(cards))
	out = append(out, rest[:at]...)
	out = append(out, c)
	return append(out, rest[at:]...)
}
