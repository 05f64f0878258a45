// Package store owns the tier board being edited: every mutation goes through
// one funnel that records a snapshot for undo before changing the board.
package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/daap14/tiermaker/internal/board"
	"github.com/daap14/tiermaker/internal/history"
	"github.com/daap14/tiermaker/internal/persistence"
)

// ErrTierNotFound is returned when a mutation names a tier that does not exist.
var ErrTierNotFound = errors.New("tier not found")

// ErrCardNotFound is returned when a mutation names a card that does not exist.
var ErrCardNotFound = errors.New("card not found")

// ErrDuplicateID is returned when the ID generator yields an ID already on the board.
var ErrDuplicateID = errors.New("generated id already in use")

// errUnchanged aborts a mutation that would not change the board.
var errUnchanged = errors.New("unchanged")

// Store holds the live board, its undo/redo history and UI mode flags.
// It is not safe for concurrent use; callers drive it from a single event loop.
type Store struct {
	board    board.Board
	history  *history.History
	newID    board.Generator
	gateway  persistence.Gateway
	now      func() time.Time
	active   *Item
	editMode bool
}

// Option configures a Store.
type Option func(*Store)

// WithHistoryCapacity sets how many snapshots are kept per direction.
func WithHistoryCapacity(n int) Option {
	return func(s *Store) { s.history = history.New(n) }
}

// WithIDGenerator sets the generator used for new tiers and cards.
func WithIDGenerator(g board.Generator) Option {
	return func(s *Store) { s.newID = g }
}

// WithGateway sets the persistence gateway used by Save, Load and ListSaved.
func WithGateway(g persistence.Gateway) Option {
	return func(s *Store) { s.gateway = g }
}

// WithClock overrides the time source used to stamp saves.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithBoard replaces the default starting board.
func WithBoard(b board.Board) Option {
	return func(s *Store) { s.board = b.Clone() }
}

// New creates a Store holding the default board.
func New(opts ...Option) *Store {
	s := &Store{
		board:   board.New(),
		history: history.New(history.DefaultCapacity),
		newID:   board.UUIDv7(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns a deep copy of the current board.
func (s *Store) Snapshot() board.Board {
	return s.board.Clone()
}

// Title returns the board title.
func (s *Store) Title() string {
	return s.board.Title
}

// Tiers returns the tiers in display order.
func (s *Store) Tiers() []board.Tier {
	return s.board.Clone().Tiers
}

// Cards returns every card in sequence order.
func (s *Store) Cards() []board.Card {
	return s.board.Clone().Cards
}

// CardsIn returns the cards of one tier in display order.
func (s *Store) CardsIn(tierID board.ID) []board.Card {
	return s.board.CardsIn(tierID)
}

// ImagesIn returns the cards of one tier that carry an image.
func (s *Store) ImagesIn(tierID board.ID) []board.Card {
	cards := []board.Card{}
	for _, c := range s.board.CardsIn(tierID) {
		if c.HasImage() {
			cards = append(cards, c)
		}
	}
	return cards
}

// EditMode reports whether the title is being edited.
func (s *Store) EditMode() bool {
	return s.editMode
}

// SetEditMode sets the title edit flag.
func (s *Store) SetEditMode(on bool) {
	s.editMode = on
}

// ToggleEditMode flips the title edit flag.
func (s *Store) ToggleEditMode() {
	s.editMode = !s.editMode
}

// SetTitle changes the board title. Title edits happen live while typing and
// are not undo steps on their own; the title is still part of every snapshot.
func (s *Store) SetTitle(title string) {
	s.board.Title = title
}

// CanUndo reports whether Undo would change the board.
func (s *Store) CanUndo() bool { return s.history.CanUndo() }

// CanRedo reports whether Redo would change the board.
func (s *Store) CanRedo() bool { return s.history.CanRedo() }

// HistoryCapacity returns how many snapshots are kept per direction.
func (s *Store) HistoryCapacity() int {
	return s.history.Capacity()
}

// HistoryLen returns the number of undoable and redoable snapshots.
func (s *Store) HistoryLen() (past, future int) {
	return s.history.PastLen(), s.history.FutureLen()
}

// Undo restores the previous snapshot. It returns false if there is none.
func (s *Store) Undo() bool {
	prev, ok := s.history.Undo(s.board)
	if !ok {
		return false
	}
	s.board = prev
	return true
}

// Redo restores the snapshot most recently undone. It returns false if there is none.
func (s *Store) Redo() bool {
	next, ok := s.history.Redo(s.board)
	if !ok {
		return false
	}
	s.board = next
	return true
}

// apply runs mutate against a copy of the board. On success the previous board
// is recorded in history and the copy becomes current. errUnchanged is
// swallowed without touching history.
func (s *Store) apply(mutate func(b *board.Board) error) error {
	next := s.board.Clone()
	if err := mutate(&next); err != nil {
		if errors.Is(err, errUnchanged) {
			return nil
		}
		return err
	}
	s.history.Record(s.board)
	s.board = next
	return nil
}

// replace swaps in a whole board and forgets history.
func (s *Store) replace(b board.Board) {
	s.board = b.Clone()
	s.history.Clear()
	s.active = nil
}

// CreateTier appends a tier titled "Column N" and returns its ID.
func (s *Store) CreateTier() (board.ID, error) {
	id := s.newID()
	err := s.apply(func(b *board.Board) error {
		if b.TierIndex(id) >= 0 {
			return fmt.Errorf("creating tier %q: %w", id, ErrDuplicateID)
		}
		b.Tiers = append(b.Tiers, board.Tier{
			ID:    id,
			Title: fmt.Sprintf("Column %d", len(b.Tiers)+1),
			Color: board.NewTierColor,
		})
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// DeleteTier removes a tier and every card assigned to it.
func (s *Store) DeleteTier(id board.ID) error {
	return s.apply(func(b *board.Board) error {
		i := b.TierIndex(id)
		if i < 0 {
			return ErrTierNotFound
		}
		b.Tiers = append(b.Tiers[:i], b.Tiers[i+1:]...)
		kept := b.Cards[:0]
		for _, c := range b.Cards {
			if c.TierID != id {
				kept = append(kept, c)
			}
		}
		b.Cards = kept
		return nil
	})
}

// RenameTier sets a tier's title.
func (s *Store) RenameTier(id board.ID, title string) error {
	return s.updateTier(id, func(t *board.Tier) { t.Title = title })
}

// RecolorTier sets a tier's color.
func (s *Store) RecolorTier(id board.ID, color string) error {
	return s.updateTier(id, func(t *board.Tier) { t.Color = color })
}

func (s *Store) updateTier(id board.ID, fn func(t *board.Tier)) error {
	return s.apply(func(b *board.Board) error {
		i := b.TierIndex(id)
		if i < 0 {
			return ErrTierNotFound
		}
		fn(&b.Tiers[i])
		return nil
	})
}

// CreateCard appends a card titled "Card N" to a tier and returns its ID.
func (s *Store) CreateCard(tierID board.ID) (board.ID, error) {
	return s.createCard(tierID, "")
}

// ImportImages creates one card per image in the given tier, in order.
// Each card is its own undo step.
func (s *Store) ImportImages(tierID board.ID, images []string) ([]board.ID, error) {
	if s.board.TierIndex(tierID) < 0 {
		return nil, ErrTierNotFound
	}
	ids := make([]board.ID, 0, len(images))
	for _, img := range images {
		id, err := s.createCard(tierID, img)
		if err != nil {
			return ids, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *Store) createCard(tierID board.ID, image string) (board.ID, error) {
	id := s.newID()
	err := s.apply(func(b *board.Board) error {
		if b.TierIndex(tierID) < 0 {
			return ErrTierNotFound
		}
		if b.CardIndex(id) >= 0 {
			return fmt.Errorf("creating card %q: %w", id, ErrDuplicateID)
		}
		b.Cards = append(b.Cards, board.Card{
			ID:      id,
			TierID:  tierID,
			Content: fmt.Sprintf("Card %d", len(b.Cards)+1),
			Image:   image,
		})
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// DeleteCard removes a card.
func (s *Store) DeleteCard(id board.ID) error {
	return s.apply(func(b *board.Board) error {
		i := b.CardIndex(id)
		if i < 0 {
			return ErrCardNotFound
		}
		b.Cards = append(b.Cards[:i], b.Cards[i+1:]...)
		return nil
	})
}

// EditCard sets a card's text.
func (s *Store) EditCard(id board.ID, content string) error {
	return s.updateCard(id, func(c *board.Card) { c.Content = content })
}

// SetCardImage attaches an opaque image payload to a card.
func (s *Store) SetCardImage(id board.ID, image string) error {
	return s.updateCard(id, func(c *board.Card) { c.Image = image })
}

// ClearCardImage removes a card's image.
func (s *Store) ClearCardImage(id board.ID) error {
	return s.updateCard(id, func(c *board.Card) { c.Image = "" })
}

func (s *Store) updateCard(id board.ID, fn func(c *board.Card)) error {
	return s.apply(func(b *board.Board) error {
		i := b.CardIndex(id)
		if i < 0 {
			return ErrCardNotFound
		}
		fn(&b.Cards[i])
		return nil
	})
}
