package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daap14/tiermaker/internal/board"
	"github.com/daap14/tiermaker/internal/store"
)

func newTestStore(t *testing.T, opts ...store.Option) *store.Store {
	t.Helper()
	opts = append([]store.Option{store.WithIDGenerator(board.Sequential("id"))}, opts...)
	return store.New(opts...)
}

func cardIDs(cards []board.Card) []board.ID {
	ids := make([]board.ID, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}
	return ids
}

func tierIDs(tiers []board.Tier) []board.ID {
	ids := make([]board.ID, len(tiers))
	for i, t := range tiers {
		ids[i] = t.ID
	}
	return ids
}

func TestNew_DefaultBoard(t *testing.T) {
	s := newTestStore(t)

	assert.Equal(t, "Tier Maker", s.Title())
	assert.Equal(t, []board.ID{"S", "A", "B", "C", "D"}, tierIDs(s.Tiers()))
	assert.Empty(t, s.Cards())
	assert.False(t, s.CanUndo())
	assert.False(t, s.CanRedo())
}

func TestExampleScenario(t *testing.T) {
	s := newTestStore(t)

	id, err := s.CreateCard("A")
	require.NoError(t, err)
	assert.Equal(t, []board.Card{{ID: id, TierID: "A", Content: "Card 1"}}, s.Cards())
	past, future := s.HistoryLen()
	assert.Equal(t, 1, past)
	assert.Equal(t, 0, future)

	active := store.Item{Kind: store.KindCard, ID: id}
	over := store.Item{Kind: store.KindTier, ID: "B"}
	assert.True(t, s.DragOver(active, &over))
	assert.Equal(t, board.ID("B"), s.Cards()[0].TierID)
	past, _ = s.HistoryLen()
	assert.Equal(t, 2, past)

	require.True(t, s.Undo())
	assert.Equal(t, board.ID("A"), s.Cards()[0].TierID)
	past, future = s.HistoryLen()
	assert.Equal(t, 1, past)
	assert.Equal(t, 1, future)

	require.True(t, s.Redo())
	assert.Equal(t, board.ID("B"), s.Cards()[0].TierID)
	past, future = s.HistoryLen()
	assert.Equal(t, 2, past)
	assert.Equal(t, 0, future)
}

func TestCreateTier(t *testing.T) {
	s := newTestStore(t)

	id, err := s.CreateTier()
	require.NoError(t, err)

	tiers := s.Tiers()
	require.Len(t, tiers, 6)
	assert.Equal(t, board.Tier{ID: id, Title: "Column 6", Color: "#09203f"}, tiers[5])
	assert.True(t, s.CanUndo())
}

func TestDeleteTier_CascadesCards(t *testing.T) {
	s := newTestStore(t)
	a1, _ := s.CreateCard("A")
	b1, _ := s.CreateCard("B")
	a2, _ := s.CreateCard("A")

	require.NoError(t, s.DeleteTier("A"))

	assert.Equal(t, []board.ID{"S", "B", "C", "D"}, tierIDs(s.Tiers()))
	assert.Equal(t, []board.ID{b1}, cardIDs(s.Cards()))

	require.True(t, s.Undo())
	assert.Equal(t, []board.ID{a1, b1, a2}, cardIDs(s.Cards()))
	assert.Equal(t, []board.ID{"S", "A", "B", "C", "D"}, tierIDs(s.Tiers()))
}

func TestMutations_UnknownIDs(t *testing.T) {
	s := newTestStore(t)

	assert.ErrorIs(t, s.DeleteTier("nope"), store.ErrTierNotFound)
	assert.ErrorIs(t, s.RenameTier("nope", "x"), store.ErrTierNotFound)
	assert.ErrorIs(t, s.RecolorTier("nope", "#fff"), store.ErrTierNotFound)
	_, err := s.CreateCard("nope")
	assert.ErrorIs(t, err, store.ErrTierNotFound)
	assert.ErrorIs(t, s.DeleteCard("nope"), store.ErrCardNotFound)
	assert.ErrorIs(t, s.EditCard("nope", "x"), store.ErrCardNotFound)
	assert.ErrorIs(t, s.SetCardImage("nope", "data:"), store.ErrCardNotFound)
	assert.ErrorIs(t, s.ClearCardImage("nope"), store.ErrCardNotFound)

	assert.False(t, s.CanUndo())
}

func TestTierAndCardEdits(t *testing.T) {
	s := newTestStore(t)
	id, err := s.CreateCard("S")
	require.NoError(t, err)

	require.NoError(t, s.RenameTier("S", "Best"))
	require.NoError(t, s.RecolorTier("S", "#00bcd4"))
	require.NoError(t, s.EditCard(id, "Gopher"))
	require.NoError(t, s.SetCardImage(id, "data:image/png;base64,AAAA"))

	assert.Equal(t, board.Tier{ID: "S", Title: "Best", Color: "#00bcd4"}, s.Tiers()[0])
	assert.Equal(t, board.Card{ID: id, TierID: "S", Content: "Gopher", Image: "data:image/png;base64,AAAA"}, s.Cards()[0])
	assert.Len(t, s.ImagesIn("S"), 1)

	require.NoError(t, s.ClearCardImage(id))
	assert.False(t, s.Cards()[0].HasImage())
	assert.Empty(t, s.ImagesIn("S"))

	require.NoError(t, s.DeleteCard(id))
	assert.Empty(t, s.Cards())

	past, _ := s.HistoryLen()
	assert.Equal(t, 7, past)
}

func TestUndoRedo_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	initial := s.Snapshot()

	c1, _ := s.CreateCard("A")
	c2, _ := s.CreateCard("B")
	tier, err := s.CreateTier()
	require.NoError(t, err)
	require.NoError(t, s.RenameTier(tier, "Z"))
	require.NoError(t, s.EditCard(c1, "one"))
	require.NoError(t, s.SetCardImage(c2, "img"))
	over := store.Item{Kind: store.KindCard, ID: c1}
	require.True(t, s.DragOver(store.Item{Kind: store.KindCard, ID: c2}, &over))
	require.NoError(t, s.DeleteTier("A"))

	past, _ := s.HistoryLen()
	for i := 0; i < past; i++ {
		require.True(t, s.Undo())
	}

	assert.True(t, initial.Equal(s.Snapshot()))
	assert.False(t, s.Undo())
}

func TestUndoThenRedo_RestoresState(t *testing.T) {
	s := newTestStore(t)
	c, _ := s.CreateCard("A")
	require.NoError(t, s.EditCard(c, "edited"))
	before := s.Snapshot()

	require.True(t, s.Undo())
	assert.Equal(t, "Card 1", s.Cards()[0].Content)
	require.True(t, s.Redo())

	assert.True(t, before.Equal(s.Snapshot()))
}

func TestUndo_CapturesTitle(t *testing.T) {
	s := newTestStore(t)
	s.SetTitle("Before")
	_, _ = s.CreateCard("A")
	s.SetTitle("After")

	require.True(t, s.Undo())
	assert.Equal(t, "Before", s.Title())
	require.True(t, s.Redo())
	assert.Equal(t, "After", s.Title())
}

func TestNewMutationAfterUndo_DiscardsRedo(t *testing.T) {
	s := newTestStore(t)
	_, _ = s.CreateCard("A")
	_, _ = s.CreateCard("A")
	require.True(t, s.Undo())
	require.True(t, s.CanRedo())

	_, err := s.CreateTier()
	require.NoError(t, err)

	assert.False(t, s.CanRedo())
	assert.False(t, s.Redo())
}

func TestUndoRedo_EmptyIsNoop(t *testing.T) {
	s := newTestStore(t)
	before := s.Snapshot()

	assert.False(t, s.Undo())
	assert.False(t, s.Redo())
	assert.True(t, before.Equal(s.Snapshot()))
}

func TestHistory_NeverExceedsCapacity(t *testing.T) {
	s := newTestStore(t, store.WithHistoryCapacity(5))

	for i := 0; i < 12; i++ {
		_, err := s.CreateCard("A")
		require.NoError(t, err)
		past, _ := s.HistoryLen()
		assert.LessOrEqual(t, past, 5)
	}

	undone := 0
	for s.Undo() {
		undone++
		_, future := s.HistoryLen()
		assert.LessOrEqual(t, future, 5)
	}
	assert.Equal(t, 5, undone)
	assert.Len(t, s.Cards(), 7)
}

func TestSnapshot_DoesNotAlias(t *testing.T) {
	s := newTestStore(t)
	id, _ := s.CreateCard("A")

	snap := s.Snapshot()
	snap.Cards[0].Content = "mutated"
	snap.Tiers[0].Title = "mutated"
	cards := s.Cards()
	cards[0].TierID = "B"

	assert.Equal(t, "Card 1", s.Cards()[0].Content)
	assert.Equal(t, "S", s.Tiers()[0].Title)
	assert.Equal(t, board.ID("A"), s.CardsIn("A")[0].TierID)

	require.NoError(t, s.EditCard(id, "changed"))
	require.True(t, s.Undo())
	assert.Equal(t, "Card 1", s.Cards()[0].Content)
}

func TestImportImages(t *testing.T) {
	s := newTestStore(t)

	ids, err := s.ImportImages("C", []string{"img-1", "img-2"})

	require.NoError(t, err)
	require.Len(t, ids, 2)
	cards := s.CardsIn("C")
	require.Len(t, cards, 2)
	assert.Equal(t, "img-1", cards[0].Image)
	assert.Equal(t, "img-2", cards[1].Image)
	past, _ := s.HistoryLen()
	assert.Equal(t, 2, past)

	_, err = s.ImportImages("nope", []string{"img"})
	assert.ErrorIs(t, err, store.ErrTierNotFound)
}

func TestEditMode(t *testing.T) {
	s := newTestStore(t)

	assert.False(t, s.EditMode())
	s.ToggleEditMode()
	assert.True(t, s.EditMode())
	s.SetEditMode(false)
	assert.False(t, s.EditMode())
}

func TestSetTitle_NotAnUndoStep(t *testing.T) {
	s := newTestStore(t)

	s.SetTitle("My list")

	assert.Equal(t, "My list", s.Title())
	assert.False(t, s.CanUndo())
}

func TestCreate_DuplicateGeneratedIDIsRejected(t *testing.T) {
	s := store.New(store.WithIDGenerator(func() board.ID { return "A" }))

	_, err := s.CreateTier()
	assert.ErrorIs(t, err, store.ErrDuplicateID)
	assert.Len(t, s.Tiers(), 5)

	_, err = s.CreateCard("S")
	require.NoError(t, err)
	_, err = s.CreateCard("S")
	assert.ErrorIs(t, err, store.ErrDuplicateID)
	assert.Len(t, s.Cards(), 1)

	past, _ := s.HistoryLen()
	assert.Equal(t, 1, past)
}

func TestWithBoard_SeedsStoreWithoutHistory(t *testing.T) {
	seed := board.Board{
		Title: "Seeded",
		Tiers: []board.Tier{{ID: "top", Title: "Top", Color: "#4caf50"}},
		Cards: []board.Card{{ID: "c1", TierID: "top", Content: "first"}},
	}

	s := newTestStore(t, store.WithBoard(seed))
	seed.Cards[0].Content = "changed after seeding"

	assert.Equal(t, "Seeded", s.Title())
	assert.Equal(t, "first", s.Cards()[0].Content)
	assert.False(t, s.CanUndo())

	require.NoError(t, s.DeleteCard("c1"))
	require.True(t, s.Undo())
	assert.Equal(t, []board.ID{"c1"}, cardIDs(s.Cards()))
}

func TestHistoryCapacity(t *testing.T) {
	assert.Equal(t, 30, newTestStore(t).HistoryCapacity())
	assert.Equal(t, 4, newTestStore(t, store.WithHistoryCapacity(4)).HistoryCapacity())
}
