package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/daap14/tiermaker/internal/store"
)

// Render writes the board as one line per tier followed by its cards.
func Render(w io.Writer, s *store.Store) {
	past, future := s.HistoryLen()
	limit := s.HistoryCapacity()
	fmt.Fprintf(w, "== %s ==  (undo %d/%d, redo %d/%d)\n", s.Title(), past, limit, future, limit)
	for _, t := range s.Tiers() {
		fmt.Fprintf(w, "[%s] %s %s\n", t.ID, t.Title, t.Color)
		for _, c := range s.CardsIn(t.ID) {
			line := fmt.Sprintf("    - %s  %s", c.ID, c.Content)
			if c.HasImage() {
				line += "  (" + imageSummary(c.Image) + ")"
			}
			fmt.Fprintln(w, line)
		}
	}
}

// imageSummary shortens a data URL to its media type and size.
func imageSummary(img string) string {
	if strings.HasPrefix(img, "data:") {
		if i := strings.Index(img, ";"); i > 0 {
			return fmt.Sprintf("%s, %d bytes encoded", img[len("data:"):i], len(img))
		}
	}
	if len(img) > 40 {
		return img[:40] + "..."
	}
	return img
}
