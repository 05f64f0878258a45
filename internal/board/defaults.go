package board

// DefaultTitle is the title of a fresh board.
const DefaultTitle = "Tier Maker"

// NewTierColor is the color given to tiers created after startup.
const NewTierColor = "#09203f"

// Palette lists the colors offered when recoloring a tier.
var Palette = []string{
	"#f44336", // red
	"#ff9800", // orange
	"#ffc107", // amber
	"#ffeb3b", // yellow
	"#cddc39", // lime
	"#4caf50", // green
	"#00bcd4", // cyan
	"#09203f", // background
}

// DefaultTiers returns the S..D tiers a new board starts with.
func DefaultTiers() []Tier {
	return []Tier{
		{ID: "S", Title: "S", Color: "#4caf20"},
		{ID: "A", Title: "A", Color: "#4caf50"},
		{ID: "B", Title: "B", Color: "#ffeb3b"},
		{ID: "C", Title: "C", Color: "#ff9800"},
		{ID: "D", Title: "D", Color: "#f44336"},
	}
}

// New returns the board shown at startup: default tiers and no cards.
func New() Board {
	return Board{
		Title: DefaultTitle,
		Tiers: DefaultTiers(),
		Cards: []Card{},
	}
}
