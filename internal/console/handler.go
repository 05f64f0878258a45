package console

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/daap14/tiermaker/internal/board"
	"github.com/daap14/tiermaker/internal/export"
	"github.com/daap14/tiermaker/internal/keyboard"
	"github.com/daap14/tiermaker/internal/store"
)

// Deps holds everything the command handlers need.
type Deps struct {
	Store        *store.Store
	Out          io.Writer
	ShareBaseURL string
	ReadFile     func(name string) ([]byte, error)
	WriteFile    func(name string, data []byte) error
}

// Handler implements the console commands on top of a Store.
type Handler struct {
	store     *store.Store
	out       io.Writer
	baseURL   string
	readFile  func(string) ([]byte, error)
	writeFile func(string, []byte) error
	keys      keyboard.Shortcuts
}

// NewHandler creates a Handler. Nil file functions default to the os package.
func NewHandler(deps Deps) *Handler {
	h := &Handler{
		store:     deps.Store,
		out:       deps.Out,
		baseURL:   deps.ShareBaseURL,
		readFile:  deps.ReadFile,
		writeFile: deps.WriteFile,
	}
	if h.readFile == nil {
		h.readFile = os.ReadFile
	}
	if h.writeFile == nil {
		h.writeFile = func(name string, data []byte) error {
			return os.WriteFile(name, data, 0o644)
		}
	}
	h.keys = keyboard.Shortcuts{
		Undo:     func() { h.store.Undo() },
		Redo:     func() { h.store.Redo() },
		CanUndo:  h.store.CanUndo,
		CanRedo:  h.store.CanRedo,
		Disabled: h.store.EditMode,
	}
	return h
}

// NewConsoleRouter registers every command of h on a new Router.
func NewConsoleRouter(h *Handler) *Router {
	r := NewRouter()
	r.Use(WithCommandID)
	r.Use(Recovery)
	r.Use(Logging)

	r.Handle("show", "show                              print the board", h.Show)
	r.Handle("title", "title <text>                      rename the board", h.Title)
	r.Handle("edit", "edit [on|off]                     toggle title edit mode (suppresses shortcuts)", h.Edit)
	r.Handle("tier", "tier add | rm <id> | rename <id> <title> | color <id> <color>", h.Tier)
	r.Handle("card", "card add <tier> | rm <id> | edit <id> <text> | image <id> <file> | noimage <id>", h.Card)
	r.Handle("images", "images <tier>                     list the cards of a tier that have images", h.Images)
	r.Handle("import", "import <tier> <file>...           create one card per image file", h.Import)
	r.Handle("drag", "drag card <id> over card|tier <id> | drag tier <id> over <id>", h.Drag)
	r.Handle("undo", "undo                              revert the last change", h.Undo)
	r.Handle("redo", "redo                              reapply the last undone change", h.Redo)
	r.Handle("key", "key <chord>                       press a shortcut, e.g. ctrl+z, cmd+shift+z", h.Key)
	r.Handle("save", "save                              save the board under its title", h.Save)
	r.Handle("load", "load <name>                       load a saved board", h.Load)
	r.Handle("saves", "saves                             list saved boards, newest first", h.Saves)
	r.Handle("forget", "forget <name>                     delete a saved board", h.Forget)
	r.Handle("share", "share                             print a share link", h.Share)
	r.Handle("open", "open <link>                       load a board from a share link", h.Open)
	r.Handle("export", "export yaml|json [file]           write the board to a file", h.Export)
	r.Handle("import-yaml", "import-yaml <file>                replace the board with a YAML export", h.ImportYAML)
	r.Handle("help", "help                              list commands", func(_ context.Context, _ []string) error {
		for _, line := range r.Usage() {
			fmt.Fprintln(h.out, line)
		}
		return nil
	})
	r.Handle("quit", "quit                              leave", func(_ context.Context, _ []string) error {
		return ErrQuit
	})
	return r
}

func usage(format string) error {
	return fmt.Errorf("%w: %s", ErrUsage, format)
}

// Show prints the board.
func (h *Handler) Show(_ context.Context, _ []string) error {
	Render(h.out, h.store)
	return nil
}

// Title sets the board title.
func (h *Handler) Title(_ context.Context, args []string) error {
	if len(args) == 0 {
		return usage("title <text>")
	}
	h.store.SetTitle(strings.Join(args, " "))
	fmt.Fprintf(h.out, "title: %s\n", h.store.Title())
	return nil
}

// Edit toggles or sets title edit mode.
func (h *Handler) Edit(_ context.Context, args []string) error {
	switch {
	case len(args) == 0:
		h.store.ToggleEditMode()
	case args[0] == "on":
		h.store.SetEditMode(true)
	case args[0] == "off":
		h.store.SetEditMode(false)
	default:
		return usage("edit [on|off]")
	}
	fmt.Fprintf(h.out, "edit mode: %t\n", h.store.EditMode())
	return nil
}

// Tier handles the tier sub-commands.
func (h *Handler) Tier(_ context.Context, args []string) error {
	if len(args) == 0 {
		return usage("tier add | rm <id> | rename <id> <title> | color <id> <color>")
	}
	switch args[0] {
	case "add":
		id, err := h.store.CreateTier()
		if err != nil {
			return err
		}
		fmt.Fprintf(h.out, "created tier %s\n", id)
		return nil
	case "rm":
		if len(args) != 2 {
			return usage("tier rm <id>")
		}
		return h.store.DeleteTier(h.tierID(args[1]))
	case "rename":
		if len(args) < 3 {
			return usage("tier rename <id> <title>")
		}
		return h.store.RenameTier(h.tierID(args[1]), strings.Join(args[2:], " "))
	case "color":
		if len(args) != 3 {
			return usage(fmt.Sprintf("tier color <id> <color>, palette: %s", strings.Join(board.Palette, " ")))
		}
		return h.store.RecolorTier(h.tierID(args[1]), args[2])
	}
	return usage("tier add | rm <id> | rename <id> <title> | color <id> <color>")
}

// Card handles the card sub-commands.
func (h *Handler) Card(_ context.Context, args []string) error {
	if len(args) < 2 {
		return usage("card add <tier> | rm <id> | edit <id> <text> | image <id> <file> | noimage <id>")
	}
	switch args[0] {
	case "add":
		id, err := h.store.CreateCard(h.tierID(args[1]))
		if err != nil {
			return err
		}
		fmt.Fprintf(h.out, "created card %s\n", id)
		return nil
	case "rm":
		return h.store.DeleteCard(h.cardID(args[1]))
	case "edit":
		if len(args) < 3 {
			return usage("card edit <id> <text>")
		}
		return h.store.EditCard(h.cardID(args[1]), strings.Join(args[2:], " "))
	case "image":
		if len(args) != 3 {
			return usage("card image <id> <file>")
		}
		img, err := h.loadImage(args[2])
		if err != nil {
			return err
		}
		return h.store.SetCardImage(h.cardID(args[1]), img)
	case "noimage":
		return h.store.ClearCardImage(h.cardID(args[1]))
	}
	return usage("card add <tier> | rm <id> | edit <id> <text> | image <id> <file> | noimage <id>")
}

// Images lists the image cards of a tier.
func (h *Handler) Images(_ context.Context, args []string) error {
	if len(args) != 1 {
		return usage("images <tier>")
	}
	cards := h.store.ImagesIn(h.tierID(args[0]))
	if len(cards) == 0 {
		fmt.Fprintln(h.out, "no images in this tier")
		return nil
	}
	for _, c := range cards {
		fmt.Fprintf(h.out, "%s  %s  (%s)\n", c.ID, c.Content, imageSummary(c.Image))
	}
	return nil
}

// Import creates one card per image file. Files that are not images are skipped.
func (h *Handler) Import(_ context.Context, args []string) error {
	if len(args) < 2 {
		return usage("import <tier> <file>...")
	}
	var images []string
	for _, name := range args[1:] {
		img, err := h.loadImage(name)
		if err != nil {
			fmt.Fprintf(h.out, "skipping %s: %v\n", name, err)
			continue
		}
		images = append(images, img)
	}
	ids, err := h.store.ImportImages(h.tierID(args[0]), images)
	if err != nil {
		return err
	}
	fmt.Fprintf(h.out, "imported %d image(s)\n", len(ids))
	return nil
}

// Drag replays a full drag gesture: start, over, end.
func (h *Handler) Drag(_ context.Context, args []string) error {
	switch {
	case len(args) == 5 && args[0] == "card" && args[2] == "over":
		active := store.Item{Kind: store.KindCard, ID: h.cardID(args[1])}
		var over store.Item
		switch args[3] {
		case "card":
			over = store.Item{Kind: store.KindCard, ID: h.cardID(args[4])}
		case "tier":
			over = store.Item{Kind: store.KindTier, ID: h.tierID(args[4])}
		default:
			return usage("drag card <id> over card|tier <id>")
		}
		h.store.DragStart(active)
		moved := h.store.DragOver(active, &over)
		h.store.DragEnd(active, &over)
		h.report(moved)
		return nil
	case len(args) == 4 && args[0] == "tier" && args[2] == "over":
		active := store.Item{Kind: store.KindTier, ID: h.tierID(args[1])}
		over := store.Item{Kind: store.KindTier, ID: h.tierID(args[3])}
		h.store.DragStart(active)
		h.report(h.store.DragEnd(active, &over))
		return nil
	}
	return usage("drag card <id> over card|tier <id> | drag tier <id> over <id>")
}

func (h *Handler) report(moved bool) {
	if moved {
		fmt.Fprintln(h.out, "moved")
	} else {
		fmt.Fprintln(h.out, "nothing to move")
	}
}

// Undo reverts the last change.
func (h *Handler) Undo(_ context.Context, _ []string) error {
	if !h.store.Undo() {
		fmt.Fprintln(h.out, "nothing to undo")
	}
	return nil
}

// Redo reapplies the last undone change.
func (h *Handler) Redo(_ context.Context, _ []string) error {
	if !h.store.Redo() {
		fmt.Fprintln(h.out, "nothing to redo")
	}
	return nil
}

// Key feeds a chord to the keyboard shortcuts.
func (h *Handler) Key(_ context.Context, args []string) error {
	if len(args) != 1 {
		return usage("key <chord>")
	}
	chord, err := keyboard.ParseChord(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(h.out, "%s\n", h.keys.Handle(chord))
	return nil
}

// Save writes the board to the persistence gateway.
func (h *Handler) Save(ctx context.Context, _ []string) error {
	name, err := h.store.Save(ctx)
	if err != nil {
		return fmt.Errorf("failed to save tier list: %w", err)
	}
	fmt.Fprintf(h.out, "saved as %s\n", name)
	return nil
}

// Load replaces the board with a saved one.
func (h *Handler) Load(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("load <name>")
	}
	if err := h.store.Load(ctx, args[0]); err != nil {
		return fmt.Errorf("failed to load tier list, it may be corrupted or deleted: %w", err)
	}
	fmt.Fprintf(h.out, "loaded %s\n", h.store.Title())
	return nil
}

// Saves lists the saved boards.
func (h *Handler) Saves(ctx context.Context, _ []string) error {
	lists, err := h.store.ListSaved(ctx)
	if err != nil {
		return err
	}
	if len(lists) == 0 {
		fmt.Fprintln(h.out, "you haven't saved any tier lists yet")
		return nil
	}
	for _, l := range lists {
		when := "unknown date"
		if !l.SavedAt.IsZero() {
			when = l.SavedAt.Local().Format("2006-01-02 15:04:05")
		}
		fmt.Fprintf(h.out, "%-30s %-30s %s\n", l.Name, l.Title, when)
	}
	return nil
}

// Forget deletes a saved board.
func (h *Handler) Forget(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("forget <name>")
	}
	if err := h.store.DeleteSaved(ctx, args[0]); err != nil {
		return fmt.Errorf("failed to delete tier list: %w", err)
	}
	fmt.Fprintf(h.out, "deleted %s\n", args[0])
	return nil
}

// Share prints a share link for the board.
func (h *Handler) Share(_ context.Context, _ []string) error {
	link, err := h.store.ShareLink(h.baseURL)
	if err != nil {
		return fmt.Errorf("failed to create shareable link: %w", err)
	}
	fmt.Fprintln(h.out, link)
	return nil
}

// Open loads a board from a share link.
func (h *Handler) Open(_ context.Context, args []string) error {
	if len(args) != 1 {
		return usage("open <link>")
	}
	if err := h.store.OpenShareLink(args[0]); err != nil {
		return fmt.Errorf("failed to load tier list from link: %w", err)
	}
	fmt.Fprintf(h.out, "loaded %s\n", h.store.Title())
	return nil
}

// Export writes the board as YAML or JSON.
func (h *Handler) Export(_ context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return usage("export yaml|json [file]")
	}
	var (
		data []byte
		err  error
	)
	b := h.store.Snapshot()
	switch args[0] {
	case "yaml":
		data, err = export.YAML(b)
	case "json":
		data, err = export.JSON(b)
	default:
		return usage("export yaml|json [file]")
	}
	if err != nil {
		return err
	}
	name := export.FileName(b.Title, args[0])
	if len(args) == 2 {
		name = args[1]
	}
	if err := h.writeFile(name, data); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	fmt.Fprintf(h.out, "wrote %s\n", name)
	return nil
}

// ImportYAML replaces the board with a YAML export.
func (h *Handler) ImportYAML(_ context.Context, args []string) error {
	if len(args) != 1 {
		return usage("import-yaml <file>")
	}
	data, err := h.readFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}
	raw, err := export.FromYAML(data)
	if err != nil {
		return err
	}
	if err := h.store.LoadFromData(raw); err != nil {
		return err
	}
	fmt.Fprintf(h.out, "loaded %s\n", h.store.Title())
	return nil
}

var errNotImage = errors.New("not an image file")

// loadImage reads an image file and returns it as a data URL.
func (h *Handler) loadImage(name string) (string, error) {
	data, err := h.readFile(name)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", name, err)
	}
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return "", errNotImage
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// tierID resolves an exact ID or a unique ID prefix. Unresolved input is
// returned as-is so the store reports it as not found.
func (h *Handler) tierID(arg string) board.ID {
	ids := make([]board.ID, 0)
	for _, t := range h.store.Tiers() {
		ids = append(ids, t.ID)
	}
	return resolve(arg, ids)
}

func (h *Handler) cardID(arg string) board.ID {
	ids := make([]board.ID, 0)
	for _, c := range h.store.Cards() {
		ids = append(ids, c.ID)
	}
	return resolve(arg, ids)
}

func resolve(arg string, ids []board.ID) board.ID {
	var match board.ID
	matches := 0
	for _, id := range ids {
		if string(id) == arg {
			return id
		}
		if strings.HasPrefix(string(id), arg) {
			match = id
			matches++
		}
	}
	if matches == 1 {
		return match
	}
	return board.ID(arg)
}
