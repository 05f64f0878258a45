// Package keyboard maps key chords onto undo and redo.
package keyboard

import (
	"fmt"
	"strings"
)

// Chord is one key press with its modifiers.
type Chord struct {
	Key   string
	Ctrl  bool
	Meta  bool
	Shift bool
	Alt   bool
}

// ParseChord parses chords such as "ctrl+z", "cmd+shift+z" or "Ctrl+Y".
func ParseChord(s string) (Chord, error) {
	var c Chord
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "+")
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if i == len(parts)-1 {
			if p == "" {
				return Chord{}, fmt.Errorf("chord %q has no key", s)
			}
			c.Key = p
			break
		}
		switch p {
		case "ctrl", "control":
			c.Ctrl = true
		case "cmd", "meta", "super":
			c.Meta = true
		case "shift":
			c.Shift = true
		case "alt", "option":
			c.Alt = true
		default:
			return Chord{}, fmt.Errorf("unknown modifier %q in chord %q", p, s)
		}
	}
	return c, nil
}

// Action is the outcome of handling a chord.
type Action int

const (
	ActionNone Action = iota
	ActionUndo
	ActionRedo
)

func (a Action) String() string {
	switch a {
	case ActionUndo:
		return "undo"
	case ActionRedo:
		return "redo"
	default:
		return "none"
	}
}

// Shortcuts binds undo and redo to their conventional chords.
type Shortcuts struct {
	Undo    func()
	Redo    func()
	CanUndo func() bool
	CanRedo func() bool
	// Disabled suppresses every shortcut, e.g. while a text field has focus.
	Disabled func() bool
}

// Classify returns the action a chord maps to, ignoring whether it is permitted.
func Classify(c Chord) Action {
	if !c.Ctrl && !c.Meta {
		return ActionNone
	}
	switch {
	case c.Key == "z" && !c.Shift:
		return ActionUndo
	case c.Key == "y", c.Key == "z" && c.Shift:
		return ActionRedo
	}
	return ActionNone
}

// Handle runs the action bound to c if it is permitted and returns it.
// ActionNone means the chord was ignored and should reach other handlers.
func (s Shortcuts) Handle(c Chord) Action {
	if s.Disabled != nil && s.Disabled() {
		return ActionNone
	}
	switch Classify(c) {
	case ActionUndo:
		if s.Undo == nil || !allowed(s.CanUndo) {
			return ActionNone
		}
		s.Undo()
		return ActionUndo
	case ActionRedo:
		if s.Redo == nil || !allowed(s.CanRedo) {
			return ActionNone
		}
		s.Redo()
		return ActionRedo
	}
	return ActionNone
}

func allowed(fn func() bool) bool {
	return fn == nil || fn()
}
