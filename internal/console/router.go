// Package console drives a Store from line-oriented terminal commands.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/kballard/go-shellquote"
)

// ErrQuit is returned by a handler to end the command loop.
var ErrQuit = errors.New("quit")

// ErrUnknownCommand is returned for a verb with no registered handler.
var ErrUnknownCommand = errors.New("unknown command")

// ErrUsage is wrapped by handlers when arguments are missing or malformed.
var ErrUsage = errors.New("usage")

// HandlerFunc runs one command. args excludes the command verb.
type HandlerFunc func(ctx context.Context, args []string) error

// Middleware wraps a HandlerFunc.
type Middleware func(name string, next HandlerFunc) HandlerFunc

type route struct {
	handler HandlerFunc
	usage   string
}

// Router maps command verbs to handlers.
type Router struct {
	routes     map[string]route
	middleware []Middleware
}

// NewRouter creates an empty Router.
func NewRouter() *Router {
	return &Router{routes: make(map[string]route)}
}

// Use appends middleware applied to every handler registered afterwards.
func (r *Router) Use(mw Middleware) {
	r.middleware = append(r.middleware, mw)
}

// Handle registers h under name.
func (r *Router) Handle(name, usage string, h HandlerFunc) {
	for i := len(r.middleware) - 1; i >= 0; i-- {
		h = r.middleware[i](name, h)
	}
	r.routes[name] = route{handler: h, usage: usage}
}

// Usage returns one line per registered command, sorted by verb.
func (r *Router) Usage() []string {
	names := make([]string, 0, len(r.routes))
	for name := range r.routes {
		names = append(names, name)
	}
	sort.Strings(names)
	lines := make([]string, len(names))
	for i, name := range names {
		lines[i] = r.routes[name].usage
	}
	return lines
}

// Dispatch splits line shell-style and runs the matching handler.
// Blank lines and lines starting with '#' are ignored.
func (r *Router) Dispatch(ctx context.Context, line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}
	words, err := shellquote.Split(line)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	rt, ok := r.routes[strings.ToLower(words[0])]
	if !ok {
		return fmt.Errorf("%w %q (try \"help\")", ErrUnknownCommand, words[0])
	}
	return rt.handler(ctx, words[1:])
}

// Run reads commands from in until EOF, ErrQuit or ctx cancellation.
// Command errors are written to out and do not stop the loop.
func Run(ctx context.Context, in io.Reader, out io.Writer, r *Router, prompt string) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), 64<<20)
	for {
		if ctx.Err() != nil {
			return nil
		}
		if prompt != "" {
			fmt.Fprint(out, prompt)
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("reading commands: %w", err)
			}
			return nil
		}
		err := r.Dispatch(ctx, scanner.Text())
		switch {
		case errors.Is(err, ErrQuit):
			return nil
		case err != nil:
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}
}
