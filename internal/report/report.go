// Package report defines canned queries over a conference store. Reports
// register themselves by name in init functions; the command layer looks
// them up and renders whatever records they return.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/stagefront/marquee/internal/store"
)

// Report is a named, parameterless query against an open store.
type Report interface {
	// Title returns the human-readable report heading.
	Title() string
	// Run executes the report against st.
	Run(st *store.Store) ([]store.Record, error)
}

// Factory builds a fresh Report instance.
type Factory func() Report

var registry = map[string]Factory{}

// Register makes a report constructor available under name. It panics when
// the name is already taken; registration runs from init functions where a
// collision is a programming error.
func Register(name string, f Factory) {
	if f == nil {
		panic("report: Register with nil factory")
	}
	if _, dup := registry[name]; dup {
		panic(fmt.Sprintf("report: Register called twice for %s", name))
	}
	registry[name] = f
}

// New returns the report registered under name.
func New(name string) (Report, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown report %q (valid: %s)", name, strings.Join(Names(), ", "))
	}
	return f(), nil
}

// Names lists the registered report names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
