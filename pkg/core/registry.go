package core

import (
	"maps"
	"slices"

	"lafont/pkg/inet"
)

// Factory builds an initial net from flag-style key/value options.
type Factory func(cfg map[string]string) (*inet.Net, error)

// Program is a named initial net.
type Program struct {
	Name        string
	Description string
	Build       Factory
}

var programs = map[string]Program{}

// Register adds a program factory under the provided name.
func Register(name, description string, f Factory) {
	if name == "" || f == nil {
		return
	}
	programs[name] = Program{Name: name, Description: description, Build: f}
}

// Lookup returns the program registered under name.
func Lookup(name string) (Program, bool) {
	p, ok := programs[name]
	return p, ok
}

// Programs exposes the registry of available programs.
func Programs() map[string]Program {
	return programs
}

// Names lists the registered program names in sorted order.
func Names() []string {
	return slices.Sorted(maps.Keys(programs))
}
