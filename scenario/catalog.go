// Package scenario holds the actor templates and the initial spawn plan
package scenario

import (
	"fmt"
	"slices"
	"sync"

	"github.com/lixenwraith/rigsim/actor"
)

// Catalog maps template names to validated definitions
// Definitions are shared by every actor built from them and must not be mutated
type Catalog struct {
	mu   sync.RWMutex
	defs map[string]*actor.Definition
}

// NewCatalog creates an empty catalog
func NewCatalog() *Catalog {
	return &Catalog{defs: make(map[string]*actor.Definition)}
}

// DefaultCatalog returns a catalog holding the built-in templates
func DefaultCatalog() *Catalog {
	c := NewCatalog()
	for _, def := range builtins() {
		if err := c.Register(def); err != nil {
			panic(fmt.Sprintf("builtin template %s: %v", def.Name, err))
		}
	}
	return c
}

// Register adds or replaces a template by its name
func (c *Catalog) Register(def *actor.Definition) error {
	if err := def.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.defs[def.Name] = def
	return nil
}

// Lookup implements logic.Catalog
func (c *Catalog) Lookup(name string) (*actor.Definition, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	def, ok := c.defs[name]
	return def, ok
}

// Names returns all template names sorted
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.defs))
	for name := range c.defs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
