package catalog

import (
	"errors"
	"fmt"

	"github.com/GriffinCanCode/retrodesk/internal/domain/window"
	"github.com/GriffinCanCode/retrodesk/internal/shared/utils"
)

// ErrUnknownProgram is returned when a program ID is not in the catalog
var ErrUnknownProgram = errors.New("unknown program")

// Link is a labelled button inside a program window
type Link struct {
	Label string `json:"label" yaml:"label" toml:"label"`
	URL   string `json:"url" yaml:"url" toml:"url"`
}

// Program is a component that can be opened as a window
type Program struct {
	ID     string   `json:"id" yaml:"id" toml:"id"`
	Title  string   `json:"title" yaml:"title" toml:"title"`
	Icon   string   `json:"icon,omitempty" yaml:"icon" toml:"icon"`
	Width  int      `json:"width,omitempty" yaml:"width" toml:"width"`
	Height int      `json:"height,omitempty" yaml:"height" toml:"height"`
	X      int      `json:"x,omitempty" yaml:"x" toml:"x"`
	Y      int      `json:"y,omitempty" yaml:"y" toml:"y"`
	Body   []string `json:"body,omitempty" yaml:"body" toml:"body"`
	Links  []Link   `json:"links,omitempty" yaml:"links" toml:"links"`
}

// Validate checks the fields a program needs to be launched
func (p Program) Validate() error {
	if err := utils.ValidateID(p.ID, "program id", true); err != nil {
		return err
	}
	if err := utils.ValidateTitle(p.Title); err != nil {
		return fmt.Errorf("program %s: %w", p.ID, err)
	}
	if p.Width < 0 || p.Height < 0 {
		return fmt.Errorf("program %s: negative size", p.ID)
	}
	return nil
}

// Options converts the program's defaults into window options
func (p Program) Options() window.Options {
	return window.Options{
		Title:     p.Title,
		Component: p.ID,
		Icon:      p.Icon,
		Size:      window.Size{Width: p.Width, Height: p.Height},
		Position:  window.Position{X: p.X, Y: p.Y},
	}
}

// Catalog is an ordered set of programs. It is read-only once built and
// shared by every desktop.
type Catalog struct {
	order    []string
	programs map[string]Program
}

// New creates a catalog from programs. Later entries replace earlier ones
// with the same ID but keep the original position.
func New(programs ...Program) *Catalog {
	c := &Catalog{programs: make(map[string]Program, len(programs))}
	for _, p := range programs {
		c.put(p)
	}
	return c
}

func (c *Catalog) put(p Program) {
	if _, exists := c.programs[p.ID]; !exists {
		c.order = append(c.order, p.ID)
	}
	c.programs[p.ID] = p
}

// Get returns a program by ID
func (c *Catalog) Get(id string) (Program, bool) {
	p, ok := c.programs[id]
	return p, ok
}

// List returns all programs in catalog order
func (c *Catalog) List() []Program {
	out := make([]Program, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.programs[id])
	}
	return out
}

// Len returns the number of programs
func (c *Catalog) Len() int {
	return len(c.order)
}

// Options returns the window options used to launch a program
func (c *Catalog) Options(id string) (window.Options, error) {
	p, ok := c.programs[id]
	if !ok {
		return window.Options{}, fmt.Errorf("%w: %s", ErrUnknownProgram, id)
	}
	return p.Options(), nil
}

// Default returns the built-in programs
func Default() *Catalog {
	return New(
		Program{
			ID:    window.DefaultComponent,
			Title: window.DefaultTitle,
			Body:  []string{"Hello, World!"},
		},
		Program{
			ID:    "archive",
			Title: "archived.tar.gz",
			Width: 300,
			Body:  []string{"Here's some projects I no longer work on (currently only one):"},
			Links: []Link{
				{Label: "BotSauce", URL: "https://github.com/BotSauce/BotSauce"},
			},
		},
	)
}
