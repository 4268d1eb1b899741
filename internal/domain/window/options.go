package window

// Defaults applied by Open to fields left at their zero value.
const (
	DefaultTitle     = "Hello World"
	DefaultComponent = "hello-world"
	DefaultWidth     = 300
	DefaultHeight    = 91

	// CascadeStep offsets each new window diagonally from the previous one.
	CascadeStep = 24
)

// Options configures a window created by Open. Zero values mean "use the
// default"; there is no way to request an explicit zero width or origin.
type Options struct {
	Title     string   `json:"title,omitempty" yaml:"title" toml:"title"`
	Component string   `json:"component,omitempty" yaml:"component" toml:"component"`
	Icon      string   `json:"icon,omitempty" yaml:"icon" toml:"icon"`
	Size      Size     `json:"size" yaml:"size" toml:"size"`
	Position  Position `json:"position" yaml:"position" toml:"position"`
	Minimized bool     `json:"minimized,omitempty" yaml:"minimized" toml:"minimized"`
	Maximized bool     `json:"maximized,omitempty" yaml:"maximized" toml:"maximized"`
}

// withDefaults returns a copy of o with every unset field filled in. count is
// the number of windows open before the new one is inserted.
func (o Options) withDefaults(count int) Options {
	cascade := (count + 1) * CascadeStep

	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.Component == "" {
		o.Component = DefaultComponent
	}
	if o.Size.Width == 0 {
		o.Size.Width = DefaultWidth
	}
	if o.Size.Height == 0 {
		o.Size.Height = DefaultHeight
	}
	if o.Position.X == 0 {
		o.Position.X = cascade
	}
	if o.Position.Y == 0 {
		o.Position.Y = cascade
	}
	return o
}
