package window

// Handle is the stable identity of a window.
type Handle int

// NoHandle never resolves to a window.
const NoHandle Handle = -1

// Size represents window dimensions in pixels
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Position represents a screen-relative window origin in pixels
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Vector is the payload of SetSize and SetPosition. Depending on the override
// flag it is applied as absolute values or as deltas.
type Vector struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Record represents one open window
type Record struct {
	Title     string   `json:"title"`
	Component string   `json:"component"`
	Icon      string   `json:"icon,omitempty"`
	Size      Size     `json:"size"`
	Position  Position `json:"position"`
	Minimized bool     `json:"minimized"`
	Maximized bool     `json:"maximized"`
	ZIndex    int      `json:"zIndex"`
	Handle    Handle   `json:"index"`
	OnTop     bool     `json:"isOnTop"`
}
