package window

import (
	"slices"
	"sort"
)

// Store holds the open windows of one desktop
type Store struct {
	windows    []Record
	nextHandle Handle
}

// NewStore creates an empty window store
func NewStore() *Store {
	return &Store{windows: []Record{}}
}

// indexOf returns the slice position of the window with handle h, or -1
func (s *Store) indexOf(h Handle) int {
	for i := range s.windows {
		if s.windows[i].Handle == h {
			return i
		}
	}
	return -1
}

func (s *Store) clearFocus() {
	for i := range s.windows {
		s.windows[i].OnTop = false
	}
}

// Open appends a new window on top of the stack and focuses it
func (s *Store) Open(opts Options) Handle {
	count := len(s.windows)
	opts = opts.withDefaults(count)

	s.clearFocus()

	h := s.nextHandle
	s.nextHandle++

	s.windows = append(s.windows, Record{
		Title:     opts.Title,
		Component: opts.Component,
		Icon:      opts.Icon,
		Size:      opts.Size,
		Position:  opts.Position,
		Minimized: opts.Minimized,
		Maximized: opts.Maximized,
		ZIndex:    count,
		Handle:    h,
		OnTop:     true,
	})

	return h
}

// Close removes a window. Windows stacked above it move down one slot.
func (s *Store) Close(h Handle) bool {
	i := s.indexOf(h)
	if i < 0 {
		return false
	}

	removedZ := s.windows[i].ZIndex
	for j := range s.windows {
		if s.windows[j].ZIndex > removedZ {
			s.windows[j].ZIndex--
		}
	}

	s.windows = slices.Delete(s.windows, i, i+1)
	return true
}

// SetTitle overwrites a window's title
func (s *Store) SetTitle(h Handle, title string) bool {
	i := s.indexOf(h)
	if i < 0 {
		return false
	}
	s.windows[i].Title = title
	return true
}

// SetIcon overwrites a window's icon reference
func (s *Store) SetIcon(h Handle, icon string) bool {
	i := s.indexOf(h)
	if i < 0 {
		return false
	}
	s.windows[i].Icon = icon
	return true
}

// SetSize replaces the window size with v when override is set, otherwise
// adds v to the current size.
func (s *Store) SetSize(h Handle, v Vector, override bool) bool {
	i := s.indexOf(h)
	if i < 0 {
		return false
	}

	size := &s.windows[i].Size
	if override {
		size.Width, size.Height = v.X, v.Y
	} else {
		size.Width += v.X
		size.Height += v.Y
	}
	return true
}

// SetPosition replaces the window origin with v when override is set,
// otherwise adds v to the current origin.
func (s *Store) SetPosition(h Handle, v Vector, override bool) bool {
	i := s.indexOf(h)
	if i < 0 {
		return false
	}

	pos := &s.windows[i].Position
	if override {
		pos.X, pos.Y = v.X, v.Y
	} else {
		pos.X += v.X
		pos.Y += v.Y
	}
	return true
}

// ToggleMinimize flips the minimized flag
func (s *Store) ToggleMinimize(h Handle) bool {
	i := s.indexOf(h)
	if i < 0 {
		return false
	}
	s.windows[i].Minimized = !s.windows[i].Minimized
	return true
}

// ToggleMaximize flips the maximized flag
func (s *Store) ToggleMaximize(h Handle) bool {
	i := s.indexOf(h)
	if i < 0 {
		return false
	}
	s.windows[i].Maximized = !s.windows[i].Maximized
	return true
}

// BringToFront moves a window to the top of the stack and focuses it.
// Every window above it moves down one slot. A stale handle leaves the
// current focus untouched.
func (s *Store) BringToFront(h Handle) bool {
	i := s.indexOf(h)
	if i < 0 {
		return false
	}

	s.clearFocus()

	targetZ := s.windows[i].ZIndex
	for j := range s.windows {
		if s.windows[j].ZIndex > targetZ {
			s.windows[j].ZIndex--
		}
	}

	s.windows[i].ZIndex = len(s.windows) - 1
	s.windows[i].OnTop = true
	return true
}

// Get returns a copy of one window
func (s *Store) Get(h Handle) (Record, bool) {
	i := s.indexOf(h)
	if i < 0 {
		return Record{}, false
	}
	return s.windows[i], true
}

// Records returns a copy of all windows in creation order
func (s *Store) Records() []Record {
	return slices.Clone(s.windows)
}

// Stacked returns a copy of all windows ordered bottom to top
func (s *Store) Stacked() []Record {
	out := slices.Clone(s.windows)
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].ZIndex < out[b].ZIndex
	})
	return out
}

// Focused returns the window that currently has focus
func (s *Store) Focused() (Record, bool) {
	for _, w := range s.windows {
		if w.OnTop {
			return w, true
		}
	}
	return Record{}, false
}

// Len returns the number of open windows
func (s *Store) Len() int {
	return len(s.windows)
}
