// Package window implements the window store behind the retro desktop.
//
// A Store holds the ordered collection of open windows and applies the fixed
// set of named operations the presentation layer dispatches:
//
//   - Open: append a window, focus it, give it the top stacking slot
//   - Close: remove a window by handle
//   - SetTitle, SetIcon: overwrite display fields
//   - SetSize, SetPosition: replace or accumulate geometry
//   - ToggleMinimize, ToggleMaximize: flip presentation flags
//   - BringToFront: move a window to the top of the stack and focus it
//
// Windows are addressed by Handle, a stable identity assigned at creation and
// never reused. A handle's position in the backing slice changes as windows
// close, so every lookup scans.
//
// Stacking invariants:
//   - ZIndex values form the dense range [0, Len()-1]
//   - at most one window has OnTop set
//
// Every handle-addressed operation is a no-op when the handle no longer
// resolves and reports that through its boolean result.
//
// A Store is not safe for concurrent use. Each desktop session owns exactly
// one and mutates it from a single goroutine.
//
// Example Usage:
//
//	store := window.NewStore()
//	h := store.Open(window.Options{Title: "archived.tar.gz"})
//	store.SetPosition(h, window.Vector{X: 5, Y: 5}, false)
//	store.BringToFront(h)
package window
