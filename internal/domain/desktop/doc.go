// Package desktop ties a window store, a drag tracker and the program
// catalog into one browser session.
//
// The browser sends Events. Window events are validated and applied to the
// store; pointer events drive the drag tracker, which converts title-bar drags
// into relative SetPosition operations. Every event yields a Snapshot that
// the presentation layer re-renders from.
//
// Pointer sequence:
//
//	pointer_down  -> BringToFront(window), capture pointer
//	pointer_move  -> SetPosition(window, delta, override=false)
//	pointer_up    -> release capture
//	pointer_cancel-> release capture
package desktop
