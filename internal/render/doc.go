// Package render draws desktop snapshots as 98.css HTML.
//
// Every window record becomes a ".window" panel positioned from its
// Position, sized from its Size and stacked by its ZIndex. Minimized windows
// are hidden and only appear on the taskbar; maximized windows fill the
// desktop. The focused window has an active title bar, all others are
// drawn inactive.
//
// The full page is served once over HTTP. After that the browser only swaps
// the windows fragment that arrives over the WebSocket. The embedded
// desktop.js captures the pointer on the desktop root when a title bar is
// pressed and releases it on pointerup or pointercancel.
package render
