package desktop

import (
	"github.com/bytedance/sonic"

	"github.com/GriffinCanCode/retrodesk/internal/domain/window"
)

// EventType names a client event
type EventType string

// Window events map one to one onto store actions.
const (
	EventOpen           = EventType(window.ActionOpen)
	EventClose          = EventType(window.ActionClose)
	EventSetTitle       = EventType(window.ActionSetTitle)
	EventSetIcon        = EventType(window.ActionSetIcon)
	EventSetSize        = EventType(window.ActionSetSize)
	EventSetPosition    = EventType(window.ActionSetPosition)
	EventToggleMinimize = EventType(window.ActionToggleMinimize)
	EventToggleMaximize = EventType(window.ActionToggleMaximize)
	EventBringToFront   = EventType(window.ActionBringToFront)
)

// Desktop-level events.
const (
	EventLaunch        EventType = "launch"
	EventPointerDown   EventType = "pointer_down"
	EventPointerMove   EventType = "pointer_move"
	EventPointerUp     EventType = "pointer_up"
	EventPointerCancel EventType = "pointer_cancel"
)

// Event is one message from the browser. X and Y carry the size/position
// vector for window events and the pointer location for pointer events.
type Event struct {
	Type      EventType      `json:"type"`
	Handle    window.Handle  `json:"index"`
	Program   string         `json:"program,omitempty"`
	Title     string         `json:"title,omitempty"`
	Icon      string         `json:"icon,omitempty"`
	X         int            `json:"x"`
	Y         int            `json:"y"`
	Override  bool           `json:"override,omitempty"`
	PointerID int            `json:"pointerId"`
	Options   window.Options `json:"options"`
}

// DecodeEvent parses one client message. A message without an index
// addresses no window, so handle-addressed events on it are no-ops.
func DecodeEvent(data []byte) (Event, error) {
	ev := Event{Handle: window.NoHandle}
	if err := sonic.Unmarshal(data, &ev); err != nil {
		return Event{}, err
	}
	return ev, nil
}
