package window

import (
	"errors"
	"fmt"
)

// ErrUnknownAction is returned by Dispatch for an unrecognised action type
var ErrUnknownAction = errors.New("unknown window action")

// ActionType names one store operation
type ActionType string

const (
	ActionOpen           ActionType = "open"
	ActionClose          ActionType = "close"
	ActionSetTitle       ActionType = "set_title"
	ActionSetIcon        ActionType = "set_icon"
	ActionSetSize        ActionType = "set_size"
	ActionSetPosition    ActionType = "set_position"
	ActionToggleMinimize ActionType = "toggle_minimize"
	ActionToggleMaximize ActionType = "toggle_maximize"
	ActionBringToFront   ActionType = "bring_to_front"
)

// Action is a named operation with its payload
type Action struct {
	Type     ActionType `json:"type"`
	Handle   Handle     `json:"index"`
	Title    string     `json:"title,omitempty"`
	Icon     string     `json:"icon,omitempty"`
	Vector   Vector     `json:"vector"`
	Override bool       `json:"override,omitempty"`
	Options  Options    `json:"options"`
}

// Result reports the outcome of a dispatched action. Handle is the new
// window's handle for open and the addressed handle otherwise.
type Result struct {
	Handle  Handle
	Applied bool
}

// Dispatch applies a to the store
func (s *Store) Dispatch(a Action) (Result, error) {
	res := Result{Handle: a.Handle}

	switch a.Type {
	case ActionOpen:
		res.Handle = s.Open(a.Options)
		res.Applied = true
	case ActionClose:
		res.Applied = s.Close(a.Handle)
	case ActionSetTitle:
		res.Applied = s.SetTitle(a.Handle, a.Title)
	case ActionSetIcon:
		res.Applied = s.SetIcon(a.Handle, a.Icon)
	case ActionSetSize:
		res.Applied = s.SetSize(a.Handle, a.Vector, a.Override)
	case ActionSetPosition:
		res.Applied = s.SetPosition(a.Handle, a.Vector, a.Override)
	case ActionToggleMinimize:
		res.Applied = s.ToggleMinimize(a.Handle)
	case ActionToggleMaximize:
		res.Applied = s.ToggleMaximize(a.Handle)
	case ActionBringToFront:
		res.Applied = s.BringToFront(a.Handle)
	default:
		return Result{Handle: NoHandle}, fmt.Errorf("%w: %q", ErrUnknownAction, a.Type)
	}

	return res, nil
}
