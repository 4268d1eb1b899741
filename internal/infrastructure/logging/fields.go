package logging

import (
	"go.uber.org/zap"
)

// Field keys shared by every component, so one session can be followed
// across ws, desktop and trace logs.
const (
	KeyDesktopID = "desktop_id"
	KeyConnID    = "conn_id"
	KeyWindow    = "window"
	KeyProgram   = "program"
	KeyEvent     = "event"
)

// DesktopID tags a log line with a desktop session
func DesktopID(id string) zap.Field {
	return zap.String(KeyDesktopID, id)
}

// ConnID tags a log line with a WebSocket connection
func ConnID(id string) zap.Field {
	return zap.String(KeyConnID, id)
}

// Window tags a log line with a window handle
func Window(handle int) zap.Field {
	return zap.Int(KeyWindow, handle)
}

// Program tags a log line with a catalog program
func Program(id string) zap.Field {
	return zap.String(KeyProgram, id)
}

// Event tags a log line with a client event type
func Event(eventType string) zap.Field {
	return zap.String(KeyEvent, eventType)
}
