// Package logging builds the zap logger for the server.
//
// Production logs are JSON with a service field; development logs are
// coloured console lines. LOG_OUTPUT picks stdout, stderr or a file.
//
// Each component logs through a named child, and session-scoped lines carry
// the shared keys from fields.go:
//
//	log := root.Component(logging.ComponentWS).With(logging.ConnID(id))
//	log.Info("Desktop session opened", logging.DesktopID(d.ID()))
package logging
