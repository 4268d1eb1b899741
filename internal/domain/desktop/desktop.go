package desktop

import (
	"errors"
	"fmt"
	"html"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/retrodesk/internal/domain/catalog"
	"github.com/GriffinCanCode/retrodesk/internal/domain/drag"
	"github.com/GriffinCanCode/retrodesk/internal/domain/window"
	"github.com/GriffinCanCode/retrodesk/internal/infrastructure/logging"
	"github.com/GriffinCanCode/retrodesk/internal/shared/utils"
)

// ErrInvalidEvent is returned for events that fail validation
var ErrInvalidEvent = errors.New("invalid event")

// Recorder observes window operations (implemented by monitoring.Metrics)
type Recorder interface {
	RecordWindowOp(op string, applied bool)
	AddWindowsOpen(delta int)
}

type nopRecorder struct{}

func (nopRecorder) RecordWindowOp(string, bool) {}
func (nopRecorder) AddWindowsOpen(int)          {}

// Snapshot is the renderable state of a desktop
type Snapshot struct {
	ID       string          `json:"id"`
	Windows  []window.Record `json:"windows"` // bottom to top
	Focused  window.Handle   `json:"focused"`
	Dragging bool            `json:"dragging"`
}

// Desktop is one browser's window session. It is driven by a single
// goroutine and is not safe for concurrent use.
type Desktop struct {
	id        string
	store     *window.Store
	tracker   *drag.Tracker
	catalog   *catalog.Catalog
	sanitizer *bluemonday.Policy
	recorder  Recorder
	logger    *zap.Logger
}

// New creates an empty desktop backed by cat
func New(cat *catalog.Catalog, logger *zap.Logger) *Desktop {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cat == nil {
		cat = catalog.Default()
	}

	id := uuid.New().String()
	return &Desktop{
		id:        id,
		store:     window.NewStore(),
		tracker:   drag.NewTracker(),
		catalog:   cat,
		sanitizer: bluemonday.StrictPolicy(),
		recorder:  nopRecorder{},
		logger:    logger.With(logging.DesktopID(id)),
	}
}

// WithRecorder adds operation tracking to the desktop
func (d *Desktop) WithRecorder(r Recorder) *Desktop {
	if r != nil {
		d.recorder = r
	}
	return d
}

// ID returns the desktop identifier
func (d *Desktop) ID() string {
	return d.id
}

// Catalog returns the programs this desktop can launch
func (d *Desktop) Catalog() *catalog.Catalog {
	return d.catalog
}

// Launch opens a catalog program as a new window
func (d *Desktop) Launch(programID string) (window.Handle, error) {
	opts, err := d.catalog.Options(programID)
	if err != nil {
		return window.NoHandle, err
	}

	res, err := d.apply(window.Action{Type: window.ActionOpen, Options: opts})
	if err != nil {
		return window.NoHandle, err
	}
	return res.Handle, nil
}

// Start launches programs in order. Programs that fail to launch are
// skipped; their errors are joined.
func (d *Desktop) Start(programs ...string) error {
	var errs []error
	for _, id := range programs {
		if _, err := d.Launch(id); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Handle applies one client event and returns the resulting state
func (d *Desktop) Handle(ev Event) (Snapshot, error) {
	if err := d.handle(ev); err != nil {
		return d.Snapshot(), err
	}
	return d.Snapshot(), nil
}

func (d *Desktop) handle(ev Event) error {
	switch ev.Type {
	case EventLaunch:
		_, err := d.Launch(ev.Program)
		return err

	case EventPointerDown:
		return d.pointerDown(ev)

	case EventPointerMove:
		h, delta, ok := d.tracker.Move(ev.PointerID, drag.Point{X: ev.X, Y: ev.Y})
		if !ok {
			return nil
		}
		if delta == (window.Vector{}) {
			return nil
		}
		_, err := d.apply(window.Action{Type: window.ActionSetPosition, Handle: h, Vector: delta})
		return err

	case EventPointerUp:
		if g, err := d.tracker.End(ev.PointerID); err == nil {
			d.logger.Debug("Drag finished",
				logging.Window(int(g.Handle)),
				zap.Int("dx", g.Total().X),
				zap.Int("dy", g.Total().Y),
			)
		}
		return nil

	case EventPointerCancel:
		d.tracker.Cancel()
		return nil
	}

	action, err := d.toAction(ev)
	if err != nil {
		return err
	}

	if action.Type == window.ActionClose {
		if g, dragging := d.tracker.Current(); dragging && g.Handle == action.Handle {
			d.tracker.Cancel()
		}
	}

	_, err = d.apply(action)
	return err
}

func (d *Desktop) pointerDown(ev Event) error {
	if _, ok := d.store.Get(ev.Handle); !ok {
		d.recorder.RecordWindowOp(string(window.ActionBringToFront), false)
		return nil
	}

	if err := d.tracker.Begin(ev.PointerID, ev.Handle, drag.Point{X: ev.X, Y: ev.Y}); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEvent, err)
	}

	_, err := d.apply(window.Action{Type: window.ActionBringToFront, Handle: ev.Handle})
	return err
}

// toAction converts a window event into a store action, validating and
// sanitising client-supplied text.
func (d *Desktop) toAction(ev Event) (window.Action, error) {
	action := window.Action{
		Type:     window.ActionType(ev.Type),
		Handle:   ev.Handle,
		Vector:   window.Vector{X: ev.X, Y: ev.Y},
		Override: ev.Override,
		Options:  ev.Options,
	}

	switch action.Type {
	case window.ActionOpen:
		if err := utils.ValidateIcon(ev.Options.Icon); err != nil {
			return action, fmt.Errorf("%w: %w", ErrInvalidEvent, err)
		}
		action.Options.Title = d.sanitizeTitle(ev.Options.Title)
		if action.Options.Component != "" {
			if _, ok := d.catalog.Get(action.Options.Component); !ok {
				return action, fmt.Errorf("%w: %s", catalog.ErrUnknownProgram, action.Options.Component)
			}
		}
	case window.ActionSetTitle:
		if err := utils.ValidateTitle(ev.Title); err != nil {
			return action, fmt.Errorf("%w: %w", ErrInvalidEvent, err)
		}
		action.Title = d.sanitizeTitle(ev.Title)
	case window.ActionSetIcon:
		if err := utils.ValidateIcon(ev.Icon); err != nil {
			return action, fmt.Errorf("%w: %w", ErrInvalidEvent, err)
		}
		action.Icon = ev.Icon
	}

	return action, nil
}

// sanitizeTitle strips markup. The result is plain text; templates escape it
// again on output.
func (d *Desktop) sanitizeTitle(title string) string {
	return html.UnescapeString(d.sanitizer.Sanitize(title))
}

func (d *Desktop) apply(action window.Action) (window.Result, error) {
	before := d.store.Len()

	res, err := d.store.Dispatch(action)
	if err != nil {
		return res, fmt.Errorf("%w: %w", ErrInvalidEvent, err)
	}

	d.recorder.RecordWindowOp(string(action.Type), res.Applied)
	if delta := d.store.Len() - before; delta != 0 {
		d.recorder.AddWindowsOpen(delta)
	}

	if !res.Applied {
		d.logger.Debug("Window operation ignored",
			zap.String("op", string(action.Type)),
			logging.Window(int(action.Handle)),
		)
	}
	return res, nil
}

// Snapshot returns the current state in paint order
func (d *Desktop) Snapshot() Snapshot {
	snap := Snapshot{
		ID:       d.id,
		Windows:  d.store.Stacked(),
		Focused:  window.NoHandle,
		Dragging: d.tracker.Active(),
	}
	if w, ok := d.store.Focused(); ok {
		snap.Focused = w.Handle
	}
	return snap
}

// Close releases any drag capture and retires the desktop's windows from
// the recorder.
func (d *Desktop) Close() {
	d.tracker.Cancel()
	if n := d.store.Len(); n > 0 {
		d.recorder.AddWindowsOpen(-n)
	}
}
