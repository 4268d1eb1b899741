package render

import (
	"fmt"
	"html/template"

	"github.com/GriffinCanCode/retrodesk/internal/domain/catalog"
	"github.com/GriffinCanCode/retrodesk/internal/domain/desktop"
	"github.com/GriffinCanCode/retrodesk/internal/domain/window"
)

// Site holds page metadata shared by every page
type Site struct {
	Title string
	URL   string
}

type windowView struct {
	window.Record
	Program catalog.Program
	Focused bool
	Style   template.CSS
}

type desktopView struct {
	Site     Site
	Page     string
	Desktop  string
	Programs []catalog.Program
	Windows  []windowView
}

type archiveView struct {
	Site    Site
	Page    string
	Program catalog.Program
	Style   template.CSS
	Script  template.JS
}

func (r *Renderer) desktopView(snap desktop.Snapshot) desktopView {
	return desktopView{
		Site:     r.site,
		Page:     r.site.Title,
		Desktop:  snap.ID,
		Programs: r.catalog.List(),
		Windows:  r.windowViews(snap),
	}
}

func (r *Renderer) windowViews(snap desktop.Snapshot) []windowView {
	views := make([]windowView, 0, len(snap.Windows))
	for _, w := range snap.Windows {
		prog, _ := r.catalog.Get(w.Component)
		views = append(views, windowView{
			Record:  w,
			Program: prog,
			Focused: w.Handle == snap.Focused,
			Style:   windowStyle(w),
		})
	}
	return views
}

// windowStyle places a panel. Heights are minimums so content is never
// clipped; maximized panels fill the desktop.
func windowStyle(w window.Record) template.CSS {
	if w.Maximized {
		return template.CSS(fmt.Sprintf("left:0;top:0;width:100%%;height:100%%;z-index:%d", w.ZIndex))
	}
	return template.CSS(fmt.Sprintf("left:%dpx;top:%dpx;width:%dpx;min-height:%dpx;z-index:%d",
		w.Position.X, w.Position.Y, w.Size.Width, w.Size.Height, w.ZIndex))
}
