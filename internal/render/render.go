package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/GriffinCanCode/retrodesk/internal/domain/catalog"
	"github.com/GriffinCanCode/retrodesk/internal/domain/desktop"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/desktop.js
var desktopScript []byte

//go:embed static/archive.js
var archiveScript string

// ArchiveProgram is the catalog entry the archive page is drawn from
const ArchiveProgram = "archive"

const archivePageTitle = "archive.tar.gz"

// archiveOffset places the archive window clear of the page corner
const archiveOffset = 24

// Renderer executes the page templates. It is safe for concurrent use.
type Renderer struct {
	site    Site
	catalog *catalog.Catalog
	tmpl    *template.Template
}

// New parses the embedded templates
func New(site Site, cat *catalog.Catalog) (*Renderer, error) {
	if cat == nil {
		cat = catalog.Default()
	}

	tmpl, err := template.New("").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Renderer{site: site, catalog: cat, tmpl: tmpl}, nil
}

// Desktop writes the full desktop page
func (r *Renderer) Desktop(w io.Writer, snap desktop.Snapshot) error {
	return r.tmpl.ExecuteTemplate(w, "desktop.html", r.desktopView(snap))
}

// Windows writes only the window panels and the taskbar entries
func (r *Renderer) Windows(w io.Writer, snap desktop.Snapshot) error {
	return r.tmpl.ExecuteTemplate(w, "windows", r.desktopView(snap))
}

// WindowsHTML renders the windows fragment to a string
func (r *Renderer) WindowsHTML(snap desktop.Snapshot) (string, error) {
	var buf bytes.Buffer
	if err := r.Windows(&buf, snap); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Archive writes the standalone archive page. Its window is dragged by the
// title bar with an inline script; there is no server session behind it.
func (r *Renderer) Archive(w io.Writer) error {
	prog, ok := r.catalog.Get(ArchiveProgram)
	if !ok {
		return fmt.Errorf("%w: %s", catalog.ErrUnknownProgram, ArchiveProgram)
	}

	width := prog.Width
	if width == 0 {
		width = 300
	}

	style := fmt.Sprintf("position:absolute;left:%dpx;top:%dpx;width:%dpx", archiveOffset, archiveOffset, width)
	return r.tmpl.ExecuteTemplate(w, "archive.html", archiveView{
		Site:    r.site,
		Page:    archivePageTitle,
		Program: prog,
		Style:   template.CSS(style),
		Script:  template.JS(archiveScript),
	})
}

// Script returns the client script
func (r *Renderer) Script() []byte {
	return desktopScript
}
