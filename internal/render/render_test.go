package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/retrodesk/internal/domain/catalog"
	"github.com/GriffinCanCode/retrodesk/internal/domain/desktop"
)

var testSite = Site{Title: "monty.exe", URL: "https://monty.ga"}

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New(testSite, catalog.Default())
	require.NoError(t, err)
	return r
}

// openDesktop returns a desktop with hello-world under archive, archive focused
func openDesktop(t *testing.T) *desktop.Desktop {
	t.Helper()
	d := desktop.New(catalog.Default(), nil)
	_, err := d.Launch("hello-world")
	require.NoError(t, err)
	_, err = d.Launch("archive")
	require.NoError(t, err)
	return d
}

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestDesktopPage(t *testing.T) {
	r := newRenderer(t)
	d := openDesktop(t)

	var buf bytes.Buffer
	require.NoError(t, r.Desktop(&buf, d.Snapshot()))
	doc := parse(t, buf.String())

	assert.Equal(t, "monty.exe", doc.Find("title").Text())
	og, _ := doc.Find(`meta[property="og:url"]`).Attr("content")
	assert.Equal(t, "https://monty.ga", og)
	stream, _ := doc.Find("#desktop").Attr("data-stream")
	assert.Equal(t, "/stream", stream)
	assert.Equal(t, 1, doc.Find(`script[src="/desktop.js"]`).Length())

	launchers := doc.Find("[data-launch]")
	require.Equal(t, 2, launchers.Length())
	first, _ := launchers.First().Attr("data-launch")
	assert.Equal(t, "hello-world", first)

	windows := doc.Find("#windows > .window")
	require.Equal(t, 2, windows.Length())
}

func TestWindowPanels(t *testing.T) {
	r := newRenderer(t)
	d := openDesktop(t)

	html, err := r.WindowsHTML(d.Snapshot())
	require.NoError(t, err)
	doc := parse(t, html)

	hello := doc.Find("#window-0")
	archive := doc.Find("#window-1")
	require.Equal(t, 1, hello.Length())
	require.Equal(t, 1, archive.Length())

	style, _ := hello.Attr("style")
	assert.Contains(t, style, "left:24px")
	assert.Contains(t, style, "top:24px")
	assert.Contains(t, style, "width:300px")
	assert.Contains(t, style, "min-height:91px")
	assert.Contains(t, style, "z-index:0")

	style, _ = archive.Attr("style")
	assert.Contains(t, style, "left:48px")
	assert.Contains(t, style, "z-index:1")

	// only the focused window has an active title bar
	assert.True(t, hello.Find(".title-bar").HasClass("inactive"))
	assert.False(t, archive.Find(".title-bar").HasClass("inactive"))

	assert.Equal(t, "Hello World", strings.TrimSpace(hello.Find(".title-bar-text").Text()))
	assert.Equal(t, "Hello, World!", hello.Find(".window-body p").Text())

	link, _ := archive.Find(".window-body a").Attr("href")
	assert.Equal(t, "https://github.com/BotSauce/BotSauce", link)
	assert.Equal(t, "BotSauce", archive.Find(".window-body a button").Text())

	actions := archive.Find(".title-bar-controls button").Map(func(_ int, s *goquery.Selection) string {
		v, _ := s.Attr("data-action")
		return v
	})
	assert.Equal(t, []string{"toggle_minimize", "toggle_maximize", "close"}, actions)

	assert.Equal(t, 2, doc.Find("#taskbar .task").Length())
	assert.Equal(t, 1, doc.Find("#taskbar .task.active").Length())
}

func TestMinimizedAndMaximized(t *testing.T) {
	r := newRenderer(t)
	d := openDesktop(t)

	_, err := d.Handle(desktop.Event{Type: desktop.EventToggleMinimize, Handle: 0})
	require.NoError(t, err)
	snap, err := d.Handle(desktop.Event{Type: desktop.EventToggleMaximize, Handle: 1})
	require.NoError(t, err)

	html, err := r.WindowsHTML(snap)
	require.NoError(t, err)
	doc := parse(t, html)

	_, hidden := doc.Find("#window-0").Attr("hidden")
	assert.True(t, hidden)
	action, _ := doc.Find(`#taskbar .task[data-index="0"]`).Attr("data-action")
	assert.Equal(t, "toggle_minimize", action)

	style, _ := doc.Find("#window-1").Attr("style")
	assert.Contains(t, style, "width:100%")
	assert.Contains(t, style, "height:100%")
	label, _ := doc.Find(`#window-1 [data-action="toggle_maximize"]`).Attr("aria-label")
	assert.Equal(t, "Restore", label)
}

func TestTitlesAreEscaped(t *testing.T) {
	r := newRenderer(t)
	d := desktop.New(catalog.Default(), nil)
	h, err := d.Launch("hello-world")
	require.NoError(t, err)

	// the desktop strips tags; entities survive as text and are escaped here
	snap, err := d.Handle(desktop.Event{Type: desktop.EventSetTitle, Handle: h, Title: "a &lt;script&gt; b"})
	require.NoError(t, err)

	html, err := r.WindowsHTML(snap)
	require.NoError(t, err)

	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "a &lt;script&gt; b")
}

func TestEmptyDesktop(t *testing.T) {
	r := newRenderer(t)

	html, err := r.WindowsHTML(desktop.New(nil, nil).Snapshot())
	require.NoError(t, err)

	doc := parse(t, html)
	assert.Equal(t, 1, doc.Find("#windows").Length())
	assert.Equal(t, 0, doc.Find("#windows .window").Length())
}

func TestArchivePage(t *testing.T) {
	r := newRenderer(t)

	var buf bytes.Buffer
	require.NoError(t, r.Archive(&buf))

	doc, err := htmlquery.Parse(&buf)
	require.NoError(t, err)

	title := htmlquery.FindOne(doc, "//title")
	require.NotNil(t, title)
	assert.Equal(t, "archive.tar.gz", htmlquery.InnerText(title))

	win := htmlquery.FindOne(doc, `//div[@id="mainWindow"]`)
	require.NotNil(t, win)
	assert.Equal(t, "position:absolute;left:24px;top:24px;width:300px", htmlquery.SelectAttr(win, "style"))

	header := htmlquery.FindOne(win, `.//div[@id="mainWindowHeader"]`)
	require.NotNil(t, header)
	assert.Contains(t, htmlquery.SelectAttr(header, "style"), "touch-action: none")

	barText := htmlquery.FindOne(win, `.//div[@class="title-bar-text"]`)
	assert.Equal(t, "archived.tar.gz", htmlquery.InnerText(barText))

	closeLink := htmlquery.FindOne(win, `.//div[@class="title-bar-controls"]/a`)
	require.NotNil(t, closeLink)
	assert.Equal(t, "/", htmlquery.SelectAttr(closeLink, "href"))

	body := htmlquery.FindOne(win, `.//div[@class="window-body"]/p`)
	assert.Equal(t, "Here's some projects I no longer work on (currently only one):", htmlquery.InnerText(body))

	project := htmlquery.FindOne(win, `.//div[contains(@class,"field-row")]/a`)
	require.NotNil(t, project)
	assert.Equal(t, "https://github.com/BotSauce/BotSauce", htmlquery.SelectAttr(project, "href"))
	assert.Equal(t, "BotSauce", htmlquery.InnerText(project))

	ogTitle := htmlquery.FindOne(doc, `//meta[@property="og:title"]`)
	assert.Equal(t, "monty.exe", htmlquery.SelectAttr(ogTitle, "content"))
	assert.NotNil(t, htmlquery.FindOne(doc, `//link[@rel="manifest"]`))

	scripts := htmlquery.Find(doc, "//body/script")
	require.Len(t, scripts, 1)
	drag := htmlquery.InnerText(scripts[0])
	for _, want := range []string{
		`getElementById("mainWindow")`,
		`getElementById("mainWindowHeader")`,
		"setPointerCapture",
		"releasePointerCapture",
		`"pointerup"`,
		`"pointercancel"`,
	} {
		assert.Contains(t, drag, want)
	}
	assert.NotContains(t, drag, "WebSocket", "the archive page runs without a desktop session")
}

func TestArchiveRequiresProgram(t *testing.T) {
	r, err := New(testSite, catalog.New(catalog.Program{ID: "hello-world", Title: "Hello"}))
	require.NoError(t, err)

	err = r.Archive(&bytes.Buffer{})
	assert.ErrorIs(t, err, catalog.ErrUnknownProgram)
}

func TestScript(t *testing.T) {
	script := string(newRenderer(t).Script())

	assert.Contains(t, script, "setPointerCapture")
	assert.Contains(t, script, "releasePointerCapture")
	assert.Contains(t, script, "pointer_move")
}
