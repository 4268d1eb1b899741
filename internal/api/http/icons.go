package http

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
)

// MaxIconSize bounds the icon files that are served
const MaxIconSize = 1 << 20

var errNotImage = errors.New("not an image")

// IconStore serves window and program icons from a directory
type IconStore struct {
	fsys fs.FS
}

// NewIconStore serves icons from dir. An empty dir serves nothing.
func NewIconStore(dir string) *IconStore {
	if dir == "" {
		return &IconStore{}
	}
	return &IconStore{fsys: os.DirFS(dir)}
}

// NewFSIconStore serves icons from fsys
func NewFSIconStore(fsys fs.FS) *IconStore {
	return &IconStore{fsys: fsys}
}

// Open reads an icon and detects its content type. Only image types are
// served.
func (s *IconStore) Open(name string) ([]byte, string, error) {
	if s.fsys == nil {
		return nil, "", fs.ErrNotExist
	}

	name = strings.TrimPrefix(path.Clean("/"+name), "/")
	if name == "" || !fs.ValidPath(name) {
		return nil, "", fs.ErrInvalid
	}

	info, err := fs.Stat(s.fsys, name)
	if err != nil {
		return nil, "", err
	}
	if info.IsDir() || info.Size() > MaxIconSize {
		return nil, "", fs.ErrNotExist
	}

	data, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		return nil, "", err
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return nil, "", errNotImage
	}
	return data, mtype.String(), nil
}

// Icon serves a single icon
func (h *Handlers) Icon(c *gin.Context) {
	data, contentType, err := h.icons.Open(c.Param("path"))
	switch {
	case err == nil:
	case errors.Is(err, errNotImage):
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "not an image"})
		return
	case errors.Is(err, fs.ErrInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid icon path"})
		return
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "icon not found"})
		return
	}

	c.Header("X-Content-Type-Options", "nosniff")
	serveCached(c, contentType, "public, max-age=86400", data)
}
