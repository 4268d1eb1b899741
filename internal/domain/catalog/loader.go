package catalog

import (
	"fmt"
	"io/fs"
	"os"
	"path"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
)

// manifestPattern matches every catalog file below the catalog directory
const manifestPattern = "**/*.{yaml,yml,toml}"

// manifest is the on-disk shape of a catalog file
type manifest struct {
	Programs []Program `yaml:"programs" toml:"programs"`
}

// LoadStats summarises a directory load
type LoadStats struct {
	Files    int
	Loaded   int
	Failed   int
	Programs int
}

// Loader merges catalog files on top of a base catalog
type Loader struct {
	fsys   fs.FS
	logger *zap.Logger
}

// NewLoader creates a loader reading from dir
func NewLoader(dir string, logger *zap.Logger) *Loader {
	return NewFSLoader(os.DirFS(dir), logger)
}

// NewFSLoader creates a loader reading from fsys
func NewFSLoader(fsys fs.FS, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{fsys: fsys, logger: logger}
}

// Load returns base extended with every program found on disk. A file that
// fails to decode or validate is logged and skipped.
func (l *Loader) Load(base *Catalog) (*Catalog, LoadStats, error) {
	var stats LoadStats

	files, err := doublestar.Glob(l.fsys, manifestPattern)
	if err != nil {
		return nil, stats, fmt.Errorf("failed to glob catalog files: %w", err)
	}

	out := New(base.List()...)
	for _, name := range files {
		stats.Files++

		programs, err := l.loadFile(name)
		if err != nil {
			l.logger.Warn("Skipping catalog file", zap.String("file", name), zap.Error(err))
			stats.Failed++
			continue
		}

		for _, p := range programs {
			out.put(p)
		}
		stats.Loaded++
		l.logger.Debug("Loaded catalog file", zap.String("file", name), zap.Int("programs", len(programs)))
	}

	stats.Programs = out.Len()
	return out, stats, nil
}

func (l *Loader) loadFile(name string) ([]Program, error) {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return nil, err
	}

	m, err := decode(path.Ext(name), data)
	if err != nil {
		return nil, err
	}

	for _, p := range m.Programs {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}
	return m.Programs, nil
}

func decode(ext string, data []byte) (manifest, error) {
	var m manifest
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &m); err != nil {
			return m, fmt.Errorf("invalid YAML: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &m); err != nil {
			return m, fmt.Errorf("invalid TOML: %w", err)
		}
	default:
		return m, fmt.Errorf("unsupported catalog format %q", ext)
	}
	return m, nil
}
