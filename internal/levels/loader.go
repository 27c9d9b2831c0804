// Package levels loads level definitions from YAML files into tile maps.
// A set of default levels is embedded in the binary.
package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/gridstate/internal/core"
	"github.com/vovakirdan/gridstate/internal/tilemap"
)

//go:embed defaults/*.yaml
var defaultFS embed.FS

// Level is a parsed level ready to play.
type Level struct {
	ID       string
	Name     string
	Map      *tilemap.Map
	Spawn    core.Position
	Metadata map[string]string
	FilePath string // Empty for embedded levels
}

// Parse builds a Level from YAML bytes. Ragged layouts are rejected with an
// error wrapping tilemap.ErrNotRectangular.
func Parse(data []byte) (Level, error) {
	yl, err := parseYAML(data)
	if err != nil {
		return Level{}, err
	}

	m, spawn, err := tilemap.Parse(yl.Layout)
	if err != nil {
		return Level{}, fmt.Errorf("level %s: %w", yl.ID, err)
	}
	if yl.Spawn != nil {
		spawn = core.Pos(yl.Spawn.Row, yl.Spawn.Col)
	}
	if err := m.Validate(spawn); err != nil {
		return Level{}, fmt.Errorf("level %s: %w", yl.ID, err)
	}

	name := yl.Name
	if name == "" {
		name = yl.ID
	}
	return Level{
		ID:       yl.ID,
		Name:     name,
		Map:      m,
		Spawn:    spawn,
		Metadata: yl.Metadata,
	}, nil
}

// Loader reads levels from a directory tree.
// With an empty Root it serves the embedded defaults.
type Loader struct {
	Root string
}

// NewLoader creates a new level loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll loads every level file, sorted by ID.
// Files that fail to parse are skipped.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	walk := func(fsys fs.FS, root string) error {
		return fs.WalkDir(fsys, root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !isLevelFile(path) {
				return nil
			}
			data, err := fs.ReadFile(fsys, path)
			if err != nil {
				return nil
			}
			level, err := Parse(data)
			if err != nil {
				return nil
			}
			if l.Root != "" {
				level.FilePath = filepath.Join(l.Root, filepath.FromSlash(path))
			}
			levels = append(levels, level)
			return nil
		})
	}

	var err error
	if l.Root == "" {
		err = walk(defaultFS, "defaults")
	} else {
		err = walk(os.DirFS(l.Root), ".")
	}
	if err != nil {
		return nil, fmt.Errorf("walking levels %s: %w", l.Root, err)
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
	return levels, nil
}

// LoadByID returns the level with the given ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}
	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("level not found: %s", id)
}

// LoadFile loads a single level file. Unlike LoadAll, parse errors are returned.
func LoadFile(path string) (Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", path, err)
	}
	level, err := Parse(data)
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", path, err)
	}
	level.FilePath = path
	return level, nil
}

// Default returns an embedded level by ID.
func Default(id string) (Level, error) {
	return NewLoader("").LoadByID(id)
}

// Resolve interprets ref as a file path when it names an existing file or
// ends in .yaml/.yml, and as an embedded level ID otherwise.
func Resolve(ref string) (Level, error) {
	if isLevelFile(ref) {
		return LoadFile(ref)
	}
	if info, err := os.Stat(ref); err == nil && !info.IsDir() {
		return LoadFile(ref)
	}
	return Default(ref)
}

func isLevelFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
