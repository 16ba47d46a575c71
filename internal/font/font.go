// Package font locates and parses the single face used for all surface text.
// The face is loaded once at startup and shared by every surface.
package font

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
)

// ErrNotFound is returned by a system scan that finds no usable font file.
var ErrNotFound = errors.New("no usable font file found")

// Font is a parsed face shared by every surface.
type Font struct {
	otf  *opentype.Font
	path string // Source file, empty for the embedded face

	mu    sync.Mutex
	faces map[float64]font.Face
}

// Load resolves a face according to source:
//   - "embedded": the bundled Go Mono face
//   - "system":   the first monospace-looking file under the standard
//     font directories, fatal when nothing parses
//   - otherwise:  source is a TTF/OTF file path
func Load(source string) (*Font, error) {
	switch source {
	case "", "embedded":
		return Parse(gomono.TTF, "")
	case "system":
		return loadSystem()
	default:
		data, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("read font %s: %w", source, err)
		}
		fnt, err := Parse(data, source)
		if err != nil {
			return nil, fmt.Errorf("parse font %s: %w", source, err)
		}
		return fnt, nil
	}
}

// Parse builds a Font from raw TTF/OTF bytes.
func Parse(data []byte, path string) (*Font, error) {
	otf, err := opentype.Parse(data)
	if err != nil {
		return nil, err
	}
	return &Font{
		otf:   otf,
		path:  path,
		faces: make(map[float64]font.Face),
	}, nil
}

// Path returns the source file of the face, empty for the embedded one.
func (f *Font) Path() string { return f.path }

// Face returns a face rendering glyphs at the given pixel height.
// Faces are cached per size; surfaces on differently sized outputs share them.
func (f *Font) Face(px float64) (font.Face, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if face, ok := f.faces[px]; ok {
		return face, nil
	}

	// At 72 DPI one point is one pixel
	face, err := opentype.NewFace(f.otf, &opentype.FaceOptions{
		Size:    px,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create %vpx face: %w", px, err)
	}
	f.faces[px] = face
	return face, nil
}

// loadSystem scans the standard font directories and parses the first
// candidate that works, preferring monospace-looking names.
func loadSystem() (*Font, error) {
	var lastErr error
	for _, path := range scanFontDirs(systemFontDirs()) {
		data, err := os.ReadFile(path)
		if err != nil {
			lastErr = err
			continue
		}
		fnt, err := Parse(data, path)
		if err != nil {
			lastErr = err
			continue
		}
		return fnt, nil
	}
	if lastErr != nil {
		return nil, fmt.Errorf("%w (last candidate: %v)", ErrNotFound, lastErr)
	}
	return nil, ErrNotFound
}

// systemFontDirs returns the candidate directories in search order.
func systemFontDirs() []string {
	dirs := []string{
		"/usr/share/fonts",
		"/usr/local/share/fonts",
	}
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dataHome = filepath.Join(home, ".local", "share")
		}
	}
	if dataHome != "" {
		dirs = append(dirs, filepath.Join(dataHome, "fonts"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".fonts"))
	}
	return dirs
}

// scanFontDirs collects TTF/OTF files under dirs, monospace-looking names
// first, each group sorted for deterministic selection.
func scanFontDirs(dirs []string) []string {
	var mono, other []string
	for _, dir := range dirs {
		_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil // Skip unreadable entries
			}
			switch strings.ToLower(filepath.Ext(path)) {
			case ".ttf", ".otf":
			default:
				return nil
			}
			if strings.Contains(strings.ToLower(filepath.Base(path)), "mono") {
				mono = append(mono, path)
			} else {
				other = append(other, path)
			}
			return nil
		})
	}
	sort.Strings(mono)
	sort.Strings(other)
	return append(mono, other...)
}
