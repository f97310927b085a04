package redraw

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// Save encodes the canvas to path. The format is picked from the file
// extension (png, jpg, gif, tif, bmp).
func (c *ImageCanvas) Save(path string) error {
	if err := imaging.Save(c.img, path); err != nil {
		return fmt.Errorf("save canvas %s: %w", path, err)
	}
	return nil
}

// Snapshot writes c as a PNG named "<frame>_<label>.png" inside dir,
// creating dir if needed, and returns the file path.
func Snapshot(c *ImageCanvas, dir string, frame int, label string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("snapshot: mkdir %s: %w", dir, err)
	}
	path := filepath.Join(dir, fmt.Sprintf("%04d_%s.png", frame, sanitizeLabel(label)))
	if err := c.Save(path); err != nil {
		return "", fmt.Errorf("snapshot: %w", err)
	}
	return path, nil
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
