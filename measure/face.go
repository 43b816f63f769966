package measure

import (
	"fmt"
	"os"
	"sync"

	"github.com/tdewolff/canvas"
)

// Face measures text with font metrics. Widths are in millimetres, the unit
// canvas lays text out in.
type Face struct {
	mu   sync.Mutex
	face *canvas.FontFace
}

// NewFace loads a TrueType or OpenType font from data at size points.
func NewFace(data []byte, size float64) (*Face, error) {
	family := canvas.NewFontFamily("doxx")
	if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	return faceOf(family, size), nil
}

// LoadFace reads a font file from path.
func LoadFace(path string, size float64) (*Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font %s: %w", path, err)
	}
	return NewFace(data, size)
}

// SystemFace looks a font up by name among the fonts installed on the system.
func SystemFace(name string, size float64) (*Face, error) {
	family := canvas.NewFontFamily(name)
	if err := family.LoadSystemFont(name, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("load system font %q: %w", name, err)
	}
	return faceOf(family, size), nil
}

func faceOf(family *canvas.FontFamily, size float64) *Face {
	return &Face{face: family.Face(size, canvas.Black, canvas.FontRegular, canvas.FontNormal)}
}

// Measure returns the advance width of text.
func (f *Face) Measure(text string) float64 {
	if text == "" {
		return 0
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.face.TextWidth(text)
}
