package render

import (
	"fmt"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontTTF returns the TrueType data used for labels. Every canvas backend
// uses the same Go fonts so raster output matches the window.
func FontTTF(bold bool) []byte {
	if bold {
		return gobold.TTF
	}
	return goregular.TTF
}

type faceKey struct {
	bold bool
	half int // size in half pixels
}

// faceCache builds opentype faces on demand, one per (weight, size).
type faceCache struct {
	regular *opentype.Font
	bold    *opentype.Font
	faces   map[faceKey]font.Face
}

func newFaceCache() (*faceCache, error) {
	reg, err := opentype.Parse(FontTTF(false))
	if err != nil {
		return nil, fmt.Errorf("parse regular font: %w", err)
	}
	bold, err := opentype.Parse(FontTTF(true))
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}
	return &faceCache{regular: reg, bold: bold, faces: make(map[faceKey]font.Face)}, nil
}

func (fc *faceCache) face(bold bool, size float32) font.Face {
	k := faceKey{bold: bold, half: int(math.Round(float64(size) * 2))}
	if k.half < 2 {
		k.half = 2
	}
	if f, ok := fc.faces[k]; ok {
		return f
	}
	src := fc.regular
	if bold {
		src = fc.bold
	}
	f, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    float64(k.half) / 2,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil
	}
	fc.faces[k] = f
	return f
}
