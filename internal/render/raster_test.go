package render

import (
	"bytes"
	"errors"
	"image/color"
	"image/png"
	"testing"
)

func TestNewRaster_NilIsNoContext(t *testing.T) {
	if _, err := NewRaster(nil); !errors.Is(err, ErrNoContext) {
		t.Fatalf("expected ErrNoContext, got %v", err)
	}
	if _, err := NewRasterSize(0, 10); !errors.Is(err, ErrNoContext) {
		t.Fatalf("expected ErrNoContext for zero size, got %v", err)
	}
}

func TestRaster_FillAndClear(t *testing.T) {
	r, err := NewRasterSize(20, 20)
	if err != nil {
		t.Fatalf("NewRasterSize: %v", err)
	}
	r.FillRect(0, 0, 20, 20, color.NRGBA{R: 255, A: 255})
	if c := r.Image().RGBAAt(10, 10); c.R < 250 || c.A < 250 || c.G != 0 {
		t.Fatalf("expected opaque red, got %+v", c)
	}
	r.Clear()
	if c := r.Image().RGBAAt(10, 10); c.A != 0 {
		t.Fatalf("clear should leave transparent pixels, got %+v", c)
	}
}

func TestRaster_StrokeCircleLeavesHole(t *testing.T) {
	r, err := NewRasterSize(20, 20)
	if err != nil {
		t.Fatalf("NewRasterSize: %v", err)
	}
	r.StrokeCircle(10, 10, 7, 2, color.White)
	if c := r.Image().RGBAAt(10, 10); c.A != 0 {
		t.Fatalf("ring centre should stay empty, got %+v", c)
	}
	if c := r.Image().RGBAAt(16, 9); c.A == 0 {
		t.Fatalf("ring edge should be painted")
	}
}

func TestRaster_StrokeLineWidth(t *testing.T) {
	r, err := NewRasterSize(40, 20)
	if err != nil {
		t.Fatalf("NewRasterSize: %v", err)
	}
	r.StrokeLine(5, 10, 35, 10, 4, color.White)
	if c := r.Image().RGBAAt(20, 9); c.A < 250 {
		t.Fatalf("pixel on the line should be solid, got %+v", c)
	}
	if c := r.Image().RGBAAt(20, 2); c.A != 0 {
		t.Fatalf("pixel far from the line should be empty, got %+v", c)
	}
}

func TestRaster_TextPaints(t *testing.T) {
	r, err := NewRasterSize(40, 40)
	if err != nil {
		t.Fatalf("NewRasterSize: %v", err)
	}
	r.Text("7", 20, 20, TextStyle{Size: 16, Bold: true, Color: color.White})
	painted := 0
	img := r.Image()
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			if img.RGBAAt(x, y).A > 0 {
				painted++
			}
		}
	}
	if painted == 0 {
		t.Fatalf("text should paint some pixels")
	}
}

func TestRaster_EncodePNG(t *testing.T) {
	r, err := NewRasterSize(32, 16)
	if err != nil {
		t.Fatalf("NewRasterSize: %v", err)
	}
	NewCompositor().Render(r, Frame{Width: 32, Height: 16})
	var buf bytes.Buffer
	if err := r.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 16 {
		t.Fatalf("expected 32x16, got %v", b)
	}
}

func TestParseHexColor(t *testing.T) {
	cases := []struct {
		in   string
		want color.NRGBA
	}{
		{"#3b82f6", color.NRGBA{R: 0x3b, G: 0x82, B: 0xf6, A: 0xff}},
		{"#fff", color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
		{"f59e0b80", color.NRGBA{R: 0xf5, G: 0x9e, B: 0x0b, A: 0x80}},
	}
	for _, c := range cases {
		got, err := ParseHexColor(c.in)
		if err != nil || got != c.want {
			t.Fatalf("ParseHexColor(%q): expected %+v, got %+v err=%v", c.in, c.want, got, err)
		}
	}
	for _, bad := range []string{"", "#12", "#gggggg", "red"} {
		if _, err := ParseHexColor(bad); err == nil {
			t.Fatalf("ParseHexColor(%q): expected an error", bad)
		}
	}
}
