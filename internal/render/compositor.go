package render

import "github.com/Garsondee/tactics-board/internal/formation"

// Frame is the read-only input for one composed frame.
type Frame struct {
	Width, Height int
	Players       []formation.Player
	SelectedID    string
	Drawings      []formation.DrawingElement
	Preview       *formation.DrawingElement
}

// FrameFromFormation builds a frame for f at the given size.
func FrameFromFormation(f formation.Formation, w, h int, selectedID string) Frame {
	return Frame{
		Width:      w,
		Height:     h,
		Players:    f.Players,
		SelectedID: selectedID,
		Drawings:   f.Drawings,
	}
}

// Compositor clears the canvas once and stacks pitch, tokens and drawings.
type Compositor struct {
	Pitch    *Pitch
	Tokens   *Tokens
	Drawings *Drawings
}

// NewCompositor wires the three layers.
func NewCompositor() *Compositor {
	return &Compositor{
		Pitch:    NewPitch(),
		Tokens:   NewTokens(),
		Drawings: NewDrawings(),
	}
}

// Render draws one frame.
func (c *Compositor) Render(cv Canvas, f Frame) {
	c.Tokens.SetDimensions(f.Width, f.Height)
	c.Tokens.SetPlayers(f.Players)
	c.Tokens.SetSelectedID(f.SelectedID)
	c.Drawings.SetDimensions(f.Width, f.Height)
	c.Drawings.SetDrawings(f.Drawings)
	c.Drawings.SetPreview(f.Preview)

	cv.Clear()
	c.Pitch.Render(cv, f.Width, f.Height)
	c.Tokens.Render(cv)
	c.Drawings.Render(cv)
}
