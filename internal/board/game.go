// Package board is the interactive tactics board: an ebiten game that wires
// pointer input, the formation store and the renderers together.
package board

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/tactics-board/internal/config"
	"github.com/Garsondee/tactics-board/internal/formation"
	"github.com/Garsondee/tactics-board/internal/pointer"
	"github.com/Garsondee/tactics-board/internal/render"
)

const (
	// panelWidth is the side panel on the left of the board.
	panelWidth = 260
	// boardMargin is the gap around the board surface.
	boardMargin = 16
	// boardAspect is width over height of the board surface.
	boardAspect = 2.0
)

var (
	windowBackground = color.RGBA{R: 17, G: 24, B: 39, A: 255}
	boardBorder      = color.RGBA{R: 55, G: 65, B: 81, A: 255}
)

// Game implements ebiten.Game.
type Game struct {
	store       *formation.Store
	ctl         *Controller
	interaction *Interaction
	source      *EbitenSource
	norm        *pointer.Normalizer
	comp        *render.Compositor

	boardBuf *ebiten.Image
	canvas   *EbitenCanvas
	board    image.Rectangle // board surface in window coordinates

	width  int
	height int
	frame  int
}

// New builds the board game around store and lib.
func New(cfg config.Config, store *formation.Store, lib *formation.Library) *Game {
	events := NewEventLog(DefaultEventLogLimit, false)
	in := NewInteraction(store, events, cfg.Draw.Thickness)
	src := NewEbitenSource()
	g := &Game{
		store:       store,
		interaction: in,
		ctl:         NewController(store, lib, in, SystemClipboard, cfg.Draw.Palette, cfg.ExportDir),
		source:      src,
		norm:        pointer.New(src, in.Callbacks()),
		comp:        render.NewCompositor(),
		width:       cfg.Window.Width,
		height:      cfg.Window.Height,
	}
	if err := g.ctl.RefreshSaved(); err == nil {
		g.ctl.Status().Addf(0, "%d saved formations", len(store.State().Saved))
	}
	return g
}

// Status is the side panel's message log.
func (g *Game) Status() *StatusLog { return g.ctl.Status() }

// Controller exposes the action layer.
func (g *Game) Controller() *Controller { return g.ctl }

// Close detaches the pointer listeners.
func (g *Game) Close() { g.norm.Destroy() }

// boardRect fits the board surface into the area right of the panel,
// keeping its aspect ratio.
func boardRect(w, h int) image.Rectangle {
	availW := w - panelWidth - 2*boardMargin
	availH := h - 2*boardMargin
	if availW <= 0 || availH <= 0 {
		return image.Rectangle{}
	}
	bw, bh := availW, int(float64(availW)/boardAspect)
	if bh > availH {
		bh = availH
		bw = int(float64(availH) * boardAspect)
	}
	x := panelWidth + boardMargin + (availW-bw)/2
	y := boardMargin + (availH-bh)/2
	return image.Rect(x, y, x+bw, y+bh)
}

// ensureBoard re-creates the board buffer when the window size changes.
func (g *Game) ensureBoard() error {
	r := boardRect(g.width, g.height)
	if r == g.board && g.boardBuf != nil {
		return nil
	}
	g.board = r
	g.source.SetBounds(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()))
	g.interaction.SetSize(r.Dx(), r.Dy())
	if g.boardBuf != nil {
		g.boardBuf.Deallocate()
		g.boardBuf = nil
	}
	if r.Empty() {
		return nil
	}
	g.boardBuf = ebiten.NewImage(r.Dx(), r.Dy())
	if g.canvas == nil {
		c, err := NewEbitenCanvas(g.boardBuf)
		if err != nil {
			return err
		}
		g.canvas = c
	} else {
		g.canvas.SetTarget(g.boardBuf)
	}
	return nil
}

func (g *Game) Update() error {
	g.frame++
	g.interaction.SetFrame(g.frame)
	g.ctl.SetFrame(g.frame)
	if err := g.ensureBoard(); err != nil {
		return err
	}
	g.source.Poll()
	g.handleKeys()
	return nil
}

// keyActions maps edge-triggered keys to actions when no modifier is held.
var keyActions = map[ebiten.Key]Action{
	ebiten.KeyE:            ActionNextColor,
	ebiten.KeyQ:            ActionPrevColor,
	ebiten.KeyBracketRight: ActionThicker,
	ebiten.KeyBracketLeft:  ActionThinner,
	ebiten.KeyZ:            ActionUndoDrawing,
	ebiten.KeyC:            ActionClearDrawings,
	ebiten.KeyDelete:       ActionRemovePlayer,
	ebiten.KeyBackspace:    ActionRemovePlayer,
	ebiten.KeyA:            ActionAddPlayer,
	ebiten.KeyB:            ActionToggleBench,
	ebiten.KeyR:            ActionNextBenched,
	ebiten.KeyN:            ActionNewFormation,
	ebiten.KeyF:            ActionNextPreset,
	ebiten.KeyS:            ActionSave,
	ebiten.KeyL:            ActionLoadNext,
	ebiten.KeyX:            ActionExport,
	ebiten.KeyEscape:       ActionCancel,
}

var toolKeys = []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5}

func (g *Game) handleKeys() {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	if ctrl {
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyC):
			_ = g.ctl.Do(ActionCopy)
		case inpututil.IsKeyJustPressed(ebiten.KeyV):
			_ = g.ctl.Do(ActionPaste)
		case inpututil.IsKeyJustPressed(ebiten.KeyDelete):
			_ = g.ctl.Do(ActionDeleteSaved)
		}
		return
	}
	for i, k := range toolKeys {
		if inpututil.IsKeyJustPressed(k) {
			g.ctl.SelectTool(formation.Tools[i])
		}
	}
	for k, a := range keyActions {
		if inpututil.IsKeyJustPressed(k) {
			_ = g.ctl.Do(a)
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(windowBackground)
	if g.boardBuf != nil {
		st := g.store.State()
		frame := render.FrameFromFormation(st.Current, g.board.Dx(), g.board.Dy(), st.SelectedID)
		frame.Preview = g.interaction.Pending()
		g.comp.Render(g.canvas, frame)

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(g.board.Min.X), float64(g.board.Min.Y))
		screen.DrawImage(g.boardBuf, op)
		vector.StrokeRect(screen, float32(g.board.Min.X)-1, float32(g.board.Min.Y)-1,
			float32(g.board.Dx())+2, float32(g.board.Dy())+2, 2, boardBorder, false)
	}
	g.drawPanel(screen)
}

// Layout tracks the window size; the board follows it on the next Update.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
