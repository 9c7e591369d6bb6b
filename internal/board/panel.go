package board

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/tactics-board/internal/formation"
	"github.com/Garsondee/tactics-board/internal/render"
)

const panelLineHeight = 16

var (
	panelBackground = color.RGBA{R: 11, G: 15, B: 25, A: 250}
	panelHighlight  = color.RGBA{R: 37, G: 99, B: 235, A: 200}
	panelSeparator  = color.RGBA{R: 55, G: 65, B: 81, A: 255}
)

var toolLabels = map[formation.Tool]string{
	formation.ToolSelect: "Select / move",
	formation.ToolArrow:  "Arrow",
	formation.ToolDashed: "Dashed run",
	formation.ToolCurved: "Curved run",
	formation.ToolEraser: "Eraser",
}

var keyLegend = []string{
	"Q/E colour  [/] width",
	"Z undo  C clear",
	"A add  B bench  R benched",
	"Del remove",
	"N new  F preset",
	"S save  L load  X export",
	"^C copy  ^V paste",
	"^Del delete saved",
}

// drawPanel renders the tool list, current formation and status log.
func (g *Game) drawPanel(screen *ebiten.Image) {
	vector.FillRect(screen, 0, 0, panelWidth, float32(g.height), panelBackground, false)
	vector.StrokeLine(screen, panelWidth, 0, panelWidth, float32(g.height), 1, panelSeparator, false)

	st := g.store.State()
	x, y := 10, 8
	line := func(s string) {
		ebitenutil.DebugPrintAt(screen, s, x, y)
		y += panelLineHeight
	}

	line("TACTICS BOARD  F8")
	line(fmt.Sprintf("%s  (%s)", st.Current.Name, st.Preset))
	line(fmt.Sprintf("%d players on field", len(st.Current.OnField())))
	y += 6

	for i, t := range formation.Tools {
		if t == st.Tool {
			vector.FillRect(screen, 4, float32(y), panelWidth-8, panelLineHeight, panelHighlight, false)
		}
		line(fmt.Sprintf("[%d] %s", i+1, toolLabels[t]))
	}
	y += 6

	swatch := render.ParseHexColorOr(st.DrawColor, color.White)
	vector.FillRect(screen, float32(x), float32(y+2), 12, 12, swatch, false)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s  width %.0f", st.DrawColor, g.interaction.Thickness()), x+18, y)
	y += panelLineHeight

	if p, ok := st.Current.Player(st.SelectedID); ok {
		line(fmt.Sprintf("#%d %s %s", p.Number, p.Role, render.TruncateName(p.Name)))
		if p.OnField {
			line(fmt.Sprintf("at %.0f%%, %.0f%%", p.Position.X, p.Position.Y))
		} else {
			line("on the bench")
		}
	} else {
		line("no selection")
		y += panelLineHeight
	}
	y += 6

	for _, l := range keyLegend {
		line(l)
	}
	y += 6

	if h := g.height - y - 8; h > 0 {
		g.ctl.Status().Draw(screen, 0, y, panelWidth, h)
	}
}
