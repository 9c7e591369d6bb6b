package board

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	statusMaxEntries = 40
	statusLineHeight = 14
)

// StatusLevel tints a status line.
type StatusLevel int

const (
	StatusInfo StatusLevel = iota
	StatusError
)

// StatusEntry is a single line in the status log.
type StatusEntry struct {
	Frame   int
	Level   StatusLevel
	Message string
}

// StatusLog is a ring buffer of user-facing messages shown in the side panel.
type StatusLog struct {
	entries []StatusEntry
	head    int
	count   int
}

// NewStatusLog creates a status log with a fixed capacity.
func NewStatusLog() *StatusLog {
	return &StatusLog{entries: make([]StatusEntry, statusMaxEntries)}
}

// Add appends an entry to the log.
func (sl *StatusLog) Add(frame int, level StatusLevel, msg string) {
	sl.entries[sl.head] = StatusEntry{Frame: frame, Level: level, Message: msg}
	sl.head = (sl.head + 1) % statusMaxEntries
	if sl.count < statusMaxEntries {
		sl.count++
	}
}

// Addf formats and appends an info entry.
func (sl *StatusLog) Addf(frame int, format string, args ...any) {
	sl.Add(frame, StatusInfo, fmt.Sprintf(format, args...))
}

// Recent returns entries in chronological order (oldest first).
func (sl *StatusLog) Recent() []StatusEntry {
	result := make([]StatusEntry, sl.count)
	for i := 0; i < sl.count; i++ {
		idx := (sl.head - sl.count + i + statusMaxEntries) % statusMaxEntries
		result[i] = sl.entries[idx]
	}
	return result
}

// Draw renders the newest entries bottom-aligned inside the given box.
func (sl *StatusLog) Draw(screen *ebiten.Image, x, y, w, h int) {
	vector.StrokeLine(screen, float32(x), float32(y), float32(x+w), float32(y), 1, color.RGBA{R: 60, G: 70, B: 80, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "STATUS", x+6, y+2)

	entries := sl.Recent()
	maxVisible := (h - 20) / statusLineHeight
	if maxVisible < 0 {
		maxVisible = 0
	}
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}

	ly := y + 20
	for i, e := range entries {
		dot := color.RGBA{R: 90, G: 160, B: 110, A: 255}
		if e.Level == StatusError {
			dot = color.RGBA{R: 220, G: 80, B: 70, A: 255}
		}
		if i == len(entries)-1 {
			vector.FillRect(screen, float32(x+2), float32(ly), float32(w-4), statusLineHeight, color.RGBA{R: 35, G: 42, B: 50, A: 200}, false)
		}
		vector.FillRect(screen, float32(x+5), float32(ly+4), 3, 6, dot, false)
		ebitenutil.DebugPrintAt(screen, e.Message, x+12, ly)
		ly += statusLineHeight
	}
}
