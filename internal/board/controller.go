package board

import (
	"errors"
	"fmt"
	"log"

	"github.com/atotto/clipboard"

	"github.com/Garsondee/tactics-board/internal/formation"
	"github.com/Garsondee/tactics-board/internal/geom"
)

// Action is a board command bound to a key.
type Action int

const (
	ActionNextColor Action = iota
	ActionPrevColor
	ActionThicker
	ActionThinner
	ActionUndoDrawing
	ActionClearDrawings
	ActionRemovePlayer
	ActionAddPlayer
	ActionToggleBench
	ActionNextBenched
	ActionNewFormation
	ActionNextPreset
	ActionSave
	ActionLoadNext
	ActionDeleteSaved
	ActionExport
	ActionCopy
	ActionPaste
	ActionCancel
)

const maxThickness = 12

// ErrNothingSelected is returned by player actions with no selection.
var ErrNothingSelected = errors.New("board: no player selected")

// Clipboard is the text clipboard used for JSON export and import.
type Clipboard interface {
	WriteAll(text string) error
	ReadAll() (string, error)
}

type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }
func (systemClipboard) ReadAll() (string, error)   { return clipboard.ReadAll() }

// SystemClipboard is the OS clipboard.
var SystemClipboard Clipboard = systemClipboard{}

// Controller runs keyboard actions against the store and the formation
// library, reporting outcomes to the status log.
type Controller struct {
	store       *formation.Store
	lib         *formation.Library
	interaction *Interaction
	status      *StatusLog
	clip        Clipboard
	palette     []string
	exportDir   string
	frame       int
	loadIdx     int
}

// NewController wires the action layer. palette must not be empty.
func NewController(store *formation.Store, lib *formation.Library, in *Interaction, clip Clipboard, palette []string, exportDir string) *Controller {
	return &Controller{
		store:       store,
		lib:         lib,
		interaction: in,
		status:      NewStatusLog(),
		clip:        clip,
		palette:     palette,
		exportDir:   exportDir,
		loadIdx:     -1,
	}
}

// Status returns the user-facing message log.
func (c *Controller) Status() *StatusLog { return c.status }

// SetFrame stamps subsequent status entries.
func (c *Controller) SetFrame(frame int) { c.frame = frame }

// RefreshSaved reloads the saved formation list from the library.
func (c *Controller) RefreshSaved() error {
	fs, err := c.lib.Formations()
	if err != nil {
		return c.fail("load library", err)
	}
	c.store.SetSavedFormations(fs)
	return nil
}

// SelectTool switches the active tool, dropping any gesture in progress.
func (c *Controller) SelectTool(t formation.Tool) {
	c.interaction.Cancel()
	c.store.SetTool(t)
}

func (c *Controller) fail(what string, err error) error {
	err = fmt.Errorf("%s: %w", what, err)
	log.Printf("board: %v", err)
	c.status.Add(c.frame, StatusError, err.Error())
	return err
}

// Do runs one action. Failures are logged, shown in the status log and
// returned.
func (c *Controller) Do(a Action) error {
	st := c.store.State()
	switch a {
	case ActionNextColor, ActionPrevColor:
		step := 1
		if a == ActionPrevColor {
			step = -1
		}
		c.store.SetDrawColor(cycle(c.palette, st.DrawColor, step))

	case ActionThicker, ActionThinner:
		t := c.interaction.Thickness() + 1
		if a == ActionThinner {
			t = c.interaction.Thickness() - 1
		}
		if t >= 1 && t <= maxThickness {
			c.interaction.SetThickness(t)
		}

	case ActionUndoDrawing:
		ds := st.Current.Drawings
		if len(ds) == 0 {
			return nil
		}
		c.store.RemoveDrawing(ds[len(ds)-1].ID)

	case ActionClearDrawings:
		c.store.ClearDrawings()
		c.status.Addf(c.frame, "drawings cleared")

	case ActionRemovePlayer:
		if st.SelectedID == "" {
			return ErrNothingSelected
		}
		c.store.RemovePlayer(st.SelectedID)

	case ActionAddPlayer:
		n := c.store.NextNumber()
		p := formation.Player{
			ID:       formation.NewID(),
			Name:     fmt.Sprintf("Jugador %d", n),
			Number:   n,
			Role:     formation.RoleSubstitute,
			Position: geom.Position{X: 50, Y: 50},
			Color:    formation.OutfieldColor,
			OnField:  true,
		}
		c.store.AddPlayer(p)
		c.store.SelectPlayer(p.ID)

	case ActionToggleBench:
		p, ok := st.Current.Player(st.SelectedID)
		if !ok {
			return ErrNothingSelected
		}
		// The selection stays on the player so B can bring it back.
		on := !p.OnField
		c.store.UpdatePlayer(p.ID, formation.PlayerPatch{OnField: &on})
		if on {
			c.status.Addf(c.frame, "#%d back on the field", p.Number)
		} else {
			c.status.Addf(c.frame, "#%d to the bench", p.Number)
		}

	case ActionNextBenched:
		id, ok := nextBenched(st.Current.Players, st.SelectedID)
		if !ok {
			c.status.Addf(c.frame, "no benched players")
			return nil
		}
		c.interaction.Cancel()
		c.store.SelectPlayer(id)

	case ActionNewFormation:
		c.interaction.Cancel()
		c.store.NewFormation()
		c.status.Addf(c.frame, "new formation")

	case ActionNextPreset:
		next := formation.NextPreset(st.Preset)
		if err := c.store.ApplyPreset(next.Name); err != nil {
			return c.fail("apply preset", err)
		}
		c.status.Addf(c.frame, "preset %s", next.Name)

	case ActionSave:
		saved, err := c.lib.Save(st.Current)
		if err != nil {
			return c.fail("save formation", err)
		}
		c.store.LoadFormation(saved)
		if err := c.RefreshSaved(); err != nil {
			return err
		}
		c.status.Addf(c.frame, "saved %q", saved.Name)

	case ActionLoadNext:
		if len(st.Saved) == 0 {
			c.status.Addf(c.frame, "no saved formations")
			return nil
		}
		c.loadIdx = (c.loadIdx + 1) % len(st.Saved)
		f := st.Saved[c.loadIdx]
		c.interaction.Cancel()
		c.store.LoadFormation(f)
		c.status.Addf(c.frame, "loaded %q", f.Name)

	case ActionDeleteSaved:
		if err := c.lib.Delete(st.Current.ID); err != nil {
			return c.fail("delete formation", err)
		}
		if err := c.RefreshSaved(); err != nil {
			return err
		}
		c.status.Addf(c.frame, "deleted %q from library", st.Current.Name)

	case ActionExport:
		path, err := formation.Download(st.Current, c.exportDir)
		if err != nil {
			return c.fail("export formation", err)
		}
		c.status.Addf(c.frame, "exported %s", path)

	case ActionCopy:
		data, err := formation.ExportJSON(st.Current)
		if err != nil {
			return c.fail("encode formation", err)
		}
		if err := c.clip.WriteAll(string(data)); err != nil {
			return c.fail("copy to clipboard", err)
		}
		c.status.Addf(c.frame, "copied %q to clipboard", st.Current.Name)

	case ActionPaste:
		text, err := c.clip.ReadAll()
		if err != nil {
			return c.fail("read clipboard", err)
		}
		f, err := c.lib.ImportJSON([]byte(text))
		if err != nil {
			return c.fail("import formation", err)
		}
		c.interaction.Cancel()
		c.store.LoadFormation(f)
		c.status.Addf(c.frame, "imported %q", f.Name)

	case ActionCancel:
		c.interaction.Cancel()
		c.store.SelectPlayer("")
	}
	return nil
}

// nextBenched returns the first off-field player after current in list
// order, wrapping around.
func nextBenched(players []formation.Player, current string) (string, bool) {
	start := 0
	for i, p := range players {
		if p.ID == current {
			start = i + 1
			break
		}
	}
	for k := 0; k < len(players); k++ {
		p := players[(start+k)%len(players)]
		if !p.OnField {
			return p.ID, true
		}
	}
	return "", false
}

// cycle returns the palette entry step places from cur. Unknown colours
// start from the first entry.
func cycle(palette []string, cur string, step int) string {
	if len(palette) == 0 {
		return cur
	}
	for i, p := range palette {
		if p == cur {
			return palette[((i+step)%len(palette)+len(palette))%len(palette)]
		}
	}
	return palette[0]
}
