package board

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Garsondee/tactics-board/internal/formation"
	"github.com/Garsondee/tactics-board/internal/geom"
)

func TestController_ColorCycleWraps(t *testing.T) {
	h := newHarness(t)
	want := []string{"#ffffff", "#facc15", "#ef4444"}
	for i, w := range want {
		if err := h.ctl.Do(ActionNextColor); err != nil {
			t.Fatalf("next colour: %v", err)
		}
		if got := h.store.State().DrawColor; got != w {
			t.Fatalf("step %d: expected %s, got %s", i, w, got)
		}
	}
	_ = h.ctl.Do(ActionPrevColor)
	if got := h.store.State().DrawColor; got != "#facc15" {
		t.Fatalf("previous colour should wrap back, got %s", got)
	}
}

func TestController_ThicknessBounds(t *testing.T) {
	h := newHarness(t)
	for i := 0; i < 20; i++ {
		_ = h.ctl.Do(ActionThicker)
	}
	if got := h.in.Thickness(); got != maxThickness {
		t.Fatalf("thickness should cap at %d, got %v", maxThickness, got)
	}
	for i := 0; i < 20; i++ {
		_ = h.ctl.Do(ActionThinner)
	}
	if got := h.in.Thickness(); got != 1 {
		t.Fatalf("thickness should floor at 1, got %v", got)
	}
}

func TestController_UndoRemovesLastDrawing(t *testing.T) {
	d := func(id string) formation.DrawingElement {
		return formation.DrawingElement{ID: id, Type: formation.DrawLine, Points: []geom.Position{{}, {X: 10}}, Thickness: 2}
	}
	h := newHarness(t, withDrawing(d("a")), withDrawing(d("b")))

	_ = h.ctl.Do(ActionUndoDrawing)
	ds := h.drawings()
	if len(ds) != 1 || ds[0].ID != "a" {
		t.Fatalf("undo should drop the newest drawing, got %+v", ds)
	}
	_ = h.ctl.Do(ActionUndoDrawing)
	_ = h.ctl.Do(ActionUndoDrawing)
	if len(h.drawings()) != 0 {
		t.Fatalf("undo on an empty list should be a no-op")
	}
}

func TestController_PlayerActions(t *testing.T) {
	h := newHarness(t, withPlayer("p1", 1, 10, 50), withPlayer("p2", 2, 30, 50))

	if err := h.ctl.Do(ActionRemovePlayer); !errors.Is(err, ErrNothingSelected) {
		t.Fatalf("expected ErrNothingSelected, got %v", err)
	}

	_ = h.ctl.Do(ActionAddPlayer)
	st := h.store.State()
	added, ok := st.Current.Player(st.SelectedID)
	if !ok || added.Number != 3 || added.Role != formation.RoleSubstitute || !added.OnField {
		t.Fatalf("unexpected added player %+v", added)
	}

	_ = h.ctl.Do(ActionToggleBench)
	st = h.store.State()
	if p, _ := st.Current.Player(added.ID); p.OnField {
		t.Fatalf("bench should take the player off the field")
	}
	if st.SelectedID != added.ID {
		t.Fatalf("benching should keep the selection, got %q", st.SelectedID)
	}

	h.store.SelectPlayer("p1")
	_ = h.ctl.Do(ActionRemovePlayer)
	st = h.store.State()
	if _, ok := st.Current.Player("p1"); ok || st.SelectedID != "" {
		t.Fatalf("remove should delete p1 and clear selection")
	}
}

func TestController_BenchRoundTrip(t *testing.T) {
	h := newHarness(t, withPlayer("p1", 1, 10, 50), withPlayer("p2", 2, 30, 50), withPlayer("p3", 3, 60, 50))

	h.store.SelectPlayer("p2")
	_ = h.ctl.Do(ActionToggleBench)
	h.store.SelectPlayer("p3")
	_ = h.ctl.Do(ActionToggleBench)

	// A miss on the board clears the selection; R finds benched players again.
	h.mouseDown(700, 380)
	h.mouseUp(700, 380)
	if got := h.store.State().SelectedID; got != "" {
		t.Fatalf("expected no selection after a miss, got %q", got)
	}

	_ = h.ctl.Do(ActionNextBenched)
	if got := h.store.State().SelectedID; got != "p2" {
		t.Fatalf("expected the first benched player p2, got %q", got)
	}
	_ = h.ctl.Do(ActionNextBenched)
	if got := h.store.State().SelectedID; got != "p3" {
		t.Fatalf("expected p3 next, got %q", got)
	}
	_ = h.ctl.Do(ActionNextBenched)
	if got := h.store.State().SelectedID; got != "p2" {
		t.Fatalf("cycling should wrap back to p2, got %q", got)
	}

	if err := h.ctl.Do(ActionToggleBench); err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	if p := h.player("p2"); !p.OnField {
		t.Fatalf("p2 should be back on the field")
	}
	h.mouseDown(240, 200) // p2 token at (30,50)
	h.mouseUp(240, 200)
	if got := h.store.State().SelectedID; got != "p2" {
		t.Fatalf("returned player should be pickable again, got %q", got)
	}
}

func TestController_NextBenchedWithEmptyBench(t *testing.T) {
	h := newHarness(t, withPlayer("p1", 1, 10, 50))
	h.store.SelectPlayer("p1")
	if err := h.ctl.Do(ActionNextBenched); err != nil {
		t.Fatalf("empty bench should not fail: %v", err)
	}
	if got := h.store.State().SelectedID; got != "p1" {
		t.Fatalf("selection should be untouched, got %q", got)
	}
}

func TestController_NextPreset(t *testing.T) {
	h := newHarness(t)
	if err := h.ctl.Do(ActionNextPreset); err != nil {
		t.Fatalf("next preset: %v", err)
	}
	if got := h.store.State().Preset; got != "2-3-2" {
		t.Fatalf("expected 2-3-2 after 3-3-1, got %s", got)
	}
}

func TestController_SaveAndLoadNext(t *testing.T) {
	h := newHarness(t)
	h.store.SetFormationName("Presión alta")
	if err := h.ctl.Do(ActionSave); err != nil {
		t.Fatalf("save: %v", err)
	}
	first := h.store.State().Current.ID

	_ = h.ctl.Do(ActionNewFormation)
	h.store.SetFormationName("Bloque bajo")
	if err := h.ctl.Do(ActionSave); err != nil {
		t.Fatalf("save: %v", err)
	}
	if n := len(h.store.State().Saved); n != 2 {
		t.Fatalf("expected 2 saved formations, got %d", n)
	}

	_ = h.ctl.Do(ActionLoadNext)
	if got := h.store.State().Current; got.ID != first || got.Name != "Presión alta" {
		t.Fatalf("load next should start at the first saved formation, got %q", got.Name)
	}

	if err := h.ctl.Do(ActionDeleteSaved); err != nil {
		t.Fatalf("delete saved: %v", err)
	}
	if n := len(h.store.State().Saved); n != 1 {
		t.Fatalf("expected 1 saved formation after delete, got %d", n)
	}
	if err := h.ctl.Do(ActionDeleteSaved); err != nil {
		t.Fatalf("deleting an unsaved formation should be a no-op, got %v", err)
	}
	if n := len(h.store.State().Saved); n != 1 {
		t.Fatalf("expected the library untouched, got %d", n)
	}
}

func TestController_ExportWritesSlugFile(t *testing.T) {
	h := newHarness(t)
	h.store.SetFormationName("Salida  por Banda")
	if err := h.ctl.Do(ActionExport); err != nil {
		t.Fatalf("export: %v", err)
	}
	path := filepath.Join(h.ctl.exportDir, "salida-por-banda.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected %s: %v", path, err)
	}
	if !strings.Contains(string(data), "\n  \"name\": \"Salida  por Banda\"") {
		t.Fatalf("export should be two-space indented JSON:\n%s", data)
	}
}

func TestController_ClipboardRoundTrip(t *testing.T) {
	h := newHarness(t, withPlayer("p1", 10, 40, 60))
	h.store.SetFormationName("Córner")
	orig := h.store.State().Current

	if err := h.ctl.Do(ActionCopy); err != nil {
		t.Fatalf("copy: %v", err)
	}
	_ = h.ctl.Do(ActionNewFormation)
	if err := h.ctl.Do(ActionPaste); err != nil {
		t.Fatalf("paste: %v", err)
	}

	got := h.store.State().Current
	if got.Name != "Córner" || len(got.Players) != 1 || !nearPos(got.Players[0].Position, 40, 60) {
		t.Fatalf("pasted formation mismatch: %+v", got)
	}
	if got.ID == orig.ID {
		t.Fatalf("imported formation should get a fresh id")
	}
}

func TestController_PasteRejectsInvalid(t *testing.T) {
	h := newHarness(t)
	before := h.store.State().Current.ID
	h.clip.text = `{"name":"sin jugadores"}`

	err := h.ctl.Do(ActionPaste)
	if !errors.Is(err, formation.ErrInvalidFormation) {
		t.Fatalf("expected ErrInvalidFormation, got %v", err)
	}
	if h.store.State().Current.ID != before {
		t.Fatalf("a rejected paste must leave the formation alone")
	}
	recent := h.ctl.Status().Recent()
	if len(recent) == 0 || recent[len(recent)-1].Level != StatusError {
		t.Fatalf("failure should be reported in the status log")
	}
}

func TestController_ClipboardFailure(t *testing.T) {
	h := newHarness(t)
	h.clip.err = errClipboard
	if err := h.ctl.Do(ActionCopy); !errors.Is(err, errClipboard) {
		t.Fatalf("expected the clipboard error to be wrapped, got %v", err)
	}
}

func TestCycle_UnknownStartsAtFirst(t *testing.T) {
	if got := cycle([]string{"#111111", "#222222"}, "#999999", 1); got != "#111111" {
		t.Fatalf("expected first palette entry, got %s", got)
	}
	if got := cycle(nil, "#999999", 1); got != "#999999" {
		t.Fatalf("empty palette should keep the colour, got %s", got)
	}
}
