package formation

import (
	"time"

	"github.com/Garsondee/tactics-board/internal/geom"
)

// DefaultDrawColor is the initial sketching colour.
const DefaultDrawColor = "#ef4444"

// DefaultFormationName names freshly created formations.
const DefaultFormationName = "Nueva Formación"

// State is everything the board knows. Values handed out by Store.State are
// read-only views: slices are shared with the store.
type State struct {
	Current    Formation
	Saved      []Formation
	Tool       Tool
	SelectedID string // "" when nothing is selected
	Drawing    bool
	DrawColor  string
	Preset     string
}

// PlayerPatch is a partial player update. Non-nil fields overwrite the
// player's field wholesale; Position replaces both axes.
type PlayerPatch struct {
	Name     *string
	Number   *int
	Role     *Role
	Position *geom.Position
	Color    *string
	OnField  *bool
}

// Apply returns p with the patch applied.
func (pp PlayerPatch) Apply(p Player) Player {
	if pp.Name != nil {
		p.Name = *pp.Name
	}
	if pp.Number != nil {
		p.Number = *pp.Number
	}
	if pp.Role != nil {
		p.Role = *pp.Role
	}
	if pp.Position != nil {
		p.Position = *pp.Position
	}
	if pp.Color != nil {
		p.Color = *pp.Color
	}
	if pp.OnField != nil {
		p.OnField = *pp.OnField
	}
	return p
}

type subscriber struct {
	id uint64
	fn func()
}

// Store owns the board state and notifies subscribers synchronously, in
// registration order, after every mutation. It is not safe for concurrent
// use; it lives on the render goroutine.
type Store struct {
	state  State
	subs   []subscriber
	nextID uint64
	now    func() time.Time
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

// WithPreset sets the layout new formations start from.
func WithPreset(name string) StoreOption {
	return func(s *Store) { s.state.Preset = name }
}

// WithDrawColor sets the initial sketching colour.
func WithDrawColor(c string) StoreOption {
	return func(s *Store) { s.state.DrawColor = c }
}

// NewStore builds a store holding a default formation.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		now: time.Now,
		state: State{
			Tool:      ToolSelect,
			DrawColor: DefaultDrawColor,
			Preset:    DefaultPresetName,
		},
	}
	for _, o := range opts {
		o(s)
	}
	if _, err := PresetByName(s.state.Preset); err != nil {
		s.state.Preset = DefaultPresetName
	}
	s.state.Current = s.newFormation()
	return s
}

func (s *Store) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}

func (s *Store) newFormation() Formation {
	p, _ := PresetByName(s.state.Preset)
	ts := s.timestamp()
	return Formation{
		ID:        NewID(),
		Name:      DefaultFormationName,
		CreatedAt: ts,
		UpdatedAt: ts,
		Players:   DefaultPlayers(p),
		Drawings:  []DrawingElement{},
	}
}

// State returns the current state.
func (s *Store) State() State {
	return s.state
}

// Subscribe registers fn and returns a function that unregisters it.
func (s *Store) Subscribe(fn func()) (unsubscribe func()) {
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	return func() {
		for i := range s.subs {
			if s.subs[i].id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) notify() {
	subs := append([]subscriber(nil), s.subs...)
	for _, sub := range subs {
		sub.fn()
	}
}

func (s *Store) touch() {
	s.state.Current.UpdatedAt = s.timestamp()
}

// UpdatePlayerPosition moves a player. Unknown ids are ignored.
func (s *Store) UpdatePlayerPosition(id string, pos geom.Position) {
	p, ok := s.state.Current.Player(id)
	if !ok {
		return
	}
	p.Position = pos
	s.touch()
	s.notify()
}

// SelectPlayer sets the selection; "" clears it.
func (s *Store) SelectPlayer(id string) {
	s.state.SelectedID = id
	s.notify()
}

// SetTool switches the active tool.
func (s *Store) SetTool(t Tool) {
	s.state.Tool = t
	s.notify()
}

// SetDrawColor sets the colour for new drawings.
func (s *Store) SetDrawColor(c string) {
	s.state.DrawColor = c
	s.notify()
}

// AddDrawing appends a drawing.
func (s *Store) AddDrawing(d DrawingElement) {
	s.state.Current.Drawings = append(s.state.Current.Drawings, d)
	s.touch()
	s.notify()
}

// RemoveDrawing deletes a drawing by id.
func (s *Store) RemoveDrawing(id string) {
	kept := make([]DrawingElement, 0, len(s.state.Current.Drawings))
	for _, d := range s.state.Current.Drawings {
		if d.ID != id {
			kept = append(kept, d)
		}
	}
	s.state.Current.Drawings = kept
	s.notify()
}

// ClearDrawings removes every drawing.
func (s *Store) ClearDrawings() {
	s.state.Current.Drawings = []DrawingElement{}
	s.notify()
}

// UpdatePlayer applies a partial update to a player. Unknown ids are ignored.
func (s *Store) UpdatePlayer(id string, patch PlayerPatch) {
	p, ok := s.state.Current.Player(id)
	if !ok {
		return
	}
	*p = patch.Apply(*p)
	s.touch()
	s.notify()
}

// NewFormation replaces the current formation with a fresh default one.
func (s *Store) NewFormation() {
	s.state.Current = s.newFormation()
	s.state.SelectedID = ""
	s.notify()
}

// LoadFormation makes a copy of f the current formation.
func (s *Store) LoadFormation(f Formation) {
	s.state.Current = f.Clone()
	s.state.SelectedID = ""
	s.notify()
}

// SetFormationName renames the current formation.
func (s *Store) SetFormationName(name string) {
	s.state.Current.Name = name
	s.touch()
	s.notify()
}

// SetSavedFormations replaces the list of saved formations.
func (s *Store) SetSavedFormations(fs []Formation) {
	s.state.Saved = fs
	s.notify()
}

// SetIsDrawing flags an in-progress sketch. It does not notify.
func (s *Store) SetIsDrawing(drawing bool) {
	s.state.Drawing = drawing
}

// AddPlayer appends a player.
func (s *Store) AddPlayer(p Player) {
	s.state.Current.Players = append(s.state.Current.Players, p)
	s.touch()
	s.notify()
}

// RemovePlayer deletes a player, clearing the selection if it pointed at it.
func (s *Store) RemovePlayer(id string) {
	kept := make([]Player, 0, len(s.state.Current.Players))
	for _, p := range s.state.Current.Players {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.state.Current.Players = kept
	if s.state.SelectedID == id {
		s.state.SelectedID = ""
	}
	s.touch()
	s.notify()
}

// ApplyPreset re-slots the on-field players onto a named layout.
func (s *Store) ApplyPreset(name string) error {
	p, err := PresetByName(name)
	if err != nil {
		return err
	}
	s.state.Preset = name
	applySlots(s.state.Current.Players, p)
	s.touch()
	s.notify()
	return nil
}

// NextNumber returns the lowest shirt number not used in the current formation.
func (s *Store) NextNumber() int {
	used := make(map[int]bool, len(s.state.Current.Players))
	for _, p := range s.state.Current.Players {
		used[p.Number] = true
	}
	n := 1
	for used[n] {
		n++
	}
	return n
}
