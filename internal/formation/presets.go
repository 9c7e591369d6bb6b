package formation

import (
	"fmt"

	"github.com/Garsondee/tactics-board/internal/geom"
)

// Token colours used for generated squads.
const (
	GoalkeeperColor = "#f59e0b"
	OutfieldColor   = "#3b82f6"
)

// DefaultPresetName is the layout new formations start from.
const DefaultPresetName = "3-3-1"

// Slot is one placement in a preset.
type Slot struct {
	Role Role
	Pos  geom.Position
}

// Preset is a named 8-a-side layout. Slot 0 is always the goalkeeper, which
// sits near the left goal; the team attacks left to right.
type Preset struct {
	Name  string
	Slots []Slot
}

func slot(r Role, x, y float64) Slot {
	return Slot{Role: r, Pos: geom.Position{X: x, Y: y}}
}

// Presets lists the built-in layouts in cycling order.
var Presets = []Preset{
	{Name: "3-3-1", Slots: []Slot{
		slot(RoleGoalkeeper, 8, 50),
		slot(RoleDefender, 25, 25), slot(RoleDefender, 25, 50), slot(RoleDefender, 25, 75),
		slot(RoleMidfielder, 50, 20), slot(RoleMidfielder, 50, 50), slot(RoleMidfielder, 50, 80),
		slot(RoleForward, 75, 50),
	}},
	{Name: "2-3-2", Slots: []Slot{
		slot(RoleGoalkeeper, 8, 50),
		slot(RoleDefender, 25, 35), slot(RoleDefender, 25, 65),
		slot(RoleMidfielder, 48, 20), slot(RoleMidfielder, 45, 50), slot(RoleMidfielder, 48, 80),
		slot(RoleForward, 72, 38), slot(RoleForward, 72, 62),
	}},
	{Name: "3-2-2", Slots: []Slot{
		slot(RoleGoalkeeper, 8, 50),
		slot(RoleDefender, 25, 25), slot(RoleDefender, 22, 50), slot(RoleDefender, 25, 75),
		slot(RoleMidfielder, 47, 35), slot(RoleMidfielder, 47, 65),
		slot(RoleForward, 72, 35), slot(RoleForward, 72, 65),
	}},
	{Name: "2-4-1", Slots: []Slot{
		slot(RoleGoalkeeper, 8, 50),
		slot(RoleDefender, 25, 35), slot(RoleDefender, 25, 65),
		slot(RoleMidfielder, 45, 15), slot(RoleMidfielder, 42, 40),
		slot(RoleMidfielder, 42, 60), slot(RoleMidfielder, 45, 85),
		slot(RoleForward, 72, 50),
	}},
}

// PresetByName finds a preset.
func PresetByName(name string) (Preset, error) {
	for _, p := range Presets {
		if p.Name == name {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("formation: unknown preset %q", name)
}

// NextPreset returns the preset after name, wrapping around. Unknown names
// yield the first preset.
func NextPreset(name string) Preset {
	for i, p := range Presets {
		if p.Name == name {
			return Presets[(i+1)%len(Presets)]
		}
	}
	return Presets[0]
}

// DefaultPlayers builds the starting squad for a preset.
func DefaultPlayers(p Preset) []Player {
	players := make([]Player, len(p.Slots))
	for i, s := range p.Slots {
		c := OutfieldColor
		if s.Role == RoleGoalkeeper {
			c = GoalkeeperColor
		}
		players[i] = Player{
			ID:       NewID(),
			Name:     fmt.Sprintf("Jugador %d", i+1),
			Number:   i + 1,
			Role:     s.Role,
			Position: s.Pos,
			Color:    c,
			OnField:  true,
		}
	}
	return players
}

// applySlots moves on-field players onto the preset's slots in list order.
// Players beyond the slot count keep their place.
func applySlots(players []Player, p Preset) {
	i := 0
	for k := range players {
		if !players[k].OnField {
			continue
		}
		if i >= len(p.Slots) {
			return
		}
		players[k].Role = p.Slots[i].Role
		players[k].Position = p.Slots[i].Pos
		i++
	}
}
