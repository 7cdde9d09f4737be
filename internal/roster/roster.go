// Package roster knows who the game master and the players are and what
// each of them may do to whose inventory.
package roster

import (
	"errors"
	"sort"
	"strconv"
)

var (
	// ErrForbidden indicates the actor may not perform the action on the target.
	ErrForbidden = errors.New("not allowed")
	// ErrNoTarget indicates the game master has not selected a player.
	ErrNoTarget = errors.New("select a player first")
	// ErrUnknownPlayer indicates a player name that is not on the roster.
	ErrUnknownPlayer = errors.New("unknown player")
)

// Role is an actor's standing in the group.
type Role int

const (
	Guest Role = iota
	Player
	Master
)

func (r Role) String() string {
	switch r {
	case Player:
		return "player"
	case Master:
		return "master"
	default:
		return "guest"
	}
}

// Action is something done to an inventory.
type Action int

const (
	View Action = iota
	Edit
	Simulate
)

// Member is a named roster entry.
type Member struct {
	Name string `json:"name"`
	ID   int64  `json:"id"`
}

// Roster is the fixed group. A roster with no master and no players is open:
// everyone acts as a player on their own inventory and may simulate.
type Roster struct {
	masterID  int64
	players   map[string]int64
	names     map[int64]string
	simPlayer string
}

// New builds a roster. simulationPlayer names the one player whose
// inventory may be simulated.
func New(masterID int64, players map[string]int64, simulationPlayer string) *Roster {
	r := &Roster{
		masterID:  masterID,
		players:   make(map[string]int64, len(players)),
		names:     make(map[int64]string, len(players)),
		simPlayer: simulationPlayer,
	}
	for name, id := range players {
		r.players[name] = id
		r.names[id] = name
	}
	return r
}

// Open reports whether the roster has no members.
func (r *Roster) Open() bool {
	return r.masterID == 0 && len(r.players) == 0
}

// Role returns the actor's role.
func (r *Roster) Role(id int64) Role {
	switch {
	case r.masterID != 0 && id == r.masterID:
		return Master
	case r.Open():
		return Player
	default:
		if _, ok := r.names[id]; ok {
			return Player
		}
		return Guest
	}
}

// MasterID returns the game master's id, 0 if none.
func (r *Roster) MasterID() int64 {
	return r.masterID
}

// Name returns the player name for id.
func (r *Roster) Name(id int64) (string, bool) {
	name, ok := r.names[id]
	return name, ok
}

// PlayerID resolves a player by name.
func (r *Roster) PlayerID(name string) (int64, error) {
	id, ok := r.players[name]
	if !ok {
		return 0, ErrUnknownPlayer
	}
	return id, nil
}

// Players lists the players sorted by name.
func (r *Roster) Players() []Member {
	out := make([]Member, 0, len(r.players))
	for name, id := range r.players {
		out = append(out, Member{Name: name, ID: id})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// CanSimulate reports whether the inventory of target may be simulated.
func (r *Roster) CanSimulate(target int64) bool {
	if r.Open() {
		return true
	}
	return r.simPlayer != "" && r.players[r.simPlayer] == target
}

// Authorize checks whether actor may perform action on target's inventory.
// A target of 0 means the actor has not chosen one.
func (r *Roster) Authorize(actor, target int64, action Action) error {
	switch r.Role(actor) {
	case Master:
		if target == 0 || target == actor {
			return ErrNoTarget
		}
		if _, ok := r.names[target]; !ok {
			return ErrUnknownPlayer
		}
	case Player:
		if target != actor {
			return ErrForbidden
		}
	default:
		return ErrForbidden
	}
	if action == Simulate && !r.CanSimulate(target) {
		return ErrForbidden
	}
	return nil
}

// Key is the storage key for a user id.
func Key(id int64) string {
	return strconv.FormatInt(id, 10)
}
