package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const (
	dbFileName = "route.sqlite"

	// StateKey names the slot holding the serialized application state.
	StateKey = "route_state_v2"
)

// Store persists application state as a single string slot inside Dir.
// An empty Dir makes the store ephemeral: loads yield the demo state and saves
// are dropped.
type Store struct {
	Dir string
}

// LoadResult carries the loaded state and, when the demo dataset had to be
// substituted, why.
type LoadResult struct {
	State  *State
	Seeded bool
	Reason string
}

// DefaultDir returns $XDG_DATA_HOME/route (or ~/.local/share/route).
func DefaultDir() (string, error) {
	if d := strings.TrimSpace(os.Getenv("XDG_DATA_HOME")); d != "" {
		return filepath.Join(d, "route"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "route"), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) ephemeral() bool {
	return strings.TrimSpace(s.Dir) == ""
}

func (s Store) dbPath() string {
	return filepath.Join(s.Dir, dbFileName)
}

// Load reads the persisted state. A missing, unparsable or incomplete slot is
// not an error: the demo dataset is returned instead and Seeded is set.
// Only failures to reach the database are returned.
func (s Store) Load(ctx context.Context) (LoadResult, error) {
	if s.ephemeral() {
		return LoadResult{State: DemoState(), Seeded: true, Reason: "no store dir"}, nil
	}
	raw, ok, err := s.ReadSlot(ctx, StateKey)
	if err != nil {
		return LoadResult{}, err
	}
	if !ok {
		return LoadResult{State: DemoState(), Seeded: true, Reason: "no saved state"}, nil
	}
	st, err := ParseState([]byte(raw))
	if err != nil {
		var ie *ImportError
		if errors.As(err, &ie) {
			return LoadResult{State: DemoState(), Seeded: true, Reason: ie.Error()}, nil
		}
		return LoadResult{}, err
	}
	return LoadResult{State: st}, nil
}

// Save writes the full state to the slot.
func (s Store) Save(ctx context.Context, st *State) error {
	if st == nil {
		return errors.New("nil state")
	}
	if s.ephemeral() {
		return nil
	}
	b, err := st.Encode(false)
	if err != nil {
		return err
	}
	return s.WriteSlot(ctx, StateKey, string(b))
}

// Reset discards the persisted state; the next Load yields the demo dataset.
func (s Store) Reset(ctx context.Context) error {
	if s.ephemeral() {
		return nil
	}
	return s.DeleteSlot(ctx, StateKey)
}
