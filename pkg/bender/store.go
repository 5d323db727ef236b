package bender

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
)

// profileFile is the on-disk document. A wrapper table rather than a
// bare array so the format can grow a version field without breaking
// existing files.
type profileFile struct {
	Benders []Bender `toml:"benders"`
}

// Store reads and writes bender profiles at a fixed path. Every
// mutating call rewrites the whole file; profile sets are a handful of
// machines, not a database.
type Store struct {
	path string
}

// NewStore returns a store backed by the given TOML file. The file need
// not exist yet; the first save creates it along with its directory.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath places the profile file under the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "mandrel", "benders.toml"), nil
}

// Load returns all benders, name-sorted. A missing file is an empty
// profile set, not an error.
func (s *Store) Load() ([]Bender, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read bender profiles: %w", err)
	}

	var doc profileFile
	if err := toml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse bender profiles %s: %w", s.path, err)
	}
	sortBenders(doc.Benders)
	return doc.Benders, nil
}

func (s *Store) save(benders []Bender) error {
	sortBenders(benders)
	raw, err := toml.Marshal(profileFile{Benders: benders})
	if err != nil {
		return fmt.Errorf("encode bender profiles: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create profile dir: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("write bender profiles: %w", err)
	}
	return nil
}

// Get returns the bender with the given id.
func (s *Store) Get(benderID string) (Bender, error) {
	benders, err := s.Load()
	if err != nil {
		return Bender{}, err
	}
	for _, b := range benders {
		if b.ID == benderID {
			return b, nil
		}
	}
	return Bender{}, &NotFoundError{Kind: "bender", ID: benderID}
}

// Add validates and persists a new bender, assigning it an id.
func (s *Store) Add(b Bender) (Bender, error) {
	if err := validateBender(b); err != nil {
		return Bender{}, err
	}
	benders, err := s.Load()
	if err != nil {
		return Bender{}, err
	}
	b.ID = uuid.NewString()
	for i := range b.Dies {
		if err := validateDie(b.Dies[i]); err != nil {
			return Bender{}, err
		}
		b.Dies[i].ID = uuid.NewString()
	}
	benders = append(benders, b)
	if err := s.save(benders); err != nil {
		return Bender{}, err
	}
	return b, nil
}

// Update replaces the stored bender with the same id. Dies travel with
// the bender, so an update may add, edit, or remove dies in one call;
// dies without ids are treated as new and assigned one.
func (s *Store) Update(b Bender) (Bender, error) {
	if err := validateBender(b); err != nil {
		return Bender{}, err
	}
	for i := range b.Dies {
		if err := validateDie(b.Dies[i]); err != nil {
			return Bender{}, err
		}
		if b.Dies[i].ID == "" {
			b.Dies[i].ID = uuid.NewString()
		}
	}
	benders, err := s.Load()
	if err != nil {
		return Bender{}, err
	}
	for i := range benders {
		if benders[i].ID == b.ID {
			benders[i] = b
			if err := s.save(benders); err != nil {
				return Bender{}, err
			}
			return b, nil
		}
	}
	return Bender{}, &NotFoundError{Kind: "bender", ID: b.ID}
}

// Delete removes a bender and all its dies.
func (s *Store) Delete(benderID string) error {
	benders, err := s.Load()
	if err != nil {
		return err
	}
	for i := range benders {
		if benders[i].ID == benderID {
			benders = append(benders[:i], benders[i+1:]...)
			return s.save(benders)
		}
	}
	return &NotFoundError{Kind: "bender", ID: benderID}
}

// AddDie validates and attaches a new die to an existing bender.
func (s *Store) AddDie(benderID string, d Die) (Die, error) {
	if err := validateDie(d); err != nil {
		return Die{}, err
	}
	benders, err := s.Load()
	if err != nil {
		return Die{}, err
	}
	for i := range benders {
		if benders[i].ID == benderID {
			d.ID = uuid.NewString()
			benders[i].Dies = append(benders[i].Dies, d)
			if err := s.save(benders); err != nil {
				return Die{}, err
			}
			return d, nil
		}
	}
	return Die{}, &NotFoundError{Kind: "bender", ID: benderID}
}

// DeleteDie removes one die from its bender.
func (s *Store) DeleteDie(benderID, dieID string) error {
	benders, err := s.Load()
	if err != nil {
		return err
	}
	for i := range benders {
		if benders[i].ID != benderID {
			continue
		}
		for j := range benders[i].Dies {
			if benders[i].Dies[j].ID == dieID {
				benders[i].Dies = append(benders[i].Dies[:j], benders[i].Dies[j+1:]...)
				return s.save(benders)
			}
		}
		return &NotFoundError{Kind: "die", ID: dieID}
	}
	return &NotFoundError{Kind: "bender", ID: benderID}
}

// FindDie resolves a bender/die pair in one call, for pulling die
// parameters into a bend sheet run.
func (s *Store) FindDie(benderID, dieID string) (Bender, Die, error) {
	b, err := s.Get(benderID)
	if err != nil {
		return Bender{}, Die{}, err
	}
	d := b.Die(dieID)
	if d == nil {
		return Bender{}, Die{}, &NotFoundError{Kind: "die", ID: dieID}
	}
	return b, *d, nil
}
