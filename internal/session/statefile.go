package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/Sachintlgt/brd-admin-sub000/internal/dtos"
)

// Snapshot is the legacy persisted session state: the access token plus a
// user snapshot, the local-storage fallback the identity cookie superseded.
type Snapshot struct {
	AccessToken string    `json:"accessToken"`
	User        dtos.User `json:"user"`
}

// StateFile stores the snapshot as JSON on disk.
type StateFile struct {
	Path string
}

func NewStateFile(path string) *StateFile {
	return &StateFile{Path: path}
}

func (f *StateFile) Load() (Snapshot, error) {
	var snap Snapshot
	b, err := os.ReadFile(f.Path)
	if err != nil {
		return snap, err
	}
	if err := json.Unmarshal(b, &snap); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

func (f *StateFile) Save(snap Snapshot) error {
	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(f.Path, b, 0o600)
}

func (f *StateFile) Clear() error {
	err := os.Remove(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
