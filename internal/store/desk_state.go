package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"deskfolio/internal/wm"
)

const deskStateFileName = "desk_state.json"

// DeskState is the window registry as it was when the desktop last exited.
// It is best effort: a missing or corrupt file loads as an empty state and
// callers fall back to the catalog.
type DeskState struct {
	Version int `json:"version"`

	Windows *wm.Snapshot `json:"windows,omitempty"`

	// FinderLocationID is the folder Finder was showing.
	FinderLocationID int `json:"finderLocationId,omitempty"`

	// PhotosAlbum is the tag of the selected Photos album.
	PhotosAlbum string `json:"photosAlbum,omitempty"`

	// TerminalHistory holds submitted commands, oldest first.
	TerminalHistory []string `json:"terminalHistory,omitempty"`
}

const maxTerminalHistory = 100

func (s Store) deskStatePath() string {
	return filepath.Join(s.Dir, deskStateFileName)
}

func (s Store) LoadDeskState() (*DeskState, error) {
	if strings.TrimSpace(s.Dir) == "" {
		return &DeskState{Version: 1}, nil
	}
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(s.deskStatePath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &DeskState{Version: 1}, nil
		}
		return nil, err
	}
	var st DeskState
	if err := json.Unmarshal(b, &st); err != nil {
		return &DeskState{Version: 1}, nil
	}
	if st.Version == 0 {
		st.Version = 1
	}
	return &st, nil
}

func (s Store) SaveDeskState(st *DeskState) error {
	if st == nil || strings.TrimSpace(s.Dir) == "" {
		return nil
	}
	if err := s.Ensure(); err != nil {
		return err
	}
	if st.Version == 0 {
		st.Version = 1
	}
	if n := len(st.TerminalHistory); n > maxTerminalHistory {
		st.TerminalHistory = st.TerminalHistory[n-maxTerminalHistory:]
	}
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return atomicWriteFile(s.Dir, deskStateFileName+".*.tmp", s.deskStatePath(), b, 0o644)
}
