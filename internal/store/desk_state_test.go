package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"deskfolio/internal/wm"
)

func TestDeskState_SaveLoad_RoundTrip(t *testing.T) {
	t.Parallel()

	s := Store{Dir: t.TempDir()}

	st0, err := s.LoadDeskState()
	if err != nil {
		t.Fatalf("LoadDeskState: %v", err)
	}
	if st0.Version != 1 || st0.Windows != nil {
		t.Fatalf("expected default state; got %#v", st0)
	}

	reg := wm.NewStore(wm.DefaultCatalog())
	reg.Open(wm.KeyFinder, wm.FinderPayload{LocationID: 101, Name: "AI Resume Analyzer"})
	reg.Open(wm.KeyTxtFile, wm.TxtFilePayload{Name: "About.txt", Description: []string{"hello"}})
	reg.Minimize(wm.KeyTxtFile)
	snap := reg.Snapshot()

	want := &DeskState{
		Version:          1,
		Windows:          &snap,
		FinderLocationID: 101,
		PhotosAlbum:      "favorites",
		TerminalHistory:  []string{"help", "open photos"},
	}
	if err := s.SaveDeskState(want); err != nil {
		t.Fatalf("SaveDeskState: %v", err)
	}
	got, err := s.LoadDeskState()
	if err != nil {
		t.Fatalf("LoadDeskState (after save): %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("roundtrip mismatch (-want +got):\n%s", diff)
	}
}

func TestDeskState_CorruptFileLoadsEmpty(t *testing.T) {
	t.Parallel()

	s := Store{Dir: t.TempDir()}
	if err := os.WriteFile(filepath.Join(s.Dir, deskStateFileName), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	st, err := s.LoadDeskState()
	if err != nil {
		t.Fatalf("corrupt state should not error: %v", err)
	}
	if st.Version != 1 || st.Windows != nil {
		t.Fatalf("expected default state; got %#v", st)
	}
}

func TestDeskState_TrimsTerminalHistory(t *testing.T) {
	t.Parallel()

	s := Store{Dir: t.TempDir()}
	var hist []string
	for i := 0; i < maxTerminalHistory+10; i++ {
		hist = append(hist, "echo")
	}
	hist[len(hist)-1] = "last"
	if err := s.SaveDeskState(&DeskState{TerminalHistory: hist}); err != nil {
		t.Fatalf("SaveDeskState: %v", err)
	}
	got, _ := s.LoadDeskState()
	if len(got.TerminalHistory) != maxTerminalHistory || got.TerminalHistory[maxTerminalHistory-1] != "last" {
		t.Fatalf("history: len=%d", len(got.TerminalHistory))
	}
}
