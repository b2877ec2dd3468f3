package terminal

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"deskfolio/internal/content"
	"deskfolio/internal/model"
	"deskfolio/internal/wm"
)

type call struct {
	op   string
	key  wm.Key
	data wm.Payload
}

type fakeDesk struct{ calls []call }

func (d *fakeDesk) Open(key wm.Key, data wm.Payload) {
	d.calls = append(d.calls, call{"open", key, data})
}
func (d *fakeDesk) Close(key wm.Key) { d.calls = append(d.calls, call{op: "close", key: key}) }

func newShell(t *testing.T) (*Shell, *fakeDesk) {
	t.Helper()
	desk := &fakeDesk{}
	s := New(desk)
	s.Now = func() time.Time { return time.Date(2026, 3, 4, 9, 5, 6, 0, time.UTC) }
	projects := []model.Project{
		{Name: "Deskfolio", Description: []string{"A desktop in your terminal."}, Link: "https://deskfolio.dev"},
		{Name: "Notes"},
	}
	s.SetContent(model.Content{
		TechStack: []model.TechStack{{Category: "Backend", Items: []string{"Go", "SQLite"}}},
		Socials:   []model.SocialProfile{{Text: "Github", Link: "https://github.com/deskfolio"}},
		Projects:  projects,
	}, content.BuildLocations(projects))
	return s, desk
}

func TestExec_Basics(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line string
		want []string
	}{
		{"whoami", []string{"guest"}},
		{"echo hello   world", []string{"hello world"}},
		{"ECHO loud", []string{"loud"}},
		{"date", []string{"Wed Mar 04 2026 09:05:06 GMT+0000 (UTC)"}},
		{"skills", []string{"Backend: Go, SQLite", "✓ All systems operational"}},
		{"contact", []string{"Github: https://github.com/deskfolio"}},
		{"sudo rm", []string{"Command not found: sudo. Type 'help' for available commands."}},
		{"open", []string{"Usage: open <app_name>"}},
		{"close nope", []string{"close: unknown app: nope"}},
		{"open nope", []string{"open: unknown app or file: nope"}},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			s, _ := newShell(t)
			got := s.Exec(tt.line)
			if diff := cmp.Diff(tt.want, got.Lines); diff != "" {
				t.Fatalf("Exec(%q) (-want +got):\n%s", tt.line, diff)
			}
		})
	}
}

func TestExec_OpenAndCloseDriveTheDesk(t *testing.T) {
	t.Parallel()

	s, desk := newShell(t)
	s.Exec("open Photos")
	s.Exec("close photos")
	s.Exec("resume")
	s.Exec("admin")

	want := []call{
		{op: "open", key: wm.KeyPhotos},
		{op: "close", key: wm.KeyPhotos},
		{op: "open", key: wm.KeyResume},
		{op: "open", key: wm.KeyAdmin},
	}
	if diff := cmp.Diff(want, desk.calls, cmp.AllowUnexported(call{})); diff != "" {
		t.Fatalf("desk calls (-want +got):\n%s", diff)
	}
}

func TestExec_NavigatesFolders(t *testing.T) {
	t.Parallel()

	s, desk := newShell(t)
	if got := s.Exec("ls").Lines; !cmp.Equal(got, []string{"Work/", "About me/", "Resume/", "Trash/"}) {
		t.Fatalf("ls ~: %v", got)
	}
	s.Exec("cd work/deskfolio")
	if s.Path() != "~/Work/Deskfolio" {
		t.Fatalf("path: %q", s.Path())
	}
	if s.Prompt() != "guest@deskfolio:~/Work/Deskfolio$" {
		t.Fatalf("prompt: %q", s.Prompt())
	}
	if got := s.Exec("ls").Lines; !cmp.Equal(got, []string{"Deskfolio Info.txt", "Website"}) {
		t.Fatalf("ls project: %v", got)
	}
	if got := s.Exec("cat Deskfolio Info.txt").Lines; !cmp.Equal(got, []string{"A desktop in your terminal."}) {
		t.Fatalf("cat: %v", got)
	}

	res := s.Exec("open Website")
	if res.Link != "https://deskfolio.dev" {
		t.Fatalf("link: %+v", res)
	}
	s.Exec("open deskfolio info.txt")
	last := desk.calls[len(desk.calls)-1]
	if last.key != wm.KeyTxtFile || last.data.(wm.TxtFilePayload).Name != "Deskfolio Info.txt" {
		t.Fatalf("txt open: %+v", last)
	}

	if got := s.Exec("cd Website").Lines; !cmp.Equal(got, []string{"cd: not a directory: Website"}) {
		t.Fatalf("cd file: %v", got)
	}
	s.Exec("cd ..")
	if s.Path() != "~/Work" {
		t.Fatalf("cd ..: %q", s.Path())
	}
	s.Exec("open Notes")
	last = desk.calls[len(desk.calls)-1]
	if last.key != wm.KeyFinder || last.data.(wm.FinderPayload).LocationID != content.ProjectFolderBase+1 {
		t.Fatalf("folder open: %+v", last)
	}
	if got := s.Exec("cd ~/Nowhere").Lines; !cmp.Equal(got, []string{"cd: no such file or directory: Nowhere"}) {
		t.Fatalf("cd missing: %v", got)
	}
	s.Exec("cd")
	if s.Path() != "~" {
		t.Fatalf("cd home: %q", s.Path())
	}
}

func TestExec_ClearAndScrollback(t *testing.T) {
	t.Parallel()

	s, _ := newShell(t)
	if len(s.Entries()) != 1 {
		t.Fatalf("expected the welcome line")
	}
	s.Exec("cd Work")
	s.Exec("whoami")
	entries := s.Entries()
	if len(entries) != 4 {
		t.Fatalf("entries: %+v", entries)
	}
	if entries[1].Kind != EntryCommand || entries[1].Path != "~" || entries[1].Command != "cd Work" {
		t.Fatalf("cd entry: %+v", entries[1])
	}
	if entries[2].Path != "~/Work" {
		t.Fatalf("prompt path should follow cd: %+v", entries[2])
	}
	s.Exec("clear")
	if len(s.Entries()) != 0 {
		t.Fatalf("clear should empty the scrollback")
	}
	s.Exec("   ")
	if len(s.History()) != 3 {
		t.Fatalf("blank lines are not history: %v", s.History())
	}
}

func TestHistoryNavigation(t *testing.T) {
	t.Parallel()

	s, _ := newShell(t)
	if _, ok := s.Prev(); ok {
		t.Fatalf("empty history")
	}
	s.Exec("echo one")
	s.Exec("echo two")

	steps := []struct {
		up   bool
		want string
		ok   bool
	}{
		{true, "echo two", true},
		{true, "echo one", true},
		{true, "", false},
		{false, "echo two", true},
		{false, "", true},
		{false, "", false},
	}
	for i, st := range steps {
		var got string
		var ok bool
		if st.up {
			got, ok = s.Prev()
		} else {
			got, ok = s.Next()
		}
		if got != st.want || ok != st.ok {
			t.Fatalf("step %d: got (%q, %v) want (%q, %v)", i, got, ok, st.want, st.ok)
		}
	}
}

func TestComplete(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"he":      "help",
		"c":       "clear",
		"co":      "contact",
		"pro":     "projects",
		"zz":      "zz",
		"":        "",
		"open ph": "open ph",
	}
	for in, want := range tests {
		if got := Complete(in); got != want {
			t.Fatalf("Complete(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestHelpListsEveryCommand(t *testing.T) {
	t.Parallel()

	s, _ := newShell(t)
	out := strings.Join(s.Exec("help").Lines, "\n")
	for _, c := range commands {
		if !strings.Contains(out, c.name) {
			t.Fatalf("help is missing %q", c.name)
		}
	}
}

func TestSetContentKeepsValidCwd(t *testing.T) {
	t.Parallel()

	s, _ := newShell(t)
	s.Exec("cd Work/Notes")
	s.SetContent(model.Content{}, content.BuildLocations(nil))
	if s.Path() != "~" {
		t.Fatalf("stale cwd should reset: %q", s.Path())
	}
}
