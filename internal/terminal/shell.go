package terminal

import (
	"fmt"
	"strings"
	"time"

	"deskfolio/internal/content"
	"deskfolio/internal/model"
	"deskfolio/internal/wm"
)

const (
	DefaultUser = "guest"
	DefaultHost = "deskfolio"

	welcome = `Welcome to Deskfolio Terminal. Type "help" for a list of commands.`
)

// Desk is the part of the window manager the shell drives.
type Desk interface {
	Open(key wm.Key, data wm.Payload)
	Close(key wm.Key)
}

type EntryKind int

const (
	EntryOutput EntryKind = iota
	EntryCommand
)

// Entry is one scrollback item: either an echoed command with the prompt
// path it ran in, or the output it produced.
type Entry struct {
	Kind    EntryKind
	Path    string
	Command string
	Lines   []string
	At      time.Time
}

// Result is what a single Exec produced beyond scrollback. Link is set when
// the command resolved to an external URL the host should open.
type Result struct {
	Lines []string
	Link  string
	Clear bool
}

// Shell is a small command interpreter over the desktop. It is not safe for
// concurrent use.
type Shell struct {
	Desk Desk
	User string
	Host string
	Now  func() time.Time

	techStack []model.TechStack
	socials   []model.SocialProfile
	locs      content.Locations

	entries []Entry
	history []string
	histIdx int
	cwd     []string
}

func New(desk Desk) *Shell {
	return &Shell{
		Desk:    desk,
		User:    DefaultUser,
		Host:    DefaultHost,
		Now:     time.Now,
		entries: []Entry{{Kind: EntryOutput, Lines: []string{welcome}}},
		histIdx: -1,
	}
}

// SetContent swaps the data the shell reports on. The working directory is
// kept when it still exists.
func (s *Shell) SetContent(c model.Content, locs content.Locations) {
	s.techStack = c.TechStack
	s.socials = c.Socials
	s.locs = locs
	if _, ok := s.resolve(s.cwd); !ok {
		s.cwd = nil
	}
}

// Entries returns the scrollback, oldest first.
func (s *Shell) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// History returns previously run commands, oldest first.
func (s *Shell) History() []string {
	out := make([]string, len(s.history))
	copy(out, s.history)
	return out
}

// LoadHistory replaces the command history, e.g. from persisted desk state.
func (s *Shell) LoadHistory(h []string) {
	s.history = append([]string(nil), h...)
	s.histIdx = -1
}

func (s *Shell) Path() string {
	if len(s.cwd) == 0 {
		return "~"
	}
	return "~/" + strings.Join(s.cwd, "/")
}

func (s *Shell) Prompt() string {
	return fmt.Sprintf("%s@%s:%s$", s.User, s.Host, s.Path())
}

func (s *Shell) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// Exec runs one command line. Blank input does nothing.
func (s *Shell) Exec(line string) Result {
	line = strings.TrimSpace(line)
	if line == "" {
		return Result{}
	}
	s.history = append(s.history, line)
	s.histIdx = -1

	fields := strings.Fields(line)
	name, args := strings.ToLower(fields[0]), fields[1:]
	path := s.Path()

	var res Result
	if c, ok := lookup(name); ok {
		res = c.run(s, args)
	} else {
		res = Result{Lines: []string{fmt.Sprintf("Command not found: %s. Type 'help' for available commands.", fields[0])}}
	}
	if res.Clear {
		s.entries = nil
		return res
	}

	s.entries = append(s.entries, Entry{Kind: EntryCommand, Path: path, Command: line, At: s.now()})
	if len(res.Lines) > 0 {
		s.entries = append(s.entries, Entry{Kind: EntryOutput, Lines: res.Lines})
	}
	return res
}

// Prev walks one step back through history. ok is false when there is
// nothing older.
func (s *Shell) Prev() (string, bool) {
	next := s.histIdx + 1
	if next >= len(s.history) {
		return "", false
	}
	s.histIdx = next
	return s.history[len(s.history)-1-next], true
}

// Next walks forward through history. Stepping past the newest entry
// yields an empty line.
func (s *Shell) Next() (string, bool) {
	switch {
	case s.histIdx > 0:
		s.histIdx--
		return s.history[len(s.history)-1-s.histIdx], true
	case s.histIdx == 0:
		s.histIdx = -1
		return "", true
	default:
		return "", false
	}
}

// Complete returns the first command starting with input, or input itself
// when nothing matches.
func Complete(input string) string {
	in := strings.ToLower(strings.TrimSpace(input))
	if in == "" || strings.ContainsAny(in, " \t") {
		return input
	}
	for _, c := range commands {
		if strings.HasPrefix(c.name, in) {
			return c.name
		}
	}
	return input
}

func (s *Shell) root() model.Node {
	return model.Node{Name: "~", Kind: model.NodeFolder, Children: s.locs.Favorites()}
}

func (s *Shell) resolve(path []string) (model.Node, bool) {
	n := s.root()
	for _, name := range path {
		c, ok := n.ChildNamed(name)
		if !ok || !c.IsFolder() {
			return model.Node{}, false
		}
		n = c
	}
	return n, true
}

func (s *Shell) cwdNode() model.Node {
	n, ok := s.resolve(s.cwd)
	if !ok {
		s.cwd = nil
		return s.root()
	}
	return n
}

// walk applies a slash separated path to the working directory and
// returns the resulting directory names.
func (s *Shell) walk(arg string) ([]string, error) {
	var path []string
	if strings.HasPrefix(arg, "~") {
		arg = strings.TrimPrefix(strings.TrimPrefix(arg, "~"), "/")
	} else {
		path = append(path, s.cwd...)
	}
	dir, _ := s.resolve(path)
	for _, part := range strings.Split(arg, "/") {
		switch part {
		case "", ".":
			continue
		case "..":
			if len(path) > 0 {
				path = path[:len(path)-1]
			}
			dir, _ = s.resolve(path)
			continue
		}
		c, ok := dir.ChildNamed(part)
		if !ok {
			return nil, fmt.Errorf("no such file or directory: %s", part)
		}
		if !c.IsFolder() {
			return nil, fmt.Errorf("not a directory: %s", part)
		}
		path = append(path, c.Name)
		dir = c
	}
	return path, nil
}
