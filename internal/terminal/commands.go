package terminal

import (
	"fmt"
	"strings"

	"deskfolio/internal/content"
	"deskfolio/internal/model"
	"deskfolio/internal/wm"
)

type command struct {
	name string
	help string
	run  func(s *Shell, args []string) Result
}

// commands is in help order; completion picks the first prefix match.
var commands []command

func init() {
	commands = []command{
		{"help", "List all commands", (*Shell).help},
		{"clear", "Clear the terminal", func(*Shell, []string) Result { return Result{Clear: true} }},
		{"about", "About me", (*Shell).about},
		{"whoami", "Print the current user", func(s *Shell, _ []string) Result { return lines(s.User) }},
		{"date", "Print the current date", func(s *Shell, _ []string) Result {
			return lines(s.now().Format("Mon Jan 02 2006 15:04:05 GMT-0700 (MST)"))
		}},
		{"echo", "Print the arguments", func(_ *Shell, args []string) Result { return lines(strings.Join(args, " ")) }},
		{"skills", "View tech stack", (*Shell).skills},
		{"projects", "View projects", (*Shell).projects},
		{"contact", "Contact info", (*Shell).contact},
		{"resume", "Open the resume", func(s *Shell, _ []string) Result {
			s.Desk.Open(wm.KeyResume, nil)
			return lines("Opening Resume.pdf...")
		}},
		{"admin", "Open the admin portal", func(s *Shell, _ []string) Result {
			s.Desk.Open(wm.KeyAdmin, nil)
			return lines("Opening Admin Portal... (Authenticated as guest)")
		}},
		{"open", "Open an app or file (e.g., open photos)", (*Shell).open},
		{"close", "Close an app (e.g., close finder)", (*Shell).close},
		{"ls", "List the current folder", (*Shell).ls},
		{"cd", "Change folder", (*Shell).cd},
		{"cat", "Print a text file", (*Shell).cat},
	}
}

func lookup(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func lines(l ...string) Result { return Result{Lines: l} }

func (s *Shell) help([]string) Result {
	out := make([]string, 0, len(commands))
	for _, c := range commands {
		out = append(out, fmt.Sprintf("%-10s%s", c.name, c.help))
	}
	return Result{Lines: out}
}

func (s *Shell) about([]string) Result {
	return lines(
		"Hi, I'm the developer behind this desktop!",
		"I build tools for the web and the terminal.",
		"Type skills or projects to see more.",
	)
}

func (s *Shell) skills([]string) Result {
	out := make([]string, 0, len(s.techStack)+1)
	for _, t := range s.techStack {
		out = append(out, fmt.Sprintf("%s: %s", t.Category, strings.Join(t.Items, ", ")))
	}
	out = append(out, "✓ All systems operational")
	return Result{Lines: out}
}

func (s *Shell) projects([]string) Result {
	work := s.locs.Work.Children
	if len(work) == 0 {
		return lines("No projects yet.")
	}
	out := make([]string, 0, len(work)+1)
	for _, p := range work {
		out = append(out, "▸ "+p.Name)
	}
	out = append(out, "Tip: cd Work and open a project, or find them in Finder")
	return Result{Lines: out}
}

func (s *Shell) contact([]string) Result {
	if len(s.socials) == 0 {
		return lines("No contact links yet.")
	}
	out := make([]string, 0, len(s.socials))
	for _, p := range s.socials {
		out = append(out, fmt.Sprintf("%s: %s", p.Text, p.Link))
	}
	return Result{Lines: out}
}

// open accepts an app name first and otherwise an entry of the working
// folder, resolved the way Finder would.
func (s *Shell) open(args []string) Result {
	if len(args) == 0 {
		return lines("Usage: open <app_name>")
	}
	if key, ok := wm.ParseKey(args[0]); ok && len(args) == 1 {
		s.Desk.Open(key, nil)
		return lines(fmt.Sprintf("Opening %s...", key))
	}

	name := strings.Join(args, " ")
	n, ok := s.cwdNode().ChildNamed(name)
	if !ok {
		return lines(fmt.Sprintf("open: unknown app or file: %s", name))
	}
	switch o := content.OpenItem(n); o.Kind {
	case content.OpenWindow:
		s.Desk.Open(o.Key, o.Payload)
		return lines(fmt.Sprintf("Opening %s...", n.Name))
	case content.OpenFolder:
		s.Desk.Open(wm.KeyFinder, wm.FinderPayload{LocationID: o.FolderID, Name: n.Name})
		return lines(fmt.Sprintf("Opening %s in Finder...", n.Name))
	case content.OpenLink:
		return Result{Lines: []string{fmt.Sprintf("Opening %s...", o.Href)}, Link: o.Href}
	default:
		return lines(fmt.Sprintf("open: cannot open %s", n.Name))
	}
}

func (s *Shell) close(args []string) Result {
	if len(args) == 0 {
		return lines("Usage: close <app_name>")
	}
	key, ok := wm.ParseKey(args[0])
	if !ok {
		return lines(fmt.Sprintf("close: unknown app: %s", args[0]))
	}
	s.Desk.Close(key)
	return lines(fmt.Sprintf("Closing %s...", key))
}

func (s *Shell) ls(args []string) Result {
	dir := s.cwdNode()
	if len(args) > 0 {
		path, err := s.walk(strings.Join(args, " "))
		if err != nil {
			return lines("ls: " + err.Error())
		}
		dir, _ = s.resolve(path)
	}
	if len(dir.Children) == 0 {
		return Result{}
	}
	out := make([]string, 0, len(dir.Children))
	for _, c := range dir.Children {
		out = append(out, displayName(c))
	}
	return Result{Lines: out}
}

func displayName(n model.Node) string {
	if n.IsFolder() {
		return n.Name + "/"
	}
	return n.Name
}

func (s *Shell) cd(args []string) Result {
	if len(args) == 0 {
		s.cwd = nil
		return Result{}
	}
	path, err := s.walk(strings.Join(args, " "))
	if err != nil {
		return lines("cd: " + err.Error())
	}
	s.cwd = path
	return Result{}
}

func (s *Shell) cat(args []string) Result {
	if len(args) == 0 {
		return lines("Usage: cat <file>")
	}
	name := strings.Join(args, " ")
	n, ok := s.cwdNode().ChildNamed(name)
	switch {
	case !ok:
		return lines(fmt.Sprintf("cat: %s: No such file or directory", name))
	case n.IsFolder():
		return lines(fmt.Sprintf("cat: %s: Is a directory", name))
	case n.FileType != model.FileTxt:
		return lines(fmt.Sprintf("cat: %s: not a text file", name))
	}
	out := make([]string, 0, len(n.Description)+1)
	if n.Subtitle != "" {
		out = append(out, n.Subtitle)
	}
	out = append(out, n.Description...)
	return Result{Lines: out}
}
