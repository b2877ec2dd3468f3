package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"deskfolio/internal/content"
	"deskfolio/internal/model"
	"deskfolio/internal/wm"
)

// finderApp browses the location tree: favourites and project folders in
// the sidebar, the current folder's entries on the right.
type finderApp struct {
	d *desktop

	location int
	sel      int
	scroll   int
	side     sidebar
	// width is the content width of the last render.
	width int
}

func newFinderApp(d *desktop) *finderApp {
	return &finderApp{d: d, location: content.WorkLocationID}
}

// navigate shows folder id. Unknown ids are ignored.
func (f *finderApp) navigate(id int) {
	if _, ok := f.d.locs.Folder(id); !ok {
		return
	}
	if id != f.location {
		f.sel = 0
		f.scroll = 0
	}
	f.location = id
}

// refresh re-resolves the current folder after content reloads.
func (f *finderApp) refresh() {
	n, ok := f.d.locs.Folder(f.location)
	if !ok {
		f.location = content.WorkLocationID
		f.sel, f.scroll = 0, 0
		return
	}
	if f.sel >= len(n.Children) {
		f.sel = max(0, len(n.Children)-1)
	}
}

func (f *finderApp) folder() model.Node {
	n, ok := f.d.locs.Folder(f.location)
	if !ok {
		return f.d.locs.Work
	}
	return n
}

type sideEntry struct {
	heading string
	node    model.Node
}

func (f *finderApp) sideEntries() []sideEntry {
	out := []sideEntry{{heading: "Favorites"}}
	for _, n := range f.d.locs.Favorites() {
		out = append(out, sideEntry{node: n})
	}
	out = append(out, sideEntry{heading: "My Projects"})
	for _, n := range f.d.locs.Work.Children {
		out = append(out, sideEntry{node: n})
	}
	return out
}

// breadcrumb is the folder chain from its favourite down to the current folder.
func (f *finderApp) breadcrumb() string {
	var names []string
	id := f.location
	for {
		n, ok := f.d.locs.Folder(id)
		if !ok {
			break
		}
		names = append([]string{n.Name}, names...)
		p, ok := f.d.locs.Parent(id)
		if !ok {
			break
		}
		id = p.ID
	}
	return strings.Join(names, " "+glyphSeparator()+" ")
}

func (f *finderApp) View(width, height int) string {
	f.width = width
	sw := f.side.widthFor(width)
	mainW := width - sw - 1
	if mainW < 1 {
		sw, mainW = 0, width-1
	}

	var side []string
	for _, e := range f.sideEntries() {
		if e.heading != "" {
			if len(side) > 0 {
				side = append(side, "")
			}
			side = append(side, styleMuted().Render(" "+e.heading))
			continue
		}
		ln := fitWidth(" "+glyphFor(e.node)+" "+e.node.Name, sw)
		if e.node.ID == f.location {
			ln = styleSelected().Render(ln)
		}
		side = append(side, ln)
	}
	side = normalizeLines(side, sw, height)

	folder := f.folder()
	main := []string{styleHeading().Render(f.breadcrumb()), ""}
	listH := height - len(main)
	var rows []string
	for i, n := range folder.Children {
		name := n.Name
		if n.IsFolder() {
			name += "/"
		}
		ln := fitWidth(" "+glyphFor(n)+" "+name, mainW)
		if i == f.sel && f.d.inWindow {
			ln = styleSelected().Render(ln)
		}
		rows = append(rows, ln)
	}
	if len(rows) == 0 {
		rows = []string{styleMuted().Render(" This folder is empty")}
	}
	if listH > 0 && f.sel >= f.scroll+listH {
		f.scroll = f.sel - listH + 1
	}
	visible, off := scrollWindow(rows, f.scroll, listH)
	f.scroll = off
	main = normalizeLines(append(main, visible...), mainW, height)

	splitter := lipgloss.NewStyle().Foreground(colorBorder)
	if f.side.dragging {
		splitter = splitter.Foreground(colorAccent)
	}
	out := make([]string, height)
	for i := range out {
		out[i] = side[i] + splitter.Render("│") + main[i]
	}
	return strings.Join(out, "\n")
}

func (f *finderApp) Click(p wm.Point, width, height int) (tea.Cmd, bool) {
	sw := f.side.widthFor(width)
	if f.side.onSplitter(p.X, width) {
		f.side.dragging = true
		return nil, true
	}
	if p.X < sw {
		row := 0
		for _, e := range f.sideEntries() {
			if e.heading != "" && row > 0 {
				row++
			}
			if row == p.Y && e.heading == "" {
				f.navigate(e.node.ID)
				return nil, false
			}
			row++
		}
		return nil, false
	}
	i := p.Y - 2 + f.scroll
	children := f.folder().Children
	if p.Y < 2 || i < 0 || i >= len(children) {
		return nil, false
	}
	f.sel = i
	return f.activate(children[i]), false
}

// activate opens a folder entry the way a double click would.
func (f *finderApp) activate(n model.Node) tea.Cmd {
	o := content.OpenItem(n)
	switch o.Kind {
	case content.OpenWindow:
		f.d.Open(o.Key, o.Payload)
	case content.OpenFolder:
		f.navigate(o.FolderID)
	case content.OpenLink:
		return openLinkCmd(o.Href)
	}
	return nil
}

func (f *finderApp) Update(msg tea.Msg) tea.Cmd {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	children := f.folder().Children
	switch km.String() {
	case "up", "k":
		if f.sel > 0 {
			f.sel--
		}
		f.keepVisible()
	case "down", "j":
		if f.sel < len(children)-1 {
			f.sel++
		}
		f.keepVisible()
	case "enter", "right", "l":
		if f.sel < len(children) {
			return f.activate(children[f.sel])
		}
	case "backspace", "left", "h":
		if p, ok := f.d.locs.Parent(f.location); ok {
			prev := f.location
			f.navigate(p.ID)
			for i, c := range p.Children {
				if c.ID == prev && c.IsFolder() {
					f.sel = i
				}
			}
		}
	case "[":
		f.side.drag(f.side.widthFor(f.width)-2, f.width)
	case "]":
		f.side.drag(f.side.widthFor(f.width)+2, f.width)
	}
	return nil
}

func (f *finderApp) keepVisible() {
	if f.sel < f.scroll {
		f.scroll = f.sel
	}
}

func (f *finderApp) Scroll(delta int) { f.scroll = max(0, f.scroll+delta) }

func (f *finderApp) Typing() bool { return false }

func (f *finderApp) Drag(p wm.Point, width int) { f.side.drag(p.X, width) }

func (f *finderApp) Release() { f.side.dragging = false }
