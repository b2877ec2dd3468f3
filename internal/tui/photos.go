package tui

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"deskfolio/internal/content"
	"deskfolio/internal/model"
	"deskfolio/internal/wm"
)

// Rows above the photo list: album title, search box, blank line.
const photosHeaderRows = 3

type photosApp struct {
	d *desktop

	albums []model.Album
	album  int
	search textinput.Model
	sel    int
	scroll int
	side   sidebar
	width  int

	// tagging shows the tag checklist for the selected photo.
	tagging bool
	tagID   int
	tagSel  int
}

func newPhotosApp(d *desktop) *photosApp {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "Search photos..."
	ti.CharLimit = 64
	return &photosApp{d: d, albums: model.DefaultAlbums(), search: ti}
}

func (a *photosApp) albumTag() string { return a.albums[a.album].Tag }

// selectAlbumTag switches to the album with tag. Unknown tags are ignored.
func (a *photosApp) selectAlbumTag(tag string) {
	for i, al := range a.albums {
		if al.Tag == tag {
			if i != a.album {
				a.sel, a.scroll = 0, 0
			}
			a.album = i
			return
		}
	}
}

func inAlbum(p model.GalleryPhoto, tag string) bool {
	switch tag {
	case model.AlbumTagAll:
		return true
	case model.AlbumTagFavorites:
		return p.IsFavorite
	}
	return slices.Contains(p.Tags, tag)
}

func matchesSearch(p model.GalleryPhoto, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(p.Title), term) {
		return true
	}
	for _, t := range p.Tags {
		if strings.Contains(strings.ToLower(t), term) {
			return true
		}
	}
	return false
}

// filtered is the gallery narrowed by the current album and search term.
func (a *photosApp) filtered() []model.GalleryPhoto {
	tag := a.albumTag()
	var out []model.GalleryPhoto
	for _, p := range a.d.content.Gallery {
		if inAlbum(p, tag) && matchesSearch(p, a.search.Value()) {
			out = append(out, p)
		}
	}
	return out
}

func (a *photosApp) albumCount(tag string) int {
	n := 0
	for _, p := range a.d.content.Gallery {
		if inAlbum(p, tag) {
			n++
		}
	}
	return n
}

// tagAlbums are the albums a photo can be tagged into.
func (a *photosApp) tagAlbums() []model.Album {
	var out []model.Album
	for _, al := range a.albums {
		if al.Tag != model.AlbumTagAll && al.Tag != model.AlbumTagFavorites {
			out = append(out, al)
		}
	}
	return out
}

func (a *photosApp) selected() (model.GalleryPhoto, bool) {
	photos := a.filtered()
	if a.sel < 0 || a.sel >= len(photos) {
		return model.GalleryPhoto{}, false
	}
	return photos[a.sel], true
}

// tagPhoto is the photo the tag list edits. It is tracked by id so the
// list stays put when a toggle moves the photo out of the current album.
func (a *photosApp) tagPhoto() (model.GalleryPhoto, bool) {
	for _, p := range a.d.content.Gallery {
		if p.ID == a.tagID {
			return p, true
		}
	}
	return model.GalleryPhoto{}, false
}

func photoCount(n int) string {
	if n == 1 {
		return "1 photo"
	}
	return fmt.Sprintf("%d photos", n)
}

func (a *photosApp) View(width, height int) string {
	a.width = width
	sw := a.side.widthFor(width)
	mainW := width - sw - 1
	if mainW < 1 {
		sw, mainW = 0, width-1
	}

	side := []string{styleMuted().Render(" Albums")}
	for i, al := range a.albums {
		count := fmt.Sprint(a.albumCount(al.Tag))
		name := fitWidth(" "+al.Title, max(0, sw-len(count)-1))
		ln := fitWidth(name+styleMuted().Render(count), sw)
		if i == a.album {
			ln = styleSelected().Render(fitWidth(name+count, sw))
		}
		side = append(side, ln)
	}
	side = normalizeLines(side, sw, height)

	photos := a.filtered()
	if a.sel >= len(photos) {
		a.sel = max(0, len(photos)-1)
	}
	title := styleHeading().Render(a.albums[a.album].Title)
	count := styleMuted().Render(photoCount(len(photos)))
	gap := max(1, mainW-lipgloss.Width(title)-lipgloss.Width(count))
	main := []string{
		title + strings.Repeat(" ", gap) + count,
		renderInputLine(mainW, glyphSearch()+" "+a.search.View(), a.search.Focused()),
		"",
	}

	listH := height - len(main)
	var rows []string
	if a.tagging {
		rows = a.tagRows()
	} else if len(photos) == 0 {
		rows = []string{
			"",
			lipgloss.PlaceHorizontal(mainW, lipgloss.Center, styleHeading().Render("No photos found")),
			lipgloss.PlaceHorizontal(mainW, lipgloss.Center, styleMuted().Render("Try adjusting your search or filters")),
		}
	} else {
		for i, p := range photos {
			fav := " "
			if p.IsFavorite {
				fav = lipgloss.NewStyle().Foreground(colorFavorite).Render(glyphStar())
			}
			tags := ""
			for _, t := range p.Tags {
				tags += " #" + t
			}
			ln := fitWidth(" "+fav+" "+p.Title+styleMuted().Render("  "+p.Date+tags), mainW)
			if i == a.sel && a.d.inWindow && !a.search.Focused() {
				ln = styleSelected().Render(fitWidth(" "+fav+" "+p.Title+"  "+p.Date+tags, mainW))
			}
			rows = append(rows, ln)
		}
		if listH > 0 && a.sel >= a.scroll+listH {
			a.scroll = a.sel - listH + 1
		}
		if a.sel < a.scroll {
			a.scroll = a.sel
		}
	}
	visible, off := scrollWindow(rows, a.scroll, listH)
	if !a.tagging {
		a.scroll = off
	}
	main = normalizeLines(append(main, visible...), mainW, height)

	splitter := lipgloss.NewStyle().Foreground(colorBorder)
	if a.side.dragging {
		splitter = splitter.Foreground(colorAccent)
	}
	out := make([]string, height)
	for i := range out {
		out[i] = side[i] + splitter.Render("│") + main[i]
	}
	return strings.Join(out, "\n")
}

func (a *photosApp) tagRows() []string {
	p, ok := a.tagPhoto()
	if !ok {
		return nil
	}
	rows := []string{styleHeading().Render(" Manage Tags"), styleMuted().Render(" " + p.Title), ""}
	for i, al := range a.tagAlbums() {
		box := "[ ]"
		if slices.Contains(p.Tags, al.Tag) {
			box = "[" + glyphCheck() + "]"
		}
		ln := " " + box + " " + al.Title
		if i == a.tagSel {
			ln = styleSelected().Render(ln)
		}
		rows = append(rows, ln)
	}
	rows = append(rows, "", styleMuted().Render(" space: toggle   esc: done"))
	return rows
}

// Rows of the tag checklist that precede the first tag.
const tagRowsHeader = 3

func (a *photosApp) Click(p wm.Point, width, height int) (tea.Cmd, bool) {
	sw := a.side.widthFor(width)
	if a.side.onSplitter(p.X, width) {
		a.side.dragging = true
		return nil, true
	}
	if p.X < sw {
		if i := p.Y - 1; i >= 0 && i < len(a.albums) {
			a.selectAlbum(i)
		}
		return nil, false
	}
	if p.Y == 1 {
		return a.focusSearch(), false
	}
	a.search.Blur()
	if a.tagging {
		if i := p.Y - photosHeaderRows - tagRowsHeader; i >= 0 && i < len(a.tagAlbums()) {
			a.tagSel = i
			return a.toggleTag(), false
		}
		return nil, false
	}
	i := p.Y - photosHeaderRows + a.scroll
	if p.Y < photosHeaderRows || i < 0 || i >= len(a.filtered()) {
		return nil, false
	}
	a.sel = i
	return a.open(), false
}

func (a *photosApp) selectAlbum(i int) {
	if i != a.album {
		a.sel, a.scroll = 0, 0
	}
	a.album = i
	a.tagging = false
	a.d.dirty = true
}

func (a *photosApp) focusSearch() tea.Cmd {
	a.tagging = false
	return a.search.Focus()
}

func (a *photosApp) open() tea.Cmd {
	p, ok := a.selected()
	if !ok {
		return nil
	}
	a.d.Open(wm.KeyImgFile, wm.ImgFilePayload{ID: p.ID, Name: p.Title, ImageURL: p.Img})
	return nil
}

func (a *photosApp) toggleFavorite() tea.Cmd {
	p, ok := a.selected()
	if !ok {
		return nil
	}
	label := "Added to Favorites"
	if p.IsFavorite {
		label = "Removed from Favorites"
	}
	return a.d.mutate(label, func(ctx context.Context, w content.Writer) error {
		_, err := w.ToggleFavorite(ctx, p.ID)
		return err
	})
}

func (a *photosApp) toggleTag() tea.Cmd {
	p, ok := a.tagPhoto()
	albums := a.tagAlbums()
	if !ok || a.tagSel >= len(albums) {
		return nil
	}
	tag := albums[a.tagSel].Tag
	if slices.Contains(p.Tags, tag) {
		return a.d.mutate(fmt.Sprintf("Removed %q from %s", tag, p.Title), func(ctx context.Context, w content.Writer) error {
			_, err := w.RemoveTag(ctx, p.ID, tag)
			return err
		})
	}
	return a.d.mutate(fmt.Sprintf("Tagged %s with %q", p.Title, tag), func(ctx context.Context, w content.Writer) error {
		_, err := w.AddTag(ctx, p.ID, tag)
		return err
	})
}

func (a *photosApp) Update(msg tea.Msg) tea.Cmd {
	km, ok := msg.(tea.KeyMsg)
	if a.search.Focused() {
		if ok && km.String() == "enter" {
			a.search.Blur()
			return nil
		}
		var cmd tea.Cmd
		a.search, cmd = a.search.Update(msg)
		a.sel, a.scroll = 0, 0
		return cmd
	}
	if !ok {
		return nil
	}
	if a.tagging {
		switch km.String() {
		case "up", "k":
			a.tagSel = max(0, a.tagSel-1)
		case "down", "j":
			a.tagSel = min(len(a.tagAlbums())-1, a.tagSel+1)
		case " ", "enter", "x":
			return a.toggleTag()
		case "t":
			a.tagging = false
		}
		return nil
	}
	switch km.String() {
	case "up", "k":
		a.sel = max(0, a.sel-1)
	case "down", "j":
		a.sel = min(max(0, len(a.filtered())-1), a.sel+1)
	case "enter", "o":
		return a.open()
	case "f":
		return a.toggleFavorite()
	case "t":
		if p, ok := a.selected(); ok {
			a.tagging = true
			a.tagID = p.ID
			a.tagSel = 0
		}
	case "/":
		return a.focusSearch()
	case "[":
		a.selectAlbum((a.album + len(a.albums) - 1) % len(a.albums))
	case "]":
		a.selectAlbum((a.album + 1) % len(a.albums))
	}
	return nil
}

func (a *photosApp) Scroll(delta int) {
	if a.tagging {
		return
	}
	a.scroll = max(0, a.scroll+delta)
	a.sel = a.scroll
}

func (a *photosApp) Typing() bool { return a.search.Focused() }

// Esc leaves the tag list or the search box first. A search term left in
// place is cleared on the next esc.
func (a *photosApp) Esc() bool {
	switch {
	case a.tagging:
		a.tagging = false
	case a.search.Focused():
		a.search.Blur()
	case a.search.Value() != "":
		a.search.SetValue("")
	default:
		return false
	}
	return true
}

func (a *photosApp) Drag(p wm.Point, width int) { a.side.drag(p.X, width) }

func (a *photosApp) Release() { a.side.dragging = false }
