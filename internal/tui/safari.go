package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"deskfolio/internal/model"
	"deskfolio/internal/wm"
)

const categoryAll = "All"

type safariItemKind int

const (
	safariClear safariItemKind = iota
	safariCategory
	safariPost
)

type safariItem struct {
	kind     safariItemKind
	category string
	link     string
}

// safariApp is the blog: tech stack categories on top filter the posts
// below. The first matching post is featured.
type safariApp struct {
	d        *desktop
	category string
	sel      int
	scroll   int
	// follow keeps the selection on screen; wheel scrolling turns it off.
	follow bool

	items []safariItem
	rows  rows
}

func newSafariApp(d *desktop) *safariApp { return &safariApp{d: d, category: categoryAll} }

// postsFor keeps posts with a tag equal to category, ignoring case.
func postsFor(posts []model.BlogPost, category string) []model.BlogPost {
	if category == categoryAll {
		return posts
	}
	var out []model.BlogPost
	for _, p := range posts {
		for _, t := range p.Tags {
			if strings.EqualFold(t, category) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

func (s *safariApp) build(width int) {
	s.items = s.items[:0]
	s.rows = rows{}
	item := func(it safariItem) int {
		s.items = append(s.items, it)
		return len(s.items) - 1
	}
	line := func(idx int, text string) {
		if idx == s.sel && s.d.inWindow {
			text = styleSelected().Render(fitWidth(text, width))
		}
		s.rows.add(text, idx)
	}

	heading := styleHeading().Render("Tech Ecosystem")
	if s.category != categoryAll {
		i := item(safariItem{kind: safariClear})
		line(i, heading+"  "+lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render("[CLEAR FILTER]"))
	} else {
		s.rows.add(heading, -1)
	}
	s.rows.blank()
	for _, ts := range s.d.content.TechStack {
		i := item(safariItem{kind: safariCategory, category: ts.Category})
		mark := "  "
		if strings.EqualFold(ts.Category, s.category) {
			mark = glyphPointer() + " "
		}
		line(i, mark+lipgloss.NewStyle().Bold(true).Render(ts.Category)+styleMuted().Render("  "+strings.Join(ts.Items, ", ")))
	}

	s.rows.blank()
	filterLabel := "All Posts"
	if s.category != categoryAll {
		filterLabel = "Filtering by: " + s.category
	}
	s.rows.add(styleHeading().Render("Latest Insights")+"  "+styleMuted().Render(filterLabel), -1)
	s.rows.blank()

	posts := postsFor(s.d.content.BlogPosts, s.category)
	if len(posts) == 0 {
		s.rows.add(styleHeading().Render("No posts found"), -1)
		s.rows.add(styleMuted().Render(fmt.Sprintf("No articles found for the category %q", s.category)), -1)
		i := item(safariItem{kind: safariClear})
		line(i, lipgloss.NewStyle().Foreground(colorAccent).Render("[Clear Filters]"))
		return
	}

	featured := posts[0]
	i := item(safariItem{kind: safariPost, link: featured.Link})
	s.rows.add(renderMarkdown(featuredMarkdown(featured), width), i)
	if i == s.sel && s.d.inWindow {
		s.rows.lines[len(s.rows.lines)-1] = styleSelected().Render(fitWidth(glyphPointer()+" Read Article", width))
	}
	s.rows.blank()

	for _, p := range posts[1:] {
		i := item(safariItem{kind: safariPost, link: p.Link})
		tag := "Technology"
		if len(p.Tags) > 0 {
			tag = p.Tags[0]
		}
		line(i, "  "+p.Title)
		s.rows.add("  "+lipgloss.NewStyle().Foreground(colorAccent).Render(strings.ToUpper(tag))+styleMuted().Render(" • "+p.Date), i)
	}
}

func featuredMarkdown(p model.BlogPost) string {
	var b strings.Builder
	b.WriteString("**FEATURED**")
	for _, t := range p.Tags {
		b.WriteString(" `" + t + "`")
	}
	b.WriteString("\n\n## " + p.Title + "\n\n")
	if p.Date != "" {
		b.WriteString(p.Date + "\n\n")
	}
	b.WriteString("Read Article")
	return b.String()
}

func (s *safariApp) View(width, height int) string {
	s.build(width)
	if s.sel >= len(s.items) {
		s.sel = max(0, len(s.items)-1)
	}
	sel := -1
	if s.follow {
		sel = s.rows.lineOf(s.sel)
	}
	out, off := s.rows.render(width, height, s.scroll, sel)
	s.scroll = off
	return out
}

func (s *safariApp) activate(i int) tea.Cmd {
	if i < 0 || i >= len(s.items) {
		return nil
	}
	it := s.items[i]
	switch it.kind {
	case safariClear:
		s.setCategory(categoryAll)
	case safariCategory:
		if it.category == s.category {
			s.setCategory(categoryAll)
		} else {
			s.setCategory(it.category)
		}
	case safariPost:
		return openLinkCmd(it.link)
	}
	return nil
}

func (s *safariApp) setCategory(c string) {
	s.category = c
	s.sel = 0
}

func (s *safariApp) Click(p wm.Point, width, height int) (tea.Cmd, bool) {
	i, ok := s.rows.itemAt(p.Y, s.scroll)
	if !ok {
		return nil, false
	}
	s.sel = i
	return s.activate(i), false
}

func (s *safariApp) Update(msg tea.Msg) tea.Cmd {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	s.follow = true
	switch km.String() {
	case "up", "k":
		s.sel = max(0, s.sel-1)
	case "down", "j":
		s.sel = min(max(0, len(s.items)-1), s.sel+1)
	case "enter", " ":
		return s.activate(s.sel)
	case "c":
		s.setCategory(categoryAll)
	}
	return nil
}

func (s *safariApp) Scroll(delta int) {
	s.scroll = max(0, s.scroll+delta)
	s.follow = false
}

func (s *safariApp) Typing() bool { return false }

// Esc drops an active category filter first.
func (s *safariApp) Esc() bool {
	if s.category == categoryAll {
		return false
	}
	s.setCategory(categoryAll)
	return true
}
