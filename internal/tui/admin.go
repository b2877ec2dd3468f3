package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"deskfolio/internal/content"
	"deskfolio/internal/model"
	"deskfolio/internal/wm"
)

type adminTab int

const (
	tabDashboard adminTab = iota
	tabProjects
	tabPhotos
	tabBlogs
	tabTech
	tabSocials
)

var adminTabNames = []string{"Dashboard", "Projects", "Photos", "Blogs", "Tech Stack", "Socials"}

const (
	adminSideW = 14

	resetPrompt    = "Are you sure you want to reset all data to defaults? This cannot be undone."
	resetConfirmed = "System reset to factory defaults."
	resetLabel     = "Reset"
	cancelLabel    = "Cancel"
)

type formField struct {
	label    string
	input    textinput.Model
	required bool
	// keep survives a submit, like the chosen tech category.
	keep bool
}

type adminForm struct {
	title  string
	submit string
	fields []formField
	// save runs once required fields are filled in.
	save func(a *adminApp, v []string) tea.Cmd
}

func newField(label, placeholder string, required bool) formField {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.CharLimit = 512
	return formField{label: label, input: ti, required: required}
}

// adminApp edits content. Every submit goes through the desktop's backend.
type adminApp struct {
	d     *desktop
	tab   adminTab
	forms map[adminTab]*adminForm
	// field is the focused form field, or -1 while the tab list has focus.
	field int

	confirming bool
	confirm    confirmFocus

	dash rows
}

func newAdminApp(d *desktop) *adminApp {
	a := &adminApp{d: d, field: -1, forms: map[adminTab]*adminForm{}}

	a.forms[tabProjects] = &adminForm{
		title:  "Add Project",
		submit: "Add Project",
		fields: []formField{
			newField("Name", "Project Name", true),
			newField("Description", "Description", true),
			newField("Link", "Link URL (https://...)", false),
			newField("Image", "Image URL (https://...)", false),
		},
		save: func(a *adminApp, v []string) tea.Cmd {
			p := model.Project{Name: v[0], Description: []string{v[1]}, Link: v[2], ImageURL: v[3]}
			return a.d.mutate(fmt.Sprintf("Project %q added successfully!", p.Name), func(ctx context.Context, w content.Writer) error {
				_, err := w.AddProject(ctx, p)
				return err
			})
		},
	}
	a.forms[tabPhotos] = &adminForm{
		title:  "Add Photo",
		submit: "Upload Photo",
		fields: []formField{
			newField("Title", "Title", true),
			newField("URL", "Image URL (https://...)", true),
			newField("Tags", "Tags (comma separated)", false),
		},
		save: func(a *adminApp, v []string) tea.Cmd {
			title, url, tags := v[0], v[1], splitTags(v[2])
			return a.d.mutate(fmt.Sprintf("Photo %q added successfully!", title), func(ctx context.Context, w content.Writer) error {
				_, err := w.AddPhoto(ctx, title, url, tags)
				return err
			})
		},
	}
	a.forms[tabBlogs] = &adminForm{
		title:  "Add Blog Post",
		submit: "Publish Post",
		fields: []formField{
			newField("Title", "Title", true),
			newField("Image", "Image URL (https://...)", true),
			newField("Link", "Article Link (https://...)", true),
		},
		save: func(a *adminApp, v []string) tea.Cmd {
			b := model.BlogPost{Title: v[0], Image: v[1], Link: v[2]}
			return a.d.mutate(fmt.Sprintf("Blog %q added successfully!", b.Title), func(ctx context.Context, w content.Writer) error {
				_, err := w.AddBlogPost(ctx, b)
				return err
			})
		},
	}
	category := newField("Category", "Category (ctrl+n: cycle existing)", true)
	category.keep = true
	a.forms[tabTech] = &adminForm{
		title:  "Add Tech Skill",
		submit: "Add Skill",
		fields: []formField{
			category,
			newField("Skill", "Skill Name (e.g. Python)", true),
		},
		save: func(a *adminApp, v []string) tea.Cmd {
			cat, item := v[0], v[1]
			return a.d.mutate(fmt.Sprintf("%q added to %s!", item, cat), func(ctx context.Context, w content.Writer) error {
				_, err := w.AddTechItem(ctx, cat, item)
				return err
			})
		},
	}
	bg := newField("Background", "#000000", false)
	bg.input.SetValue("#000000")
	a.forms[tabSocials] = &adminForm{
		title:  "Add Social Link",
		submit: "Save Social",
		fields: []formField{
			newField("Platform", "Platform Name (e.g. Discord)", true),
			newField("Profile URL", "Profile URL", true),
			newField("Icon", "/icons/...", true),
			bg,
		},
		save: func(a *adminApp, v []string) tea.Cmd {
			sp := model.SocialProfile{Text: v[0], Link: v[1], Icon: v[2], Bg: v[3]}
			if sp.Bg == "" {
				sp.Bg = "#000000"
			}
			return a.d.mutate(fmt.Sprintf("Social %q added successfully!", sp.Text), func(ctx context.Context, w content.Writer) error {
				_, err := w.AddSocial(ctx, sp)
				return err
			})
		},
	}
	return a
}

func splitTags(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func (a *adminApp) form() *adminForm { return a.forms[a.tab] }

func (a *adminApp) setTab(t adminTab) {
	a.blur()
	a.tab = t
	a.confirming = false
}

func (a *adminApp) blur() {
	if f := a.form(); f != nil && a.field >= 0 && a.field < len(f.fields) {
		f.fields[a.field].input.Blur()
	}
	a.field = -1
}

func (a *adminApp) focusField(i int) tea.Cmd {
	f := a.form()
	if f == nil || len(f.fields) == 0 {
		return nil
	}
	a.blur()
	a.field = (i + len(f.fields)) % len(f.fields)
	return f.fields[a.field].input.Focus()
}

// submit checks required fields, then saves and clears the form.
func (a *adminApp) submit() tea.Cmd {
	f := a.form()
	if f == nil {
		return nil
	}
	vals := make([]string, len(f.fields))
	for i, fld := range f.fields {
		vals[i] = strings.TrimSpace(fld.input.Value())
		if fld.required && vals[i] == "" {
			return tea.Batch(a.focusField(i), a.d.setFlash(fld.label+" is required", true))
		}
	}
	cmd := f.save(a, vals)
	first := -1
	for i := range f.fields {
		if f.fields[i].keep {
			continue
		}
		f.fields[i].input.SetValue("")
		if first < 0 {
			first = i
		}
	}
	if a.tab == tabSocials {
		f.fields[3].input.SetValue("#000000")
	}
	return tea.Batch(cmd, a.focusField(max(first, 0)))
}

func (a *adminApp) reset() tea.Cmd {
	a.confirming = false
	return a.d.mutate(resetConfirmed, func(ctx context.Context, w content.Writer) error {
		return w.Reset(ctx)
	})
}

// cycleCategory fills the category field with the next existing one.
func (a *adminApp) cycleCategory() {
	cats := a.d.content.TechStack
	if len(cats) == 0 {
		return
	}
	in := &a.forms[tabTech].fields[0].input
	next := 0
	for i, c := range cats {
		if c.Category == in.Value() {
			next = (i + 1) % len(cats)
		}
	}
	in.SetValue(cats[next].Category)
	in.CursorEnd()
}

func (a *adminApp) View(width, height int) string {
	side := make([]string, 0, len(adminTabNames)+2)
	side = append(side, styleMuted().Render(" Admin"))
	for i, name := range adminTabNames {
		ln := fitWidth(" "+name, adminSideW)
		if adminTab(i) == a.tab {
			ln = styleSelected().Render(ln)
		}
		side = append(side, ln)
	}
	side = normalizeLines(side, adminSideW, height)

	mainW := max(1, width-adminSideW-2)
	var body string
	switch {
	case a.confirming:
		body = renderConfirm(mainW, "Reset System Data", resetPrompt, resetLabel, cancelLabel, a.confirm)
	case a.tab == tabDashboard:
		a.buildDashboard()
		body = strings.Join(a.dash.lines, "\n")
	default:
		body = a.formView(mainW)
	}
	main := normalizeLines(strings.Split(body, "\n"), mainW, height)

	sep := lipgloss.NewStyle().Foreground(colorBorder).Render("│")
	out := make([]string, height)
	for i := range out {
		out[i] = side[i] + sep + " " + main[i]
	}
	return strings.Join(out, "\n")
}

// Dashboard items: one card per form tab, then reset.
const dashReset = int(tabSocials)

func (a *adminApp) buildDashboard() {
	a.dash = rows{}
	a.dash.add(lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render("Welcome, Admin"), -1)
	a.dash.add(styleMuted().Render("Manage all your portfolio content from one place."), -1)
	a.dash.blank()
	cards := []struct{ name, desc string }{
		{"Projects", "Finder Content"},
		{"Gallery", "Photo Albums"},
		{"Blogs", "Safari Posts"},
		{"Skills", "Tech Stack"},
		{"Socials", "Contact Links"},
	}
	for i, c := range cards {
		a.dash.add(" "+glyphPointer()+" "+lipgloss.NewStyle().Bold(true).Render(c.name)+styleMuted().Render("  "+c.desc), i)
	}
	a.dash.blank()
	a.dash.add(lipgloss.NewStyle().Foreground(colorClose).Render(" ↺ Reset System Data"), dashReset)
	a.dash.blank()
	a.dash.add(styleMuted().Render("enter: edit   R: reset"), -1)
}

func (a *adminApp) formView(width int) string {
	f := a.form()
	lines := []string{styleHeading().Render(f.title), ""}
	for i, fld := range f.fields {
		label := fld.label
		if fld.required {
			label += " *"
		}
		lines = append(lines, styleMuted().Render(label))
		view := fld.input.View()
		if i != a.field && fld.input.Value() == "" {
			view = styleMuted().Render(fld.input.Placeholder)
		}
		lines = append(lines, renderInputLine(width, view, i == a.field), "")
	}
	btn := lipgloss.NewStyle().Padding(0, 1).Bold(true).
		Foreground(colorSelectedFg).Background(colorSelectedBg).Render(f.submit)
	lines = append(lines, btn, "")
	if a.tab == tabTech && len(a.d.content.TechStack) > 0 {
		var cats []string
		for _, c := range a.d.content.TechStack {
			cats = append(cats, c.Category)
		}
		lines = append(lines, styleMuted().Render("Existing: "+strings.Join(cats, ", ")))
	}
	lines = append(lines, styleMuted().Render("tab/↑↓: field   enter: next   ctrl+s: save   esc: back"))
	return strings.Join(lines, "\n")
}

// Form layout: title, blank, then label/input/blank per field.
func fieldAtRow(y, n int) (field int, submit bool) {
	if y < 2 {
		return -1, false
	}
	if y == 2+3*n {
		return -1, true
	}
	i := (y - 2) / 3
	if i >= n {
		return -1, false
	}
	return i, false
}

func (a *adminApp) Click(p wm.Point, width, height int) (tea.Cmd, bool) {
	if p.X < adminSideW {
		if i := p.Y - 1; i >= 0 && i < len(adminTabNames) {
			a.setTab(adminTab(i))
		}
		return nil, false
	}
	x := p.X - adminSideW - 2
	switch {
	case a.confirming:
		lines := strings.Split(renderConfirm(max(1, width-adminSideW-2), "", resetPrompt, resetLabel, cancelLabel, a.confirm), "\n")
		if p.Y != len(lines)-1 {
			return nil, false
		}
		if btn, ok := confirmButtonAt(x, resetLabel, cancelLabel); ok {
			if btn == confirmFocusConfirm {
				return a.reset(), false
			}
			a.confirming = false
		}
		return nil, false
	case a.tab == tabDashboard:
		a.buildDashboard()
		if item, ok := a.dash.itemAt(p.Y, 0); ok {
			return a.dashActivate(item), false
		}
		return nil, false
	}
	field, submit := fieldAtRow(p.Y, len(a.form().fields))
	switch {
	case submit:
		return a.submit(), false
	case field >= 0:
		return a.focusField(field), false
	}
	return nil, false
}

func (a *adminApp) dashActivate(item int) tea.Cmd {
	if item == dashReset {
		a.confirming = true
		a.confirm = confirmFocusCancel
		return nil
	}
	a.setTab(adminTab(item + 1))
	return a.focusField(0)
}

func (a *adminApp) Update(msg tea.Msg) tea.Cmd {
	km, isKey := msg.(tea.KeyMsg)
	if a.field >= 0 {
		f := a.form()
		if isKey {
			switch km.String() {
			case "ctrl+s":
				return a.submit()
			case "enter":
				if a.field == len(f.fields)-1 {
					return a.submit()
				}
				return a.focusField(a.field + 1)
			case "down":
				return a.focusField(a.field + 1)
			case "up":
				return a.focusField(a.field - 1)
			case "ctrl+n":
				if a.tab == tabTech {
					a.cycleCategory()
					return nil
				}
			}
		}
		var cmd tea.Cmd
		f.fields[a.field].input, cmd = f.fields[a.field].input.Update(msg)
		return cmd
	}
	if !isKey {
		return nil
	}

	if a.confirming {
		switch km.String() {
		case "left", "right", "h", "l":
			a.Tab()
		case "enter":
			if a.confirm == confirmFocusConfirm {
				return a.reset()
			}
			a.confirming = false
		case "y":
			return a.reset()
		case "n":
			a.confirming = false
		}
		return nil
	}

	switch km.String() {
	case "up", "k":
		if a.tab > 0 {
			a.setTab(a.tab - 1)
		}
	case "down", "j":
		if int(a.tab) < len(adminTabNames)-1 {
			a.setTab(a.tab + 1)
		}
	case "enter", "right", "l":
		if a.tab != tabDashboard {
			return a.focusField(0)
		}
	case "R":
		return a.dashActivate(dashReset)
	}
	return nil
}

func (a *adminApp) Scroll(int) {}

func (a *adminApp) Typing() bool { return a.field >= 0 }

func (a *adminApp) Tab() bool {
	switch {
	case a.confirming:
		if a.confirm == confirmFocusConfirm {
			a.confirm = confirmFocusCancel
		} else {
			a.confirm = confirmFocusConfirm
		}
		return true
	case a.field >= 0:
		a.focusField(a.field + 1)
		return true
	}
	return false
}

func (a *adminApp) Esc() bool {
	switch {
	case a.confirming:
		a.confirming = false
	case a.field >= 0:
		a.blur()
	default:
		return false
	}
	return true
}
