package content

import (
	"fmt"

	"deskfolio/internal/model"
)

// Folder ids. Project folders start at ProjectFolderBase so they never
// collide with the fixed locations.
const (
	WorkLocationID   = 1
	AboutLocationID  = 2
	ResumeLocationID = 3
	TrashLocationID  = 4

	ProjectFolderBase = 100
)

// Ids of the files inside a project folder. They are unique per folder only.
const (
	projectInfoFileID    = 1
	projectWebsiteFileID = 2
	projectPreviewFileID = 3
	projectGithubFileID  = 5
)

// Locations are the Finder favourites.
type Locations struct {
	Work   model.Node
	About  model.Node
	Resume model.Node
	Trash  model.Node
}

// Favorites returns the sidebar entries in display order.
func (l Locations) Favorites() []model.Node {
	return []model.Node{l.Work, l.About, l.Resume, l.Trash}
}

// Folder finds a folder by id anywhere under the favourites.
func (l Locations) Folder(id int) (model.Node, bool) {
	for _, root := range l.Favorites() {
		if n, ok := findFolder(root, id); ok {
			return n, true
		}
	}
	return model.Node{}, false
}

// Parent returns the folder that directly contains folder id.
func (l Locations) Parent(id int) (model.Node, bool) {
	for _, root := range l.Favorites() {
		if n, ok := findParent(root, id); ok {
			return n, true
		}
	}
	return model.Node{}, false
}

func findFolder(n model.Node, id int) (model.Node, bool) {
	if !n.IsFolder() {
		return model.Node{}, false
	}
	if n.ID == id {
		return n, true
	}
	for _, c := range n.Children {
		if found, ok := findFolder(c, id); ok {
			return found, true
		}
	}
	return model.Node{}, false
}

func findParent(n model.Node, id int) (model.Node, bool) {
	for _, c := range n.Children {
		if c.IsFolder() && c.ID == id {
			return n, true
		}
		if c.IsFolder() {
			if p, ok := findParent(c, id); ok {
				return p, true
			}
		}
	}
	return model.Node{}, false
}

// BuildLocations assembles the favourites with projects under Work.
func BuildLocations(projects []model.Project) Locations {
	return Locations{
		Work:   BuildWorkLocation(projects),
		About:  aboutLocation(),
		Resume: resumeLocation(),
		Trash:  trashLocation(),
	}
}

// BuildWorkLocation maps each project to a folder. A file is only added
// when the project carries the field it shows.
func BuildWorkLocation(projects []model.Project) model.Node {
	work := model.Node{
		ID:       WorkLocationID,
		Name:     "Work",
		Icon:     "work",
		Kind:     model.NodeFolder,
		Children: []model.Node{},
	}
	for i, p := range projects {
		icon := p.Icon
		if icon == "" {
			icon = "folder"
		}
		folder := model.Node{
			ID:       ProjectFolderBase + i,
			Name:     p.Name,
			Icon:     icon,
			Kind:     model.NodeFolder,
			Children: []model.Node{},
		}
		if len(p.Description) > 0 {
			folder.Children = append(folder.Children, model.Node{
				ID:          projectInfoFileID,
				Name:        fmt.Sprintf("%s Info.txt", p.Name),
				Icon:        "txt",
				Kind:        model.NodeFile,
				FileType:    model.FileTxt,
				Description: p.Description,
			})
		}
		if p.Link != "" {
			folder.Children = append(folder.Children, model.Node{
				ID:       projectWebsiteFileID,
				Name:     "Website",
				Icon:     "safari",
				Kind:     model.NodeFile,
				FileType: model.FileURL,
				Href:     p.Link,
			})
		}
		if p.GithubLink != "" {
			folder.Children = append(folder.Children, model.Node{
				ID:       projectGithubFileID,
				Name:     "Github",
				Icon:     "github",
				Kind:     model.NodeFile,
				FileType: model.FileURL,
				Href:     p.GithubLink,
			})
		}
		if p.ImageURL != "" {
			folder.Children = append(folder.Children, model.Node{
				ID:       projectPreviewFileID,
				Name:     "Preview.png",
				Icon:     "image",
				Kind:     model.NodeFile,
				FileType: model.FileImg,
				ImageURL: p.ImageURL,
			})
		}
		work.Children = append(work.Children, folder)
	}
	return work
}

func aboutLocation() model.Node {
	return model.Node{
		ID:   AboutLocationID,
		Name: "About me",
		Icon: "info",
		Kind: model.NodeFolder,
		Children: []model.Node{
			{ID: 1, Name: "me.png", Icon: "image", Kind: model.NodeFile, FileType: model.FileImg, ImageURL: "https://images.example.com/adrian.jpg"},
			{ID: 2, Name: "casual-me.png", Icon: "image", Kind: model.NodeFile, FileType: model.FileImg, ImageURL: "https://images.example.com/adrian-2.jpg"},
			{ID: 3, Name: "conference-me.png", Icon: "image", Kind: model.NodeFile, FileType: model.FileImg, ImageURL: "https://images.example.com/adrian-3.jpeg"},
			{
				ID:       4,
				Name:     "about-me.txt",
				Icon:     "txt",
				Kind:     model.NodeFile,
				FileType: model.FileTxt,
				Subtitle: "Meet the Developer Behind the Code",
				Image:    "https://images.example.com/adrian.jpg",
				Description: []string{
					"Hey! I build things for the web and the terminal.",
					"I like clean interfaces, small tools and code that is easy to delete.",
					"Outside of work you will find me hiking, reading or tinkering with keyboards.",
				},
			},
		},
	}
}

func resumeLocation() model.Node {
	return model.Node{
		ID:   ResumeLocationID,
		Name: "Resume",
		Icon: "file",
		Kind: model.NodeFolder,
		Children: []model.Node{
			{ID: 1, Name: "Resume.pdf", Icon: "pdf", Kind: model.NodeFile, FileType: model.FilePDF, Href: "/files/resume.pdf"},
		},
	}
}

func trashLocation() model.Node {
	return model.Node{
		ID:   TrashLocationID,
		Name: "Trash",
		Icon: "trash",
		Kind: model.NodeFolder,
		Children: []model.Node{
			{ID: 1, Name: "trash1.png", Icon: "image", Kind: model.NodeFile, FileType: model.FileImg, ImageURL: "https://images.example.com/trash-1.png"},
			{ID: 2, Name: "trash2.png", Icon: "image", Kind: model.NodeFile, FileType: model.FileImg, ImageURL: "https://images.example.com/trash-2.png"},
			{ID: 3, Name: "Design.fig", Icon: "plain", Kind: model.NodeFile, FileType: model.FileFig, Href: "https://www.figma.com"},
		},
	}
}
