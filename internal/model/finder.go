package model

import "strings"

type NodeKind string

const (
	NodeFolder NodeKind = "folder"
	NodeFile   NodeKind = "file"
)

type FileType string

const (
	FileTxt FileType = "txt"
	FileURL FileType = "url"
	FileImg FileType = "img"
	FilePDF FileType = "pdf"
	FileFig FileType = "fig"
)

// Node is an entry in the Finder tree. Folders carry Children; files carry
// the fields their FileType needs.
type Node struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Icon        string   `json:"icon,omitempty"`
	Kind        NodeKind `json:"kind"`
	FileType    FileType `json:"fileType,omitempty"`
	Href        string   `json:"href,omitempty"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Subtitle    string   `json:"subtitle,omitempty"`
	Image       string   `json:"image,omitempty"`
	Description []string `json:"description,omitempty"`
	Children    []Node   `json:"children,omitempty"`
}

func (n Node) IsFolder() bool { return n.Kind == NodeFolder }

// ChildNamed does a case-sensitive lookup among direct children first, then
// falls back to a case-insensitive match.
func (n Node) ChildNamed(name string) (Node, bool) {
	for _, c := range n.Children {
		if c.Name == name {
			return c, true
		}
	}
	for _, c := range n.Children {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return Node{}, false
}
