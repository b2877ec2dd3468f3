package content

import (
	"deskfolio/internal/model"
	"deskfolio/internal/wm"
)

type OpenKind int

const (
	OpenNone OpenKind = iota
	OpenWindow
	OpenFolder
	OpenLink
)

// Open says what activating a Finder entry does.
type Open struct {
	Kind     OpenKind
	Key      wm.Key
	Payload  wm.Payload
	FolderID int
	Href     string
}

// OpenItem resolves a Finder entry: pdfs open the resume, folders navigate,
// linked url/fig files open their link, and other files open the window
// named by file type and kind ("txt"+"file" opens txtfile).
func OpenItem(n model.Node) Open {
	if n.Kind == "" {
		return Open{}
	}
	if n.IsFolder() {
		return Open{Kind: OpenFolder, FolderID: n.ID}
	}
	if n.FileType == "" {
		return Open{}
	}
	if n.FileType == model.FilePDF {
		return Open{Kind: OpenWindow, Key: wm.KeyResume}
	}
	if (n.FileType == model.FileURL || n.FileType == model.FileFig) && n.Href != "" {
		return Open{Kind: OpenLink, Href: n.Href}
	}
	key, ok := wm.ParseKey(string(n.FileType) + string(n.Kind))
	if !ok {
		return Open{}
	}
	return Open{Kind: OpenWindow, Key: key, Payload: payloadFor(key, n)}
}

func payloadFor(key wm.Key, n model.Node) wm.Payload {
	switch key {
	case wm.KeyTxtFile:
		return wm.TxtFilePayload{Name: n.Name, Subtitle: n.Subtitle, Image: n.Image, Description: n.Description}
	case wm.KeyImgFile:
		return wm.ImgFilePayload{ID: n.ID, Name: n.Name, ImageURL: n.ImageURL}
	}
	return nil
}
