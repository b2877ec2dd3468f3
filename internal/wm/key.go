package wm

import "strings"

// Key identifies one window in the desktop catalog. The set of keys is closed;
// strings from the outside world go through ParseKey.
type Key string

const (
	KeyTerminal Key = "terminal"
	KeySafari   Key = "safari"
	KeyContact  Key = "contact"
	KeyFinder   Key = "finder"
	KeyResume   Key = "resume"
	KeyTxtFile  Key = "txtfile"
	KeyImgFile  Key = "imgfile"
	KeyPhotos   Key = "photos"
	KeyAdmin    Key = "admin"
)

var allKeys = []Key{
	KeyFinder,
	KeySafari,
	KeyPhotos,
	KeyContact,
	KeyTerminal,
	KeyResume,
	KeyTxtFile,
	KeyImgFile,
	KeyAdmin,
}

// Keys returns every known window key in dock order.
func Keys() []Key {
	out := make([]Key, len(allKeys))
	copy(out, allKeys)
	return out
}

// ParseKey resolves a user-supplied window name (case-insensitive).
func ParseKey(s string) (Key, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, k := range allKeys {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

func (k Key) String() string { return string(k) }

// Title is the human label shown in title bars and the dock.
func (k Key) Title() string {
	switch k {
	case KeyTerminal:
		return "Terminal"
	case KeySafari:
		return "Safari"
	case KeyContact:
		return "Contact"
	case KeyFinder:
		return "Finder"
	case KeyResume:
		return "Resume.pdf"
	case KeyTxtFile:
		return "Text File"
	case KeyImgFile:
		return "Image Viewer"
	case KeyPhotos:
		return "Photos"
	case KeyAdmin:
		return "System Admin"
	default:
		return string(k)
	}
}

// Accepts reports whether p is a valid payload for windows with this key.
// A nil payload is always accepted.
func (k Key) Accepts(p Payload) bool {
	if p == nil {
		return true
	}
	return p.payloadKey() == k
}
