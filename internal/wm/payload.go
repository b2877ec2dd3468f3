package wm

import (
	"encoding/json"
	"fmt"
)

// Payload is per-open context handed to a window's content (e.g. which file
// to display). The interface is sealed: each implementation belongs to
// exactly one Key.
type Payload interface {
	payloadKey() Key
}

// TxtFilePayload is displayed by the txtfile window.
type TxtFilePayload struct {
	Name        string   `json:"name"`
	Subtitle    string   `json:"subtitle,omitempty"`
	Image       string   `json:"image,omitempty"`
	Description []string `json:"description"`
}

func (TxtFilePayload) payloadKey() Key { return KeyTxtFile }

// ImgFilePayload is displayed by the imgfile window.
type ImgFilePayload struct {
	ID       int    `json:"id,omitempty"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
}

func (ImgFilePayload) payloadKey() Key { return KeyImgFile }

// FinderPayload asks the finder to show a specific location.
type FinderPayload struct {
	LocationID int    `json:"locationId"`
	Name       string `json:"name,omitempty"`
}

func (FinderPayload) payloadKey() Key { return KeyFinder }

type payloadEnvelope struct {
	Kind Key             `json:"kind"`
	Body json.RawMessage `json:"body"`
}

func marshalPayload(p Payload) (*payloadEnvelope, error) {
	if p == nil {
		return nil, nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return &payloadEnvelope{Kind: p.payloadKey(), Body: b}, nil
}

func unmarshalPayload(env *payloadEnvelope) (Payload, error) {
	if env == nil {
		return nil, nil
	}
	switch env.Kind {
	case KeyTxtFile:
		var p TxtFilePayload
		if err := json.Unmarshal(env.Body, &p); err != nil {
			return nil, err
		}
		return p, nil
	case KeyImgFile:
		var p ImgFilePayload
		if err := json.Unmarshal(env.Body, &p); err != nil {
			return nil, err
		}
		return p, nil
	case KeyFinder:
		var p FinderPayload
		if err := json.Unmarshal(env.Body, &p); err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown payload kind: %q", env.Kind)
	}
}
