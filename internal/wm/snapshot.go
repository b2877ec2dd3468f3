package wm

import "encoding/json"

// Snapshot is a serializable copy of the registry used for local durability.
type Snapshot struct {
	NextZ   int
	Windows []Window
}

type snapshotWindowJSON struct {
	Window
	Data *payloadEnvelope `json:"data,omitempty"`
}

type snapshotJSON struct {
	NextZ   int                  `json:"nextZ"`
	Windows []snapshotWindowJSON `json:"windows"`
}

func (s Snapshot) MarshalJSON() ([]byte, error) {
	out := snapshotJSON{NextZ: s.NextZ, Windows: make([]snapshotWindowJSON, 0, len(s.Windows))}
	for _, w := range s.Windows {
		env, err := marshalPayload(w.Data)
		if err != nil {
			return nil, err
		}
		out.Windows = append(out.Windows, snapshotWindowJSON{Window: w, Data: env})
	}
	return json.Marshal(out)
}

// UnmarshalJSON drops payloads it cannot decode instead of failing; the
// window entry itself is kept.
func (s *Snapshot) UnmarshalJSON(b []byte) error {
	var in snapshotJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	s.NextZ = in.NextZ
	s.Windows = make([]Window, 0, len(in.Windows))
	for _, sw := range in.Windows {
		w := sw.Window
		if p, err := unmarshalPayload(sw.Data); err == nil {
			w.Data = p
		}
		s.Windows = append(s.Windows, w)
	}
	return nil
}

// Snapshot copies the registry.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{NextZ: s.nextZ, Windows: s.Windows()}
}

// Load applies a previously taken snapshot. Unknown keys are skipped, Home
// stays as configured by the catalog, non-positive sizes keep the catalog
// size, and the counter is moved past every restored z-index so the
// newest-focus-is-topmost rule keeps holding.
func (s *Store) Load(snap Snapshot) {
	maxZ := s.nextZ - 1
	var touched []Key
	for _, in := range snap.Windows {
		w := s.windows[in.Key]
		if w == nil {
			continue
		}
		w.IsOpen = in.IsOpen
		w.IsMinimized = in.IsOpen && in.IsMinimized
		w.IsMaximized = in.IsOpen && in.IsMaximized
		if in.Width > 0 {
			w.Width = in.Width
		}
		if in.Height > 0 {
			w.Height = in.Height
		}
		if in.IsOpen {
			w.ZIndex = in.ZIndex
			if w.Key.Accepts(in.Data) {
				w.Data = in.Data
			}
		} else {
			w.ZIndex = s.baseline
			w.Data = nil
		}
		if w.ZIndex > maxZ {
			maxZ = w.ZIndex
		}
		touched = append(touched, in.Key)
	}
	if snap.NextZ > maxZ+1 {
		maxZ = snap.NextZ - 1
	}
	s.nextZ = maxZ + 1
	for _, k := range touched {
		s.notify(k, OpLoad)
	}
}
