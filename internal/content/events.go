package content

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// Watcher reports content version bumps published by a server.
type Watcher interface {
	WatchVersions(ctx context.Context) (<-chan int64, error)
}

var _ Watcher = (*HTTPSource)(nil)

// WatchVersions subscribes to /api/events. The channel yields every
// contentVersion the server publishes and closes when the stream ends or
// ctx is done.
func (h *HTTPSource) WatchVersions(ctx context.Context) (<-chan int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.BaseURL+"/api/events", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")

	// The stream outlives any per-request timeout on h.Client.
	client := &http.Client{Transport: http.DefaultTransport}
	if h.Client != nil {
		c := *h.Client
		c.Timeout = 0
		client = &c
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &APIError{Status: resp.StatusCode, Path: "/api/events"}
	}

	out := make(chan int64)
	go func() {
		defer close(out)
		defer resp.Body.Close()
		sc := bufio.NewScanner(resp.Body)
		sc.Buffer(make([]byte, 0, 64<<10), 1<<20)
		for sc.Scan() {
			v, ok := parseVersionLine(sc.Text())
			if !ok {
				continue
			}
			select {
			case out <- v:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// parseVersionLine picks contentVersion out of a datastar signals line
// ("data: signals {...}"). Keep-alives and other events are skipped.
func parseVersionLine(line string) (int64, bool) {
	data, ok := strings.CutPrefix(line, "data:")
	if !ok {
		return 0, false
	}
	i := strings.IndexByte(data, '{')
	if i < 0 {
		return 0, false
	}
	var sig struct {
		ContentVersion *int64 `json:"contentVersion"`
	}
	if err := json.Unmarshal([]byte(data[i:]), &sig); err != nil || sig.ContentVersion == nil {
		return 0, false
	}
	return *sig.ContentVersion, true
}
