package format

import (
	"bytes"
	"strings"
	"testing"
)

type sample struct {
	ID   int      `json:"id" yaml:"-"`
	Name string   `json:"name"`
	Tags []string `json:"tags"`
}

func TestWrite(t *testing.T) {
	t.Parallel()

	v := sample{ID: 7, Name: "Deskfolio", Tags: []string{"go"}}
	tests := []struct {
		format string
		pretty bool
		want   string
	}{
		{"json", false, `{"id":7,"name":"Deskfolio","tags":["go"]}` + "\n"},
		{"", true, "{\n  \"id\": 7,\n  \"name\": \"Deskfolio\",\n  \"tags\": [\n    \"go\"\n  ]\n}\n"},
		{"yaml", false, "id: 7\nname: Deskfolio\ntags:\n  - go\n"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		if err := Write(&buf, v, tt.format, tt.pretty); err != nil {
			t.Fatalf("Write(%q): %v", tt.format, err)
		}
		if buf.String() != tt.want {
			t.Fatalf("Write(%q):\ngot  %q\nwant %q", tt.format, buf.String(), tt.want)
		}
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	t.Parallel()

	err := Write(&bytes.Buffer{}, 1, "edn", false)
	if err == nil || !strings.Contains(err.Error(), "unknown format") {
		t.Fatalf("expected unknown format error; got %v", err)
	}
}
