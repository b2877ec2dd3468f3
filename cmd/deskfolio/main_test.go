package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRewriteContentListArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"deskfolio"},
			want: []string{"deskfolio"},
		},
		{
			name: "bare kind",
			in:   []string{"deskfolio", "projects"},
			want: []string{"deskfolio", "content", "projects", "list"},
		},
		{
			name: "kind after value flag",
			in:   []string{"deskfolio", "--dir", "./tmp", "gallery"},
			want: []string{"deskfolio", "--dir", "./tmp", "content", "gallery", "list"},
		},
		{
			name: "kind after bool and inline flags",
			in:   []string{"deskfolio", "--pretty", "--format=yaml", "socials"},
			want: []string{"deskfolio", "--pretty", "--format=yaml", "content", "socials", "list"},
		},
		{
			name: "flag value that looks like a kind",
			in:   []string{"deskfolio", "--dir", "projects"},
			want: []string{"deskfolio", "--dir", "projects"},
		},
		{
			name: "real subcommand",
			in:   []string{"deskfolio", "serve", "--addr", ":0"},
			want: []string{"deskfolio", "serve", "--addr", ":0"},
		},
		{
			name: "kind followed by more args",
			in:   []string{"deskfolio", "projects", "list"},
			want: []string{"deskfolio", "projects", "list"},
		},
		{
			name: "after double dash",
			in:   []string{"deskfolio", "--", "projects"},
			want: []string{"deskfolio", "--", "projects"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rewriteContentListArgs(tt.in)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("rewrite (-want +got):\n%s", diff)
			}
		})
	}
}
