package main

import (
	"os"
	"strings"

	"deskfolio/internal/cli"
)

var contentKinds = map[string]bool{
	"projects":   true,
	"tech-stack": true,
	"blog-posts": true,
	"gallery":    true,
	"socials":    true,
}

func rewriteContentListArgs(argv []string) []string {
	// Convenience: `deskfolio projects` works like `deskfolio content projects list`.
	//
	// Persistent flags may come first (`deskfolio --dir x projects`), so look
	// for the first positional token rather than argv[1].
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--dir":         true,
		"--api":         true,
		"--admin-token": true,
		"--format":      true,
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			return argv
		}
		if strings.HasPrefix(a, "-") {
			if !strings.Contains(a, "=") && valueFlags[a] {
				i++
			}
			continue
		}
		if !contentKinds[a] || i != len(argv)-1 {
			return argv
		}
		out := make([]string, 0, len(argv)+2)
		out = append(out, argv[:i]...)
		out = append(out, "content", a, "list")
		return out
	}
	return argv
}

func main() {
	os.Args = rewriteContentListArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
