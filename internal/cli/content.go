package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"deskfolio/internal/content"
	"deskfolio/internal/model"
)

func newContentCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "content",
		Short: "List and add portfolio content",
		Long: strings.TrimSpace(`
Read and write the five content collections. Uses the local store, or the
API named by --api.
`),
		Example: strings.TrimSpace(`
deskfolio content projects list
deskfolio --api http://127.0.0.1:5000 content gallery list
deskfolio content add-tech --category Backend --item Go
`),
	}

	cmd.AddCommand(newContentKindCmd(app, "projects", "Portfolio projects", func(ctx context.Context, b content.Backend) (any, error) {
		return b.Projects(ctx)
	}))
	cmd.AddCommand(newContentKindCmd(app, "tech-stack", "Skill categories", func(ctx context.Context, b content.Backend) (any, error) {
		return b.TechStack(ctx)
	}))
	cmd.AddCommand(newContentKindCmd(app, "blog-posts", "Blog posts, newest first", func(ctx context.Context, b content.Backend) (any, error) {
		return b.BlogPosts(ctx)
	}))
	cmd.AddCommand(newContentKindCmd(app, "gallery", "Gallery photos", func(ctx context.Context, b content.Backend) (any, error) {
		return b.Gallery(ctx)
	}))
	cmd.AddCommand(newContentKindCmd(app, "socials", "Social profiles", func(ctx context.Context, b content.Backend) (any, error) {
		return b.Socials(ctx)
	}))

	cmd.AddCommand(newAddProjectCmd(app))
	cmd.AddCommand(newAddBlogPostCmd(app))
	cmd.AddCommand(newAddPhotoCmd(app))
	cmd.AddCommand(newAddSocialCmd(app))
	cmd.AddCommand(newAddTechCmd(app))
	cmd.AddCommand(newFavoriteCmd(app))
	cmd.AddCommand(newTagCmd(app))
	cmd.AddCommand(newUntagCmd(app))
	return cmd
}

func newContentKindCmd(app *App, kind, short string, list func(context.Context, content.Backend) (any, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   kind,
		Short: short,
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List " + kind,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := appBackend(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			v, err := list(cmd.Context(), b)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": v})
		},
	})
	return cmd
}

func appBackend(app *App) (content.Backend, error) {
	dir := ""
	if strings.TrimSpace(app.APIURL) == "" {
		d, err := resolveDir(app)
		if err != nil {
			return nil, err
		}
		dir = d
	}
	return backendFor(app, dir)
}

// runWrite resolves the backend and prints whatever the write returns.
func runWrite(cmd *cobra.Command, app *App, write func(context.Context, content.Backend) (any, error)) error {
	b, err := appBackend(app)
	if err != nil {
		return writeErr(cmd, err)
	}
	v, err := write(cmd.Context(), b)
	if err != nil {
		return writeErr(cmd, err)
	}
	return writeOut(cmd, app, map[string]any{"data": v})
}

func newAddProjectCmd(app *App) *cobra.Command {
	var p model.Project

	cmd := &cobra.Command{
		Use:   "add-project",
		Short: "Add a project (shows up as a Finder folder)",
		Example: strings.TrimSpace(`
deskfolio content add-project --name "Deskfolio" --description "A desktop in the terminal." --link https://deskfolio.dev
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWrite(cmd, app, func(ctx context.Context, b content.Backend) (any, error) {
				return b.AddProject(ctx, p)
			})
		},
	}

	cmd.Flags().StringVar(&p.Name, "name", "", "Project name (required)")
	cmd.Flags().StringArrayVar(&p.Description, "description", nil, "Description paragraph (repeatable)")
	cmd.Flags().StringVar(&p.Link, "link", "", "Live site URL")
	cmd.Flags().StringVar(&p.GithubLink, "github", "", "Source URL")
	cmd.Flags().StringVar(&p.ImageURL, "image", "", "Preview image URL")
	cmd.Flags().StringVar(&p.Icon, "icon", "", "Folder icon name")
	cmd.Flags().StringSliceVar(&p.TechStack, "tech", nil, "Technologies (comma separated)")
	return cmd
}

func newAddBlogPostCmd(app *App) *cobra.Command {
	var bp model.BlogPost

	cmd := &cobra.Command{
		Use:   "add-post",
		Short: "Add a blog post",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWrite(cmd, app, func(ctx context.Context, b content.Backend) (any, error) {
				return b.AddBlogPost(ctx, bp)
			})
		},
	}

	cmd.Flags().StringVar(&bp.Title, "title", "", "Post title (required)")
	cmd.Flags().StringVar(&bp.Link, "link", "", "Post URL (required)")
	cmd.Flags().StringVar(&bp.Image, "image", "", "Cover image URL")
	cmd.Flags().StringVar(&bp.Date, "date", "", "Display date (default: today, e.g. Oct 1, 2025)")
	cmd.Flags().StringSliceVar(&bp.Tags, "tags", nil, "Tags (comma separated)")
	return cmd
}

func newAddPhotoCmd(app *App) *cobra.Command {
	var title, url string
	var tags []string

	cmd := &cobra.Command{
		Use:   "add-photo",
		Short: "Add a gallery photo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWrite(cmd, app, func(ctx context.Context, b content.Backend) (any, error) {
				return b.AddPhoto(ctx, title, url, tags)
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Photo title (required)")
	cmd.Flags().StringVar(&url, "url", "", "Image URL (required)")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "Album tags (comma separated)")
	return cmd
}

func newAddSocialCmd(app *App) *cobra.Command {
	var sp model.SocialProfile

	cmd := &cobra.Command{
		Use:   "add-social",
		Short: "Add a social profile to Contact",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWrite(cmd, app, func(ctx context.Context, b content.Backend) (any, error) {
				return b.AddSocial(ctx, sp)
			})
		},
	}

	cmd.Flags().StringVar(&sp.Text, "text", "", "Platform name (required)")
	cmd.Flags().StringVar(&sp.Link, "link", "", "Profile URL (required)")
	cmd.Flags().StringVar(&sp.Icon, "icon", "", "Icon name")
	cmd.Flags().StringVar(&sp.Bg, "bg", "#000000", "Badge colour")
	return cmd
}

func newAddTechCmd(app *App) *cobra.Command {
	var category, item string

	cmd := &cobra.Command{
		Use:   "add-tech",
		Short: "Add a skill to a tech stack category (created if missing)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWrite(cmd, app, func(ctx context.Context, b content.Backend) (any, error) {
				return b.AddTechItem(ctx, category, item)
			})
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Category (required)")
	cmd.Flags().StringVar(&item, "item", "", "Skill (required)")
	return cmd
}

func parsePhotoID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || id <= 0 {
		return 0, errUsage("invalid photo id: %q", s)
	}
	return id, nil
}

func newFavoriteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "favorite <photo-id>",
		Short: "Toggle a photo's favourite flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsePhotoID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return runWrite(cmd, app, func(ctx context.Context, b content.Backend) (any, error) {
				p, err := b.ToggleFavorite(ctx, id)
				return p, photoErr(id, err)
			})
		},
	}
}

func newTagCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tag <photo-id> <tag>",
		Short: "Add a photo to an album",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsePhotoID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return runWrite(cmd, app, func(ctx context.Context, b content.Backend) (any, error) {
				p, err := b.AddTag(ctx, id, args[1])
				return p, photoErr(id, err)
			})
		},
	}
}

func newUntagCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "untag <photo-id> <tag>",
		Short: "Remove a photo from an album",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsePhotoID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return runWrite(cmd, app, func(ctx context.Context, b content.Backend) (any, error) {
				p, err := b.RemoveTag(ctx, id, args[1])
				return p, photoErr(id, err)
			})
		},
	}
}
