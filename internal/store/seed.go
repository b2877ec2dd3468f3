package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"deskfolio/internal/model"
)

//go:embed seed.yaml
var defaultSeedYAML []byte

// Seed is the on-disk shape of a seed file.
type Seed struct {
	Projects  []model.Project       `yaml:"projects"`
	TechStack []model.TechStack     `yaml:"techStack"`
	BlogPosts []model.BlogPost      `yaml:"blogPosts"`
	Gallery   []model.GalleryPhoto  `yaml:"gallery"`
	Socials   []model.SocialProfile `yaml:"socials"`
}

// SeedResult counts the rows each collection gained.
type SeedResult struct {
	Projects  int `json:"projects" yaml:"projects"`
	TechStack int `json:"techStack" yaml:"techStack"`
	BlogPosts int `json:"blogPosts" yaml:"blogPosts"`
	Gallery   int `json:"gallery" yaml:"gallery"`
	Socials   int `json:"socials" yaml:"socials"`
}

func ParseSeed(b []byte) (Seed, error) {
	var s Seed
	if err := yaml.Unmarshal(b, &s); err != nil {
		return Seed{}, fmt.Errorf("parse seed: %w", err)
	}
	return s, nil
}

func DefaultSeed() (Seed, error) {
	return ParseSeed(defaultSeedYAML)
}

func LoadSeedFile(path string) (Seed, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, err
	}
	return ParseSeed(b)
}

// DefaultContent is the built-in content with ids assigned in seed order.
// Blog posts come back newest first, like the API.
func DefaultContent() model.Content {
	seed, err := DefaultSeed()
	if err != nil {
		return model.Content{}
	}
	var out model.Content
	for i, p := range seed.Projects {
		p.ID = i + 1
		out.Projects = append(out.Projects, p)
	}
	for i, t := range seed.TechStack {
		t.ID = i + 1
		out.TechStack = append(out.TechStack, t)
	}
	for i := len(seed.BlogPosts) - 1; i >= 0; i-- {
		b := seed.BlogPosts[i]
		b.ID = i + 1
		out.BlogPosts = append(out.BlogPosts, b)
	}
	for i, g := range seed.Gallery {
		g.ID = i + 1
		out.Gallery = append(out.Gallery, g)
	}
	for i, sp := range seed.Socials {
		sp.ID = i + 1
		out.Socials = append(out.Socials, sp)
	}
	return out
}

// Seed inserts rows missing from the database. Projects match by name,
// posts and photos by title, socials by text; tech stack categories are
// upserted. Running it twice adds nothing the second time.
func (s Store) Seed(ctx context.Context, seed Seed) (SeedResult, error) {
	var res SeedResult
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		res, err = seedTx(ctx, tx, seed)
		return err
	})
	return res, err
}

func seedTx(ctx context.Context, tx *sql.Tx, seed Seed) (SeedResult, error) {
	var res SeedResult

	for _, p := range seed.Projects {
		if strings.TrimSpace(p.Name) == "" {
			continue
		}
		exists, err := rowExists(ctx, tx, `SELECT 1 FROM projects WHERE name = ? LIMIT 1`, p.Name)
		if err != nil {
			return res, err
		}
		if exists {
			continue
		}
		if p.TechStack == nil {
			p.TechStack = []string{}
		}
		if _, err := insertProject(ctx, tx, p); err != nil {
			return res, err
		}
		res.Projects++
	}

	for _, t := range seed.TechStack {
		if strings.TrimSpace(t.Category) == "" {
			continue
		}
		exists, err := rowExists(ctx, tx, `SELECT 1 FROM tech_stack WHERE category = ? LIMIT 1`, t.Category)
		if err != nil {
			return res, err
		}
		if _, err := upsertTechStack(ctx, tx, t); err != nil {
			return res, err
		}
		if !exists {
			res.TechStack++
		}
	}

	for _, b := range seed.BlogPosts {
		if strings.TrimSpace(b.Title) == "" {
			continue
		}
		exists, err := rowExists(ctx, tx, `SELECT 1 FROM blog_posts WHERE title = ? LIMIT 1`, b.Title)
		if err != nil {
			return res, err
		}
		if exists {
			continue
		}
		if b.Tags == nil {
			b.Tags = []string{}
		}
		if _, err := insertBlogPost(ctx, tx, b); err != nil {
			return res, err
		}
		res.BlogPosts++
	}

	for _, g := range seed.Gallery {
		if strings.TrimSpace(g.Title) == "" {
			continue
		}
		exists, err := rowExists(ctx, tx, `SELECT 1 FROM gallery_photos WHERE title = ? LIMIT 1`, g.Title)
		if err != nil {
			return res, err
		}
		if exists {
			continue
		}
		if g.Tags == nil {
			g.Tags = []string{}
		}
		if _, err := insertPhoto(ctx, tx, g); err != nil {
			return res, err
		}
		res.Gallery++
	}

	for _, sp := range seed.Socials {
		if strings.TrimSpace(sp.Text) == "" {
			continue
		}
		exists, err := rowExists(ctx, tx, `SELECT 1 FROM social_profiles WHERE text = ? LIMIT 1`, sp.Text)
		if err != nil {
			return res, err
		}
		if exists {
			continue
		}
		if _, err := insertSocial(ctx, tx, sp); err != nil {
			return res, err
		}
		res.Socials++
	}

	return res, nil
}

func rowExists(ctx context.Context, tx *sql.Tx, query string, args ...any) (bool, error) {
	var one int
	err := tx.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}
