package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"

	"deskfolio/internal/model"
)

// ErrInvalid wraps validation failures on content input.
var ErrInvalid = errors.New("invalid input")

const (
	blogDateLayout    = "Jan 2, 2006"
	galleryDateLayout = "2006-01-02"
	noDescription     = "No description provided."
)

func setProjectID(p *model.Project, id int) { p.ID = id }
func setTechStackID(t *model.TechStack, id int) { t.ID = id }
func setBlogPostID(b *model.BlogPost, id int) { b.ID = id }
func setPhotoID(g *model.GalleryPhoto, id int) { g.ID = id }
func setSocialID(sp *model.SocialProfile, id int) { sp.ID = id }

func (s Store) Projects(ctx context.Context) ([]model.Project, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return readJSONRows(ctx, db, setProjectID, `SELECT id, json FROM projects ORDER BY id ASC`)
}

func (s Store) TechStack(ctx context.Context) ([]model.TechStack, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return readJSONRows(ctx, db, setTechStackID, `SELECT id, json FROM tech_stack ORDER BY id ASC`)
}

// BlogPosts lists posts newest first.
func (s Store) BlogPosts(ctx context.Context) ([]model.BlogPost, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return readJSONRows(ctx, db, setBlogPostID, `SELECT id, json FROM blog_posts ORDER BY id DESC`)
}

func (s Store) Gallery(ctx context.Context) ([]model.GalleryPhoto, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return readJSONRows(ctx, db, setPhotoID, `SELECT id, json FROM gallery_photos ORDER BY id ASC`)
}

func (s Store) Socials(ctx context.Context) ([]model.SocialProfile, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return readJSONRows(ctx, db, setSocialID, `SELECT id, json FROM social_profiles ORDER BY id ASC`)
}

// LoadContent reads every collection from one connection.
func (s Store) LoadContent(ctx context.Context) (model.Content, error) {
	var out model.Content
	db, err := s.openSQLite(ctx)
	if err != nil {
		return out, err
	}
	defer db.Close()

	if out.TechStack, err = readJSONRows(ctx, db, setTechStackID, `SELECT id, json FROM tech_stack ORDER BY id ASC`); err != nil {
		return out, err
	}
	if out.BlogPosts, err = readJSONRows(ctx, db, setBlogPostID, `SELECT id, json FROM blog_posts ORDER BY id DESC`); err != nil {
		return out, err
	}
	if out.Gallery, err = readJSONRows(ctx, db, setPhotoID, `SELECT id, json FROM gallery_photos ORDER BY id ASC`); err != nil {
		return out, err
	}
	if out.Socials, err = readJSONRows(ctx, db, setSocialID, `SELECT id, json FROM social_profiles ORDER BY id ASC`); err != nil {
		return out, err
	}
	if out.Projects, err = readJSONRows(ctx, db, setProjectID, `SELECT id, json FROM projects ORDER BY id ASC`); err != nil {
		return out, err
	}
	return out, nil
}

func (s Store) AddProject(ctx context.Context, p model.Project) (model.Project, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return model.Project{}, fmt.Errorf("%w: project name is required", ErrInvalid)
	}
	p.Description = compact(p.Description)
	if len(p.Description) == 0 {
		p.Description = []string{noDescription}
	}
	p.TechStack = compact(p.TechStack)
	if p.TechStack == nil {
		p.TechStack = []string{}
	}
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		id, err := insertProject(ctx, tx, p)
		p.ID = id
		return err
	})
	return p, err
}

func insertProject(ctx context.Context, tx *sql.Tx, p model.Project) (int, error) {
	p.ID = 0
	res, err := tx.ExecContext(ctx, `INSERT INTO projects(name, json, updated_at_unixms) VALUES(?, ?, ?)`,
		p.Name, mustJSON(p), nowUnixMs())
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return int(id), err
}

func (s Store) AddBlogPost(ctx context.Context, b model.BlogPost) (model.BlogPost, error) {
	b.Title = strings.TrimSpace(b.Title)
	b.Link = strings.TrimSpace(b.Link)
	if b.Title == "" || b.Link == "" {
		return model.BlogPost{}, fmt.Errorf("%w: blog post needs a title and a link", ErrInvalid)
	}
	if strings.TrimSpace(b.Date) == "" {
		b.Date = nowFunc().Format(blogDateLayout)
	}
	b.Tags = compact(b.Tags)
	if b.Tags == nil {
		b.Tags = []string{}
	}
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		id, err := insertBlogPost(ctx, tx, b)
		b.ID = id
		return err
	})
	return b, err
}

func insertBlogPost(ctx context.Context, tx *sql.Tx, b model.BlogPost) (int, error) {
	b.ID = 0
	res, err := tx.ExecContext(ctx, `INSERT INTO blog_posts(title, json, updated_at_unixms) VALUES(?, ?, ?)`,
		b.Title, mustJSON(b), nowUnixMs())
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return int(id), err
}

// AddPhoto stores a new photo dated today, not favorited.
func (s Store) AddPhoto(ctx context.Context, title, url string, tags []string) (model.GalleryPhoto, error) {
	g := model.GalleryPhoto{
		Title: strings.TrimSpace(title),
		Img:   strings.TrimSpace(url),
		Date:  nowFunc().Format(galleryDateLayout),
		Tags:  compact(tags),
	}
	if g.Title == "" || g.Img == "" {
		return model.GalleryPhoto{}, fmt.Errorf("%w: photo needs a title and a url", ErrInvalid)
	}
	if g.Tags == nil {
		g.Tags = []string{}
	}
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		id, err := insertPhoto(ctx, tx, g)
		g.ID = id
		return err
	})
	return g, err
}

func insertPhoto(ctx context.Context, tx *sql.Tx, g model.GalleryPhoto) (int, error) {
	g.ID = 0
	res, err := tx.ExecContext(ctx, `INSERT INTO gallery_photos(title, is_favorite, json, updated_at_unixms) VALUES(?, ?, ?, ?)`,
		g.Title, boolToInt(g.IsFavorite), mustJSON(g), nowUnixMs())
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return int(id), err
}

func (s Store) ToggleFavorite(ctx context.Context, id int) (model.GalleryPhoto, error) {
	return s.updatePhoto(ctx, id, func(g *model.GalleryPhoto) {
		g.IsFavorite = !g.IsFavorite
	})
}

// AddTag appends tag unless the photo already carries it.
func (s Store) AddTag(ctx context.Context, id int, tag string) (model.GalleryPhoto, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return model.GalleryPhoto{}, fmt.Errorf("%w: tag is empty", ErrInvalid)
	}
	return s.updatePhoto(ctx, id, func(g *model.GalleryPhoto) {
		if !slices.Contains(g.Tags, tag) {
			g.Tags = append(g.Tags, tag)
		}
	})
}

func (s Store) RemoveTag(ctx context.Context, id int, tag string) (model.GalleryPhoto, error) {
	tag = strings.TrimSpace(tag)
	return s.updatePhoto(ctx, id, func(g *model.GalleryPhoto) {
		g.Tags = slices.DeleteFunc(g.Tags, func(t string) bool { return t == tag })
	})
}

func (s Store) updatePhoto(ctx context.Context, id int, fn func(*model.GalleryPhoto)) (model.GalleryPhoto, error) {
	var out model.GalleryPhoto
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		xs, err := readJSONRows(ctx, tx, setPhotoID, `SELECT id, json FROM gallery_photos WHERE id = ?`, id)
		if err != nil {
			return err
		}
		if len(xs) == 0 {
			return fmt.Errorf("photo %d: %w", id, ErrNotFound)
		}
		g := xs[0]
		fn(&g)
		if g.Tags == nil {
			g.Tags = []string{}
		}
		if _, err := tx.ExecContext(ctx, `UPDATE gallery_photos SET is_favorite = ?, json = ?, updated_at_unixms = ? WHERE id = ?`,
			boolToInt(g.IsFavorite), mustJSON(g), nowUnixMs(), id); err != nil {
			return err
		}
		out = g
		return nil
	})
	return out, err
}

func (s Store) AddSocial(ctx context.Context, sp model.SocialProfile) (model.SocialProfile, error) {
	sp.Text = strings.TrimSpace(sp.Text)
	sp.Link = strings.TrimSpace(sp.Link)
	if sp.Text == "" || sp.Link == "" {
		return model.SocialProfile{}, fmt.Errorf("%w: social needs text and a link", ErrInvalid)
	}
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		id, err := insertSocial(ctx, tx, sp)
		sp.ID = id
		return err
	})
	return sp, err
}

func insertSocial(ctx context.Context, tx *sql.Tx, sp model.SocialProfile) (int, error) {
	sp.ID = 0
	res, err := tx.ExecContext(ctx, `INSERT INTO social_profiles(text, json, updated_at_unixms) VALUES(?, ?, ?)`,
		sp.Text, mustJSON(sp), nowUnixMs())
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return int(id), err
}

// AddTechItem adds item to category, creating the category when missing.
// Items already present are left alone.
func (s Store) AddTechItem(ctx context.Context, category, item string) (model.TechStack, error) {
	category = strings.TrimSpace(category)
	item = strings.TrimSpace(item)
	if category == "" || item == "" {
		return model.TechStack{}, fmt.Errorf("%w: tech stack needs a category and an item", ErrInvalid)
	}
	var out model.TechStack
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		t, found, err := techStackByCategory(ctx, tx, category)
		if err != nil {
			return err
		}
		if !found {
			t = model.TechStack{Category: category}
		}
		if !slices.Contains(t.Items, item) {
			t.Items = append(t.Items, item)
		}
		out, err = upsertTechStack(ctx, tx, t)
		return err
	})
	return out, err
}

// UpdateTechStack replaces the items of category, creating it when missing.
func (s Store) UpdateTechStack(ctx context.Context, category string, items []string) (model.TechStack, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return model.TechStack{}, fmt.Errorf("%w: tech stack category is required", ErrInvalid)
	}
	var out model.TechStack
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		out, err = upsertTechStack(ctx, tx, model.TechStack{Category: category, Items: compact(items)})
		return err
	})
	return out, err
}

func techStackByCategory(ctx context.Context, tx *sql.Tx, category string) (model.TechStack, bool, error) {
	xs, err := readJSONRows(ctx, tx, setTechStackID, `SELECT id, json FROM tech_stack WHERE category = ?`, category)
	if err != nil || len(xs) == 0 {
		return model.TechStack{}, false, err
	}
	return xs[0], true, nil
}

func upsertTechStack(ctx context.Context, tx *sql.Tx, t model.TechStack) (model.TechStack, error) {
	if t.Items == nil {
		t.Items = []string{}
	}
	blob := t
	blob.ID = 0
	if _, err := tx.ExecContext(ctx, `INSERT INTO tech_stack(category, json, updated_at_unixms) VALUES(?, ?, ?)
		ON CONFLICT(category) DO UPDATE SET json = excluded.json, updated_at_unixms = excluded.updated_at_unixms`,
		t.Category, mustJSON(blob), nowUnixMs()); err != nil {
		return model.TechStack{}, err
	}
	if err := tx.QueryRowContext(ctx, `SELECT id FROM tech_stack WHERE category = ?`, t.Category).Scan(&t.ID); err != nil {
		return model.TechStack{}, err
	}
	return t, nil
}

// Reset drops all content and reseeds the built-in defaults. Ids restart at 1.
func (s Store) Reset(ctx context.Context) error {
	seed, err := DefaultSeed()
	if err != nil {
		return err
	}
	return s.withTx(ctx, func(tx *sql.Tx) error {
		for _, t := range contentTables {
			if _, err := tx.ExecContext(ctx, `DELETE FROM `+t); err != nil {
				return err
			}
		}
		// sqlite_sequence only exists once an AUTOINCREMENT table has seen an insert.
		_, _ = tx.ExecContext(ctx, `DELETE FROM sqlite_sequence`)
		_, err := seedTx(ctx, tx, seed)
		return err
	})
}

var contentTables = []string{"projects", "tech_stack", "blog_posts", "gallery_photos", "social_profiles"}

// compact trims entries and drops empty ones. A nil result means nothing survived.
func compact(xs []string) []string {
	var out []string
	for _, x := range xs {
		if x = strings.TrimSpace(x); x != "" {
			out = append(out, x)
		}
	}
	return out
}
