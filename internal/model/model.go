package model

// Project is a portfolio project. Finder shows each one as a folder.
type Project struct {
	ID          int      `json:"id" yaml:"-"`
	Name        string   `json:"name" yaml:"name"`
	Icon        string   `json:"icon,omitempty" yaml:"icon,omitempty"`
	Description []string `json:"description" yaml:"description"`
	Link        string   `json:"link,omitempty" yaml:"link,omitempty"`
	GithubLink  string   `json:"githubLink,omitempty" yaml:"githubLink,omitempty"`
	ImageURL    string   `json:"imageUrl,omitempty" yaml:"imageUrl,omitempty"`
	TechStack   []string `json:"techStack" yaml:"techStack,omitempty"`
}

// TechStack is one skill category.
type TechStack struct {
	ID       int      `json:"id" yaml:"-"`
	Category string   `json:"category" yaml:"category"`
	Items    []string `json:"items" yaml:"items"`
}

type BlogPost struct {
	ID    int      `json:"id" yaml:"-"`
	Title string   `json:"title" yaml:"title"`
	Date  string   `json:"date" yaml:"date"`
	Image string   `json:"image,omitempty" yaml:"image,omitempty"`
	Link  string   `json:"link" yaml:"link"`
	Tags  []string `json:"tags" yaml:"tags,omitempty"`
}

type GalleryPhoto struct {
	ID         int      `json:"id" yaml:"-"`
	Title      string   `json:"title" yaml:"title"`
	Img        string   `json:"img" yaml:"img"`
	Date       string   `json:"date" yaml:"date"`
	Tags       []string `json:"tags" yaml:"tags,omitempty"`
	IsFavorite bool     `json:"isFavorite" yaml:"isFavorite,omitempty"`
}

type SocialProfile struct {
	ID   int    `json:"id" yaml:"-"`
	Text string `json:"text" yaml:"text"`
	Icon string `json:"icon" yaml:"icon"`
	Bg   string `json:"bg" yaml:"bg"`
	Link string `json:"link" yaml:"link"`
}

// Content is everything the desktop renders.
type Content struct {
	TechStack []TechStack     `json:"techStack"`
	BlogPosts []BlogPost      `json:"blogPosts"`
	Gallery   []GalleryPhoto  `json:"gallery"`
	Socials   []SocialProfile `json:"socials"`
	Projects  []Project       `json:"projects"`
}

// Album is a Photos sidebar entry. Tag "all" and "favorites" are special.
type Album struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Tag   string `json:"tag"`
}

const (
	AlbumTagAll       = "all"
	AlbumTagFavorites = "favorites"
)

func DefaultAlbums() []Album {
	return []Album{
		{ID: 1, Title: "Library", Tag: AlbumTagAll},
		{ID: 2, Title: "Favorites", Tag: AlbumTagFavorites},
		{ID: 3, Title: "Memories", Tag: "memories"},
		{ID: 4, Title: "Places", Tag: "places"},
		{ID: 5, Title: "People", Tag: "people"},
	}
}
