package models

import "time"

// Robots is the search-indexing directive attached to an article.
type Robots string

// Supported robots directives.
const (
	RobotsIndexFollow     Robots = "index,follow"
	RobotsIndexNoFollow   Robots = "index,nofollow"
	RobotsNoIndexFollow   Robots = "noindex,follow"
	RobotsNoIndexNoFollow Robots = "noindex,nofollow"
)

// Valid reports whether r is one of the supported directives.
func (r Robots) Valid() bool {
	switch r {
	case RobotsIndexFollow, RobotsIndexNoFollow, RobotsNoIndexFollow, RobotsNoIndexNoFollow:
		return true
	}
	return false
}

// Article represents a blog article. A nil PublishedAt means the article
// is a draft; a non-nil value means it is published.
type Article struct {
	ID          string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title       string     `json:"title" gorm:"type:varchar(255)"`
	Slug        string     `json:"slug" gorm:"uniqueIndex;type:varchar(255)"`
	Image       string     `json:"image" gorm:"type:varchar(500)"`
	Description string     `json:"description" gorm:"type:varchar(500)"`
	Content     string     `json:"content" gorm:"type:text"`
	CategoryID  string     `json:"category_id" gorm:"index;type:varchar(36)"`
	Category    Category   `json:"category" gorm:"foreignKey:CategoryID"`
	Tags        []string   `json:"tags" gorm:"serializer:json;type:text"`
	AuthorID    string     `json:"author_id" gorm:"index;type:varchar(36)"`
	Author      User       `json:"author" gorm:"foreignKey:AuthorID"`
	PublishedAt *time.Time `json:"publishedAt"`
	Robots      Robots     `json:"robots" gorm:"type:varchar(32)"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// IsPublished reports whether the article has left the draft state.
func (a *Article) IsPublished() bool {
	return a.PublishedAt != nil
}

// CategoryRef is the reduced category projection used in list views.
type CategoryRef struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// AuthorRef is the reduced author projection used in list views.
type AuthorRef struct {
	Name string `json:"name"`
}

// ArticleForList is the reduced article projection for index/list views.
// It deliberately carries no content body to keep payloads small.
type ArticleForList struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Slug        string      `json:"slug"`
	Category    CategoryRef `json:"category"`
	Author      AuthorRef   `json:"author"`
	PublishedAt *time.Time  `json:"publishedAt"`
}

// ArticleMetadata is the SEO projection of an article.
type ArticleMetadata struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Robots      Robots `json:"robots"`
	Author      string `json:"author"`
}
