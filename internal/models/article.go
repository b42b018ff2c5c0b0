package models

import (
	"time"
)

// Article is a row in the news corpus. Author is a plain string column, not a
// relation; Category and Tags resolve through foreign keys.
type Article struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"not null;index" json:"title"`
	Content      string    `gorm:"type:text" json:"content"`
	Author       string    `gorm:"index" json:"author"`
	PublishedAt  time.Time `gorm:"index" json:"published_at"`
	ViewCount    int       `gorm:"default:0" json:"view_count"`
	LikeCount    int       `gorm:"default:0" json:"like_count"`
	CommentCount int       `gorm:"default:0" json:"comment_count"`
	CategoryID   string    `gorm:"index" json:"category_id"`
	Tags         []Tag     `gorm:"many2many:article_tags" json:"tags,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// EngagementScore is a weighted interaction sum; comments weigh the most.
func (a *Article) EngagementScore() float64 {
	return float64(a.ViewCount)*0.1 + float64(a.LikeCount)*0.5 + float64(a.CommentCount)*1.0
}

type Category struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;uniqueIndex" json:"name"`
	Slug      string    `gorm:"uniqueIndex" json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Tag struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
