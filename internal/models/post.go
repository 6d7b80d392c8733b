package models

import (
	"time"
)

// Post is a short status update. Name and Avatar are snapshots of the
// author taken at creation time.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"_id"`
	UserID    uint      `gorm:"not null;index" json:"user"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	Likes     []Like    `gorm:"foreignKey:PostID" json:"likes"`
	Comments  []Comment `gorm:"foreignKey:PostID" json:"comments"`
	CreatedAt time.Time `gorm:"index" json:"date"`
}

// Normalize replaces nil collections so they serialize as empty arrays.
func (p *Post) Normalize() {
	if p.Likes == nil {
		p.Likes = []Like{}
	}
	if p.Comments == nil {
		p.Comments = []Comment{}
	}
}

// Like records that a user liked a post. A user likes a post at most once.
type Like struct {
	ID     uint `gorm:"primaryKey" json:"_id"`
	PostID uint `gorm:"not null;uniqueIndex:idx_likes_post_user" json:"-"`
	UserID uint `gorm:"not null;uniqueIndex:idx_likes_post_user" json:"user"`
}

// Comment is a reply attached to a post.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"_id"`
	PostID    uint      `gorm:"not null;index" json:"-"`
	UserID    uint      `gorm:"not null" json:"user"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"date"`
}
