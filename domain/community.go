package domain

import "time"

const DefaultPostCategory = "자유게시판"

var PostCategories = []string{"경제뉴스", "투자정보", "자유게시판", "질문답변"}

func ValidPostCategory(c string) bool {
	for _, v := range PostCategories {
		if v == c {
			return true
		}
	}
	return false
}

type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"column:title;size:200;not null" json:"title"`
	Content   string    `gorm:"column:content;type:text;not null" json:"content"`
	AuthorID  uint      `gorm:"column:author_id;index;not null" json:"author_id"`
	Category  string    `gorm:"column:category;size:20;index;default:'자유게시판'" json:"category"`
	ViewCount int       `gorm:"column:view_count;default:0" json:"view_count"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Post) TableName() string {
	return "posts"
}

type PostLike struct {
	PostID    uint `gorm:"primaryKey;autoIncrement:false"`
	UserID    uint `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time
}

func (PostLike) TableName() string {
	return "post_likes"
}

type Comment struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	PostID         uint      `gorm:"column:post_id;index;not null" json:"post_id"`
	AuthorID       uint      `gorm:"column:author_id;not null" json:"author_id"`
	AuthorUsername string    `gorm:"->;-:migration;column:author_username" json:"author_username"`
	Content        string    `gorm:"column:content;type:text;not null" json:"content"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (Comment) TableName() string {
	return "comments"
}

// PostSummary is a post row enriched with its author and counters.
type PostSummary struct {
	Post
	AuthorUsername string `json:"author_username"`
	LikeCount      int    `json:"like_count"`
	CommentCount   int    `json:"comment_count"`
}

type PostDetail struct {
	PostSummary
	IsLiked  bool      `json:"is_liked"`
	Comments []Comment `json:"comments"`
}

type PostFilter struct {
	Category string
	Search   string
}

type LikeResult struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"like_count"`
}
