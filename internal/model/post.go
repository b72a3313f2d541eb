package model

import (
	"time"

	"github.com/QuillApp/web-service/internal/pagination"
	"github.com/google/uuid"
)

type Post struct {
	ID       int64     `json:"id"`
	Text     string    `json:"text"`
	PubDate  time.Time `json:"pub_date"`
	AuthorID uuid.UUID `json:"author_id"`
	GroupID  *int64    `json:"group_id"`
	ImageURL *string   `json:"image_url"`
}

// PostDetail is a post joined with its author and, when set, its group.
type PostDetail struct {
	Post   Post   `json:"post"`
	Author User   `json:"author"`
	Group  *Group `json:"group"`
}

type PostPage struct {
	Posts []*PostDetail   `json:"posts"`
	Page  pagination.Page `json:"page"`
}
