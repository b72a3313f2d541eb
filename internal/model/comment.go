package model

import (
	"time"

	"github.com/google/uuid"
)

type Comment struct {
	ID       int64     `json:"id"`
	PostID   int64     `json:"post_id"`
	AuthorID uuid.UUID `json:"author_id"`
	Text     string    `json:"text"`
	Created  time.Time `json:"created"`
}

type PostComment struct {
	Comment Comment `json:"comment"`
	Author  User    `json:"author"`
}
