package model

import "github.com/google/uuid"

// Follow is a directed edge: UserID follows AuthorID. The table carries
// no uniqueness constraint; the follow path deduplicates at write time.
type Follow struct {
	ID       int64     `json:"id"`
	UserID   uuid.UUID `json:"user_id"`
	AuthorID uuid.UUID `json:"author_id"`
}
