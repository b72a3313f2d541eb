package model

import "github.com/google/uuid"

// User rows are created and authenticated by the external auth service;
// this service only reads them.
type User struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	DisplayName *string   `json:"display_name"`
	AvatarURL   *string   `json:"avatar_url"`
}

type Profile struct {
	Author        User     `json:"author"`
	Followers     []string `json:"followers"`
	Following     []string `json:"following"`
	ViewerFollows bool     `json:"viewer_follows"`
}
