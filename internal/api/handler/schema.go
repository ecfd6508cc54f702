package handler

import (
	"time"

	"github.com/nocturnal/nocturnal-api/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type createUserRequest struct {
	Username    string `json:"username"    validate:"required,max=64"`
	Displayname string `json:"displayname" validate:"required,max=128"`
}

type createMessageRequest struct {
	Author  string `json:"author"  validate:"required,mongodb"`
	Content string `json:"content"`
}

// --- Response types ---
// Owned by the transport layer so the JSON contract does not follow domain changes.

type userResponse struct {
	ID          string     `json:"_id"`
	Username    string     `json:"username"`
	Displayname string     `json:"displayname"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

type createdResponse struct {
	ID string `json:"_id"`
}

type deleteResponse struct {
	DeletedCount int64 `json:"deleted_count"`
}

func toUserResponse(u *domain.User) userResponse {
	resp := userResponse{
		Username:    u.Username,
		Displayname: u.Displayname,
		CreatedAt:   u.CreatedAt,
	}
	if u.ID != nil {
		resp.ID = u.ID.Hex()
	}
	return resp
}
