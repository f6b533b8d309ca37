package dto

type SessionRequest struct {
	CurrentUserID string `json:"currentUserId"`
}
