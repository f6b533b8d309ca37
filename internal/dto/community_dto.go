package dto

type CreatePostRequest struct {
	Content string `json:"content"`
}

type VoteRequest struct {
	Category string `json:"category"`
}
