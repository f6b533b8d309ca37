package dto

import (
	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/analytics"
	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/models"
)

// ImagePayload is a base64 screenshot; Data may also be a data URL.
type ImagePayload struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type SubmitReportRequest struct {
	Text  string        `json:"text"`
	Image *ImagePayload `json:"image,omitempty"`
}

type AddCommentRequest struct {
	Content string `json:"content"`
}

type ReportListResponse struct {
	Reports []models.Report       `json:"reports"`
	Total   int                   `json:"total"`
	Filters analytics.FilterState `json:"filters"`
}

type VerificationResponse struct {
	Report models.Report `json:"report"`
	Notice string        `json:"notice"`
}
