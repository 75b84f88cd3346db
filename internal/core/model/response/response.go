package response

import "goalsapp/internal/core/domain"

type ErrorResponse struct {
	Message string              `json:"message"`
	Errors  []domain.FieldError `json:"errors,omitempty"`
}

type StatusResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}
