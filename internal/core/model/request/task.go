package request

import "goalsapp/internal/core/domain"

type TaskRequest struct {
	Title       Optional[string]      `json:"title"`
	Description Optional[string]      `json:"description"`
	Completed   Optional[domain.Flag] `json:"completed"`
}

func (r TaskRequest) HasAnyField() bool {
	return r.Title.Set || r.Description.Set || r.Completed.Set
}
