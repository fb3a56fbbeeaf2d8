package inventory

import "github.com/jfraser77/hrops-backend/internal/pkg/validator"

type AdjustInventoryRequest struct {
	Delta int `json:"delta"`
}

func (r *AdjustInventoryRequest) Validate() error {
	if r.Delta == 0 {
		return validator.ValidationErrors{
			{Field: "delta", Message: "delta must not be zero"},
		}
	}
	return nil
}
