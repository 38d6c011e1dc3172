package types

import (
	"github.com/go-playground/validator/v10"
)

// UpdateMatchStatusRequest represents the request body for changing a match's
// review status. The status enum is validated here, at the boundary, so the
// engine never sees a value outside the five known states.
type UpdateMatchStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new viewed saved applied dismissed"`
}

// StatsRequest holds the optional query parameters for the stats endpoint.
type StatsRequest struct {
	SkillGapLimit int `json:"skill_gap_limit,omitempty" validate:"omitempty,min=1,max=50"`
}

// Validate validates the UpdateMatchStatusRequest using the validator.
func (r *UpdateMatchStatusRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the StatsRequest using the validator.
func (r *StatsRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
