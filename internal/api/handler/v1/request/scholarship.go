package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type ScholarshipRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	DietaryReqs string `json:"dietary_reqs"`
	WantsBus    *bool  `json:"wants_bus"`

	ScholarshipPitch  string `json:"scholarship_pitch"`
	ScholarshipGithub string `json:"scholarship_github"`
}

func (req *ScholarshipRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required),
		validation.Field(&req.Email, validation.Required),
		validation.Field(&req.WantsBus, validation.NotNil),
		validation.Field(&req.ScholarshipPitch, validation.Required),
		validation.Field(&req.ScholarshipGithub, validation.Required),
	)
}
