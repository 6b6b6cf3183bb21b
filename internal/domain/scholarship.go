package domain

import "time"

// ScholarshipEntrant applies for a sponsored spot. Same selection lifecycle
// as Entrant but no billing fields and no charge step.
type ScholarshipEntrant struct {
	ID        uint      `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Name        string `json:"name"`
	Email       string `json:"email"`
	DietaryReqs string `json:"dietary_reqs,omitempty"`
	WantsBus    bool   `json:"wants_bus"`

	ScholarshipPitch  string `json:"scholarship_pitch"`
	ScholarshipGithub string `json:"scholarship_github"`

	IPAddress string `json:"-"`

	ChosenAt         *time.Time `json:"chosen_at,omitempty"`
	ChosenNotifiedAt *time.Time `json:"chosen_notified_at,omitempty"`
}
