package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

// RegisterEntrantRequest carries the public entrant attributes. Validation is
// presence-only: email shape and card details are not inspected here (the
// card token comes from client-side tokenization and is opaque to us).
type RegisterEntrantRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	DietaryReqs string `json:"dietary_reqs"`
	WantsBus    *bool  `json:"wants_bus"`
	Tent        *bool  `json:"tent"`

	CCName     string `json:"cc_name"`
	CCAddress  string `json:"cc_address"`
	CCCity     string `json:"cc_city"`
	CCPostCode string `json:"cc_post_code"`
	CCState    string `json:"cc_state"`
	CCCountry  string `json:"cc_country"`
	CardToken  string `json:"card_token"`

	IPAddress  string `json:"ip_address"`
	TicketType string `json:"ticket_type"`
	Notes      string `json:"notes"`

	WantsBedding *bool   `json:"wants_bedding"`
	TshirtSize   *string `json:"tshirt_size"`
}

// Validate marks every public attribute required except the explicit optional
// subset (dietary_reqs, ticket_type, notes, wants_bedding, tshirt_size, tent).
func (req *RegisterEntrantRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required),
		validation.Field(&req.Email, validation.Required),
		validation.Field(&req.WantsBus, validation.NotNil),
		validation.Field(&req.CCName, validation.Required),
		validation.Field(&req.CCAddress, validation.Required),
		validation.Field(&req.CCCity, validation.Required),
		validation.Field(&req.CCPostCode, validation.Required),
		validation.Field(&req.CCState, validation.Required),
		validation.Field(&req.CCCountry, validation.Required),
		validation.Field(&req.CardToken, validation.Required),
	)
}

type UpdateExtrasRequest struct {
	Email            string `json:"email"`
	BeddingSelection string `json:"bedding_selection"`
	TshirtSize       string `json:"tshirt_size"`
}

func (req *UpdateExtrasRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Email, validation.Required),
		validation.Field(&req.BeddingSelection, validation.Required),
		validation.Field(&req.TshirtSize, validation.Required),
	)
}
