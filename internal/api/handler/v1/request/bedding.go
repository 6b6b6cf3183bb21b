package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type BeddingPaymentRequest struct {
	Email string `json:"email"`

	CCName     string `json:"cc_name"`
	CCAddress  string `json:"cc_address"`
	CCCity     string `json:"cc_city"`
	CCPostCode string `json:"cc_post_code"`
	CCState    string `json:"cc_state"`
	CCCountry  string `json:"cc_country"`
	CardToken  string `json:"card_token"`

	IPAddress string `json:"ip_address"`
}

func (req *BeddingPaymentRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Email, validation.Required),
		validation.Field(&req.CCName, validation.Required),
		validation.Field(&req.CCAddress, validation.Required),
		validation.Field(&req.CCCity, validation.Required),
		validation.Field(&req.CCPostCode, validation.Required),
		validation.Field(&req.CCState, validation.Required),
		validation.Field(&req.CCCountry, validation.Required),
		validation.Field(&req.CardToken, validation.Required),
	)
}
