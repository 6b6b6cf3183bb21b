package response

import "github.com/railscamp/registration-api/internal/domain"

type RegistrationOpenResponse struct {
	TentsAvailable bool `json:"tents_available"`
}

type ChargeResponse struct {
	ChargeToken string `json:"charge_token"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type EntrantListResponse struct {
	Entrants []domain.Entrant `json:"entrants"`
	Count    int              `json:"count"`
}
