package domain

import "time"

// Entrant is a person registering for the camp. Records are created by the
// public registration form, later marked chosen by the selection workflow and
// charged once their spot is confirmed. Entrants are never deleted.
type Entrant struct {
	ID        uint      `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Name        string `json:"name"`
	Email       string `json:"email"`
	DietaryReqs string `json:"dietary_reqs,omitempty"`
	WantsBus    bool   `json:"wants_bus"`
	Tent        bool   `json:"tent"`

	CCName     string `json:"cc_name"`
	CCAddress  string `json:"cc_address"`
	CCCity     string `json:"cc_city"`
	CCPostCode string `json:"cc_post_code"`
	CCState    string `json:"cc_state"`
	CCCountry  string `json:"cc_country"`
	CardToken  string `json:"-"`

	IPAddress  string `json:"-"`
	TicketType string `json:"ticket_type,omitempty"`
	Notes      string `json:"notes,omitempty"`

	WantsBedding *bool   `json:"wants_bedding,omitempty"`
	TshirtSize   *string `json:"tshirt_size,omitempty"`

	ChosenAt         *time.Time `json:"chosen_at,omitempty"`
	ChosenNotifiedAt *time.Time `json:"chosen_notified_at,omitempty"`
	ChargeToken      string     `json:"-"`
}

func (e *Entrant) PayableID() uint          { return e.ID }
func (e *Entrant) PayableEmail() string     { return e.Email }
func (e *Entrant) PayableIPAddress() string { return e.IPAddress }
func (e *Entrant) PayableCardToken() string { return e.CardToken }

func (e *Entrant) Charged() bool {
	return e.ChargeToken != ""
}

func (e *Entrant) SetChargeToken(token string) {
	e.ChargeToken = token
}

func (e *Entrant) Chosen() bool {
	return e.ChosenAt != nil
}

// NeedsExtras reports whether the entrant still has to pick their bedding
// and t-shirt options.
func (e *Entrant) NeedsExtras() bool {
	return e.WantsBedding == nil || e.TshirtSize == nil
}
