package domain

import "time"

// BeddingPayment is a standalone add-on purchase. It is correlated with an
// Entrant by email only; there is deliberately no foreign key between the two.
type BeddingPayment struct {
	ID        uint      `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Email string `json:"email"`

	CCName     string `json:"cc_name"`
	CCAddress  string `json:"cc_address"`
	CCCity     string `json:"cc_city"`
	CCPostCode string `json:"cc_post_code"`
	CCState    string `json:"cc_state"`
	CCCountry  string `json:"cc_country"`
	CardToken  string `json:"-"`

	IPAddress   string `json:"-"`
	ChargeToken string `json:"-"`
}

func (b *BeddingPayment) PayableID() uint          { return b.ID }
func (b *BeddingPayment) PayableEmail() string     { return b.Email }
func (b *BeddingPayment) PayableIPAddress() string { return b.IPAddress }
func (b *BeddingPayment) PayableCardToken() string { return b.CardToken }

func (b *BeddingPayment) Charged() bool {
	return b.ChargeToken != ""
}

func (b *BeddingPayment) SetChargeToken(token string) {
	b.ChargeToken = token
}
