package domain

// Payable is the capability shared by every record that can hold a single
// charge token. The charger depends on this interface only, never on the
// concrete record types.
type Payable interface {
	PayableID() uint
	PayableEmail() string
	PayableIPAddress() string
	PayableCardToken() string

	// Charged reports whether a charge token is already present.
	Charged() bool
	// SetChargeToken mirrors a successful charge onto the in-memory record.
	// The persisted write goes through the repository's conditional update.
	SetChargeToken(token string)
}
