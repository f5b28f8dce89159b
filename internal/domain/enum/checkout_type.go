package enum

// CheckoutType selects which amount a payment link collects
type CheckoutType string

const (
	CheckoutTypeDeposit CheckoutType = "deposit"
	CheckoutTypeBalance CheckoutType = "balance"
	CheckoutTypeFull    CheckoutType = "full"
)

func (t CheckoutType) IsValid() bool {
	switch t {
	case CheckoutTypeDeposit, CheckoutTypeBalance, CheckoutTypeFull:
		return true
	}
	return false
}
