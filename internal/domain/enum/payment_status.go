package enum

import (
	"database/sql/driver"
)

// PaymentStatus tracks how much of an order has been collected
type PaymentStatus string

const (
	PaymentStatusUnpaid      PaymentStatus = "unpaid"
	PaymentStatusDepositPaid PaymentStatus = "deposit_paid"
	PaymentStatusPaid        PaymentStatus = "paid"
)

// IsComplete reports whether nothing remains to be collected
func (s PaymentStatus) IsComplete() bool {
	return s == PaymentStatusPaid
}

func (s PaymentStatus) String() string {
	return string(s)
}

func (s PaymentStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *PaymentStatus) Scan(value interface{}) error {
	str, err := scanString(value)
	if err != nil {
		return err
	}
	if str == "" {
		*s = PaymentStatusUnpaid
		return nil
	}
	*s = PaymentStatus(str)
	return nil
}
