package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// OrderType distinguishes alterations from made-to-measure work
type OrderType string

const (
	OrderTypeAlteration OrderType = "alteration"
	OrderTypeCustom     OrderType = "custom"
)

func (t OrderType) IsValid() bool {
	return t == OrderTypeAlteration || t == OrderTypeCustom
}

func (t OrderType) String() string {
	return string(t)
}

func (t *OrderType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	if str == "" {
		*t = OrderTypeAlteration
		return nil
	}
	v := OrderType(str)
	if !v.IsValid() {
		return fmt.Errorf("invalid order type %q", str)
	}
	*t = v
	return nil
}

func (t OrderType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *OrderType) Scan(value interface{}) error {
	str, err := scanString(value)
	if err != nil {
		return err
	}
	if str == "" {
		*t = OrderTypeAlteration
		return nil
	}
	*t = OrderType(str)
	return nil
}
