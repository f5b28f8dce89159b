package enum

import (
	"database/sql/driver"
)

// OrderStatus is the production-pipeline stage of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusWorking   OrderStatus = "working"
	OrderStatusDone      OrderStatus = "done"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusArchived  OrderStatus = "archived"
)

func (s OrderStatus) String() string {
	return string(s)
}

func (s OrderStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *OrderStatus) Scan(value interface{}) error {
	str, err := scanString(value)
	if err != nil {
		return err
	}
	if str == "" {
		*s = OrderStatusPending
		return nil
	}
	*s = OrderStatus(str)
	return nil
}
