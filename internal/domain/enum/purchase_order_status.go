package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PurchaseOrderStatus represents the status of a purchase order
type PurchaseOrderStatus int

const (
	PurchaseOrderStatusPending   PurchaseOrderStatus = 0
	PurchaseOrderStatusApproved  PurchaseOrderStatus = 1
	PurchaseOrderStatusCancelled PurchaseOrderStatus = 2
)

func (s PurchaseOrderStatus) String() string {
	names := [...]string{"Pending", "Approved", "Cancelled"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Pending"
	}
	return names[s]
}

func (s PurchaseOrderStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *PurchaseOrderStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = PurchaseOrderStatus(i)
		return nil
	}
	switch str {
	case "Pending":
		*s = PurchaseOrderStatusPending
	case "Approved":
		*s = PurchaseOrderStatusApproved
	case "Cancelled":
		*s = PurchaseOrderStatusCancelled
	}
	return nil
}

func (s PurchaseOrderStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *PurchaseOrderStatus) Scan(value interface{}) error {
	if value == nil {
		*s = PurchaseOrderStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = PurchaseOrderStatus(v)
	case int:
		*s = PurchaseOrderStatus(v)
	}
	return nil
}
