package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// DispatchStatus represents the status of a dispatch order
type DispatchStatus int

const (
	DispatchStatusPending    DispatchStatus = 0
	DispatchStatusDispatched DispatchStatus = 1
	DispatchStatusDelivered  DispatchStatus = 2
	DispatchStatusCancelled  DispatchStatus = 3
)

func (s DispatchStatus) String() string {
	names := [...]string{"Pending", "Dispatched", "Delivered", "Cancelled"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Pending"
	}
	return names[s]
}

func (s DispatchStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *DispatchStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = DispatchStatus(i)
		return nil
	}
	switch str {
	case "Pending":
		*s = DispatchStatusPending
	case "Dispatched":
		*s = DispatchStatusDispatched
	case "Delivered":
		*s = DispatchStatusDelivered
	case "Cancelled":
		*s = DispatchStatusCancelled
	}
	return nil
}

func (s DispatchStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *DispatchStatus) Scan(value interface{}) error {
	if value == nil {
		*s = DispatchStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = DispatchStatus(v)
	case int:
		*s = DispatchStatus(v)
	}
	return nil
}
