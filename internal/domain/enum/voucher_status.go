package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// VoucherStatus represents the lifecycle of derived documents
// (goods receipt notes, purchase vouchers, purchase returns)
type VoucherStatus int

const (
	VoucherStatusDraft     VoucherStatus = 0
	VoucherStatusSubmitted VoucherStatus = 1
	VoucherStatusApproved  VoucherStatus = 2
	VoucherStatusCancelled VoucherStatus = 3
)

func (s VoucherStatus) String() string {
	names := [...]string{"Draft", "Submitted", "Approved", "Cancelled"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Draft"
	}
	return names[s]
}

func (s VoucherStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *VoucherStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = VoucherStatus(i)
		return nil
	}
	switch str {
	case "Draft":
		*s = VoucherStatusDraft
	case "Submitted":
		*s = VoucherStatusSubmitted
	case "Approved":
		*s = VoucherStatusApproved
	case "Cancelled":
		*s = VoucherStatusCancelled
	}
	return nil
}

func (s VoucherStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *VoucherStatus) Scan(value interface{}) error {
	if value == nil {
		*s = VoucherStatusDraft
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = VoucherStatus(v)
	case int:
		*s = VoucherStatus(v)
	}
	return nil
}
