package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// ConversionStatus marks whether a source document has been fully
// consumed by a derived document (e.g. a purchase order by its GRN)
type ConversionStatus int

const (
	ConversionStatusPending   ConversionStatus = 0
	ConversionStatusCompleted ConversionStatus = 1
)

func (s ConversionStatus) String() string {
	names := [...]string{"Pending", "Completed"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Pending"
	}
	return names[s]
}

func (s ConversionStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *ConversionStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = ConversionStatus(i)
		return nil
	}
	switch str {
	case "Pending":
		*s = ConversionStatusPending
	case "Completed":
		*s = ConversionStatusCompleted
	}
	return nil
}

func (s ConversionStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *ConversionStatus) Scan(value interface{}) error {
	if value == nil {
		*s = ConversionStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = ConversionStatus(v)
	case int:
		*s = ConversionStatus(v)
	}
	return nil
}
