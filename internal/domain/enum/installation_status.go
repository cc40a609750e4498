package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// InstallationStatus represents the status of an installation job
type InstallationStatus int

const (
	InstallationStatusScheduled  InstallationStatus = 0
	InstallationStatusInProgress InstallationStatus = 1
	InstallationStatusCompleted  InstallationStatus = 2
	InstallationStatusCancelled  InstallationStatus = 3
)

func (s InstallationStatus) String() string {
	names := [...]string{"Scheduled", "InProgress", "Completed", "Cancelled"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Scheduled"
	}
	return names[s]
}

func (s InstallationStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *InstallationStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = InstallationStatus(i)
		return nil
	}
	switch str {
	case "Scheduled":
		*s = InstallationStatusScheduled
	case "InProgress":
		*s = InstallationStatusInProgress
	case "Completed":
		*s = InstallationStatusCompleted
	case "Cancelled":
		*s = InstallationStatusCancelled
	}
	return nil
}

func (s InstallationStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *InstallationStatus) Scan(value interface{}) error {
	if value == nil {
		*s = InstallationStatusScheduled
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = InstallationStatus(v)
	case int:
		*s = InstallationStatus(v)
	}
	return nil
}
