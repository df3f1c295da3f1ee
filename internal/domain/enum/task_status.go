package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// TaskStatus represents the state of a staff task
type TaskStatus int

const (
	TaskStatusOpen TaskStatus = 0
	TaskStatusDone TaskStatus = 1
)

func (s TaskStatus) String() string {
	return [...]string{"open", "done"}[s]
}

func (s TaskStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *TaskStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = TaskStatus(i)
		return nil
	}
	switch str {
	case "open":
		*s = TaskStatusOpen
	case "done":
		*s = TaskStatusDone
	}
	return nil
}

func (s TaskStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *TaskStatus) Scan(value interface{}) error {
	if value == nil {
		*s = TaskStatusOpen
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = TaskStatus(v)
	case int:
		*s = TaskStatus(v)
	}
	return nil
}
