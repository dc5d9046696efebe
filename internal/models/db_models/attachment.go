package db_models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

type Attachment struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
	URL  string `json:"url"`
}

// AttachmentList is stored as a jsonb column.
type AttachmentList []Attachment

func (a AttachmentList) Value() (driver.Value, error) {
	if len(a) == 0 {
		return nil, nil
	}
	return json.Marshal(a)
}

func (a *AttachmentList) Scan(value interface{}) error {
	if value == nil {
		*a = nil
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("unsupported type for AttachmentList")
	}

	return json.Unmarshal(raw, a)
}
