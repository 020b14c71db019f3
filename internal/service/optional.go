package service

import (
	"encoding/json"

	"github.com/google/uuid"
)

// OptionalID distinguishes an absent JSON field from an explicit null or
// empty value. Absent means "leave unchanged"; null or "" means "clear".
type OptionalID struct {
	Set   bool
	Value *uuid.UUID
}

func (o *OptionalID) UnmarshalJSON(data []byte) error {
	o.Set = true
	s := string(data)
	if s == "null" || s == `""` {
		o.Value = nil
		return nil
	}
	var id uuid.UUID
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	o.Value = &id
	return nil
}
