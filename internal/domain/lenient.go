package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// UnmarshalJSON accepts an id sent as a string or a number and a capacity
// sent as a number or a numeric string. Fields absent from the payload keep
// their current value.
func (e *Event) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}

	type plain Event
	aux := struct {
		*plain
		ID       json.RawMessage `json:"id"`
		Capacity json.RawMessage `json:"capacity"`
	}{plain: (*plain)(e)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if aux.ID != nil {
		id, err := flexString(aux.ID)
		if err != nil {
			return fmt.Errorf("event id: %w", err)
		}
		e.ID = id
	}
	if aux.Capacity != nil {
		capacity, err := flexInt(aux.Capacity)
		if err != nil {
			return fmt.Errorf("event capacity: %w", err)
		}
		e.Capacity = capacity
	}
	return nil
}

// UnmarshalJSON accepts every counter as a number or a numeric string
func (s *Statistics) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}

	var raw struct {
		Total     json.RawMessage `json:"total"`
		Upcoming  json.RawMessage `json:"upcoming"`
		Ongoing   json.RawMessage `json:"ongoing"`
		Completed json.RawMessage `json:"completed"`
		Cancelled json.RawMessage `json:"cancelled"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	counters := []struct {
		name string
		raw  json.RawMessage
		dst  *int
	}{
		{"total", raw.Total, &s.Total},
		{"upcoming", raw.Upcoming, &s.Upcoming},
		{"ongoing", raw.Ongoing, &s.Ongoing},
		{"completed", raw.Completed, &s.Completed},
		{"cancelled", raw.Cancelled, &s.Cancelled},
	}
	for _, c := range counters {
		if c.raw == nil {
			continue
		}
		v, err := flexInt(c.raw)
		if err != nil {
			return fmt.Errorf("statistics %s: %w", c.name, err)
		}
		if v != nil {
			*c.dst = *v
		}
	}
	return nil
}

func isNull(raw []byte) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

// flexString decodes a JSON string or number into its text form
func flexString(raw json.RawMessage) (*string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || isNull(raw) {
		return nil, nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		return &s, nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil, err
	}
	s := n.String()
	return &s, nil
}

// flexInt decodes a JSON number or numeric string into an int. A blank
// string decodes to nil; fractional values are rejected.
func flexInt(raw json.RawMessage) (*int, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || isNull(raw) {
		return nil, nil
	}

	var n json.Number
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, nil
		}
		n = json.Number(s)
	} else if err := json.Unmarshal(raw, &n); err != nil {
		return nil, err
	}

	if i, err := n.Int64(); err == nil {
		v := int(i)
		return &v, nil
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%q is not an integer", n.String())
	}
	v := int(f)
	return &v, nil
}
