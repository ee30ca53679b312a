package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Platforms is an ordered list of platform names. It is stored as a
// comma-joined string and serialized to JSON as an array.
type Platforms []string

// ParsePlatforms splits a comma-joined value. Entries are trimmed and empty
// entries dropped.
func ParsePlatforms(s string) Platforms {
	out := Platforms{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// String returns the persisted comma-joined form.
func (p Platforms) String() string {
	return strings.Join(p, ",")
}

// UnmarshalJSON accepts either an array of strings or one comma-joined string.
func (p *Platforms) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*p = nil
		return nil
	}

	if strings.HasPrefix(trimmed, "\"") {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = ParsePlatforms(s)
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("platform must be a string or an array of strings")
	}
	*p = Platforms(list)
	return nil
}

// MarshalJSON always emits an array, never null.
func (p Platforms) MarshalJSON() ([]byte, error) {
	if p == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(p))
}

// Value implements driver.Valuer.
func (p Platforms) Value() (driver.Value, error) {
	return p.String(), nil
}

// Scan implements sql.Scanner.
func (p *Platforms) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*p = Platforms{}
	case string:
		*p = ParsePlatforms(v)
	case []byte:
		*p = ParsePlatforms(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Platforms", value)
	}
	return nil
}

// RoundTrips reports whether the list survives a join and split unchanged.
func (p Platforms) RoundTrips() bool {
	for _, name := range p {
		if name == "" || strings.Contains(name, ",") || strings.TrimSpace(name) != name {
			return false
		}
	}
	return true
}
