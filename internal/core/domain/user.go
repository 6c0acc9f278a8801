package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// UserID is the profile identifier exactly as the Authentication Service
// sent it: the raw JSON literal, so a numeric id stays numeric and a string
// id keeps its quoting. Use String for display.
type UserID string

// StringID returns the UserID of a JSON string id.
func StringID(s string) UserID {
	return UserID(strconv.Quote(s))
}

func (id *UserID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("user id: %w", err)
		}
	} else {
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("user id: %w", err)
		}
	}
	*id = UserID(b)
	return nil
}

// MarshalJSON writes the id back verbatim. A value that is not a JSON
// literal is written as a JSON string.
func (id UserID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	if json.Valid([]byte(id)) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// String returns the id text without JSON quoting.
func (id UserID) String() string {
	if len(id) > 0 && id[0] == '"' {
		var s string
		if err := json.Unmarshal([]byte(id), &s); err == nil {
			return s
		}
	}
	return string(id)
}

// Profile is the client's read-only snapshot of the authenticated user.
type Profile struct {
	ID        UserID `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	UserType  Role   `json:"user_type"`
	CreatedAt string `json:"created_at,omitempty"`
}
