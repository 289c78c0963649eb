package models

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/octabyte/campus-portal/enums"
)

// UserID is the server's identifier for a user. The API may send it as a
// string or as a number; either way it is kept as text.
type UserID string

func (id *UserID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = UserID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("models: user id %s is neither a string nor a number", data)
	}
	*id = UserID(n.String())
	return nil
}

func (id UserID) String() string { return string(id) }

// User is the cached profile snapshot returned by the login and verify endpoints.
type User struct {
	ID              UserID     `json:"id"`
	Email           string     `json:"email"`
	Name            string     `json:"name,omitempty"`
	Role            enums.Role `json:"role"`
	IsSetupComplete bool       `json:"is_setup_complete,omitempty"`
}
