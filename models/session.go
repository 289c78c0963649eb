package models

import "github.com/octabyte/campus-portal/enums"

// Tokens is the credential pair issued on login.
type Tokens struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Session is the locally persisted authentication state. Either all three
// fields are present or the session is anonymous.
type Session struct {
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	User         *User  `json:"user,omitempty"`
}

// IsAuthenticated reports whether every session field is present. Partial
// sessions are anonymous.
func (s Session) IsAuthenticated() bool {
	return s.AccessToken != "" && s.RefreshToken != "" && s.User != nil
}

// IsEmpty reports whether no session field is present.
func (s Session) IsEmpty() bool {
	return s.AccessToken == "" && s.RefreshToken == "" && s.User == nil
}

// HasRole reports whether the session is authenticated with the given role.
func (s Session) HasRole(role enums.Role) bool {
	return s.IsAuthenticated() && s.User.Role == role
}
