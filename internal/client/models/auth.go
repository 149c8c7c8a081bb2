package models

import "encoding/json"

// Identity is derived from the session token and used for display only.
type Identity struct {
	Username string `json:"username"`
	UserID   string `json:"userId"`
}

// UnmarshalJSON accepts a numeric userId.
func (i *Identity) UnmarshalJSON(b []byte) error {
	type plain Identity
	aux := struct {
		*plain
		UserID json.RawMessage `json:"userId"`
	}{plain: (*plain)(i)}

	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	id, err := rawID(aux.UserID)
	if err != nil {
		return err
	}
	i.UserID = id
	return nil
}

// AuthResult is the body of a successful login or registration.
type AuthResult struct {
	Token string   `json:"token"`
	User  Identity `json:"user"`
}

// Credentials is the body of POST /auth/login and /auth/register.
type Credentials struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}
