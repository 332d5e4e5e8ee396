package models

// User is the account fabricated by a successful OTP verification.
// It lives in the session store until logout.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
	Phone  string `json:"phone"`
}

// Profile is the sender snapshot embedded in a message at send time.
type Profile struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// Snapshot returns the profile to embed in outgoing messages.
func (u User) Snapshot() *Profile {
	return &Profile{ID: u.ID, Name: u.Name, Avatar: u.Avatar}
}
