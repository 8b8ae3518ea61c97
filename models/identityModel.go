package models

// Identity is the resolved user payload supplied by the hosting runtime.
// AuthDate and Hash come straight from the runtime's init data and let the
// backend verify the payload's integrity; the client never trusts them.
type Identity struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Username  string `json:"username,omitempty"`
	AuthDate  string `json:"auth_date,omitempty"`
	Hash      string `json:"hash,omitempty"`
}
