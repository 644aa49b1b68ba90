package models

import "time"

// User is a registered account. Credential is the hex salt||key record; the
// KDF parameters it was derived with are kept alongside it.
type User struct {
	Username   string
	Credential string
	KDF        string
	Iterations int
	KeyLength  int
	CreatedAt  time.Time
}
