package user

import "time"

// CreateUserRequest represents the input of the create-user use case.
// Fields are taken as given; no validation is applied.
type CreateUserRequest struct {
	Name  string
	Email string
}

// IDGenerator produces identities for new users.
type IDGenerator func() int64

// TimestampID returns the current Unix time in milliseconds.
// Two users created within the same millisecond share an id.
func TimestampID() int64 {
	return time.Now().UnixMilli()
}
