package user

const (
	// SampleName is the name given to users created by the sample endpoint.
	SampleName = "John Doe"
	// SampleEmail is the email given to users created by the sample endpoint.
	SampleEmail = "john@example.com"
)

// User represents a user entity in the system.
// A User is built once by the create-user use case and never mutated afterwards.
type User struct {
	ID    int64  `json:"id"`    // ID is derived from the creation timestamp; not guaranteed unique
	Name  string `json:"name"`  // Name is the full name of the user
	Email string `json:"email"` // Email is the email address of the user, stored as given
}

// New builds a User from its fields.
func New(id int64, name, email string) *User {
	return &User{ID: id, Name: name, Email: email}
}
