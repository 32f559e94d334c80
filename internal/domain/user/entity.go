package user

// User represents a stored user. ID is assigned by the database on creation
// and never changes; Email is unique across all users.
type User struct {
	ID    int64
	Name  string
	Email string
}
