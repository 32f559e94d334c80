package user

// CreateUserRequest represents the request payload for creating a new user.
// Only presence is validated; format checks are out of scope.
type CreateUserRequest struct {
	Name  string `validate:"required"`
	Email string `validate:"required"`
}

// CreateUserResponse represents the response payload after creating a user.
type CreateUserResponse struct {
	ID int64
}

// UpdateUserRequest represents the request payload for updating an existing user.
// Both fields are set on the targeted row; the id itself is immutable.
type UpdateUserRequest struct {
	ID    int64  `validate:"required"`
	Name  string `validate:"required"`
	Email string `validate:"required"`
}

// DeleteUserRequest represents the request payload for deleting a user.
type DeleteUserRequest struct {
	ID int64
}

// GetUserRequest represents the request payload for retrieving a user.
type GetUserRequest struct {
	ID int64
}

// GetUserResponse represents the response payload for user details.
type GetUserResponse struct {
	ID    int64
	Name  string
	Email string
}

// ListUsersResponse represents the response payload for user listing.
type ListUsersResponse struct {
	Users []User
}

// User represents a user DTO for API responses.
type User struct {
	ID    int64
	Name  string
	Email string
}
