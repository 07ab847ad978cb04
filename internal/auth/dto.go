package auth

import "github.com/angelmondragon/universe-backend/pkg/docstore"

// SignupRequest is the payload accepted by the signup endpoint.
type SignupRequest struct {
	StudentID string `json:"student_id" validate:"required"`
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
}

type SignupResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// LoginRequest carries an email or student id plus the password.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// LoginResponse holds the bearer token and the serialized account.
type LoginResponse struct {
	Token string              `json:"token"`
	User  docstore.WireRecord `json:"user"`
}
