package dto

import "notemark/model"

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

func ToAuthResponse(identity model.Identity, token string) AuthResponse {
	return AuthResponse{
		ID:    identity.ID,
		Name:  identity.Name,
		Email: identity.Email,
		Token: token,
	}
}
