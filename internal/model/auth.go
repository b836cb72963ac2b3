package model

// LoginRequest is the credential payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"mail" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is returned on successful authentication.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        *User  `json:"user"`
}
