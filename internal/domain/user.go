package domain

import "time"

// User is an account allowed to sign in to the payments API.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// Credentials is the body of a login request.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AccessToken is the body of a successful login response.
type AccessToken struct {
	AccessToken string `json:"access_token"`
}

// TokenKey is the credential store key holding the bearer token.
const TokenKey = "token"
