package auth

// Account is the credential view of a user, loaded only during login.
type Account struct {
	ID           int64
	PasswordHash string
}

// Credentials is the login request payload. Login matches the account's
// primary email, home phone or mobile phone.
type Credentials struct {
	Login    string `json:"login" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=64"`
}
