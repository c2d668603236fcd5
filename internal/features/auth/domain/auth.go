package domain

// TokenPair is the access/refresh token pair issued by the backend.
type TokenPair struct {
	// AccessToken authenticates backend requests until it expires.
	AccessToken string `json:"access_token"`
	// RefreshToken exchanges for a new pair when the access token expires.
	RefreshToken string `json:"refresh_token"`
}

// Profile is the authenticated user's account view.
type Profile struct {
	// ID is the unique identifier of the user.
	ID string `json:"user_id"`
	// UserName is the login name.
	UserName string `json:"user_name"`
	// FullName is the display name.
	FullName string `json:"full_name"`
	// Email is the account email.
	Email string `json:"email"`
}

// Session is the outcome of a successful login: the profile plus the token
// pair now persisted for that user.
type Session struct {
	Profile Profile   `json:"profile"`
	Tokens  TokenPair `json:"tokens"`
}
