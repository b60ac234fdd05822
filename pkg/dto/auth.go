package dto

type RegisterRequest struct {
	Email         string  `json:"email"`
	Password      string  `json:"password"`
	Name          *string `json:"name,omitempty"`
	BirthDate     *string `json:"birth_date,omitempty"` // YYYY-MM-DD
	BirthTime     *string `json:"birth_time,omitempty"` // HH:MM
	BirthLocation *string `json:"birth_location,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type AuthResponse struct {
	User UserResponse `json:"user"`
	TokenResponse
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}
