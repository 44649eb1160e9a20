package model

// AuthData - результат регистрации/логина
type AuthData struct {
	AccessToken  string
	RefreshToken string
	SessionID    string
}
