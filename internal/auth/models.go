package auth

import (
	"time"

	"web-travelsite/internal/content"
)

type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	Remember bool   `json:"remember" form:"remember"`
}

// Session is the server-side record behind the admin_session cookie.
type Session struct {
	ID        string        `json:"id"`
	Token     string        `json:"token"`
	Admin     content.Admin `json:"admin"`
	Remember  bool          `json:"remember"`
	ExpiresAt time.Time     `json:"expires_at"`
}

type loginResponse struct {
	Token string        `json:"token"`
	Admin content.Admin `json:"admin"`
}
