package backend

import "time"

// User is the profile record the remote backend holds for an account.
type User struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	DOB        *time.Time `json:"dob,omitempty"`
	ProfilePic string     `json:"profilePic,omitempty"`
}

// Envelope is the common response shape the backend returns.
// Every endpoint reports success/failure in-band alongside the HTTP status.
type Envelope struct {
	Success bool   `json:"success"`
	Error   bool   `json:"error"`
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
	User    *User  `json:"user,omitempty"`
}

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the payload for POST /auth/register.
type RegisterRequest struct {
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Password string    `json:"password"`
	DOB      time.Time `json:"dob"`
}

// SendOTPRequest is the payload for POST /auth/forgotpassword.
type SendOTPRequest struct {
	Email string `json:"email"`
}

// VerifyOTPRequest is the payload for POST /auth/verifyOtp.
type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// ResetPasswordRequest is the payload for PATCH /auth/resetpassword.
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"newPassword"`
}

// UpdateProfileRequest is the payload for PATCH /auth/update.
// Only non-zero fields are sent.
type UpdateProfileRequest struct {
	Name       string     `json:"name,omitempty"`
	DOB        *time.Time `json:"dob,omitempty"`
	ProfilePic string     `json:"profilePic,omitempty"`
}

// GoogleAuthRequest is the payload for POST /auth/google-auth.
// The backend accepts either an OAuth access token or an ID token.
type GoogleAuthRequest struct {
	AccessToken string `json:"accessToken,omitempty"`
	IDToken     string `json:"idToken,omitempty"`
}
