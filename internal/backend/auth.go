package backend

import (
	"context"
	"net/http"
)

// Login authenticates with email and password.
//
// Validation runs client-side first; a ValidationErrors result means no
// request was sent. On success the envelope carries the session token and
// the user record.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*Envelope, error) {
	if errs := ValidateLogin(req); len(errs) > 0 {
		return nil, errs
	}
	return c.do(ctx, "login", http.MethodPost, "/auth/login", req)
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*Envelope, error) {
	if errs := ValidateRegister(req); len(errs) > 0 {
		return nil, errs
	}
	return c.do(ctx, "register", http.MethodPost, "/auth/register", req)
}

// SendOTP requests a one-time code for password reset (step 1 of the
// forgot-password flow).
func (c *Client) SendOTP(ctx context.Context, email string) (*Envelope, error) {
	if errs := ValidateEmailField(email); len(errs) > 0 {
		return nil, errs
	}
	return c.do(ctx, "send_otp", http.MethodPost, "/auth/forgotpassword", SendOTPRequest{Email: email})
}

// VerifyOTP checks the one-time code (step 2 of the forgot-password flow).
func (c *Client) VerifyOTP(ctx context.Context, email, otp string) (*Envelope, error) {
	if errs := ValidateOTP(otp); len(errs) > 0 {
		return nil, errs
	}
	return c.do(ctx, "verify_otp", http.MethodPost, "/auth/verifyOtp", VerifyOTPRequest{Email: email, OTP: otp})
}

// ResetPassword sets a new password after OTP verification (step 3).
func (c *Client) ResetPassword(ctx context.Context, email, newPassword string) (*Envelope, error) {
	if errs := ValidateNewPassword(newPassword); len(errs) > 0 {
		return nil, errs
	}
	return c.do(ctx, "reset_password", http.MethodPatch, "/auth/resetpassword",
		ResetPasswordRequest{Email: email, NewPassword: newPassword})
}

// GoogleAuth authenticates with a Google OAuth token. The backend logs the
// account in when it exists and registers it otherwise.
func (c *Client) GoogleAuth(ctx context.Context, req GoogleAuthRequest) (*Envelope, error) {
	return c.do(ctx, "google_auth", http.MethodPost, "/auth/google-auth", req)
}

// Logout notifies the backend that the session is ending. The companion
// treats this as best-effort: local logout proceeds regardless of the result.
func (c *Client) Logout(ctx context.Context) (*Envelope, error) {
	return c.do(ctx, "logout", http.MethodPost, "/auth/logout", nil)
}
