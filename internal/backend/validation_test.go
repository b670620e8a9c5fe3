package backend

import (
	"testing"
	"time"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"user@example.com", true},
		{"a.b-c@sub.domain.org", true},
		{"", false},
		{"no-at-sign", false},
		{"user@nodot", false},
		{"spaces in@example.com", false},
		{"user@example.com ", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			if got := IsValidEmail(tt.email); got != tt.want {
				t.Errorf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}

func TestValidateLogin(t *testing.T) {
	tests := []struct {
		name       string
		req        LoginRequest
		wantFields []string
	}{
		{"valid", LoginRequest{Email: "user@example.com", Password: "secret"}, nil},
		{"missing email", LoginRequest{Password: "secret"}, []string{"email"}},
		{"bad email", LoginRequest{Email: "nope", Password: "secret"}, []string{"email"}},
		{"missing password", LoginRequest{Email: "user@example.com"}, []string{"password"}},
		{"both missing", LoginRequest{}, []string{"email", "password"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateLogin(tt.req)
			if len(errs) != len(tt.wantFields) {
				t.Fatalf("got %d errors (%v), want %d", len(errs), errs, len(tt.wantFields))
			}
			for _, field := range tt.wantFields {
				if errs.Field(field) == "" {
					t.Errorf("expected error for field %q, got none", field)
				}
			}
		})
	}
}

func TestValidateRegister(t *testing.T) {
	dob := time.Date(2000, 1, 15, 0, 0, 0, 0, time.UTC)

	valid := RegisterRequest{
		Name:     "Test User",
		Email:    "user@example.com",
		Password: "longenough",
		DOB:      dob,
	}
	if errs := ValidateRegister(valid); errs != nil {
		t.Fatalf("valid request produced errors: %v", errs)
	}

	short := valid
	short.Password = "short"
	if errs := ValidateRegister(short); errs.Field("password") == "" {
		t.Error("expected password length error")
	}

	noDOB := valid
	noDOB.DOB = time.Time{}
	if errs := ValidateRegister(noDOB); errs.Field("dob") == "" {
		t.Error("expected dob error")
	}
}

func TestValidateOTP(t *testing.T) {
	tests := []struct {
		otp     string
		wantErr bool
	}{
		{"123456", false},
		{"", true},
		{"12345", true},
		{"1234567", true},
		{"12345a", true},
	}

	for _, tt := range tests {
		t.Run(tt.otp, func(t *testing.T) {
			errs := ValidateOTP(tt.otp)
			if (errs != nil) != tt.wantErr {
				t.Errorf("ValidateOTP(%q) = %v, wantErr %v", tt.otp, errs, tt.wantErr)
			}
		})
	}
}

func TestValidateNewPassword(t *testing.T) {
	if errs := ValidateNewPassword("12345678"); errs != nil {
		t.Errorf("8-char password rejected: %v", errs)
	}
	if errs := ValidateNewPassword("1234567"); errs.Field("newPassword") == "" {
		t.Error("expected error for 7-char password")
	}
	if errs := ValidateNewPassword(""); errs.Field("newPassword") == "" {
		t.Error("expected error for empty password")
	}
}
