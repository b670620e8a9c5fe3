package backend

import "regexp"

// emailPattern matches the address format the mobile screens accepted:
// local-part@domain.tld with no whitespace.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// otpPattern requires exactly six digits.
var otpPattern = regexp.MustCompile(`^\d{6}$`)

// minPasswordLength applies to registration and password reset.
const minPasswordLength = 8

// IsValidEmail checks an email address against the form's format rule.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidateLogin checks the login form fields.
// Login only requires the password to be present; length rules apply at
// registration time.
func ValidateLogin(req LoginRequest) ValidationErrors {
	errs := ValidationErrors{}
	switch {
	case req.Email == "":
		errs["email"] = "Email is required."
	case !IsValidEmail(req.Email):
		errs["email"] = "Invalid email address."
	}
	if req.Password == "" {
		errs["password"] = "Password is required."
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateRegister checks the registration form fields.
func ValidateRegister(req RegisterRequest) ValidationErrors {
	errs := ValidationErrors{}
	if req.Name == "" {
		errs["name"] = "Full name is required."
	}
	switch {
	case req.Email == "":
		errs["email"] = "Email is required."
	case !IsValidEmail(req.Email):
		errs["email"] = "Please enter a valid email address."
	}
	switch {
	case req.Password == "":
		errs["password"] = "Password is required."
	case len(req.Password) < minPasswordLength:
		errs["password"] = "Password must be at least 8 characters."
	}
	if req.DOB.IsZero() {
		errs["dob"] = "Date of birth is required."
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateEmailField checks a standalone email field (forgot-password step 1).
func ValidateEmailField(email string) ValidationErrors {
	switch {
	case email == "":
		return ValidationErrors{"email": "Email is required."}
	case !IsValidEmail(email):
		return ValidationErrors{"email": "Invalid email address."}
	}
	return nil
}

// ValidateOTP checks the one-time code field (forgot-password step 2).
func ValidateOTP(otp string) ValidationErrors {
	switch {
	case otp == "":
		return ValidationErrors{"otp": "OTP is required."}
	case !otpPattern.MatchString(otp):
		return ValidationErrors{"otp": "OTP must be 6 digits."}
	}
	return nil
}

// ValidateNewPassword checks the replacement password (forgot-password step 3).
func ValidateNewPassword(password string) ValidationErrors {
	switch {
	case password == "":
		return ValidationErrors{"newPassword": "New password is required."}
	case len(password) < minPasswordLength:
		return ValidationErrors{"newPassword": "Password must be at least 8 characters."}
	}
	return nil
}
