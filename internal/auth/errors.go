package auth

import "errors"

// Domain errors surfaced by the auth service. The HTTP layer maps each to a
// status code and message; anything not in this list is an internal error.
//
// Two pairs are deliberately collapsed: unknown email and wrong password both
// come back as ErrInvalidCredentials, and a wrong code and an expired code
// both come back as ErrInvalidCode. Callers must not be able to tell the
// halves of a pair apart.
var (
	// ErrValidation means a required field was missing or empty.
	ErrValidation = errors.New("all fields are required")
	// ErrEmailTaken means the email belongs to an already verified account.
	ErrEmailTaken = errors.New("email already exists")
	// ErrPhoneTaken means the phone number is bound to another account.
	ErrPhoneTaken = errors.New("phone number already in use")
	// ErrInvalidCredentials covers both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnverified means the account has not completed email verification.
	ErrUnverified = errors.New("email not verified")
	// ErrMissingPhone guards accounts created before phone numbers were
	// required; such accounts must re-register before they can log in.
	ErrMissingPhone = errors.New("account has no phone number, please re-register")
	// ErrInvalidCode covers both a mismatched and an expired code.
	ErrInvalidCode = errors.New("invalid or expired otp")
	// ErrNotFound means no account exists for the given email.
	ErrNotFound = errors.New("user not found")
)
