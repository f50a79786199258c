package security

import (
	"unicode"

	"github.com/careerlink-app/careerlink-backend/pkg/config"
	pkgerrors "github.com/careerlink-app/careerlink-backend/pkg/errors"
)

// CheckPasswordPolicy enforces the credential policy: minimum length plus at
// least one upper-case letter, one lower-case letter, and one digit. The
// returned error carries per-rule details for the UI shell.
func CheckPasswordPolicy(password string, cfg config.PasswordConfig) error {
	minLength := cfg.MinLength
	if minLength <= 0 {
		minLength = 8
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	failures := map[string]string{}
	if len(password) < minLength {
		failures["length"] = "too short"
	}
	if !hasUpper {
		failures["uppercase"] = "missing upper-case letter"
	}
	if !hasLower {
		failures["lowercase"] = "missing lower-case letter"
	}
	if !hasDigit {
		failures["digit"] = "missing digit"
	}

	if len(failures) > 0 {
		return pkgerrors.New(pkgerrors.CodeWeakCredential, "password does not meet policy").
			WithDetails(failures)
	}
	return nil
}
