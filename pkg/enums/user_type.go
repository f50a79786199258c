package enums

import "fmt"

// UserType represents the role fixed at registration. It never changes for a
// given identity afterwards.
type UserType string

const (
	UserTypeEmployer  UserType = "employer"
	UserTypeJobSeeker UserType = "job_seeker"
	UserTypeUnset     UserType = "unset"
)

var validUserTypes = []UserType{
	UserTypeEmployer,
	UserTypeJobSeeker,
	UserTypeUnset,
}

// String implements fmt.Stringer.
func (u UserType) String() string {
	return string(u)
}

// IsValid reports whether the value is a known UserType.
func (u UserType) IsValid() bool {
	for _, candidate := range validUserTypes {
		if candidate == u {
			return true
		}
	}
	return false
}

// IsSet reports whether the role has been chosen.
func (u UserType) IsSet() bool {
	return u == UserTypeEmployer || u == UserTypeJobSeeker
}

// ParseUserType converts raw input into a UserType.
func ParseUserType(value string) (UserType, error) {
	for _, candidate := range validUserTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid user type %q", value)
}
