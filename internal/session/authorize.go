package session

import (
	"github.com/careerlink-app/careerlink-backend/pkg/enums"
)

// Well-known shell routes the authorize table redirects between.
const (
	LoginPath = "/login"

	EmployerHomePath  = "/employer"
	JobSeekerHomePath = "/find-jobs"

	EmployerCompleteProfilePath  = "/employer/complete-profile"
	JobSeekerCompleteProfilePath = "/jobseeker/complete-profile"
)

// Action is the verdict kind produced by Authorize.
type Action string

const (
	ActionRender      Action = "render"
	ActionRedirect    Action = "redirect"
	ActionShowLoading Action = "show_loading"
)

// Route describes the path being requested and the role it demands.
// RequiredRole of UserTypeUnset means the route has no role restriction.
type Route struct {
	Path         string         `json:"path"`
	RequiredRole enums.UserType `json:"required_role,omitempty"`
}

// Decision is the authorize verdict. From carries the originally requested
// path on login redirects so the shell can return the user afterward.
type Decision struct {
	Action Action `json:"action"`
	Target string `json:"target,omitempty"`
	From   string `json:"from,omitempty"`
}

// RoleHome returns the landing path for a role.
func RoleHome(userType enums.UserType) string {
	switch userType {
	case enums.UserTypeEmployer:
		return EmployerHomePath
	case enums.UserTypeJobSeeker:
		return JobSeekerHomePath
	default:
		return "/"
	}
}

// CompleteProfilePath returns the onboarding route for a role.
func CompleteProfilePath(userType enums.UserType) string {
	switch userType {
	case enums.UserTypeEmployer:
		return EmployerCompleteProfilePath
	case enums.UserTypeJobSeeker:
		return JobSeekerCompleteProfilePath
	default:
		return LoginPath
	}
}

// Authorize is a pure function of (snapshot, route). The rules are evaluated
// in order and the first match wins:
//
//  1. Initializing: show the loading state.
//  2. Anonymous: redirect to login, carrying the requested path.
//  3. Role mismatch: redirect to the caller's own role home. This is checked
//     before the completion rule so an incomplete employer hitting a seeker
//     route is never bounced toward the seeker onboarding page.
//  4. Incomplete profile: redirect to the role's onboarding route, unless the
//     requested route is that onboarding route itself.
//  5. Render.
func Authorize(snapshot Snapshot, route Route) Decision {
	if snapshot.State == StateInitializing {
		return Decision{Action: ActionShowLoading}
	}

	if !snapshot.Authenticated() {
		return Decision{Action: ActionRedirect, Target: LoginPath, From: route.Path}
	}

	userType := snapshot.UserType()
	if route.RequiredRole.IsSet() && route.RequiredRole != userType {
		return Decision{Action: ActionRedirect, Target: RoleHome(userType)}
	}

	if snapshot.State == StateIncompleteProfile && route.Path != CompleteProfilePath(userType) {
		return Decision{Action: ActionRedirect, Target: CompleteProfilePath(userType)}
	}

	return Decision{Action: ActionRender}
}
