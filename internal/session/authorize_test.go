package session

import (
	"testing"

	"github.com/careerlink-app/careerlink-backend/internal/identity"
	"github.com/careerlink-app/careerlink-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func anonymousSnapshot() Snapshot {
	return SnapshotFor(nil)
}

func authenticatedSnapshot(userType enums.UserType, complete bool) Snapshot {
	return SnapshotFor(&identity.Identity{
		UserID:          uuid.New(),
		Email:           "user@example.com",
		UserType:        userType,
		ProfileComplete: complete,
	})
}

func TestAuthorizeInitializingShowsLoading(t *testing.T) {
	decision := Authorize(Snapshot{State: StateInitializing}, Route{Path: "/find-jobs"})
	assert.Equal(t, ActionShowLoading, decision.Action)
}

func TestAuthorizeAnonymousRedirectsToLoginWithFrom(t *testing.T) {
	routes := []Route{
		{Path: "/employer", RequiredRole: enums.UserTypeEmployer},
		{Path: "/find-jobs", RequiredRole: enums.UserTypeJobSeeker},
		{Path: "/my-applications"},
	}
	for _, route := range routes {
		decision := Authorize(anonymousSnapshot(), route)
		assert.Equal(t, ActionRedirect, decision.Action, "route %s", route.Path)
		assert.Equal(t, LoginPath, decision.Target, "route %s", route.Path)
		assert.Equal(t, route.Path, decision.From, "route %s", route.Path)
	}
}

func TestAuthorizeRoleMismatchRedirectsToOwnHome(t *testing.T) {
	employer := authenticatedSnapshot(enums.UserTypeEmployer, true)
	decision := Authorize(employer, Route{Path: "/find-jobs", RequiredRole: enums.UserTypeJobSeeker})
	assert.Equal(t, ActionRedirect, decision.Action)
	assert.Equal(t, EmployerHomePath, decision.Target)

	seeker := authenticatedSnapshot(enums.UserTypeJobSeeker, true)
	decision = Authorize(seeker, Route{Path: "/employer/jobs", RequiredRole: enums.UserTypeEmployer})
	assert.Equal(t, ActionRedirect, decision.Action)
	assert.Equal(t, JobSeekerHomePath, decision.Target)
}

func TestAuthorizeRoleMismatchWinsOverIncompleteProfile(t *testing.T) {
	// An incomplete employer hitting a seeker-only route must bounce to the
	// employer home, never toward the seeker onboarding page.
	incompleteEmployer := authenticatedSnapshot(enums.UserTypeEmployer, false)
	decision := Authorize(incompleteEmployer, Route{Path: "/find-jobs", RequiredRole: enums.UserTypeJobSeeker})
	assert.Equal(t, ActionRedirect, decision.Action)
	assert.Equal(t, EmployerHomePath, decision.Target)
}

func TestAuthorizeIncompleteProfileRedirectsToOnboarding(t *testing.T) {
	incompleteSeeker := authenticatedSnapshot(enums.UserTypeJobSeeker, false)
	decision := Authorize(incompleteSeeker, Route{Path: "/find-jobs", RequiredRole: enums.UserTypeJobSeeker})
	assert.Equal(t, ActionRedirect, decision.Action)
	assert.Equal(t, JobSeekerCompleteProfilePath, decision.Target)

	incompleteEmployer := authenticatedSnapshot(enums.UserTypeEmployer, false)
	decision = Authorize(incompleteEmployer, Route{Path: "/employer", RequiredRole: enums.UserTypeEmployer})
	assert.Equal(t, ActionRedirect, decision.Action)
	assert.Equal(t, EmployerCompleteProfilePath, decision.Target)
}

func TestAuthorizeOnboardingRouteRendersWhileIncomplete(t *testing.T) {
	incompleteSeeker := authenticatedSnapshot(enums.UserTypeJobSeeker, false)
	decision := Authorize(incompleteSeeker, Route{
		Path:         JobSeekerCompleteProfilePath,
		RequiredRole: enums.UserTypeJobSeeker,
	})
	assert.Equal(t, ActionRender, decision.Action)
}

func TestAuthorizeCompleteProfileRenders(t *testing.T) {
	seeker := authenticatedSnapshot(enums.UserTypeJobSeeker, true)
	decision := Authorize(seeker, Route{Path: "/find-jobs", RequiredRole: enums.UserTypeJobSeeker})
	assert.Equal(t, ActionRender, decision.Action)

	decision = Authorize(seeker, Route{Path: "/my-applications"})
	assert.Equal(t, ActionRender, decision.Action)
}

func TestAuthorizeIsIdempotent(t *testing.T) {
	snapshot := authenticatedSnapshot(enums.UserTypeEmployer, false)
	route := Route{Path: "/employer/jobs", RequiredRole: enums.UserTypeEmployer}

	first := Authorize(snapshot, route)
	second := Authorize(snapshot, route)
	assert.Equal(t, first, second)
}

func TestSnapshotForStates(t *testing.T) {
	assert.Equal(t, StateAnonymous, SnapshotFor(nil).State)

	unsetType := authenticatedSnapshot(enums.UserTypeUnset, true)
	assert.Equal(t, StateIncompleteProfile, unsetType.State)

	incomplete := authenticatedSnapshot(enums.UserTypeEmployer, false)
	assert.Equal(t, StateIncompleteProfile, incomplete.State)

	complete := authenticatedSnapshot(enums.UserTypeEmployer, true)
	assert.Equal(t, StateComplete, complete.State)
}
