package services

import (
	"fmt"

	"article-portal-api/models"

	"gorm.io/gorm"
)

// Scope bounds which articles a reviewer may list. An empty, non-unrestricted
// scope matches nothing; it must never silently widen to "everything".
type Scope struct {
	Unrestricted bool
	FacultyIDs   []string
}

// Matches reports whether a faculty id falls inside the scope.
func (s Scope) Matches(facultyID string) bool {
	if s.Unrestricted {
		return true
	}
	for _, id := range s.FacultyIDs {
		if id == facultyID {
			return true
		}
	}
	return false
}

// ScopeResolver computes a reviewer's visibility scope from their permission
// level at query time. Scopes are derived fresh on every call and never
// cached across requests.
type ScopeResolver struct {
	db        *gorm.DB
	directory AccountDirectory
}

// NewScopeResolver builds a resolver over the given database handle and
// account directory.
func NewScopeResolver(db *gorm.DB, directory AccountDirectory) *ScopeResolver {
	return &ScopeResolver{db: db, directory: directory}
}

// Resolve computes the scope for a reviewer. explicitFacultyID is the
// caller-supplied filter: it takes precedence for unrestricted and manager
// reviewers, but a coordinator cannot broaden their own-faculty restriction
// by passing a different id. If the permission cannot be resolved the scope
// falls back to the most restrictive value (own faculty, or empty).
func (r *ScopeResolver) Resolve(reviewerID, explicitFacultyID string) (Scope, error) {
	permission, err := r.directory.PermissionOf(reviewerID)
	if err != nil {
		return r.failClosed(reviewerID), nil
	}

	switch permission {
	case models.PermissionAll:
		if explicitFacultyID != "" {
			return Scope{FacultyIDs: []string{explicitFacultyID}}, nil
		}
		return Scope{Unrestricted: true}, nil

	case models.PermissionCoordinator:
		// The explicit filter is deliberately ignored here: coordinators are
		// pinned to the faculty they administer.
		facultyID, err := r.directory.AdminFacultyOf(reviewerID)
		if err != nil {
			return Scope{}, nil
		}
		return Scope{FacultyIDs: []string{facultyID}}, nil

	case models.PermissionManager:
		if explicitFacultyID != "" {
			return Scope{FacultyIDs: []string{explicitFacultyID}}, nil
		}
		facultyIDs, err := r.coordinatedFaculties()
		if err != nil {
			return Scope{}, err
		}
		return Scope{FacultyIDs: facultyIDs}, nil

	default:
		return r.failClosed(reviewerID), nil
	}
}

// coordinatedFaculties returns the distinct faculties that have at least one
// active coordinator. Manager visibility is this explicit set; an empty set
// stays empty rather than matching every faculty.
func (r *ScopeResolver) coordinatedFaculties() ([]string, error) {
	var facultyIDs []string
	err := r.db.Model(&models.FacultyAdmin{}).
		Distinct("faculty_admins.faculty_id").
		Joins("JOIN accounts ON accounts.id = faculty_admins.account_id").
		Joins("JOIN account_roles ON account_roles.id = accounts.account_role_id").
		Where("accounts.account_status = ?", models.AccountStatusActive).
		Where("account_roles.permissions = ?", models.PermissionCoordinator).
		Pluck("faculty_admins.faculty_id", &facultyIDs).Error
	if err != nil {
		return nil, fmt.Errorf("%w: load coordinated faculties: %v", ErrDependency, err)
	}
	return facultyIDs, nil
}

func (r *ScopeResolver) failClosed(reviewerID string) Scope {
	if facultyID, err := r.directory.AdminFacultyOf(reviewerID); err == nil {
		return Scope{FacultyIDs: []string{facultyID}}
	}
	return Scope{}
}
