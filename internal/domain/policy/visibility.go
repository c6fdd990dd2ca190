package policy

import "jobboard/internal/domain/identity"

// SkillSet is a set of skill ids from the external catalog.
type SkillSet map[string]struct{}

func NewSkillSet(ids []string) SkillSet {
	s := make(SkillSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s SkillSet) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// RequirementsMet reports whether every required skill id appears in
// completed. An empty requirement set is trivially met.
func RequirementsMet(required []string, completed SkillSet) bool {
	for _, id := range required {
		if !completed.Contains(id) {
			return false
		}
	}
	return true
}

// CanViewContact decides whether a job's contact field is disclosed to the
// caller. Admins always see it. Anonymous and unverified callers only see
// it for jobs without skill requirements. Everyone else sees it iff the
// required set is a subset of their completed set.
func CanViewContact(viewer *identity.Identity, required []string, completed SkillSet) bool {
	if viewer != nil && viewer.Admin {
		return true
	}
	if viewer == nil || !viewer.EmailVerified {
		return len(required) == 0
	}
	return RequirementsMet(required, completed)
}
