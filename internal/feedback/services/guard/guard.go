package guard

import "github.com/Leopold1975/feedback_board/internal/feedback/domain/models"

type Decision int

const (
	Deny Decision = iota
	Allow
)

func (d Decision) String() string {
	if d == Allow {
		return "ALLOW"
	}

	return "DENY"
}

// RequireSelf allows only an authenticated identity acting on its own username.
func RequireSelf(identity models.Identity, target string) Decision {
	if identity.IsAnonymous() || identity.Username != target {
		return Deny
	}

	return Allow
}

// RequireOwner allows only the user a feedback record belongs to.
func RequireOwner(identity models.Identity, f models.Feedback) Decision {
	return RequireSelf(identity, f.Username)
}
