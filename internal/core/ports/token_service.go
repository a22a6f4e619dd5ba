package ports

import "time"

// TokenService issues and verifies signed bearer tokens bound to a user id.
// Verification is stateless: a token stays valid until its expiry regardless
// of later changes to the subject account.
type TokenService interface {
	Issue(subjectID string) (token string, expiresAt time.Time, err error)
	// Verify returns the subject id, or domain.ErrTokenExpired /
	// domain.ErrTokenInvalid.
	Verify(token string) (subjectID string, err error)
}
