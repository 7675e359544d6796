package auth

import (
	"context"

	"github.com/gigvora/gigvora-backend/internal/httperr"
	"github.com/gigvora/gigvora-backend/internal/models"
)

// UserFinder looks up the authoritative identity record for a verified
// token subject. Called once per authenticated request.
type UserFinder interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// Verifier turns a bearer credential into a resolved Identity. The secret
// and the store are injected so the verifier stays testable without ambient
// state.
type Verifier struct {
	secret string
	users  UserFinder
}

func NewVerifier(secret string, users UserFinder) *Verifier {
	return &Verifier{secret: secret, users: users}
}

// Resolve verifies the credential, loads the backing identity record, and
// projects the minimal safe subset into an Identity. Cryptographic and
// claim failures surface as AuthorizationError; store faults propagate
// unchanged so callers never mistake an outage for a bad token.
func (v *Verifier) Resolve(ctx context.Context, credential string) (*Identity, error) {
	claims, err := VerifyToken(v.secret, credential)
	if err != nil {
		return nil, httperr.Authorization("Invalid authentication token")
	}
	subject := claims.UserID
	if subject == "" {
		subject = claims.Subject
	}
	if subject == "" {
		return nil, httperr.Authorization("Invalid authentication token")
	}
	user, err := v.users.GetUserByID(ctx, subject)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive() {
		return nil, httperr.Authorization("Account not found or inactive")
	}
	return &Identity{
		ID:        user.ID,
		Role:      user.Role,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
	}, nil
}
