package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"servicehub/utils"

	fbauth "firebase.google.com/go/v4/auth"
)

// ErrInvalidToken is returned for any token that fails verification.
var ErrInvalidToken = errors.New("invalid or expired token")

// Identity is what a verified ID token says about its holder.
type Identity struct {
	UID            string
	Email          string
	Name           string
	Picture        string
	SignInProvider string
	ExpiresAt      time.Time
}

// TokenVerifier checks a bearer token and returns the identity behind it.
type TokenVerifier interface {
	Verify(ctx context.Context, rawToken string) (*Identity, error)
}

// FirebaseVerifier verifies Firebase ID tokens.
type FirebaseVerifier struct {
	client *fbauth.Client
}

func NewFirebaseVerifier(client *fbauth.Client) *FirebaseVerifier {
	return &FirebaseVerifier{client: client}
}

func (v *FirebaseVerifier) Verify(ctx context.Context, rawToken string) (*Identity, error) {
	token, err := v.client.VerifyIDToken(ctx, rawToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	id := &Identity{
		UID:            token.UID,
		SignInProvider: token.Firebase.SignInProvider,
		ExpiresAt:      time.Unix(token.Expires, 0),
	}
	id.Email, _ = token.Claims["email"].(string)
	id.Name, _ = token.Claims["name"].(string)
	id.Picture, _ = token.Claims["picture"].(string)
	return id, nil
}

// LocalVerifier verifies HS256 tokens signed with a shared secret. It backs
// AUTH_MODE=local for development without a Firebase project.
type LocalVerifier struct {
	secret []byte
}

func NewLocalVerifier(secret string) *LocalVerifier {
	return &LocalVerifier{secret: []byte(secret)}
}

func (v *LocalVerifier) Verify(_ context.Context, rawToken string) (*Identity, error) {
	claims, err := utils.ParseToken(v.secret, rawToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return &Identity{
		UID:            claims.Subject,
		Email:          claims.Email,
		Name:           claims.Name,
		Picture:        claims.Picture,
		SignInProvider: "password",
		ExpiresAt:      time.Unix(claims.ExpiresAt, 0),
	}, nil
}

// Issue signs a local token. Only meaningful for LocalVerifier.
func (v *LocalVerifier) Issue(uid, email, name string, ttl time.Duration) (string, error) {
	return utils.GenerateToken(v.secret, uid, email, name, ttl)
}
