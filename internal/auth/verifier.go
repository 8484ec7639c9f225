package auth

import (
	"context"

	"google.golang.org/api/idtoken"
)

// Identity is the decoded caller identity attached to authenticated requests.
type Identity struct {
	Subject string
	Email   string
}

// Verifier validates a bearer credential against an identity provider.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// GoogleVerifier validates Google-issued ID tokens against a fixed audience.
type GoogleVerifier struct {
	audience string
}

func NewGoogleVerifier(audience string) *GoogleVerifier {
	return &GoogleVerifier{audience: audience}
}

func (v *GoogleVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	payload, err := idtoken.Validate(ctx, token, v.audience)
	if err != nil {
		return nil, err
	}

	identity := &Identity{Subject: payload.Subject}
	if email, ok := payload.Claims["email"].(string); ok {
		identity.Email = email
	}

	return identity, nil
}
