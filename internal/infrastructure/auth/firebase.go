package auth

import (
	"context"

	fbauth "firebase.google.com/go/v4/auth"
)

type firebaseVerifier struct {
	client *fbauth.Client
}

func (f *firebaseVerifier) VerifySessionCookie(ctx context.Context, cookie string) (string, error) {
	token, err := f.client.VerifySessionCookieAndCheckRevoked(ctx, cookie)
	if err != nil {
		return "", err
	}
	return token.UID, nil
}

func (f *firebaseVerifier) VerifyIDToken(ctx context.Context, idToken string) (string, error) {
	token, err := f.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", err
	}
	return token.UID, nil
}
