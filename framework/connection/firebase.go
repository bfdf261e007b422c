package connection

import (
	"context"
	"errors"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"

	"github.com/evstaffing/invoice-service/common"
	"github.com/evstaffing/invoice-service/logger"
)

var (
	ErrFirebaseInitialization = errors.New("firebase initialization error")
)

type FirebaseClient struct {
	auth *auth.Client
}

func NewFirebaseClient(ctx context.Context, log *logger.Logging) (*FirebaseClient, error) {
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: common.ProjectID})
	if err != nil {
		log.Logger(ctx).Errorf("%s: %s", ErrFirebaseInitialization, err)
		return nil, ErrFirebaseInitialization
	}

	a, err := app.Auth(ctx)
	if err != nil {
		log.Logger(ctx).Errorf("%s: %s", ErrFirebaseInitialization, err)
		return nil, ErrFirebaseInitialization
	}

	return &FirebaseClient{a}, nil
}

// Auth returns the Firebase auth client used to verify user ID tokens.
func (c *FirebaseClient) Auth() *auth.Client {
	return c.auth
}
