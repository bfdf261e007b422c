package connection

import (
	"context"
	"errors"

	"cloud.google.com/go/firestore"

	"github.com/evstaffing/invoice-service/common"
	"github.com/evstaffing/invoice-service/logger"
)

var (
	ErrFirestoreInitialization = errors.New("firestore initialization error")
)

type FirestoreClient struct {
	fs *firestore.Client
}

// NewFirestore connects to the project database, or the emulator when FIRESTORE_EMULATOR_HOST is set.
func NewFirestore(ctx context.Context, log *logger.Logging) (*FirestoreClient, error) {
	fs, err := firestore.NewClient(ctx, common.ProjectID)
	if err != nil {
		log.Logger(ctx).Errorf("%s: %s", ErrFirestoreInitialization, err)
		return nil, ErrFirestoreInitialization
	}

	return &FirestoreClient{fs}, nil
}
