package connection

import (
	"context"
	"errors"

	"cloud.google.com/go/pubsub"

	"github.com/evstaffing/invoice-service/common"
	"github.com/evstaffing/invoice-service/logger"
)

var (
	ErrPubsubInitialization = errors.New("pubsub initialization error")
)

type PubsubClient struct {
	pubsub *pubsub.Client
}

func NewPubsubClient(ctx context.Context, log *logger.Logging) (*PubsubClient, error) {
	ps, err := pubsub.NewClient(ctx, common.ProjectID)
	if err != nil {
		log.Logger(ctx).Errorf("%s: %s", ErrPubsubInitialization, err)
		return nil, ErrPubsubInitialization
	}

	return &PubsubClient{ps}, nil
}
