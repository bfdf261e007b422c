package connection

import (
	"context"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/pubsub"
	"github.com/gin-gonic/gin"

	"github.com/evstaffing/invoice-service/logger"
)

const (
	// CtxFirestoreKey is how firestore connections are stored/retrieved.
	CtxFirestoreKey = "app-firestore"

	// CtxPubSubKey is how cloud pubsub connections are stored/retrieved.
	CtxPubSubKey = "app-pubsub"
)

type Connection struct {
	*FirestoreClient
	*PubsubClient
	*CloudTasksClient
	*FirebaseClient
}

// NewConnection initializes the cloud clients the api needs.
func NewConnection(ctx context.Context, log *logger.Logging) (*Connection, error) {
	fs, err := NewFirestore(ctx, log)
	if err != nil {
		return nil, err
	}

	ps, err := NewPubsubClient(ctx, log)
	if err != nil {
		return nil, err
	}

	ct, err := NewCloudTasksClient(ctx, log)
	if err != nil {
		return nil, err
	}

	fb, err := NewFirebaseClient(ctx, log)
	if err != nil {
		return nil, err
	}

	return &Connection{
		fs,
		ps,
		ct,
		fb,
	}, nil
}

// Firestore returns a firestore connection that was stored in context.
// it returns by default a firestore connection, if there was not on context.
func (c *Connection) Firestore(ctx context.Context) *firestore.Client {
	if fs, ok := ctx.Value(CtxFirestoreKey).(*firestore.Client); ok {
		return fs
	}

	return c.fs
}

// Pubsub returns a pubsub connection that was stored in context.
// it returns by default a pubsub connection, if there was not on context.
func (c *Connection) Pubsub(ctx context.Context) *pubsub.Client {
	if ps, ok := ctx.Value(CtxPubSubKey).(*pubsub.Client); ok {
		return ps
	}

	return c.pubsub
}

// FirestoreWithContext stores under gin context, a firestore connection.
func (c *Connection) FirestoreWithContext(ctx *gin.Context) {
	ctx.Set(CtxFirestoreKey, c.fs)
}

// Close releases every client, returning the first error.
func (c *Connection) Close() error {
	var first error

	for _, closeFn := range []func() error{c.fs.Close, c.pubsub.Close, c.tasks.Close} {
		if err := closeFn(); err != nil && first == nil {
			first = err
		}
	}

	return first
}

type FirestoreFromContextFun = func(ctx context.Context) *firestore.Client
type PubsubFromContextFun = func(ctx context.Context) *pubsub.Client
