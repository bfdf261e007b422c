package secretmanager

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"golang.org/x/sync/errgroup"

	"github.com/evstaffing/invoice-service/common"
)

type SecretName string

// List of configured secrets in Secret Manager
const (
	SecretStripe   SecretName = "stripe"
	SecretSendgrid SecretName = "sendgrid"
	SecretSlack    SecretName = "slack"
)

const (
	latestVersion = "latest"
)

var (
	state = make(map[string][]byte)
	mutex = &sync.Mutex{}
)

// Preload fetches the service secrets concurrently so the first request does not pay for it.
func Preload(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, secret := range []SecretName{SecretStripe, SecretSendgrid, SecretSlack} {
		secret := secret

		g.Go(func() error {
			_, err := AccessSecretLatestVersion(ctx, secret)
			return err
		})
	}

	return g.Wait()
}

// AccessSecretLatestVersion utility function to fetch the latest version of a secret payload
func AccessSecretLatestVersion(ctx context.Context, secret SecretName) ([]byte, error) {
	return AccessSecretVersion(ctx, string(secret), latestVersion)
}

// AccessSecretJSON fetches the latest version of a secret and decodes it into v.
func AccessSecretJSON(ctx context.Context, secret SecretName, v interface{}) error {
	data, err := AccessSecretLatestVersion(ctx, secret)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("secret %s: %w", secret, err)
	}

	return nil
}

// AccessSecretVersion fetch payload of a secret's version. Payloads are cached for the process lifetime.
func AccessSecretVersion(ctx context.Context, secret, version string) ([]byte, error) {
	name := secretResourceName(common.ProjectID, secret, version)

	mutex.Lock()
	v, prs := state[name]
	mutex.Unlock()

	if prs {
		return v, nil
	}

	sm, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, err
	}

	defer sm.Close()

	res, err := sm.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: name,
	})
	if err != nil {
		return nil, err
	}

	data := res.GetPayload().GetData()

	mutex.Lock()
	state[name] = data
	mutex.Unlock()

	return data, nil
}

func secretResourceName(projectID, secret, version string) string {
	return fmt.Sprintf("projects/%s/secrets/%s/versions/%s", projectID, secret, version)
}
