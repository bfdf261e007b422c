package service

import (
	"context"
	"errors"

	"github.com/stripe/stripe-go/v74/client"

	"github.com/evstaffing/invoice-service/secretmanager"
)

var errMissingAPIKey = errors.New("stripe secret has no api key")

type Client struct {
	*client.API
	webhookSignKey string
	successURL     string
	cancelURL      string
}

type stripeSecret struct {
	APIKey         string `json:"api_key"`
	WebhookSignKey string `json:"webhook_sign_key"`
	SuccessURL     string `json:"success_url"`
	CancelURL      string `json:"cancel_url"`
}

func NewStripeClient(ctx context.Context) (*Client, error) {
	var secret stripeSecret
	if err := secretmanager.AccessSecretJSON(ctx, secretmanager.SecretStripe, &secret); err != nil {
		return nil, err
	}

	if secret.APIKey == "" {
		return nil, errMissingAPIKey
	}

	var stripeClient client.API

	stripeClient.Init(secret.APIKey, nil)

	return &Client{
		API:            &stripeClient,
		webhookSignKey: secret.WebhookSignKey,
		successURL:     secret.SuccessURL,
		cancelURL:      secret.CancelURL,
	}, nil
}
