package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go"
	"google.golang.org/api/option"

	"github.com/xover0/gallery/netlify/config"
)

const certURLPrefix = "https://www.googleapis.com/robot/v1/metadata/x509/"

// serviceAccountJSON assembles the credentials file Google client libraries
// expect from the individual environment values Netlify can hold.
func serviceAccountJSON(cfg config.FirestoreConfig) ([]byte, error) {
	sa := map[string]string{
		"type":                        "service_account",
		"project_id":                  cfg.ProjectID,
		"private_key_id":              cfg.PrivateKeyID,
		"private_key":                 cfg.PrivateKey,
		"client_email":                cfg.ClientEmail,
		"client_id":                   cfg.ClientID,
		"auth_uri":                    "https://accounts.google.com/o/oauth2/auth",
		"token_uri":                   "https://oauth2.googleapis.com/token",
		"auth_provider_x509_cert_url": "https://www.googleapis.com/oauth2/v1/certs",
		"client_x509_cert_url":        certURLPrefix + strings.ReplaceAll(cfg.ClientEmail, "@", "%40"),
	}
	marshalledSA, err := json.Marshal(sa)
	if err != nil {
		return nil, fmt.Errorf("could not marshal service account: %w", err)
	}
	return marshalledSA, nil
}

func GetFirestoreClient(ctx context.Context, cfg config.FirestoreConfig) (*firestore.Client, error) {
	marshalledSA, err := serviceAccountJSON(cfg)
	if err != nil {
		return nil, err
	}

	sa := option.WithCredentialsJSON(marshalledSA)
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, sa)
	if err != nil {
		return nil, fmt.Errorf("could not start firebase app: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not start firestore client: %w", err)
	}

	return client, nil
}
