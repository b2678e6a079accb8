package utils

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// FirebaseClients groups the Firebase SDK clients the server uses.
type FirebaseClients struct {
	Auth      *auth.Client
	Messaging *messaging.Client
}

// FirebaseInit initializes the Firebase App and its Auth and Messaging clients.
// An empty credentialsFile falls back to application default credentials.
func FirebaseInit(ctx context.Context, credentialsFile string) (*FirebaseClients, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase: error initializing app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase: error getting Auth client: %w", err)
	}

	msgClient, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase: error getting Messaging client: %w", err)
	}

	return &FirebaseClients{Auth: authClient, Messaging: msgClient}, nil
}
