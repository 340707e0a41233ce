package db

// Package db wraps the Firestore backing store: collection access, document
// mapping and push subscriptions delivering full-collection snapshots.

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
)

const (
	productsCollection   = "products"
	categoriesCollection = "categories"
	settingsCollection   = "settings"
	socialDocID          = "social"
)

// Connect opens a Firestore client for the given project. When
// credentialsFile is empty the client falls back to application-default
// credentials.
func Connect(ctx context.Context, projectID, credentialsFile string) (*firestore.Client, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context is required")
	}
	if projectID == "" {
		return nil, fmt.Errorf("firestore project id is required")
	}

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}

	return client, nil
}
