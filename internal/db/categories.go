package db

import (
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/senalmaq/storefront/internal/catalog"
)

// MapCategoryDocument projects a raw category snapshot, nil for nil or
// non-existent input.
func MapCategoryDocument(snap *firestore.DocumentSnapshot) *catalog.Category {
	if snap == nil || !snap.Exists() {
		return nil
	}
	c := catalog.ApplyCategorySchema(snap.Ref.ID, snap.Data())
	return &c
}

// CategoryStore reads the categories collection.
type CategoryStore struct {
	client *firestore.Client
	logger *slog.Logger
}

func NewCategoryStore(client *firestore.Client, logger *slog.Logger) (*CategoryStore, error) {
	if client == nil {
		return nil, fmt.Errorf("category store: firestore client is required")
	}
	return &CategoryStore{client: client, logger: logger}, nil
}

func (s *CategoryStore) col() *firestore.CollectionRef {
	return s.client.Collection(categoriesCollection)
}

// List returns every category in the collection.
func (s *CategoryStore) List(ctx context.Context) ([]catalog.Category, error) {
	categories := make([]catalog.Category, 0)

	docs := s.col().Documents(ctx)
	defer docs.Stop()
	for {
		snap, err := docs.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list categories: %w", err)
		}
		if c := MapCategoryDocument(snap); c != nil {
			categories = append(categories, *c)
		}
	}

	return categories, nil
}

// Watch subscribes to full-collection category snapshots; semantics match
// ProductStore.Watch.
func (s *CategoryStore) Watch(ctx context.Context, onSnapshot func([]catalog.Category), onError func(error)) func() {
	ctx, cancel := context.WithCancel(ctx)

	go func() {
		snaps := s.col().Snapshots(ctx)
		defer snaps.Stop()

		for {
			qs, err := snaps.Next()
			if err != nil {
				if status.Code(err) == codes.Canceled || ctx.Err() != nil {
					return
				}
				onError(err)
				return
			}

			categories := make([]catalog.Category, 0)
			for {
				snap, err := qs.Documents.Next()
				if err == iterator.Done {
					break
				}
				if err != nil {
					onError(err)
					return
				}
				if c := MapCategoryDocument(snap); c != nil {
					categories = append(categories, *c)
				}
			}

			onSnapshot(categories)
		}
	}()

	return cancel
}
