package db

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/senalmaq/storefront/internal/catalog"
)

// MapProductDocument projects a raw product snapshot onto the normalized
// entity. Nil or non-existent snapshots map to nil; everything else is
// defaulted into a complete record, never rejected.
func MapProductDocument(snap *firestore.DocumentSnapshot) *catalog.Product {
	if snap == nil || !snap.Exists() {
		return nil
	}
	p := catalog.ApplyProductSchema(snap.Ref.ID, snap.Data())
	return &p
}

// ProductStore reads and writes the products collection.
type ProductStore struct {
	client *firestore.Client
	logger *slog.Logger
}

func NewProductStore(client *firestore.Client, logger *slog.Logger) (*ProductStore, error) {
	if client == nil {
		return nil, fmt.Errorf("product store: firestore client is required")
	}
	return &ProductStore{client: client, logger: logger}, nil
}

func (s *ProductStore) col() *firestore.CollectionRef {
	return s.client.Collection(productsCollection)
}

// GetByID returns the product with the given document id, or (nil, nil)
// when the id is empty or no such document exists.
func (s *ProductStore) GetByID(ctx context.Context, id string) (*catalog.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil
	}

	snap, err := s.col().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read product %s: %w", id, err)
	}

	return MapProductDocument(snap), nil
}

// List returns every product in the collection.
func (s *ProductStore) List(ctx context.Context) ([]catalog.Product, error) {
	products := make([]catalog.Product, 0)

	docs := s.col().Documents(ctx)
	defer docs.Stop()
	for {
		snap, err := docs.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list products: %w", err)
		}
		if p := MapProductDocument(snap); p != nil {
			products = append(products, *p)
		}
	}

	return products, nil
}

// Create writes a new product document and returns its generated id.
func (s *ProductStore) Create(ctx context.Context, p catalog.Product) (string, error) {
	doc := s.col().NewDoc()
	if _, err := doc.Create(ctx, productPayload(p)); err != nil {
		return "", fmt.Errorf("failed to create product: %w", err)
	}
	return doc.ID, nil
}

// SetImage merges the resolved image URL into both image fields of an
// existing product document.
func (s *ProductStore) SetImage(ctx context.Context, docID, imageURL string) error {
	docID = strings.TrimSpace(docID)
	if docID == "" {
		return fmt.Errorf("product document id is required")
	}

	_, err := s.col().Doc(docID).Set(ctx, map[string]any{
		"image":    imageURL,
		"imageUrl": imageURL,
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to update product image %s: %w", docID, err)
	}
	return nil
}

// Watch subscribes to full-collection snapshots. Every delivery replaces the
// previous one wholesale; there is no incremental merge. Snapshots keep
// flowing until ctx is cancelled or the stream fails, in which case onError
// fires once and the subscription ends (no automatic retry). The returned
// function stops the listener.
func (s *ProductStore) Watch(ctx context.Context, onSnapshot func([]catalog.Product), onError func(error)) func() {
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

			products := make([]catalog.Product, 0)
			for {
				snap, err := qs.Documents.Next()
				if err == iterator.Done {
					break
				}
				if err != nil {
					onError(err)
					return
				}
				if p := MapProductDocument(snap); p != nil {
					products = append(products, *p)
				}
			}

			onSnapshot(products)
		}
	}()

	return cancel
}

func productPayload(p catalog.Product) map[string]any {
	payload := map[string]any{
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price,
		"category":    p.Category,
		"bestSeller":  p.BestSeller,
		"image":       p.Image,
		"imageUrl":    p.ImageURL,
	}
	if p.ID != "" {
		payload["id"] = p.ID
	}
	return payload
}
