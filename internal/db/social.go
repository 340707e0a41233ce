package db

import (
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/senalmaq/storefront/internal/catalog"
)

// MapSocialDocument projects the social settings snapshot. Unlike the other
// mappers it never returns an absent value: missing documents yield the
// schema's empty record (callers merge in the static fallback).
func MapSocialDocument(snap *firestore.DocumentSnapshot) catalog.Social {
	if snap == nil || !snap.Exists() {
		return catalog.ApplySocialSchema(nil)
	}
	return catalog.ApplySocialSchema(snap.Data())
}

// SocialStore reads and writes the single settings/social document.
type SocialStore struct {
	client *firestore.Client
	logger *slog.Logger
}

func NewSocialStore(client *firestore.Client, logger *slog.Logger) (*SocialStore, error) {
	if client == nil {
		return nil, fmt.Errorf("social store: firestore client is required")
	}
	return &SocialStore{client: client, logger: logger}, nil
}

func (s *SocialStore) doc() *firestore.DocumentRef {
	return s.client.Collection(settingsCollection).Doc(socialDocID)
}

// Get returns the current social settings, schema-applied.
func (s *SocialStore) Get(ctx context.Context) (catalog.Social, error) {
	snap, err := s.doc().Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return catalog.ApplySocialSchema(nil), nil
		}
		return catalog.ApplySocialSchema(nil), fmt.Errorf("failed to read social settings: %w", err)
	}
	return MapSocialDocument(snap), nil
}

// Save merge-writes the schema-applied social settings and returns the
// payload that was persisted.
func (s *SocialStore) Save(ctx context.Context, social catalog.Social) (catalog.Social, error) {
	payload := social.Normalized()

	_, err := s.doc().Set(ctx, map[string]any{
		"instagram": payload.Instagram,
		"youtube":   payload.YouTube,
		"tiktok":    payload.TikTok,
		"videoId":   payload.VideoID,
		"shorts":    payload.Shorts,
	}, firestore.MergeAll)
	if err != nil {
		return payload, fmt.Errorf("failed to save social settings: %w", err)
	}

	return payload, nil
}

// Watch subscribes to the social settings document. Deliveries replace the
// previous value wholesale; on stream failure onError fires once and the
// subscription ends.
func (s *SocialStore) Watch(ctx context.Context, onSnapshot func(catalog.Social), onError func(error)) func() {
	ctx, cancel := context.WithCancel(ctx)

	go func() {
		snaps := s.doc().Snapshots(ctx)
		defer snaps.Stop()

		for {
			snap, err := snaps.Next()
			if err != nil {
				if status.Code(err) == codes.Canceled || ctx.Err() != nil {
					return
				}
				onError(err)
				return
			}

			onSnapshot(MapSocialDocument(snap))
		}
	}()

	return cancel
}
