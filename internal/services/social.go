package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/senalmaq/storefront/internal/catalog"
)

const socialUnavailableMsg = "No pudimos cargar la informacion social."

// SocialSource is the slice of the settings store the social service
// consumes. *db.SocialStore satisfies it.
type SocialSource interface {
	Get(ctx context.Context) (catalog.Social, error)
	Save(ctx context.Context, social catalog.Social) (catalog.Social, error)
	Watch(ctx context.Context, onSnapshot func(catalog.Social), onError func(error)) func()
}

// SocialService projects the single settings/social document, merged with
// the built-in fallback so no field ever renders empty.
type SocialService struct {
	store  SocialSource
	logger *slog.Logger

	mu      sync.RWMutex
	current catalog.Social
	errMsg  string

	stop func()
}

func NewSocialService(store SocialSource, logger *slog.Logger) (*SocialService, error) {
	if store == nil {
		return nil, fmt.Errorf("social service: store is required")
	}
	return &SocialService{
		store:   store,
		logger:  logger,
		current: catalog.DefaultSocial(),
	}, nil
}

// Start seeds the projection with a one-shot read, then installs the
// settings watcher.
func (s *SocialService) Start(ctx context.Context) {
	if social, err := s.store.Get(ctx); err != nil {
		s.fail(err)
	} else {
		s.apply(social)
	}
	s.stop = s.store.Watch(ctx, s.apply, s.fail)
}

func (s *SocialService) apply(social catalog.Social) {
	merged := catalog.MergeSocial(social, catalog.DefaultSocial())
	s.mu.Lock()
	s.current = merged
	s.errMsg = ""
	s.mu.Unlock()
}

func (s *SocialService) fail(err error) {
	s.mu.Lock()
	s.current = catalog.DefaultSocial()
	s.errMsg = socialUnavailableMsg
	s.mu.Unlock()
	s.logger.Error("social subscription failed", "error", err)
}

// Stop releases the watcher.
func (s *SocialService) Stop() {
	if s.stop != nil {
		s.stop()
	}
}

// Social returns the current merged settings plus a display message when
// the subscription is in a failed state.
func (s *SocialService) Social() (catalog.Social, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.errMsg
}

// Save schema-applies and merge-writes the settings document. The local
// projection catches up through the watcher.
func (s *SocialService) Save(ctx context.Context, social catalog.Social) (catalog.Social, error) {
	saved, err := s.store.Save(ctx, social)
	if err != nil {
		return saved, err
	}
	s.logger.Info("social settings saved")
	return saved, nil
}
