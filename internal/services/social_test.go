package services

import (
	"context"
	"errors"
	"testing"

	"github.com/senalmaq/storefront/internal/catalog"
)

type fakeSocialSource struct {
	social   catalog.Social
	getErr   error
	watchErr error
	saved    []catalog.Social
}

func (f *fakeSocialSource) Get(context.Context) (catalog.Social, error) {
	if f.getErr != nil {
		return catalog.Social{}, f.getErr
	}
	return f.social, nil
}

func (f *fakeSocialSource) Save(_ context.Context, social catalog.Social) (catalog.Social, error) {
	f.saved = append(f.saved, social)
	return social, nil
}

func (f *fakeSocialSource) Watch(_ context.Context, onSnapshot func(catalog.Social), onError func(error)) func() {
	if f.watchErr != nil {
		onError(f.watchErr)
	} else {
		onSnapshot(f.social)
	}
	return func() {}
}

func TestSocialServiceSubscriptionFailure(t *testing.T) {
	t.Parallel()

	storeErr := errors.New("permission denied")
	svc, err := NewSocialService(&fakeSocialSource{getErr: storeErr, watchErr: storeErr}, discardLogger())
	if err != nil {
		t.Fatalf("NewSocialService: %v", err)
	}
	svc.Start(context.Background())
	defer svc.Stop()

	social, errMsg := svc.Social()
	if errMsg != "No pudimos cargar la informacion social." {
		t.Errorf("Social() message = %q", errMsg)
	}

	defaults := catalog.DefaultSocial()
	if social.Instagram != defaults.Instagram || social.VideoID != defaults.VideoID {
		t.Errorf("Social() = %+v, want the built-in defaults", social)
	}
	if len(social.Shorts) != len(defaults.Shorts) {
		t.Errorf("Social().Shorts has %d entries, want %d", len(social.Shorts), len(defaults.Shorts))
	}
}

func TestSocialServiceMergesSnapshotWithDefaults(t *testing.T) {
	t.Parallel()

	svc, err := NewSocialService(&fakeSocialSource{
		social: catalog.Social{Instagram: "https://www.instagram.com/otracuenta"},
	}, discardLogger())
	if err != nil {
		t.Fatalf("NewSocialService: %v", err)
	}
	svc.Start(context.Background())
	defer svc.Stop()

	social, errMsg := svc.Social()
	if errMsg != "" {
		t.Errorf("Social() message = %q, want empty", errMsg)
	}
	if social.Instagram != "https://www.instagram.com/otracuenta" {
		t.Errorf("Instagram = %q, want the stored value", social.Instagram)
	}

	defaults := catalog.DefaultSocial()
	if social.YouTube != defaults.YouTube {
		t.Errorf("YouTube = %q, want default %q", social.YouTube, defaults.YouTube)
	}
	if social.VideoID != defaults.VideoID {
		t.Errorf("VideoID = %q, want default %q", social.VideoID, defaults.VideoID)
	}
}

func TestSocialServiceSavePassesThrough(t *testing.T) {
	t.Parallel()

	source := &fakeSocialSource{}
	svc, err := NewSocialService(source, discardLogger())
	if err != nil {
		t.Fatalf("NewSocialService: %v", err)
	}

	input := catalog.Social{TikTok: "https://www.tiktok.com/@otracuenta"}
	if _, err := svc.Save(context.Background(), input); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if len(source.saved) != 1 || source.saved[0].TikTok != input.TikTok {
		t.Errorf("saved = %+v, want one write with the given tiktok link", source.saved)
	}
}
