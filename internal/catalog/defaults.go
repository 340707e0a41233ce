package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

type defaultsFile struct {
	Social struct {
		Instagram string   `yaml:"instagram"`
		YouTube   string   `yaml:"youtube"`
		TikTok    string   `yaml:"tiktok"`
		VideoID   string   `yaml:"video_id"`
		Shorts    []string `yaml:"shorts"`
	} `yaml:"social"`
	Categories []struct {
		Name string `yaml:"name"`
		Icon string `yaml:"icon"`
	} `yaml:"categories"`
}

var (
	defaultsOnce   sync.Once
	defaultsParsed defaultsFile
)

func loadDefaults() defaultsFile {
	defaultsOnce.Do(func() {
		if err := yaml.Unmarshal(defaultsYAML, &defaultsParsed); err != nil {
			// The seed ships inside the binary; failing to parse it is a
			// build defect, not a runtime condition.
			panic(fmt.Sprintf("catalog: invalid embedded defaults: %v", err))
		}
	})
	return defaultsParsed
}

// DefaultCategories returns the built-in category seed shown when the
// backing store has no category documents or its subscription fails.
func DefaultCategories() []Category {
	seed := loadDefaults().Categories
	categories := make([]Category, 0, len(seed))
	for _, entry := range seed {
		categories = append(categories, Category{
			Name: entry.Name,
			Icon: NormalizeIcon(entry.Icon),
		})
	}
	return categories
}

// DefaultSocial returns the built-in social links used when the social
// settings document is absent, errored or partially empty.
func DefaultSocial() Social {
	seed := loadDefaults().Social
	return Social{
		Instagram: seed.Instagram,
		YouTube:   seed.YouTube,
		TikTok:    seed.TikTok,
		VideoID:   seed.VideoID,
		Shorts:    append([]string{}, seed.Shorts...),
	}
}
