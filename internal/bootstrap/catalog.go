package bootstrap

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/osse101/RestoLoyalty_Go/internal/domain"
	"github.com/osse101/RestoLoyalty_Go/internal/repository"
)

//go:embed default_catalog.yaml
var defaultCatalogYAML []byte

// Catalog is the YAML shape of a quest and shop item seed file
type Catalog struct {
	Quests []CatalogQuest `yaml:"quests"`
	Items  []CatalogItem  `yaml:"items"`
}

type CatalogQuest struct {
	Title            string `yaml:"title"`
	Description      string `yaml:"description"`
	RewardType       string `yaml:"reward_type"`
	RewardAmount     int64  `yaml:"reward_amount"`
	RequiredProgress int    `yaml:"required_progress"`
	Inactive         bool   `yaml:"inactive"`
}

type CatalogItem struct {
	Name     string         `yaml:"name"`
	Type     string         `yaml:"type"`
	Price    int64          `yaml:"price"`
	Inactive bool           `yaml:"inactive"`
	Metadata map[string]any `yaml:"metadata"`
}

// LoadCatalog reads a seed file, or the embedded default when path is empty
func LoadCatalog(path string) (*Catalog, error) {
	data := defaultCatalogYAML
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadCatalog, err)
		}
	}

	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadCatalog, err)
	}
	for i, q := range c.Quests {
		if !domain.RewardType(q.RewardType).Valid() {
			return nil, fmt.Errorf("%s: quest %d: unknown reward_type %q", ErrMsgFailedLoadCatalog, i, q.RewardType)
		}
	}
	return &c, nil
}

// SeedCatalog inserts the catalog's quests and items into empty tables.
// Non-empty tables are left untouched.
func SeedCatalog(ctx context.Context, repo repository.Loyalty, c *Catalog) error {
	quests, err := repo.ListQuests(ctx, false)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedSeedCatalog, err)
	}
	if len(quests) == 0 {
		for _, cq := range c.Quests {
			q := domain.Quest{
				Title:            cq.Title,
				Description:      cq.Description,
				RewardType:       domain.RewardType(cq.RewardType),
				RewardAmount:     cq.RewardAmount,
				RequiredProgress: cq.RequiredProgress,
				Active:           !cq.Inactive,
			}
			if err := repo.CreateQuest(ctx, &q); err != nil {
				return fmt.Errorf("%s: %w", ErrMsgFailedSeedCatalog, err)
			}
		}
	}

	items, err := repo.ListShopItems(ctx, false)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedSeedCatalog, err)
	}
	if len(items) == 0 {
		for _, ci := range c.Items {
			it := domain.ShopItem{Name: ci.Name, Type: ci.Type, Price: ci.Price, Active: !ci.Inactive}
			if len(ci.Metadata) > 0 {
				if it.Metadata, err = json.Marshal(ci.Metadata); err != nil {
					return fmt.Errorf("%s: %w", ErrMsgFailedSeedCatalog, err)
				}
			}
			if err := repo.CreateShopItem(ctx, &it); err != nil {
				return fmt.Errorf("%s: %w", ErrMsgFailedSeedCatalog, err)
			}
		}
	}
	return nil
}
