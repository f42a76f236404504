package repository

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"homeBakery/entities"
	"homeBakery/models"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type CatalogRepository interface {
	GetItemById(id int) (item entities.CatalogItem, exists bool)
	GetItems() []entities.CatalogItem
	GetDeliveryOption(id string) (opt entities.DeliveryOption, exists bool)
	GetDeliveryOptions() []entities.DeliveryOption
	DefaultDeliveryOption() entities.DeliveryOption
	GetReviews() []entities.Review
}

type CatalogFile struct {
	Items           []entities.CatalogItem    `yaml:"items"`
	DeliveryOptions []entities.DeliveryOption `yaml:"delivery_options"`
	Reviews         []entities.Review         `yaml:"reviews"`
}

type CatalogRepo struct {
	items      []entities.CatalogItem
	itemIdx    map[int]int
	options    []entities.DeliveryOption
	optionIdx  map[string]int
	defaultOpt int
	reviews    []entities.Review
}

// NewCatalogRepository checks the reference data once; a broken catalog is
// a deployment mistake and is reported before the server starts.
func NewCatalogRepository(file CatalogFile) (CatalogRepository, error) {
	c := &CatalogRepo{
		itemIdx:    make(map[int]int, len(file.Items)),
		optionIdx:  make(map[string]int, len(file.DeliveryOptions)),
		defaultOpt: -1,
		reviews:    append([]entities.Review(nil), file.Reviews...),
	}
	if len(file.Items) == 0 {
		return nil, errors.New("catalog has no items")
	}
	for _, it := range file.Items {
		if _, dup := c.itemIdx[it.Id]; dup {
			return nil, fmt.Errorf("duplicate catalog item id %d", it.Id)
		}
		if it.UnitPrice < 0 {
			return nil, fmt.Errorf("catalog item %d has negative price", it.Id)
		}
		if it.UnitPrice > models.MaxAmount {
			return nil, fmt.Errorf("catalog item %d price exceeds %d", it.Id, models.MaxAmount)
		}
		c.itemIdx[it.Id] = len(c.items)
		c.items = append(c.items, it)
	}
	for _, o := range file.DeliveryOptions {
		if _, dup := c.optionIdx[o.Id]; dup {
			return nil, fmt.Errorf("duplicate delivery option id %q", o.Id)
		}
		if o.Surcharge < 0 {
			return nil, fmt.Errorf("delivery option %q has negative surcharge", o.Id)
		}
		if o.Surcharge > models.MaxAmount {
			return nil, fmt.Errorf("delivery option %q surcharge exceeds %d", o.Id, models.MaxAmount)
		}
		if o.Surcharge == 0 {
			if c.defaultOpt >= 0 {
				return nil, fmt.Errorf("delivery options %q and %q are both free", c.options[c.defaultOpt].Id, o.Id)
			}
			c.defaultOpt = len(c.options)
		}
		c.optionIdx[o.Id] = len(c.options)
		c.options = append(c.options, o)
	}
	if c.defaultOpt < 0 {
		return nil, errors.New("catalog needs exactly one free delivery option")
	}
	return c, nil
}

func ParseCatalog(data []byte) (CatalogRepository, error) {
	var file CatalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return NewCatalogRepository(file)
}

// LoadCatalog reads path, or the built-in bakery catalog when path is empty.
func LoadCatalog(path string) (CatalogRepository, error) {
	if path == "" {
		return ParseCatalog(defaultCatalog)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseCatalog(data)
}

func (c *CatalogRepo) GetItemById(id int) (item entities.CatalogItem, exists bool) {
	i, ok := c.itemIdx[id]
	if !ok {
		return
	}
	return c.items[i], true
}

func (c *CatalogRepo) GetItems() []entities.CatalogItem {
	return append([]entities.CatalogItem{}, c.items...)
}

func (c *CatalogRepo) GetDeliveryOption(id string) (opt entities.DeliveryOption, exists bool) {
	i, ok := c.optionIdx[id]
	if !ok {
		return
	}
	return c.options[i], true
}

func (c *CatalogRepo) GetDeliveryOptions() []entities.DeliveryOption {
	return append([]entities.DeliveryOption{}, c.options...)
}

func (c *CatalogRepo) DefaultDeliveryOption() entities.DeliveryOption {
	return c.options[c.defaultOpt]
}

func (c *CatalogRepo) GetReviews() []entities.Review {
	return append([]entities.Review{}, c.reviews...)
}
