package catalog

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"sweetshop-service/internal/entity"
)

const (
	// ReferenceHeightCm is the container height the base sweet weights and
	// prices are measured against. Other heights scale linearly.
	ReferenceHeightCm = 17.0

	// MinFillPercent gates adding a custom box to the cart.
	MinFillPercent = 85.0
)

// Catalog holds the full product catalog: sweets for the box builder,
// containers, à-la-carte items and the selectable weights.
type Catalog struct {
	sweets     []entity.Sweet
	containers []entity.Container
	items      []entity.AlaCarteItem
	weights    []entity.WeightOption

	sweetByID     map[string]entity.Sweet
	containerByID map[string]entity.Container
	itemByID      map[string]entity.AlaCarteItem
	weightByID    map[string]entity.WeightOption
}

type sweetYAML struct {
	ID          string  `yaml:"id"`
	NameAr      string  `yaml:"name_ar"`
	WidthCm     float64 `yaml:"width_cm"`
	WeightGrams int     `yaml:"weight_grams"`
	Price       float64 `yaml:"price"`
	Separator   bool    `yaml:"separator"`
}

type containerYAML struct {
	ID        string  `yaml:"id"`
	Kind      string  `yaml:"kind"`
	NameAr    string  `yaml:"name_ar"`
	NameEn    string  `yaml:"name_en"`
	HeightCm  float64 `yaml:"height_cm"`
	WidthCm   float64 `yaml:"width_cm"`
	BasePrice float64 `yaml:"base_price"`
}

type itemYAML struct {
	ID            string  `yaml:"id"`
	NameAr        string  `yaml:"name_ar"`
	Category      string  `yaml:"category"`
	PricePerKg    float64 `yaml:"price_per_kg"`
	FixedWeightKg float64 `yaml:"fixed_weight_kg"`
	FixedPrice    float64 `yaml:"fixed_price"`
}

type weightYAML struct {
	ID       string  `yaml:"id"`
	NameAr   string  `yaml:"name_ar"`
	WeightKg float64 `yaml:"weight_kg"`
}

type catalogYAML struct {
	Sweets     []sweetYAML     `yaml:"sweets"`
	Containers []containerYAML `yaml:"containers"`
	Items      []itemYAML      `yaml:"items"`
	Weights    []weightYAML    `yaml:"weights"`
}

// Load reads the catalog from a YAML file. An empty path returns the
// compiled-in default catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var doc catalogYAML
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	c := build(doc)
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func build(doc catalogYAML) *Catalog {
	c := &Catalog{
		sweetByID:     make(map[string]entity.Sweet),
		containerByID: make(map[string]entity.Container),
		itemByID:      make(map[string]entity.AlaCarteItem),
		weightByID:    make(map[string]entity.WeightOption),
	}

	for _, s := range doc.Sweets {
		sweet := entity.Sweet{
			ID:          s.ID,
			NameAr:      s.NameAr,
			WidthCm:     s.WidthCm,
			WeightGrams: s.WeightGrams,
			Price:       decimal.NewFromFloat(s.Price),
			Separator:   s.Separator,
		}
		c.sweets = append(c.sweets, sweet)
		c.sweetByID[sweet.ID] = sweet
	}
	for _, ct := range doc.Containers {
		container := entity.Container{
			ID:        ct.ID,
			Kind:      entity.ContainerKind(ct.Kind),
			NameAr:    ct.NameAr,
			NameEn:    ct.NameEn,
			HeightCm:  ct.HeightCm,
			WidthCm:   ct.WidthCm,
			BasePrice: decimal.NewFromFloat(ct.BasePrice),
		}
		c.containers = append(c.containers, container)
		c.containerByID[container.ID] = container
	}
	for _, it := range doc.Items {
		item := entity.AlaCarteItem{
			ID:            it.ID,
			NameAr:        it.NameAr,
			Category:      entity.ItemCategory(it.Category),
			PricePerKg:    decimal.NewFromFloat(it.PricePerKg),
			FixedWeightKg: it.FixedWeightKg,
			FixedPrice:    decimal.NewFromFloat(it.FixedPrice),
		}
		c.items = append(c.items, item)
		c.itemByID[item.ID] = item
	}
	for _, w := range doc.Weights {
		weight := entity.WeightOption{ID: w.ID, NameAr: w.NameAr, WeightKg: w.WeightKg}
		c.weights = append(c.weights, weight)
		c.weightByID[weight.ID] = weight
	}

	return c
}

func (c *Catalog) validate() error {
	for _, s := range c.sweets {
		if s.ID == "" {
			return fmt.Errorf("catalog: sweet with empty id")
		}
		if s.WidthCm <= 0 {
			return fmt.Errorf("catalog: sweet %q has non-positive width", s.ID)
		}
		if s.WeightGrams < 0 {
			return fmt.Errorf("catalog: sweet %q has negative weight", s.ID)
		}
		if s.Price.IsNegative() {
			return fmt.Errorf("catalog: sweet %q has negative price", s.ID)
		}
	}
	for _, ct := range c.containers {
		if ct.Kind != entity.ContainerBox && ct.Kind != entity.ContainerTray {
			return fmt.Errorf("catalog: container %q has unknown kind %q", ct.ID, ct.Kind)
		}
		if ct.WidthCm <= 0 || ct.HeightCm <= 0 {
			return fmt.Errorf("catalog: container %q has non-positive dimensions", ct.ID)
		}
	}
	for _, it := range c.items {
		switch it.Category {
		case entity.CategoryDaily, entity.CategoryDry, entity.CategoryGiftBox:
		default:
			return fmt.Errorf("catalog: item %q has unknown category %q", it.ID, it.Category)
		}
		if !it.Fixed() && !it.PricePerKg.IsPositive() {
			return fmt.Errorf("catalog: item %q has neither fixed price nor price per kg", it.ID)
		}
	}
	return nil
}

// Sweets returns the unscaled base catalog.
func (c *Catalog) Sweets() []entity.Sweet { return c.sweets }

// Containers lists all orderable containers.
func (c *Catalog) Containers() []entity.Container { return c.containers }

// Items lists all à-la-carte items.
func (c *Catalog) Items() []entity.AlaCarteItem { return c.items }

// WeightOptions lists the selectable weights for weight-priced items.
func (c *Catalog) WeightOptions() []entity.WeightOption { return c.weights }

// Sweet looks up a base sweet by id.
func (c *Catalog) Sweet(id string) (entity.Sweet, bool) {
	s, ok := c.sweetByID[id]
	return s, ok
}

// Container looks up a container by id.
func (c *Catalog) Container(id string) (entity.Container, bool) {
	ct, ok := c.containerByID[id]
	return ct, ok
}

// Item looks up an à-la-carte item by id.
func (c *Catalog) Item(id string) (entity.AlaCarteItem, bool) {
	it, ok := c.itemByID[id]
	return it, ok
}

// WeightOption looks up a weight option by id.
func (c *Catalog) WeightOption(id string) (entity.WeightOption, bool) {
	w, ok := c.weightByID[id]
	return w, ok
}

// ItemsByCategory filters the à-la-carte catalog, preserving order.
func (c *Catalog) ItemsByCategory(cat entity.ItemCategory) []entity.AlaCarteItem {
	var out []entity.AlaCarteItem
	for _, it := range c.items {
		if it.Category == cat {
			out = append(out, it)
		}
	}
	return out
}

// SweetsFor returns the pick list for one container: every sweet scaled to
// the container height, with separators excluded for trays.
func (c *Catalog) SweetsFor(container entity.Container) []entity.Sweet {
	var out []entity.Sweet
	for _, s := range c.sweets {
		if s.Separator && container.Kind != entity.ContainerBox {
			continue
		}
		out = append(out, ScaleSweet(s, container.HeightCm))
	}
	return out
}

// ScaleSweet adjusts a base sweet's weight and price to a container height
// by linear ratio against the reference height. Weight rounds to whole
// grams, price to two decimals; width is a physical dimension and does not
// scale.
func ScaleSweet(s entity.Sweet, containerHeightCm float64) entity.Sweet {
	ratio := decimal.NewFromFloat(containerHeightCm).Div(decimal.NewFromFloat(ReferenceHeightCm))

	scaled := s
	scaled.WeightGrams = int(decimal.NewFromInt(int64(s.WeightGrams)).Mul(ratio).Round(0).IntPart())
	scaled.Price = s.Price.Mul(ratio).Round(2)
	return scaled
}
