package testkit

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"tablens/domain/table"
)

// ShoppingGeneratorConfig configures the order table generator
type ShoppingGeneratorConfig struct {
	OrderCount   int       `json:"order_count"`
	Categories   []string  `json:"categories"`
	Regions      []string  `json:"regions"`
	MissingRate  float64   `json:"missing_rate"`  // share of amount cells left null
	MalformRate  float64   `json:"malform_rate"`  // share of quantity cells replaced by junk text
	PositiveRate float64   `json:"positive_rate"` // share of reviews drawn from the positive pool
	NegativeRate float64   `json:"negative_rate"`
	StartDate    time.Time `json:"start_date"`
	Seed         int64     `json:"seed"`
}

// DefaultShoppingConfig returns sensible defaults for order table generation
func DefaultShoppingConfig() ShoppingGeneratorConfig {
	return ShoppingGeneratorConfig{
		OrderCount:   200,
		Categories:   []string{"Books", "Garden", "Toys", "Kitchen", "Sports"},
		Regions:      []string{"North", "South", "East", "West"},
		MissingRate:  0.05,
		MalformRate:  0.02,
		PositiveRate: 0.4,
		NegativeRate: 0.3,
		StartDate:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Seed:         42,
	}
}

var (
	positiveReviews = []string{
		"great product, would buy again",
		"excellent quality and fast delivery",
		"love the design, perfect fit",
		"质量很好 推荐 购买",
	}
	negativeReviews = []string{
		"terrible packaging, arrived broken",
		"awful support and bad service",
		"worst purchase this year",
		"质量很差 失望",
	}
	neutralReviews = []string{
		"arrived on tuesday",
		"package contained the manual",
		"ordered for my brother",
	}
)

// ShoppingHeaders is the column layout of generated order tables.
var ShoppingHeaders = []string{"order_id", "date", "category", "region", "quantity", "unit_price", "amount", "review"}

// ShoppingDataGenerator generates realistic e-commerce order tables
type ShoppingDataGenerator struct {
	config ShoppingGeneratorConfig
	rng    *rand.Rand
}

// NewShoppingDataGenerator creates a new order table generator
func NewShoppingDataGenerator(config ShoppingGeneratorConfig) *ShoppingDataGenerator {
	return &ShoppingDataGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// GenerateTable builds one table; the same seed always yields the same table.
func (g *ShoppingDataGenerator) GenerateTable() (*table.Table, error) {
	rows := make([][]table.Cell, 0, g.config.OrderCount)
	for i := 0; i < g.config.OrderCount; i++ {
		rows = append(rows, g.generateOrder(i))
	}
	return table.New(ShoppingHeaders, rows)
}

func (g *ShoppingDataGenerator) generateOrder(i int) []table.Cell {
	category := g.pick(g.config.Categories)
	region := g.pick(g.config.Regions)
	quantity := 1 + g.rng.Intn(5)
	price := math.Round((5+g.rng.Float64()*95)*100) / 100
	amount := math.Round(float64(quantity)*price*100) / 100
	day := g.config.StartDate.AddDate(0, 0, g.rng.Intn(90))

	quantityCell := table.Number(float64(quantity))
	if g.rng.Float64() < g.config.MalformRate {
		quantityCell = table.Text("n/a")
	}
	amountCell := table.Number(amount)
	if g.rng.Float64() < g.config.MissingRate {
		amountCell = table.Null()
	}

	return []table.Cell{
		table.Text(fmt.Sprintf("ORD-%05d", i+1)),
		table.Text(day.Format("2006-01-02")),
		table.Text(category),
		table.Text(region),
		quantityCell,
		table.Number(price),
		amountCell,
		table.Text(g.review()),
	}
}

func (g *ShoppingDataGenerator) review() string {
	roll := g.rng.Float64()
	switch {
	case roll < g.config.PositiveRate:
		return g.pick(positiveReviews)
	case roll < g.config.PositiveRate+g.config.NegativeRate:
		return g.pick(negativeReviews)
	default:
		return g.pick(neutralReviews)
	}
}

func (g *ShoppingDataGenerator) pick(options []string) string {
	if len(options) == 0 {
		return ""
	}
	return options[g.rng.Intn(len(options))]
}
