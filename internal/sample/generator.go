package sample

import (
	"math"
	"math/rand"
	"time"
)

// Trade is one row of the synthetic trade dataset.
type Trade struct {
	ID         int32   `parquet:"id"`
	Symbol     string  `parquet:"symbol"`
	Price      float64 `parquet:"price"`
	Quantity   int64   `parquet:"quantity"`
	Side       string  `parquet:"side"`
	VenueID    uint8   `parquet:"venue_id"`
	TradedAtMs int64   `parquet:"traded_at_ms"`
}

var symbols = []string{"600000", "600519", "601318", "000001", "000858", "300750"}

type Generator struct {
	rnd      *rand.Rand
	sequence int32
	start    time.Time
}

func NewGenerator(seed int64) *Generator {
	return &Generator{
		rnd:   rand.New(rand.NewSource(seed)),
		start: time.Date(2023, time.November, 8, 9, 30, 0, 0, time.UTC),
	}
}

// Next returns the next trade. IDs start at 1 and increase by one.
func (g *Generator) Next() Trade {
	g.sequence++
	return Trade{
		ID:         g.sequence,
		Symbol:     pickOne(g.rnd, symbols),
		Price:      round2(5 + g.rnd.Float64()*195),
		Quantity:   int64(g.rnd.Intn(100)+1) * 100,
		Side:       g.pickSide(),
		VenueID:    uint8(g.rnd.Intn(4) + 1),
		TradedAtMs: g.start.Add(time.Duration(g.sequence) * 250 * time.Millisecond).UnixMilli(),
	}
}

func (g *Generator) Take(n int) []Trade {
	if n < 0 {
		n = 0
	}
	trades := make([]Trade, 0, n)
	for i := 0; i < n; i++ {
		trades = append(trades, g.Next())
	}
	return trades
}

func (g *Generator) pickSide() string {
	if g.rnd.Intn(2) == 0 {
		return "buy"
	}
	return "sell"
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

func pickOne(r *rand.Rand, values []string) string {
	return values[r.Intn(len(values))]
}
