// Package synthetic generates geometric-brownian daily bars, used by the
// example strategy and tests when no recorded data is available.
package synthetic

import (
	"math"
	"math/rand"
	"time"

	"github.com/solquant/solstice/pkg/common"
	"github.com/solquant/solstice/pkg/market"
	"github.com/solquant/solstice/pkg/utility/fixed"
)

type BarGenerator struct {
	instrument string
	rng        *rand.Rand

	mu    float64
	sigma float64

	tradeStart time.Time
	tradeEnd   time.Time

	lastSettle float64
	current    time.Time
}

func NewBarGenerator(instrument string, rng *rand.Rand, start, end time.Time, startPrice, mu, sigma float64) *BarGenerator {
	return &BarGenerator{
		instrument: instrument,
		rng:        rng,
		mu:         mu,
		sigma:      sigma,
		tradeStart: start,
		tradeEnd:   end,
		lastSettle: startPrice,
		current:    start,
	}
}

// Next returns the bar for the generator's current date and advances one
// calendar day. The second return is false once the trading window is done.
func (g *BarGenerator) Next() (common.DailyBar, bool) {
	if g.current.After(g.tradeEnd) {
		return common.DailyBar{}, false
	}

	drift := (g.mu - 0.5*g.sigma*g.sigma) / 252
	shock := g.sigma * math.Sqrt(1.0/252) * g.rng.NormFloat64()

	open := g.lastSettle * math.Exp(drift+shock/2)
	settle := g.lastSettle * math.Exp(drift+shock)
	high := math.Max(open, settle) * (1 + 0.25*g.sigma*math.Abs(g.rng.NormFloat64())/math.Sqrt(252))
	low := math.Min(open, settle) * (1 - 0.25*g.sigma*math.Abs(g.rng.NormFloat64())/math.Sqrt(252))

	bar := common.DailyBar{
		Instrument: g.instrument,
		Date:       g.current,
		Open:       fixed.FromFloat64(round4(open)),
		High:       fixed.FromFloat64(round4(high)),
		Low:        fixed.FromFloat64(round4(low)),
		Close:      fixed.FromFloat64(round4(settle)),
		Settle:     fixed.FromFloat64(round4(settle)),
		PrevSettle: fixed.FromFloat64(round4(g.lastSettle)),
		Volume:     fixed.FromInt64(100+int64(g.rng.Intn(900)), 0),
		TradeStart: g.tradeStart,
		TradeEnd:   g.tradeEnd,
	}

	g.lastSettle = settle
	g.current = g.current.AddDate(0, 0, 1)
	return bar, true
}

// Fill generates the whole trading window into the store.
func (g *BarGenerator) Fill(store *market.MemoryStore) {
	for {
		bar, ok := g.Next()
		if !ok {
			return
		}
		store.Add(bar)
	}
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
