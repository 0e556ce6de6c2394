package market

import (
	"context"
	"time"

	"github.com/solquant/solstice/pkg/common"
)

// MemoryStore is a Gateway backed by a plain map. It serves preloaded or
// generated bars and is the store the duckdb and historical loaders fill.
type MemoryStore struct {
	bars map[string]map[string]common.DailyBar
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		bars: make(map[string]map[string]common.DailyBar),
	}
}

func (s *MemoryStore) Add(bar common.DailyBar) {
	byDate, ok := s.bars[bar.Instrument]
	if !ok {
		byDate = make(map[string]common.DailyBar)
		s.bars[bar.Instrument] = byDate
	}
	byDate[DayKey(bar.Date)] = bar
}

func (s *MemoryStore) DailyBar(_ context.Context, instrument string, date time.Time) (common.DailyBar, error) {
	byDate, ok := s.bars[instrument]
	if !ok {
		return common.DailyBar{}, ErrNoData
	}
	bar, ok := byDate[DayKey(date)]
	if !ok {
		return common.DailyBar{}, ErrNoData
	}
	return bar, nil
}

func (s *MemoryStore) Len() int {
	n := 0
	for _, byDate := range s.bars {
		n += len(byDate)
	}
	return n
}
