// Package duckdb reads daily settlement bars from a duckdb database. The
// expected table layout is one row per instrument-day:
//
//	instrument VARCHAR, date DATE, pre_settle DOUBLE, open DOUBLE,
//	high DOUBLE, low DOUBLE, close DOUBLE, settle DOUBLE, volume DOUBLE,
//	start_date DATE, end_date DATE, level DOUBLE
package duckdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/solquant/solstice/pkg/common"
	"github.com/solquant/solstice/pkg/market"
	"github.com/solquant/solstice/pkg/utility/fixed"
)

type Reader struct {
	dataSourceName string
	table          string
	db             *sql.DB
}

func NewReader(dataSourceName, table string) *Reader {
	return &Reader{
		dataSourceName: dataSourceName,
		table:          table,
	}
}

func (r *Reader) Connect() error {
	db, err := sql.Open("duckdb", r.dataSourceName)
	if err != nil {
		return fmt.Errorf("unable to open duckdb source %q: %w", r.dataSourceName, err)
	}
	r.db = db
	return nil
}

func (r *Reader) Close() {
	_ = r.db.Close()
}

// DailyBar implements market.Gateway with one point query per instrument-day.
func (r *Reader) DailyBar(ctx context.Context, instrument string, date time.Time) (common.DailyBar, error) {
	query := fmt.Sprintf(`SELECT instrument, date, pre_settle, open, high, low, close, settle, volume, start_date, end_date, level
		FROM %s WHERE instrument = ? AND date = ?`, r.table)

	row := r.db.QueryRowContext(ctx, query, instrument, date)

	bar, err := scanBar(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return common.DailyBar{}, market.ErrNoData
	}
	if err != nil {
		return common.DailyBar{}, fmt.Errorf("error scanning row: %w", err)
	}
	return bar, nil
}

// LoadRange streams every bar in [from, to] into handler, ordered by date.
// Use it to preload a market.MemoryStore and avoid per-day queries.
func (r *Reader) LoadRange(ctx context.Context, from, to time.Time, handler func(bar common.DailyBar) error) error {
	query := fmt.Sprintf(`SELECT instrument, date, pre_settle, open, high, low, close, settle, volume, start_date, end_date, level
		FROM %s WHERE date BETWEEN ? AND ? ORDER BY date, instrument`, r.table)

	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return fmt.Errorf("error preparing query: %w", err)
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	for rows.Next() {
		bar, err := scanBar(rows.Scan)
		if err != nil {
			return fmt.Errorf("error scanning row: %w", err)
		}
		if err := handler(bar); err != nil {
			return fmt.Errorf("error processing bar: %w", err)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error scanning rows: %w", err)
	}
	return nil
}

func scanBar(scan func(dest ...any) error) (common.DailyBar, error) {
	var (
		bar                                        common.DailyBar
		preSettle, open, high, low, close_, settle float64
		volume, level                              float64
	)
	err := scan(&bar.Instrument, &bar.Date, &preSettle, &open, &high, &low, &close_, &settle,
		&volume, &bar.TradeStart, &bar.TradeEnd, &level)
	if err != nil {
		return common.DailyBar{}, err
	}

	bar.PrevSettle = fixed.FromFloat64(preSettle)
	bar.Open = fixed.FromFloat64(open)
	bar.High = fixed.FromFloat64(high)
	bar.Low = fixed.FromFloat64(low)
	bar.Close = fixed.FromFloat64(close_)
	bar.Settle = fixed.FromFloat64(settle)
	bar.Volume = fixed.FromFloat64(volume)
	bar.Level = fixed.FromFloat64(level)
	return bar, nil
}
