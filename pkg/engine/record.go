package engine

import "github.com/solquant/solstice/pkg/common"

// Record is the append only trade log. Every fill the ledger books, open
// or close, lands here in chronological order.
type Record struct {
	rows []common.TradeRecord
}

func NewRecord() *Record {
	return &Record{}
}

func (r *Record) append(row common.TradeRecord) {
	r.rows = append(r.rows, row)
}

func (r *Record) Len() int {
	return len(r.rows)
}

// Rows returns a copy of the log, oldest entry first.
func (r *Record) Rows() []common.TradeRecord {
	out := make([]common.TradeRecord, len(r.rows))
	copy(out, r.rows)
	return out
}
