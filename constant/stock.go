package constant

// StockReason classifies a stock ledger entry.
type StockReason string

const (
	StockReasonManual       StockReason = "manual"
	StockReasonOrder        StockReason = "order"
	StockReasonCancellation StockReason = "cancellation"
	StockReasonReturn       StockReason = "return"
	StockReasonCorrection   StockReason = "correction"
	StockReasonDamaged      StockReason = "damaged"
	StockReasonLost         StockReason = "lost"
)

func (r StockReason) Valid() bool {
	switch r {
	case StockReasonManual, StockReasonOrder, StockReasonCancellation,
		StockReasonReturn, StockReasonCorrection, StockReasonDamaged, StockReasonLost:
		return true
	}
	return false
}
