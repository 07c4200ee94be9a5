package core

// Trade is an executed fill. A positive amount is a buy, negative a sell.
type Trade struct {
	MTS    int64   `json:"mts"`
	Price  float64 `json:"price"`
	Amount float64 `json:"amount"`
}

// Buy reports whether the trade bought the base asset
func (t Trade) Buy() bool { return t.Amount > 0 }

// Order is a resting order drawn as a horizontal price level
type Order struct {
	Price  float64 `json:"price"`
	Amount float64 `json:"amount"`
}

// Buy reports whether the order bids for the base asset
func (o Order) Buy() bool { return o.Amount > 0 }

// Position is the open position on the charted market
type Position struct {
	BasePrice float64 `json:"basePrice"`
	Amount    float64 `json:"amount"`
}

// Long reports whether the position is long
func (p Position) Long() bool { return p.Amount > 0 }
