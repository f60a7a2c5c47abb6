package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TenderOffer is an institutional block offer on the composite.
// Side is the side WE would take: SideBuy means the counterparty sells
// the block to us at Price, SideSell means they buy it from us.
type TenderOffer struct {
	ID       int64
	Side     Side
	Price    decimal.Decimal // per share, USD
	Quantity int64
}

func (t TenderOffer) String() string {
	return fmt.Sprintf("tender %d: %s %d RITC @ %s USD", t.ID, t.Side, t.Quantity, t.Price)
}

// CaseStatus is the venue session state.
type CaseStatus string

const (
	StatusActive  CaseStatus = "ACTIVE"
	StatusPaused  CaseStatus = "PAUSED"
	StatusStopped CaseStatus = "STOPPED"
)

// CaseState is the venue clock snapshot.
type CaseState struct {
	Tick   int
	Status CaseStatus
}
