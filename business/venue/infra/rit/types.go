package rit

// Wire types for the RIT REST API. The venue returns JSON numbers for
// prices and positions; positions can be fractional for currencies.

type caseResponse struct {
	Tick   int    `json:"tick"`
	Status string `json:"status"`
}

type bookLevel struct {
	Price    float64 `json:"price"`
	Quantity float64 `json:"quantity"`
}

type bookResponse struct {
	Bids []bookLevel `json:"bids"`
	Asks []bookLevel `json:"asks"`
}

type securityResponse struct {
	Ticker   string  `json:"ticker"`
	Position float64 `json:"position"`
	Bid      float64 `json:"bid"`
	Ask      float64 `json:"ask"`
}

type tenderResponse struct {
	TenderID int64   `json:"tender_id"`
	Action   string  `json:"action"`
	Price    float64 `json:"price"`
	Quantity float64 `json:"quantity"`
}

type orderResponse struct {
	OrderID int64  `json:"order_id"`
	Status  string `json:"status"`
}
