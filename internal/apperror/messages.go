package apperror

// messages maps error codes to human-readable messages
var messages = map[Code]string{
	// General validation
	CodeInvalidInput:    "Invalid input provided",
	CodeInvalidState:    "Invalid state for this operation",
	CodeNotFound:        "Resource not found",
	CodeValidationError: "Validation error",

	// Configuration
	CodeConfigurationError: "Configuration error",

	// External service errors
	CodeRateLimitExceeded: "Rate limit exceeded",

	// System errors
	CodeInternalError: "Internal error",
	CodeUnknownError:  "An unknown error occurred",

	// Venue errors
	CodeVenueTimeout:     "Venue request timed out",
	CodeVenueUnavailable: "Venue temporarily unavailable",
	CodeVenueAPIError:    "Venue API error",
	CodeInvalidBook:      "Invalid order book data",
	CodeOrderRejected:    "Order rejected by venue",
	CodeTenderRejected:   "Tender acceptance rejected by venue",
	CodeCaseNotActive:    "Case is not active",

	// Hedging errors
	CodeHedgeExhausted: "Hedge retries exhausted, position unhedged",

	// Risk errors
	CodeLimitBreach: "Order would breach exposure limits",

	// Pricing errors
	CodeInsufficientDepth: "Insufficient book depth for requested quantity",
	CodeStaleQuote:        "Quote data is stale",

	// Circuit breaker errors
	CodeCircuitOpen: "Circuit breaker is open",
}
