package apperror

// Code represents a unique error code for the application
type Code string

// General error codes
const (
	// General validation
	CodeInvalidInput    Code = "INVALID_INPUT"
	CodeInvalidState    Code = "INVALID_STATE"
	CodeNotFound        Code = "NOT_FOUND"
	CodeValidationError Code = "VALIDATION_ERROR"

	// Configuration
	CodeConfigurationError Code = "CONFIGURATION_ERROR"

	// External service errors
	CodeRateLimitExceeded Code = "RATE_LIMIT_EXCEEDED"

	// System errors
	CodeInternalError Code = "INTERNAL_ERROR"
	CodeUnknownError  Code = "UNKNOWN_ERROR"
)

// Trading-specific error codes
const (
	// Venue (RIT exchange) errors
	CodeVenueTimeout     Code = "VENUE_TIMEOUT"
	CodeVenueUnavailable Code = "VENUE_UNAVAILABLE"
	CodeVenueAPIError    Code = "VENUE_API_ERROR"
	CodeInvalidBook      Code = "INVALID_BOOK"
	CodeOrderRejected    Code = "ORDER_REJECTED"
	CodeTenderRejected   Code = "TENDER_REJECTED"
	CodeCaseNotActive    Code = "CASE_NOT_ACTIVE"

	// Hedging errors
	CodeHedgeExhausted Code = "HEDGE_EXHAUSTED"

	// Risk errors
	CodeLimitBreach Code = "LIMIT_BREACH"

	// Pricing errors
	CodeInsufficientDepth Code = "INSUFFICIENT_DEPTH"
	CodeStaleQuote        Code = "STALE_QUOTE"

	// Circuit breaker errors
	CodeCircuitOpen Code = "CIRCUIT_OPEN"
)
