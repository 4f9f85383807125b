package constants

// Campus API error kinds
// Every remote failure is folded into one of these machine-checkable codes
// so callers can branch on kind without parsing messages.

const (
	ErrCodeValidation  = "VALIDATION_ERROR"
	ErrCodeDuplicate   = "DUPLICATE_RESOURCE"
	ErrCodeNotFound    = "RESOURCE_NOT_FOUND"
	ErrCodeRateLimited = "RATE_LIMITED"
	ErrCodeServer      = "SERVER_ERROR"
	ErrCodeNetwork     = "NETWORK_ERROR"
	ErrCodeInvalidKey  = "INVALID_API_KEY"
)

// Session/commit errors surfaced by the mutation coordinator
const (
	ErrCodeSessionMissing   = "SESSION_NOT_CREATED"
	ErrCodeCommitInFlight   = "COMMIT_IN_FLIGHT"
	ErrCodeSessionReadOnly  = "SESSION_READ_ONLY"
	ErrCodeNothingToCommit  = "NOTHING_TO_COMMIT"
	ErrCodeStaleFetch       = "STALE_FETCH_DISCARDED"
	ErrCodeInsufficientFund = "INSUFFICIENT_BALANCE"
)

// Error Messages
// Human-readable messages corresponding to error codes

var ErrorMessages = map[string]string{
	ErrCodeValidation:  "The request failed validation",
	ErrCodeDuplicate:   "The resource already exists",
	ErrCodeNotFound:    "The requested resource was not found",
	ErrCodeRateLimited: "Rate limit exceeded. Please try again later",
	ErrCodeServer:      "The campus API returned an unexpected error",
	ErrCodeNetwork:     "Unable to reach the campus API. Please check your connection",
	ErrCodeInvalidKey:  "The campus API key is invalid or has been revoked",

	ErrCodeSessionMissing:   "No attendance session exists for this date yet",
	ErrCodeCommitInFlight:   "A commit is already in progress",
	ErrCodeSessionReadOnly:  "Historical sessions cannot be edited",
	ErrCodeNothingToCommit:  "There are no pending changes to commit",
	ErrCodeStaleFetch:       "A newer request superseded this fetch",
	ErrCodeInsufficientFund: "The wallet balance is not sufficient for this redemption",
}

// GetErrorMessage returns the human-readable message for an error code
func GetErrorMessage(code string) string {
	if msg, ok := ErrorMessages[code]; ok {
		return msg
	}
	return "An unknown error occurred"
}
