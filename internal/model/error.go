package model

// ErrorResponse represents a standardised error payload from the backend.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Standard error codes for the failure taxonomy
const (
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeRequestFailed = "REQUEST_FAILED"
	ErrCodeNetwork       = "NETWORK_ERROR"
	ErrCodeNotFound      = "NOT_FOUND"
)

// DomainError carries a stable code alongside a user-facing message.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a validation error for bad local input.
// Validation errors are never sent to the backend.
func NewValidationError(message string) *DomainError {
	return NewDomainError(ErrCodeValidation, message)
}

// NewRequestFailed wraps a non-2xx backend response.
func NewRequestFailed(message string) *DomainError {
	return NewDomainError(ErrCodeRequestFailed, message)
}

// NewNetworkError wraps a transport-level failure. For UI purposes it is
// treated the same as a failed request.
func NewNetworkError(message string) *DomainError {
	return NewDomainError(ErrCodeNetwork, message)
}

// Common domain errors
var (
	ErrInvalidQuantity = NewValidationError("Quantity must be a positive multiple of 0.25 servings")
	ErrUnknownServing  = NewValidationError("Serving does not belong to the selected food")
	ErrIncompleteEntry = NewValidationError("Food, serving and quantity are all required")
	ErrEmptySetName    = NewValidationError("Food set name must not be empty")
	ErrEmptySet        = NewValidationError("Food set must contain at least one entry")
	ErrInvalidDate     = NewValidationError("Date must be in YYYY-MM-DD format")
	ErrFoodSetNotFound = NewDomainError(ErrCodeNotFound, "Food set no longer exists")
	ErrFoodNotFound    = NewDomainError(ErrCodeNotFound, "Food not found in catalog")
	ErrNoCredential    = NewValidationError("No credential in session")
)

// ErrorCode extracts the taxonomy code from err, or empty if err is not
// a DomainError.
func ErrorCode(err error) string {
	if de, ok := err.(*DomainError); ok {
		return de.Code
	}
	return ""
}

// IsValidation reports whether err is a local-input validation failure.
func IsValidation(err error) bool {
	return ErrorCode(err) == ErrCodeValidation
}

// IsNotFound reports whether err means the referenced resource is gone.
func IsNotFound(err error) bool {
	return ErrorCode(err) == ErrCodeNotFound
}
