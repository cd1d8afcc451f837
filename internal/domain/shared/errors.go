package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
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

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrTenantNotFound      = NewDomainError("TENANT_NOT_FOUND", "Tenant not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrFeatureDenied       = NewDomainError("FEATURE_DENIED", "Feature not available for current plan")
	ErrQuotaExceeded       = NewDomainError("QUOTA_EXCEEDED", "Request quota exceeded")
	ErrStorageUnavailable  = NewDomainError("STORAGE_UNAVAILABLE", "Storage backend unavailable")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
)
