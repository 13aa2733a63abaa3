package usecase

// Error kinds surfaced to the HTTP layer. Everything an operation can fail
// with is either a DomainError (the caller did something the system refuses)
// or a TechnicalError (the infrastructure failed underneath us).

const (
	CodeForbidden       = "FORBIDDEN"
	CodeValidationError = "VALIDATION_ERROR"
	CodeConflict        = "CONFLICT"
	CodeNotFound        = "NOT_FOUND"
	CodeDatabaseError   = "DATABASE_ERROR"
)

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}

func forbidden(message string) *DomainError {
	return &DomainError{Code: CodeForbidden, Message: message}
}

func notFound(message string) *DomainError {
	return &DomainError{Code: CodeNotFound, Message: message}
}

func conflict(message string) *DomainError {
	return &DomainError{Code: CodeConflict, Message: message}
}

func invalid(errs []ValidationError) *DomainError {
	msg := "validation failed: "
	for i, e := range errs {
		if i > 0 {
			msg += ", "
		}
		msg += e.Field + " (" + e.Message + ")"
	}
	return &DomainError{Code: CodeValidationError, Message: msg}
}

func databaseError(context string, err error) *TechnicalError {
	return &TechnicalError{Code: CodeDatabaseError, Message: context + ": " + err.Error()}
}
