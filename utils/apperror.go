package utils

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures surfaced to API callers.
type ErrorKind string

const (
	KindUnauthenticated    ErrorKind = "UNAUTHENTICATED"
	KindNotFound           ErrorKind = "NOT_FOUND"
	KindInvalidInput       ErrorKind = "INVALID_INPUT"
	KindInvalidOperation   ErrorKind = "INVALID_OPERATION"
	KindConflict           ErrorKind = "CONFLICT"
	KindPreconditionFailed ErrorKind = "PRECONDITION_FAILED"
	KindUpstreamFailure    ErrorKind = "UPSTREAM_FAILURE"
	KindStoreFailure       ErrorKind = "STORE_FAILURE"
	KindInternal           ErrorKind = "INTERNAL"
)

// AppError is the single error shape resolvers hand back to GraphQL.
// Partial marks a booking whose payment was captured but whose records were
// not fully written.
type AppError struct {
	Kind     ErrorKind
	Message  string
	Err      error
	Partial  bool
	ChargeID string
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// Extensions is picked up by graphql-go and rendered under "extensions".
func (e *AppError) Extensions() map[string]interface{} {
	ext := map[string]interface{}{"code": string(e.Kind)}
	if e.Partial {
		ext["partial"] = true
		if e.ChargeID != "" {
			ext["chargeId"] = e.ChargeID
		}
	}
	return ext
}

func NewAppError(kind ErrorKind, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

func Unauthenticated(message string) *AppError {
	return &AppError{Kind: KindUnauthenticated, Message: message}
}

func NotFound(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

func InvalidInput(message string) *AppError {
	return &AppError{Kind: KindInvalidInput, Message: message}
}

func InvalidOperation(message string) *AppError {
	return &AppError{Kind: KindInvalidOperation, Message: message}
}

func Upstream(message string, err error) *AppError {
	return &AppError{Kind: KindUpstreamFailure, Message: message, Err: err}
}

func StoreFailure(message string, err error) *AppError {
	return &AppError{Kind: KindStoreFailure, Message: message, Err: err}
}

// CheckPage rejects a negative limit or page. Zero means unlimited or the
// first page.
func CheckPage(limit, page int64) *AppError {
	if limit < 0 {
		return InvalidInput("limit must not be negative")
	}
	if page < 0 {
		return InvalidInput("page must not be negative")
	}
	return nil
}

// KindOf reports the kind of the first AppError in err's chain, or
// KindInternal when there is none.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}
