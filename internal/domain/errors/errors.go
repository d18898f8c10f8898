package errors

import (
	"net/http"

	"walkr/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// Is matches errors by business code, so detail-enriched copies still
// compare equal to their predefined sentinel.
func (e *BaseError) Is(target error) bool {
	var other *BaseError
	if !errors.As(target, &other) {
		return false
	}

	return e.errorCode == other.errorCode
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Routing-related errors
	ErrNoRouteFound = NewBaseError(
		http.StatusNotFound,
		"NO_ROUTE_FOUND",
		"找不到可行路線",
		"",
	)

	ErrNoLoopFound = NewBaseError(
		http.StatusNotFound,
		"NO_LOOP_FOUND",
		"無法產生環狀路線",
		"",
	)

	ErrInvalidCoordinate = NewBaseError(
		http.StatusBadRequest,
		"INVALID_COORDINATE",
		"無效的座標",
		"",
	)

	ErrInvalidTargetDistance = NewBaseError(
		http.StatusBadRequest,
		"INVALID_TARGET_DISTANCE",
		"無效的目標距離",
		"",
	)

	// Geocoding-related errors
	ErrLocationNotFound = NewBaseError(
		http.StatusNotFound,
		"LOCATION_NOT_FOUND",
		"找不到該地點",
		"",
	)

	ErrGeocodeUnavailable = NewBaseError(
		http.StatusServiceUnavailable,
		"GEOCODE_UNAVAILABLE",
		"地理編碼服務暫時無法使用",
		"",
	)

	// Export-related errors
	ErrTrackExportFailed = NewBaseError(
		http.StatusInternalServerError,
		"TRACK_EXPORT_FAILED",
		"匯出 GPX 失敗",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"輸入資料驗證失敗",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"系統內部錯誤",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"找不到該資源",
		"",
	)
)
