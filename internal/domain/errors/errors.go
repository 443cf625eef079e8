package errors

import (
	"net/http"

	"github.com/guesssays/med-platform/internal/errors"
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

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Is matches any BaseError carrying the same error code, so that copies made by
// WithDetails still satisfy errors.Is against the predefined value.
func (e *BaseError) Is(target error) bool {
	other, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.errorCode == other.errorCode
}

// Predefined error types
var (
	// Authentication errors. Every credential failure collapses into one of these.
	ErrUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHORIZED",
		"Could not validate credentials",
		"",
	)

	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Incorrect email or password",
		"",
	)

	ErrCurrentPasswordInvalid = NewBaseError(
		http.StatusUnauthorized,
		"CURRENT_PASSWORD_INVALID",
		"Current password invalid",
		"",
	)

	ErrInactiveUser = NewBaseError(
		http.StatusUnauthorized,
		"INACTIVE_USER",
		"Inactive user",
		"",
	)

	ErrRefreshTokenInvalid = NewBaseError(
		http.StatusUnauthorized,
		"REFRESH_TOKEN_INVALID",
		"Refresh token is invalid or expired",
		"",
	)

	// Token shape errors
	ErrInvalidToken = NewBaseError(
		http.StatusBadRequest,
		"INVALID_TOKEN",
		"Invalid token",
		"",
	)

	ErrInvalidTokenType = NewBaseError(
		http.StatusBadRequest,
		"INVALID_TOKEN_TYPE",
		"Invalid token type",
		"",
	)

	ErrInvalidTokenPayload = NewBaseError(
		http.StatusBadRequest,
		"INVALID_TOKEN_PAYLOAD",
		"Invalid token payload",
		"",
	)

	ErrResetTokenInvalid = NewBaseError(
		http.StatusBadRequest,
		"RESET_TOKEN_INVALID",
		"Reset token expired or invalid",
		"",
	)

	ErrRefreshTokenRequired = NewBaseError(
		http.StatusBadRequest,
		"REFRESH_TOKEN_REQUIRED",
		"refresh_token required for all_sessions logout",
		"",
	)

	// User-related errors
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"User not found",
		"",
	)

	ErrUserAlreadyExists = NewBaseError(
		http.StatusConflict,
		"USER_ALREADY_EXISTS",
		"User already exists",
		"",
	)

	ErrUnknownRole = NewBaseError(
		http.StatusBadRequest,
		"UNKNOWN_ROLE",
		"Unknown role",
		"",
	)

	ErrPasswordHashFailed = NewBaseError(
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"Password processing failed",
		"",
	)

	ErrPasswordStrength = NewBaseError(
		http.StatusBadRequest,
		"PASSWORD_STRENGTH",
		"Password does not meet strength requirements",
		"",
	)

	// Session errors
	ErrSessionNotFound = NewBaseError(
		http.StatusNotFound,
		"SESSION_NOT_FOUND",
		"Session not found",
		"",
	)

	// Clinic and profile errors
	ErrClinicNotFound = NewBaseError(
		http.StatusNotFound,
		"CLINIC_NOT_FOUND",
		"Clinic not found",
		"",
	)

	ErrClinicAlreadyExists = NewBaseError(
		http.StatusConflict,
		"CLINIC_ALREADY_EXISTS",
		"Clinic already exists",
		"",
	)

	ErrDoctorNotFound = NewBaseError(
		http.StatusNotFound,
		"DOCTOR_NOT_FOUND",
		"Doctor not found",
		"",
	)

	ErrPatientNotFound = NewBaseError(
		http.StatusNotFound,
		"PATIENT_NOT_FOUND",
		"Patient profile not found",
		"",
	)

	// Appointment errors
	ErrAppointmentNotFound = NewBaseError(
		http.StatusNotFound,
		"APPOINTMENT_NOT_FOUND",
		"Appointment not found",
		"",
	)

	ErrAppointmentConflict = NewBaseError(
		http.StatusConflict,
		"APPOINTMENT_CONFLICT",
		"Doctor already has an appointment in this time slot",
		"",
	)

	ErrInvalidTimeRange = NewBaseError(
		http.StatusBadRequest,
		"INVALID_TIME_RANGE",
		"ends_at must be after starts_at and in the future",
		"",
	)

	// Content errors
	ErrContentNotFound = NewBaseError(
		http.StatusNotFound,
		"CONTENT_NOT_FOUND",
		"Content not found",
		"",
	)

	ErrMediaNotFound = NewBaseError(
		http.StatusNotFound,
		"MEDIA_NOT_FOUND",
		"Media not found",
		"",
	)

	ErrMediaTooLarge = NewBaseError(
		http.StatusRequestEntityTooLarge,
		"MEDIA_TOO_LARGE",
		"Media exceeds the maximum allowed size",
		"",
	)

	// Subscription errors
	ErrSubscriptionNotFound = NewBaseError(
		http.StatusNotFound,
		"SUBSCRIPTION_NOT_FOUND",
		"Subscription not found",
		"",
	)

	ErrInvalidQRCode = NewBaseError(
		http.StatusBadRequest,
		"INVALID_QR_CODE",
		"Invalid QR code data",
		"",
	)

	// Payment errors
	ErrPaymentNotFound = NewBaseError(
		http.StatusNotFound,
		"PAYMENT_NOT_FOUND",
		"Payment not found",
		"",
	)

	ErrInvalidAmount = NewBaseError(
		http.StatusBadRequest,
		"INVALID_AMOUNT",
		"Amount must be a positive decimal with at most two fraction digits",
		"",
	)

	ErrInvalidPaymentStatus = NewBaseError(
		http.StatusBadRequest,
		"INVALID_PAYMENT_STATUS",
		"Invalid payment status",
		"",
	)

	// Validation-related errors
	ErrInvalidInput = NewBaseError(
		http.StatusBadRequest,
		"INVALID_INPUT",
		"Request body could not be parsed",
		"",
	)

	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	// Transaction-related errors
	ErrTransactionFailed = NewBaseError(
		http.StatusInternalServerError,
		"TRANSACTION_FAILED",
		"Database transaction failed",
		"",
	)

	ErrTooManyRequests = NewBaseError(
		http.StatusTooManyRequests,
		"TOO_MANY_REQUESTS",
		"Too many requests, please try again later",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Not enough permissions",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found",
		"",
	)

	ErrConflict = NewBaseError(
		http.StatusConflict,
		"CONFLICT",
		"Resource conflict",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// Unwrap exposes the driver error to errors.Is / errors.As.
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
