package domain

import (
	"fmt"
	"time"
)

// AppError is the base domain error type.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Cause   error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Cause }

// Standard domain error constructors.

func ErrUnauthorized(msg string) *AppError {
	return &AppError{Code: "UNAUTHORIZED", Message: msg, Status: 401}
}

func ErrValidation(msg string) *AppError {
	return &AppError{Code: "VALIDATION_ERROR", Message: msg, Status: 400}
}

func ErrConflict(msg string) *AppError {
	return &AppError{Code: "CONFLICT", Message: msg, Status: 409}
}

func ErrNotFound(entity, id string) *AppError {
	return &AppError{Code: "NOT_FOUND", Message: fmt.Sprintf("%s %s not found", entity, id), Status: 404}
}

func ErrInsufficientFunds() *AppError {
	return &AppError{Code: "INSUFFICIENT_FUNDS", Message: "insufficient funds", Status: 400}
}

func ErrGameAlreadyActive(kind GameKind) *AppError {
	return &AppError{
		Code:    "GAME_ALREADY_ACTIVE",
		Message: fmt.Sprintf("an active %s game already exists", kind),
		Status:  409,
	}
}

func ErrNoActiveGame(kind GameKind) *AppError {
	return &AppError{
		Code:    "NO_ACTIVE_GAME",
		Message: fmt.Sprintf("no active %s game found", kind),
		Status:  404,
	}
}

func ErrBetNotFound() *AppError {
	return &AppError{Code: "BET_NOT_FOUND", Message: "bet not found", Status: 404}
}

func ErrBonusNotAvailable(next time.Time) *AppError {
	return &AppError{
		Code:    "BONUS_NOT_AVAILABLE",
		Message: fmt.Sprintf("bonus not available until %s", next.UTC().Format(time.RFC3339)),
		Status:  403,
	}
}

func ErrInternal(msg string, cause error) *AppError {
	return &AppError{Code: "INTERNAL_ERROR", Message: msg, Status: 500, Cause: cause}
}
