package response

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"tokentrip-marketplace/apperr"
	"tokentrip-marketplace/logger"
)

type ErrorResponse struct {
	StatusCode  int    `json:"-"`
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	Status      string `json:"status"`
	Description string `json:"description,omitempty"`
}

func (r ErrorResponse) Error() string {
	return fmt.Sprintf("StatusCode: %d, Success: %t, Message: %s, Status: %s, Description: %s", r.StatusCode, r.Success, r.Message, r.Status, r.Description)
}

func (r ErrorResponse) Send(ctx context.Context, w http.ResponseWriter) {
	logger.Errorf(ctx, r.Error())
	w.WriteHeader(r.StatusCode)
	json.NewEncoder(w).Encode(r)
}

// FromError maps the error taxonomy onto a response. Anything outside it is
// reported as SomethingWrong.
func FromError(err error) ErrorResponse {
	var (
		e  ErrorResponse
		v  *apperr.ValidationError
		f  *apperr.InsufficientFunds
		se *apperr.SubmissionError
	)
	switch {
	case errors.As(err, &e):
		return e
	case errors.As(err, &f):
		return InsufficientFunds(f.Error())
	case errors.As(err, &v):
		return InvalidData(v.Error())
	case errors.As(err, &se):
		return SubmissionFailed(se.Message)
	case errors.Is(err, apperr.ErrPending):
		return Pending()
	case errors.Is(err, apperr.ErrNotFound):
		return ResourceNotFound("Requested Resource Not Found", err.Error())
	}
	return SomethingWrong()
}

func BadRequest(message, description string) ErrorResponse {
	return ErrorResponse{
		StatusCode:  http.StatusBadRequest,
		Success:     false,
		Message:     message,
		Status:      "BAD REQUEST",
		Description: description,
	}
}

func ResourceNotFound(message, description string) ErrorResponse {
	return ErrorResponse{
		StatusCode:  http.StatusNotFound,
		Success:     false,
		Message:     message,
		Status:      "NOT FOUND",
		Description: description,
	}
}

func WalletRequired() ErrorResponse {
	return ErrorResponse{
		StatusCode: http.StatusUnauthorized,
		Success:    false,
		Message:    "Connect a wallet to continue",
		Status:     "WALLET_REQUIRED",
	}
}

func Forbidden() ErrorResponse {
	return ErrorResponse{
		StatusCode: http.StatusForbidden,
		Success:    false,
		Message:    "This action is restricted to the marketplace admin",
		Status:     "FORBIDDEN",
	}
}

func SomethingWrong() ErrorResponse {
	return ErrorResponse{
		StatusCode: http.StatusInternalServerError,
		Success:    false,
		Message:    "Sorry, Something went wrong",
		Status:     "SOMETHING_WRONG",
	}
}

func InvalidData(description string) ErrorResponse {
	return ErrorResponse{
		StatusCode:  http.StatusBadRequest,
		Success:     false,
		Message:     "Invalid data passed",
		Status:      "INVALID_DATA",
		Description: description,
	}
}

func InsufficientFunds(description string) ErrorResponse {
	return ErrorResponse{
		StatusCode:  http.StatusBadRequest,
		Success:     false,
		Message:     "Insufficient funds",
		Status:      "INSUFFICIENT_FUNDS",
		Description: description,
	}
}

// SubmissionFailed carries the signer's message unchanged.
func SubmissionFailed(message string) ErrorResponse {
	return ErrorResponse{
		StatusCode: http.StatusBadGateway,
		Success:    false,
		Message:    message,
		Status:     "SUBMISSION_FAILED",
	}
}

func Pending() ErrorResponse {
	return ErrorResponse{
		StatusCode: http.StatusConflict,
		Success:    false,
		Message:    "A transaction for this action is already pending",
		Status:     "SUBMISSION_PENDING",
	}
}
