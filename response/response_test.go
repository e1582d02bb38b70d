package response

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tokentrip-marketplace/apperr"
)

func TestFromError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   int
		status string
	}{
		{"validation", apperr.Invalid("rating", "must be between 1 and 5"), http.StatusBadRequest, "INVALID_DATA"},
		{"amount", fmt.Errorf("purchase: %w", apperr.InvalidAmount("price", "not a number")), http.StatusBadRequest, "INVALID_DATA"},
		{"funds", &apperr.InsufficientFunds{CoinType: "TKT", Required: 2}, http.StatusBadRequest, "INSUFFICIENT_FUNDS"},
		{"submission", &apperr.SubmissionError{Message: "MoveAbort in 2"}, http.StatusBadGateway, "SUBMISSION_FAILED"},
		{"pending", apperr.ErrPending, http.StatusConflict, "SUBMISSION_PENDING"},
		{"absent", fmt.Errorf("load: %w", apperr.NotFound("listing", "0x1")), http.StatusNotFound, "NOT FOUND"},
		{"other", errors.New("dial tcp: refused"), http.StatusInternalServerError, "SOMETHING_WRONG"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := FromError(tt.err)
			assert.Equal(t, tt.code, r.StatusCode)
			assert.Equal(t, tt.status, r.Status)
			assert.False(t, r.Success)
		})
	}
}

func TestSubmissionMessageVerbatim(t *testing.T) {
	r := FromError(fmt.Errorf("submit: %w", &apperr.SubmissionError{Message: "User rejected the request"}))
	assert.Equal(t, "User rejected the request", r.Message)
}

func TestSend(t *testing.T) {
	w := httptest.NewRecorder()
	InvalidData("price: must be positive").Send(context.Background(), w)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "INVALID_DATA", body["status"])
	assert.Equal(t, "price: must be positive", body["description"])
}
