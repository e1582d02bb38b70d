package middleware

import (
	"net/http"

	"github.com/google/uuid"

	c "tokentrip-marketplace/context"
	"tokentrip-marketplace/logger"
)

func SetCorrelationIDHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		correlationID := r.Header.Get("Correlation-Id")
		ctx := c.SetContextWithValue(r.Context(), c.ContextKeyCorrelationID, correlationID)
		if len(correlationID) == 0 {
			correlationID = uuid.NewString()
			ctx = c.SetContextWithValue(ctx, c.ContextKeyCorrelationID, correlationID)
			logger.Debugf(ctx, "No correlation id provided. Generated a new one")
			r.Header.Set("Correlation-Id", correlationID)
		}
		w.Header().Set("Correlation-Id", correlationID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
