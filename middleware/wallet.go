package middleware

import (
	"net/http"

	"tokentrip-marketplace/codec"
	c "tokentrip-marketplace/context"
	"tokentrip-marketplace/response"
)

// SetWallet carries the connected wallet from the Wallet-Address header into
// the request context, normalized to its 32-byte form. A missing header means
// no wallet is connected.
func SetWallet(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(string(c.ContextKeyWallet))
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}
		addr, err := codec.NormalizeAddress(raw)
		if err != nil {
			response.InvalidData("malformed Wallet-Address header").Send(r.Context(), w)
			return
		}
		next.ServeHTTP(w, r.WithContext(c.SetContextWithValue(r.Context(), c.ContextKeyWallet, addr)))
	})
}

func SetContentTypeHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}
