package context

import (
	"context"
	"time"
)

const (
	ContextKeyCorrelationID ContextKey = "Correlation-Id"
	ContextKeyWallet        ContextKey = "Wallet-Address"

	DefaultHttpTimeout  = 30 * time.Second
	DefaultChainTimeout = 20 * time.Second
)

type ContextKey string

func NewContextWithTimeOut(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

func NewContext(correlationID string) context.Context {
	return context.WithValue(context.Background(), ContextKeyCorrelationID, correlationID)
}

func SetContextWithValue(ctx context.Context, key ContextKey, value string) context.Context {
	return context.WithValue(ctx, key, value)
}

func GetContextValue(ctx context.Context, key ContextKey) string {
	if ctx == nil {
		return ""
	}
	v := ctx.Value(key)
	if v != nil {
		if ret, ok := v.(string); ok {
			return ret
		}
	}
	return ""
}

// Wallet returns the connected wallet address carried by ctx, if any.
func Wallet(ctx context.Context) string {
	return GetContextValue(ctx, ContextKeyWallet)
}
