package request

import (
	"context"
)

type key int

const (
	senderKey key = iota
)

// WithSender context carrying the authenticated account address
func WithSender(ctx context.Context, address string) context.Context {
	return context.WithValue(ctx, senderKey, address)
}

// Sender authenticated account address
func Sender(ctx context.Context) (string, bool) {
	address, ok := ctx.Value(senderKey).(string)
	return address, ok && address != ""
}
