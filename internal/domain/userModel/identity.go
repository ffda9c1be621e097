package userModel

import (
	"context"

	"github.com/akolanti/DocChatAPI/internal/domain/fileModel"
)

// Identity is the authenticated caller as resolved at the transport
// boundary. Credential verification itself happens upstream; this core only
// consumes the result.
type Identity struct {
	UserId string
	Plan   fileModel.SubscriptionPlan
}

type identityKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}
