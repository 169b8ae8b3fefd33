package auth

import "context"

// SystemActor kimlik yokken audit kayıtlarında kullanılan aktör
const SystemActor = "SYSTEM"

// Identity doğrulanmış istek sahibinin bilgileri
type Identity struct {
	Username string
	Role     string
	Email    string
}

type identityKey struct{}

// WithIdentity kimliği context'e ekler
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom context'teki kimliği döner
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	if !ok || id.Username == "" {
		return Identity{}, false
	}
	return id, true
}

// ActorFrom audit için aktör adı, kimlik yoksa SYSTEM
func ActorFrom(ctx context.Context) string {
	if id, ok := IdentityFrom(ctx); ok {
		return id.Username
	}
	return SystemActor
}
