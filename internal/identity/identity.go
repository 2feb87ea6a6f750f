package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/abhisek/flashquiz/internal/store"
)

// Storage keys for the signed-in user.
const (
	UserKey  = "user"
	TokenKey = "token"
)

// ErrNoToken is returned when no bearer token has been stored.
var ErrNoToken = errors.New("not signed in: no token stored")

// Resolver reads the signed-in user from device-local storage.
type Resolver struct {
	kv store.KV
}

// NewResolver creates a Resolver over kv.
func NewResolver(kv store.KV) *Resolver {
	return &Resolver{kv: kv}
}

// UserID returns the current user's identifier. It reads the stored user
// object's "id" or "user_id" field (string or number) and falls back to the
// "sub" claim of the stored token. A missing identity is not an error.
func (r *Resolver) UserID(ctx context.Context) (string, bool) {
	if raw, ok, err := r.kv.GetItem(ctx, UserKey); err == nil && ok {
		if id := userIDFromJSON(raw); id != "" {
			return id, true
		}
	}

	token, err := r.Token(ctx)
	if err != nil {
		return "", false
	}
	sub, err := SubjectFromToken(token)
	if err != nil || sub == "" {
		return "", false
	}
	return sub, true
}

// Token returns the stored bearer token.
func (r *Resolver) Token(ctx context.Context) (string, error) {
	token, ok, err := r.kv.GetItem(ctx, TokenKey)
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	token = strings.TrimSpace(token)
	if !ok || token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

// SignIn stores the token and user object. When userJSON is empty a user
// object is derived from the token's claims.
func (r *Resolver) SignIn(ctx context.Context, token, userJSON string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrNoToken
	}

	if userJSON == "" {
		u, err := UserFromToken(token)
		if err != nil {
			return err
		}
		b, err := json.Marshal(u)
		if err != nil {
			return fmt.Errorf("encode user: %w", err)
		}
		userJSON = string(b)
	} else if !gjson.Valid(userJSON) {
		return fmt.Errorf("user object is not valid JSON")
	}

	if err := r.kv.SetItem(ctx, TokenKey, token); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	if err := r.kv.SetItem(ctx, UserKey, userJSON); err != nil {
		return fmt.Errorf("store user: %w", err)
	}
	return nil
}

// SignOut forgets the stored token and user object.
func (r *Resolver) SignOut(ctx context.Context) error {
	if err := r.kv.RemoveItem(ctx, TokenKey); err != nil {
		return fmt.Errorf("remove token: %w", err)
	}
	if err := r.kv.RemoveItem(ctx, UserKey); err != nil {
		return fmt.Errorf("remove user: %w", err)
	}
	return nil
}

func userIDFromJSON(raw string) string {
	if !gjson.Valid(raw) {
		return ""
	}
	for _, path := range []string{"id", "user_id"} {
		v := gjson.Get(raw, path)
		if !v.Exists() || v.Type == gjson.Null {
			continue
		}
		if id := strings.TrimSpace(v.String()); id != "" {
			return id
		}
	}
	return ""
}
