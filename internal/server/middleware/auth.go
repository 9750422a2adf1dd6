// Package middleware contains HTTP middleware for the washplane API.
package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"washplane/internal/auth"
	"washplane/internal/store"
	"washplane/pkg/api"
)

// businessKey is the context key for the authenticated business.
type businessKey struct{}

// APIKeyAuth resolves the business from the Authorization header.
// Every downstream operation must be scoped by the business ID.
func APIKeyAuth(businesses store.BusinessStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				unauthorized(w, "Missing authorization header")
				return
			}

			parts := strings.Split(header, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				unauthorized(w, "Invalid authorization header")
				return
			}

			business, err := businesses.GetBusinessByAPIKeyHash(r.Context(), auth.HashKey(parts[1]))
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					unauthorized(w, "Invalid API key")
					return
				}
				http.Error(w, "Internal error", http.StatusInternalServerError)
				return
			}

			recordBusiness(r.Context(), business)
			ctx := NewContextWithBusiness(r.Context(), business)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(api.ErrorResponse{Error: message, Code: "401"})
}

// NewContextWithBusiness returns a new context carrying the business.
func NewContextWithBusiness(ctx context.Context, business *store.Business) context.Context {
	return context.WithValue(ctx, businessKey{}, business)
}

// BusinessFromContext extracts the authenticated business from the context.
func BusinessFromContext(ctx context.Context) (*store.Business, bool) {
	business, ok := ctx.Value(businessKey{}).(*store.Business)
	return business, ok
}
