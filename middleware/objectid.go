package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/biblo/backend/respond"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const objectIDKey contextKey = "objectID"

// RequireObjectID rejects requests whose path parameter is not a valid
// ObjectID before it reaches a handler, so a driver error never leaks as a
// 500. The parsed id is attached to the request context; handlers read it
// through ObjectIDFromContext instead of parsing the parameter again.
func RequireObjectID(param string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := chi.URLParam(r, param)
			id, err := primitive.ObjectIDFromHex(raw)
			if err != nil {
				respond.Error(w, http.StatusBadRequest, fmt.Sprintf("Bad Request - %s is not a valid Id", raw))
				return
			}
			ctx := context.WithValue(r.Context(), objectIDKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func ObjectIDFromContext(ctx context.Context) (primitive.ObjectID, bool) {
	id, ok := ctx.Value(objectIDKey).(primitive.ObjectID)
	return id, ok
}
