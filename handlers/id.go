package handlers

import (
	"net/http"

	"github.com/biblo/backend/middleware"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// pathID returns the ObjectID the route's RequireObjectID gate already
// parsed and attached to the context. On a route without the gate it yields
// the nil id, which no stored document carries, so lookups answer 404.
func pathID(r *http.Request) primitive.ObjectID {
	id, _ := middleware.ObjectIDFromContext(r.Context())
	return id
}
