// internal/app/features/activities/handler.go
package activities

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	activitystore "github.com/mytripteam/mytrip/internal/app/store/activities"
	"github.com/mytripteam/mytrip/internal/app/system/respond"
	"github.com/mytripteam/mytrip/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ActivityStore is the slice of the activity store this feature needs.
type ActivityStore interface {
	Create(ctx context.Context, a models.Activity) (models.Activity, error)
	Get(ctx context.Context, ownerID string, viagemID, id primitive.ObjectID) (models.Activity, error)
	Update(ctx context.Context, ownerID string, viagemID, id primitive.ObjectID, f activitystore.UpdateFields) error
	Delete(ctx context.Context, ownerID string, viagemID, id primitive.ObjectID) (bool, error)
}

// TripGetter loads trip records; used for existence checks and the
// combined trip+activity read.
type TripGetter interface {
	Get(ctx context.Context, ownerID string, id primitive.ObjectID) (models.Trip, error)
}

// AccessChecker answers whether a guest holds an accepted invitation.
type AccessChecker interface {
	HasAccepted(ctx context.Context, guestID, ownerID string, viagemID primitive.ObjectID) (bool, error)
}

// Reconciler recomputes a trip's remaining balance after a mutation.
type Reconciler interface {
	Reconcile(ctx context.Context, ownerID string, tripID primitive.ObjectID) (float64, error)
}

// Handler is the feature-level handler for trip activities (expenses), on
// both the owner paths and the shared paths with an explicit owner segment.
type Handler struct {
	Activities ActivityStore
	Trips      TripGetter
	Invites    AccessChecker
	Reconciler Reconciler
	Log        *zap.Logger
}

func NewHandler(activities ActivityStore, trips TripGetter, invites AccessChecker, rec Reconciler, logger *zap.Logger) *Handler {
	return &Handler{
		Activities: activities,
		Trips:      trips,
		Invites:    invites,
		Reconciler: rec,
		Log:        logger,
	}
}

// objectID parses a URL parameter as an ObjectID, answering 404 with the
// given message on malformed input: ids are opaque to clients.
func objectID(w http.ResponseWriter, r *http.Request, param, notFoundMsg string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, param))
	if err != nil {
		respond.Erro(w, http.StatusNotFound, notFoundMsg)
		return primitive.NilObjectID, false
	}
	return id, true
}
