// internal/app/features/trips/handler.go
package trips

import (
	"context"

	tripstore "github.com/mytripteam/mytrip/internal/app/store/trips"
	"github.com/mytripteam/mytrip/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// TripStore is the slice of the trip store this feature needs.
type TripStore interface {
	Create(ctx context.Context, t models.Trip) (models.Trip, error)
	Get(ctx context.Context, ownerID string, id primitive.ObjectID) (models.Trip, error)
	List(ctx context.Context, ownerID string) ([]models.Trip, error)
	Update(ctx context.Context, ownerID string, id primitive.ObjectID, f tripstore.UpdateFields) error
	DeleteCascade(ctx context.Context, ownerID string, id primitive.ObjectID) error
}

// InviteReader answers access-control and shared-trip queries.
type InviteReader interface {
	HasAccepted(ctx context.Context, guestID, ownerID string, viagemID primitive.ObjectID) (bool, error)
	ListAcceptedByGuest(ctx context.Context, guestID string) ([]models.Invitation, error)
}

// Reconciler recomputes a trip's remaining balance after a budget change.
type Reconciler interface {
	Reconcile(ctx context.Context, ownerID string, tripID primitive.ObjectID) (float64, error)
}

// Handler is the feature-level handler for trips: creation, detail,
// editing, deletion and the profile listing.
type Handler struct {
	Trips      TripStore
	Invites    InviteReader
	Reconciler Reconciler
	Log        *zap.Logger
}

func NewHandler(trips TripStore, invites InviteReader, rec Reconciler, logger *zap.Logger) *Handler {
	return &Handler{
		Trips:      trips,
		Invites:    invites,
		Reconciler: rec,
		Log:        logger,
	}
}
