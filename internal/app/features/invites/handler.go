// internal/app/features/invites/handler.go
package invites

import (
	"context"

	"github.com/mytripteam/mytrip/internal/app/system/mailer"
	"github.com/mytripteam/mytrip/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// InviteStore is the slice of the invitation store this feature needs.
type InviteStore interface {
	Create(ctx context.Context, inv models.Invitation) (models.Invitation, error)
	ListByGuest(ctx context.Context, guestID, status string) ([]models.Invitation, error)
	GetByID(ctx context.Context, guestID string, id primitive.ObjectID) (models.Invitation, error)
	UpdateStatus(ctx context.Context, guestID string, id primitive.ObjectID, status string) error
	MirrorUpdateStatus(ctx context.Context, ownerID string, viagemID primitive.ObjectID, guestID, status string) (bool, error)
	RevokeAll(ctx context.Context, ownerID string, viagemID primitive.ObjectID, guestID string) (bool, error)
	ListMirrors(ctx context.Context, ownerID string, viagemID primitive.ObjectID) ([]models.InvitationMirror, error)
}

// TravelerGetter resolves traveler accounts by e-mail.
type TravelerGetter interface {
	GetByEmail(ctx context.Context, email string) (models.Traveler, error)
}

// TripGetter loads trip records for existence and ownership checks.
type TripGetter interface {
	Get(ctx context.Context, ownerID string, id primitive.ObjectID) (models.Trip, error)
}

// MailSender dispatches outbound e-mail, best-effort.
type MailSender interface {
	Send(e mailer.Email) error
}

// Handler is the feature-level handler for trip invitations: creating,
// listing, responding and revoking.
type Handler struct {
	Invites   InviteStore
	Travelers TravelerGetter
	Trips     TripGetter
	Mail      MailSender // nil disables outbound e-mail
	Log       *zap.Logger

	SiteName string
}

func NewHandler(invites InviteStore, travelers TravelerGetter, trips TripGetter, mail MailSender, siteName string, logger *zap.Logger) *Handler {
	return &Handler{
		Invites:   invites,
		Travelers: travelers,
		Trips:     trips,
		Mail:      mail,
		Log:       logger,
		SiteName:  siteName,
	}
}
