// internal/app/store/invites/invitestore.go
//
// Invitations are stored twice: the authoritative copy under the guest
// (collection convites_viagem, auto id) and a mirror keyed by
// (owner_id, viagem_id, guest_id) in convites_espelho. The guest copy
// answers "what am I invited to" and every access-control query; the
// mirror answers "who is invited to my trip". The dual write is not
// transactional: mirror writes are best-effort and their failures are
// logged, never surfaced, so the primary invitation record stays available
// even when secondary-index upkeep fails.
package invitestore

import (
	"context"
	"errors"
	"time"

	"github.com/mytripteam/mytrip/internal/app/system/indexes"
	"github.com/mytripteam/mytrip/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type Store struct {
	guest  *mongo.Collection // convites_viagem
	mirror *mongo.Collection // convites_espelho
	log    *zap.Logger
}

var ErrNotFound = errors.New("invitation not found")

func New(db *mongo.Database, logger *zap.Logger) *Store {
	return &Store{
		guest:  db.Collection("convites_viagem"),
		mirror: db.Collection("convites_espelho"),
		log:    logger,
	}
}

// Create writes the guest-side invitation and mirrors it on the owner
// side. Both copies carry identical timestamps. A mirror failure does not
// fail the invite.
func (s *Store) Create(ctx context.Context, inv models.Invitation) (models.Invitation, error) {
	now := time.Now().UTC()
	inv.ID = primitive.NewObjectID()
	inv.Status = models.ConvitePendente
	inv.CreatedAt = now
	inv.UpdatedAt = now

	if _, err := s.guest.InsertOne(ctx, inv); err != nil {
		return models.Invitation{}, err
	}

	m := models.InvitationMirror{
		OwnerID:   inv.OwnerID,
		ViagemID:  inv.ViagemID,
		GuestID:   inv.GuestID,
		Status:    models.ConvitePendente,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := s.mirror.UpdateOne(ctx,
		bson.M{"owner_id": m.OwnerID, "viagem_id": m.ViagemID, "guest_id": m.GuestID},
		bson.M{"$set": bson.M{"status": m.Status, "updated_at": m.UpdatedAt},
			"$setOnInsert": bson.M{"created_at": m.CreatedAt}},
		options.Update().SetUpsert(true))
	if err != nil {
		s.log.Warn("invitation mirror write failed",
			zap.String("owner_id", inv.OwnerID),
			zap.String("guest_id", inv.GuestID),
			zap.String("viagem_id", inv.ViagemID.Hex()),
			zap.Error(err))
	}

	return inv, nil
}

// ListByGuest returns the guest's invitations, optionally filtered by
// status. An empty status returns every invitation.
func (s *Store) ListByGuest(ctx context.Context, guestID, status string) ([]models.Invitation, error) {
	filter := bson.M{"guest_id": guestID}
	if status != "" {
		filter["status"] = status
	}

	cur, err := s.guest.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var convites []models.Invitation
	if err := cur.All(ctx, &convites); err != nil {
		return nil, err
	}
	return convites, nil
}

// GetByID fetches one of the guest's invitations.
func (s *Store) GetByID(ctx context.Context, guestID string, id primitive.ObjectID) (models.Invitation, error) {
	var inv models.Invitation
	err := s.guest.FindOne(ctx, bson.M{"_id": id, "guest_id": guestID}).Decode(&inv)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Invitation{}, ErrNotFound
		}
		return models.Invitation{}, err
	}
	return inv, nil
}

// UpdateStatus transitions a guest-side invitation.
func (s *Store) UpdateStatus(ctx context.Context, guestID string, id primitive.ObjectID, status string) error {
	res, err := s.guest.UpdateOne(ctx,
		bson.M{"_id": id, "guest_id": guestID},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// MirrorUpdateStatus transitions the owner-side mirror if it exists. A
// missing mirror is tolerated: the guest copy already holds the truth.
func (s *Store) MirrorUpdateStatus(ctx context.Context, ownerID string, viagemID primitive.ObjectID, guestID, status string) (bool, error) {
	res, err := s.mirror.UpdateOne(ctx,
		bson.M{"owner_id": ownerID, "viagem_id": viagemID, "guest_id": guestID},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// RevokeAll marks the mirror and every matching guest-side invitation as
// revoked. Duplicates are possible on the guest side, so this updates all
// of them. It reports true iff at least one guest-side record actually
// transitioned; revoking an already-revoked invitation is a no-op that
// reports false.
func (s *Store) RevokeAll(ctx context.Context, ownerID string, viagemID primitive.ObjectID, guestID string) (bool, error) {
	now := time.Now().UTC()

	if _, err := s.mirror.UpdateOne(ctx,
		bson.M{"owner_id": ownerID, "viagem_id": viagemID, "guest_id": guestID,
			"status": bson.M{"$ne": models.ConviteRevogado}},
		bson.M{"$set": bson.M{"status": models.ConviteRevogado, "updated_at": now}}); err != nil {
		s.log.Warn("invitation mirror revoke failed",
			zap.String("owner_id", ownerID),
			zap.String("guest_id", guestID),
			zap.Error(err))
	}

	res, err := s.guest.UpdateMany(ctx,
		bson.M{"guest_id": guestID, "owner_id": ownerID, "viagem_id": viagemID,
			"status": bson.M{"$ne": models.ConviteRevogado}},
		bson.M{"$set": bson.M{"status": models.ConviteRevogado, "updated_at": now}})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// ListMirrors returns the owner-side invitation records for a trip.
func (s *Store) ListMirrors(ctx context.Context, ownerID string, viagemID primitive.ObjectID) ([]models.InvitationMirror, error) {
	cur, err := s.mirror.Find(ctx,
		bson.M{"owner_id": ownerID, "viagem_id": viagemID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var mirrors []models.InvitationMirror
	if err := cur.All(ctx, &mirrors); err != nil {
		return nil, err
	}
	return mirrors, nil
}

// HasAccepted reports whether the guest holds an accepted invitation for
// the given trip.
func (s *Store) HasAccepted(ctx context.Context, guestID, ownerID string, viagemID primitive.ObjectID) (bool, error) {
	n, err := s.guest.CountDocuments(ctx, bson.M{
		"guest_id":  guestID,
		"owner_id":  ownerID,
		"viagem_id": viagemID,
		"status":    models.ConviteAceito,
	})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListAcceptedByGuest returns every accepted invitation for a guest,
// newest first. Used to resolve the shared-trips listing.
func (s *Store) ListAcceptedByGuest(ctx context.Context, guestID string) ([]models.Invitation, error) {
	return s.ListByGuest(ctx, guestID, models.ConviteAceito)
}

// EnsureIndexes reconciles indexes for both invitation collections.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	if err := indexes.Ensure(ctx, s.guest, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "guest_id", Value: 1}, {Key: "owner_id", Value: 1}, {Key: "viagem_id", Value: 1}},
			Options: options.Index().SetName("idx_convite_guest_trip"),
		},
		{
			Keys:    bson.D{{Key: "guest_id", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_convite_guest_status"),
		},
	}); err != nil {
		return err
	}

	return indexes.Ensure(ctx, s.mirror, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "owner_id", Value: 1}, {Key: "viagem_id", Value: 1}, {Key: "guest_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_espelho_trip_guest"),
		},
	})
}
