// internal/app/store/trips/tripstore.go
package tripstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/mytripteam/mytrip/internal/app/system/indexes"
	"github.com/mytripteam/mytrip/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store persists trip documents. Trips are always addressed by the pair
// (owner_id, trip id); the owner segment mirrors the original document
// hierarchy where trips lived under their traveler.
type Store struct {
	c          *mongo.Collection
	atividades *mongo.Collection
}

var ErrNotFound = errors.New("trip not found")

func New(db *mongo.Database) *Store {
	return &Store{
		c:          db.Collection("viagens"),
		atividades: db.Collection("atividades"),
	}
}

// Create inserts a new trip. The remaining balance starts equal to the
// total budget; from then on only reconciliation writes it.
func (s *Store) Create(ctx context.Context, t models.Trip) (models.Trip, error) {
	now := time.Now().UTC()
	t.ID = primitive.NewObjectID()
	t.DestinoCI = text.Fold(t.Destino)
	t.ValorRestante = t.ValorTotal
	t.CreatedAt = now
	t.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, t); err != nil {
		return models.Trip{}, err
	}
	return t, nil
}

// Get fetches a trip and eagerly loads its activities, ordered by creation
// time, into Trip.Atividades.
func (s *Store) Get(ctx context.Context, ownerID string, id primitive.ObjectID) (models.Trip, error) {
	var t models.Trip
	err := s.c.FindOne(ctx, bson.M{"_id": id, "owner_id": ownerID}).Decode(&t)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Trip{}, ErrNotFound
		}
		return models.Trip{}, err
	}

	cur, err := s.atividades.Find(ctx,
		bson.M{"owner_id": ownerID, "viagem_id": id},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return models.Trip{}, fmt.Errorf("load activities: %w", err)
	}
	defer cur.Close(ctx)
	if err := cur.All(ctx, &t.Atividades); err != nil {
		return models.Trip{}, fmt.Errorf("decode activities: %w", err)
	}
	if t.Atividades == nil {
		t.Atividades = []models.Activity{}
	}
	return t, nil
}

// List returns all trips owned by the given traveler, sorted by folded
// destination name. Activities are not loaded.
func (s *Store) List(ctx context.Context, ownerID string) ([]models.Trip, error) {
	cur, err := s.c.Find(ctx,
		bson.M{"owner_id": ownerID},
		options.Find().SetSort(bson.D{{Key: "destino_ci", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var trips []models.Trip
	if err := cur.All(ctx, &trips); err != nil {
		return nil, err
	}
	return trips, nil
}

// UpdateFields holds the mutable trip fields; nil pointers are left alone.
type UpdateFields struct {
	Destino    *string
	ValorTotal *float64
}

// Update merges the given fields into the trip document. It never touches
// valor_restante: callers must reconcile afterwards when the budget changed.
func (s *Store) Update(ctx context.Context, ownerID string, id primitive.ObjectID, f UpdateFields) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if f.Destino != nil {
		set["destino"] = *f.Destino
		set["destino_ci"] = text.Fold(*f.Destino)
	}
	if f.ValorTotal != nil {
		set["valor_total"] = *f.ValorTotal
	}

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id, "owner_id": ownerID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateRestante persists a reconciled remaining balance. Only the
// reconciliation engine calls this.
func (s *Store) UpdateRestante(ctx context.Context, ownerID string, id primitive.ObjectID, valor float64) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "owner_id": ownerID},
		bson.M{"$set": bson.M{"valor_restante": valor, "updated_at": time.Now().UTC()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCascade removes every activity of the trip, then the trip document
// itself. The two steps are not atomic: if the second fails the trip
// remains, minus its activities, and the caller sees the error.
func (s *Store) DeleteCascade(ctx context.Context, ownerID string, id primitive.ObjectID) error {
	if _, err := s.atividades.DeleteMany(ctx, bson.M{"owner_id": ownerID, "viagem_id": id}); err != nil {
		return fmt.Errorf("delete activities: %w", err)
	}
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id, "owner_id": ownerID})
	if err != nil {
		return fmt.Errorf("delete trip: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// EnsureIndexes reconciles indexes for the viagens collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	return indexes.Ensure(ctx, s.c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "owner_id", Value: 1}, {Key: "destino_ci", Value: 1}},
			Options: options.Index().SetName("idx_viagem_owner_destino"),
		},
	})
}
