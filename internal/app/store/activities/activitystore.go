// internal/app/store/activities/activitystore.go
package activitystore

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
)

// Store persists activity documents, always scoped by
// (owner_id, viagem_id) so an activity id from one trip can never address
// another trip's expense.
type Store struct {
	c *mongo.Collection
}

var ErrNotFound = errors.New("activity not found")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("atividades")}
}

// Create inserts a new activity under the given trip.
func (s *Store) Create(ctx context.Context, a models.Activity) (models.Activity, error) {
	now := time.Now().UTC()
	a.ID = primitive.NewObjectID()
	a.CreatedAt = now
	a.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, a); err != nil {
		return models.Activity{}, err
	}
	return a, nil
}

// Get fetches a single activity.
func (s *Store) Get(ctx context.Context, ownerID string, viagemID, id primitive.ObjectID) (models.Activity, error) {
	var a models.Activity
	err := s.c.FindOne(ctx, bson.M{
		"_id":       id,
		"owner_id":  ownerID,
		"viagem_id": viagemID,
	}).Decode(&a)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Activity{}, ErrNotFound
		}
		return models.Activity{}, err
	}
	return a, nil
}

// ListByTrip returns the trip's activities ordered by creation time.
func (s *Store) ListByTrip(ctx context.Context, ownerID string, viagemID primitive.ObjectID) ([]models.Activity, error) {
	cur, err := s.c.Find(ctx,
		bson.M{"owner_id": ownerID, "viagem_id": viagemID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var atividades []models.Activity
	if err := cur.All(ctx, &atividades); err != nil {
		return nil, err
	}
	return atividades, nil
}

// UpdateFields holds the mutable activity fields; nil pointers are left alone.
type UpdateFields struct {
	NomeAtividade  *string
	ValorAtividade *float64
}

// Update merges the given fields into the activity document.
func (s *Store) Update(ctx context.Context, ownerID string, viagemID, id primitive.ObjectID, f UpdateFields) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if f.NomeAtividade != nil {
		set["nome_atividade"] = *f.NomeAtividade
	}
	if f.ValorAtividade != nil {
		set["valor_atividade"] = *f.ValorAtividade
	}

	res, err := s.c.UpdateOne(ctx, bson.M{
		"_id":       id,
		"owner_id":  ownerID,
		"viagem_id": viagemID,
	}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an activity. It reports false, nil when the activity was
// already absent, matching the tolerant delete of the rest of the system.
func (s *Store) Delete(ctx context.Context, ownerID string, viagemID, id primitive.ObjectID) (bool, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{
		"_id":       id,
		"owner_id":  ownerID,
		"viagem_id": viagemID,
	})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// EnsureIndexes reconciles indexes for the atividades collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	return indexes.Ensure(ctx, s.c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "owner_id", Value: 1}, {Key: "viagem_id", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("idx_atividade_trip"),
		},
	})
}
