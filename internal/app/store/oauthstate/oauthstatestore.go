// internal/app/store/oauthstate/oauthstatestore.go
package oauthstate

import (
	"context"
	"time"

	"github.com/mytripteam/mytrip/internal/app/system/indexes"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store persists OAuth state values across the redirect round-trip.
// Records expire via a TTL index and are consumed on first use.
type Store struct {
	c *mongo.Collection
}

type record struct {
	State     string    `bson:"_id"`
	ReturnURL string    `bson:"return_url,omitempty"`
	ExpiresAt time.Time `bson:"expires_at"`
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("oauth_states")}
}

// Save stores a state value with its expiry.
func (s *Store) Save(ctx context.Context, state, returnURL string, expiresAt time.Time) error {
	_, err := s.c.UpdateByID(ctx, state, bson.M{"$set": record{
		State:     state,
		ReturnURL: returnURL,
		ExpiresAt: expiresAt,
	}}, options.Update().SetUpsert(true))
	return err
}

// Validate consumes a state value. It returns the stored return URL and
// whether the state was known and unexpired. A state can be validated at
// most once.
func (s *Store) Validate(ctx context.Context, state string) (string, bool, error) {
	var rec record
	err := s.c.FindOneAndDelete(ctx, bson.M{"_id": state}).Decode(&rec)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return "", false, nil
		}
		return "", false, err
	}
	if time.Now().UTC().After(rec.ExpiresAt) {
		return "", false, nil
	}
	return rec.ReturnURL, true, nil
}

// DeleteExpired removes states whose expiry has passed. The TTL index
// already reaps them eventually; this exists for servers where TTL
// monitoring is unavailable or lags.
func (s *Store) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lt": time.Now().UTC()}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// EnsureIndexes creates the TTL index that expires stale states.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	return indexes.Ensure(ctx, s.c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetName("idx_oauthstate_expires_ttl").SetExpireAfterSeconds(0),
		},
	})
}
