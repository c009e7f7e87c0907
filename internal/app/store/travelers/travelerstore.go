// internal/app/store/travelers/travelerstore.go
package travelerstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/mytripteam/mytrip/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

type Store struct {
	c *mongo.Collection
}

var (
	ErrDuplicateEmail = errors.New("a traveler with this email already exists")
	ErrNotFound       = errors.New("traveler not found")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("viajantes")}
}

// DocID returns the document id for an email: the folded form, so lookups
// are case- and diacritic-insensitive.
func DocID(email string) string {
	return text.Fold(email)
}

// Create inserts a new traveler, keyed by the folded email.
func (s *Store) Create(ctx context.Context, t models.Traveler) (models.Traveler, error) {
	now := time.Now().UTC()
	t.ID = DocID(t.Email)
	t.CreatedAt = now
	t.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, t); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Traveler{}, ErrDuplicateEmail
		}
		return models.Traveler{}, err
	}
	return t, nil
}

// GetByEmail fetches a traveler by email. The email is the document id, so
// this is a direct get rather than a field query.
func (s *Store) GetByEmail(ctx context.Context, email string) (models.Traveler, error) {
	var t models.Traveler
	err := s.c.FindOne(ctx, bson.M{"_id": DocID(email)}).Decode(&t)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Traveler{}, ErrNotFound
		}
		return models.Traveler{}, err
	}
	return t, nil
}

// SetVerified flips the traveler's verified flag.
func (s *Store) SetVerified(ctx context.Context, email string, verified bool) error {
	res, err := s.c.UpdateByID(ctx, DocID(email), bson.M{"$set": bson.M{
		"is_verified": verified,
		"updated_at":  time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// HashPassword hashes a password using bcrypt with a cost of 12.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
