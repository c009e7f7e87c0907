// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/mytripteam/mytrip/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateTraveler inserts a verified traveler keyed by the folded email.
func (f *Fixtures) CreateTraveler(ctx context.Context, nome, email string) models.Traveler {
	f.t.Helper()

	now := time.Now().UTC()
	tr := models.Traveler{
		ID:         text.Fold(email),
		Nome:       nome,
		Email:      email,
		IsVerified: true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := f.db.Collection("viajantes").InsertOne(ctx, tr); err != nil {
		f.t.Fatalf("failed to create test traveler: %v", err)
	}
	return tr
}

// CreateTrip inserts a trip for the given owner with the remaining balance
// initialized to the full budget.
func (f *Fixtures) CreateTrip(ctx context.Context, ownerID, destino string, valorTotal float64) models.Trip {
	f.t.Helper()

	now := time.Now().UTC()
	trip := models.Trip{
		ID:            primitive.NewObjectID(),
		OwnerID:       ownerID,
		Destino:       destino,
		DestinoCI:     text.Fold(destino),
		ValorTotal:    valorTotal,
		ValorRestante: valorTotal,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := f.db.Collection("viagens").InsertOne(ctx, trip); err != nil {
		f.t.Fatalf("failed to create test trip: %v", err)
	}
	return trip
}

// CreateActivity inserts an expense under the given trip.
func (f *Fixtures) CreateActivity(ctx context.Context, ownerID string, viagemID primitive.ObjectID, nome string, valor float64) models.Activity {
	f.t.Helper()

	now := time.Now().UTC()
	a := models.Activity{
		ID:             primitive.NewObjectID(),
		OwnerID:        ownerID,
		ViagemID:       viagemID,
		NomeAtividade:  nome,
		ValorAtividade: valor,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if _, err := f.db.Collection("atividades").InsertOne(ctx, a); err != nil {
		f.t.Fatalf("failed to create test activity: %v", err)
	}
	return a
}

// CreateInvitation inserts a guest-side invitation with the given status.
func (f *Fixtures) CreateInvitation(ctx context.Context, guestID, ownerID string, viagemID primitive.ObjectID, status string) models.Invitation {
	f.t.Helper()

	now := time.Now().UTC()
	inv := models.Invitation{
		ID:        primitive.NewObjectID(),
		GuestID:   guestID,
		OwnerID:   ownerID,
		ViagemID:  viagemID,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("convites_viagem").InsertOne(ctx, inv); err != nil {
		f.t.Fatalf("failed to create test invitation: %v", err)
	}
	return inv
}
