// internal/app/store/trips/tripstore_test.go
package tripstore_test

import (
	"errors"
	"testing"

	tripstore "github.com/mytripteam/mytrip/internal/app/store/trips"
	"github.com/mytripteam/mytrip/internal/domain/models"
	"github.com/mytripteam/mytrip/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStoreRoundTrip(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := tripstore.New(db)
	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes: %v", err)
	}

	created, err := store.Create(ctx, models.Trip{
		OwnerID:    "ana@example.com",
		Destino:    "Lisboa",
		ValorTotal: 2500,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ValorRestante != 2500 {
		t.Errorf("ValorRestante = %v, want the full budget", created.ValorRestante)
	}

	got, err := store.Get(ctx, "ana@example.com", created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Destino != "Lisboa" || got.OwnerID != "ana@example.com" {
		t.Errorf("Get returned %+v", got)
	}
	if got.Atividades == nil {
		t.Error("Atividades must be an empty slice, not nil, so the key always serializes")
	}
	if len(got.Atividades) != 0 {
		t.Errorf("new trip should have no activities, got %d", len(got.Atividades))
	}

	if _, err := store.Get(ctx, "outra@example.com", created.ID); !errors.Is(err, tripstore.ErrNotFound) {
		t.Errorf("Get with wrong owner: err = %v, want ErrNotFound", err)
	}
}

func TestStoreGetLoadsActivities(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	trip := fx.CreateTrip(ctx, "ana@example.com", "Paris", 1000)
	fx.CreateActivity(ctx, "ana@example.com", trip.ID, "Museu", 30)
	fx.CreateActivity(ctx, "ana@example.com", trip.ID, "Jantar", 80.50)

	store := tripstore.New(db)
	got, err := store.Get(ctx, "ana@example.com", trip.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.Atividades) != 2 {
		t.Fatalf("activities loaded = %d, want 2", len(got.Atividades))
	}
	if got.Atividades[0].NomeAtividade != "Museu" {
		t.Errorf("activities should come back in creation order, first is %q", got.Atividades[0].NomeAtividade)
	}
}

func TestStoreUpdateAndRestante(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	trip := fx.CreateTrip(ctx, "ana@example.com", "Roma", 1000)

	store := tripstore.New(db)

	destino := "Roma e Florença"
	total := 1500.0
	if err := store.Update(ctx, "ana@example.com", trip.ID, tripstore.UpdateFields{
		Destino:    &destino,
		ValorTotal: &total,
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := store.Get(ctx, "ana@example.com", trip.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Destino != destino || got.ValorTotal != 1500 {
		t.Errorf("after Update: %+v", got)
	}
	if got.ValorRestante != 1000 {
		t.Errorf("Update must not touch valor_restante, got %v", got.ValorRestante)
	}

	if err := store.UpdateRestante(ctx, "ana@example.com", trip.ID, 1420.50); err != nil {
		t.Fatalf("UpdateRestante: %v", err)
	}
	got, _ = store.Get(ctx, "ana@example.com", trip.ID)
	if got.ValorRestante != 1420.50 {
		t.Errorf("ValorRestante = %v, want 1420.50", got.ValorRestante)
	}

	if err := store.Update(ctx, "ana@example.com", primitive.NewObjectID(), tripstore.UpdateFields{Destino: &destino}); !errors.Is(err, tripstore.ErrNotFound) {
		t.Errorf("Update missing trip: err = %v, want ErrNotFound", err)
	}
}

func TestStoreDeleteCascade(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	trip := fx.CreateTrip(ctx, "ana@example.com", "Tóquio", 5000)
	fx.CreateActivity(ctx, "ana@example.com", trip.ID, "Hotel", 1200)

	store := tripstore.New(db)
	if err := store.DeleteCascade(ctx, "ana@example.com", trip.ID); err != nil {
		t.Fatalf("DeleteCascade: %v", err)
	}

	if _, err := store.Get(ctx, "ana@example.com", trip.ID); !errors.Is(err, tripstore.ErrNotFound) {
		t.Errorf("trip should be gone, err = %v", err)
	}
	n, err := db.Collection("atividades").CountDocuments(ctx, map[string]any{"viagem_id": trip.ID})
	if err != nil {
		t.Fatalf("count activities: %v", err)
	}
	if n != 0 {
		t.Errorf("activities left behind after cascade: %d", n)
	}

	if err := store.DeleteCascade(ctx, "ana@example.com", trip.ID); !errors.Is(err, tripstore.ErrNotFound) {
		t.Errorf("second delete: err = %v, want ErrNotFound", err)
	}
}

func TestStoreListSortsByDestino(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	fx.CreateTrip(ctx, "ana@example.com", "Zurique", 100)
	fx.CreateTrip(ctx, "ana@example.com", "Atenas", 100)
	fx.CreateTrip(ctx, "outra@example.com", "Berlim", 100)

	store := tripstore.New(db)
	trips, err := store.List(ctx, "ana@example.com")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(trips) != 2 {
		t.Fatalf("List returned %d trips, want 2", len(trips))
	}
	if trips[0].Destino != "Atenas" || trips[1].Destino != "Zurique" {
		t.Errorf("trips out of order: %q, %q", trips[0].Destino, trips[1].Destino)
	}
}
