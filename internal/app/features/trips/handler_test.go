// internal/app/features/trips/handler_test.go
package trips

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	tripstore "github.com/mytripteam/mytrip/internal/app/store/trips"
	"github.com/mytripteam/mytrip/internal/app/system/auth"
	"github.com/mytripteam/mytrip/internal/app/system/budget"
	"github.com/mytripteam/mytrip/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeTripStore struct {
	trips map[string]models.Trip
	acts  map[string][]models.Activity
}

func newFakeTripStore() *fakeTripStore {
	return &fakeTripStore{
		trips: map[string]models.Trip{},
		acts:  map[string][]models.Activity{},
	}
}

func tripKey(ownerID string, id primitive.ObjectID) string {
	return ownerID + "|" + id.Hex()
}

func (f *fakeTripStore) Create(_ context.Context, t models.Trip) (models.Trip, error) {
	t.ID = primitive.NewObjectID()
	t.ValorRestante = t.ValorTotal
	f.trips[tripKey(t.OwnerID, t.ID)] = t
	return t, nil
}

func (f *fakeTripStore) Get(_ context.Context, ownerID string, id primitive.ObjectID) (models.Trip, error) {
	t, ok := f.trips[tripKey(ownerID, id)]
	if !ok {
		return models.Trip{}, tripstore.ErrNotFound
	}
	t.Atividades = f.acts[tripKey(ownerID, id)]
	return t, nil
}

func (f *fakeTripStore) List(_ context.Context, ownerID string) ([]models.Trip, error) {
	var out []models.Trip
	for _, t := range f.trips {
		if t.OwnerID == ownerID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTripStore) Update(_ context.Context, ownerID string, id primitive.ObjectID, u tripstore.UpdateFields) error {
	k := tripKey(ownerID, id)
	t, ok := f.trips[k]
	if !ok {
		return tripstore.ErrNotFound
	}
	if u.Destino != nil {
		t.Destino = *u.Destino
	}
	if u.ValorTotal != nil {
		t.ValorTotal = *u.ValorTotal
	}
	f.trips[k] = t
	return nil
}

func (f *fakeTripStore) UpdateRestante(_ context.Context, ownerID string, id primitive.ObjectID, valor float64) error {
	k := tripKey(ownerID, id)
	t, ok := f.trips[k]
	if !ok {
		return tripstore.ErrNotFound
	}
	t.ValorRestante = valor
	f.trips[k] = t
	return nil
}

func (f *fakeTripStore) DeleteCascade(_ context.Context, ownerID string, id primitive.ObjectID) error {
	k := tripKey(ownerID, id)
	if _, ok := f.trips[k]; !ok {
		return tripstore.ErrNotFound
	}
	delete(f.trips, k)
	delete(f.acts, k)
	return nil
}

type fakeInvites struct {
	accepted map[string]bool
	list     []models.Invitation
}

func newFakeInvites() *fakeInvites {
	return &fakeInvites{accepted: map[string]bool{}}
}

func (f *fakeInvites) accept(guestID, ownerID string, viagemID primitive.ObjectID) {
	f.accepted[guestID+"|"+tripKey(ownerID, viagemID)] = true
	f.list = append(f.list, models.Invitation{
		GuestID: guestID, OwnerID: ownerID, ViagemID: viagemID,
		Status: models.ConviteAceito,
	})
}

func (f *fakeInvites) HasAccepted(_ context.Context, guestID, ownerID string, viagemID primitive.ObjectID) (bool, error) {
	return f.accepted[guestID+"|"+tripKey(ownerID, viagemID)], nil
}

func (f *fakeInvites) ListAcceptedByGuest(_ context.Context, guestID string) ([]models.Invitation, error) {
	var out []models.Invitation
	for _, inv := range f.list {
		if inv.GuestID == guestID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func newTestHandler() (*Handler, *fakeTripStore, *fakeInvites) {
	store := newFakeTripStore()
	invites := newFakeInvites()
	h := NewHandler(store, invites,
		budget.NewReconciler(store, zap.NewNop()), zap.NewNop())
	return h, store, invites
}

func doAs(t *testing.T, h *Handler, principal, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if principal != "" {
		req = auth.WithPrincipal(req, auth.Principal{ID: principal})
	}
	rec := httptest.NewRecorder()
	Routes(h).ServeHTTP(rec, req)
	return rec
}

func floatPtr(v float64) *float64 { return &v }

func TestCreate(t *testing.T) {
	h, _, _ := newTestHandler()

	rec := doAs(t, h, "ana@example.com", http.MethodPost, "/viagem/criar",
		createRequest{Destino: "Lisboa", ValorTotal: floatPtr(1000)})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body %s", rec.Code, rec.Body.String())
	}

	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if got["valor_restante"] != float64(1000) {
		t.Errorf("valor_restante = %v, want 1000", got["valor_restante"])
	}
	if got["percentual_gasto"] != float64(0) {
		t.Errorf("percentual_gasto = %v, want 0", got["percentual_gasto"])
	}
	if got["cor"] != budget.CorVerde {
		t.Errorf("cor = %v, want %s", got["cor"], budget.CorVerde)
	}
	if acts, ok := got["atividades"].([]any); !ok || len(acts) != 0 {
		t.Errorf("atividades = %v, want empty list", got["atividades"])
	}
}

func TestCreate_NegativeTotal(t *testing.T) {
	h, _, _ := newTestHandler()

	rec := doAs(t, h, "ana@example.com", http.MethodPost, "/viagem/criar",
		createRequest{Destino: "Lisboa", ValorTotal: floatPtr(-50)})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body %s", rec.Code, rec.Body.String())
	}
}

func TestCreate_MissingFields(t *testing.T) {
	h, _, _ := newTestHandler()

	rec := doAs(t, h, "ana@example.com", http.MethodPost, "/viagem/criar",
		createRequest{Destino: "Lisboa"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCreate_Unauthenticated(t *testing.T) {
	h, _, _ := newTestHandler()

	rec := doAs(t, h, "", http.MethodPost, "/viagem/criar",
		createRequest{Destino: "Lisboa", ValorTotal: floatPtr(1000)})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestDetail_NotFound(t *testing.T) {
	h, _, _ := newTestHandler()

	rec := doAs(t, h, "ana@example.com", http.MethodGet,
		"/viagem/"+primitive.NewObjectID().Hex(), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestDetail_MalformedID(t *testing.T) {
	h, _, _ := newTestHandler()

	rec := doAs(t, h, "ana@example.com", http.MethodGet, "/viagem/nao-e-id", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestDetail_ActivityListAlwaysPresent(t *testing.T) {
	h, store, _ := newTestHandler()

	trip, err := store.Create(context.Background(), models.Trip{
		OwnerID: "ana@example.com", Destino: "Paris", ValorTotal: 1000,
	})
	if err != nil {
		t.Fatalf("seed trip: %v", err)
	}

	rec := doAs(t, h, "ana@example.com", http.MethodGet, "/viagem/"+trip.ID.Hex(), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}

	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	acts, ok := got["atividades"]
	if !ok {
		t.Fatal("atividades key missing on a trip without activities")
	}
	if list, ok := acts.([]any); !ok || len(list) != 0 {
		t.Errorf("atividades = %v, want empty list", acts)
	}
}

func TestEdit_ReconcilesBalance(t *testing.T) {
	h, store, _ := newTestHandler()

	trip, err := store.Create(context.Background(), models.Trip{
		OwnerID: "ana@example.com", Destino: "Lisboa", ValorTotal: 1000,
	})
	if err != nil {
		t.Fatalf("seed trip: %v", err)
	}
	store.acts[tripKey(trip.OwnerID, trip.ID)] = []models.Activity{
		{ViagemID: trip.ID, NomeAtividade: "Museu", ValorAtividade: 300},
	}

	rec := doAs(t, h, "ana@example.com", http.MethodPut,
		"/viagem/"+trip.ID.Hex()+"/editar",
		updateRequest{Destino: strPtr("Porto"), ValorTotal: floatPtr(500)})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}

	got, err := store.Get(context.Background(), "ana@example.com", trip.ID)
	if err != nil {
		t.Fatalf("reload trip: %v", err)
	}
	if got.Destino != "Porto" {
		t.Errorf("destino = %q, want Porto", got.Destino)
	}
	if got.ValorRestante != 200 {
		t.Errorf("valor_restante = %v, want 200", got.ValorRestante)
	}
}

func strPtr(s string) *string { return &s }

func TestEdit_NegativeTotal(t *testing.T) {
	h, store, _ := newTestHandler()

	trip, err := store.Create(context.Background(), models.Trip{
		OwnerID: "ana@example.com", Destino: "Lisboa", ValorTotal: 1000,
	})
	if err != nil {
		t.Fatalf("seed trip: %v", err)
	}

	rec := doAs(t, h, "ana@example.com", http.MethodPut,
		"/viagem/"+trip.ID.Hex()+"/editar",
		updateRequest{Destino: strPtr("Porto"), ValorTotal: floatPtr(-1)})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body %s", rec.Code, rec.Body.String())
	}

	got, err := store.Get(context.Background(), "ana@example.com", trip.ID)
	if err != nil {
		t.Fatalf("reload trip: %v", err)
	}
	if got.Destino != "Lisboa" || got.ValorTotal != 1000 {
		t.Errorf("rejected edit must not change the trip, got %q/%v", got.Destino, got.ValorTotal)
	}
}

func TestSharedDetail_AccessBeforeExistence(t *testing.T) {
	h, _, _ := newTestHandler()

	// Trip does not exist; an unauthorized caller still gets 403, not 404,
	// so trip ids cannot be probed.
	rec := doAs(t, h, "zeca@example.com", http.MethodGet,
		"/viagem/ana@example.com/"+primitive.NewObjectID().Hex(), nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403; body %s", rec.Code, rec.Body.String())
	}
}

func TestSharedDetail_AcceptedGuest(t *testing.T) {
	h, store, invites := newTestHandler()

	trip, _ := store.Create(context.Background(), models.Trip{
		OwnerID: "ana@example.com", Destino: "Lisboa", ValorTotal: 1000,
	})
	invites.accept("bia@example.com", "ana@example.com", trip.ID)

	rec := doAs(t, h, "bia@example.com", http.MethodGet,
		"/viagem/ana@example.com/"+trip.ID.Hex(), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}

	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if got["papel"] != "convidado" {
		t.Errorf("papel = %v, want convidado", got["papel"])
	}
	if got["owner_id"] != "ana@example.com" {
		t.Errorf("owner_id = %v", got["owner_id"])
	}
}

func TestSharedDetail_OwnerSeesDono(t *testing.T) {
	h, store, _ := newTestHandler()

	trip, _ := store.Create(context.Background(), models.Trip{
		OwnerID: "ana@example.com", Destino: "Lisboa", ValorTotal: 1000,
	})

	rec := doAs(t, h, "ana@example.com", http.MethodGet,
		"/viagem/ana@example.com/"+trip.ID.Hex(), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &got)
	if got["papel"] != "dono" {
		t.Errorf("papel = %v, want dono", got["papel"])
	}
}

func TestSharedDetail_AuthorizedButMissing(t *testing.T) {
	h, _, invites := newTestHandler()

	id := primitive.NewObjectID()
	invites.accept("bia@example.com", "ana@example.com", id)

	rec := doAs(t, h, "bia@example.com", http.MethodGet,
		"/viagem/ana@example.com/"+id.Hex(), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestDelete(t *testing.T) {
	h, store, _ := newTestHandler()

	trip, _ := store.Create(context.Background(), models.Trip{
		OwnerID: "ana@example.com", Destino: "Lisboa", ValorTotal: 1000,
	})

	rec := doAs(t, h, "ana@example.com", http.MethodDelete, "/viagem/"+trip.ID.Hex(), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}

	again := doAs(t, h, "ana@example.com", http.MethodDelete, "/viagem/"+trip.ID.Hex(), nil)
	if again.Code != http.StatusNotFound {
		t.Fatalf("second delete = %d, want 404", again.Code)
	}
}

func TestProfile_OwnAndShared(t *testing.T) {
	h, store, invites := newTestHandler()

	if _, err := store.Create(context.Background(), models.Trip{
		OwnerID: "ana@example.com", Destino: "Lisboa", ValorTotal: 1000,
	}); err != nil {
		t.Fatalf("seed trip: %v", err)
	}
	shared, _ := store.Create(context.Background(), models.Trip{
		OwnerID: "carlos@example.com", Destino: "Roma", ValorTotal: 2000,
	})
	invites.accept("ana@example.com", "carlos@example.com", shared.ID)

	rec := doAs(t, h, "ana@example.com", http.MethodGet, "/perfil", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}

	var got profileResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if got.QtdViagens != 2 || len(got.Viagens) != 2 {
		t.Fatalf("qtd_viagens = %d (%d items), want 2", got.QtdViagens, len(got.Viagens))
	}
	papeis := map[string]string{}
	for _, v := range got.Viagens {
		papeis[v.Destino] = v.Papel
	}
	if papeis["Lisboa"] != "dono" || papeis["Roma"] != "convidado" {
		t.Errorf("papeis = %v", papeis)
	}
}
