// internal/app/features/invites/handler_test.go
package invites

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	invitestore "github.com/mytripteam/mytrip/internal/app/store/invites"
	travelerstore "github.com/mytripteam/mytrip/internal/app/store/travelers"
	tripstore "github.com/mytripteam/mytrip/internal/app/store/trips"
	"github.com/mytripteam/mytrip/internal/app/system/auth"
	"github.com/mytripteam/mytrip/internal/app/system/mailer"
	"github.com/mytripteam/mytrip/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeInviteStore struct {
	guest  map[string]models.Invitation
	mirror map[string]models.InvitationMirror
}

func newFakeInviteStore() *fakeInviteStore {
	return &fakeInviteStore{
		guest:  map[string]models.Invitation{},
		mirror: map[string]models.InvitationMirror{},
	}
}

func mirrorKey(ownerID string, viagemID primitive.ObjectID, guestID string) string {
	return ownerID + "|" + viagemID.Hex() + "|" + guestID
}

func (f *fakeInviteStore) Create(_ context.Context, inv models.Invitation) (models.Invitation, error) {
	inv.ID = primitive.NewObjectID()
	inv.Status = models.ConvitePendente
	f.guest[inv.ID.Hex()] = inv
	f.mirror[mirrorKey(inv.OwnerID, inv.ViagemID, inv.GuestID)] = models.InvitationMirror{
		OwnerID: inv.OwnerID, ViagemID: inv.ViagemID, GuestID: inv.GuestID,
		Status: models.ConvitePendente,
	}
	return inv, nil
}

func (f *fakeInviteStore) ListByGuest(_ context.Context, guestID, status string) ([]models.Invitation, error) {
	var out []models.Invitation
	for _, inv := range f.guest {
		if inv.GuestID == guestID && (status == "" || inv.Status == status) {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (f *fakeInviteStore) GetByID(_ context.Context, guestID string, id primitive.ObjectID) (models.Invitation, error) {
	inv, ok := f.guest[id.Hex()]
	if !ok || inv.GuestID != guestID {
		return models.Invitation{}, invitestore.ErrNotFound
	}
	return inv, nil
}

func (f *fakeInviteStore) UpdateStatus(_ context.Context, guestID string, id primitive.ObjectID, status string) error {
	inv, ok := f.guest[id.Hex()]
	if !ok || inv.GuestID != guestID {
		return invitestore.ErrNotFound
	}
	inv.Status = status
	f.guest[id.Hex()] = inv
	return nil
}

func (f *fakeInviteStore) MirrorUpdateStatus(_ context.Context, ownerID string, viagemID primitive.ObjectID, guestID, status string) (bool, error) {
	k := mirrorKey(ownerID, viagemID, guestID)
	m, ok := f.mirror[k]
	if !ok {
		return false, nil
	}
	m.Status = status
	f.mirror[k] = m
	return true, nil
}

func (f *fakeInviteStore) RevokeAll(_ context.Context, ownerID string, viagemID primitive.ObjectID, guestID string) (bool, error) {
	k := mirrorKey(ownerID, viagemID, guestID)
	if m, ok := f.mirror[k]; ok && m.Status != models.ConviteRevogado {
		m.Status = models.ConviteRevogado
		f.mirror[k] = m
	}
	revoked := false
	for id, inv := range f.guest {
		if inv.GuestID == guestID && inv.OwnerID == ownerID && inv.ViagemID == viagemID &&
			inv.Status != models.ConviteRevogado {
			inv.Status = models.ConviteRevogado
			f.guest[id] = inv
			revoked = true
		}
	}
	return revoked, nil
}

func (f *fakeInviteStore) ListMirrors(_ context.Context, ownerID string, viagemID primitive.ObjectID) ([]models.InvitationMirror, error) {
	var out []models.InvitationMirror
	for _, m := range f.mirror {
		if m.OwnerID == ownerID && m.ViagemID == viagemID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeTravelers struct {
	byID map[string]models.Traveler
}

func (f *fakeTravelers) add(nome, email string) {
	if f.byID == nil {
		f.byID = map[string]models.Traveler{}
	}
	id := travelerstore.DocID(email)
	f.byID[id] = models.Traveler{ID: id, Nome: nome, Email: email, IsVerified: true}
}

func (f *fakeTravelers) GetByEmail(_ context.Context, email string) (models.Traveler, error) {
	t, ok := f.byID[travelerstore.DocID(email)]
	if !ok {
		return models.Traveler{}, travelerstore.ErrNotFound
	}
	return t, nil
}

type fakeTrips struct {
	trips map[string]models.Trip
}

func (f *fakeTrips) add(ownerID, destino string) models.Trip {
	if f.trips == nil {
		f.trips = map[string]models.Trip{}
	}
	t := models.Trip{ID: primitive.NewObjectID(), OwnerID: ownerID, Destino: destino}
	f.trips[ownerID+"|"+t.ID.Hex()] = t
	return t
}

func (f *fakeTrips) Get(_ context.Context, ownerID string, id primitive.ObjectID) (models.Trip, error) {
	t, ok := f.trips[ownerID+"|"+id.Hex()]
	if !ok {
		return models.Trip{}, tripstore.ErrNotFound
	}
	return t, nil
}

type fakeMail struct {
	sent []mailer.Email
}

func (f *fakeMail) Send(e mailer.Email) error {
	f.sent = append(f.sent, e)
	return nil
}

func newTestHandler() (*Handler, *fakeInviteStore, *fakeTravelers, *fakeTrips, *fakeMail) {
	store := newFakeInviteStore()
	travelers := &fakeTravelers{}
	trips := &fakeTrips{}
	mail := &fakeMail{}
	h := NewHandler(store, travelers, trips, mail, "MyTrip", zap.NewNop())
	return h, store, travelers, trips, mail
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

func TestCreate_Flow(t *testing.T) {
	h, store, travelers, trips, mail := newTestHandler()
	travelers.add("Ana", "ana@example.com")
	travelers.add("Bia", "bia@example.com")
	trip := trips.add("ana@example.com", "Lisboa")

	rec := doAs(t, h, "ana@example.com", http.MethodPost,
		"/viagem/"+trip.ID.Hex()+"/convites",
		createRequest{EmailConvidado: "bia@example.com"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body %s", rec.Code, rec.Body.String())
	}

	pendentes, _ := store.ListByGuest(context.Background(), "bia@example.com", models.ConvitePendente)
	if len(pendentes) != 1 {
		t.Fatalf("guest has %d pending invites, want 1", len(pendentes))
	}
	if pendentes[0].DestinoSnapshot != "Lisboa" {
		t.Errorf("destino_snapshot = %q", pendentes[0].DestinoSnapshot)
	}
	if pendentes[0].OwnerNomeSnapshot != "Ana" {
		t.Errorf("owner_nome_snapshot = %q", pendentes[0].OwnerNomeSnapshot)
	}

	mirrors, _ := store.ListMirrors(context.Background(), "ana@example.com", trip.ID)
	if len(mirrors) != 1 || mirrors[0].Status != models.ConvitePendente {
		t.Errorf("mirrors = %+v", mirrors)
	}

	if len(mail.sent) != 1 || mail.sent[0].To != "bia@example.com" {
		t.Errorf("invite mail = %+v", mail.sent)
	}
}

func TestCreate_GuestNotFound(t *testing.T) {
	h, _, travelers, trips, _ := newTestHandler()
	travelers.add("Ana", "ana@example.com")
	trip := trips.add("ana@example.com", "Lisboa")

	rec := doAs(t, h, "ana@example.com", http.MethodPost,
		"/viagem/"+trip.ID.Hex()+"/convites",
		createRequest{EmailConvidado: "ninguem@example.com"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404; body %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Convidado não encontrado") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestCreate_TripNotFound(t *testing.T) {
	h, _, travelers, _, _ := newTestHandler()
	travelers.add("Ana", "ana@example.com")
	travelers.add("Bia", "bia@example.com")

	rec := doAs(t, h, "ana@example.com", http.MethodPost,
		"/viagem/"+primitive.NewObjectID().Hex()+"/convites",
		createRequest{EmailConvidado: "bia@example.com"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func seedInvite(t *testing.T, h *Handler, store *fakeInviteStore, travelers *fakeTravelers, trips *fakeTrips) models.Invitation {
	t.Helper()
	travelers.add("Ana", "ana@example.com")
	travelers.add("Bia", "bia@example.com")
	trip := trips.add("ana@example.com", "Lisboa")
	inv, err := store.Create(context.Background(), models.Invitation{
		GuestID: "bia@example.com", OwnerID: "ana@example.com", ViagemID: trip.ID,
	})
	if err != nil {
		t.Fatalf("seed invite: %v", err)
	}
	return inv
}

func TestRespond_AcceptUpdatesBothCopies(t *testing.T) {
	h, store, travelers, trips, _ := newTestHandler()
	inv := seedInvite(t, h, store, travelers, trips)

	rec := doAs(t, h, "bia@example.com", http.MethodPut,
		"/convites/"+inv.ID.Hex(), respondRequest{Acao: acaoAceitar})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}

	got, _ := store.GetByID(context.Background(), "bia@example.com", inv.ID)
	if got.Status != models.ConviteAceito {
		t.Errorf("guest status = %q, want aceito", got.Status)
	}
	mirrors, _ := store.ListMirrors(context.Background(), "ana@example.com", inv.ViagemID)
	if len(mirrors) != 1 || mirrors[0].Status != models.ConviteAceito {
		t.Errorf("mirror = %+v", mirrors)
	}

	// Answering a second time is rejected: transitions are final.
	again := doAs(t, h, "bia@example.com", http.MethodPut,
		"/convites/"+inv.ID.Hex(), respondRequest{Acao: acaoRecusar})
	if again.Code != http.StatusBadRequest {
		t.Fatalf("second respond = %d, want 400; body %s", again.Code, again.Body.String())
	}
}

func TestRespond_InvalidAction(t *testing.T) {
	h, store, travelers, trips, _ := newTestHandler()
	inv := seedInvite(t, h, store, travelers, trips)

	rec := doAs(t, h, "bia@example.com", http.MethodPut,
		"/convites/"+inv.ID.Hex(), respondRequest{Acao: "talvez"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestRespond_OnlyOwnInvites(t *testing.T) {
	h, store, travelers, trips, _ := newTestHandler()
	inv := seedInvite(t, h, store, travelers, trips)

	rec := doAs(t, h, "carlos@example.com", http.MethodPut,
		"/convites/"+inv.ID.Hex(), respondRequest{Acao: acaoAceitar})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestRevoke_IsIdempotentButReportsNoop(t *testing.T) {
	h, store, travelers, trips, _ := newTestHandler()
	inv := seedInvite(t, h, store, travelers, trips)

	path := "/viagem/" + inv.ViagemID.Hex() + "/convites/bia@example.com"

	first := doAs(t, h, "ana@example.com", http.MethodDelete, path, nil)
	if first.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", first.Code, first.Body.String())
	}
	if !strings.Contains(first.Body.String(), "Convite revogado com sucesso") {
		t.Errorf("first body = %s", first.Body.String())
	}
	got, _ := store.GetByID(context.Background(), "bia@example.com", inv.ID)
	if got.Status != models.ConviteRevogado {
		t.Errorf("guest status = %q, want revogado", got.Status)
	}

	second := doAs(t, h, "ana@example.com", http.MethodDelete, path, nil)
	if second.Code != http.StatusOK {
		t.Fatalf("second status = %d, want 200", second.Code)
	}
	if !strings.Contains(second.Body.String(), "Nenhum convite encontrado") {
		t.Errorf("second body = %s", second.Body.String())
	}
}

func TestListMine_FiltersByStatus(t *testing.T) {
	h, store, travelers, trips, _ := newTestHandler()
	inv := seedInvite(t, h, store, travelers, trips)
	_ = store.UpdateStatus(context.Background(), "bia@example.com", inv.ID, models.ConviteAceito)

	rec := doAs(t, h, "bia@example.com", http.MethodGet, "/convites?status=pendente", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got guestListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if got.Qtd != 0 {
		t.Errorf("qtd = %d, want 0", got.Qtd)
	}

	all := doAs(t, h, "bia@example.com", http.MethodGet, "/convites", nil)
	_ = json.Unmarshal(all.Body.Bytes(), &got)
	if got.Qtd != 1 {
		t.Errorf("qtd = %d, want 1", got.Qtd)
	}
}

func TestListMine_InvalidStatus(t *testing.T) {
	h, _, _, _, _ := newTestHandler()

	rec := doAs(t, h, "bia@example.com", http.MethodGet, "/convites?status=errado", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
