// internal/app/features/trips/detail.go
package trips

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mytripteam/mytrip/internal/app/policy/trippolicy"
	tripstore "github.com/mytripteam/mytrip/internal/app/store/trips"
	"github.com/mytripteam/mytrip/internal/app/system/auth"
	"github.com/mytripteam/mytrip/internal/app/system/respond"
	"github.com/mytripteam/mytrip/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// tripID parses the named URL parameter as an ObjectID. A malformed id is
// reported as not-found: ids are opaque to clients.
func tripID(w http.ResponseWriter, r *http.Request, param string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, param))
	if err != nil {
		respond.Erro(w, http.StatusNotFound, "Viagem não encontrada.")
		return primitive.NilObjectID, false
	}
	return id, true
}

// Detail handles GET /api/viagem/{viagemID}: an owner's view of their own
// trip, activities included.
func (h *Handler) Detail(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, _ := auth.Current(r)
	id, ok := tripID(w, r, "viagemID")
	if !ok {
		return
	}

	t, err := h.Trips.Get(ctx, p.ID, id)
	if err != nil {
		if errors.Is(err, tripstore.ErrNotFound) {
			respond.Erro(w, http.StatusNotFound, "Viagem não encontrada.")
			return
		}
		h.Log.Error("viagem detail: load failed", zap.Error(err))
		respond.Erro(w, http.StatusInternalServerError, "Erro ao buscar viagem.")
		return
	}

	respond.JSON(w, http.StatusOK, newTripView(t))
}

// SharedDetail handles GET /api/viagem/{ownerID}/{viagemID}: a trip read
// through an explicit owner segment, for owners and accepted guests alike.
// Authorization is decided before the trip is looked up, so unauthorized
// callers cannot probe which trip ids exist.
func (h *Handler) SharedDetail(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, _ := auth.Current(r)
	ownerID := chi.URLParam(r, "ownerID")
	id, ok := tripID(w, r, "viagemID")
	if !ok {
		return
	}

	allowed, err := trippolicy.CanAccessTrip(ctx, h.Invites, p.ID, ownerID, id)
	if err != nil {
		h.Log.Error("viagem shared detail: access check failed", zap.Error(err))
		respond.Erro(w, http.StatusInternalServerError, "Erro ao buscar viagem.")
		return
	}
	if !allowed {
		respond.Erro(w, http.StatusForbidden, "Acesso negado a esta viagem.")
		return
	}

	t, err := h.Trips.Get(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, tripstore.ErrNotFound) {
			respond.Erro(w, http.StatusNotFound, "Viagem não encontrada.")
			return
		}
		h.Log.Error("viagem shared detail: load failed", zap.Error(err))
		respond.Erro(w, http.StatusInternalServerError, "Erro ao buscar viagem.")
		return
	}

	v := newTripView(t)
	v.DonoID = ownerID
	v.Papel = papelConvidado
	if p.ID == ownerID {
		v.Papel = papelDono
	}
	respond.JSON(w, http.StatusOK, v)
}
