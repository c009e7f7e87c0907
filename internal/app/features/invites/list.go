// internal/app/features/invites/list.go
package invites

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	tripstore "github.com/mytripteam/mytrip/internal/app/store/trips"
	"github.com/mytripteam/mytrip/internal/app/system/auth"
	"github.com/mytripteam/mytrip/internal/app/system/respond"
	"github.com/mytripteam/mytrip/internal/app/system/timeouts"
	"github.com/mytripteam/mytrip/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// inviteTripID parses the viagemID URL parameter; malformed ids read as
// not-found.
func inviteTripID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "viagemID"))
	if err != nil {
		respond.Erro(w, http.StatusNotFound, "Viagem não encontrada.")
		return primitive.NilObjectID, false
	}
	return id, true
}

// ListMine handles GET /api/convites?status=: the caller's own received
// invitations, optionally filtered by status.
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, _ := auth.Current(r)
	status := r.URL.Query().Get("status")
	if status != "" && !models.ValidConviteStatus(status) {
		respond.Erro(w, http.StatusBadRequest, "Status inválido.")
		return
	}

	convites, err := h.Invites.ListByGuest(ctx, p.ID, status)
	if err != nil {
		h.Log.Error("convites list: query failed", zap.Error(err))
		respond.Erro(w, http.StatusInternalServerError, "Erro ao buscar convites.")
		return
	}
	if convites == nil {
		convites = []models.Invitation{}
	}

	respond.JSON(w, http.StatusOK, guestListResponse{
		Qtd:      len(convites),
		Convites: convites,
	})
}

// ListForTrip handles GET /api/viagem/{viagemID}/convites: the owner-side
// view of who has been invited to a trip, from the mirror records.
func (h *Handler) ListForTrip(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, _ := auth.Current(r)
	viagemID, ok := inviteTripID(w, r)
	if !ok {
		return
	}

	if _, err := h.Trips.Get(ctx, p.ID, viagemID); err != nil {
		if errors.Is(err, tripstore.ErrNotFound) {
			respond.Erro(w, http.StatusNotFound, "Viagem não encontrada.")
			return
		}
		h.Log.Error("convites list-for-trip: trip load failed", zap.Error(err))
		respond.Erro(w, http.StatusInternalServerError, "Erro ao buscar convites.")
		return
	}

	mirrors, err := h.Invites.ListMirrors(ctx, p.ID, viagemID)
	if err != nil {
		h.Log.Error("convites list-for-trip: query failed", zap.Error(err))
		respond.Erro(w, http.StatusInternalServerError, "Erro ao buscar convites.")
		return
	}
	if mirrors == nil {
		mirrors = []models.InvitationMirror{}
	}

	respond.JSON(w, http.StatusOK, ownerListResponse{
		Qtd:      len(mirrors),
		Convites: mirrors,
	})
}
