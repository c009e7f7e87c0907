// internal/app/features/travelers/logout.go
package travelers

import (
	"net/http"

	"github.com/mytripteam/mytrip/internal/app/system/respond"
	"go.uber.org/zap"
)

// Logout handles GET /api/sair: clears the session cookie if one exists.
// Header-authenticated callers carry no session; for them this is a no-op.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if h.Sessions != nil {
		if err := h.Sessions.SignOut(w, r); err != nil {
			h.Log.Warn("sair: session clear failed", zap.Error(err))
		}
	}
	respond.Mensagem(w, http.StatusOK, "Logout realizado no backend")
}
