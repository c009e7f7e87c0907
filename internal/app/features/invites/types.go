// internal/app/features/invites/types.go
package invites

import "github.com/mytripteam/mytrip/internal/domain/models"

// createRequest is the payload for POST /api/viagem/{viagemID}/convites.
type createRequest struct {
	EmailConvidado string `json:"email_convidado"`
}

// respondRequest is the payload for PUT /api/convites/{conviteID}.
type respondRequest struct {
	Acao string `json:"acao"`
}

// Invitation response actions.
const (
	acaoAceitar = "aceitar"
	acaoRecusar = "recusar"
)

// guestListResponse is the payload for GET /api/convites.
type guestListResponse struct {
	Qtd      int                 `json:"qtd"`
	Convites []models.Invitation `json:"convites"`
}

// ownerListResponse is the payload for GET /api/viagem/{viagemID}/convites.
type ownerListResponse struct {
	Qtd      int                       `json:"qtd"`
	Convites []models.InvitationMirror `json:"convites"`
}
