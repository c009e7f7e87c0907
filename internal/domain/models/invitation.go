// internal/domain/models/invitation.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Invitation statuses. Transitions are one-directional
// (pendente → aceito | recusado) except revogado, which can be applied
// from pendente or aceito. Records are never deleted, only transitioned.
const (
	ConvitePendente = "pendente"
	ConviteAceito   = "aceito"
	ConviteRecusado = "recusado"
	ConviteRevogado = "revogado"
)

// Invitation is the guest-side invitation record: it lives under the guest
// and is the copy queried for "my invitations" and for access-control
// decisions.
type Invitation struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"doc_id"`
	GuestID  string             `bson:"guest_id" json:"guest_id"`
	OwnerID  string             `bson:"owner_id" json:"owner_id"`
	ViagemID primitive.ObjectID `bson:"viagem_id" json:"viagem_id"`
	Status   string             `bson:"status" json:"status"`

	// Display snapshots taken at invite time; never used for authorization.
	DestinoSnapshot   string `bson:"destino_snapshot,omitempty" json:"destino_snapshot,omitempty"`
	OwnerNomeSnapshot string `bson:"owner_nome_snapshot,omitempty" json:"owner_nome_snapshot,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// InvitationMirror is the owner-side duplicate of an invitation, kept so an
// owner can list who is invited to a trip without scanning every guest.
// One document per (owner_id, viagem_id, guest_id). The guest-side copy is
// authoritative; the mirror is maintained best-effort.
type InvitationMirror struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	OwnerID  string             `bson:"owner_id" json:"owner_id"`
	ViagemID primitive.ObjectID `bson:"viagem_id" json:"viagem_id"`
	GuestID  string             `bson:"guest_id" json:"doc_id"`
	Status   string             `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// ValidConviteStatus reports whether s is one of the known statuses.
func ValidConviteStatus(s string) bool {
	switch s {
	case ConvitePendente, ConviteAceito, ConviteRecusado, ConviteRevogado:
		return true
	}
	return false
}
