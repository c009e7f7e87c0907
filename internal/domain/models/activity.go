// internal/domain/models/activity.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Activity is a single expense line item belonging to a trip.
// ValorAtividade is treated as a cost; negative values (refunds) are allowed.
type Activity struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"doc_id"`
	OwnerID  string             `bson:"owner_id" json:"-"`
	ViagemID primitive.ObjectID `bson:"viagem_id" json:"id_viagem"`

	NomeAtividade  string  `bson:"nome_atividade" json:"nome_atividade"`
	ValorAtividade float64 `bson:"valor_atividade" json:"valor_atividade"`

	// CriadoPor records which traveler logged the expense on a shared trip.
	CriadoPor string `bson:"criado_por,omitempty" json:"criado_por,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
