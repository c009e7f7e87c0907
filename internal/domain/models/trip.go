// internal/domain/models/trip.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Trip is a budgeted travel plan owned by exactly one traveler.
//
// ValorRestante is derived state: it must always equal
// ValorTotal - sum(activity ValorAtividade), rounded to two decimals.
// It is initialized to ValorTotal at creation and afterwards written only
// by the reconciliation engine.
type Trip struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"doc_id"`
	OwnerID   string             `bson:"owner_id" json:"id_viajante"`
	Destino   string             `bson:"destino" json:"destino"`
	DestinoCI string             `bson:"destino_ci" json:"-"` // lowercase, diacritics-stripped

	ValorTotal    float64 `bson:"valor_total" json:"valor_total"`
	ValorRestante float64 `bson:"valor_restante" json:"valor_restante"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`

	// Atividades is populated by the store on detail reads; it is never
	// persisted on the trip document itself. Detail payloads always carry
	// the list, empty included.
	Atividades []Activity `bson:"-" json:"atividades"`
}
