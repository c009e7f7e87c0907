// internal/app/features/trips/types.go
package trips

import (
	"github.com/mytripteam/mytrip/internal/app/system/budget"
	"github.com/mytripteam/mytrip/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// createRequest is the payload for POST /api/viagem/criar.
type createRequest struct {
	Destino    string   `json:"destino"`
	ValorTotal *float64 `json:"valor_total"`
}

// updateRequest is the payload for PUT /api/viagem/{viagemID}/editar.
type updateRequest struct {
	Destino    *string  `json:"destino"`
	ValorTotal *float64 `json:"valor_total"`
}

// editView is the form-prefill payload for GET /api/viagem/{viagemID}/editar.
type editView struct {
	Destino    string  `json:"destino"`
	ValorTotal float64 `json:"valor_total"`
}

// tripView is a trip as the frontend renders it: the stored record plus the
// derived progress fields. DonoID and Papel are set only when the reader is
// not necessarily the owner.
type tripView struct {
	models.Trip
	PercentualGasto float64 `json:"percentual_gasto"`
	Cor             string  `json:"cor"`
	DonoID          string  `json:"owner_id,omitempty"`
	Papel           string  `json:"papel,omitempty"`
}

// Papel values in trip and profile payloads.
const (
	papelDono      = "dono"
	papelConvidado = "convidado"
)

func newTripView(t models.Trip) tripView {
	if t.Atividades == nil {
		t.Atividades = []models.Activity{}
	}
	pct := budget.PercentSpent(t.ValorTotal, t.ValorRestante)
	return tripView{
		Trip:            t,
		PercentualGasto: pct,
		Cor:             budget.ProgressColor(pct),
	}
}

// tripSummary is a profile listing entry: the progress fields without the
// activity list, which the listing never loads.
type tripSummary struct {
	ID              primitive.ObjectID `json:"doc_id"`
	Destino         string             `json:"destino"`
	ValorTotal      float64            `json:"valor_total"`
	ValorRestante   float64            `json:"valor_restante"`
	PercentualGasto float64            `json:"percentual_gasto"`
	Cor             string             `json:"cor"`
	Papel           string             `json:"papel"`
	DonoID          string             `json:"owner_id,omitempty"`
}

func newTripSummary(t models.Trip, papel string) tripSummary {
	pct := budget.PercentSpent(t.ValorTotal, t.ValorRestante)
	return tripSummary{
		ID:              t.ID,
		Destino:         t.Destino,
		ValorTotal:      t.ValorTotal,
		ValorRestante:   t.ValorRestante,
		PercentualGasto: pct,
		Cor:             budget.ProgressColor(pct),
		Papel:           papel,
	}
}

// profileResponse is the payload for GET /api/perfil.
type profileResponse struct {
	QtdViagens int           `json:"qtd_viagens"`
	Viagens    []tripSummary `json:"viagens"`
}
