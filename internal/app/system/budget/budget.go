// Package budget keeps a trip's remaining balance consistent with its
// activity set. Reconcile is the sole writer of valor_restante after trip
// creation: every activity mutation and every budget change must be
// followed by a Reconcile call on the affected trip.
package budget

import (
	"context"
	"errors"
	"fmt"
	"time"

	tripstore "github.com/mytripteam/mytrip/internal/app/store/trips"
	"github.com/mytripteam/mytrip/internal/app/system/metrics"
	"github.com/mytripteam/mytrip/internal/domain/models"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ErrTripNotFound means the trip vanished between the triggering mutation
// and reconciliation. Callers treat it as a non-fatal warning: the
// mutation already succeeded and must not be rolled back.
var ErrTripNotFound = errors.New("trip not found for reconciliation")

// TripSource is the slice of the trip store the reconciler needs.
type TripSource interface {
	Get(ctx context.Context, ownerID string, id primitive.ObjectID) (models.Trip, error)
	UpdateRestante(ctx context.Context, ownerID string, id primitive.ObjectID, valor float64) error
}

// Reconciler recomputes and persists remaining balances.
type Reconciler struct {
	trips TripSource
	log   *zap.Logger
}

func NewReconciler(trips TripSource, logger *zap.Logger) *Reconciler {
	return &Reconciler{trips: trips, log: logger}
}

// Reconcile loads the trip, sums its activities and persists
// round(valor_total - sum, 2) as the new remaining balance, returning it.
// Amounts are summed in decimal arithmetic so repeated cents never drift.
func (r *Reconciler) Reconcile(ctx context.Context, ownerID string, tripID primitive.ObjectID) (float64, error) {
	start := time.Now()
	restante, err := r.reconcile(ctx, ownerID, tripID)
	metrics.ObserveReconcile(start, err)
	return restante, err
}

func (r *Reconciler) reconcile(ctx context.Context, ownerID string, tripID primitive.ObjectID) (float64, error) {
	trip, err := r.trips.Get(ctx, ownerID, tripID)
	if err != nil {
		if errors.Is(err, tripstore.ErrNotFound) {
			return 0, ErrTripNotFound
		}
		return 0, fmt.Errorf("load trip: %w", err)
	}

	gasto := decimal.Zero
	for _, a := range trip.Atividades {
		gasto = gasto.Add(decimal.NewFromFloat(a.ValorAtividade))
	}

	restante := decimal.NewFromFloat(trip.ValorTotal).Sub(gasto).Round(2)
	valor := restante.InexactFloat64()

	if err := r.trips.UpdateRestante(ctx, ownerID, tripID, valor); err != nil {
		if errors.Is(err, tripstore.ErrNotFound) {
			return 0, ErrTripNotFound
		}
		return 0, fmt.Errorf("persist balance: %w", err)
	}

	r.log.Debug("trip balance reconciled",
		zap.String("owner_id", ownerID),
		zap.String("viagem_id", tripID.Hex()),
		zap.Float64("valor_restante", valor))
	return valor, nil
}

// PercentSpent returns how much of the budget is spent, clamped to
// [0, 100]. A zero or missing budget reads as 0% spent.
func PercentSpent(valorTotal, valorRestante float64) float64 {
	if valorTotal == 0 {
		return 0
	}
	pct := (valorTotal - valorRestante) / valorTotal * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// Progress bar colors by spend percentage.
const (
	CorVerde    = "bg-success"
	CorAmarelo  = "bg-warning"
	CorVermelho = "bg-danger"
)

// ProgressColor maps a spend percentage to its display color.
func ProgressColor(pct float64) string {
	switch {
	case pct <= 50:
		return CorVerde
	case pct <= 80:
		return CorAmarelo
	default:
		return CorVermelho
	}
}
