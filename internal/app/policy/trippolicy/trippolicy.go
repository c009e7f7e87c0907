// internal/app/policy/trippolicy/trippolicy.go
package trippolicy

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AcceptedChecker answers whether a guest holds an accepted invitation for
// a trip. The invitation store implements it.
type AcceptedChecker interface {
	HasAccepted(ctx context.Context, guestID, ownerID string, viagemID primitive.ObjectID) (bool, error)
}

// CanAccessTrip reports whether travelerID may read and write the trip
// owned by ownerID:
//   - the owner always can, regardless of invitation state;
//   - anyone else needs a guest-side invitation whose status is exactly
//     "aceito" — pending, declined and revoked all deny.
//
// Returns an error only for store failures, so callers can distinguish
// "not authorized" (false, nil) from "could not decide" (false, err).
func CanAccessTrip(ctx context.Context, invites AcceptedChecker, travelerID, ownerID string, viagemID primitive.ObjectID) (bool, error) {
	if travelerID == ownerID {
		return true, nil
	}
	return invites.HasAccepted(ctx, travelerID, ownerID, viagemID)
}
