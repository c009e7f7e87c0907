// internal/domain/models/traveler.go
package models

import "time"

// Traveler is an account record. The document id is the traveler's email
// (folded to lower case), which is also how every other collection refers
// to a traveler: owner_id, guest_id and criado_por are all traveler emails.
type Traveler struct {
	ID         string  `bson:"_id" json:"doc_id"`
	Nome       string  `bson:"nome" json:"nome"`
	Email      string  `bson:"email" json:"email"`
	SenhaHash  *string `bson:"senha,omitempty" json:"-"`
	IsVerified bool    `bson:"is_verified" json:"is_verified"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// HasPassword reports whether the traveler can sign in with a password.
// Social-login-only accounts carry no credential hash.
func (t Traveler) HasPassword() bool {
	return t.SenhaHash != nil && *t.SenhaHash != ""
}
