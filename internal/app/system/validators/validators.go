// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	"github.com/mytripteam/mytrip/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EnsureAll creates collections (if missing) and tries to attach JSON-Schema
// validators. On servers that don't support collMod/validators (e.g. some
// DocumentDB versions), we log and skip gracefully.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	// helper: ensure collection exists (with truthful logging) and then validator (if provided)
	ensure := func(coll string, schema bson.M) {
		if _, err := ensureCollection(ctx, db, coll); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if schema == nil {
			return
		}
		if err := setValidator(ctx, db, coll, schema); err != nil {
			if isNoSuchCommand(err) || isNotImplemented(err) {
				zap.L().Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}

	// Core collections this app uses
	ensure("viajantes", viajantesSchema())
	ensure("viagens", viagensSchema())
	ensure("atividades", atividadesSchema())

	// Invitation collections: guest-side truth plus the owner-side mirror
	ensure("convites_viagem", convitesSchema())
	ensure("convites_espelho", convitesEspelhoSchema())

	// No validator needed; we still ensure the collection exists.
	ensure("oauth_states", nil)

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* ---------------------- collection helpers & logging ---------------------- */

// collectionExists returns true when <name> already exists.
// Uses ListCollectionNames to avoid "created collection" log when it didn't.
func collectionExists(ctx context.Context, db *mongo.Database, name string) (bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

// ensureCollection idempotently makes sure <name> exists.
// Returns created==true only if we actually created it.
func ensureCollection(ctx context.Context, db *mongo.Database, name string) (created bool, err error) {
	exists, listErr := collectionExists(ctx, db, name)
	if listErr == nil && exists {
		zap.L().Info("collection exists", zap.String("collection", name))
		return false, nil
	}
	// If listing failed, fall back to create-and-handle-race.
	if err := db.CreateCollection(ctx, name); err != nil {
		// NamespaceExists / already exists is fine (race or prior run).
		if isNamespaceExistsErr(err) {
			zap.L().Info("collection exists", zap.String("collection", name))
			return false, nil
		}
		zap.L().Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return false, err
	}
	zap.L().Info("created collection", zap.String("collection", name))
	return true, nil
}

/* ------------------------------ validators ------------------------------- */

func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	var out bson.M
	if err := db.RunCommand(ctx, cmd).Decode(&out); err != nil {
		return err
	}
	zap.L().Info("validator ensured", zap.String("collection", name))
	return nil
}

/* ------------------------- error helpers ------------------------- */

func isNamespaceExistsErr(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 48 || strings.Contains(strings.ToLower(ce.Message), "already exists")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "already exists") || strings.Contains(s, "namespace exists")
}

func isNoSuchCommand(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 59 || strings.Contains(strings.ToLower(ce.Message), "no such command")) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "no such command")
}

func isNotImplemented(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 115 ||
		strings.Contains(strings.ToLower(ce.Message), "not implemented") ||
		strings.Contains(strings.ToLower(ce.Message), "not supported")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "not implemented") || strings.Contains(s, "not supported")
}

/* ------------------------- JSON-Schema docs ---------------------- */

func viajantesSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"nome", "email", "is_verified"},
			"properties": bson.M{
				"nome":        bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"email":       bson.M{"bsonType": "string", "minLength": 3},
				"senha":       bson.M{"bsonType": bson.A{"string", "null"}},
				"is_verified": bson.M{"bsonType": "bool"},
				"created_at":  bson.M{"bsonType": "date"},
				"updated_at":  bson.M{"bsonType": "date"},
			},
		},
	}
}

func viagensSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"owner_id", "destino", "valor_total", "valor_restante"},
			"properties": bson.M{
				"owner_id":       bson.M{"bsonType": "string", "minLength": 1},
				"destino":        bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"destino_ci":     bson.M{"bsonType": "string"},
				"valor_total":    bson.M{"bsonType": bson.A{"double", "int", "long", "decimal"}},
				"valor_restante": bson.M{"bsonType": bson.A{"double", "int", "long", "decimal"}},
				"created_at":     bson.M{"bsonType": "date"},
				"updated_at":     bson.M{"bsonType": "date"},
			},
		},
	}
}

func atividadesSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"owner_id", "viagem_id", "nome_atividade", "valor_atividade"},
			"properties": bson.M{
				"owner_id":        bson.M{"bsonType": "string", "minLength": 1},
				"viagem_id":       bson.M{"bsonType": "objectId"},
				"nome_atividade":  bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"valor_atividade": bson.M{"bsonType": bson.A{"double", "int", "long", "decimal"}},
				"criado_por":      bson.M{"bsonType": "string"},
				"created_at":      bson.M{"bsonType": "date"},
				"updated_at":      bson.M{"bsonType": "date"},
			},
		},
	}
}

func convitesSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"guest_id", "owner_id", "viagem_id", "status"},
			"properties": bson.M{
				"guest_id":            bson.M{"bsonType": "string", "minLength": 1},
				"owner_id":            bson.M{"bsonType": "string", "minLength": 1},
				"viagem_id":           bson.M{"bsonType": "objectId"},
				"status":              bson.M{"enum": conviteStatusEnum()},
				"destino_snapshot":    bson.M{"bsonType": "string"},
				"owner_nome_snapshot": bson.M{"bsonType": "string"},
				"created_at":          bson.M{"bsonType": "date"},
				"updated_at":          bson.M{"bsonType": "date"},
			},
		},
	}
}

func convitesEspelhoSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"owner_id", "viagem_id", "guest_id", "status"},
			"properties": bson.M{
				"owner_id":   bson.M{"bsonType": "string", "minLength": 1},
				"viagem_id":  bson.M{"bsonType": "objectId"},
				"guest_id":   bson.M{"bsonType": "string", "minLength": 1},
				"status":     bson.M{"enum": conviteStatusEnum()},
				"created_at": bson.M{"bsonType": "date"},
				"updated_at": bson.M{"bsonType": "date"},
			},
		},
	}
}

func conviteStatusEnum() bson.A {
	return bson.A{
		models.ConvitePendente,
		models.ConviteAceito,
		models.ConviteRecusado,
		models.ConviteRevogado,
	}
}
