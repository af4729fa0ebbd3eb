package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sktech/account-gateway/internal/core/domain"
)

const rolesCollection = "roles"

// RoleRepository implements ports.RoleRepository using MongoDB. Role names
// are the document ids, which makes Ensure a plain upsert.
type RoleRepository struct {
	coll *mongo.Collection
}

func NewRoleRepository(db *mongo.Database) *RoleRepository {
	return &RoleRepository{coll: db.Collection(rolesCollection)}
}

func (r *RoleRepository) Ensure(ctx context.Context, role domain.Role) (bool, error) {
	res, err := r.coll.UpdateOne(
		ctx,
		bson.M{"_id": string(role)},
		bson.M{"$setOnInsert": bson.M{"_id": string(role)}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return false, fmt.Errorf("ensure role: %w", err)
	}
	return res.UpsertedCount > 0, nil
}

func (r *RoleRepository) List(ctx context.Context) ([]domain.Role, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer cur.Close(ctx)

	var roles []domain.Role
	for cur.Next(ctx) {
		var doc struct {
			ID string `bson:"_id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode role: %w", err)
		}
		roles = append(roles, domain.Role(doc.ID))
	}
	return roles, cur.Err()
}
