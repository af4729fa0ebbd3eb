package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sktech/account-gateway/internal/core/domain"
	"github.com/sktech/account-gateway/internal/core/ports"
)

const loginEventsCollection = "login_events"

// AuditRepository implements ports.AuditRepository using MongoDB.
type AuditRepository struct {
	db *mongo.Database
}

func NewAuditRepository(db *mongo.Database) ports.AuditRepository {
	return &AuditRepository{db: db}
}

// InsertLoginEvent appends one login decision to the audit trail.
func (r *AuditRepository) InsertLoginEvent(ctx context.Context, event *domain.LoginEvent) error {
	doc := bson.M{
		"email":        event.Email,
		"timestamp":    event.Timestamp.UTC(),
		"remote_ip":    event.RemoteIP,
		"processed_at": time.Now().UTC(),
	}
	if event.AccountID != 0 {
		doc["account_id"] = event.AccountID
	}
	if event.DenyReason != "" {
		doc["deny_reason"] = event.DenyReason
	} else {
		doc["action"] = string(event.Action)
	}

	_, err := r.db.Collection(loginEventsCollection).InsertOne(ctx, doc)
	return err
}
