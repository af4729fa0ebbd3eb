package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sktech/account-gateway/internal/core/domain"
)

const accountsCollection = "accounts"

// AccountRepository implements ports.AccountRepository using MongoDB.
type AccountRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{db: db, coll: db.Collection(accountsCollection)}
}

type accountDoc struct {
	ID           int64     `bson:"_id"`
	Email        string    `bson:"email"`
	FirstName    string    `bson:"first_name,omitempty"`
	LastName     string    `bson:"last_name,omitempty"`
	PasswordHash string    `bson:"password_hash"`
	IsActive     bool      `bson:"is_active"`
	IsStaff      bool      `bson:"is_staff"`
	IsSuperuser  bool      `bson:"is_superuser"`
	PrimaryRole  string    `bson:"primary_role"`
	CompanyID    int64     `bson:"company_id,omitempty"`
	CreatedAt    time.Time `bson:"created_at"`
}

func (d accountDoc) toDomain() *domain.Account {
	return &domain.Account{
		ID:           d.ID,
		Email:        d.Email,
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		PasswordHash: d.PasswordHash,
		IsActive:     d.IsActive,
		IsStaff:      d.IsStaff,
		IsSuperuser:  d.IsSuperuser,
		PrimaryRole:  domain.Role(d.PrimaryRole),
		CompanyID:    d.CompanyID,
		CreatedAt:    d.CreatedAt,
	}
}

// Create inserts a new account, allocating its integer id from the counters
// collection. A duplicate email maps to domain.ErrAccountExists.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	id, err := nextSequence(ctx, r.db, accountsCollection)
	if err != nil {
		return nil, err
	}

	doc := accountDoc{
		ID:           id,
		Email:        account.Email,
		FirstName:    account.FirstName,
		LastName:     account.LastName,
		PasswordHash: account.PasswordHash,
		IsActive:     account.IsActive,
		IsStaff:      account.IsStaff,
		IsSuperuser:  account.IsSuperuser,
		PrimaryRole:  string(account.PrimaryRole),
		CompanyID:    account.CompanyID,
		CreatedAt:    account.CreatedAt.UTC(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAccountExists
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}

	created := *account
	created.ID = id
	return &created, nil
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var doc accountDoc
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AccountRepository) FindByID(ctx context.Context, id int64) (*domain.Account, error) {
	var doc accountDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AccountRepository) ListByRole(ctx context.Context, role domain.Role) ([]domain.Account, error) {
	cur, err := r.coll.Find(ctx, bson.M{"primary_role": string(role)},
		options.Find().SetSort(bson.D{{Key: "email", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer cur.Close(ctx)

	var accounts []domain.Account
	for cur.Next(ctx) {
		var doc accountDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode account: %w", err)
		}
		accounts = append(accounts, *doc.toDomain())
	}
	return accounts, cur.Err()
}

func (r *AccountRepository) CountByCompany(ctx context.Context, companyID int64) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"company_id": companyID})
	if err != nil {
		return 0, fmt.Errorf("count accounts: %w", err)
	}
	return n, nil
}

// EnsureIndexes creates the unique email index backing login lookups.
func (r *AccountRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "primary_role", Value: 1}}},
		{Keys: bson.D{{Key: "company_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
