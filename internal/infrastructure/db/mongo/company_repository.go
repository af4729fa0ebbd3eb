package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sktech/account-gateway/internal/core/domain"
)

const companiesCollection = "companies"

// CompanyRepository implements ports.CompanyRepository using MongoDB.
// Every write re-runs the quota invariants, so a record violating
// created <= allowed can never reach the collection regardless of which
// caller produced it.
type CompanyRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewCompanyRepository(db *mongo.Database) *CompanyRepository {
	return &CompanyRepository{db: db, coll: db.Collection(companiesCollection)}
}

func (r *CompanyRepository) Create(ctx context.Context, company *domain.Company) (*domain.Company, error) {
	if err := company.ValidateQuotas(); err != nil {
		return nil, err
	}

	id, err := nextSequence(ctx, r.db, companiesCollection)
	if err != nil {
		return nil, err
	}

	created := *company
	created.ID = id
	if _, err := r.coll.InsertOne(ctx, &created); err != nil {
		return nil, fmt.Errorf("insert company: %w", err)
	}
	return &created, nil
}

func (r *CompanyRepository) FindByID(ctx context.Context, id int64) (*domain.Company, error) {
	var company domain.Company
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&company); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("find company: %w", err)
	}
	return &company, nil
}

func (r *CompanyRepository) List(ctx context.Context) ([]domain.Company, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer cur.Close(ctx)

	var companies []domain.Company
	if err := cur.All(ctx, &companies); err != nil {
		return nil, fmt.Errorf("decode companies: %w", err)
	}
	return companies, nil
}

func (r *CompanyRepository) Update(ctx context.Context, company *domain.Company) error {
	if err := company.ValidateQuotas(); err != nil {
		return err
	}

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": company.ID}, company)
	if err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrCompanyNotFound
	}
	return nil
}

func (r *CompanyRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete company: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCompanyNotFound
	}
	return nil
}
