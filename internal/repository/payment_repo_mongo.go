package repository

import (
	"context"
	"errors"

	"github.com/ticketkinen/server/internal/domain"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type PaymentRepository interface {
	// Create inserts a ledger entry. A second insert for the same
	// transaction id fails the unique index and returns
	// domain.ErrDuplicateTransaction.
	Create(ctx context.Context, payment *domain.Payment) error
	GetByTransactionID(ctx context.Context, transactionID string) (*domain.Payment, error)
	List(ctx context.Context) ([]domain.Payment, error)
}

type MongoPaymentRepository struct {
	col *mongo.Collection
}

func NewPaymentRepository(db *mongo.Database) PaymentRepository {
	return &MongoPaymentRepository{col: db.Collection(colPayments)}
}

func (r *MongoPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	res, err := r.col.InsertOne(ctx, payment)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateTransaction
		}
		return err
	}
	payment.ID = res.InsertedID.(bson.ObjectID)
	return nil
}

func (r *MongoPaymentRepository) GetByTransactionID(ctx context.Context, transactionID string) (*domain.Payment, error) {
	var p domain.Payment
	if err := r.col.FindOne(ctx, bson.M{"transactionId": transactionID}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *MongoPaymentRepository) List(ctx context.Context) ([]domain.Payment, error) {
	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "paidAt", Value: 1}}))
	if err != nil {
		return nil, err
	}
	payments := make([]domain.Payment, 0)
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

var _ PaymentRepository = (*MongoPaymentRepository)(nil)
