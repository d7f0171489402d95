package repository

import (
	"context"
	"errors"

	"github.com/ticketkinen/server/internal/domain"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	ListByUser(ctx context.Context, userEmail string) ([]domain.Booking, error)
	ListByVendor(ctx context.Context, vendorEmail string) ([]domain.Booking, error)
	UpdateBookingStatus(ctx context.Context, id string, status domain.BookingStatus) error
	MarkPaid(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type MongoBookingRepository struct {
	col *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) BookingRepository {
	return &MongoBookingRepository{col: db.Collection(colBookings)}
}

func (r *MongoBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	res, err := r.col.InsertOne(ctx, booking)
	if err != nil {
		return err
	}
	booking.ID = res.InsertedID.(bson.ObjectID)
	return nil
}

func (r *MongoBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var b domain.Booking
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&b); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *MongoBookingRepository) ListByUser(ctx context.Context, userEmail string) ([]domain.Booking, error) {
	return r.find(ctx, bson.M{"userEmail": userEmail})
}

func (r *MongoBookingRepository) ListByVendor(ctx context.Context, vendorEmail string) ([]domain.Booking, error) {
	return r.find(ctx, bson.M{"vendorEmail": vendorEmail})
}

func (r *MongoBookingRepository) UpdateBookingStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	return r.updateByID(ctx, id, bson.M{"$set": bson.M{"bookingStatus": status}})
}

func (r *MongoBookingRepository) MarkPaid(ctx context.Context, id string) error {
	return r.updateByID(ctx, id, bson.M{"$set": bson.M{"payment": domain.PaymentPaid}})
}

func (r *MongoBookingRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MongoBookingRepository) find(ctx context.Context, filter bson.M) ([]domain.Booking, error) {
	cursor, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	bookings := make([]domain.Booking, 0)
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *MongoBookingRepository) updateByID(ctx context.Context, id string, update bson.M) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ BookingRepository = (*MongoBookingRepository)(nil)
