package repository

import (
	"context"
	"errors"

	"github.com/ticketkinen/server/internal/domain"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	List(ctx context.Context) ([]domain.Ticket, error)
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	ListByVendor(ctx context.Context, vendorEmail string) ([]domain.Ticket, error)
	ListApproved(ctx context.Context, page, size int) (*domain.TicketPage, error)
	UpdateStatus(ctx context.Context, id string, status domain.TicketStatus) error
	UpdateOnAdd(ctx context.Context, id string, onAdd bool) error
	Update(ctx context.Context, id string, update domain.TicketUpdate) error
	Delete(ctx context.Context, id string) error
	DecrementAvailableSits(ctx context.Context, id string, quantity int) error
}

type MongoTicketRepository struct {
	col *mongo.Collection
}

func NewTicketRepository(db *mongo.Database) TicketRepository {
	return &MongoTicketRepository{col: db.Collection(colTickets)}
}

func (r *MongoTicketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	res, err := r.col.InsertOne(ctx, ticket)
	if err != nil {
		return err
	}
	ticket.ID = res.InsertedID.(bson.ObjectID)
	return nil
}

func (r *MongoTicketRepository) List(ctx context.Context) ([]domain.Ticket, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoTicketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var t domain.Ticket
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&t); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *MongoTicketRepository) ListByVendor(ctx context.Context, vendorEmail string) ([]domain.Ticket, error) {
	return r.find(ctx, bson.M{"vendorEmail": vendorEmail})
}

func (r *MongoTicketRepository) ListApproved(ctx context.Context, page, size int) (*domain.TicketPage, error) {
	filter := bson.M{"status": domain.TicketStatusApproved}

	cursor, err := r.col.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: 1}}).
		SetSkip(int64((page-1)*size)).
		SetLimit(int64(size)))
	if err != nil {
		return nil, err
	}
	tickets := make([]domain.Ticket, 0)
	if err := cursor.All(ctx, &tickets); err != nil {
		return nil, err
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &domain.TicketPage{Data: tickets, TotalTickets: total}, nil
}

func (r *MongoTicketRepository) UpdateStatus(ctx context.Context, id string, status domain.TicketStatus) error {
	return r.updateByID(ctx, id, bson.M{"$set": bson.M{"status": status}})
}

func (r *MongoTicketRepository) UpdateOnAdd(ctx context.Context, id string, onAdd bool) error {
	return r.updateByID(ctx, id, bson.M{"$set": bson.M{"onAdd": onAdd}})
}

func (r *MongoTicketRepository) Update(ctx context.Context, id string, update domain.TicketUpdate) error {
	return r.updateByID(ctx, id, bson.M{"$set": bson.M{
		"title":         update.Title,
		"from":          update.From,
		"to":            update.To,
		"category":      update.Category,
		"price":         update.Price,
		"availableSits": update.AvailableSits,
		"date":          update.Date,
		"time":          update.Time,
		"breakfast":     update.Breakfast,
		"meal":          update.Meal,
		"water":         update.Water,
		"security":      update.Security,
	}})
}

func (r *MongoTicketRepository) Delete(ctx context.Context, id string) error {
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

// DecrementAvailableSits applies the inventory decrement as a single guarded
// $inc, so concurrent settlements against the same ticket serialize in the
// store and the count can never go negative.
func (r *MongoTicketRepository) DecrementAvailableSits(ctx context.Context, id string, quantity int) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid, "availableSits": bson.M{"$gte": quantity}},
		bson.M{"$inc": bson.M{"availableSits": -quantity}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// Filter missed: either the ticket is gone or the remaining
		// inventory is smaller than the settled quantity.
		if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Err(); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return domain.ErrNotFound
			}
			return err
		}
		return domain.ErrInsufficientInventory
	}
	return nil
}

func (r *MongoTicketRepository) find(ctx context.Context, filter bson.M) ([]domain.Ticket, error) {
	cursor, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	tickets := make([]domain.Ticket, 0)
	if err := cursor.All(ctx, &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

func (r *MongoTicketRepository) updateByID(ctx context.Context, id string, update bson.M) error {
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

var _ TicketRepository = (*MongoTicketRepository)(nil)
