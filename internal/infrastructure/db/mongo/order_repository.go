package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cinema-app/shop-api/internal/core/domain"
	"github.com/cinema-app/shop-api/internal/core/ports"
)

const orderCollection = "orders"

type MongoOrderRepository struct {
	coll *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *MongoOrderRepository {
	return &MongoOrderRepository{coll: db.Collection(orderCollection)}
}

type mongoOrder struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	AccountID  string             `bson:"account_id"`
	ProductIDs []string           `bson:"product_ids"`
	Phone      string             `bson:"phone"`
	Address    string             `bson:"address,omitempty"`
	Comment    string             `bson:"comment,omitempty"`
	CreatedAt  time.Time          `bson:"created_at"`
	IsDeleted  bool               `bson:"is_deleted"`
}

func (r *MongoOrderRepository) Create(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	doc := mongoOrder{
		AccountID:  o.AccountID,
		ProductIDs: o.ProductIDs,
		Phone:      o.Phone,
		Address:    o.Address,
		Comment:    o.Comment,
		CreatedAt:  o.CreatedAt,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}
	created := *o
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *MongoOrderRepository) FindByID(ctx context.Context, id string, filter ports.DeletedFilter) (*domain.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrOrderNotFound
	}
	var mo mongoOrder
	if err := r.coll.FindOne(ctx, deletedFilter(bson.M{"_id": oid}, filter)).Decode(&mo); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return toDomainOrder(&mo), nil
}

func (r *MongoOrderRepository) List(ctx context.Context, filter ports.DeletedFilter) ([]*domain.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, deletedFilter(bson.M{}, filter), opts)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Order
	for cur.Next(ctx) {
		var mo mongoOrder
		if err := cur.Decode(&mo); err != nil {
			return nil, fmt.Errorf("decode order: %w", err)
		}
		out = append(out, toDomainOrder(&mo))
	}
	return out, cur.Err()
}

func (r *MongoOrderRepository) Update(ctx context.Context, o *domain.Order) error {
	oid, err := primitive.ObjectIDFromHex(o.ID)
	if err != nil {
		return domain.ErrOrderNotFound
	}
	update := bson.M{"$set": bson.M{
		"product_ids": o.ProductIDs,
		"phone":       o.Phone,
		"address":     o.Address,
		"comment":     o.Comment,
	}}
	res, err := r.coll.UpdateByID(ctx, oid, update)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *MongoOrderRepository) SoftDelete(ctx context.Context, id string) error {
	return softDelete(ctx, r.coll, id, domain.ErrOrderNotFound)
}

// CountByAccount counts every order referencing the account, soft-deleted
// included: the reference is what blocks account deletion.
func (r *MongoOrderRepository) CountByAccount(ctx context.Context, accountID string) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"account_id": accountID})
	if err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return n, nil
}

func toDomainOrder(mo *mongoOrder) *domain.Order {
	return &domain.Order{
		ID:         mo.ID.Hex(),
		AccountID:  mo.AccountID,
		ProductIDs: mo.ProductIDs,
		Phone:      mo.Phone,
		Address:    mo.Address,
		Comment:    mo.Comment,
		CreatedAt:  mo.CreatedAt.UTC(),
		IsDeleted:  mo.IsDeleted,
	}
}
