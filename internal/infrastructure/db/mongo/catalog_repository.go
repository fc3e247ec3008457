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

const (
	productCollection  = "products"
	photoCollection    = "photos"
	categoryCollection = "categories"
)

// deletedFilter translates the ports filter into a bson predicate on the
// is_deleted flag. The default hides flagged rows.
func deletedFilter(base bson.M, f ports.DeletedFilter) bson.M {
	switch f {
	case ports.DeletedOnly:
		base["is_deleted"] = true
	case ports.DeletedAll:
		// no predicate
	default:
		base["is_deleted"] = false
	}
	return base
}

// --- Products ---

type MongoProductRepository struct {
	coll *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *MongoProductRepository {
	return &MongoProductRepository{coll: db.Collection(productCollection)}
}

type mongoProduct struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description,omitempty"`
	ReceiptDate time.Time          `bson:"receipt_date"`
	Price       float64            `bson:"price"`
	CategoryIDs []string           `bson:"category_ids,omitempty"`
	IsDeleted   bool               `bson:"is_deleted"`
}

func (r *MongoProductRepository) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	doc := mongoProduct{
		Name:        p.Name,
		Description: p.Description,
		ReceiptDate: p.ReceiptDate,
		Price:       p.Price,
		CategoryIDs: p.CategoryIDs,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}
	created := *p
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *MongoProductRepository) FindByID(ctx context.Context, id string, filter ports.DeletedFilter) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrProductNotFound
	}
	var mp mongoProduct
	if err := r.coll.FindOne(ctx, deletedFilter(bson.M{"_id": oid}, filter)).Decode(&mp); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return toDomainProduct(&mp), nil
}

func (r *MongoProductRepository) List(ctx context.Context, filter ports.DeletedFilter) ([]*domain.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "receipt_date", Value: -1}})
	cur, err := r.coll.Find(ctx, deletedFilter(bson.M{}, filter), opts)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Product
	for cur.Next(ctx) {
		var mp mongoProduct
		if err := cur.Decode(&mp); err != nil {
			return nil, fmt.Errorf("decode product: %w", err)
		}
		out = append(out, toDomainProduct(&mp))
	}
	return out, cur.Err()
}

func (r *MongoProductRepository) Update(ctx context.Context, p *domain.Product) error {
	oid, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		return domain.ErrProductNotFound
	}
	update := bson.M{"$set": bson.M{
		"name":         p.Name,
		"description":  p.Description,
		"receipt_date": p.ReceiptDate,
		"price":        p.Price,
		"category_ids": p.CategoryIDs,
	}}
	res, err := r.coll.UpdateByID(ctx, oid, update)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *MongoProductRepository) SoftDelete(ctx context.Context, id string) error {
	return softDelete(ctx, r.coll, id, domain.ErrProductNotFound)
}

func toDomainProduct(mp *mongoProduct) *domain.Product {
	return &domain.Product{
		ID:          mp.ID.Hex(),
		Name:        mp.Name,
		Description: mp.Description,
		ReceiptDate: mp.ReceiptDate.UTC(),
		Price:       mp.Price,
		CategoryIDs: mp.CategoryIDs,
		IsDeleted:   mp.IsDeleted,
	}
}

// softDelete flags a live row by hex id; notFound is returned when nothing
// matched. Already-flagged rows are excluded from the filter, so a repeat
// delete reports not-found instead of succeeding silently.
func softDelete(ctx context.Context, coll *mongo.Collection, id string, notFound error) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return notFound
	}
	res, err := coll.UpdateOne(ctx,
		bson.M{"_id": oid, "is_deleted": false},
		bson.M{"$set": bson.M{"is_deleted": true}})
	if err != nil {
		return fmt.Errorf("soft delete: %w", err)
	}
	if res.MatchedCount == 0 {
		return notFound
	}
	return nil
}

// --- Photos ---

type MongoPhotoRepository struct {
	coll *mongo.Collection
}

func NewPhotoRepository(db *mongo.Database) *MongoPhotoRepository {
	return &MongoPhotoRepository{coll: db.Collection(photoCollection)}
}

type mongoPhoto struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	ProductID string             `bson:"product_id"`
	URL       string             `bson:"url"`
	IsDeleted bool               `bson:"is_deleted"`
}

func (r *MongoPhotoRepository) Create(ctx context.Context, p *domain.Photo) (*domain.Photo, error) {
	res, err := r.coll.InsertOne(ctx, mongoPhoto{ProductID: p.ProductID, URL: p.URL})
	if err != nil {
		return nil, fmt.Errorf("insert photo: %w", err)
	}
	created := *p
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *MongoPhotoRepository) FindByID(ctx context.Context, id string, filter ports.DeletedFilter) (*domain.Photo, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPhotoNotFound
	}
	var mp mongoPhoto
	if err := r.coll.FindOne(ctx, deletedFilter(bson.M{"_id": oid}, filter)).Decode(&mp); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrPhotoNotFound
		}
		return nil, fmt.Errorf("find photo: %w", err)
	}
	return toDomainPhoto(&mp), nil
}

func (r *MongoPhotoRepository) List(ctx context.Context, filter ports.DeletedFilter) ([]*domain.Photo, error) {
	return r.list(ctx, deletedFilter(bson.M{}, filter))
}

func (r *MongoPhotoRepository) ListByProduct(ctx context.Context, productID string) ([]*domain.Photo, error) {
	return r.list(ctx, bson.M{"product_id": productID, "is_deleted": false})
}

func (r *MongoPhotoRepository) list(ctx context.Context, filter bson.M) ([]*domain.Photo, error) {
	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Photo
	for cur.Next(ctx) {
		var mp mongoPhoto
		if err := cur.Decode(&mp); err != nil {
			return nil, fmt.Errorf("decode photo: %w", err)
		}
		out = append(out, toDomainPhoto(&mp))
	}
	return out, cur.Err()
}

func (r *MongoPhotoRepository) Update(ctx context.Context, p *domain.Photo) error {
	oid, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		return domain.ErrPhotoNotFound
	}
	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"product_id": p.ProductID, "url": p.URL}})
	if err != nil {
		return fmt.Errorf("update photo: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPhotoNotFound
	}
	return nil
}

func (r *MongoPhotoRepository) SoftDelete(ctx context.Context, id string) error {
	return softDelete(ctx, r.coll, id, domain.ErrPhotoNotFound)
}

func toDomainPhoto(mp *mongoPhoto) *domain.Photo {
	return &domain.Photo{
		ID:        mp.ID.Hex(),
		ProductID: mp.ProductID,
		URL:       mp.URL,
		IsDeleted: mp.IsDeleted,
	}
}

// --- Categories ---

type MongoCategoryRepository struct {
	coll *mongo.Collection
}

func NewCategoryRepository(db *mongo.Database) *MongoCategoryRepository {
	return &MongoCategoryRepository{coll: db.Collection(categoryCollection)}
}

type mongoCategory struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description,omitempty"`
	IsDeleted   bool               `bson:"is_deleted"`
}

func (r *MongoCategoryRepository) Create(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	res, err := r.coll.InsertOne(ctx, mongoCategory{Name: c.Name, Description: c.Description})
	if err != nil {
		return nil, fmt.Errorf("insert category: %w", err)
	}
	created := *c
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *MongoCategoryRepository) FindByID(ctx context.Context, id string, filter ports.DeletedFilter) (*domain.Category, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCategoryNotFound
	}
	var mc mongoCategory
	if err := r.coll.FindOne(ctx, deletedFilter(bson.M{"_id": oid}, filter)).Decode(&mc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("find category: %w", err)
	}
	return toDomainCategory(&mc), nil
}

func (r *MongoCategoryRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Category, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return nil, domain.ErrCategoryNotFound
		}
		oids = append(oids, oid)
	}
	return r.list(ctx, bson.M{"_id": bson.M{"$in": oids}, "is_deleted": false}, nil)
}

func (r *MongoCategoryRepository) List(ctx context.Context, filter ports.DeletedFilter) ([]*domain.Category, error) {
	sort := options.Find().SetSort(bson.D{{Key: "name", Value: -1}})
	return r.list(ctx, deletedFilter(bson.M{}, filter), sort)
}

func (r *MongoCategoryRepository) list(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*domain.Category, error) {
	var cur *mongo.Cursor
	var err error
	if opts != nil {
		cur, err = r.coll.Find(ctx, filter, opts)
	} else {
		cur, err = r.coll.Find(ctx, filter)
	}
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Category
	for cur.Next(ctx) {
		var mc mongoCategory
		if err := cur.Decode(&mc); err != nil {
			return nil, fmt.Errorf("decode category: %w", err)
		}
		out = append(out, toDomainCategory(&mc))
	}
	return out, cur.Err()
}

func (r *MongoCategoryRepository) Update(ctx context.Context, c *domain.Category) error {
	oid, err := primitive.ObjectIDFromHex(c.ID)
	if err != nil {
		return domain.ErrCategoryNotFound
	}
	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"name": c.Name, "description": c.Description}})
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

func (r *MongoCategoryRepository) SoftDelete(ctx context.Context, id string) error {
	return softDelete(ctx, r.coll, id, domain.ErrCategoryNotFound)
}

func toDomainCategory(mc *mongoCategory) *domain.Category {
	return &domain.Category{
		ID:          mc.ID.Hex(),
		Name:        mc.Name,
		Description: mc.Description,
		IsDeleted:   mc.IsDeleted,
	}
}
