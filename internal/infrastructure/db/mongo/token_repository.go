package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cinema-app/shop-api/internal/core/domain"
)

const (
	regTokenCollection = "registration_tokens"
	sessionCollection  = "session_tokens"
)

// MongoRegistrationTokenRepository persists activation tokens. Timestamps are
// stored at full precision; the expiry comparison depends on it.
type MongoRegistrationTokenRepository struct {
	coll *mongo.Collection
}

func NewRegistrationTokenRepository(db *mongo.Database) *MongoRegistrationTokenRepository {
	return &MongoRegistrationTokenRepository{coll: db.Collection(regTokenCollection)}
}

type mongoRegToken struct {
	Value     string    `bson:"token"`
	AccountID string    `bson:"account_id"`
	CreatedAt time.Time `bson:"created_at"`
}

func (r *MongoRegistrationTokenRepository) Create(ctx context.Context, token *domain.RegistrationToken) error {
	doc := mongoRegToken{
		Value:     token.Value,
		AccountID: token.AccountID,
		CreatedAt: token.CreatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert registration token: %w", err)
	}
	return nil
}

func (r *MongoRegistrationTokenRepository) FindByValue(ctx context.Context, value string) (*domain.RegistrationToken, error) {
	var mt mongoRegToken
	if err := r.coll.FindOne(ctx, bson.M{"token": value}).Decode(&mt); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrTokenNotFound
		}
		return nil, fmt.Errorf("find registration token: %w", err)
	}
	return &domain.RegistrationToken{
		Value:     mt.Value,
		AccountID: mt.AccountID,
		CreatedAt: mt.CreatedAt.UTC(),
	}, nil
}

// Delete consumes the token. DeletedCount 0 means someone else already
// redeemed it and the caller must fail with not-found.
func (r *MongoRegistrationTokenRepository) Delete(ctx context.Context, value string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"token": value})
	if err != nil {
		return fmt.Errorf("delete registration token: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTokenNotFound
	}
	return nil
}

func (r *MongoRegistrationTokenRepository) DeleteByAccount(ctx context.Context, accountID string) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{"account_id": accountID}); err != nil {
		return fmt.Errorf("delete registration tokens: %w", err)
	}
	return nil
}

// MongoSessionTokenRepository persists session tokens with a unique index on
// account_id, making GetOrCreate safe under concurrent logins.
type MongoSessionTokenRepository struct {
	coll *mongo.Collection
}

func NewSessionTokenRepository(db *mongo.Database) *MongoSessionTokenRepository {
	return &MongoSessionTokenRepository{coll: db.Collection(sessionCollection)}
}

type mongoSessionToken struct {
	Key       string    `bson:"key"`
	AccountID string    `bson:"account_id"`
	CreatedAt time.Time `bson:"created_at"`
}

// GetOrCreate upserts on account_id with $setOnInsert, so a losing writer
// reads back the winner's key instead of inserting a second one.
func (r *MongoSessionTokenRepository) GetOrCreate(ctx context.Context, accountID, candidateKey string) (*domain.SessionToken, error) {
	filter := bson.M{"account_id": accountID}
	update := bson.M{"$setOnInsert": bson.M{
		"key":        candidateKey,
		"account_id": accountID,
		"created_at": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var mt mongoSessionToken
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&mt); err != nil {
		return nil, fmt.Errorf("get-or-create session token: %w", err)
	}
	return &domain.SessionToken{
		Key:       mt.Key,
		AccountID: mt.AccountID,
		CreatedAt: mt.CreatedAt.UTC(),
	}, nil
}

func (r *MongoSessionTokenRepository) FindByKey(ctx context.Context, key string) (*domain.SessionToken, error) {
	var mt mongoSessionToken
	if err := r.coll.FindOne(ctx, bson.M{"key": key}).Decode(&mt); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrTokenNotFound
		}
		return nil, fmt.Errorf("find session token: %w", err)
	}
	return &domain.SessionToken{
		Key:       mt.Key,
		AccountID: mt.AccountID,
		CreatedAt: mt.CreatedAt.UTC(),
	}, nil
}

func (r *MongoSessionTokenRepository) DeleteByAccount(ctx context.Context, accountID string) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{"account_id": accountID}); err != nil {
		return fmt.Errorf("delete session token: %w", err)
	}
	return nil
}
