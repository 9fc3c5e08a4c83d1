package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/haguru/sakura/internal/interfaces"
	"github.com/haguru/sakura/internal/models"
	"github.com/haguru/sakura/internal/userrepo"
	"github.com/haguru/sakura/pkg/helper"

	"go.mongodb.org/mongo-driver/bson"
	mongosdk "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	IDFIELD = "_id"
)

// usersDocument is the single document holding the whole collection.
// Replacing one document is atomic, which gives whole-collection saves.
type usersDocument struct {
	ID    string        `bson:"_id"`
	Users []models.User `bson:"users"`
}

// MongoUserRepository implements UserRepository on one MongoDB document.
type MongoUserRepository struct {
	collection *mongosdk.Collection
	documentID string
	logger     interfaces.Logger
}

// NewMongoUserRepository creates a new MongoDB repository instance.
func NewMongoUserRepository(collection *mongosdk.Collection, documentID string, logger interfaces.Logger) (interfaces.UserRepository, error) {
	if collection == nil {
		return nil, fmt.Errorf("collection cannot be nil")
	}
	if documentID == "" {
		return nil, fmt.Errorf("document id cannot be empty")
	}
	return &MongoUserRepository{collection: collection, documentID: documentID, logger: logger}, nil
}

func (r *MongoUserRepository) Init(ctx context.Context) error {
	if _, err := r.Load(ctx); err != nil {
		return fmt.Errorf("%s: %w", userrepo.ErrInitStore, err)
	}
	return nil
}

func (r *MongoUserRepository) Load(ctx context.Context) ([]models.User, error) {
	var doc usersDocument
	err := r.collection.FindOne(ctx, bson.M{IDFIELD: r.documentID}).Decode(&doc)
	if errors.Is(err, mongosdk.ErrNoDocuments) {
		r.logger.Info("users document not found, creating empty collection", "func", helper.GetFuncName(), "document_id", r.documentID)
		if err := r.Save(ctx, []models.User{}); err != nil {
			return nil, err
		}
		return []models.User{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", userrepo.ErrLoadUsers, err)
	}

	if doc.Users == nil {
		return []models.User{}, nil
	}
	return doc.Users, nil
}

func (r *MongoUserRepository) Save(ctx context.Context, users []models.User) error {
	if users == nil {
		users = []models.User{}
	}
	doc := usersDocument{ID: r.documentID, Users: users}

	_, err := r.collection.ReplaceOne(ctx, bson.M{IDFIELD: r.documentID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("%s: %w", userrepo.ErrSaveUsers, err)
	}
	return nil
}

// Close is a no-op; the client connection is owned by the caller.
func (r *MongoUserRepository) Close(ctx context.Context) error {
	return nil
}
