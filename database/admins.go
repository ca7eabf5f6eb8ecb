package db

import (
	"context"
	"errors"
	"strings"

	"campusshield/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrDuplicateAdmin = errors.New("admin already exists")

type AdminStore struct {
	coll *mongo.Collection
}

func NewAdminStore(m *Mongo) *AdminStore {
	return &AdminStore{coll: m.Collection(AdminsCollection)}
}

func (s *AdminStore) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var admin models.Admin
	err := s.coll.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&admin)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (s *AdminStore) Create(ctx context.Context, admin *models.Admin) error {
	admin.Email = strings.ToLower(admin.Email)
	res, err := s.coll.InsertOne(ctx, admin)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateAdmin
	}
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		admin.ID = id
	}
	return nil
}

func (s *AdminStore) UpdatePassword(ctx context.Context, email, hash string) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"email": strings.ToLower(email)},
		bson.M{"$set": bson.M{"passwordHash": hash}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
