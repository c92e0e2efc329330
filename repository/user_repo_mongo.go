package repository

import (
	"context"
	"errors"
	"time"

	"authbackend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

var ErrNotConnected = errors.New("database not connected")

type MongoUserRepo struct {
	DB  *mongo.Client
	Log *zap.Logger
}

func NewMongoUserRepo(db *mongo.Client, log *zap.Logger) *MongoUserRepo {
	return &MongoUserRepo{DB: db, Log: log}
}

func (r *MongoUserRepo) users() (*mongo.Collection, error) {
	if r.DB == nil {
		return nil, ErrNotConnected
	}
	return r.DB.Database("authbackend").Collection("users"), nil
}

func (r *MongoUserRepo) CreateUser(ctx context.Context, user *models.User) error {
	coll, err := r.users()
	if err != nil {
		return err
	}
	if user.ID == "" {
		user.ID = primitive.NewObjectID().Hex()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	_, err = coll.InsertOne(ctx, user)
	return err
}

func (r *MongoUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	coll, err := r.users()
	if err != nil {
		return nil, err
	}

	user := &models.User{}
	err = coll.FindOne(ctx, bson.M{"email": email}).Decode(user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func (r *MongoUserRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	coll, err := r.users()
	if err != nil {
		return nil, err
	}

	user := &models.User{}
	err = coll.FindOne(ctx, bson.M{"_id": id}).Decode(user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func (r *MongoUserRepo) SaveToken(ctx context.Context, id, token string) error {
	coll, err := r.users()
	if err != nil {
		return err
	}

	_, err = coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"token": token}})
	return err
}

func (r *MongoUserRepo) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	coll, err := r.users()
	if err != nil {
		return nil, err
	}

	cursor, err := coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []*models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}
