// One-off: go run scripts/create_admin.go <email> <password> [username]
// Registration only ever creates role=user, so the first admin is seeded here.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	if len(os.Args) < 3 {
		log.Fatal("usage: create_admin <email> <password> [username]")
	}
	email, password := os.Args[1], os.Args[2]
	username := "admin"
	if len(os.Args) > 3 {
		username = os.Args[3]
	}

	mongoURL := os.Getenv("MONGO_URL")
	if mongoURL == "" {
		log.Fatal("MONGO_URL not set in environment")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURL))
	if err != nil {
		log.Fatalf("could not connect to mongo: %v", err)
	}
	defer client.Disconnect(ctx)

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("could not hash password: %v", err)
	}

	doc := bson.M{
		"_id":        primitive.NewObjectID().Hex(),
		"username":   username,
		"email":      email,
		"password":   string(hashed),
		"role":       "admin",
		"created_at": time.Now().UTC(),
	}
	if _, err := client.Database("authbackend").Collection("users").InsertOne(ctx, doc); err != nil {
		log.Fatalf("could not insert admin user: %v", err)
	}

	fmt.Printf("admin user %s (%s) created\n", username, email)
}
