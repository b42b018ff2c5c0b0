package mongodb

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type MongoDbConfigModel struct {
	ConnectionUrl string
	DatabaseName  string
}

type MongoDBClient struct {
	Client       *mongo.Client
	DatabaseName string
}

// InitializeDatabaseConnection connects to MongoDB and pings it; failure is fatal
// because the query history store is required at startup.
func InitializeDatabaseConnection(config MongoDbConfigModel) *MongoDBClient {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.ConnectionUrl))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		log.Fatalf("Failed to ping MongoDB: %v", err)
	}

	log.Println("✨ Connected to MongoDB.")
	return &MongoDBClient{
		Client:       client,
		DatabaseName: config.DatabaseName,
	}
}

func (c *MongoDBClient) GetCollectionByName(name string) *mongo.Collection {
	return c.Client.Database(c.DatabaseName).Collection(name)
}
