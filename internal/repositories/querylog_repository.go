package repositories

import (
	"context"

	"newsgraph-ai/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"newsgraph-ai/pkg/mongodb"
)

type QueryLogRepository interface {
	Create(queryLog *models.QueryLog) error
	FindRecent(page, pageSize int) ([]*models.QueryLog, int64, error)
}

type queryLogRepository struct {
	collection *mongo.Collection
}

func NewQueryLogRepository(mongoClient *mongodb.MongoDBClient) QueryLogRepository {
	return &queryLogRepository{
		collection: mongoClient.GetCollectionByName("query_logs"),
	}
}

func (r *queryLogRepository) Create(queryLog *models.QueryLog) error {
	_, err := r.collection.InsertOne(context.Background(), queryLog)
	return err
}

func (r *queryLogRepository) FindRecent(page, pageSize int) ([]*models.QueryLog, int64, error) {
	var logs []*models.QueryLog

	total, err := r.collection.CountDocuments(context.Background(), bson.M{})
	if err != nil {
		return nil, 0, err
	}

	skip := int64((page - 1) * pageSize)
	opts := options.Find().
		SetSkip(skip).
		SetLimit(int64(pageSize)).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(context.Background(), bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(context.Background())

	err = cursor.All(context.Background(), &logs)
	return logs, total, err
}
