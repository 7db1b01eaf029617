package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/mamadbah2/herd/internal/config"
	"github.com/mamadbah2/herd/internal/domain/models"
)

const snapshotCollection = "herd_snapshots"

// Repository defines the interface for snapshot storage.
type Repository interface {
	SaveHerdSnapshot(ctx context.Context, snapshot models.HerdSnapshot) error
}

// MongoDBRepository implements the Repository interface for MongoDB.
type MongoDBRepository struct {
	client   *mongo.Client
	dbName   string
	collName string
	logger   *zap.Logger
}

// NewMongoDBRepository connects, pings and makes sure snapshots are unique per day.
func NewMongoDBRepository(ctx context.Context, cfg config.MongoDBConfig, logger *zap.Logger) (*MongoDBRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	repo := &MongoDBRepository{
		client:   client,
		dbName:   cfg.DBName,
		collName: snapshotCollection,
		logger:   logger,
	}

	index := mongo.IndexModel{
		Keys:    bson.D{{Key: "date", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := repo.collection().Indexes().CreateOne(ctx, index); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to create snapshot index: %w", err)
	}

	logger.Info("mongodb snapshot archive ready", zap.String("db", cfg.DBName))
	return repo, nil
}

func (r *MongoDBRepository) collection() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(r.collName)
}

// SaveHerdSnapshot stores the snapshot, replacing an earlier one for the same date.
func (r *MongoDBRepository) SaveHerdSnapshot(ctx context.Context, snapshot models.HerdSnapshot) error {
	_, err := r.collection().ReplaceOne(ctx,
		bson.D{{Key: "date", Value: snapshot.Date}},
		snapshot,
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert herd snapshot %s: %w", snapshot.Date, err)
	}
	r.logger.Debug("herd snapshot archived", zap.String("date", snapshot.Date))
	return nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
