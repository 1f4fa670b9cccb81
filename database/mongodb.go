// Package database provides the shared database clients: an instrumented
// MongoDB wrapper and a pgx pool constructor for Postgres-backed services.
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	mongooptions "go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/earnbaseio/earnbase-common/config"
	"github.com/earnbaseio/earnbase-common/metrics"
)

// MongoDB wraps a mongo client with health checks, CRUD helpers, and
// operation metrics.
type MongoDB struct {
	client  *mongo.Client
	db      *mongo.Database
	logger  *zap.Logger
	metrics *metrics.Registry
}

// ConnectMongoDB establishes a connection pool and verifies it with a ping.
func ConnectMongoDB(ctx context.Context, cfg config.MongoDBSettings, logger *zap.Logger, registry *metrics.Registry) (*MongoDB, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := mongooptions.Client().
		ApplyURI(cfg.URL).
		SetMinPoolSize(cfg.MinPoolSize).
		SetMaxPoolSize(cfg.MaxPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	logger.Info("MongoDB connection established",
		zap.String("db_name", cfg.DBName),
		zap.Uint64("min_pool_size", cfg.MinPoolSize),
		zap.Uint64("max_pool_size", cfg.MaxPoolSize),
	)

	return &MongoDB{
		client:  client,
		db:      client.Database(cfg.DBName),
		logger:  logger,
		metrics: registry,
	}, nil
}

// Client returns the underlying mongo client for direct access.
func (m *MongoDB) Client() *mongo.Client { return m.client }

// Database returns the configured database handle.
func (m *MongoDB) Database() *mongo.Database { return m.db }

// Ping reports whether the server is reachable.
func (m *MongoDB) Ping(ctx context.Context) error {
	if m.client == nil {
		return fmt.Errorf("mongodb not connected")
	}
	if err := m.client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("mongodb health check failed: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (m *MongoDB) Close(ctx context.Context) error {
	if m.client == nil {
		return nil
	}
	m.logger.Info("Closing MongoDB connection")
	if err := m.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect mongodb: %w", err)
	}
	m.client = nil
	m.db = nil
	return nil
}

func (m *MongoDB) observe(operation, collection string, start time.Time) {
	if m.metrics == nil {
		return
	}
	m.metrics.DBOperationCount.WithLabelValues(operation, collection).Inc()
	m.metrics.DBOperationLatency.WithLabelValues(operation, collection).Observe(time.Since(start).Seconds())
}

// FindOne returns a single document matching filter, or nil when none match.
func (m *MongoDB) FindOne(ctx context.Context, collection string, filter bson.M) (bson.M, error) {
	defer m.observe("find_one", collection, time.Now())

	var result bson.M
	err := m.db.Collection(collection).FindOne(ctx, filter).Decode(&result)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find one in %s: %w", collection, err)
	}
	return result, nil
}

// FindMany returns documents matching filter, up to limit when positive.
func (m *MongoDB) FindMany(ctx context.Context, collection string, filter bson.M, limit int64) ([]bson.M, error) {
	defer m.observe("find_many", collection, time.Now())

	opts := mongooptions.Find()
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := m.db.Collection(collection).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find in %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	var results []bson.M
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("decode results from %s: %w", collection, err)
	}
	return results, nil
}

// InsertOne inserts a document and returns its generated ID.
func (m *MongoDB) InsertOne(ctx context.Context, collection string, document any) (any, error) {
	defer m.observe("insert_one", collection, time.Now())

	result, err := m.db.Collection(collection).InsertOne(ctx, document)
	if err != nil {
		return nil, fmt.Errorf("insert into %s: %w", collection, err)
	}
	return result.InsertedID, nil
}

// UpdateOne applies update to the first document matching filter and reports
// whether a document was modified.
func (m *MongoDB) UpdateOne(ctx context.Context, collection string, filter, update bson.M) (bool, error) {
	defer m.observe("update_one", collection, time.Now())

	result, err := m.db.Collection(collection).UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("update in %s: %w", collection, err)
	}
	return result.ModifiedCount > 0, nil
}

// DeleteOne removes the first document matching filter and reports whether a
// document was deleted.
func (m *MongoDB) DeleteOne(ctx context.Context, collection string, filter bson.M) (bool, error) {
	defer m.observe("delete_one", collection, time.Now())

	result, err := m.db.Collection(collection).DeleteOne(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("delete from %s: %w", collection, err)
	}
	return result.DeletedCount > 0, nil
}

// CountDocuments counts documents matching filter.
func (m *MongoDB) CountDocuments(ctx context.Context, collection string, filter bson.M) (int64, error) {
	defer m.observe("count", collection, time.Now())

	count, err := m.db.Collection(collection).CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count in %s: %w", collection, err)
	}
	return count, nil
}
