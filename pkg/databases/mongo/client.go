package mongo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/haguru/sakura/config"
	"github.com/haguru/sakura/internal/interfaces"
	"github.com/haguru/sakura/pkg/helper"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	MAXPOOLSIZE = 20
)

// MongoDBClient owns the driver connection and hands out collections.
type MongoDBClient struct {
	ServerOpts   *options.ServerAPIOptions
	client       *mongo.Client
	db           *mongo.Database
	databaseName string
	timeout      time.Duration
	logger       interfaces.Logger
}

// NewMongoDB returns an unconnected client for the given configuration.
func NewMongoDB(dbConfig config.MongoDBConfig, logger interfaces.Logger) *MongoDBClient {
	return &MongoDBClient{
		timeout:      dbConfig.Timeout,
		databaseName: dbConfig.DatabaseName,
		ServerOpts:   config.BuildServerAPIOptions(dbConfig.Options),
		logger:       logger,
	}
}

// Connect establishes a connection using the provided DSN and pings the primary.
// The DSN must use the mongodb:// or mongodb+srv:// scheme.
func (m *MongoDBClient) Connect(ctx context.Context, dsn string) error {
	if dsn == "" {
		return fmt.Errorf("MongoDBClient: DSN is empty")
	}
	if !strings.HasPrefix(dsn, "mongodb://") && !strings.HasPrefix(dsn, "mongodb+srv://") {
		return fmt.Errorf("MongoDBClient: Invalid DSN format, expected 'mongodb://' or 'mongodb+srv://'")
	}

	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	clientOptions := options.Client().ApplyURI(dsn)
	if m.ServerOpts != nil && m.ServerOpts.ServerAPIVersion != "" {
		clientOptions.SetServerAPIOptions(m.ServerOpts)
	}
	clientOptions.SetMaxPoolSize(MAXPOOLSIZE)
	clientOptions.SetReadPreference(readpref.PrimaryPreferred())

	m.logger.Info("connecting to mongodb", "func", helper.GetFuncName(), "database", m.databaseName)

	var err error
	m.client, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		return err
	}

	if err = m.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("MongoDBClient: Failed to connect to MongoDB server: %w", err)
	}
	m.logger.Info("connected to mongodb", "func", helper.GetFuncName())

	m.db = m.client.Database(m.databaseName)
	return nil
}

// Collection returns a handle on the named collection of the configured database.
func (m *MongoDBClient) Collection(name string) (*mongo.Collection, error) {
	if m.db == nil {
		return nil, fmt.Errorf("MongoDBClient is not connected to a database")
	}
	return m.db.Collection(name), nil
}

// Disconnect closes the connection to the MongoDB database.
func (m *MongoDBClient) Disconnect(ctx context.Context) error {
	if m.client == nil {
		return nil
	}
	m.logger.Info("disconnecting from mongodb", "func", helper.GetFuncName())
	return m.client.Disconnect(ctx)
}

// Ping verifies the MongoDB connection health.
func (m *MongoDBClient) Ping(ctx context.Context) error {
	if m.client == nil {
		return fmt.Errorf("MongoDBClient is not connected")
	}
	return m.client.Ping(ctx, nil)
}
