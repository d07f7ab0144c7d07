package database

import (
	"context"
	"errors"
	"time"

	"github.com/Ravenry/kacamerah/common/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var mongoClient *mongo.Client

// InitMongo 初始化文档数据库连接，并返回配置中的数据库
func InitMongo(ctx context.Context, cfg *config.MongoConfig) (*mongo.Database, error) {
	if cfg.URI == "" {
		return nil, errors.New("mongo uri is empty")
	}

	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	mongoClient = client
	return client.Database(cfg.Database), nil
}

// CloseMongo 断开文档数据库连接
func CloseMongo(ctx context.Context) error {
	if mongoClient == nil {
		return nil
	}
	return mongoClient.Disconnect(ctx)
}
