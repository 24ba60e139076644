package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	SchoolsCollection = "schools"
	FAQsCollection    = "faqs"
	NewsCollection    = "news"
	EventsCollection  = "events"
	HOACollection     = "hoa_members"
	LinksCollection   = "links"
	IssuesCollection  = "issues"
	UsersCollection   = "users"
)

var (
	Client *mongo.Client
	DB     *mongo.Database
)

// Init 连接 MongoDB 并做一次 Ping 健康检查
func Init(ctx context.Context, uri, database string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(timeout))
	if err != nil {
		return err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return err
	}

	Client = client
	DB = client.Database(database)
	return nil
}

// Close 断开连接（在程序退出时调用）
func Close(ctx context.Context) error {
	if Client == nil {
		return nil
	}
	return Client.Disconnect(ctx)
}
