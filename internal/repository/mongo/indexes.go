package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func unique(keys bson.D) mongo.IndexModel {
	return mongo.IndexModel{Keys: keys, Options: options.Index().SetUnique(true)}
}

func indexModels() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		SchoolsCollection: {
			unique(bson.D{{Key: "name", Value: 1}}),
			// 邮箱可选，只对存在的值做唯一约束
			{
				Keys: bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true).
					SetPartialFilterExpression(bson.M{"email": bson.M{"$type": "string"}}),
			},
			{Keys: bson.D{{Key: "type", Value: 1}, {Key: "district", Value: 1}}},
		},
		FAQsCollection: {
			unique(bson.D{{Key: "question", Value: 1}}),
			{Keys: bson.D{{Key: "question", Value: "text"}, {Key: "answer", Value: "text"}}},
			{Keys: bson.D{{Key: "category", Value: 1}}},
		},
		NewsCollection: {
			unique(bson.D{{Key: "title", Value: 1}}),
			{Keys: bson.D{{Key: "title", Value: "text"}, {Key: "description", Value: "text"}}},
			{Keys: bson.D{{Key: "date", Value: -1}}},
		},
		EventsCollection: {
			unique(bson.D{{Key: "title", Value: 1}}),
			{Keys: bson.D{{Key: "date", Value: 1}, {Key: "startTime", Value: 1}}},
		},
		IssuesCollection: {
			unique(bson.D{{Key: "title", Value: 1}}),
		},
		UsersCollection: {
			unique(bson.D{{Key: "username", Value: 1}}),
			unique(bson.D{{Key: "email", Value: 1}}),
		},
	}
}

// EnsureIndexes 创建唯一索引与全文索引，重复执行是幂等的
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for name, models := range indexModels() {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}
	return nil
}
