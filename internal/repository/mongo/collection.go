package mongo

import (
	"context"
	"errors"
	"fmt"

	"Community_Portal/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection 基于单个集合的 repository.Store 实现
type Collection[T any] struct {
	coll *mongo.Collection
}

func NewCollection[T any](db *mongo.Database, name string) *Collection[T] {
	return &Collection[T]{coll: db.Collection(name)}
}

func (c *Collection[T]) Create(ctx context.Context, doc *T) error {
	_, err := c.coll.InsertOne(ctx, doc)
	return translate(err)
}

func (c *Collection[T]) FindByID(ctx context.Context, id string) (*T, error) {
	var doc T
	if err := c.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		return nil, translate(err)
	}
	return &doc, nil
}

func (c *Collection[T]) FindOne(ctx context.Context, equals map[string]any) (*T, error) {
	var doc T
	filter := BuildFilter(repository.Query{Equals: equals})
	if err := c.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, translate(err)
	}
	return &doc, nil
}

func (c *Collection[T]) Find(ctx context.Context, q repository.Query) ([]T, error) {
	cursor, err := c.coll.Find(ctx, BuildFilter(q), FindOptions(q))
	if err != nil {
		return nil, translate(err)
	}
	list := make([]T, 0)
	if err := cursor.All(ctx, &list); err != nil {
		return nil, translate(err)
	}
	return list, nil
}

func (c *Collection[T]) Count(ctx context.Context, q repository.Query) (int64, error) {
	n, err := c.coll.CountDocuments(ctx, BuildFilter(q))
	return n, translate(err)
}

func (c *Collection[T]) Replace(ctx context.Context, id string, doc *T) error {
	res, err := c.coll.ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	res, err := c.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translate(err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// BuildFilter 将通用查询转换为 bson 过滤条件
func BuildFilter(q repository.Query) bson.M {
	filter := bson.M{}
	for field, value := range q.Equals {
		filter[fieldName(field)] = value
	}
	for _, r := range q.Ranges {
		cond := bson.M{}
		if r.From != nil {
			cond["$gte"] = *r.From
		}
		if r.Before != nil {
			cond["$lt"] = *r.Before
		}
		if len(cond) > 0 {
			filter[fieldName(r.Field)] = cond
		}
	}
	if q.Search != "" {
		filter["$text"] = bson.M{"$search": q.Search}
	}
	return filter
}

func FindOptions(q repository.Query) *options.FindOptions {
	opts := options.Find()
	if len(q.Sort) > 0 {
		sort := bson.D{}
		for _, s := range q.Sort {
			dir := 1
			if s.Desc {
				dir = -1
			}
			sort = append(sort, bson.E{Key: fieldName(s.Field), Value: dir})
		}
		opts.SetSort(sort)
	}
	if q.Skip > 0 {
		opts.SetSkip(int64(q.Skip))
	}
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}
	return opts
}

func fieldName(field string) string {
	if field == "id" {
		return "_id"
	}
	return field
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return repository.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return repository.ErrDuplicateKey
	default:
		return fmt.Errorf("mongo: %w", err)
	}
}
