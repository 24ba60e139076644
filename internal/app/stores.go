package app

import (
	"context"

	"Community_Portal/internal/model"
	"Community_Portal/internal/repository"
	mongorepo "Community_Portal/internal/repository/mongo"
	"Community_Portal/internal/repository/mysql"

	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// Stores 每类资源一个存储
type Stores struct {
	Schools repository.Store[model.School]
	FAQs    repository.Store[model.FAQ]
	News    repository.Store[model.News]
	Events  repository.Store[model.Event]
	HOA     repository.Store[model.HOAMember]
	Links   repository.Store[model.Link]
	Issues  repository.Store[model.Issue]
	Users   repository.Store[model.User]

	Ping func(ctx context.Context) error
}

func MongoStores(db *mongo.Database) Stores {
	return Stores{
		Schools: mongorepo.NewCollection[model.School](db, mongorepo.SchoolsCollection),
		FAQs:    mongorepo.NewCollection[model.FAQ](db, mongorepo.FAQsCollection),
		News:    mongorepo.NewCollection[model.News](db, mongorepo.NewsCollection),
		Events:  mongorepo.NewCollection[model.Event](db, mongorepo.EventsCollection),
		HOA:     mongorepo.NewCollection[model.HOAMember](db, mongorepo.HOACollection),
		Links:   mongorepo.NewCollection[model.Link](db, mongorepo.LinksCollection),
		Issues:  mongorepo.NewCollection[model.Issue](db, mongorepo.IssuesCollection),
		Users:   mongorepo.NewCollection[model.User](db, mongorepo.UsersCollection),
		Ping: func(ctx context.Context) error {
			return db.Client().Ping(ctx, nil)
		},
	}
}

func SQLStores(db *gorm.DB) Stores {
	return Stores{
		Schools: mysql.NewTable[model.School](db),
		FAQs:    mysql.NewTable[model.FAQ](db),
		News:    mysql.NewTable[model.News](db),
		Events:  mysql.NewTable[model.Event](db),
		HOA:     mysql.NewTable[model.HOAMember](db),
		Links:   mysql.NewTable[model.Link](db),
		Issues:  mysql.NewTable[model.Issue](db),
		Users:   mysql.NewTable[model.User](db),
		Ping: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
}
