package task

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoRepo struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepo {
	return &MongoRepo{coll: db.Collection(Collection)}
}

func (r *MongoRepo) Insert(ctx context.Context, t *Task) error {
	_, err := r.coll.InsertOne(ctx, t)
	return err
}

func (r *MongoRepo) FindByDate(ctx context.Context, date time.Time) ([]Task, error) {
	cur, err := r.coll.Find(ctx, bson.M{"date": date})
	if err != nil {
		return nil, err
	}

	var tasks []Task
	if err := cur.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *MongoRepo) FindByID(ctx context.Context, id string) (*Task, error) {
	var t Task
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *MongoRepo) UpdateDescription(ctx context.Context, id string, description *string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"task_description": description}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepo) DeleteByDateAndID(ctx context.Context, date time.Time, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"date": date, "_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
