package completion

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoRepo struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepo {
	return &MongoRepo{coll: db.Collection(Collection)}
}

// Insert upserts on (date, task_id). Two concurrent upserts can both miss and
// race to insert; the unique index rejects the loser, which still means the
// pair is recorded.
func (r *MongoRepo) Insert(ctx context.Context, c Completion) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"date": c.Date, "task_id": c.TaskID},
		bson.M{"$setOnInsert": c},
		options.Update().SetUpsert(true),
	)
	if mongo.IsDuplicateKeyError(err) {
		return nil
	}
	return err
}

func (r *MongoRepo) Delete(ctx context.Context, date time.Time, taskID string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"date": date, "task_id": taskID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepo) Exists(ctx context.Context, date time.Time, taskID string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx,
		bson.M{"date": date, "task_id": taskID},
		options.Count().SetLimit(1),
	)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *MongoRepo) ListByDate(ctx context.Context, date time.Time) ([]Completion, error) {
	cur, err := r.coll.Find(ctx, bson.M{"date": date})
	if err != nil {
		return nil, err
	}

	var out []Completion
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
