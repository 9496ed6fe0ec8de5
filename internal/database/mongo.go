package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Nasaee/go-dayplanner/internal/completion"
	"github.com/Nasaee/go-dayplanner/internal/task"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return client, nil
}

// EnsureMongoIndexes creates the date lookup index on tasks and the unique
// (date, task_id) index on completions. Duplicate completions already in the
// collection are collapsed to one first, or the unique index would refuse to
// build.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(task.Collection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "date", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("tasks date index: %w", err)
	}

	removed, err := dedupeCompletions(ctx, db.Collection(completion.Collection))
	if err != nil {
		return fmt.Errorf("dedupe completions: %w", err)
	}
	if removed > 0 {
		slog.Info("removed duplicate completions", "count", removed)
	}

	_, err = db.Collection(completion.Collection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "date", Value: 1}, {Key: "task_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("completions unique index: %w", err)
	}

	return nil
}

// dedupeCompletions keeps the first document of every (date, task_id) group
// and deletes the rest.
func dedupeCompletions(ctx context.Context, coll *mongo.Collection) (int64, error) {
	cur, err := coll.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "date", Value: "$date"}, {Key: "task_id", Value: "$task_id"}}},
			{Key: "ids", Value: bson.D{{Key: "$push", Value: "$_id"}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$match", Value: bson.D{{Key: "count", Value: bson.D{{Key: "$gt", Value: 1}}}}}},
	})
	if err != nil {
		return 0, err
	}

	var groups []struct {
		IDs []any `bson:"ids"`
	}
	if err := cur.All(ctx, &groups); err != nil {
		return 0, err
	}

	var extra []any
	for _, g := range groups {
		extra = append(extra, g.IDs[1:]...)
	}
	if len(extra) == 0 {
		return 0, nil
	}

	res, err := coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": extra}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
