package transcript

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSink persists transcript events to a MongoDB collection so
// finished games can be reviewed offline.
type MongoSink struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoSink connects, verifies the connection and returns a sink
// writing to the transcripts collection of the werewolf database.
func NewMongoSink(ctx context.Context, uri string) (*MongoSink, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	log.Println("[TRANSCRIPT] connected to MongoDB")
	return &MongoSink{
		client:     client,
		collection: client.Database("werewolf").Collection("transcripts"),
	}, nil
}

// Record inserts one event document. Transient insert failures are
// retried a few times with linear backoff; persistent failure is
// logged and swallowed, never surfaced to the game.
func (s *MongoSink) Record(ev Event) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var lastErr error
	for i := 0; i < 3; i++ {
		if _, err := s.collection.InsertOne(ctx, ev); err == nil {
			return
		} else {
			lastErr = err
		}
		time.Sleep(time.Millisecond * 100 * time.Duration(i+1))
	}
	log.Printf("[TRANSCRIPT] mongo insert failed: %v", lastErr)
}

func (s *MongoSink) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}
