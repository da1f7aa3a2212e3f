package audit

import (
	"context"
	"time"

	"github.com/DefiantLabs/crypto-tax/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	mOptions "go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const eventsCollection = "audit_events"

// Actions recorded on the trail.
const (
	ReportGenerated = "report.generated"
	ReportPersisted = "report.persisted"
	WalletFetched   = "wallet.fetched"
)

type Event struct {
	Action    string            `bson:"action" json:"action"`
	Subject   string            `bson:"subject" json:"subject"`
	Details   map[string]string `bson:"details,omitempty" json:"details,omitempty"`
	CreatedAt time.Time         `bson:"created_at" json:"created_at"`
}

// Trail is an append-only log of what the tool produced.
type Trail interface {
	Record(ctx context.Context, event Event) error
	Latest(ctx context.Context, limit int64) ([]Event, error)
}

type MongoTrail struct {
	pool *mongo.Database
}

func NewMongoTrail(pool *mongo.Database) *MongoTrail {
	return &MongoTrail{pool: pool}
}

// Connect opens the configured mongo database and makes sure the trail's index exists.
// The returned func disconnects the client.
func Connect(ctx context.Context, conf config.Mongo) (*MongoTrail, func(), error) {
	client, err := mongo.Connect(ctx, mOptions.Client().ApplyURI(conf.URI))
	if err != nil {
		return nil, nil, err
	}
	disconnect := func() {
		if err := client.Disconnect(context.Background()); err != nil {
			config.Log.Warn("Error disconnecting from mongo.", err)
		}
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		disconnect()
		return nil, nil, err
	}

	trail := NewMongoTrail(client.Database(conf.Database))
	if err := trail.EnsureIndexes(ctx); err != nil {
		disconnect()
		return nil, nil, err
	}

	return trail, disconnect, nil
}

// EnsureIndexes creates the created_at index. Creating an existing index is a no-op.
func (a *MongoTrail) EnsureIndexes(ctx context.Context) error {
	_, err := a.pool.Collection(eventsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	})
	return err
}

func (a *MongoTrail) Record(ctx context.Context, event Event) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	res, err := a.pool.Collection(eventsCollection).InsertOne(ctx, event)
	if err != nil {
		return err
	}
	config.Log.Debugf("Recorded audit event %s with ID %v", event.Action, res.InsertedID)
	return nil
}

// Latest returns up to limit events, newest first.
func (a *MongoTrail) Latest(ctx context.Context, limit int64) ([]Event, error) {
	opts := mOptions.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := a.pool.Collection(eventsCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}

	dbResult := make([]Event, 0)
	if err = cursor.All(ctx, &dbResult); err != nil {
		return nil, err
	}
	return dbResult, nil
}

// NopTrail discards events. It stands in when mongo is not configured.
type NopTrail struct{}

func (NopTrail) Record(context.Context, Event) error {
	return nil
}

func (NopTrail) Latest(context.Context, int64) ([]Event, error) {
	return nil, nil
}

// Open returns a mongo backed Trail when conf is enabled and a NopTrail otherwise.
func Open(ctx context.Context, conf config.Mongo) (Trail, func(), error) {
	if !conf.Enabled() {
		return NopTrail{}, func() {}, nil
	}
	return Connect(ctx, conf)
}
