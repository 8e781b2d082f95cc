package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/raceops/race-weekend-api/internal/core/domain"
)

const eventsCollection = "events"

type MongoEventRepository struct {
	coll *mongo.Collection
}

func NewEventRepository(db *mongo.Database) *MongoEventRepository {
	return &MongoEventRepository{coll: db.Collection(eventsCollection)}
}

type mongoEvent struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	TrackName string             `bson:"track_name"`
	City      string             `bson:"city"`
	State     string             `bson:"state"`
	EventDate int64              `bson:"event_date"`
	CreatedAt int64              `bson:"created_at"`
}

func (r *MongoEventRepository) Create(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	doc := mongoEvent{
		Name:      e.Name,
		TrackName: e.TrackName,
		City:      e.City,
		State:     e.State,
		EventDate: e.EventDate.Unix(),
		CreatedAt: e.CreatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}

	oid, _ := res.InsertedID.(primitive.ObjectID)
	doc.ID = oid
	return doc.toDomain(), nil
}

func (r *MongoEventRepository) FindByID(ctx context.Context, id string) (*domain.Event, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrEventNotFound
	}

	var me mongoEvent
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&me); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("find event: %w", err)
	}
	return me.toDomain(), nil
}

func (r *MongoEventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "event_date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer cursor.Close(ctx)

	var events []*domain.Event
	for cursor.Next(ctx) {
		var me mongoEvent
		if err := cursor.Decode(&me); err != nil {
			return nil, fmt.Errorf("decode event: %w", err)
		}
		events = append(events, me.toDomain())
	}
	return events, cursor.Err()
}

func (me *mongoEvent) toDomain() *domain.Event {
	return &domain.Event{
		ID:        me.ID.Hex(),
		Name:      me.Name,
		TrackName: me.TrackName,
		City:      me.City,
		State:     me.State,
		EventDate: unixToTime(me.EventDate),
		CreatedAt: unixToTime(me.CreatedAt),
	}
}
