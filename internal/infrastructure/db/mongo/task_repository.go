package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/raceops/race-weekend-api/internal/core/domain"
	"github.com/raceops/race-weekend-api/internal/core/ports"
)

const tasksCollection = "tasks"

// sortFields maps API sort names to document fields. Anything else falls
// back to _id.
var sortFields = map[string]string{
	"id":       "_id",
	"priority": "priority",
	"due_at":   "due_at",
	"title":    "title",
}

type MongoTaskRepository struct {
	coll *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *MongoTaskRepository {
	return &MongoTaskRepository{coll: db.Collection(tasksCollection)}
}

type mongoTask struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	EventID     string             `bson:"event_id"`
	AssigneeID  string             `bson:"assignee_id"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Category    string             `bson:"category"`
	Priority    int                `bson:"priority"`
	Completed   bool               `bson:"completed"`
	DueAt       *int64             `bson:"due_at,omitempty"`
	CreatedAt   int64              `bson:"created_at"`
	UpdatedAt   int64              `bson:"updated_at"`
}

func (r *MongoTaskRepository) Create(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	doc := fromDomainTask(t)

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}

	oid, _ := res.InsertedID.(primitive.ObjectID)
	doc.ID = oid
	return doc.toDomain(), nil
}

func (r *MongoTaskRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTaskNotFound
	}

	var mt mongoTask
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mt); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return mt.toDomain(), nil
}

func (r *MongoTaskRepository) Update(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	oid, err := primitive.ObjectIDFromHex(t.ID)
	if err != nil {
		return nil, domain.ErrTaskNotFound
	}

	doc := fromDomainTask(t)
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrTaskNotFound
	}

	doc.ID = oid
	return doc.toDomain(), nil
}

func (r *MongoTaskRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrTaskNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *MongoTaskRepository) List(ctx context.Context, filter ports.ListTasksFilter) ([]*domain.Task, error) {
	query := bson.M{}

	// Member scope: own tasks plus team-wide (no assignee).
	if filter.AssigneeScope != "" {
		query["assignee_id"] = bson.M{"$in": []string{filter.AssigneeScope, ""}}
	}
	if filter.EventID != "" {
		query["event_id"] = filter.EventID
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Completed != nil {
		query["completed"] = *filter.Completed
	}
	if filter.Priority != nil {
		query["priority"] = *filter.Priority
	}

	sortField, ok := sortFields[filter.Sort]
	if !ok {
		sortField = "_id"
	}
	order := 1
	if filter.Order == "desc" {
		order = -1
	}

	opts := options.Find().
		SetSort(bson.D{{Key: sortField, Value: order}}).
		SetSkip(int64(filter.Skip)).
		SetLimit(int64(filter.Limit))

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer cursor.Close(ctx)

	var tasks []*domain.Task
	for cursor.Next(ctx) {
		var mt mongoTask
		if err := cursor.Decode(&mt); err != nil {
			return nil, fmt.Errorf("decode task: %w", err)
		}
		tasks = append(tasks, mt.toDomain())
	}
	return tasks, cursor.Err()
}

func fromDomainTask(t *domain.Task) mongoTask {
	doc := mongoTask{
		EventID:     t.EventID,
		AssigneeID:  t.AssigneeID,
		Title:       t.Title,
		Description: t.Description,
		Category:    string(t.Category),
		Priority:    t.Priority,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt.Unix(),
		UpdatedAt:   t.UpdatedAt.Unix(),
	}
	if t.DueAt != nil {
		due := t.DueAt.Unix()
		doc.DueAt = &due
	}
	return doc
}

func (mt *mongoTask) toDomain() *domain.Task {
	task := &domain.Task{
		ID:          mt.ID.Hex(),
		EventID:     mt.EventID,
		AssigneeID:  mt.AssigneeID,
		Title:       mt.Title,
		Description: mt.Description,
		Category:    domain.TaskCategory(mt.Category),
		Priority:    mt.Priority,
		Completed:   mt.Completed,
		CreatedAt:   unixToTime(mt.CreatedAt),
		UpdatedAt:   unixToTime(mt.UpdatedAt),
	}
	if mt.DueAt != nil {
		due := time.Unix(*mt.DueAt, 0).UTC()
		task.DueAt = &due
	}
	return task
}
