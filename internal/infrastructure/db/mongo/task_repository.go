package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Vt221001/employee-management/internal/core/domain"
)

const taskCollection = "tasks"

// TaskRepository persists tasks in MongoDB.
type TaskRepository struct {
	coll *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{coll: db.Collection(taskCollection)}
}

type taskDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	AssignedTo  string             `bson:"assigned_to"`
	ProjectID   string             `bson:"project_id"`
	DueDate     int64              `bson:"due_date"`
	Priority    string             `bson:"priority"`
	Status      string             `bson:"status"`
	CreatedAt   int64              `bson:"created_at"`
	UpdatedAt   int64              `bson:"updated_at"`
}

func (d taskDoc) toDomain() *domain.Task {
	return &domain.Task{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		AssignedTo:  d.AssignedTo,
		ProjectID:   d.ProjectID,
		DueDate:     unixToTime(d.DueDate),
		Priority:    domain.TaskPriority(d.Priority),
		Status:      domain.TaskStatus(d.Status),
		CreatedAt:   unixToTime(d.CreatedAt),
		UpdatedAt:   unixToTime(d.UpdatedAt),
	}
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	now := time.Now().UTC()
	doc := taskDoc{
		Title:       task.Title,
		Description: task.Description,
		AssignedTo:  task.AssignedTo,
		ProjectID:   task.ProjectID,
		DueDate:     task.DueDate.Unix(),
		Priority:    string(task.Priority),
		Status:      string(task.Status),
		CreatedAt:   now.Unix(),
		UpdatedAt:   now.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}

	id, _ := res.InsertedID.(primitive.ObjectID)
	doc.ID = id
	return doc.toDomain(), nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTaskNotFound
	}

	var doc taskDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *TaskRepository) ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error) {
	return r.list(ctx, bson.M{"project_id": projectID}, options.Find())
}

// ListByAssignee returns the user's tasks ordered by due date.
func (r *TaskRepository) ListByAssignee(ctx context.Context, userID string) ([]*domain.Task, error) {
	return r.list(ctx, bson.M{"assigned_to": userID}, options.Find().SetSort(bson.D{{Key: "due_date", Value: 1}}))
}

func (r *TaskRepository) list(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*domain.Task, error) {
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer cur.Close(ctx)

	var tasks []*domain.Task
	for cur.Next(ctx) {
		var doc taskDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode task: %w", err)
		}
		tasks = append(tasks, doc.toDomain())
	}
	return tasks, cur.Err()
}

func (r *TaskRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count tasks: %w", err)
	}
	return n, nil
}

func (r *TaskRepository) SetStatus(ctx context.Context, taskID string, status domain.TaskStatus) error {
	oid, err := primitive.ObjectIDFromHex(taskID)
	if err != nil {
		return domain.ErrTaskNotFound
	}

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"status":     string(status),
		"updated_at": time.Now().UTC().Unix(),
	}})
	if err != nil {
		return fmt.Errorf("set task status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}
