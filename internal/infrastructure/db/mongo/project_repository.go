package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Vt221001/employee-management/internal/core/domain"
)

const projectCollection = "projects"

// ProjectRepository persists projects in MongoDB.
type ProjectRepository struct {
	coll *mongo.Collection
}

func NewProjectRepository(db *mongo.Database) *ProjectRepository {
	return &ProjectRepository{coll: db.Collection(projectCollection)}
}

type projectDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	Status      string             `bson:"status"`
	ManagerID   string             `bson:"manager_id"`
	TeamIDs     []string           `bson:"team,omitempty"`
	StartDate   int64              `bson:"start_date"`
	EndDate     int64              `bson:"end_date"`
	CreatedAt   int64              `bson:"created_at"`
	UpdatedAt   int64              `bson:"updated_at"`
}

func (d projectDoc) toDomain() *domain.Project {
	return &domain.Project{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		Status:      domain.ProjectStatus(d.Status),
		ManagerID:   d.ManagerID,
		TeamIDs:     d.TeamIDs,
		StartDate:   unixToTime(d.StartDate),
		EndDate:     unixToTime(d.EndDate),
		CreatedAt:   unixToTime(d.CreatedAt),
		UpdatedAt:   unixToTime(d.UpdatedAt),
	}
}

func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	now := time.Now().UTC()
	doc := projectDoc{
		Name:        project.Name,
		Description: project.Description,
		Status:      string(project.Status),
		ManagerID:   project.ManagerID,
		TeamIDs:     project.TeamIDs,
		StartDate:   project.StartDate.Unix(),
		EndDate:     project.EndDate.Unix(),
		CreatedAt:   now.Unix(),
		UpdatedAt:   now.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}

	id, _ := res.InsertedID.(primitive.ObjectID)
	doc.ID = id
	return doc.toDomain(), nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*domain.Project, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrProjectNotFound
	}

	var doc projectDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("find project: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ProjectRepository) List(ctx context.Context) ([]*domain.Project, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer cur.Close(ctx)

	var projects []*domain.Project
	for cur.Next(ctx) {
		var doc projectDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode project: %w", err)
		}
		projects = append(projects, doc.toDomain())
	}
	return projects, cur.Err()
}

func (r *ProjectRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count projects: %w", err)
	}
	return n, nil
}

func (r *ProjectRepository) SetTeam(ctx context.Context, projectID string, teamIDs []string) error {
	oid, err := primitive.ObjectIDFromHex(projectID)
	if err != nil {
		return domain.ErrProjectNotFound
	}

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"team":       teamIDs,
		"updated_at": time.Now().UTC().Unix(),
	}})
	if err != nil {
		return fmt.Errorf("set project team: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}
