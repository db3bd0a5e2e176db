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

const userCollection = "users"

// UserRepository persists users in MongoDB. Emails are stored case-folded
// and the collection is expected to carry a unique index on email.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(userCollection)}
}

type userDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	Role         string             `bson:"role"`
	Status       string             `bson:"status"`
	Phone        string             `bson:"phone,omitempty"`
	Photo        string             `bson:"photo,omitempty"`
	RefreshToken string             `bson:"refresh_token,omitempty"`
	ProjectIDs   []string           `bson:"projects,omitempty"`
	CreatedAt    int64              `bson:"created_at"`
	UpdatedAt    int64              `bson:"updated_at"`
}

func (d userDoc) toDomain() *domain.User {
	return &domain.User{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Role:         domain.Role(d.Role),
		Status:       domain.UserStatus(d.Status),
		Phone:        d.Phone,
		Photo:        d.Photo,
		RefreshToken: d.RefreshToken,
		ProjectIDs:   d.ProjectIDs,
		CreatedAt:    unixToTime(d.CreatedAt),
		UpdatedAt:    unixToTime(d.UpdatedAt),
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	now := time.Now().UTC()
	doc := userDoc{
		Name:         user.Name,
		Email:        domain.NormalizeEmail(user.Email),
		PasswordHash: user.PasswordHash,
		Role:         string(user.Role),
		Status:       string(user.Status),
		Phone:        user.Phone,
		Photo:        user.Photo,
		CreatedAt:    now.Unix(),
		UpdatedAt:    now.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	id, _ := res.InsertedID.(primitive.ObjectID)
	doc.ID = id
	return doc.toDomain(), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var doc userDoc
	err := r.coll.FindOne(ctx, bson.M{"email": domain.NormalizeEmail(email)}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	var doc userDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	var users []*domain.User
	for cur.Next(ctx) {
		var doc userDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		users = append(users, doc.toDomain())
	}
	return users, cur.Err()
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func (r *UserRepository) Delete(ctx context.Context, userID string) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// SetRefreshToken overwrites the stored refresh token; an empty token clears
// it, revoking the session server-side.
func (r *UserRepository) SetRefreshToken(ctx context.Context, userID, token string) error {
	return r.updateField(ctx, userID, bson.M{"refresh_token": token})
}

func (r *UserRepository) SetStatus(ctx context.Context, userID string, status domain.UserStatus) error {
	return r.updateField(ctx, userID, bson.M{"status": string(status)})
}

func (r *UserRepository) SetPasswordHash(ctx context.Context, userID, hash string) error {
	return r.updateField(ctx, userID, bson.M{"password_hash": hash})
}

// UpdateProfile persists the mutable profile fields. Email, password hash,
// and the refresh token are deliberately not part of this update.
func (r *UserRepository) UpdateProfile(ctx context.Context, user *domain.User) error {
	return r.updateField(ctx, user.ID, bson.M{
		"name":  user.Name,
		"phone": user.Phone,
		"photo": user.Photo,
		"role":  string(user.Role),
	})
}

func (r *UserRepository) updateField(ctx context.Context, userID string, fields bson.M) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	fields["updated_at"] = time.Now().UTC().Unix()
	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
