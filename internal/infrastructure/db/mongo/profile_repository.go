package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/zafiro/crm/internal/core/domain"
)

const (
	collectionProfiles = "user_profiles"
	collectionRoles    = "employee_roles"
)

type ProfileRepository struct {
	profiles *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{profiles: db.Collection(collectionProfiles)}
}

type mongoRole struct {
	ID          string                      `bson:"_id"`
	Name        string                      `bson:"name"`
	Permissions map[string]domain.ActionSet `bson:"permissions"`
}

type mongoProfile struct {
	ID        string      `bson:"_id"`
	FirstName string      `bson:"first_name"`
	LastName  string      `bson:"last_name"`
	Email     string      `bson:"email"`
	Phone     *string     `bson:"phone,omitempty"`
	AvatarURL *string     `bson:"avatar_url,omitempty"`
	RoleID    string      `bson:"role_id"`
	Active    bool        `bson:"active"`
	Roles     []mongoRole `bson:"roles"`
}

// FindWithRole joins the profile to its role with a single aggregation.
func (r *ProfileRepository) FindWithRole(ctx context.Context, userID string) (*domain.UserProfile, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": userID}}},
		{{Key: "$limit", Value: 1}},
		{{Key: "$lookup", Value: bson.M{
			"from":         collectionRoles,
			"localField":   "role_id",
			"foreignField": "_id",
			"as":           "roles",
		}}},
	}

	cur, err := r.profiles.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	var docs []mongoProfile
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, domain.ErrProfileNotFound
	}
	return toUserProfile(docs[0])
}

func (r *ProfileRepository) UpdateRole(ctx context.Context, userID, roleID string) error {
	res, err := r.profiles.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"role_id": roleID, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func toUserProfile(doc mongoProfile) (*domain.UserProfile, error) {
	p := &domain.UserProfile{
		ID:        doc.ID,
		FirstName: doc.FirstName,
		LastName:  doc.LastName,
		Email:     doc.Email,
		Phone:     doc.Phone,
		AvatarURL: doc.AvatarURL,
		RoleID:    doc.RoleID,
		Active:    doc.Active,
	}
	if len(doc.Roles) == 0 {
		return p, nil
	}

	role := doc.Roles[0]
	name, err := domain.ParseRoleName(role.Name)
	if err != nil {
		return nil, fmt.Errorf("role %q: %w", role.Name, err)
	}
	p.Role = &domain.Role{
		ID:          role.ID,
		Name:        name,
		Permissions: domain.MatrixFrom(role.Permissions),
	}
	return p, nil
}
