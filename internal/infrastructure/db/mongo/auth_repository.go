package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/zafiro/crm/internal/core/domain"
)

const authCollection = "auth_users"

type CredentialRepository struct {
	coll *mongo.Collection
}

func NewCredentialRepository(db *mongo.Database) *CredentialRepository {
	return &CredentialRepository{coll: db.Collection(authCollection)}
}

type mongoCredential struct {
	UserID       string `bson:"user_id"`
	Email        string `bson:"email"`
	PasswordHash string `bson:"password_hash"`
}

// FindByEmail matches the email case-insensitively.
func (r *CredentialRepository) FindByEmail(ctx context.Context, email string) (*domain.Credential, error) {
	filter := bson.M{"email": primitive.Regex{Pattern: "^" + regexp.QuoteMeta(email) + "$", Options: "i"}}

	var mc mongoCredential
	if err := r.coll.FindOne(ctx, filter).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find credential: %w", err)
	}

	return &domain.Credential{
		UserID:       mc.UserID,
		Email:        mc.Email,
		PasswordHash: mc.PasswordHash,
	}, nil
}
