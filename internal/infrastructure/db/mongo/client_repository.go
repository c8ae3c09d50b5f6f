package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/zafiro/crm/internal/core/domain"
)

const collectionClients = "clients"

// byLastName is the ordering used by every list-style query.
var byLastName = bson.D{{Key: "last_name", Value: 1}}

type ClientRepository struct {
	col *mongo.Collection
}

func NewClientRepository(db *mongo.Database) *ClientRepository {
	return &ClientRepository{col: db.Collection(collectionClients)}
}

func (r *ClientRepository) List(ctx context.Context) ([]domain.Client, error) {
	return r.find(ctx, bson.M{})
}

func (r *ClientRepository) FindByID(ctx context.Context, id string) (*domain.Client, error) {
	var c domain.Client
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrClientNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Create inserts a new client document with a generated id.
func (r *ClientRepository) Create(ctx context.Context, c domain.Client) (*domain.Client, error) {
	c.ID = uuid.NewString()
	if _, err := r.col.InsertOne(ctx, c); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%w: %w", domain.ErrDuplicateClient, err)
		}
		return nil, err
	}
	return &c, nil
}

func (r *ClientRepository) Update(ctx context.Context, id string, upd domain.UpdateClient, updatedAt time.Time) (*domain.Client, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var c domain.Client
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": clientSet(upd, updatedAt)}, opts).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrClientNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%w: %w", domain.ErrDuplicateClient, err)
		}
		return nil, err
	}
	return &c, nil
}

func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *ClientRepository) Search(ctx context.Context, query string) ([]domain.Client, error) {
	return r.find(ctx, searchFilter(query))
}

// EnsureIndexes creates necessary indexes on the clients collection.
func (r *ClientRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: byLastName},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *ClientRepository) find(ctx context.Context, filter any) ([]domain.Client, error) {
	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(byLastName))
	if err != nil {
		return nil, err
	}

	clients := []domain.Client{}
	if err := cur.All(ctx, &clients); err != nil {
		return nil, err
	}
	return clients, nil
}

// searchFilter matches query as a literal, case-insensitive substring of
// first name, last name or email.
func searchFilter(query string) bson.M {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	return bson.M{"$or": bson.A{
		bson.M{"first_name": pattern},
		bson.M{"last_name": pattern},
		bson.M{"email": pattern},
	}}
}

// clientSet builds the $set document for a partial update.
func clientSet(upd domain.UpdateClient, updatedAt time.Time) bson.M {
	set := bson.M{"updated_at": updatedAt}
	if upd.FirstName != nil {
		set["first_name"] = *upd.FirstName
	}
	if upd.LastName != nil {
		set["last_name"] = *upd.LastName
	}
	if upd.Email != nil {
		set["email"] = *upd.Email
	}
	if upd.Phone != nil {
		set["phone"] = *upd.Phone
	}
	if upd.Birthdate != nil {
		set["birthdate"] = *upd.Birthdate
	}
	if upd.Preferences != nil {
		set["preferences"] = upd.Preferences
	}
	if upd.Tags != nil {
		set["tags"] = *upd.Tags
	}
	if upd.Notes != nil {
		set["notes"] = *upd.Notes
	}
	if upd.Address != nil {
		set["address"] = upd.Address
	}
	return set
}
