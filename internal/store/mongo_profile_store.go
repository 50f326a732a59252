package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"profilewizard/internal/domain"
)

// mongoProfile is the BSON shape of a profile document.
type mongoProfile struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	Username         string             `bson:"username"`
	Profession       string             `bson:"profession"`
	CompanyName      string             `bson:"companyName,omitempty"`
	AddressLine1     string             `bson:"addressLine1"`
	Country          string             `bson:"country"`
	State            string             `bson:"state"`
	City             string             `bson:"city"`
	SubscriptionPlan string             `bson:"subscriptionPlan"`
	Newsletter       bool               `bson:"newsletter"`
	Password         string             `bson:"password,omitempty"`
	ProfilePhoto     string             `bson:"profilePhoto,omitempty"`
	CreatedAt        time.Time          `bson:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt"`
}

func toMongoProfile(r domain.ProfileRecord) mongoProfile {
	return mongoProfile{
		Username:         r.Username.String(),
		Profession:       r.Profession,
		CompanyName:      r.CompanyName,
		AddressLine1:     r.AddressLine1,
		Country:          r.Country,
		State:            r.State,
		City:             r.City,
		SubscriptionPlan: r.SubscriptionPlan,
		Newsletter:       r.Newsletter,
		Password:         r.PasswordHash,
		ProfilePhoto:     r.PhotoPath,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

func (m mongoProfile) record() domain.ProfileRecord {
	return domain.ProfileRecord{
		ID:               domain.ProfileID(m.ID.Hex()),
		Username:         domain.Username(m.Username),
		Profession:       m.Profession,
		CompanyName:      m.CompanyName,
		AddressLine1:     m.AddressLine1,
		Country:          m.Country,
		State:            m.State,
		City:             m.City,
		SubscriptionPlan: m.SubscriptionPlan,
		Newsletter:       m.Newsletter,
		PasswordHash:     m.Password,
		PhotoPath:        m.ProfilePhoto,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// MongoProfileStore keeps profiles in a MongoDB collection with a unique
// index on username.
type MongoProfileStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// OpenMongoProfileStore connects to uri, pings the server and ensures the
// username index exists.
func OpenMongoProfileStore(ctx context.Context, uri, database, collection string) (*MongoProfileStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	coll := client.Database(database).Collection(collection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("username_unique"),
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to create username index: %w", err)
	}
	return &MongoProfileStore{client: client, coll: coll}, nil
}

// InsertProfile inserts record and returns the generated ObjectID in hex.
func (s *MongoProfileStore) InsertProfile(ctx context.Context, record domain.ProfileRecord) (domain.ProfileID, error) {
	res, err := s.coll.InsertOne(ctx, toMongoProfile(record))
	if mongo.IsDuplicateKeyError(err) {
		return "", &domain.ConflictError{Username: record.Username}
	}
	if err != nil {
		return "", fmt.Errorf("failed to insert profile: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return domain.ProfileID(oid.Hex()), nil
}

// FindProfileByUsername returns the profile with username, if any.
func (s *MongoProfileStore) FindProfileByUsername(
	ctx context.Context,
	username domain.Username,
) (domain.ProfileRecord, bool, error) {
	var doc mongoProfile
	err := s.coll.FindOne(ctx, bson.M{"username": username.String()}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.ProfileRecord{}, false, nil
	}
	if err != nil {
		return domain.ProfileRecord{}, false, fmt.Errorf("failed to find profile: %w", err)
	}
	return doc.record(), true, nil
}

// Close disconnects the client.
func (s *MongoProfileStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Compile-time assertion that MongoProfileStore implements domain.ProfileStore.
var _ domain.ProfileStore = (*MongoProfileStore)(nil)
