// internal/app/store/drafts/store.go
package drafts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/workbookhub/internal/app/system/staging"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// DefaultTTL is how long an untouched draft survives.
const DefaultTTL = 24 * time.Hour

// ErrNotFound is returned when a draft does not exist, has expired, or
// belongs to another user.
var ErrNotFound = errors.New("draft not found")

// record is the stored form. The draft itself is kept as JSON so calendar
// dates keep their "2006-01-02" form.
type record struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"user_id"`
	Payload   string    `bson:"payload"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
	ExpiresAt time.Time `bson:"expires_at"`
}

// Store keeps staged workbooks between the create screen and publish.
type Store struct {
	c   *mongo.Collection
	ttl time.Duration
	now func() time.Time
}

// New creates a drafts Store. ttl <= 0 uses DefaultTTL.
func New(db *mongo.Database, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		c:   db.Collection("drafts"),
		ttl: ttl,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// EnsureIndexes creates the TTL and owner indexes.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetName("idx_drafts_ttl").SetExpireAfterSeconds(0),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "updated_at", Value: -1}},
			Options: options.Index().SetName("idx_drafts_user"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// Create stores d under a new id and returns the id.
func (s *Store) Create(ctx context.Context, userID string, d *staging.Draft) (string, error) {
	id := uuid.NewString()
	if err := s.Save(ctx, id, userID, d); err != nil {
		return "", err
	}
	return id, nil
}

// Save replaces the draft stored under id, creating it if needed, and
// pushes its expiry out by the TTL.
func (s *Store) Save(ctx context.Context, id, userID string, d *staging.Draft) error {
	if d == nil {
		return errors.New("save draft: nil draft")
	}
	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}

	now := s.now()
	filter := bson.M{"_id": id, "user_id": userID}
	update := bson.M{
		"$set": bson.M{
			"payload":    string(payload),
			"updated_at": now,
			"expires_at": now.Add(s.ttl),
		},
		"$setOnInsert": bson.M{"created_at": now},
	}
	_, err = s.c.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if mongo.IsDuplicateKeyError(err) {
		// Same id owned by someone else.
		return ErrNotFound
	}
	return err
}

// Get loads the draft id owned by userID.
func (s *Store) Get(ctx context.Context, id, userID string) (*staging.Draft, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	var rec record
	err := s.c.FindOne(ctx, bson.M{
		"_id":        id,
		"user_id":    userID,
		"expires_at": bson.M{"$gt": s.now()},
	}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var d staging.Draft
	if err := json.Unmarshal([]byte(rec.Payload), &d); err != nil {
		return nil, fmt.Errorf("decode draft %s: %w", id, err)
	}
	return &d, nil
}

// Delete removes the draft. Deleting a missing draft is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// PurgeExpired removes drafts past their expiry. MongoDB's TTL monitor does
// the same lazily; the cleanup worker calls this to keep the collection
// tight between monitor passes.
func (s *Store) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lte": s.now()}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Ping checks the underlying connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.c.Database().Client().Ping(ctx, readpref.Primary())
}
