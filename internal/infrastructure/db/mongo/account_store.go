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

	"github.com/casa-moreno/catalog-system/internal/core/domain"
)

const usersCollection = "users"

// AccountStore is the MongoDB implementation of ports.AccountStore.
type AccountStore struct {
	coll *mongo.Collection
}

func NewAccountStore(db *mongo.Database) *AccountStore {
	return &AccountStore{coll: db.Collection(usersCollection)}
}

type mongoUser struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty"`
	Name                 string             `bson:"name"`
	Username             string             `bson:"username"`
	Email                string             `bson:"email"`
	Phone                string             `bson:"phone,omitempty"`
	PasswordHash         string             `bson:"password_hash"`
	Profile              string             `bson:"profile"`
	Active               bool               `bson:"active"`
	PasswordResetToken   string             `bson:"password_reset_token,omitempty"`
	PasswordResetExpires *time.Time         `bson:"password_reset_expires,omitempty"`
	CreatedAt            time.Time          `bson:"created_at"`
	UpdatedAt            time.Time          `bson:"updated_at"`
}

func toMongoUser(u *domain.User) mongoUser {
	return mongoUser{
		Name:                 u.Name,
		Username:             u.Username,
		Email:                u.Email,
		Phone:                u.Phone,
		PasswordHash:         u.PasswordHash,
		Profile:              u.Profile,
		Active:               u.Active,
		PasswordResetToken:   u.PasswordResetToken,
		PasswordResetExpires: u.PasswordResetExpires,
		CreatedAt:            u.CreatedAt,
		UpdatedAt:            u.UpdatedAt,
	}
}

func (mu mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:                   mu.ID.Hex(),
		Name:                 mu.Name,
		Username:             mu.Username,
		Email:                mu.Email,
		Phone:                mu.Phone,
		PasswordHash:         mu.PasswordHash,
		Profile:              mu.Profile,
		Active:               mu.Active,
		PasswordResetToken:   mu.PasswordResetToken,
		PasswordResetExpires: mu.PasswordResetExpires,
		CreatedAt:            mu.CreatedAt,
		UpdatedAt:            mu.UpdatedAt,
	}
}

func (s *AccountStore) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	res, err := s.coll.InsertOne(ctx, toMongoUser(user))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (s *AccountStore) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return s.findOne(ctx, bson.M{"_id": oid})
}

func (s *AccountStore) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.findOne(ctx, bson.M{"username": username})
}

func (s *AccountStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *AccountStore) FindByLoginOrEmail(ctx context.Context, login string) (*domain.User, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"username": login},
		bson.M{"email": login},
	}}
	return s.findOne(ctx, filter)
}

func (s *AccountStore) FindByResetToken(ctx context.Context, token string) (*domain.User, error) {
	return s.findOne(ctx, bson.M{"password_reset_token": token})
}

func (s *AccountStore) FindAll(ctx context.Context) ([]domain.User, error) {
	cur, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	var users []domain.User
	for cur.Next(ctx) {
		var mu mongoUser
		if err := cur.Decode(&mu); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		users = append(users, *mu.toDomain())
	}
	return users, cur.Err()
}

func (s *AccountStore) Save(ctx context.Context, user *domain.User) error {
	oid, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	doc := toMongoUser(user)
	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (s *AccountStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// SetResetToken overwrites the account's (token, expiry) pair: issuing a new
// reset token supersedes any previous one.
func (s *AccountStore) SetResetToken(ctx context.Context, userID, token string, expiresAt time.Time) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	update := bson.M{"$set": bson.M{
		"password_reset_token":   token,
		"password_reset_expires": expiresAt,
	}}
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("set reset token: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// ConsumeResetToken swaps the credential hash and clears the reset pair in a
// single FindOneAndUpdate filtered on the token still being stored. The
// filter is the single-use guard: a concurrent second consume matches no
// document and gets domain.ErrInvalidToken.
func (s *AccountStore) ConsumeResetToken(ctx context.Context, token, newHash string, now time.Time) (*domain.User, error) {
	filter := bson.M{"password_reset_token": token}
	update := bson.M{
		"$set": bson.M{
			"password_hash": newHash,
			"updated_at":    now,
		},
		"$unset": bson.M{
			"password_reset_token":   "",
			"password_reset_expires": "",
		},
	}

	var mu mongoUser
	err := s.coll.FindOneAndUpdate(ctx, filter, update).Decode(&mu)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInvalidToken
		}
		return nil, fmt.Errorf("consume reset token: %w", err)
	}
	return mu.toDomain(), nil
}

// EnsureIndexes creates the account indexes: unique username/email plus the
// reset-token lookup.
func (s *AccountStore) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "password_reset_token", Value: 1}}, Options: options.Index().SetSparse(true)},
	}

	_, err := s.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func (s *AccountStore) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var mu mongoUser
	if err := s.coll.FindOne(ctx, filter).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}
