package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/MKhiriev/go-zk-vault/internal/config"
	"github.com/MKhiriev/go-zk-vault/internal/logger"
	"github.com/MKhiriev/go-zk-vault/models"
)

const (
	usersCollection = "users"
	vaultCollection = "vault_items"
)

// MongoDB is the alternative server backend. It owns the client and the
// database handle the mongo repositories share.
type MongoDB struct {
	client *mongo.Client
	db     *mongo.Database
	logger *logger.Logger
}

func NewConnectMongo(ctx context.Context, cfg config.Mongo, log *logger.Logger) (*MongoDB, error) {
	if cfg.URI == "" {
		return nil, errors.New("mongo uri is empty")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		log.Err(err).Str("func", "NewConnectMongo").Msg("error connecting to mongo")
		return nil, fmt.Errorf("error connecting to mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		log.Err(err).Str("func", "NewConnectMongo").Msg("error connecting to mongo (ping)")
		_ = client.Disconnect(ctx)
		return nil, err
	}
	log.Info().Str("func", "NewConnectMongo").Str("database", cfg.Database).Msg("connected to mongo successfully")

	return &MongoDB{client: client, db: client.Database(cfg.Database), logger: log}, nil
}

// EnsureIndexes is the mongo counterpart of the SQL migrations: a unique
// email and an (owner_id, updated_at) index for listings.
func (m *MongoDB) EnsureIndexes(ctx context.Context) error {
	_, err := m.db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("error creating users index: %w", err)
	}

	_, err = m.db.Collection(vaultCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "updated_at", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("error creating vault index: %w", err)
	}

	return nil
}

func (m *MongoDB) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

func (m *MongoDB) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

type mongoUserRepository struct {
	coll *mongo.Collection
}

func NewMongoUserRepository(m *MongoDB) UserRepository {
	return &mongoUserRepository{coll: m.db.Collection(usersCollection)}
}

// CreateUser inserts the account document. The salt is only ever written
// here: the repository has no update path for users.
func (r *mongoUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.User{}, ErrEmailAlreadyExists
		}
		log.Err(err).Str("func", "mongoUserRepository.CreateUser").Msg("error creating user")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

func (r *mongoUserRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "mongoUserRepository.FindUserByEmail").Msg("error finding user")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

type mongoVaultRepository struct {
	coll *mongo.Collection
}

func NewMongoVaultRepository(m *MongoDB) VaultRepository {
	return &mongoVaultRepository{coll: m.db.Collection(vaultCollection)}
}

func (r *mongoVaultRepository) ListVaultRecords(ctx context.Context, filter models.VaultFilter) ([]models.VaultRecord, error) {
	query := bson.M{"owner_id": filter.OwnerID}
	if prefix := models.TitleHint(filter.HintPrefix); prefix != "" {
		query["title_hint"] = bson.M{"$regex": "^" + regexp.QuoteMeta(prefix)}
	}

	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "mongoVaultRepository.ListVaultRecords").
			Str("owner_id", filter.OwnerID).
			Msg("failed to list vault records")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	records := make([]models.VaultRecord, 0, 32)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return records, nil
}

func (r *mongoVaultRepository) CreateVaultRecord(ctx context.Context, record models.VaultRecord) (models.VaultRecord, error) {
	if _, err := r.coll.InsertOne(ctx, record); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "mongoVaultRepository.CreateVaultRecord").
			Str("owner_id", record.OwnerID).
			Str("id", record.ID).
			Msg("failed to insert vault record")
		return models.VaultRecord{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return record, nil
}

func (r *mongoVaultRepository) UpdateVaultRecord(ctx context.Context, record models.VaultRecord) (models.VaultRecord, error) {
	update := bson.M{"$set": bson.M{
		"cipher":     record.Cipher,
		"iv":         record.IV,
		"title_hint": record.TitleHint,
		"updated_at": record.UpdatedAt,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.VaultRecord
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": record.ID, "owner_id": record.OwnerID}, update, opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.VaultRecord{}, ErrVaultRecordNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "mongoVaultRepository.UpdateVaultRecord").
			Str("owner_id", record.OwnerID).
			Str("id", record.ID).
			Msg("failed to update vault record")
		return models.VaultRecord{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return updated, nil
}

func (r *mongoVaultRepository) DeleteVaultRecord(ctx context.Context, id, ownerID string) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id, "owner_id": ownerID})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "mongoVaultRepository.DeleteVaultRecord").
			Str("owner_id", ownerID).
			Str("id", id).
			Msg("failed to delete vault record")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if result.DeletedCount == 0 {
		return ErrVaultRecordNotFound
	}

	return nil
}
