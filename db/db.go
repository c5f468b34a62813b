package db

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/kavia-common/netdevice-api/config"
	"github.com/kavia-common/netdevice-api/model/database"
)

// ErrNotFound is returned when an id is malformed or matches no device.
var ErrNotFound = errors.New("no device found with the given ID")

// ErrDuplicateIP is returned when the unique index on ip_address rejects a
// create or update.
var ErrDuplicateIP = errors.New("device with the same ip_address already exists")

const connectTimeout = 5 * time.Second

type DB struct {
	client  *mongo.Client
	devices *mongo.Collection
}

// New connects to MongoDB and verifies the connection with a ping so a bad
// endpoint fails at startup rather than on the first request.
func New(cfg *config.Config) (*DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.MongoURI).
		SetServerSelectionTimeout(3 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}

	return &DB{
		client:  client,
		devices: client.Database(cfg.DBName).Collection(cfg.CollectionName),
	}, nil
}

// Init ensures the collection indexes. CreateMany is a no-op for indexes
// that already exist under the same name, so this is safe on every startup.
func (db *DB) Init() error {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "ip_address", Value: 1}},
			Options: options.Index().SetName("uniq_ip").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetName("idx_name"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_status"),
		},
	}

	if _, err := db.devices.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to ensure indexes: %w", err)
	}
	return nil
}

// Ping reports whether the database is reachable.
func (db *DB) Ping(ctx context.Context) error {
	return db.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (db *DB) Close(ctx context.Context) error {
	return db.client.Disconnect(ctx)
}

// Drop removes the collection, indexes included. Tests use it to start from
// a clean slate; call Init afterwards.
func (db *DB) Drop(ctx context.Context) error {
	return db.devices.Drop(ctx)
}

// CreateDevice inserts a device and fills in its generated ID. A duplicate
// ip_address yields ErrDuplicateIP; the unique index makes this safe under
// concurrent creates.
func (db *DB) CreateDevice(ctx context.Context, device *database.Device) error {
	if device == nil {
		return errors.New("device must not be nil")
	}

	res, err := db.devices.InsertOne(ctx, device)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateIP
	}
	if err != nil {
		return fmt.Errorf("failed to create device: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	device.ID = oid
	return nil
}

func (db *DB) GetDeviceByID(ctx context.Context, id string) (database.Device, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// A malformed id cannot name any document.
		return database.Device{}, ErrNotFound
	}

	var device database.Device
	err = db.devices.FindOne(ctx, bson.M{"_id": oid}).Decode(&device)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return database.Device{}, ErrNotFound
	}
	if err != nil {
		return database.Device{}, fmt.Errorf("failed to get device: %w", err)
	}
	return device, nil
}

// GetDevices lists devices with optional filters: exact match on status and
// case-insensitive substring match on name. Filters combine with AND.
func (db *DB) GetDevices(ctx context.Context, status, name string) ([]database.Device, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	if name != "" {
		filter["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(name), Options: "i"}
	}

	cur, err := db.devices.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to get devices: %w", err)
	}

	var devices []database.Device
	if err := cur.All(ctx, &devices); err != nil {
		return nil, fmt.Errorf("failed to decode devices: %w", err)
	}
	return devices, nil
}

// UpdateDevice applies a $set of the given fields and returns the fresh
// document. Changing ip_address re-checks uniqueness through the same index
// as create.
func (db *DB) UpdateDevice(ctx context.Context, id string, patch map[string]any) (database.Device, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return database.Device{}, ErrNotFound
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var device database.Device
	err = db.devices.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M(patch)}, opts).Decode(&device)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return database.Device{}, ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return database.Device{}, ErrDuplicateIP
	}
	if err != nil {
		return database.Device{}, fmt.Errorf("failed to update device: %w", err)
	}
	return device, nil
}

// DeleteDevice removes a device. Deleting an absent or already-deleted id
// yields ErrNotFound, never silent success.
func (db *DB) DeleteDevice(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := db.devices.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete device: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
