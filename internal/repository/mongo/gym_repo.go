package mongo

import (
	"context"
	"errors"
	"log"
	"musclefit/gym-app/internal/domain"
	"musclefit/gym-app/internal/repository"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	gymInfoCollectionName        = "gym_info"
	contactMessageCollectionName = "contact_messages"
)

// mongoGymRepository implements repository.GymRepository
type mongoGymRepository struct {
	infoCollection    *mongo.Collection
	contactCollection *mongo.Collection
}

// NewMongoGymRepository creates a new Gym repository backed by MongoDB.
func NewMongoGymRepository(db *mongo.Database) repository.GymRepository {
	return &mongoGymRepository{
		infoCollection:    db.Collection(gymInfoCollectionName),
		contactCollection: db.Collection(contactMessageCollectionName),
	}
}

// GetInfo retrieves the gym profile. A single document is expected.
func (r *mongoGymRepository) GetInfo(ctx context.Context) (*domain.GymInfo, error) {
	var info domain.GymInfo

	err := r.infoCollection.FindOne(ctx, bson.M{}).Decode(&info)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &info, nil
}

// UpsertInfo creates or replaces the gym profile document.
func (r *mongoGymRepository) UpsertInfo(ctx context.Context, info *domain.GymInfo) error {
	info.UpdatedAt = time.Now().UTC()

	filter := bson.M{}
	if info.ID != primitive.NilObjectID {
		filter = bson.M{"_id": info.ID}
	}

	update := bson.M{
		"$set": bson.M{
			"name":            info.Name,
			"email":           info.Email,
			"phone":           info.Phone,
			"whatsapp":        info.Whatsapp,
			"address":         info.Address,
			"city":            info.City,
			"state":           info.State,
			"postalCode":      info.PostalCode,
			"description":     info.Description,
			"establishedYear": info.EstablishedYear,
			"workingHours":    info.WorkingHours,
			"updatedAt":       info.UpdatedAt,
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := r.infoCollection.UpdateOne(ctx, filter, update, opts)
	return err
}

// CreateContactMessage stores a visitor enquiry.
func (r *mongoGymRepository) CreateContactMessage(ctx context.Context, msg *domain.ContactMessage) (primitive.ObjectID, error) {
	if msg.Email == "" || msg.Message == "" {
		return primitive.NilObjectID, errors.New("contact message requires email and message")
	}

	msg.ID = primitive.NewObjectID()
	msg.Read = false
	msg.CreatedAt = time.Now().UTC()

	result, err := r.contactCollection.InsertOne(ctx, msg)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted message ID")
	}

	return insertedID, nil
}

// GetUnreadContactMessages retrieves unread enquiries, newest first.
func (r *mongoGymRepository) GetUnreadContactMessages(ctx context.Context) ([]domain.ContactMessage, error) {
	var messages []domain.ContactMessage
	filter := bson.M{"read": false}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.contactCollection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}

	return messages, nil
}

// EnsureContactMessageIndexes creates necessary indexes for the contact_messages collection.
func EnsureContactMessageIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "read", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	}

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
