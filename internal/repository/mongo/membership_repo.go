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

const membershipCollectionName = "memberships"

// mongoMembershipRepository implements repository.MembershipRepository
type mongoMembershipRepository struct {
	collection *mongo.Collection
}

// NewMongoMembershipRepository creates a new Membership repository backed by MongoDB.
func NewMongoMembershipRepository(db *mongo.Database) repository.MembershipRepository {
	return &mongoMembershipRepository{
		collection: db.Collection(membershipCollectionName),
	}
}

// Create inserts a new membership profile into the database.
func (r *mongoMembershipRepository) Create(ctx context.Context, membership *domain.Membership) (primitive.ObjectID, error) {
	if membership.MemberID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("membership requires memberId")
	}

	membership.ID = primitive.NewObjectID()
	if membership.Status == "" {
		membership.Status = domain.MembershipActive
	}
	membership.JoinedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, membership)
	if err != nil {
		// Unique index on memberId keeps the profile one-to-one.
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrConflict
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted membership ID")
	}

	return insertedID, nil
}

// GetByMemberID retrieves the membership profile for a member account.
func (r *mongoMembershipRepository) GetByMemberID(ctx context.Context, memberID primitive.ObjectID) (*domain.Membership, error) {
	var membership domain.Membership
	filter := bson.M{"memberId": memberID}

	err := r.collection.FindOne(ctx, filter).Decode(&membership)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &membership, nil
}

// GetByTrainerID retrieves all memberships assigned to a specific trainer.
func (r *mongoMembershipRepository) GetByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Membership, error) {
	var memberships []domain.Membership
	filter := bson.M{"trainerId": trainerID}
	findOptions := options.Find().SetSort(bson.D{{Key: "joinedAt", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &memberships); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}

	return memberships, nil
}

// CountActiveByTrainerID counts memberships with status=active assigned to the trainer.
func (r *mongoMembershipRepository) CountActiveByTrainerID(ctx context.Context, trainerID primitive.ObjectID) (int64, error) {
	filter := bson.M{"trainerId": trainerID, "status": domain.MembershipActive}
	return r.collection.CountDocuments(ctx, filter)
}

// SetTrainer sets or clears the trainer reference on a membership.
// Passing nil clears the assignment.
func (r *mongoMembershipRepository) SetTrainer(ctx context.Context, memberID primitive.ObjectID, trainerID *primitive.ObjectID) error {
	filter := bson.M{"memberId": memberID}

	var update bson.M
	if trainerID == nil {
		update = bson.M{"$unset": bson.M{"trainerId": ""}}
	} else {
		update = bson.M{"$set": bson.M{"trainerId": *trainerID}}
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// SetStatus updates the membership status tag.
func (r *mongoMembershipRepository) SetStatus(ctx context.Context, memberID primitive.ObjectID, status domain.MembershipStatus) error {
	filter := bson.M{"memberId": memberID}
	update := bson.M{"$set": bson.M{"status": status}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureMembershipIndexes creates necessary indexes for the memberships collection.
func EnsureMembershipIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// One membership per member account
			Keys:    bson.D{{Key: "memberId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			// Finding a trainer's members
			Keys:    bson.D{{Key: "trainerId", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index(),
		},
	}

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
