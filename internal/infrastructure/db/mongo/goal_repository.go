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

	"github.com/mindmate/mindmate-api/internal/core/domain"
)

const goalsCollection = "goals"

// GoalRepository persists goals, always scoped by owner.
type GoalRepository struct {
	coll *mongo.Collection
}

func NewGoalRepository(db *mongo.Database) *GoalRepository {
	return &GoalRepository{coll: db.Collection(goalsCollection)}
}

type mongoGoal struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      string             `bson:"user_id"`
	Title       string             `bson:"title"`
	Description string             `bson:"description,omitempty"`
	Category    string             `bson:"category"`
	Progress    int                `bson:"progress"`
	Milestones  []string           `bson:"milestones"`
	TargetDate  time.Time          `bson:"target_date"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func (r *GoalRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Goal, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer cur.Close(ctx)

	var goals []*domain.Goal
	for cur.Next(ctx) {
		var mg mongoGoal
		if err := cur.Decode(&mg); err != nil {
			return nil, fmt.Errorf("decode goal: %w", err)
		}
		goals = append(goals, mg.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	return goals, nil
}

func (r *GoalRepository) FindByID(ctx context.Context, userID, goalID string) (*domain.Goal, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(goalID)
	if err != nil {
		return nil, domain.ErrGoalNotFound
	}

	var mg mongoGoal
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid, "user_id": userID}).Decode(&mg); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrGoalNotFound
		}
		return nil, fmt.Errorf("find goal: %w", err)
	}
	return mg.toDomain(), nil
}

func (r *GoalRepository) Insert(ctx context.Context, goal *domain.Goal) (*domain.Goal, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoGoal{
		UserID:      goal.UserID,
		Title:       goal.Title,
		Description: goal.Description,
		Category:    goal.Category,
		Progress:    goal.Progress,
		Milestones:  goal.Milestones,
		TargetDate:  goal.TargetDate,
		CreatedAt:   goal.CreatedAt,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert goal: %w", err)
	}

	created := *goal
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *GoalRepository) Update(ctx context.Context, goal *domain.Goal) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(goal.ID)
	if err != nil {
		return domain.ErrGoalNotFound
	}

	update := bson.M{"$set": bson.M{
		"title":       goal.Title,
		"description": goal.Description,
		"category":    goal.Category,
		"progress":    goal.Progress,
		"milestones":  goal.Milestones,
		"target_date": goal.TargetDate,
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid, "user_id": goal.UserID}, update)
	if err != nil {
		return fmt.Errorf("update goal: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrGoalNotFound
	}
	return nil
}

func (r *GoalRepository) Delete(ctx context.Context, userID, goalID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(goalID)
	if err != nil {
		return domain.ErrGoalNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid, "user_id": userID})
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrGoalNotFound
	}
	return nil
}

// EnsureIndexes creates the owner index for goal listings.
func (r *GoalRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func (mg mongoGoal) toDomain() *domain.Goal {
	return &domain.Goal{
		ID:          mg.ID.Hex(),
		UserID:      mg.UserID,
		Title:       mg.Title,
		Description: mg.Description,
		Category:    mg.Category,
		Progress:    mg.Progress,
		Milestones:  mg.Milestones,
		TargetDate:  mg.TargetDate.UTC(),
		CreatedAt:   mg.CreatedAt.UTC(),
	}
}
