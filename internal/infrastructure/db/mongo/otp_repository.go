package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mindmate/mindmate-api/internal/core/domain"
)

const otpsCollection = "otps"

// OTPRepository persists pending one-time codes. Expired rows are never
// swept; they simply stop matching the expiry filter.
type OTPRepository struct {
	coll *mongo.Collection
}

func NewOTPRepository(db *mongo.Database) *OTPRepository {
	return &OTPRepository{coll: db.Collection(otpsCollection)}
}

type mongoOTP struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Phone     string             `bson:"phone"`
	Code      string             `bson:"otp"`
	CreatedAt time.Time          `bson:"created_at"`
	ExpiresAt time.Time          `bson:"expires_at"`
}

// Find matches phone and code with the expiry filter applied in the query,
// mirroring the single findOne the web app issued.
func (r *OTPRepository) Find(ctx context.Context, phone, code string, now time.Time) (*domain.OneTimeCode, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"phone":      phone,
		"otp":        code,
		"expires_at": bson.M{"$gt": now},
	}

	var mo mongoOTP
	if err := r.coll.FindOne(ctx, filter).Decode(&mo); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInvalidOTP
		}
		return nil, fmt.Errorf("find otp: %w", err)
	}

	return &domain.OneTimeCode{
		ID:        mo.ID.Hex(),
		Phone:     mo.Phone,
		Code:      mo.Code,
		CreatedAt: mo.CreatedAt.UTC(),
		ExpiresAt: mo.ExpiresAt.UTC(),
	}, nil
}

func (r *OTPRepository) Insert(ctx context.Context, otp *domain.OneTimeCode) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoOTP{
		Phone:     otp.Phone,
		Code:      otp.Code,
		CreatedAt: otp.CreatedAt,
		ExpiresAt: otp.ExpiresAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert otp: %w", err)
	}
	return nil
}

func (r *OTPRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvalidOTP
	}
	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("delete otp: %w", err)
	}
	return nil
}

// EnsureIndexes creates the lookup index for verification queries.
func (r *OTPRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "phone", Value: 1}, {Key: "otp", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
