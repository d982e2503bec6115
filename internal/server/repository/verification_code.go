package repository

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dogcafe6ix/dogcafe-api/internal/server/model"
)

// VerificationCodeRepository defines the interface for one-time sign-in code
// operations.
type VerificationCodeRepository interface {
	// UpsertCode stores a code for the email, replacing any prior code.
	UpsertCode(ctx context.Context, email, code string, expiresAt time.Time) (*model.VerificationCode, error)

	// GetCode retrieves the active code for an email.
	GetCode(ctx context.Context, email string) (*model.VerificationCode, error)

	// DeleteCode removes the code for an email after a successful verification.
	DeleteCode(ctx context.Context, email string) error

	// DeleteExpiredCodes removes expired codes from the database.
	DeleteExpiredCodes(ctx context.Context) (int64, error)
}

const verificationCodeCollection = "verification_codes"

type verificationCodeMongoRepository struct {
	db *mongo.Database
}

// NewVerificationCodeMongoRepository creates a new MongoDB repository for
// verification codes.
func NewVerificationCodeMongoRepository(
	ctx context.Context,
	logger *zerolog.Logger,
	db *mongo.Database,
) VerificationCodeRepository {
	collection := db.Collection(verificationCodeCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0), // TTL index
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create verification code indexes")
	}

	return &verificationCodeMongoRepository{db: db}
}

func (r *verificationCodeMongoRepository) UpsertCode(
	ctx context.Context,
	email, code string,
	expiresAt time.Time,
) (*model.VerificationCode, error) {
	result := r.db.Collection(verificationCodeCollection).FindOneAndUpdate(
		ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"code": code, "expires_at": expiresAt}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var verificationCode model.VerificationCode
	if err := result.Decode(&verificationCode); err != nil {
		return nil, err
	}

	return &verificationCode, nil
}

func (r *verificationCodeMongoRepository) GetCode(
	ctx context.Context,
	email string,
) (*model.VerificationCode, error) {
	result := r.db.Collection(verificationCodeCollection).FindOne(ctx, bson.M{"email": email})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var verificationCode model.VerificationCode
	if err := result.Decode(&verificationCode); err != nil {
		return nil, err
	}

	return &verificationCode, nil
}

func (r *verificationCodeMongoRepository) DeleteCode(ctx context.Context, email string) error {
	_, err := r.db.Collection(verificationCodeCollection).DeleteOne(ctx, bson.M{"email": email})
	return err
}

func (r *verificationCodeMongoRepository) DeleteExpiredCodes(ctx context.Context) (int64, error) {
	filter := bson.M{
		"expires_at": bson.M{"$lt": time.Now()},
	}

	result, err := r.db.Collection(verificationCodeCollection).DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}

	return result.DeletedCount, nil
}
