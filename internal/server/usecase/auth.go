package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/dogcafe6ix/dogcafe-api/internal/server/config"
	"github.com/dogcafe6ix/dogcafe-api/internal/server/model"
	"github.com/dogcafe6ix/dogcafe-api/internal/server/repository"
	"github.com/dogcafe6ix/dogcafe-api/shared/auth"
	"github.com/dogcafe6ix/dogcafe-api/shared/mailer"
)

// AuthUsecase defines the business logic for the email code sign-in flow.
type AuthUsecase interface {
	// SignIn finds or creates the user for an email and issues a one-time
	// code, replacing any prior code for that email. It deliberately gives
	// no indication of whether the user already existed.
	SignIn(ctx context.Context, email string) error

	// Verify consumes the code for an email and, on success, returns a
	// signed bearer token together with the user record.
	Verify(ctx context.Context, email, code string) (string, *model.User, error)

	// Authenticate resolves a bearer token to its user. Any failure along
	// the way yields ErrInvalidToken.
	Authenticate(ctx context.Context, token string) (*model.User, error)
}

var (
	ErrInvalidCode  = errors.New("invalid verification code")
	ErrCodeExpired  = errors.New("verification code expired")
	ErrInvalidToken = errors.New("invalid token")
)

type authUsecase struct {
	userRepo  repository.UserRepository
	codeRepo  repository.VerificationCodeRepository
	jwtAuth   auth.JWTAuthenticator
	mailer    *mailer.Mailer
	serverCfg *config.ServerConfig
	logger    *zerolog.Logger
}

// NewAuthUsecase creates a new instance of AuthUsecase. The mailer may be
// nil, in which case issued codes are logged instead of emailed.
func NewAuthUsecase(
	userRepo repository.UserRepository,
	codeRepo repository.VerificationCodeRepository,
	jwtAuth auth.JWTAuthenticator,
	mailer *mailer.Mailer,
	serverCfg *config.ServerConfig,
	logger *zerolog.Logger,
) AuthUsecase {
	return &authUsecase{
		userRepo:  userRepo,
		codeRepo:  codeRepo,
		jwtAuth:   jwtAuth,
		mailer:    mailer,
		serverCfg: serverCfg,
		logger:    logger,
	}
}

func (u *authUsecase) SignIn(ctx context.Context, email string) error {
	if _, err := u.findOrCreateUser(ctx, email); err != nil {
		return err
	}

	code, err := generateVerificationCode()
	if err != nil {
		return err
	}

	expiresAt := time.Now().Add(u.serverCfg.Token.CodeExpiresIn)
	if _, err := u.codeRepo.UpsertCode(ctx, email, code, expiresAt); err != nil {
		return err
	}

	if u.mailer == nil {
		u.logger.Info().Str("email", email).Str("code", code).Msg("verification code issued")
		return nil
	}

	if err := u.mailer.SendVerificationCode(email, code, u.serverCfg.Token.CodeExpiresIn); err != nil {
		return fmt.Errorf("failed to send verification code: %w", err)
	}

	return nil
}

func (u *authUsecase) Verify(ctx context.Context, email, code string) (string, *model.User, error) {
	verification, err := u.codeRepo.GetCode(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", nil, ErrInvalidCode
		}
		return "", nil, err
	}

	if verification.Code != code {
		return "", nil, ErrInvalidCode
	}

	if time.Now().After(verification.ExpiresAt) {
		return "", nil, ErrCodeExpired
	}

	// Single use: the code is gone once verified.
	if err := u.codeRepo.DeleteCode(ctx, email); err != nil {
		return "", nil, err
	}

	// The user should already exist from sign-in; create defensively.
	user, err := u.findOrCreateUser(ctx, email)
	if err != nil {
		return "", nil, err
	}

	token, err := u.generateToken(user.ID)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

func (u *authUsecase) Authenticate(ctx context.Context, token string) (*model.User, error) {
	claims := &auth.SessionClaims{}
	if _, err := u.jwtAuth.ValidateTokenWithClaims(token, u.serverCfg.Token.Secret, claims); err != nil {
		return nil, ErrInvalidToken
	}

	userID, err := bson.ObjectIDFromHex(claims.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := u.userRepo.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	return user, nil
}

func (u *authUsecase) findOrCreateUser(ctx context.Context, email string) (*model.User, error) {
	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	user, err = u.userRepo.CreateUser(ctx, &model.User{Email: email})
	if err != nil {
		// A concurrent sign-in may have created the user first.
		if mongo.IsDuplicateKeyError(err) {
			return u.userRepo.GetUserByEmail(ctx, email)
		}
		return nil, err
	}

	return user, nil
}

func (u *authUsecase) generateToken(userID bson.ObjectID) (string, error) {
	now := time.Now()
	claims := auth.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(u.serverCfg.Token.ExpiresIn)),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    u.serverCfg.Token.Issuer,
			Audience:  jwt.ClaimStrings{u.serverCfg.Token.Issuer},
		},
	}

	return u.jwtAuth.GenerateToken(claims, u.serverCfg.Token.Secret)
}

// generateVerificationCode generates a 4-digit numeric code.
func generateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%04d", n.Int64()+1000), nil
}
