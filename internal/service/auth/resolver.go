package auth

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/Domenick1991/parkbooking/internal/apperrors"
	"github.com/Domenick1991/parkbooking/internal/domain"
	"github.com/Domenick1991/parkbooking/internal/logger"
	"github.com/Domenick1991/parkbooking/internal/repository"
	"github.com/golang-jwt/jwt/v5"
)

const (
	HeaderUserToken     = "x-user-token"
	HeaderAuthorization = "Authorization"

	userTokenPrefix = "Token-"
	bearerPrefix    = "Bearer "
	issuer          = "parkbooking"
)

type CallerResolver interface {
	Authenticate(ctx context.Context, userToken, authorization string) (*domain.User, error)
}

// Resolver turns request credentials into a known user. It accepts the
// legacy "Token-<id>" header and, when a secret is configured, HS256 bearer tokens.
type Resolver struct {
	users     repository.UserRepository
	jwtSecret []byte
	log       *logger.Logger
}

func NewResolver(users repository.UserRepository, jwtSecret string, log *logger.Logger) *Resolver {
	r := &Resolver{users: users, log: log}
	if jwtSecret != "" {
		r.jwtSecret = []byte(jwtSecret)
	}
	return r
}

func (r *Resolver) Authenticate(ctx context.Context, userToken, authorization string) (*domain.User, error) {
	var (
		id  int64
		err error
	)
	switch {
	case userToken != "":
		id, err = ParseUserToken(userToken)
	case authorization != "" && r.jwtSecret != nil:
		id, err = r.parseBearer(authorization)
	default:
		return nil, apperrors.Forbidden()
	}
	if err != nil {
		r.log.Debug("Rejected credentials", "error", err)
		return nil, apperrors.Forbidden()
	}

	user, err := r.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			r.log.Info("Credentials reference an unknown user", "user_id", id)
			return nil, apperrors.Forbidden()
		}
		r.log.Error("Failed to load caller", "user_id", id, "error", err)
		return nil, apperrors.Internal(err)
	}
	if !user.Role.Valid() {
		r.log.Warn("User has an unknown role", "user_id", id, "role", user.Role)
		return nil, apperrors.Forbidden()
	}
	return user, nil
}

// ParseUserToken extracts the user id from "Token-<id>".
func ParseUserToken(token string) (int64, error) {
	raw, ok := strings.CutPrefix(token, userTokenPrefix)
	if !ok {
		return 0, errors.New("missing token prefix")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, errors.New("user id must be positive")
	}
	return id, nil
}

// IssueToken signs a bearer token for userID.
func (r *Resolver) IssueToken(userID int64, ttl time.Duration) (string, error) {
	if r.jwtSecret == nil {
		return "", errors.New("jwt secret is not configured")
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(r.jwtSecret)
}

func (r *Resolver) parseBearer(header string) (int64, error) {
	raw, ok := strings.CutPrefix(header, bearerPrefix)
	if !ok {
		return 0, errors.New("authorization is not a bearer token")
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return r.jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return 0, err
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid subject")
	}
	return id, nil
}

var _ CallerResolver = (*Resolver)(nil)
