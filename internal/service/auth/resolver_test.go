package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Domenick1991/parkbooking/internal/apperrors"
	"github.com/Domenick1991/parkbooking/internal/domain"
	"github.com/Domenick1991/parkbooking/internal/logger"
	"github.com/Domenick1991/parkbooking/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

const secret = "test-secret"

func TestParseUserToken(t *testing.T) {
	tests := []struct {
		token   string
		want    int64
		wantErr bool
	}{
		{token: "Token-1", want: 1},
		{token: "Token-42", want: 42},
		{token: "Token-", wantErr: true},
		{token: "Token-abc", wantErr: true},
		{token: "Token-0", wantErr: true},
		{token: "Token--3", wantErr: true},
		{token: "Foo-3", wantErr: true},
		{token: "1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := ParseUserToken(tt.token)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolver_Authenticate_UserToken(t *testing.T) {
	users := &MockUserRepository{}
	r := NewResolver(users, "", logger.Discard())
	ctx := context.Background()
	user := &domain.User{ID: 2, Role: domain.RoleStandard}

	users.On("GetByID", ctx, int64(2)).Return(user, nil).Once()

	got, err := r.Authenticate(ctx, "Token-2", "")

	require.NoError(t, err)
	assert.Equal(t, user, got)
	users.AssertExpectations(t)
}

func TestResolver_Authenticate_Rejections(t *testing.T) {
	tests := []struct {
		name          string
		userToken     string
		authorization string
		setup         func(users *MockUserRepository)
		wantKind      apperrors.Kind
	}{
		{name: "no credentials", wantKind: apperrors.KindForbidden},
		{name: "malformed token", userToken: "Token-x", wantKind: apperrors.KindForbidden},
		{name: "bearer without secret", authorization: "Bearer abc", wantKind: apperrors.KindForbidden},
		{
			name:      "unknown user",
			userToken: "Token-9",
			setup: func(users *MockUserRepository) {
				users.On("GetByID", mock.Anything, int64(9)).Return(nil, repository.ErrNotFound)
			},
			wantKind: apperrors.KindForbidden,
		},
		{
			name:      "unknown role",
			userToken: "Token-4",
			setup: func(users *MockUserRepository) {
				users.On("GetByID", mock.Anything, int64(4)).Return(&domain.User{ID: 4, Role: "root"}, nil)
			},
			wantKind: apperrors.KindForbidden,
		},
		{
			name:      "repository failure",
			userToken: "Token-1",
			setup: func(users *MockUserRepository) {
				users.On("GetByID", mock.Anything, int64(1)).Return(nil, errors.New("pool closed"))
			},
			wantKind: apperrors.KindInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := &MockUserRepository{}
			if tt.setup != nil {
				tt.setup(users)
			}
			r := NewResolver(users, "", logger.Discard())

			got, err := r.Authenticate(context.Background(), tt.userToken, tt.authorization)

			assert.Nil(t, got)
			assert.Equal(t, tt.wantKind, apperrors.KindOf(err))
		})
	}
}

func TestResolver_Authenticate_Bearer(t *testing.T) {
	users := &MockUserRepository{}
	r := NewResolver(users, secret, logger.Discard())
	ctx := context.Background()
	user := &domain.User{ID: 1, Role: domain.RoleAdmin}

	token, err := r.IssueToken(1, time.Minute)
	require.NoError(t, err)

	users.On("GetByID", ctx, int64(1)).Return(user, nil).Once()

	got, err := r.Authenticate(ctx, "", "Bearer "+token)

	require.NoError(t, err)
	assert.Equal(t, user, got)
	users.AssertExpectations(t)
}

func TestResolver_Authenticate_BearerRejected(t *testing.T) {
	r := NewResolver(&MockUserRepository{}, secret, logger.Discard())
	other := NewResolver(&MockUserRepository{}, "another-secret", logger.Discard())

	expired, err := r.IssueToken(1, -time.Minute)
	require.NoError(t, err)
	foreign, err := other.IssueToken(1, time.Minute)
	require.NoError(t, err)
	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    issuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}).SignedString([]byte(secret))
	require.NoError(t, err)

	for name, header := range map[string]string{
		"expired":        "Bearer " + expired,
		"wrong secret":   "Bearer " + foreign,
		"missing prefix": expired,
		"no subject":     "Bearer " + noSubject,
		"garbage":        "Bearer not-a-jwt",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := r.Authenticate(context.Background(), "", header)
			assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))
		})
	}
}

func TestResolver_IssueTokenWithoutSecret(t *testing.T) {
	r := NewResolver(&MockUserRepository{}, "", logger.Discard())

	_, err := r.IssueToken(1, time.Minute)

	assert.Error(t, err)
}
