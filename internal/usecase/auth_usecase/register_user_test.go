package auth_test

import (
	"context"
	"testing"
	"time"

	"app/internal/domain/model"
	"app/internal/repository"
	auth "app/internal/usecase/auth_usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

type fakeHasher struct{}

func (h *fakeHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

func newRegisterForTest() (*auth.RegisterUserUsecase, *UserRepoMock) {
	repo := &UserRepoMock{}
	uc := auth.NewRegisterUserUsecase(repo, &fakeHasher{}, &fixedClock{now: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)})
	return uc, repo
}

func TestRegisterUser_Success(t *testing.T) {
	uc, repo := newRegisterForTest()
	ctx := context.Background()

	repo.On("FindByEmail", ctx, "owner@example.com").Return(nil, repository.ErrUserNotFound)
	repo.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
		return u.Email == "owner@example.com" &&
			u.Role == model.RoleShopOwner &&
			u.PasswordHash == "hashed:password123"
	})).Return(nil)

	out, err := uc.Execute(ctx, auth.RegisterUserInput{
		Name:     "Taro",
		Email:    "owner@example.com",
		Password: "password123",
		Role:     "shop_owner",
	})

	assert.NoError(t, err)
	assert.Equal(t, model.RoleShopOwner, out.User.Role)
	repo.AssertExpectations(t)
}

func TestRegisterUser_DuplicateEmail(t *testing.T) {
	uc, repo := newRegisterForTest()
	ctx := context.Background()

	repo.On("FindByEmail", ctx, "owner@example.com").
		Return(&model.User{ID: 1, Email: "owner@example.com"}, nil)

	_, err := uc.Execute(ctx, auth.RegisterUserInput{
		Name:     "Taro",
		Email:    "owner@example.com",
		Password: "password123",
		Role:     "shop_owner",
	})

	assert.ErrorIs(t, err, auth.ErrEmailAlreadyExists)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegisterUser_PasswordTooShort(t *testing.T) {
	uc, _ := newRegisterForTest()

	_, err := uc.Execute(context.Background(), auth.RegisterUserInput{
		Name:     "Taro",
		Email:    "owner@example.com",
		Password: "short",
		Role:     "shop_owner",
	})

	assert.ErrorIs(t, err, auth.ErrPasswordTooShort)
}

func TestRegisterUser_InvalidRole(t *testing.T) {
	uc, _ := newRegisterForTest()

	_, err := uc.Execute(context.Background(), auth.RegisterUserInput{
		Name:     "Taro",
		Email:    "owner@example.com",
		Password: "password123",
		Role:     "superuser",
	})

	assert.ErrorIs(t, err, auth.ErrInvalidRole)
}
