package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"app/internal/domain/model"
	"app/internal/repository"
	auth "app/internal/usecase/auth_usecase"

	"github.com/stretchr/testify/assert"
)

type fakeVerifier struct{ want string }

func (v *fakeVerifier) Verify(hashed string, plain string) error {
	if hashed == "hashed:"+plain {
		return nil
	}
	return errors.New("mismatch")
}

type fakeIssuer struct{}

func (i *fakeIssuer) Issue(userID int64, role model.Role, now time.Time) (string, time.Time, error) {
	return "token", now.Add(15 * time.Minute), nil
}

func newLoginForTest() (*auth.LoginUsecase, *UserRepoMock) {
	repo := &UserRepoMock{}
	uc := auth.NewLoginUsecase(repo, &fakeVerifier{}, &fakeIssuer{}, &fixedClock{now: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)})
	return uc, repo
}

func TestLogin_Success(t *testing.T) {
	uc, repo := newLoginForTest()
	ctx := context.Background()

	repo.On("FindByEmail", ctx, "owner@example.com").
		Return(&model.User{ID: 7, Email: "owner@example.com", PasswordHash: "hashed:password123", Role: model.RoleShopOwner}, nil)

	out, err := uc.Execute(ctx, auth.LoginInput{Email: "owner@example.com", Password: "password123"})

	assert.NoError(t, err)
	assert.Equal(t, "token", out.AccessToken)
	assert.Equal(t, int64(7), out.User.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	uc, repo := newLoginForTest()
	ctx := context.Background()

	repo.On("FindByEmail", ctx, "owner@example.com").
		Return(&model.User{ID: 7, PasswordHash: "hashed:password123"}, nil)

	_, err := uc.Execute(ctx, auth.LoginInput{Email: "owner@example.com", Password: "wrong"})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

// emailが無い場合もパスワード不一致と同じエラーを返す
func TestLogin_UnknownEmail(t *testing.T) {
	uc, repo := newLoginForTest()
	ctx := context.Background()

	repo.On("FindByEmail", ctx, "nobody@example.com").Return(nil, repository.ErrUserNotFound)

	_, err := uc.Execute(ctx, auth.LoginInput{Email: "nobody@example.com", Password: "password123"})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}
