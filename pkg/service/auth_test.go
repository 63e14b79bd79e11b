package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cambio_wallet_back/models"
	"cambio_wallet_back/pkg/apperr"
)

type fakeAuthRepo struct {
	users    map[int64]models.User
	profiles map[int64]models.Profile
	refresh  map[string]models.RefreshToken
	resets   map[string]models.PasswordReset
	nextId   int64
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{
		users:    map[int64]models.User{},
		profiles: map[int64]models.Profile{},
		refresh:  map[string]models.RefreshToken{},
		resets:   map[string]models.PasswordReset{},
	}
}

func (f *fakeAuthRepo) CreateUser(user models.User, profile models.Profile) (int64, error) {
	f.nextId++
	user.Id = f.nextId
	profile.UserId = f.nextId
	f.users[user.Id] = user
	f.profiles[user.Id] = profile
	return user.Id, nil
}

func (f *fakeAuthRepo) GetUserByEmail(email string) (models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, apperr.ErrNotFound
}

func (f *fakeAuthRepo) GetUserById(id int64) (models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return models.User{}, apperr.ErrNotFound
	}
	return u, nil
}

func (f *fakeAuthRepo) UpdatePassword(userId int64, hash string) error {
	u := f.users[userId]
	u.PasswordHash = hash
	f.users[userId] = u
	return nil
}

func (f *fakeAuthRepo) GetProfile(userId int64) (models.Profile, error) {
	p, ok := f.profiles[userId]
	if !ok {
		return models.Profile{}, apperr.ErrNotFound
	}
	return p, nil
}

func (f *fakeAuthRepo) UpdateProfile(userId int64, input models.UpdateProfileInput) error {
	p := f.profiles[userId]
	if input.DisplayName != nil {
		p.DisplayName = *input.DisplayName
	}
	if input.DefaultFromCurrency != nil {
		p.DefaultFromCurrency = *input.DefaultFromCurrency
	}
	if input.DefaultToCurrency != nil {
		p.DefaultToCurrency = *input.DefaultToCurrency
	}
	f.profiles[userId] = p
	return nil
}

func (f *fakeAuthRepo) SaveRefreshToken(t models.RefreshToken) error {
	f.refresh[t.Token] = t
	return nil
}

func (f *fakeAuthRepo) GetRefreshToken(token string) (models.RefreshToken, error) {
	t, ok := f.refresh[token]
	if !ok {
		return models.RefreshToken{}, apperr.ErrNotFound
	}
	return t, nil
}

func (f *fakeAuthRepo) DeleteRefreshToken(token string) error {
	delete(f.refresh, token)
	return nil
}

func (f *fakeAuthRepo) SavePasswordReset(r models.PasswordReset) error {
	f.resets[r.Token] = r
	return nil
}

func (f *fakeAuthRepo) GetPasswordReset(token string) (models.PasswordReset, error) {
	r, ok := f.resets[token]
	if !ok {
		return models.PasswordReset{}, apperr.ErrNotFound
	}
	return r, nil
}

func (f *fakeAuthRepo) DeletePasswordReset(token string) error {
	delete(f.resets, token)
	return nil
}

func newAuthFixture() (*AuthService, *fakeAuthRepo, *fakeNotifier) {
	repo := newFakeAuthRepo()
	notifier := &fakeNotifier{}
	svc := NewAuthService(repo, notifier, Config{
		JWTSecret:       "test-secret",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
	})
	return svc, repo, notifier
}

func TestSignUpAndSignIn(t *testing.T) {
	svc, repo, _ := newAuthFixture()

	tokens, err := svc.SignUp(models.SignUpInput{
		Email:       "joao@example.com",
		Password:    "secret123",
		DisplayName: "João",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	// профиль создаётся сразу со значениями по умолчанию
	profile, err := svc.GetProfile(1)
	require.NoError(t, err)
	assert.Equal(t, "João", profile.DisplayName)
	assert.Equal(t, "USD", profile.DefaultFromCurrency)
	assert.Equal(t, "BRL", profile.DefaultToCurrency)

	// пароль хранится только хэшем
	assert.NotEqual(t, "secret123", repo.users[1].PasswordHash)

	_, err = svc.SignIn(models.SignInInput{Email: "joao@example.com", Password: "wrong"})
	assert.Error(t, err)

	pair, err := svc.SignIn(models.SignInInput{Email: "joao@example.com", Password: "secret123"})
	require.NoError(t, err)

	userId, err := svc.ParseToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(1), userId)
}

func TestRefreshRotatesToken(t *testing.T) {
	svc, _, _ := newAuthFixture()

	tokens, err := svc.SignUp(models.SignUpInput{Email: "a@b.com", Password: "secret123"})
	require.NoError(t, err)

	fresh, err := svc.Refresh(tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, tokens.RefreshToken, fresh.RefreshToken)

	// старый refresh-токен одноразовый
	_, err = svc.Refresh(tokens.RefreshToken)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestSignOut(t *testing.T) {
	svc, _, _ := newAuthFixture()

	tokens, err := svc.SignUp(models.SignUpInput{Email: "a@b.com", Password: "secret123"})
	require.NoError(t, err)

	require.NoError(t, svc.SignOut(tokens.RefreshToken))
	_, err = svc.Refresh(tokens.RefreshToken)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.ParseToken("not-a-jwt")
	assert.Error(t, err)
}

func TestPasswordResetFlow(t *testing.T) {
	svc, _, notifier := newAuthFixture()

	_, err := svc.SignUp(models.SignUpInput{Email: "a@b.com", Password: "secret123"})
	require.NoError(t, err)

	// несуществующий email не раскрывается
	require.NoError(t, svc.RequestPasswordReset("ghost@b.com"))
	assert.Empty(t, notifier.resets)

	require.NoError(t, svc.RequestPasswordReset("a@b.com"))
	require.Len(t, notifier.resets, 1)
	token := notifier.resets[0]

	require.NoError(t, svc.UpdatePassword(token, "newpass123"))

	_, err = svc.SignIn(models.SignInInput{Email: "a@b.com", Password: "secret123"})
	assert.Error(t, err, "старый пароль больше не работает")

	_, err = svc.SignIn(models.SignInInput{Email: "a@b.com", Password: "newpass123"})
	assert.NoError(t, err)

	// токен сброса одноразовый
	assert.Error(t, svc.UpdatePassword(token, "another123"))
}

func TestUpdateProfileValidatesCurrency(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.SignUp(models.SignUpInput{Email: "a@b.com", Password: "secret123"})
	require.NoError(t, err)

	bad := "XXX"
	err = svc.UpdateProfile(1, models.UpdateProfileInput{DefaultFromCurrency: &bad})
	assert.ErrorIs(t, err, apperr.ErrInvalidPair)

	lower := "eur"
	require.NoError(t, svc.UpdateProfile(1, models.UpdateProfileInput{DefaultToCurrency: &lower}))

	profile, err := svc.GetProfile(1)
	require.NoError(t, err)
	assert.Equal(t, "EUR", profile.DefaultToCurrency, "код нормализуется перед записью")
}
