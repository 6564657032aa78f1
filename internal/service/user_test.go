package service

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/pixelgram/pixelgram/internal/model"
	"github.com/pixelgram/pixelgram/internal/repository"
)

type fakeUserRepo struct {
	byID      map[int]*model.User
	createID  int
	updateErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[int]*model.User{}, createID: 10}
}

func (f *fakeUserRepo) Create(user *model.User) error {
	for _, u := range f.byID {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
		if u.Username == user.Username {
			return repository.ErrDuplicateUsername
		}
	}
	f.createID++
	user.ID = f.createID
	clone := *user
	f.byID[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) ByID(id int) (*model.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (f *fakeUserRepo) ByEmail(email string) (*model.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserRepo) ByUsername(username string) (*model.User, error) {
	for _, u := range f.byID {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserRepo) Search(query string) ([]*model.User, error) {
	var out []*model.User
	for _, u := range f.byID {
		if strings.Contains(u.Username, query) {
			clone := *u
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) Update(user *model.User) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.byID[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	clone := *user
	f.byID[user.ID] = &clone
	return nil
}

func TestSignUpAndLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, newTestMediaStore(t))

	user, err := svc.SignUp("amy.pond", "Amy@Example.com", "river-song-11", "Amy Pond")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "amy@example.com", user.Email, "email is normalized to lower case")
	assert.Equal(t, model.DefaultAvatar, user.Avatar)
	assert.Empty(t, user.PasswordHash, "hash never leaves the service")

	// The stored hash is bcrypt, not the plain password.
	stored := repo.byID[user.ID]
	require.NotEmpty(t, stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("river-song-11")))

	loggedIn, err := svc.Login("AMY@example.com", "river-song-11")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.Empty(t, loggedIn.PasswordHash)
}

func TestSignUpValidation(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), newTestMediaStore(t))

	tests := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{"bad username", "a!", "amy@example.com", "river-song-11"},
		{"bad email", "amy.pond", "not-an-email", "river-song-11"},
		{"short password", "amy.pond", "amy@example.com", "short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SignUp(tt.username, tt.email, tt.password, "Amy Pond")
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestSignUpDuplicates(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), newTestMediaStore(t))

	_, err := svc.SignUp("amy.pond", "amy@example.com", "river-song-11", "Amy Pond")
	require.NoError(t, err)

	_, err = svc.SignUp("amy.pond2", "amy@example.com", "river-song-11", "Amy Pond")
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)

	_, err = svc.SignUp("amy.pond", "amy2@example.com", "river-song-11", "Amy Pond")
	assert.ErrorIs(t, err, ErrUsernameAlreadyExists)
}

func TestLoginWrongCredentials(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), newTestMediaStore(t))

	_, err := svc.SignUp("amy.pond", "amy@example.com", "river-song-11", "Amy Pond")
	require.NoError(t, err)

	_, err = svc.Login("amy@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown email reports the same error as a wrong password.
	_, err = svc.Login("nobody@example.com", "river-song-11")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateProfileReplacesAvatarFile(t *testing.T) {
	repo := newFakeUserRepo()
	store := newTestMediaStore(t)
	svc := NewUserService(repo, store)

	user, err := svc.SignUp("amy.pond", "amy@example.com", "river-song-11", "Amy Pond")
	require.NoError(t, err)

	first, err := svc.UpdateProfile(user.ID, "", "", "", []byte("avatar-one"), "one.png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(first.Avatar, "/profile_images/"))

	firstPath, err := store.Resolve(first.Avatar)
	require.NoError(t, err)

	second, err := svc.UpdateProfile(user.ID, "", "", "", []byte("avatar-two"), "two.png")
	require.NoError(t, err)
	assert.NotEqual(t, first.Avatar, second.Avatar)

	_, err = os.Stat(firstPath)
	assert.True(t, os.IsNotExist(err), "replaced avatar file must be removed")

	secondPath, err := store.Resolve(second.Avatar)
	require.NoError(t, err)
	data, err := os.ReadFile(secondPath)
	require.NoError(t, err)
	assert.Equal(t, []byte("avatar-two"), data)
}

func TestUpdateProfileRollsBackAvatarOnFailure(t *testing.T) {
	repo := newFakeUserRepo()
	store := newTestMediaStore(t)
	svc := NewUserService(repo, store)

	user, err := svc.SignUp("amy.pond", "amy@example.com", "river-song-11", "Amy Pond")
	require.NoError(t, err)

	repo.updateErr = assert.AnError
	_, err = svc.UpdateProfile(user.ID, "", "", "", []byte("avatar-one"), "one.png")
	require.Error(t, err)

	// Failed update leaves neither a record change nor a stray file.
	unchanged, err := svc.ByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultAvatar, unchanged.Avatar)
}

func TestUpdateProfilePartialFields(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, newTestMediaStore(t))

	user, err := svc.SignUp("amy.pond", "amy@example.com", "river-song-11", "Amy Pond")
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(user.ID, "", "", "Amelia Pond", nil, "")
	require.NoError(t, err)
	assert.Equal(t, "amy.pond", updated.Username, "empty field keeps current value")
	assert.Equal(t, "Amelia Pond", updated.FullName)
	require.NotNil(t, updated.UpdatedAt)
}

func TestSearchEmptyQueryShortCircuits(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), newTestMediaStore(t))

	users, err := svc.Search("   ")
	require.NoError(t, err)
	assert.Empty(t, users)
}
