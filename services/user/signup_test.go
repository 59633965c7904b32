package user

import (
	"errors"
	"sync"
	"testing"

	"stayhub/database/repository"
	"stayhub/models"
	"stayhub/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

type memUserRepo struct {
	mu         sync.Mutex
	users      map[string]models.User
	createErr  error
	setUpdates []bson.M
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]models.User)}
}

func (r *memUserRepo) Create(u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.users[u.ID] = *u
	return nil
}

func (r *memUserRepo) GetByID(id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := u
	return &copied, nil
}

func (r *memUserRepo) GetByEmail(email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			copied := u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	r.setUpdates = append(r.setUpdates, updateDoc)
	if hash, ok := updateDoc["tokenHash"].(string); ok {
		u.TokenHash = hash
	}
	if role, ok := updateDoc["role"].(string); ok {
		u.Role = role
	}
	r.users[id] = u
	return nil
}

func (r *memUserRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func (r *memUserRepo) ListAll(int, int) ([]models.User, int64, error) {
	return nil, 0, nil
}

func TestRegisterPersistsUserBeforeSession(t *testing.T) {
	repo := newMemUserRepo()
	svc := &DefaultUserService{Repo: repo}

	resp, err := svc.Register("Maya Hoffman", "Maya@StayHub.dev", "sturdy-passphrase", "")
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	stored, err := repo.GetByID(resp.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "maya@stayhub.dev", stored.Email)
	assert.Equal(t, models.RoleUser, stored.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("sturdy-passphrase")))

	// The stored token hash must match the issued token.
	assert.Equal(t, utils.HashToken(resp.Token), stored.TokenHash)

	// Credentials never leave the service.
	assert.Empty(t, resp.User.PasswordHash)
	assert.Empty(t, resp.User.TokenHash)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newMemUserRepo()
	svc := &DefaultUserService{Repo: repo}

	_, err := svc.Register("First", "taken@stayhub.dev", "sturdy-passphrase", "")
	require.NoError(t, err)

	_, err = svc.Register("Second", "TAKEN@stayhub.dev", "another-passphrase", "")
	var dup DuplicateEmailError
	assert.ErrorAs(t, err, &dup)
}

func TestRegisterFailedInsertIssuesNoSession(t *testing.T) {
	repo := newMemUserRepo()
	repo.createErr = errors.New("write concern failed")
	svc := &DefaultUserService{Repo: repo}

	_, err := svc.Register("Maya", "maya@stayhub.dev", "sturdy-passphrase", "")
	require.Error(t, err)

	// No user was stored and no session hash was ever written.
	assert.Empty(t, repo.users)
	assert.Empty(t, repo.setUpdates)
}

func TestRegisterValidation(t *testing.T) {
	svc := &DefaultUserService{Repo: newMemUserRepo()}

	_, err := svc.Register("", "maya@stayhub.dev", "sturdy-passphrase", "")
	assert.Error(t, err)

	_, err = svc.Register("Maya", "maya@stayhub.dev", "short", "")
	assert.Error(t, err)
}

func TestAuthenticateRotatesSession(t *testing.T) {
	repo := newMemUserRepo()
	svc := &DefaultUserService{Repo: repo}

	reg, err := svc.Register("Maya", "maya@stayhub.dev", "sturdy-passphrase", "")
	require.NoError(t, err)

	auth, err := svc.Authenticate("maya@stayhub.dev", "sturdy-passphrase")
	require.NoError(t, err)

	stored, err := repo.GetByID(reg.User.ID)
	require.NoError(t, err)
	assert.Equal(t, utils.HashToken(auth.Token), stored.TokenHash)

	_, err = svc.Authenticate("maya@stayhub.dev", "wrong-passphrase")
	var invalid InvalidCredentialsError
	assert.ErrorAs(t, err, &invalid)

	_, err = svc.Authenticate("nobody@stayhub.dev", "sturdy-passphrase")
	assert.ErrorAs(t, err, &invalid)
}
