package repositories

import (
	"sync"

	"bloomshop/internal/apperrors"
	"bloomshop/internal/models"

	"github.com/google/uuid"
)

// MockUserRepository is an in-memory implementation of UserRepository. Its
// Transaction holds the write lock for the whole callback, so a guard check
// plus write is atomic with respect to concurrent callers. There is no
// rollback: callers are expected to write only after their checks pass.
type MockUserRepository struct {
	users map[string]models.User
	mu    sync.RWMutex
}

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]models.User),
	}
}

func (r *MockUserRepository) GetAll() ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.getAll()
}

func (r *MockUserRepository) GetByID(id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.getByID(id)
}

func (r *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.getByUsername(username)
}

func (r *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.getByEmail(email)
}

func (r *MockUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.create(user)
}

func (r *MockUserRepository) Update(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.update(user)
}

func (r *MockUserRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.delete(id)
}

func (r *MockUserRepository) CountByRole(role string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.countByRole(role)
}

// Transaction serializes fn against all other access to the repository.
func (r *MockUserRepository) Transaction(fn func(UserRepository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(&mockUserTx{repo: r})
}

// mockUserTx provides lock-free access for callbacks already holding the lock.
type mockUserTx struct {
	repo *MockUserRepository
}

func (t *mockUserTx) GetAll() ([]models.User, error)          { return t.repo.getAll() }
func (t *mockUserTx) GetByID(id string) (*models.User, error) { return t.repo.getByID(id) }
func (t *mockUserTx) GetByUsername(u string) (*models.User, error) {
	return t.repo.getByUsername(u)
}
func (t *mockUserTx) GetByEmail(e string) (*models.User, error) { return t.repo.getByEmail(e) }
func (t *mockUserTx) Create(user *models.User) error            { return t.repo.create(user) }
func (t *mockUserTx) Update(user *models.User) error            { return t.repo.update(user) }
func (t *mockUserTx) Delete(id string) error                    { return t.repo.delete(id) }
func (t *mockUserTx) CountByRole(role string) (int64, error)    { return t.repo.countByRole(role) }
func (t *mockUserTx) Transaction(fn func(UserRepository) error) error {
	return fn(t)
}

func (r *MockUserRepository) getAll() ([]models.User, error) {
	userList := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		userList = append(userList, u)
	}
	return userList, nil
}

func (r *MockUserRepository) getByID(id string) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.NotFound("user", id)
	}
	return &user, nil
}

func (r *MockUserRepository) getByUsername(username string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			user := u
			return &user, nil
		}
	}
	return nil, apperrors.NotFound("user", username)
}

func (r *MockUserRepository) getByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, apperrors.NotFound("user", email)
}

func (r *MockUserRepository) create(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	r.users[user.ID] = *user
	return nil
}

func (r *MockUserRepository) update(user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return apperrors.NotFound("user", user.ID)
	}
	r.users[user.ID] = *user
	return nil
}

func (r *MockUserRepository) delete(id string) error {
	if _, ok := r.users[id]; !ok {
		return apperrors.NotFound("user", id)
	}
	delete(r.users, id)
	return nil
}

func (r *MockUserRepository) countByRole(role string) (int64, error) {
	var count int64
	for _, u := range r.users {
		if u.Role == role {
			count++
		}
	}
	return count, nil
}
