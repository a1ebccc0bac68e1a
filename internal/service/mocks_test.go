package service

import (
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/nutrisnack/catalog/internal/domain"
)

// =============================================================================
// Mock repositories
// =============================================================================

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	users     map[int64]*domain.User
	nextID    int64
	createErr error
	getErr    error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users:  make(map[int64]*domain.User),
		nextID: 1,
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	for _, u := range m.users {
		if u.Email == user.Email {
			return domain.ErrUserAlreadyExists
		}
	}
	user.ID = m.nextID
	m.nextID++
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	for _, u := range m.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// MockProductRepository is a mock implementation of repository.ProductRepository.
type MockProductRepository struct {
	products  map[int64]*domain.Product
	nextID    int64
	createErr error
	updateErr error
}

func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[int64]*domain.Product),
		nextID:   1,
	}
}

func (m *MockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if m.createErr != nil {
		return m.createErr
	}
	product.ID = m.nextID
	m.nextID++
	m.products[product.ID] = product
	return nil
}

func (m *MockProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	if p, ok := m.products[id]; ok {
		return p, nil
	}
	return nil, domain.ErrProductNotFound
}

func (m *MockProductRepository) List(ctx context.Context, activeOnly bool) ([]*domain.Product, error) {
	var result []*domain.Product
	for _, p := range m.products {
		if activeOnly && !p.IsActive {
			continue
		}
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *MockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.products[product.ID]; !ok {
		return domain.ErrProductNotFound
	}
	m.products[product.ID] = product
	return nil
}

func (m *MockProductRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

// MockFavoriteRepository is a mock implementation of repository.FavoriteRepository.
type MockFavoriteRepository struct {
	mu       sync.Mutex
	pairs    map[[2]int64]time.Time
	products *MockProductRepository
}

func NewMockFavoriteRepository(products *MockProductRepository) *MockFavoriteRepository {
	return &MockFavoriteRepository{
		pairs:    make(map[[2]int64]time.Time),
		products: products,
	}
}

func (m *MockFavoriteRepository) Toggle(ctx context.Context, userID, productID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := [2]int64{userID, productID}
	if _, ok := m.pairs[key]; ok {
		delete(m.pairs, key)
		return false, nil
	}
	m.pairs[key] = time.Now()
	return true, nil
}

func (m *MockFavoriteRepository) Exists(ctx context.Context, userID, productID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.pairs[[2]int64{userID, productID}]
	return ok, nil
}

func (m *MockFavoriteRepository) ListProducts(ctx context.Context, userID int64) ([]*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	type entry struct {
		product *domain.Product
		at      time.Time
	}
	var entries []entry
	for key, at := range m.pairs {
		if key[0] != userID {
			continue
		}
		p, ok := m.products.products[key[1]]
		if !ok || !p.IsActive {
			continue
		}
		entries = append(entries, entry{product: p, at: at})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].at.After(entries[j].at)
	})
	result := make([]*domain.Product, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.product)
	}
	return result, nil
}

func (m *MockFavoriteRepository) CountByProduct(ctx context.Context, productID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var count int64
	for key := range m.pairs {
		if key[1] == productID {
			count++
		}
	}
	return count, nil
}

// MockCommentRepository is a mock implementation of repository.CommentRepository.
type MockCommentRepository struct {
	comments []*domain.Comment
	nextID   int64
}

func NewMockCommentRepository() *MockCommentRepository {
	return &MockCommentRepository{nextID: 1}
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	comment.ID = m.nextID
	m.nextID++
	m.comments = append(m.comments, comment)
	return nil
}

func (m *MockCommentRepository) ListByProduct(ctx context.Context, productID int64) ([]*domain.Comment, error) {
	var result []*domain.Comment
	for _, c := range m.comments {
		if c.ProductID == productID {
			result = append(result, c)
		}
	}
	// Most recent first.
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *MockCommentRepository) CountByProduct(ctx context.Context, productID int64) (int64, error) {
	var count int64
	for _, c := range m.comments {
		if c.ProductID == productID {
			count++
		}
	}
	return count, nil
}

// =============================================================================
// Mock token store and blob store
// =============================================================================

// MockTokenStore is an in-memory token store for tests.
type MockTokenStore struct {
	tokens  map[string]int64
	saveErr error
}

func NewMockTokenStore() *MockTokenStore {
	return &MockTokenStore{tokens: make(map[string]int64)}
}

func (m *MockTokenStore) Save(ctx context.Context, token string, userID int64, ttl time.Duration) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.tokens[token] = userID
	return nil
}

func (m *MockTokenStore) Resolve(ctx context.Context, token string) (int64, error) {
	if id, ok := m.tokens[token]; ok {
		return id, nil
	}
	return 0, domain.ErrInvalidToken
}

func (m *MockTokenStore) Delete(ctx context.Context, token string) error {
	delete(m.tokens, token)
	return nil
}

// MockBlobStore is a blob store that records uploads.
type MockBlobStore struct {
	url      string
	storeErr error
	stored   int
}

func (m *MockBlobStore) Store(ctx context.Context, reader io.Reader, size int64, contentType string) (string, error) {
	if m.storeErr != nil {
		return "", m.storeErr
	}
	m.stored++
	return m.url, nil
}

// =============================================================================
// Helpers
// =============================================================================

func testAdmin() *domain.User {
	return &domain.User{ID: 1, Name: "Admin", Email: "admin@example.com", IsAdmin: true}
}

func testCustomer() *domain.User {
	return &domain.User{ID: 2, Name: "Ana", Email: "ana@example.com", IsAdmin: false}
}
