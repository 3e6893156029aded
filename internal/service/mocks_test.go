package service

import (
	"bytes"
	"context"
	"io"
	"sort"

	"github.com/fleetrent/fleetrent/internal/domain"
	"github.com/fleetrent/fleetrent/internal/repository"
	"github.com/fleetrent/fleetrent/internal/storage"
)

// =============================================================================
// Mock User Repository
// =============================================================================

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	users       map[int64]*domain.User
	nextID      int64
	ownsRecords map[int64]bool // userID -> owns vehicles/customers/agreements
	createErr   error
	getErr      error
	updateErr   error
	deleteErr   error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users:       make(map[int64]*domain.User),
		ownsRecords: make(map[int64]bool),
		nextID:      1,
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
	if u, exists := m.users[id]; exists {
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
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, exists := m.users[user.ID]; !exists {
		return domain.ErrUserNotFound
	}
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, exists := m.users[id]; !exists {
		return domain.ErrUserNotFound
	}
	if m.ownsRecords[id] {
		return domain.ErrUserOwnsRecords
	}
	delete(m.users, id)
	return nil
}

func (m *MockUserRepository) List(ctx context.Context) ([]*domain.User, error) {
	result := make([]*domain.User, 0, len(m.users))
	for _, u := range m.users {
		result = append(result, u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.getErr != nil {
		return false, m.getErr
	}
	for _, u := range m.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// =============================================================================
// Mock Token Repository
// =============================================================================

// MockTokenRepository is a mock implementation of repository.TokenRepository.
type MockTokenRepository struct {
	tokens    map[string]*domain.Token
	createErr error
	getErr    error
}

func NewMockTokenRepository() *MockTokenRepository {
	return &MockTokenRepository{tokens: make(map[string]*domain.Token)}
}

func (m *MockTokenRepository) Create(ctx context.Context, token *domain.Token) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.tokens[token.Key] = token
	return nil
}

func (m *MockTokenRepository) GetByKey(ctx context.Context, key string) (*domain.Token, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if t, exists := m.tokens[key]; exists {
		return t, nil
	}
	return nil, domain.ErrTokenNotFound
}

func (m *MockTokenRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Token, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, t := range m.tokens {
		if t.UserID == userID {
			return t, nil
		}
	}
	return nil, domain.ErrTokenNotFound
}

func (m *MockTokenRepository) DeleteByKey(ctx context.Context, key string) error {
	if _, exists := m.tokens[key]; !exists {
		return domain.ErrTokenNotFound
	}
	delete(m.tokens, key)
	return nil
}

func (m *MockTokenRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	for key, t := range m.tokens {
		if t.UserID == userID {
			delete(m.tokens, key)
		}
	}
	return nil
}

// =============================================================================
// Mock Vehicle Repository
// =============================================================================

// MockVehicleRepository is a mock implementation of repository.VehicleRepository.
type MockVehicleRepository struct {
	vehicles  map[int64]*domain.Vehicle
	nextID    int64
	createErr error
	updateErr error
	deleteErr error
}

func NewMockVehicleRepository() *MockVehicleRepository {
	return &MockVehicleRepository{
		vehicles: make(map[int64]*domain.Vehicle),
		nextID:   1,
	}
}

func (m *MockVehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	if m.createErr != nil {
		return m.createErr
	}
	v.ID = m.nextID
	m.nextID++
	m.vehicles[v.ID] = v
	return nil
}

func (m *MockVehicleRepository) Get(ctx context.Context, ownerID, id int64) (*domain.Vehicle, error) {
	if v, exists := m.vehicles[id]; exists && v.UserID == ownerID {
		return v, nil
	}
	return nil, domain.ErrVehicleNotFound
}

func (m *MockVehicleRepository) GetAny(ctx context.Context, id int64) (*domain.Vehicle, error) {
	if v, exists := m.vehicles[id]; exists {
		return v, nil
	}
	return nil, domain.ErrVehicleNotFound
}

func (m *MockVehicleRepository) List(ctx context.Context, spec repository.QuerySpec) ([]*domain.Vehicle, error) {
	result := make([]*domain.Vehicle, 0)
	for _, v := range m.vehicles {
		if v.UserID == spec.OwnerID {
			result = append(result, v)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if spec.Descending {
			return result[i].ID > result[j].ID
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (m *MockVehicleRepository) Update(ctx context.Context, ownerID int64, v *domain.Vehicle) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	existing, exists := m.vehicles[v.ID]
	if !exists || existing.UserID != ownerID {
		return domain.ErrVehicleNotFound
	}
	m.vehicles[v.ID] = v
	return nil
}

func (m *MockVehicleRepository) Delete(ctx context.Context, ownerID, id int64) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	existing, exists := m.vehicles[id]
	if !exists || existing.UserID != ownerID {
		return domain.ErrVehicleNotFound
	}
	delete(m.vehicles, id)
	return nil
}

// =============================================================================
// Mock Customer Repository
// =============================================================================

// MockCustomerRepository is a mock implementation of repository.CustomerRepository.
type MockCustomerRepository struct {
	customers map[int64]*domain.Customer
	nextID    int64
	createErr error
	deleteErr error
}

func NewMockCustomerRepository() *MockCustomerRepository {
	return &MockCustomerRepository{
		customers: make(map[int64]*domain.Customer),
		nextID:    1,
	}
}

func (m *MockCustomerRepository) Create(ctx context.Context, c *domain.Customer) error {
	if m.createErr != nil {
		return m.createErr
	}
	c.ID = m.nextID
	m.nextID++
	m.customers[c.ID] = c
	return nil
}

func (m *MockCustomerRepository) Get(ctx context.Context, ownerID, id int64) (*domain.Customer, error) {
	if c, exists := m.customers[id]; exists && c.UserID == ownerID {
		return c, nil
	}
	return nil, domain.ErrCustomerNotFound
}

func (m *MockCustomerRepository) GetAny(ctx context.Context, id int64) (*domain.Customer, error) {
	if c, exists := m.customers[id]; exists {
		return c, nil
	}
	return nil, domain.ErrCustomerNotFound
}

func (m *MockCustomerRepository) List(ctx context.Context, spec repository.QuerySpec) ([]*domain.Customer, error) {
	result := make([]*domain.Customer, 0)
	for _, c := range m.customers {
		if c.UserID == spec.OwnerID {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if spec.Descending {
			return result[i].ID > result[j].ID
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (m *MockCustomerRepository) Update(ctx context.Context, ownerID int64, c *domain.Customer) error {
	existing, exists := m.customers[c.ID]
	if !exists || existing.UserID != ownerID {
		return domain.ErrCustomerNotFound
	}
	m.customers[c.ID] = c
	return nil
}

func (m *MockCustomerRepository) Delete(ctx context.Context, ownerID, id int64) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	existing, exists := m.customers[id]
	if !exists || existing.UserID != ownerID {
		return domain.ErrCustomerNotFound
	}
	delete(m.customers, id)
	return nil
}

// =============================================================================
// Mock Agreement Repository
// =============================================================================

// MockAgreementRepository is a mock implementation of repository.AgreementRepository.
type MockAgreementRepository struct {
	agreements map[int64]*domain.Agreement
	nextID     int64
	createErr  error
	countErr   error
}

func NewMockAgreementRepository() *MockAgreementRepository {
	return &MockAgreementRepository{
		agreements: make(map[int64]*domain.Agreement),
		nextID:     1,
	}
}

func (m *MockAgreementRepository) Create(ctx context.Context, a *domain.Agreement) error {
	if m.createErr != nil {
		return m.createErr
	}
	a.ID = m.nextID
	m.nextID++
	m.agreements[a.ID] = a
	return nil
}

func (m *MockAgreementRepository) Get(ctx context.Context, ownerID, id int64) (*domain.Agreement, error) {
	if a, exists := m.agreements[id]; exists && a.UserID == ownerID {
		return a, nil
	}
	return nil, domain.ErrAgreementNotFound
}

func (m *MockAgreementRepository) List(ctx context.Context, spec repository.QuerySpec) ([]*domain.Agreement, error) {
	result := make([]*domain.Agreement, 0)
	for _, a := range m.agreements {
		if a.UserID == spec.OwnerID {
			result = append(result, a)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if spec.Descending {
			return result[i].ID > result[j].ID
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (m *MockAgreementRepository) Update(ctx context.Context, ownerID int64, a *domain.Agreement) error {
	existing, exists := m.agreements[a.ID]
	if !exists || existing.UserID != ownerID {
		return domain.ErrAgreementNotFound
	}
	m.agreements[a.ID] = a
	return nil
}

func (m *MockAgreementRepository) Delete(ctx context.Context, ownerID, id int64) error {
	existing, exists := m.agreements[id]
	if !exists || existing.UserID != ownerID {
		return domain.ErrAgreementNotFound
	}
	delete(m.agreements, id)
	return nil
}

func (m *MockAgreementRepository) CountByVehicle(ctx context.Context, vehicleID int64) (int64, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	var count int64
	for _, a := range m.agreements {
		if a.VehicleID == vehicleID {
			count++
		}
	}
	return count, nil
}

func (m *MockAgreementRepository) CountByCustomer(ctx context.Context, customerID int64) (int64, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	var count int64
	for _, a := range m.agreements {
		if a.CustomerID == customerID {
			count++
		}
	}
	return count, nil
}

// =============================================================================
// Mock Image Store
// =============================================================================

// MockImageStore is a mock implementation of storage.ImageStore.
type MockImageStore struct {
	files   map[string][]byte
	saveErr error
}

func NewMockImageStore() *MockImageStore {
	return &MockImageStore{files: make(map[string][]byte)}
}

func (m *MockImageStore) Save(ctx context.Context, relPath string, reader io.Reader, size int64) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	m.files[relPath] = data
	return nil
}

func (m *MockImageStore) Open(ctx context.Context, relPath string) (io.ReadCloser, error) {
	data, exists := m.files[relPath]
	if !exists {
		return nil, storage.ErrImageNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *MockImageStore) Delete(ctx context.Context, relPath string) error {
	delete(m.files, relPath)
	return nil
}

// Interface checks.
var (
	_ repository.UserRepository      = (*MockUserRepository)(nil)
	_ repository.TokenRepository     = (*MockTokenRepository)(nil)
	_ repository.VehicleRepository   = (*MockVehicleRepository)(nil)
	_ repository.CustomerRepository  = (*MockCustomerRepository)(nil)
	_ repository.AgreementRepository = (*MockAgreementRepository)(nil)
	_ storage.ImageStore             = (*MockImageStore)(nil)
)
