package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/Henry-Tercero-MH/Generador-Facturas/internal/models"
	"github.com/Henry-Tercero-MH/Generador-Facturas/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type mockUserRepo struct {
	repository.UserRepository
	mu     sync.Mutex
	users  map[uint]*models.User
	nextID uint
}

func newMockUserRepo(users ...*models.User) *mockUserRepo {
	m := &mockUserRepo{users: make(map[uint]*models.User)}
	for _, u := range users {
		m.Create(context.Background(), u)
	}
	return m
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uint) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Username, username) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Username, user.Username) {
			return repository.ErrDuplicateKey
		}
	}
	m.nextID++
	user.ID = m.nextID
	if user.Status == "" {
		user.Status = models.StatusActive
	}
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *mockUserRepo) TouchLastLogin(ctx context.Context, id uint, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		u.LastLoginAt = &at
	}
	return nil
}

type mockRTRepo struct {
	repository.RefreshTokenRepository
	mu     sync.Mutex
	tokens map[string]*models.RefreshToken
}

func newMockRTRepo() *mockRTRepo {
	return &mockRTRepo{tokens: make(map[string]*models.RefreshToken)}
}

func (m *mockRTRepo) FindByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rt, ok := m.tokens[token]; ok {
		return rt, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRTRepo) Create(ctx context.Context, rt *models.RefreshToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[rt.Token] = rt
	return nil
}

func (m *mockRTRepo) Delete(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, token)
	return nil
}

func (m *mockRTRepo) DeleteByUser(ctx context.Context, userID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, rt := range m.tokens {
		if rt.UserID == userID {
			delete(m.tokens, k)
		}
	}
	return nil
}

func (m *mockRTRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for k, rt := range m.tokens {
		if rt.ExpiresAt != nil && rt.ExpiresAt.Before(now) {
			delete(m.tokens, k)
			n++
		}
	}
	return n, nil
}

type mockReceiptRepo struct {
	repository.ReceiptRepository
	mu       sync.Mutex
	receipts map[uint]*models.Receipt
	nextID   uint
	clock    time.Time
}

func newMockReceiptRepo() *mockReceiptRepo {
	return &mockReceiptRepo{
		receipts: make(map[uint]*models.Receipt),
		clock:    time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC),
	}
}

func (m *mockReceiptRepo) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *mockReceiptRepo) Create(ctx context.Context, r *models.Receipt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.receipts {
		if existing.Number == r.Number {
			return repository.ErrDuplicateKey
		}
	}
	if err := r.BeforeCreate(nil); err != nil {
		return err
	}
	m.nextID++
	r.ID = m.nextID
	r.CreatedAt = m.tick()
	r.UpdatedAt = r.CreatedAt
	cp := *r
	m.receipts[r.ID] = &cp
	return nil
}

func (m *mockReceiptRepo) Update(ctx context.Context, r *models.Receipt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, existing := range m.receipts {
		if id != r.ID && existing.Number == r.Number {
			return repository.ErrDuplicateKey
		}
	}
	r.UpdatedAt = m.tick()
	cp := *r
	m.receipts[r.ID] = &cp
	return nil
}

func (m *mockReceiptRepo) FindByID(ctx context.Context, id uint) (*models.Receipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.receipts[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockReceiptRepo) FindByPublicID(ctx context.Context, publicID uuid.UUID) (*models.Receipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.receipts {
		if r.PublicID == publicID {
			cp := *r
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockReceiptRepo) List(ctx context.Context, q *repository.ReceiptQuery) ([]models.Receipt, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Receipt
	for id := uint(1); id <= m.nextID; id++ {
		r, ok := m.receipts[id]
		if !ok {
			continue
		}
		if q.Status != "" && r.Status != q.Status {
			continue
		}
		if q.ListQuery != nil && q.Search != "" &&
			!strings.Contains(strings.ToLower(r.ReceivedFrom+" "+r.Number+" "+r.Concept), strings.ToLower(q.Search)) {
			continue
		}
		out = append(out, *r)
	}
	return out, int64(len(out)), nil
}
