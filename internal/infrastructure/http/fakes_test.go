package http_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wekeepgrowing/semo-payment-gateway/internal/domain/model"
	"github.com/wekeepgrowing/semo-payment-gateway/internal/infrastructure/database"
)

// In-memory repositories used to drive the router end to end

type memOrders struct {
	mu     sync.Mutex
	orders map[string]model.Order
}

func (m *memOrders) Create(_ context.Context, order *model.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[order.ID] = *order
	return nil
}

func (m *memOrders) GetByID(_ context.Context, id string) (*model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[id]
	if !ok {
		return nil, nil
	}
	return &order, nil
}

type memPayments struct {
	mu       sync.Mutex
	payments map[string]model.Payment
}

func (m *memPayments) Create(_ context.Context, payment *model.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payments[payment.ID] = *payment
	return nil
}

func (m *memPayments) GetByID(_ context.Context, id string) (*model.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	payment, ok := m.payments[id]
	if !ok {
		return nil, nil
	}
	return &payment, nil
}

func (m *memPayments) UpdateStatus(_ context.Context, id string, result model.SettlementResult) (*model.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	payment, ok := m.payments[id]
	if !ok || payment.Status != model.PaymentStatusProcessing {
		return nil, nil
	}
	payment.Status = result.Status
	payment.ErrorCode = result.ErrorCode
	payment.ErrorDescription = result.ErrorDescription
	payment.UpdatedAt = time.Now()
	m.payments[id] = payment
	return &payment, nil
}

func (m *memPayments) ListByMerchant(_ context.Context, merchantID uuid.UUID) ([]*model.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var list []*model.Payment
	for _, p := range m.payments {
		if p.MerchantID == merchantID {
			p := p
			list = append(list, &p)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func (m *memPayments) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.payments)
}

type memMerchants struct {
	merchants []model.Merchant
}

func (m *memMerchants) GetByCredentials(_ context.Context, apiKey, apiSecret string) (*model.Merchant, error) {
	for _, merchant := range m.merchants {
		if merchant.APIKey == apiKey && merchant.APISecret == apiSecret && merchant.IsActive {
			merchant := merchant
			return &merchant, nil
		}
	}
	return nil, nil
}

func (m *memMerchants) GetByEmail(_ context.Context, email string) (*model.Merchant, error) {
	for _, merchant := range m.merchants {
		if merchant.Email == email {
			merchant := merchant
			return &merchant, nil
		}
	}
	return nil, nil
}

func (m *memMerchants) Ping(context.Context) error {
	return nil
}

var otherMerchant = model.Merchant{
	ID:        uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8"),
	Name:      "Other Merchant",
	Email:     "other@example.com",
	APIKey:    "key_other",
	APISecret: "secret_other",
	IsActive:  true,
}

type memStore struct {
	orders    *memOrders
	payments  *memPayments
	merchants *memMerchants
}

func newMemStore() *memStore {
	return &memStore{
		orders:    &memOrders{orders: map[string]model.Order{}},
		payments:  &memPayments{payments: map[string]model.Payment{}},
		merchants: &memMerchants{merchants: []model.Merchant{database.TestMerchant, otherMerchant}},
	}
}

func (s *memStore) repositories() *database.Repositories {
	return &database.Repositories{
		Order:    s.orders,
		Payment:  s.payments,
		Merchant: s.merchants,
	}
}
