package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"vertragsassistent/internal/core"
)

type fakeContractStorage struct {
	contracts map[int64]core.Contract
	pricing   map[int64][]core.PricingPeriod
	nextID    int64
}

func newFakeContractStorage() *fakeContractStorage {
	return &fakeContractStorage{
		contracts: map[int64]core.Contract{},
		pricing:   map[int64][]core.PricingPeriod{},
	}
}

func (f *fakeContractStorage) GetContract(ctx context.Context, id int64) (core.Contract, error) {
	c, ok := f.contracts[id]
	if !ok {
		return core.Contract{}, errors.New("not found")
	}
	return c, nil
}

func (f *fakeContractStorage) SaveContract(ctx context.Context, c core.Contract) (core.Contract, error) {
	if c.ID == 0 {
		f.nextID++
		c.ID = f.nextID
	}
	f.contracts[c.ID] = c
	return c, nil
}

func (f *fakeContractStorage) DeleteContract(ctx context.Context, id int64) error {
	delete(f.contracts, id)
	delete(f.pricing, id)
	return nil
}

func (f *fakeContractStorage) ReplacePricing(ctx context.Context, contractID int64, periods []core.PricingPeriod) error {
	f.pricing[contractID] = append([]core.PricingPeriod(nil), periods...)
	return nil
}

type fakePublisher struct {
	synced  []int64
	deleted []int64
	err     error
}

func (f *fakePublisher) PublishContractSync(ctx context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	f.synced = append(f.synced, id)
	return nil
}

func (f *fakePublisher) PublishContractDelete(ctx context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func TestSaveContractPublishesSync(t *testing.T) {
	storage := newFakeContractStorage()
	pub := &fakePublisher{}
	svc := NewContractService(storage, pub)

	saved, err := svc.SaveContract(context.Background(), core.Contract{Name: "Strom"}, []core.PricingPeriod{
		{Start: core.NewDate(2025, 1, 1), PaymentIntervalDays: 30, Price: decimal.NewFromInt(10)},
	})
	if err != nil {
		t.Fatalf("save contract: %v", err)
	}
	if len(pub.synced) != 1 || pub.synced[0] != saved.ID {
		t.Fatalf("expected sync message for contract %d, got %v", saved.ID, pub.synced)
	}
	if len(storage.pricing[saved.ID]) != 1 {
		t.Fatalf("expected pricing stored")
	}
}

func TestSaveContractValidation(t *testing.T) {
	svc := NewContractService(newFakeContractStorage(), nil)

	if _, err := svc.SaveContract(context.Background(), core.Contract{Name: " "}, nil); err != core.ErrEmptyName {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}

	bad := []core.PricingPeriod{{Start: core.NewDate(2025, 1, 1), PaymentIntervalDays: 0, Price: decimal.NewFromInt(10)}}
	if _, err := svc.SaveContract(context.Background(), core.Contract{Name: "ok"}, bad); err != core.ErrInvalidInterval {
		t.Fatalf("expected ErrInvalidInterval, got %v", err)
	}
}

func TestSaveContractSurvivesPublishFailure(t *testing.T) {
	storage := newFakeContractStorage()
	pub := &fakePublisher{err: errors.New("amqp down")}
	svc := NewContractService(storage, pub)

	saved, err := svc.SaveContract(context.Background(), core.Contract{Name: "Strom"}, nil)
	if err != nil {
		t.Fatalf("save must succeed despite publish failure, got %v", err)
	}
	if _, ok := storage.contracts[saved.ID]; !ok {
		t.Fatalf("expected contract stored")
	}
}

func TestSaveContractWithoutPublisher(t *testing.T) {
	svc := NewContractService(newFakeContractStorage(), nil)
	if _, err := svc.SaveContract(context.Background(), core.Contract{Name: "Strom"}, nil); err != nil {
		t.Fatalf("save without publisher: %v", err)
	}
}

func TestDeleteContractPublishesDelete(t *testing.T) {
	storage := newFakeContractStorage()
	pub := &fakePublisher{}
	svc := NewContractService(storage, pub)

	saved, _ := svc.SaveContract(context.Background(), core.Contract{Name: "Strom"}, nil)
	if err := svc.DeleteContract(context.Background(), saved.ID); err != nil {
		t.Fatalf("delete contract: %v", err)
	}
	if len(pub.deleted) != 1 || pub.deleted[0] != saved.ID {
		t.Fatalf("expected delete message for contract %d, got %v", saved.ID, pub.deleted)
	}
}
