package services

import (
	"context"
	"fmt"
	"log/slog"

	"vertragsassistent/internal/core"
)

// ContractService persists contract edits and notifies the sync worker.
// Publishing is best-effort: a queue failure never rolls back a local save,
// the worker catches up through its startup sync pass.
type ContractService struct {
	storage   ContractStorage
	publisher ChangePublisher
}

func NewContractService(storage ContractStorage, publisher ChangePublisher) *ContractService {
	return &ContractService{storage: storage, publisher: publisher}
}

// SaveContract validates and stores the contract together with its full
// pricing history. The history replaces whatever was stored before, matching
// the editor's save semantics.
func (s *ContractService) SaveContract(ctx context.Context, c core.Contract, periods []core.PricingPeriod) (core.Contract, error) {
	if err := c.Validate(); err != nil {
		return core.Contract{}, err
	}
	for _, p := range periods {
		if err := p.Validate(); err != nil {
			return core.Contract{}, err
		}
	}

	saved, err := s.storage.SaveContract(ctx, c)
	if err != nil {
		return core.Contract{}, fmt.Errorf("save contract: %w", err)
	}
	if err := s.storage.ReplacePricing(ctx, saved.ID, periods); err != nil {
		return core.Contract{}, fmt.Errorf("save pricing: %w", err)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishContractSync(ctx, saved.ID); err != nil {
			slog.ErrorContext(ctx, "Failed to publish contract sync message",
				"id", saved.ID, "error", err)
		}
	}
	return saved, nil
}

func (s *ContractService) GetContract(ctx context.Context, id int64) (core.Contract, error) {
	return s.storage.GetContract(ctx, id)
}

// DeleteContract removes the contract and its owned pricing and documents;
// tags survive because only the association is dropped.
func (s *ContractService) DeleteContract(ctx context.Context, id int64) error {
	if err := s.storage.DeleteContract(ctx, id); err != nil {
		return fmt.Errorf("delete contract: %w", err)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishContractDelete(ctx, id); err != nil {
			slog.ErrorContext(ctx, "Failed to publish contract delete message",
				"id", id, "error", err)
		}
	}
	return nil
}
