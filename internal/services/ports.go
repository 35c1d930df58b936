// Package services orchestrates the contract pricing engine over the storage
// collaborator: the aggregated listing, contract save/delete with change
// notifications, tag management and document existence checks.
package services

import (
	"context"

	"vertragsassistent/internal/core"
)

// Ports consumed by the services. The SQLite repository implements all of
// them; tests substitute small fakes.
type (
	// ViewStorage is everything the aggregator reads. All data is returned
	// fully loaded; the services never issue follow-up queries of their own.
	ViewStorage interface {
		ListContracts(ctx context.Context) ([]core.Contract, error)
		ListPricing(ctx context.Context, contractID int64) ([]core.PricingPeriod, error)
		TagsForContract(ctx context.Context, contractID int64) ([]core.Tag, error)
	}

	ContractStorage interface {
		GetContract(ctx context.Context, id int64) (core.Contract, error)
		SaveContract(ctx context.Context, c core.Contract) (core.Contract, error)
		DeleteContract(ctx context.Context, id int64) error
		ReplacePricing(ctx context.Context, contractID int64, periods []core.PricingPeriod) error
	}

	TagStorage interface {
		ListTagsWithCount(ctx context.Context) ([]core.Tag, error)
		CreateTag(ctx context.Context, name string) (core.Tag, error)
		RenameTag(ctx context.Context, id int64, name string) error
		DeleteTag(ctx context.Context, id int64) error
		AssignTag(ctx context.Context, contractID, tagID int64) error
		UnassignTag(ctx context.Context, contractID, tagID int64) error
	}

	DocumentStorage interface {
		ListDocuments(ctx context.Context, contractID int64) ([]core.ContractDocument, error)
		GetDocument(ctx context.Context, id int64) (core.ContractDocument, error)
		SaveDocument(ctx context.Context, d core.ContractDocument) (core.ContractDocument, error)
		DeleteDocument(ctx context.Context, id int64) error
	}

	// ChangePublisher notifies the sync worker about contract changes.
	// A nil publisher degrades to local-only operation.
	ChangePublisher interface {
		PublishContractSync(ctx context.Context, id int64) error
		PublishContractDelete(ctx context.Context, id int64) error
	}
)
