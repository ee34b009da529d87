package pipeline

import (
	"context"
	"fmt"

	"mndotbids/internal"
	"mndotbids/internal/storage"
)

// Fetcher retrieves the raw abstract for one contract id.
type Fetcher interface {
	Fetch(ctx context.Context, contractID int) (internal.RawAbstract, error)
}

// ProcessingService walks pending abstracts through
// fetch -> normalize -> persist. A failure stops only the one abstract:
// it is marked error with the message recorded and the batch goes on.
type ProcessingService struct {
	db         *storage.DB
	fetcher    Fetcher
	classifier SpecClassifier
}

func NewProcessingService(db *storage.DB, fetcher Fetcher, classifier SpecClassifier) *ProcessingService {
	return &ProcessingService{db: db, fetcher: fetcher, classifier: classifier}
}

type ProcessResult struct {
	Processed int
	Failed    int
	Bids      int
}

// ProcessPending processes up to limit pending abstracts.
func (s *ProcessingService) ProcessPending(ctx context.Context, limit int) (ProcessResult, error) {
	pending, err := s.db.ListPendingAbstracts(limit)
	if err != nil {
		return ProcessResult{}, err
	}

	var result ProcessResult
	for _, row := range pending {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		bids, err := s.ProcessOne(ctx, row.AbstractID)
		if err != nil {
			fmt.Printf("abstract %d failed: %v\n", row.AbstractID, err)
			if markErr := s.db.MarkAbstractError(row.AbstractID, err.Error()); markErr != nil {
				return result, markErr
			}
			result.Failed++
			continue
		}

		if err := s.db.MarkAbstractProcessed(row.AbstractID); err != nil {
			return result, err
		}
		result.Processed++
		result.Bids += bids
		fmt.Printf("abstract %d processed: %d bids\n", row.AbstractID, bids)
	}
	return result, nil
}

// ProcessOne fetches, normalizes and persists a single abstract.
// Persistence is all-or-nothing: nothing is written unless every
// sub-table normalized cleanly.
func (s *ProcessingService) ProcessOne(ctx context.Context, contractID int) (int, error) {
	raw, err := s.fetcher.Fetch(ctx, contractID)
	if err != nil {
		return 0, err
	}

	normalized, err := NormalizeAbstract(raw, s.classifier)
	if err != nil {
		return 0, err
	}

	if err := s.db.InsertAbstractData(normalized.Contract, normalized.Bids, normalized.Bidders); err != nil {
		return 0, err
	}
	return len(normalized.Bids), nil
}
