package worker

import (
	"testing"

	"github.com/google/uuid"

	"github.com/lokalingo/toeflplay-backend/internal/model"
)

func completion(id uuid.UUID, points int) model.SessionCompletion {
	return model.SessionCompletion{SessionID: id, PointsEarned: points}
}

func TestSelectFoldsSkipsUntransitioned(t *testing.T) {
	flipped := uuid.New()
	stale := uuid.New()

	batch := []model.SessionCompletion{
		completion(flipped, 90),
		completion(stale, 40),
	}

	folds := selectFolds(batch, []uuid.UUID{flipped})
	if len(folds) != 1 {
		t.Fatalf("folds = %d, want 1", len(folds))
	}
	if folds[0].SessionID != flipped {
		t.Errorf("folded session = %s, want %s", folds[0].SessionID, flipped)
	}
}

func TestSelectFoldsDuplicateDeliveryFoldsOnce(t *testing.T) {
	id := uuid.New()

	// The same completion redelivered twice within one batch. The
	// bulk update flips the row a single time, so exactly one fold
	// may happen or the player would be credited twice.
	batch := []model.SessionCompletion{
		completion(id, 90),
		completion(id, 90),
	}

	folds := selectFolds(batch, []uuid.UUID{id})
	if len(folds) != 1 {
		t.Fatalf("folds = %d, want 1 for a duplicate delivery", len(folds))
	}

	total := 0
	for _, c := range folds {
		total += c.PointsEarned
	}
	if total != 90 {
		t.Errorf("credited points = %d, want 90", total)
	}
}

func TestSelectFoldsEmptyTransitioned(t *testing.T) {
	batch := []model.SessionCompletion{
		completion(uuid.New(), 20),
		completion(uuid.New(), 30),
	}

	if folds := selectFolds(batch, nil); len(folds) != 0 {
		t.Fatalf("folds = %d, want 0 when nothing transitioned", len(folds))
	}
}

func TestSelectFoldsKeepsBatchOrder(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	batch := []model.SessionCompletion{
		completion(a, 10),
		completion(b, 20),
		completion(c, 30),
	}

	folds := selectFolds(batch, []uuid.UUID{c, a, b})
	want := []uuid.UUID{a, b, c}
	for i, f := range folds {
		if f.SessionID != want[i] {
			t.Errorf("folds[%d] = %s, want %s", i, f.SessionID, want[i])
		}
	}
}
