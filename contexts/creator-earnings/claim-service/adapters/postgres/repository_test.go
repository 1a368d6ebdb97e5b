package postgresadapter

import (
	"testing"
	"time"

	"claimdesk/contexts/creator-earnings/claim-service/domain/entities"
)

func historyEntry(action entities.HistoryAction, note string) entities.HistoryEntry {
	return entities.HistoryEntry{
		Action: action,
		Note:   note,
		At:     time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC),
	}
}

func TestPendingHistoryRowsFreshClaim(t *testing.T) {
	history := []entities.HistoryEntry{
		historyEntry(entities.HistoryActionSubmitted, "claim submitted"),
	}

	rows := pendingHistoryRows("claim-1", nil, history)
	if len(rows) != 1 {
		t.Fatalf("expected 1 pending row, got %d", len(rows))
	}
	if rows[0].Position != 0 {
		t.Fatalf("expected position 0, got %d", rows[0].Position)
	}
	if rows[0].Action != string(entities.HistoryActionSubmitted) {
		t.Fatalf("unexpected action %q", rows[0].Action)
	}
}

func TestPendingHistoryRowsSkipsPersistedEntries(t *testing.T) {
	stored := []claimHistoryModel{
		{ClaimID: "claim-1", Position: 0, Action: string(entities.HistoryActionSubmitted)},
		{ClaimID: "claim-1", Position: 1, Action: string(entities.HistoryActionDeductionApplied)},
	}
	history := []entities.HistoryEntry{
		historyEntry(entities.HistoryActionSubmitted, ""),
		historyEntry(entities.HistoryActionDeductionApplied, ""),
		historyEntry(entities.HistoryActionUserAccepted, ""),
	}

	rows := pendingHistoryRows("claim-1", stored, history)
	if len(rows) != 1 {
		t.Fatalf("expected 1 pending row, got %d", len(rows))
	}
	if rows[0].Position != 2 {
		t.Fatalf("expected position 2, got %d", rows[0].Position)
	}
	if rows[0].Action != string(entities.HistoryActionUserAccepted) {
		t.Fatalf("unexpected action %q", rows[0].Action)
	}
}

// Out-of-vocabulary rows are skipped on load, so the compacted slice index
// no longer lines up with stored positions. New entries must still land
// past the stored maximum instead of colliding with the legacy row.
func TestPendingHistoryRowsWithOutOfVocabularyRow(t *testing.T) {
	stored := []claimHistoryModel{
		{ClaimID: "claim-1", Position: 0, Action: string(entities.HistoryActionSubmitted)},
		{ClaimID: "claim-1", Position: 1, Action: "legacy_free_text"},
		{ClaimID: "claim-1", Position: 2, Action: string(entities.HistoryActionDeductionApplied)},
	}
	// Loaded history compacts the legacy row away, then a transition appends.
	history := []entities.HistoryEntry{
		historyEntry(entities.HistoryActionSubmitted, ""),
		historyEntry(entities.HistoryActionDeductionApplied, ""),
		historyEntry(entities.HistoryActionUserAccepted, "creator accepted"),
	}

	rows := pendingHistoryRows("claim-1", stored, history)
	if len(rows) != 1 {
		t.Fatalf("expected 1 pending row, got %d", len(rows))
	}
	if rows[0].Position != 3 {
		t.Fatalf("expected new entry at position 3, got %d", rows[0].Position)
	}
	if rows[0].Action != string(entities.HistoryActionUserAccepted) {
		t.Fatalf("unexpected action %q", rows[0].Action)
	}
	if rows[0].Note != "creator accepted" {
		t.Fatalf("unexpected note %q", rows[0].Note)
	}
}

func TestPendingHistoryRowsNothingNew(t *testing.T) {
	stored := []claimHistoryModel{
		{ClaimID: "claim-1", Position: 0, Action: string(entities.HistoryActionSubmitted)},
	}
	history := []entities.HistoryEntry{
		historyEntry(entities.HistoryActionSubmitted, ""),
	}

	if rows := pendingHistoryRows("claim-1", stored, history); len(rows) != 0 {
		t.Fatalf("expected no pending rows, got %d", len(rows))
	}
}
