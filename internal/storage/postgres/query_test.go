package postgres

import (
	"testing"

	"github.com/google/uuid"

	"github.com/jane-devs/barter-platform/internal/models"
	"github.com/jane-devs/barter-platform/internal/storage"
)

func TestBuildAdFilter(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		where, args := buildAdFilter(storage.AdFilter{})
		if where != "" || len(args) != 0 {
			t.Errorf("where = %q, args = %v, want empty", where, args)
		}
	})

	t.Run("SearchOnly", func(t *testing.T) {
		where, args := buildAdFilter(storage.AdFilter{Search: "диван"})
		want := " WHERE (title ILIKE $1 OR description ILIKE $1)"
		if where != want {
			t.Errorf("where = %q, want %q", where, want)
		}
		if len(args) != 1 || args[0] != "%диван%" {
			t.Errorf("args = %v, want [%%диван%%]", args)
		}
	})

	t.Run("AllFilters", func(t *testing.T) {
		userID := uuid.New()
		where, args := buildAdFilter(storage.AdFilter{
			Search:    "книга",
			Category:  "books",
			Condition: "used",
			UserID:    userID,
		})
		want := " WHERE (title ILIKE $1 OR description ILIKE $1)" +
			" AND LOWER(category) = LOWER($2)" +
			" AND LOWER(condition) = LOWER($3)" +
			" AND user_id = $4"
		if where != want {
			t.Errorf("where = %q, want %q", where, want)
		}
		if len(args) != 4 {
			t.Errorf("args = %v, want 4 items", args)
		}
	})
}

func TestAdOrderClause(t *testing.T) {
	tests := map[string]string{
		"title":      "title ASC",
		"-title":     "title DESC",
		"created_at": "created_at ASC",
		"":           "created_at DESC",
		"-created":   "created_at DESC",
		"id; DROP":   "created_at DESC",
	}
	for orderBy, want := range tests {
		if got := adOrderClause(orderBy); got != want {
			t.Errorf("adOrderClause(%q) = %q, want %q", orderBy, got, want)
		}
	}
}

func TestBuildProposalFilter(t *testing.T) {
	userID := uuid.New()

	t.Run("SenderOnly", func(t *testing.T) {
		where, args := buildProposalFilter(storage.ProposalFilter{SenderUserID: userID})
		want := " WHERE sa.user_id = $1"
		if where != want {
			t.Errorf("where = %q, want %q", where, want)
		}
		if len(args) != 1 {
			t.Errorf("args = %v, want 1 item", args)
		}
	})

	t.Run("BothSidesWithStatus", func(t *testing.T) {
		where, args := buildProposalFilter(storage.ProposalFilter{
			SenderUserID:   userID,
			ReceiverUserID: userID,
			Status:         models.StatusPending,
		})
		want := " WHERE (sa.user_id = $1 OR ra.user_id = $2) AND p.status = $3"
		if where != want {
			t.Errorf("where = %q, want %q", where, want)
		}
		if len(args) != 3 {
			t.Errorf("args = %v, want 3 items", args)
		}
	})
}
