package ledgerrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/dignilife/walletcore/internal/domain"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()

	return repo, mockDB
}

var createdAt = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func insertQuery() string {
	return regexp.QuoteMeta(`
		INSERT INTO wallet_ledger (user_id, entry_type, amount, idempotency_key, reference_code, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (idempotency_key) DO NOTHING
		RETURNING id`)
}

func TestRepository_Append(t *testing.T) {
	repo, mock := NewMock(t)

	entry := func() *domain.LedgerEntry {
		return &domain.LedgerEntry{
			UserID:         1,
			Type:           domain.EntryBonus,
			Amount:         decimal.RequireFromString("0.15"),
			IdempotencyKey: "abc123",
			ReferenceCode:  "task-55",
			CreatedAt:      createdAt,
		}
	}

	tests := []struct {
		name        string
		mockSetup   func()
		wantApplied bool
		wantID      int64
		expectErr   bool
	}{
		{
			name: "New key is applied",
			mockSetup: func() {
				mock.ExpectQuery(insertQuery()).
					WithArgs(1, "BONUS", pgxmock.AnyArg(), "abc123", "task-55", pgxmock.AnyArg(), createdAt).
					WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(10)))
			},
			wantApplied: true,
			wantID:      10,
		},
		{
			name: "Duplicate key returns existing id without error",
			mockSetup: func() {
				mock.ExpectQuery(insertQuery()).
					WithArgs(1, "BONUS", pgxmock.AnyArg(), "abc123", "task-55", pgxmock.AnyArg(), createdAt).
					WillReturnError(pgx.ErrNoRows)
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM wallet_ledger WHERE idempotency_key = $1`)).
					WithArgs("abc123").
					WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(10)))
			},
			wantApplied: false,
			wantID:      10,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(insertQuery()).
					WithArgs(1, "BONUS", pgxmock.AnyArg(), "abc123", "task-55", pgxmock.AnyArg(), createdAt).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			applied, id, err := repo.Append(context.Background(), entry())
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantApplied, applied)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestRepository_GetBalance(t *testing.T) {
	repo, mock := NewMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COALESCE(SUM(amount), 0) FROM wallet_ledger WHERE user_id = $1`)).
		WithArgs(1).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(decimal.RequireFromString("42.50")))

	balance, err := repo.GetBalance(context.Background(), 1)
	assert.NoError(t, err)
	assert.True(t, decimal.RequireFromString("42.50").Equal(balance))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COALESCE(SUM(amount), 0) FROM wallet_ledger WHERE user_id = $1`)).
		WithArgs(2).
		WillReturnError(errors.New("database error"))

	_, err = repo.GetBalance(context.Background(), 2)
	assert.Error(t, err)
}

func TestRepository_SumForDay(t *testing.T) {
	repo, mock := NewMock(t)

	dayStart := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COALESCE(SUM(amount), 0) FROM wallet_ledger`)).
		WithArgs(1, "BONUS", dayStart, dayStart.AddDate(0, 0, 1)).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(decimal.RequireFromString("1.20")))

	total, err := repo.SumForDay(context.Background(), 1, domain.EntryBonus, createdAt)
	assert.NoError(t, err)
	assert.True(t, decimal.RequireFromString("1.20").Equal(total))
}

func TestRepository_FindByTypeAndRef(t *testing.T) {
	repo, mock := NewMock(t)

	query := regexp.QuoteMeta(`
		SELECT id, user_id, entry_type, amount, idempotency_key, reference_code, created_at
		FROM wallet_ledger
		WHERE user_id = $1 AND entry_type = $2 AND reference_code = $3`)

	rows := pgxmock.NewRows([]string{"id", "user_id", "entry_type", "amount", "idempotency_key", "reference_code", "created_at"}).
		AddRow(int64(7), 1, domain.EntryWithdrawFinal, decimal.RequireFromString("-95.00"), "wd:1:abc:final", "wd:1:abc", createdAt)
	mock.ExpectQuery(query).
		WithArgs(1, "WITHDRAW_FINAL", "wd:1:abc").
		WillReturnRows(rows)

	entry, err := repo.FindByTypeAndRef(context.Background(), 1, domain.EntryWithdrawFinal, "wd:1:abc")
	assert.NoError(t, err)
	assert.NotNil(t, entry)
	assert.Equal(t, int64(7), entry.ID)
	assert.Equal(t, domain.EntryWithdrawFinal, entry.Type)

	mock.ExpectQuery(query).
		WithArgs(1, "WITHDRAW_FINAL", "wd:1:missing").
		WillReturnError(pgx.ErrNoRows)

	entry, err = repo.FindByTypeAndRef(context.Background(), 1, domain.EntryWithdrawFinal, "wd:1:missing")
	assert.NoError(t, err)
	assert.Nil(t, entry)
}

func TestRepository_ListByUser(t *testing.T) {
	repo, mock := NewMock(t)

	rows := pgxmock.NewRows([]string{"id", "user_id", "entry_type", "amount", "idempotency_key", "reference_code", "created_at"}).
		AddRow(int64(2), 1, domain.EntryBonus, decimal.RequireFromString("0.15"), "k2", "task-2", createdAt).
		AddRow(int64(1), 1, domain.EntryEarnCommit, decimal.RequireFromString("5.00"), "k1", "task-1", createdAt.Add(-time.Hour))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id, entry_type, amount, idempotency_key, reference_code, created_at`)).
		WithArgs(1, 50).
		WillReturnRows(rows)

	entries, err := repo.ListByUser(context.Background(), 1, 50)
	assert.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, domain.EntryBonus, entries[0].Type)
	assert.Equal(t, domain.EntryEarnCommit, entries[1].Type)
}
