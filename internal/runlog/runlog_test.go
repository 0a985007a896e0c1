package runlog

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/takhmino/takhmino/pkg/constants"
	"github.com/takhmino/takhmino/pkg/validation"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	repo, err := Open(DriverSQLite, "file::memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestCreateAndFind(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	run := &ToolRun{
		ToolSlug: constants.ToolLoan,
		ToolName: "Loan calculator",
		Version:  "1.0.0",
		RawData:  `{"totalInterest":48000}`,
		Summary:  "24 months, total interest 48000",
	}
	require.NoError(t, repo.Create(ctx, run))
	assert.NotEqual(t, uuid.Nil, run.ID)
	assert.False(t, run.CreatedAt.IsZero())

	found, err := repo.FindByID(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ToolSlug, found.ToolSlug)
	assert.Equal(t, run.RawData, found.RawData)
	assert.Equal(t, run.Summary, found.Summary)
}

func TestFindByIDNotFound(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestCreateRejectsInvalidRun(t *testing.T) {
	repo := newTestRepository(t)

	tests := []struct {
		name string
		run  ToolRun
	}{
		{"Unknown tool", ToolRun{ToolSlug: "mortgage", ToolName: "x", RawData: "{}"}},
		{"Missing name", ToolRun{ToolSlug: constants.ToolGold, RawData: "{}"}},
		{"Summary too long", ToolRun{ToolSlug: constants.ToolGold, ToolName: "x", RawData: "{}", Summary: string(make([]byte, validation.MaxSummaryLength+1))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := tt.run
			assert.ErrorIs(t, repo.Create(context.Background(), &run), validation.ErrInvalidRun)
		})
	}
}

func TestList(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		slug := constants.ToolGold
		if i%2 == 1 {
			slug = constants.ToolExpense
		}
		require.NoError(t, repo.Create(ctx, &ToolRun{
			ToolSlug:  slug,
			ToolName:  fmt.Sprintf("run %d", i),
			RawData:   "{}",
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	all, err := repo.List(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, "run 4", all[0].ToolName, "newest run first")

	gold, err := repo.List(ctx, constants.ToolGold, 0)
	require.NoError(t, err)
	assert.Len(t, gold, 3)
	for _, run := range gold {
		assert.Equal(t, constants.ToolGold, run.ToolSlug)
	}

	limited, err := repo.List(ctx, "", 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestOpenUnsupportedDriver(t *testing.T) {
	_, err := Open("mysql", "dsn", nil)
	assert.Error(t, err)
}
