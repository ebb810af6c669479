package calculation_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvtanh/abacus/internal/core/calculation"
	"github.com/nvtanh/abacus/internal/platform/apperr"
)

// memRepository is an in-memory Repository enforcing the same owner scoping
// as the SQL implementation.
type memRepository struct {
	rows map[string]*calculation.Calculation
}

func newMemRepository() *memRepository {
	return &memRepository{rows: make(map[string]*calculation.Calculation)}
}

func (repo *memRepository) ListByUser(_ context.Context, userID string, limit, offset int) ([]*calculation.Calculation, int, error) {
	var owned []*calculation.Calculation
	for _, row := range repo.rows {
		if row.UserID == userID {
			clone := *row
			owned = append(owned, &clone)
		}
	}
	total := len(owned)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return owned[offset:end], total, nil
}

func (repo *memRepository) GetForUser(_ context.Context, id, userID string) (*calculation.Calculation, error) {
	row, ok := repo.rows[id]
	if !ok || row.UserID != userID {
		return nil, apperr.NotFound("Calculation")
	}
	clone := *row
	return &clone, nil
}

func (repo *memRepository) Create(_ context.Context, c *calculation.Calculation) error {
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	clone := *c
	repo.rows[c.ID] = &clone
	return nil
}

func (repo *memRepository) Update(_ context.Context, c *calculation.Calculation) error {
	row, ok := repo.rows[c.ID]
	if !ok || row.UserID != c.UserID {
		return apperr.NotFound("Calculation")
	}
	c.UpdatedAt = time.Now()
	clone := *c
	repo.rows[c.ID] = &clone
	return nil
}

func (repo *memRepository) DeleteForUser(_ context.Context, id, userID string) error {
	row, ok := repo.rows[id]
	if !ok || row.UserID != userID {
		return apperr.NotFound("Calculation")
	}
	delete(repo.rows, id)
	return nil
}

func newTestService() (*calculation.Service, *memRepository) {
	repo := newMemRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return calculation.NewService(repo, logger), repo
}

func TestService_Create_ComputesResult(t *testing.T) {
	service, _ := newTestService()

	created, err := service.Create(context.Background(), "user-1", calculation.Input{
		Operation: calculation.OpDivide,
		OperandA:  10,
		OperandB:  4,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "user-1", created.UserID)
	assert.InDelta(t, 2.5, created.Result, 1e-9)
}

func TestService_Create_DivideByZero(t *testing.T) {
	service, repo := newTestService()

	_, err := service.Create(context.Background(), "user-1", calculation.Input{
		Operation: calculation.OpDivide,
		OperandA:  1,
		OperandB:  0,
	})

	require.Error(t, err)
	assert.Equal(t, "UNPROCESSABLE", apperr.As(err).Code)
	// Nothing is persisted when the computation fails.
	assert.Empty(t, repo.rows)
}

func TestService_Update_Recomputes(t *testing.T) {
	service, _ := newTestService()

	created, err := service.Create(context.Background(), "user-1", calculation.Input{
		Operation: calculation.OpAdd,
		OperandA:  2,
		OperandB:  3,
	})
	require.NoError(t, err)

	updated, err := service.Update(context.Background(), created.ID, "user-1", calculation.Input{
		Operation: calculation.OpMultiply,
		OperandA:  2,
		OperandB:  3,
	})
	require.NoError(t, err)

	assert.Equal(t, calculation.OpMultiply, updated.Operation)
	assert.InDelta(t, 6, updated.Result, 1e-9)
}

func TestService_OwnerScoping(t *testing.T) {
	service, _ := newTestService()

	created, err := service.Create(context.Background(), "user-1", calculation.Input{
		Operation: calculation.OpAdd,
		OperandA:  1,
		OperandB:  1,
	})
	require.NoError(t, err)

	// Another user cannot read, update, or delete the row.
	_, err = service.Get(context.Background(), created.ID, "user-2")
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	_, err = service.Update(context.Background(), created.ID, "user-2", calculation.Input{
		Operation: calculation.OpAdd, OperandA: 9, OperandB: 9,
	})
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	err = service.Delete(context.Background(), created.ID, "user-2")
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	// The owner still sees it untouched.
	fetched, err := service.Get(context.Background(), created.ID, "user-1")
	require.NoError(t, err)
	assert.InDelta(t, 2, fetched.Result, 1e-9)

	list, total, err := service.List(context.Background(), "user-2", 20, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, list)
}

func TestService_Evaluate_Stateless(t *testing.T) {
	service, repo := newTestService()

	result, err := service.Evaluate(calculation.Input{
		Operation: calculation.OpSubtract,
		OperandA:  7,
		OperandB:  9,
	})
	require.NoError(t, err)
	assert.InDelta(t, -2, result, 1e-9)
	assert.Empty(t, repo.rows)
}
