package calculation

import (
	"context"
	"log/slog"

	"github.com/nvtanh/abacus/pkg/uuidv7"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Input carries the parsed arithmetic request for create and update.
type Input struct {
	Operation Operation
	OperandA  float64
	OperandB  float64
}

// Evaluate runs the operation without persisting anything. It backs the
// stateless /calculate endpoint.
func (service *Service) Evaluate(input Input) (float64, error) {
	return input.Operation.Apply(input.OperandA, input.OperandB)
}

func (service *Service) List(context context.Context, userID string, limit, offset int) ([]*Calculation, int, error) {
	return service.repo.ListByUser(context, userID, limit, offset)
}

func (service *Service) Get(context context.Context, id, userID string) (*Calculation, error) {
	return service.repo.GetForUser(context, id, userID)
}

func (service *Service) Create(context context.Context, userID string, input Input) (*Calculation, error) {
	result, err := input.Operation.Apply(input.OperandA, input.OperandB)
	if err != nil {
		return nil, err
	}

	calculation := &Calculation{
		ID:        uuidv7.New(),
		UserID:    userID,
		Operation: input.Operation,
		OperandA:  input.OperandA,
		OperandB:  input.OperandB,
		Result:    result,
	}

	if err := service.repo.Create(context, calculation); err != nil {
		return nil, err
	}

	service.logger.Info("calculation_created",
		slog.String("calculation_id", calculation.ID),
		slog.String("user_id", userID),
		slog.String("operation", string(input.Operation)),
	)

	return calculation, nil
}

// Update replaces the operation and operands and recomputes the result, so
// a stored row can never carry a stale result.
func (service *Service) Update(context context.Context, id, userID string, input Input) (*Calculation, error) {
	calculation, err := service.repo.GetForUser(context, id, userID)
	if err != nil {
		return nil, err
	}

	result, err := input.Operation.Apply(input.OperandA, input.OperandB)
	if err != nil {
		return nil, err
	}

	calculation.Operation = input.Operation
	calculation.OperandA = input.OperandA
	calculation.OperandB = input.OperandB
	calculation.Result = result

	if err := service.repo.Update(context, calculation); err != nil {
		return nil, err
	}

	service.logger.Info("calculation_updated",
		slog.String("calculation_id", calculation.ID),
		slog.String("user_id", userID),
	)

	return calculation, nil
}

func (service *Service) Delete(context context.Context, id, userID string) error {
	if err := service.repo.DeleteForUser(context, id, userID); err != nil {
		return err
	}

	service.logger.Warn("calculation_deleted",
		slog.String("calculation_id", id),
		slog.String("user_id", userID),
	)
	return nil
}
