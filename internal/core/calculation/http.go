package calculation

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/nvtanh/abacus/internal/platform/request"
	"github.com/nvtanh/abacus/internal/platform/respond"
	"github.com/nvtanh/abacus/internal/platform/validate"
	"github.com/nvtanh/abacus/internal/users/auth"
	"github.com/nvtanh/abacus/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the per-user calculation history. The caller mounts
// this behind the account gate, so every request carries a resolved account.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listCalculations)
	router.Post("/", handler.createCalculation)
	router.Get("/{id}", handler.getCalculation)
	router.Put("/{id}", handler.updateCalculation)
	router.Delete("/{id}", handler.deleteCalculation)
}

// calculationRequest is the shared payload for create, update, and the
// stateless calculate endpoint.
type calculationRequest struct {
	Operation string  `json:"operation"`
	OperandA  float64 `json:"operand_a"`
	OperandB  float64 `json:"operand_b"`
}

// parseInput validates the payload and resolves the operation tag.
func parseInput(request *http.Request) (Input, error) {
	var payload calculationRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		return Input{}, validate.ErrInvalidJSON
	}

	// Field-syntax check first; ParseOperation below still rejects
	// defensively when called outside the HTTP layer.
	validator := &validate.Validator{}
	validator.OneOf(FieldOperation, payload.Operation,
		string(OpAdd), string(OpSubtract), string(OpMultiply), string(OpDivide))
	if err := validator.Err(); err != nil {
		return Input{}, err
	}

	operation, err := ParseOperation(payload.Operation)
	if err != nil {
		return Input{}, err
	}

	return Input{
		Operation: operation,
		OperandA:  payload.OperandA,
		OperandB:  payload.OperandB,
	}, nil
}

// pathID validates the {id} route parameter before any storage access, so a
// malformed identifier is a 400 rather than a guaranteed-miss 404 lookup.
func pathID(request *http.Request) (string, error) {
	id := requestutil.Param(request, FieldID)

	validator := &validate.Validator{}
	if err := validator.UUID(FieldID, id).Err(); err != nil {
		return "", err
	}

	return id, nil
}

func (handler *Handler) listCalculations(writer http.ResponseWriter, request *http.Request) {
	user, err := auth.RequiredAccount(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)

	calculations, total, err := handler.service.List(request.Context(), user.ID, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, calculations, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getCalculation(writer http.ResponseWriter, request *http.Request) {
	user, err := auth.RequiredAccount(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := pathID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	calculation, err := handler.service.Get(request.Context(), id, user.ID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, calculation)
}

func (handler *Handler) createCalculation(writer http.ResponseWriter, request *http.Request) {
	user, err := auth.RequiredAccount(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	input, err := parseInput(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	calculation, err := handler.service.Create(request.Context(), user.ID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, calculation)
}

func (handler *Handler) updateCalculation(writer http.ResponseWriter, request *http.Request) {
	user, err := auth.RequiredAccount(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := pathID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	input, err := parseInput(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	calculation, err := handler.service.Update(request.Context(), id, user.ID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, calculation)
}

func (handler *Handler) deleteCalculation(writer http.ResponseWriter, request *http.Request) {
	user, err := auth.RequiredAccount(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := pathID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), id, user.ID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// Calculate runs an operation without persisting it.
//
// POST /api/v1/calculate — mounted behind the gate next to the history routes.
func (handler *Handler) Calculate(writer http.ResponseWriter, request *http.Request) {
	input, err := parseInput(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.Evaluate(input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		FieldOperation: input.Operation,
		FieldOperandA:  input.OperandA,
		FieldOperandB:  input.OperandB,
		"result":       result,
	})
}
