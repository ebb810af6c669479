// Package calculation implements the arithmetic engine and per-user
// calculation history.
package calculation

import (
	"time"

	"github.com/nvtanh/abacus/internal/platform/apperr"
)

// Operation is the tagged set of supported arithmetic operations.
// Dispatch happens over these constants, never over raw request strings.
type Operation string

const (
	OpAdd      Operation = "add"
	OpSubtract Operation = "subtract"
	OpMultiply Operation = "multiply"
	OpDivide   Operation = "divide"
)

// ParseOperation maps a raw request string onto the Operation enum.
func ParseOperation(raw string) (Operation, error) {
	switch Operation(raw) {
	case OpAdd, OpSubtract, OpMultiply, OpDivide:
		return Operation(raw), nil
	default:
		return "", apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   FieldOperation,
			Message: "Must be one of: add, subtract, multiply, divide",
		})
	}
}

// Apply executes the operation on the two operands.
//
// Division by zero is a semantic input error (422), not a server fault.
func (operation Operation) Apply(a, b float64) (float64, error) {
	switch operation {
	case OpAdd:
		return a + b, nil
	case OpSubtract:
		return a - b, nil
	case OpMultiply:
		return a * b, nil
	case OpDivide:
		if b == 0 {
			return 0, apperr.Unprocessable("Division by zero is not allowed")
		}
		return a / b, nil
	default:
		return 0, apperr.ValidationError("Unknown operation")
	}
}

// Calculation represents a stored arithmetic result owned by one account.
// Rows are removed together with their owner (cascade).
type Calculation struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Operation Operation `json:"operation"`
	OperandA  float64   `json:"operand_a"`
	OperandB  float64   `json:"operand_b"`
	Result    float64   `json:"result"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Global field names for validation
const (
	FieldID        = "id"
	FieldOperation = "operation"
	FieldOperandA  = "operand_a"
	FieldOperandB  = "operand_b"
)
