package aggregating

import (
	"errors"
	"fmt"
)

// Erros de agregação do histórico de vendas
var (
	ErrInvalidFilter     = errors.New("filtro de consulta inválido")
	ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")
)

// AggregationError é um erro com contexto adicional das agregações
type AggregationError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *AggregationError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *AggregationError) Unwrap() error {
	return e.Err
}

// NewAggregationError cria um novo erro de agregação
func NewAggregationError(baseErr error, code string, details string) *AggregationError {
	return &AggregationError{
		Err:     baseErr,
		Code:    code,
		Details: details,
	}
}
