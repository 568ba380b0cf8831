package forecasting

import (
	"errors"
	"fmt"
)

// Erros das operações de previsão
var (
	ErrForecastNotFound = errors.New("previsão não encontrada")
	ErrCycleNotFound    = errors.New("ciclo não encontrado")
	ErrCycleNotOpen     = errors.New("ciclo não está aberto para previsões")

	// Erros de validação do payload
	ErrInvalidPayload    = errors.New("payload de previsão inválido")
	ErrCustomerNotFound  = errors.New("cliente não encontrado")
	ErrCustomerInactive  = errors.New("cliente inativo")
	ErrProductNotFound   = errors.New("produto não encontrado")
	ErrProductInactive   = errors.New("produto inativo")
	ErrMatrixNotAllowed  = errors.New("combinação cliente-produto não habilitada na matriz")
	ErrMonthsOutOfPeriod = errors.New("meses da previsão não cobrem o período do ciclo")
	ErrNegativeValues    = errors.New("quantidade e preço unitário devem ser não negativos")

	// Erros de estado e prazo
	ErrNotEditable      = errors.New("previsão não pode ser alterada no status atual")
	ErrInvalidStatus    = errors.New("operação inválida para o status atual da previsão")
	ErrDeadlineExceeded = errors.New("prazo de submissão expirado")

	// Erros de banco de dados
	ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")
)

// ForecastError é um erro com contexto adicional das operações de previsão
type ForecastError struct {
	Err        error  // Erro base
	Code       string // Código de erro para API
	ForecastID string // ID da previsão envolvida (quando aplicável)
	Details    string // Detalhes adicionais
}

// Error implementa a interface error
func (e *ForecastError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *ForecastError) Unwrap() error {
	return e.Err
}

// IsValidationError verifica se o erro é de validação do payload
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidPayload) ||
		errors.Is(err, ErrCustomerNotFound) ||
		errors.Is(err, ErrCustomerInactive) ||
		errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrProductInactive) ||
		errors.Is(err, ErrMatrixNotAllowed) ||
		errors.Is(err, ErrMonthsOutOfPeriod) ||
		errors.Is(err, ErrNegativeValues)
}

// NewForecastError cria um novo erro de previsão
func NewForecastError(baseErr error, code string, details string) *ForecastError {
	return &ForecastError{
		Err:     baseErr,
		Code:    code,
		Details: details,
	}
}

// NewForecastIDError cria um novo erro de previsão com o ID envolvido
func NewForecastIDError(baseErr error, code string, forecastID string, details string) *ForecastError {
	return &ForecastError{
		Err:        baseErr,
		Code:       code,
		ForecastID: forecastID,
		Details:    details,
	}
}
