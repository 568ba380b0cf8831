package cycling

import (
	"errors"
	"fmt"
)

// Erros do ciclo de planejamento
var (
	ErrCycleNotFound     = errors.New("ciclo não encontrado")
	ErrCycleDuplicate    = errors.New("já existe um ciclo para este ano e mês")
	ErrCycleAlreadyOpen  = errors.New("já existe um ciclo aberto")
	ErrInvalidTransition = errors.New("transição de estado inválida")

	// Erros de validação
	ErrInvalidRequest      = errors.New("requisição inválida")
	ErrMissingRequiredData = errors.New("dados obrigatórios ausentes")

	// Erros de banco de dados
	ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")
)

// CycleError é um erro com contexto adicional das operações de ciclo
type CycleError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	CycleID string // ID do ciclo envolvido (quando aplicável)
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *CycleError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *CycleError) Unwrap() error {
	return e.Err
}

// IsStateError verifica se o erro é de transição de estado
func IsStateError(err error) bool {
	return errors.Is(err, ErrInvalidTransition) ||
		errors.Is(err, ErrCycleAlreadyOpen)
}

// NewCycleError cria um novo erro de ciclo
func NewCycleError(baseErr error, code string, details string) *CycleError {
	return &CycleError{
		Err:     baseErr,
		Code:    code,
		Details: details,
	}
}

// NewCycleIDError cria um novo erro de ciclo com o ID envolvido
func NewCycleIDError(baseErr error, code string, cycleID string, details string) *CycleError {
	return &CycleError{
		Err:     baseErr,
		Code:    code,
		CycleID: cycleID,
		Details: details,
	}
}
