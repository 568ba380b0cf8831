package apiErrors

import (
	"encoding/json"
	"net/http"
)

// Códigos de erro padronizados da API
const (
	// Erros de autenticação (1000-1999)
	ErrInvalidCredentials    = "AUTH_001" // Credenciais inválidas
	ErrUserDisabled          = "AUTH_002" // Usuário desativado
	ErrUserNotFound          = "AUTH_003" // Usuário não encontrado
	ErrUserLocked            = "AUTH_004" // Usuário bloqueado temporariamente
	ErrInvalidToken          = "AUTH_006" // Token inválido
	ErrExpiredToken          = "AUTH_007" // Token expirado
	ErrInsufficientPrivilege = "AUTH_008" // Privilégios insuficientes
	ErrUserAlreadyExists     = "AUTH_009" // Usuário já existe

	// Erros de validação (2000-2999)
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido

	// Erros de ciclo de planejamento
	ErrCycleNotFound     = "CYC_001" // Ciclo não encontrado
	ErrCycleDuplicate    = "CYC_002" // Ciclo duplicado para (ano, mês)
	ErrCycleInvalidState = "CYC_003" // Transição de estado inválida
	ErrCycleAlreadyOpen  = "CYC_004" // Já existe um ciclo aberto

	// Erros de previsão
	ErrForecastNotFound     = "FCT_001" // Previsão não encontrada
	ErrForecastValidation   = "FCT_002" // Previsão inválida (meses, quantidades, matriz)
	ErrForecastInvalidState = "FCT_003" // Operação inválida para o status atual
	ErrForecastDeadline     = "FCT_004" // Prazo de submissão expirado

	// Erros de histórico de vendas e relatórios
	ErrSalesRecordInvalid = "SH_001"  // Registro fora do esquema canônico
	ErrReportInvalid      = "RPT_001" // Especificação de relatório inválida
	ErrReportTimeout      = "RPT_002" // Agregação excedeu o tempo limite

	// Erros do servidor (5000-5999)
	ErrInternalServer    = "SRV_001" // Erro interno do servidor
	ErrDatabaseOperation = "SRV_002" // Erro de operação de banco de dados
	ErrExternalService   = "SRV_003" // Erro em serviço externo
	ErrCommunication     = "SRV_004" // Erro de comunicação
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidCredentials:    http.StatusUnauthorized,
	ErrUserDisabled:          http.StatusForbidden,
	ErrUserNotFound:          http.StatusNotFound,
	ErrUserLocked:            http.StatusForbidden,
	ErrInvalidToken:          http.StatusUnauthorized,
	ErrExpiredToken:          http.StatusUnauthorized,
	ErrInsufficientPrivilege: http.StatusForbidden,
	ErrInvalidRequest:        http.StatusBadRequest,
	ErrMissingRequiredData:   http.StatusBadRequest,
	ErrInvalidFormat:         http.StatusBadRequest,
	ErrUserAlreadyExists:     http.StatusBadRequest,
	ErrCycleNotFound:         http.StatusNotFound,
	ErrCycleDuplicate:        http.StatusConflict,
	ErrCycleInvalidState:     http.StatusConflict,
	ErrCycleAlreadyOpen:      http.StatusConflict,
	ErrForecastNotFound:      http.StatusNotFound,
	ErrForecastValidation:    http.StatusBadRequest,
	ErrForecastInvalidState:  http.StatusConflict,
	ErrForecastDeadline:      http.StatusForbidden,
	ErrSalesRecordInvalid:    http.StatusBadRequest,
	ErrReportInvalid:         http.StatusBadRequest,
	ErrReportTimeout:         http.StatusServiceUnavailable,
	ErrInternalServer:        http.StatusInternalServerError,
	ErrDatabaseOperation:     http.StatusInternalServerError,
	ErrExternalService:       http.StatusBadGateway,
	ErrCommunication:         http.StatusServiceUnavailable,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	status, exists := httpStatusMap[code]
	if !exists {
		status = http.StatusInternalServerError
	}

	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiErr)
}

// FromError cria um erro de API a partir de um erro Go
func FromError(err error, code string) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: "Erro desconhecido",
		}
	}

	return APIError{
		Code:    code,
		Message: err.Error(),
	}
}
