package erpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	erpdomain "github.com/vfg2006/sop-manager-api/infrastructure/integrator/erp/domain"
	"github.com/vfg2006/sop-manager-api/internal/config"
)

type SalesConsultationParams struct {
	Year  int
	Month int
	Token string
}

type SalesConsultationResponse []erpdomain.SaleLine

func (c *ErpClient) GetMonthlySales(params SalesConsultationParams, erpConfig *config.Erp) (SalesConsultationResponse, error) {
	var response SalesConsultationResponse

	ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
	defer cancel()

	// Construir a URL da requisição.
	endpoint, err := url.Parse(erpConfig.URL)
	if err != nil {
		return response, fmt.Errorf("erro ao analisar a URL base: %w", err)
	}
	endpoint.Path = path.Join(endpoint.Path, "/integracoes/vendas/mensal")

	// Adicionar parâmetros de consulta.
	query := endpoint.Query()
	query.Set("ano", strconv.Itoa(params.Year))
	query.Set("mes", strconv.Itoa(params.Month))
	endpoint.RawQuery = query.Encode()

	// Criar a requisição HTTP.
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return response, fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	// Adicionar cabeçalhos necessários.
	token := params.Token
	if token == "" {
		token = erpConfig.AccessToken
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	// Executar a requisição.
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return response, fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	defer resp.Body.Close()

	// Verificar o código de status da resposta.
	if resp.StatusCode != http.StatusOK {
		return response, fmt.Errorf("requisição falhou com status: %s", resp.Status)
	}

	// Decodificar a resposta JSON.
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return response, fmt.Errorf("erro ao decodificar a resposta: %w", err)
	}

	return response, nil
}
