package erpclient

import (
	"net/http"
	"time"

	"github.com/vfg2006/sop-manager-api/internal/config"
)

type Client interface {
	GetMonthlySales(params SalesConsultationParams, erpConfig *config.Erp) (SalesConsultationResponse, error)
}

type ErpClient struct {
	httpClient *http.Client
	config     *config.Config
}

// NewClient cria uma nova instância do cliente da API do ERP
func NewClient(cfg *config.Config) Client {
	return &ErpClient{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		config: cfg,
	}
}
