// Package cataloging administra os cadastros mestres do portal: clientes,
// produtos e a matriz cliente-produto que habilita previsões.
package cataloging

import (
	"context"
	"errors"
	"fmt"

	"github.com/vfg2006/sop-manager-api/infrastructure/repository"
	"github.com/vfg2006/sop-manager-api/internal/domain"
	"github.com/vfg2006/sop-manager-api/pkg/apiErrors"
	"github.com/vfg2006/sop-manager-api/pkg/utils"
)

// Erros dos cadastros mestres
var (
	ErrCustomerNotFound = errors.New("cliente não encontrado")
	ErrProductNotFound  = errors.New("produto não encontrado")
	ErrMissingData      = errors.New("dados obrigatórios ausentes")

	ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")
)

// CatalogError é um erro com contexto adicional dos cadastros
type CatalogError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *CatalogError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *CatalogError) Unwrap() error {
	return e.Err
}

// NewCatalogError cria um novo erro de cadastro
func NewCatalogError(baseErr error, code string, details string) *CatalogError {
	return &CatalogError{
		Err:     baseErr,
		Code:    code,
		Details: details,
	}
}

type Cataloger interface {
	CreateCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	UpdateCustomer(ctx context.Context, req *domain.UpdateCustomerRequest) (*domain.Customer, error)
	GetCustomer(ctx context.Context, id string) (*domain.Customer, error)
	ListCustomers(ctx context.Context, onlyActive bool) ([]*domain.Customer, error)

	CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, req *domain.UpdateProductRequest) (*domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	ListProducts(ctx context.Context, onlyActive bool) ([]*domain.Product, error)

	SetMatrixEntry(ctx context.Context, customerID, productID string, isActive bool) (*domain.MatrixEntry, error)
	ListCustomerProducts(ctx context.Context, customerID string, onlyActive bool) ([]*domain.MatrixEntry, error)
}

type Service struct {
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	matrixRepo   repository.MatrixRepository
}

func NewService(
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	matrixRepo repository.MatrixRepository,
) Cataloger {
	return &Service{
		customerRepo: customerRepo,
		productRepo:  productRepo,
		matrixRepo:   matrixRepo,
	}
}

func (s *Service) CreateCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	if customer == nil || customer.Name == "" {
		return nil, NewCatalogError(ErrMissingData, apiErrors.ErrMissingRequiredData, "nome do cliente é obrigatório")
	}

	if customer.ID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return nil, fmt.Errorf("erro ao gerar ID do cliente: %w", err)
		}
		customer.ID = id
	}

	customer.Active = true

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, NewCatalogError(err, apiErrors.ErrDatabaseOperation, "erro ao criar cliente")
	}

	return customer, nil
}

func (s *Service) UpdateCustomer(ctx context.Context, req *domain.UpdateCustomerRequest) (*domain.Customer, error) {
	if req == nil || req.ID == "" {
		return nil, NewCatalogError(ErrMissingData, apiErrors.ErrMissingRequiredData, "ID do cliente é obrigatório")
	}

	customer, err := s.customerRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, NewCatalogError(err, apiErrors.ErrDatabaseOperation, "erro ao consultar cliente")
	}
	if customer == nil {
		return nil, NewCatalogError(ErrCustomerNotFound, apiErrors.ErrInvalidRequest, req.ID)
	}

	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.Code != nil {
		customer.Code = *req.Code
	}
	if req.SalesRepID != nil {
		customer.SalesRepID = *req.SalesRepID
	}
	if req.Active != nil {
		customer.Active = *req.Active
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, NewCatalogError(err, apiErrors.ErrDatabaseOperation, "erro ao atualizar cliente")
	}

	return customer, nil
}

func (s *Service) GetCustomer(ctx context.Context, id string) (*domain.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, NewCatalogError(err, apiErrors.ErrDatabaseOperation, "erro ao consultar cliente")
	}
	if customer == nil {
		return nil, NewCatalogError(ErrCustomerNotFound, apiErrors.ErrInvalidRequest, id)
	}
	return customer, nil
}

func (s *Service) ListCustomers(ctx context.Context, onlyActive bool) ([]*domain.Customer, error) {
	customers, err := s.customerRepo.List(ctx, onlyActive)
	if err != nil {
		return nil, NewCatalogError(err, apiErrors.ErrDatabaseOperation, "erro ao listar clientes")
	}
	return customers, nil
}

func (s *Service) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil || product.Name == "" {
		return nil, NewCatalogError(ErrMissingData, apiErrors.ErrMissingRequiredData, "nome do produto é obrigatório")
	}

	if product.UnitCost < 0 {
		return nil, NewCatalogError(ErrMissingData, apiErrors.ErrInvalidRequest, "custo unitário negativo")
	}

	if product.ID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return nil, fmt.Errorf("erro ao gerar ID do produto: %w", err)
		}
		product.ID = id
	}

	product.Active = true

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, NewCatalogError(err, apiErrors.ErrDatabaseOperation, "erro ao criar produto")
	}

	return product, nil
}

func (s *Service) UpdateProduct(ctx context.Context, req *domain.UpdateProductRequest) (*domain.Product, error) {
	if req == nil || req.ID == "" {
		return nil, NewCatalogError(ErrMissingData, apiErrors.ErrMissingRequiredData, "ID do produto é obrigatório")
	}

	product, err := s.productRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, NewCatalogError(err, apiErrors.ErrDatabaseOperation, "erro ao consultar produto")
	}
	if product == nil {
		return nil, NewCatalogError(ErrProductNotFound, apiErrors.ErrInvalidRequest, req.ID)
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Code != nil {
		product.Code = *req.Code
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.UnitCost != nil {
		if *req.UnitCost < 0 {
			return nil, NewCatalogError(ErrMissingData, apiErrors.ErrInvalidRequest, "custo unitário negativo")
		}
		product.UnitCost = *req.UnitCost
	}
	if req.Active != nil {
		product.Active = *req.Active
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, NewCatalogError(err, apiErrors.ErrDatabaseOperation, "erro ao atualizar produto")
	}

	return product, nil
}

func (s *Service) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, NewCatalogError(err, apiErrors.ErrDatabaseOperation, "erro ao consultar produto")
	}
	if product == nil {
		return nil, NewCatalogError(ErrProductNotFound, apiErrors.ErrInvalidRequest, id)
	}
	return product, nil
}

func (s *Service) ListProducts(ctx context.Context, onlyActive bool) ([]*domain.Product, error) {
	products, err := s.productRepo.List(ctx, onlyActive)
	if err != nil {
		return nil, NewCatalogError(err, apiErrors.ErrDatabaseOperation, "erro ao listar produtos")
	}
	return products, nil
}

// SetMatrixEntry habilita ou desabilita a combinação cliente-produto. Ambos
// os cadastros precisam existir; a gravação é idempotente por upsert.
func (s *Service) SetMatrixEntry(ctx context.Context, customerID, productID string, isActive bool) (*domain.MatrixEntry, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, NewCatalogError(err, apiErrors.ErrDatabaseOperation, "erro ao consultar cliente")
	}
	if customer == nil {
		return nil, NewCatalogError(ErrCustomerNotFound, apiErrors.ErrInvalidRequest, customerID)
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, NewCatalogError(err, apiErrors.ErrDatabaseOperation, "erro ao consultar produto")
	}
	if product == nil {
		return nil, NewCatalogError(ErrProductNotFound, apiErrors.ErrInvalidRequest, productID)
	}

	entry, err := s.matrixRepo.GetEntry(ctx, customerID, productID)
	if err != nil {
		return nil, NewCatalogError(err, apiErrors.ErrDatabaseOperation, "erro ao consultar matriz")
	}

	if entry == nil {
		id, err := utils.GenerateID()
		if err != nil {
			return nil, fmt.Errorf("erro ao gerar ID da entrada da matriz: %w", err)
		}
		entry = &domain.MatrixEntry{
			ID:         id,
			CustomerID: customerID,
			ProductID:  productID,
		}
	}

	entry.IsActive = isActive

	if err := s.matrixRepo.Upsert(ctx, entry); err != nil {
		return nil, NewCatalogError(err, apiErrors.ErrDatabaseOperation, "erro ao gravar entrada da matriz")
	}

	return entry, nil
}

func (s *Service) ListCustomerProducts(ctx context.Context, customerID string, onlyActive bool) ([]*domain.MatrixEntry, error) {
	entries, err := s.matrixRepo.ListByCustomer(ctx, customerID, onlyActive)
	if err != nil {
		return nil, NewCatalogError(err, apiErrors.ErrDatabaseOperation, "erro ao listar matriz do cliente")
	}
	return entries, nil
}
