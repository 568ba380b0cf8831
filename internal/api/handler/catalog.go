package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sop-manager-api/internal/domain"
	"github.com/vfg2006/sop-manager-api/internal/usecases/cataloging"
	"github.com/vfg2006/sop-manager-api/pkg/apiErrors"
)

// SetMatrixEntryRequest habilita/desabilita a combinação cliente-produto
type SetMatrixEntryRequest struct {
	ProductID string `json:"product_id"`
	IsActive  bool   `json:"is_active"`
}

// CreateCustomer cria um cliente no cadastro mestre
func CreateCustomer(service cataloging.Cataloger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - CreateCustomer")

		var customer domain.Customer
		if err := json.NewDecoder(r.Body).Decode(&customer); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		created, err := service.CreateCustomer(r.Context(), &customer)
		if err != nil {
			handleCatalogError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(created); err != nil {
			logrus.Error(err)
		}
	}
}

// UpdateCustomer atualiza parcialmente um cliente
func UpdateCustomer(service cataloging.Cataloger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - UpdateCustomer")

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do cliente não fornecido", nil)
			return
		}

		var req domain.UpdateCustomerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}
		req.ID = id

		customer, err := service.UpdateCustomer(r.Context(), &req)
		if err != nil {
			handleCatalogError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(customer); err != nil {
			logrus.Error(err)
		}
	}
}

// ListCustomers lista os clientes; ?active=true restringe aos ativos
func ListCustomers(service cataloging.Cataloger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		onlyActive := r.URL.Query().Get("active") == "true"

		customers, err := service.ListCustomers(r.Context(), onlyActive)
		if err != nil {
			handleCatalogError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(customers); err != nil {
			logrus.Error(err)
		}
	}
}

// CreateProduct cria um produto no cadastro mestre
func CreateProduct(service cataloging.Cataloger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - CreateProduct")

		var product domain.Product
		if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		created, err := service.CreateProduct(r.Context(), &product)
		if err != nil {
			handleCatalogError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(created); err != nil {
			logrus.Error(err)
		}
	}
}

// UpdateProduct atualiza parcialmente um produto
func UpdateProduct(service cataloging.Cataloger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - UpdateProduct")

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do produto não fornecido", nil)
			return
		}

		var req domain.UpdateProductRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}
		req.ID = id

		product, err := service.UpdateProduct(r.Context(), &req)
		if err != nil {
			handleCatalogError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(product); err != nil {
			logrus.Error(err)
		}
	}
}

// ListProducts lista os produtos; ?active=true restringe aos ativos
func ListProducts(service cataloging.Cataloger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		onlyActive := r.URL.Query().Get("active") == "true"

		products, err := service.ListProducts(r.Context(), onlyActive)
		if err != nil {
			handleCatalogError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(products); err != nil {
			logrus.Error(err)
		}
	}
}

// SetMatrixEntry habilita ou desabilita um produto para um cliente
func SetMatrixEntry(service cataloging.Cataloger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - SetMatrixEntry")

		customerID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if customerID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do cliente não fornecido", nil)
			return
		}

		var req SetMatrixEntryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		if req.ProductID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do produto não fornecido", nil)
			return
		}

		entry, err := service.SetMatrixEntry(r.Context(), customerID, req.ProductID, req.IsActive)
		if err != nil {
			handleCatalogError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(entry); err != nil {
			logrus.Error(err)
		}
	}
}

// ListCustomerProducts lista a matriz de produtos de um cliente
func ListCustomerProducts(service cataloging.Cataloger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if customerID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do cliente não fornecido", nil)
			return
		}

		onlyActive := r.URL.Query().Get("active") == "true"

		entries, err := service.ListCustomerProducts(r.Context(), customerID, onlyActive)
		if err != nil {
			handleCatalogError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(entries); err != nil {
			logrus.Error(err)
		}
	}
}

// handleCatalogError converte o erro do usecase na resposta padronizada
func handleCatalogError(w http.ResponseWriter, err error) {
	logrus.Error(err)

	var catalogErr *cataloging.CatalogError
	if errors.As(err, &catalogErr) {
		apiErrors.WriteError(w, catalogErr.Code, catalogErr.Error(), nil)
		return
	}

	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao processar cadastro", nil)
}
