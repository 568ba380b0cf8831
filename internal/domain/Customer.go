package domain

import "time"

// Customer é o cadastro mestre de clientes
type Customer struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Code       string    `json:"code"`
	SalesRepID int       `json:"sales_rep_id"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// UpdateCustomerRequest é o payload de atualização parcial de cliente
type UpdateCustomerRequest struct {
	ID         string  `json:"id"`
	Name       *string `json:"name"`
	Code       *string `json:"code"`
	SalesRepID *int    `json:"sales_rep_id"`
	Active     *bool   `json:"active"`
}
