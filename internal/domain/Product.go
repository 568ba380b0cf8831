package domain

import "time"

// Product é o cadastro mestre de produtos
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	Description string    `json:"description"`
	UnitCost    float64   `json:"unit_cost"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UpdateProductRequest é o payload de atualização parcial de produto
type UpdateProductRequest struct {
	ID          string   `json:"id"`
	Name        *string  `json:"name"`
	Code        *string  `json:"code"`
	Description *string  `json:"description"`
	UnitCost    *float64 `json:"unit_cost"`
	Active      *bool    `json:"active"`
}
