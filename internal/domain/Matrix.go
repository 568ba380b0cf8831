package domain

import "time"

// MatrixEntry liga um produto a um cliente. A flag is_active define se o vendedor
// pode lançar previsão daquele produto para aquele cliente.
type MatrixEntry struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customer_id"`
	ProductID  string    `json:"product_id"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
