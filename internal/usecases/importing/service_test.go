package importing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sop-manager-api/infrastructure/repository/mocks"
	"github.com/vfg2006/sop-manager-api/internal/domain"
	"github.com/vfg2006/sop-manager-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

func validRecord() *domain.SalesHistoryRecord {
	return &domain.SalesHistoryRecord{
		CustomerID:  "CLI001",
		ProductID:   "PRD001",
		Year:        2025,
		Month:       3,
		Quantity:    10,
		UnitPrice:   2.5,
		TotalSales:  25,
		Cogs:        15,
		GrossProfit: 10,
	}
}

func TestService_ImportBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	t.Run("Lote válido é importado por inteiro e recebe IDs", func(t *testing.T) {
		salesRepo := mocks.NewMockSalesHistoryRepository(ctrl)
		service := NewService(salesRepo)

		salesRepo.EXPECT().SaveOrUpdate(ctx, gomock.Any()).Return(nil).Times(2)

		first := validRecord()
		second := validRecord()
		second.Month = 4

		result, err := service.ImportBatch(ctx, []*domain.SalesHistoryRecord{first, second})

		require.NoError(t, err)
		assert.Equal(t, 2, result.Imported)
		assert.Zero(t, result.Rejected)
		assert.Empty(t, result.Errors)
		assert.NotEmpty(t, first.ID)
		assert.NotEmpty(t, second.ID)
	})

	t.Run("Linha inválida é rejeitada sem abortar o lote", func(t *testing.T) {
		salesRepo := mocks.NewMockSalesHistoryRepository(ctrl)
		service := NewService(salesRepo)

		salesRepo.EXPECT().SaveOrUpdate(ctx, gomock.Any()).Return(nil)

		bad := validRecord()
		bad.Month = 13

		result, err := service.ImportBatch(ctx, []*domain.SalesHistoryRecord{bad, validRecord()})

		require.NoError(t, err)
		assert.Equal(t, 1, result.Imported)
		assert.Equal(t, 1, result.Rejected)
		require.Len(t, result.Errors, 1)
		assert.Contains(t, result.Errors[0], "linha 1")
	})

	t.Run("Motivos de rejeição do esquema canônico", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(r *domain.SalesHistoryRecord)
		}{
			{"Cliente vazio", func(r *domain.SalesHistoryRecord) { r.CustomerID = "" }},
			{"Produto vazio", func(r *domain.SalesHistoryRecord) { r.ProductID = "" }},
			{"Ano abaixo do mínimo", func(r *domain.SalesHistoryRecord) { r.Year = 1999 }},
			{"Ano acima do máximo", func(r *domain.SalesHistoryRecord) { r.Year = 2101 }},
			{"Mês zero", func(r *domain.SalesHistoryRecord) { r.Month = 0 }},
			{"Quantidade negativa", func(r *domain.SalesHistoryRecord) { r.Quantity = -1 }},
			{"Preço negativo", func(r *domain.SalesHistoryRecord) { r.UnitPrice = -0.5 }},
			{"Receita inconsistente com quantidade x preço", func(r *domain.SalesHistoryRecord) { r.TotalSales = 99 }},
			{"Margem bruta inconsistente com receita menos custo", func(r *domain.SalesHistoryRecord) { r.GrossProfit = 5 }},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				salesRepo := mocks.NewMockSalesHistoryRepository(ctrl)
				service := NewService(salesRepo)

				record := validRecord()
				tt.mutate(record)

				result, err := service.ImportBatch(ctx, []*domain.SalesHistoryRecord{record})

				require.NoError(t, err)
				assert.Zero(t, result.Imported)
				assert.Equal(t, 1, result.Rejected)
			})
		}
	})

	t.Run("Falha de gravação conta como rejeição da linha", func(t *testing.T) {
		salesRepo := mocks.NewMockSalesHistoryRepository(ctrl)
		service := NewService(salesRepo)

		salesRepo.EXPECT().SaveOrUpdate(ctx, gomock.Any()).Return(errors.New("deadlock"))
		salesRepo.EXPECT().SaveOrUpdate(ctx, gomock.Any()).Return(nil)

		result, err := service.ImportBatch(ctx, []*domain.SalesHistoryRecord{validRecord(), validRecord()})

		require.NoError(t, err)
		assert.Equal(t, 1, result.Imported)
		assert.Equal(t, 1, result.Rejected)
	})

	t.Run("Lote vazio é rejeitado com erro", func(t *testing.T) {
		salesRepo := mocks.NewMockSalesHistoryRepository(ctrl)
		service := NewService(salesRepo)

		_, err := service.ImportBatch(ctx, nil)

		var importErr *ImportError
		require.ErrorAs(t, err, &importErr)
		assert.Equal(t, apiErrors.ErrSalesRecordInvalid, importErr.Code)
		assert.ErrorIs(t, err, ErrEmptyBatch)
	})
}
