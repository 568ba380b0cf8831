package planning

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculatePeriod_Shape(t *testing.T) {
	references := []time.Time{
		time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC),
		time.Date(2024, 2, 29, 12, 0, 0, 0, time.UTC),
		time.Date(2000, 3, 10, 0, 0, 0, 0, time.UTC),
	}

	for _, ref := range references {
		period := CalculatePeriod(ref)

		require.Len(t, period.Months, PeriodMonths, "referência %s", ref)

		historical, current, future := 0, 0, 0
		for _, m := range period.Months {
			if m.IsHistorical {
				historical++
			}
			if m.IsCurrent {
				current++
			}
			if m.IsFuture {
				future++
			}
			// Exatamente uma das três flags por mês
			flags := 0
			for _, f := range []bool{m.IsHistorical, m.IsCurrent, m.IsFuture} {
				if f {
					flags++
				}
			}
			assert.Equal(t, 1, flags)
		}

		assert.Equal(t, HistoricalMonths, historical)
		assert.Equal(t, 1, current)
		assert.Equal(t, FutureMonths, future)

		// Meses contíguos
		for i := 1; i < len(period.Months); i++ {
			prev := period.Months[i-1]
			curr := period.Months[i]
			expected := time.Date(prev.Year, time.Month(prev.Month), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
			assert.Equal(t, expected.Year(), curr.Year)
			assert.Equal(t, int(expected.Month()), curr.Month)
		}

		// start + 15 meses == end
		start := time.Date(period.StartYear, time.Month(period.StartMonth), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, PeriodMonths-1, 0)
		assert.Equal(t, period.EndYear, end.Year())
		assert.Equal(t, period.EndMonth, int(end.Month()))
	}
}

func TestCalculatePeriod_YearRollover(t *testing.T) {
	period := CalculatePeriod(time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC))

	historical := HistoricalMonthsOf(period)
	require.Len(t, historical, 4)

	assert.Equal(t, 2024, historical[0].Year)
	assert.Equal(t, 9, historical[0].Month)
	assert.Equal(t, 2024, historical[1].Year)
	assert.Equal(t, 10, historical[1].Month)
	assert.Equal(t, 2024, historical[2].Year)
	assert.Equal(t, 11, historical[2].Month)
	assert.Equal(t, 2024, historical[3].Year)
	assert.Equal(t, 12, historical[3].Month)

	assert.Equal(t, 2025, period.EndYear)
	assert.Equal(t, 12, period.EndMonth)
}

func TestForecastMonths(t *testing.T) {
	period := CalculatePeriod(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))

	forecast := ForecastMonths(period)
	require.Len(t, forecast, FutureMonths+1)

	assert.True(t, forecast[0].IsCurrent)
	assert.Equal(t, 2025, forecast[0].Year)
	assert.Equal(t, 3, forecast[0].Month)
	for _, m := range forecast[1:] {
		assert.True(t, m.IsFuture)
	}
}

func TestIsDateInPeriod(t *testing.T) {
	period := CalculatePeriod(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))

	tests := []struct {
		date     time.Time
		expected bool
	}{
		{time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC), true},   // Início do período
		{time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), true},   // Fim do período
		{time.Date(2024, 10, 31, 0, 0, 0, 0, time.UTC), false}, // Um dia antes
		{time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), false},   // Um mês depois
		{time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), true},   // Mês corrente
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, IsDateInPeriod(tt.date, period), "data %s", tt.date)
	}
}

func TestEndOfMonth(t *testing.T) {
	assert.Equal(t, 29, EndOfMonth(2024, 2).Day()) // Bissexto
	assert.Equal(t, 28, EndOfMonth(2025, 2).Day())
	assert.Equal(t, 31, EndOfMonth(2025, 12).Day())
	assert.Equal(t, 30, EndOfMonth(2025, 11).Day())
}

func TestSubmissionDeadline(t *testing.T) {
	cycleEnd := time.Date(2025, 11, 30, 0, 0, 0, 0, time.UTC)

	deadline := SubmissionDeadline(&cycleEnd, 2025, 11, 7)
	assert.Equal(t, time.Date(2025, 11, 23, 23, 59, 59, 0, time.UTC), deadline)
}

func TestSubmissionDeadline_DerivedCycleEnd(t *testing.T) {
	// Sem data de fim, o fim é o último dia do mês de início
	deadline := SubmissionDeadline(nil, 2024, 2, 7)
	assert.Equal(t, time.Date(2024, 2, 22, 23, 59, 59, 0, time.UTC), deadline)

	// Lead time inválido cai no padrão de 7 dias
	deadline = SubmissionDeadline(nil, 2025, 6, 0)
	assert.Equal(t, time.Date(2025, 6, 23, 23, 59, 59, 0, time.UTC), deadline)
}
