// Package rendering transforma o relatório montado em seções em um fluxo de
// bytes. Motores de planilha/PDF ficam fora do núcleo; aqui ficam os formatos
// nativos (JSON e CSV).
package rendering

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/sop-manager-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrUnsupportedFormat indica um formato de renderização desconhecido
var ErrUnsupportedFormat = errors.New("unsupported report format")

type Renderer interface {
	Render(report *domain.Report, format string) ([]byte, string, error)
}

type renderer struct{}

func New() Renderer {
	return &renderer{}
}

// Render devolve os bytes do relatório e o content-type correspondente
func (r *renderer) Render(report *domain.Report, format string) ([]byte, string, error) {
	switch format {
	case domain.ReportFormatJSON, "":
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return nil, "", errors.Wrap(err, "erro ao serializar relatório")
		}
		return data, "application/json", nil

	case domain.ReportFormatCSV:
		data, err := renderCSV(report)
		if err != nil {
			return nil, "", errors.Wrap(err, "erro ao gerar CSV do relatório")
		}
		return data, "text/csv", nil
	}

	return nil, "", errors.Wrapf(ErrUnsupportedFormat, "formato %q", format)
}

func renderCSV(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	writeRow := func(fields ...string) {
		_ = w.Write(fields)
	}

	writeRow("report_type", report.Type)
	writeRow("period", report.PeriodLabel)
	writeRow("generated_at", report.GeneratedAt.Format("2006-01-02 15:04:05"))

	if report.NoData {
		// Marcador explícito: ausência de dados não é receita zero
		writeRow("no_data", "true")
		w.Flush()
		return buf.Bytes(), w.Error()
	}

	if report.Summary != nil {
		writeRow()
		writeRow("SUMMARY")
		writeRow("record_count", strconv.Itoa(report.Summary.RecordCount))
		writeRow("total_quantity", formatFloat(report.Summary.TotalQuantity))
		writeRow("total_revenue", formatFloat(report.Summary.TotalRevenue))
		writeRow("total_cogs", formatFloat(report.Summary.TotalCogs))
		writeRow("total_gross_profit", formatFloat(report.Summary.TotalGrossProfit))
		writeRow("gross_profit_pct", formatFloat(report.Summary.GrossProfitPct))
		writeRow("average_quantity", formatFloat(report.Summary.AverageQuantity))
		writeRow("average_unit_price", formatFloat(report.Summary.AverageUnitPrice))
	}

	if len(report.MonthlyTrends) > 0 {
		writeRow()
		writeRow("MONTHLY TRENDS")
		writeRow("year", "month", "quantity", "revenue", "gross_profit", "records")
		for _, m := range report.MonthlyTrends {
			writeRow(
				strconv.Itoa(m.Year),
				fmt.Sprintf("%02d", m.Month),
				formatFloat(m.Quantity),
				formatFloat(m.Revenue),
				formatFloat(m.GrossProfit),
				strconv.Itoa(m.RecordCount),
			)
		}
	}

	if len(report.TopCustomers) > 0 {
		writeRow()
		writeRow("TOP CUSTOMERS")
		writeRow("position", "customer_id", "customer_name", "quantity", "revenue", "gross_profit")
		for _, c := range report.TopCustomers {
			writeRow(
				strconv.Itoa(c.Position),
				c.CustomerID,
				c.CustomerName,
				formatFloat(c.Quantity),
				formatFloat(c.Revenue),
				formatFloat(c.GrossProfit),
			)
		}
	}

	if len(report.TopProducts) > 0 {
		writeRow()
		writeRow("TOP PRODUCTS")
		writeRow("position", "product_id", "product_name", "quantity", "revenue", "gross_profit")
		for _, p := range report.TopProducts {
			writeRow(
				strconv.Itoa(p.Position),
				p.ProductID,
				p.ProductName,
				formatFloat(p.Quantity),
				formatFloat(p.Revenue),
				formatFloat(p.GrossProfit),
			)
		}
	}

	if len(report.RawData) > 0 {
		writeRow()
		writeRow("RAW DATA")
		writeRow("customer_id", "customer_name", "product_id", "product_name", "year", "month",
			"quantity", "unit_price", "total_sales", "cogs", "gross_profit", "gross_profit_pct")
		for _, rec := range report.RawData {
			writeRow(
				rec.CustomerID,
				rec.CustomerName,
				rec.ProductID,
				rec.ProductName,
				strconv.Itoa(rec.Year),
				fmt.Sprintf("%02d", rec.Month),
				formatFloat(rec.Quantity),
				formatFloat(rec.UnitPrice),
				formatFloat(rec.TotalSales),
				formatFloat(rec.Cogs),
				formatFloat(rec.GrossProfit),
				formatFloat(rec.GrossProfitPct),
			)
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}
