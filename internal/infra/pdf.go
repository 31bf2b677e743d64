package infra

// pdf.go — Payment receipt generation using go-pdf/fpdf.
// Generates an A5 receipt with the dojo header, student data, billing period
// and amount. The output file is saved to storagePath/recibo_{id}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/model"

	"github.com/go-pdf/fpdf"
)

var mesesRecibo = [...]string{"", "Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre"}

// GenerarReciboPDF writes the receipt PDF for a confirmed Pago and returns
// the absolute path to the generated file. The Alumno association must be
// preloaded.
func GenerarReciboPDF(pago *model.Pago, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("recibo_%s.pdf", pago.ID)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, "Recibo de Pago", "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(4)

	// ── Student and period ────────────────────────────────────────────────────
	labelW := contentW * 0.38
	valueW := contentW - labelW

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(labelW, 6, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(valueW, 6, value, "", 1, "L", false, 0, "")
	}

	row("Alumno:", pago.Alumno.Nombre)
	periodo := fmt.Sprintf("%s %d", mesesRecibo[pago.Mes], pago.Anio)
	if pago.Adelantado {
		periodo += " (pago adelantado)"
	}
	row("Período:", periodo)
	row("Fecha de pago:", pago.FechaPago.Format("02/01/2006"))
	row("Método:", pago.Metodo)
	if pago.Referencia != "" {
		row("Referencia:", pago.Referencia)
	}

	pdf.Ln(4)
	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(4)

	// ── Amount ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(labelW, 8, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(valueW, 8, "$"+pago.Monto.StringFixed(2), "", 1, "R", false, 0, "")

	// ── Footer ────────────────────────────────────────────────────────────────
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Comprobante N° %s", pago.ID), "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
