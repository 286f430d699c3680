package infra

// pdf.go — receipt generation using go-pdf/fpdf.
// Renders thermal-printer-sized receipts with the shop header, sale id and
// timestamp, item table, bold total, payment method and, for credit sales,
// the customer and due date.

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Junior36912/Projeto-Acougue/internal/model"

	"github.com/go-pdf/fpdf"
)

type ReciboPDF struct {
	storagePath string
}

func NewReciboPDF(storagePath string) *ReciboPDF {
	return &ReciboPDF{storagePath: storagePath}
}

// GerarRecibo renders the receipt and returns the PDF bytes.
func (g *ReciboPDF) GerarRecibo(v *model.Venda) ([]byte, error) {
	pdf := g.render(v)
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render recibo: %w", err)
	}
	return buf.Bytes(), nil
}

// SalvarRecibo renders the receipt and writes it under the storage dir.
// Returns the absolute path to the generated file.
func (g *ReciboPDF) SalvarRecibo(v *model.Venda) (string, error) {
	if err := os.MkdirAll(g.storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	filePath := filepath.Join(g.storagePath, fmt.Sprintf("recibo_%s.pdf", v.ID))
	pdf := g.render(v)
	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write recibo: %w", err)
	}
	return filePath, nil
}

func (g *ReciboPDF) render(v *model.Venda) *fpdf.Fpdf {
	// 74mm × 105mm — close to thermal receipt paper
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, "Acougue", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Comprovante de Venda", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	// ── Sale info ────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Venda %s", v.ID), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, v.CreatedAt.Format("02/01/2006  15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Items ────────────────────────────────────────────────────────────────
	col1 := contentW * 0.50 // product name
	col2 := contentW * 0.20 // qty
	col3 := contentW * 0.30 // subtotal

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, "Produto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Qtd", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	for _, item := range v.Itens {
		nome := ""
		if item.Produto != nil {
			nome = item.Produto.Nome
		}
		subtotal := item.PrecoUnitario.Mul(item.Quantidade).Round(2)
		pdf.CellFormat(col1, 4, nome, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 4, item.Quantidade.String(), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 4, "R$ "+subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	}
	pdf.Ln(1)

	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(1)

	// ── Total ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW*0.5, 6, "TOTAL", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.5, 6, "R$ "+v.Total.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, "Pagamento: "+v.MetodoPagamento, "", 1, "L", false, 0, "")

	// ── Fiado footer ─────────────────────────────────────────────────────────
	if v.MetodoPagamento == model.MetodoPrazo {
		pdf.Ln(1)
		pdf.SetFont("Helvetica", "B", 7)
		if v.ClienteNome != nil {
			pdf.CellFormat(contentW, 4, "Cliente: "+*v.ClienteNome, "", 1, "L", false, 0, "")
		}
		if v.DataVencimento != nil {
			pdf.CellFormat(contentW, 4, "Vencimento: "+v.DataVencimento.Format("02/01/2006"), "", 1, "L", false, 0, "")
		}
		if v.StatusPagamento == model.StatusPendente {
			pdf.CellFormat(contentW, 5, "*** PAGAMENTO PENDENTE ***", "", 1, "C", false, 0, "")
		}
	}

	return pdf
}
