package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/Henry-Tercero-MH/Generador-Facturas/internal/cache"
	"github.com/Henry-Tercero-MH/Generador-Facturas/internal/config"
	"github.com/Henry-Tercero-MH/Generador-Facturas/internal/models"
	"github.com/Henry-Tercero-MH/Generador-Facturas/internal/storage"
	"github.com/Henry-Tercero-MH/Generador-Facturas/pkg/logger"
	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// pdfCacheTTL bounds how long a rendered receipt stays cached
const pdfCacheTTL = 24 * time.Hour

// ExportService renders receipts as PDF, printable HTML, CSV and XLSX
type ExportService struct {
	amounts *AmountService
	images  *ImageService
	cache   cache.Cache
	storage *storage.LocalStorage
	engine  string
	issuer  string
	now     func() time.Time
}

func NewExportService(amounts *AmountService, images *ImageService, c cache.Cache, store *storage.LocalStorage, cfg *config.Config) *ExportService {
	engine := cfg.PDFEngine
	if engine == "" {
		engine = config.PDFEngineGofpdf
	}
	return &ExportService{
		amounts: amounts,
		images:  images,
		cache:   c,
		storage: store,
		engine:  engine,
		issuer:  cfg.IssuerName,
		now:     time.Now,
	}
}

// ReceiptFilename is the download name of a receipt document
func ReceiptFilename(r *models.Receipt, ext string) string {
	return fmt.Sprintf("recibo_%s.%s", safeFilename(r.Number), ext)
}

// ReceiptPDF renders a receipt, reusing the cached document while the receipt is unchanged
func (s *ExportService) ReceiptPDF(ctx context.Context, r *models.Receipt) ([]byte, string, error) {
	filename := ReceiptFilename(r, "pdf")
	key := fmt.Sprintf("receipt-pdf:%d:%d:%s", r.ID, r.Version(), s.engine)

	if s.cache != nil {
		if data, ok := s.cache.Get(ctx, key); ok {
			return data, filename, nil
		}
	}

	// a cache restart falls back to the copy archived for this version
	if data, ok := s.archived(r); ok {
		s.remember(ctx, key, r, data)
		return data, filename, nil
	}

	var (
		data []byte
		err  error
	)
	switch s.engine {
	case config.PDFEngineWkhtmltopdf:
		data, err = s.receiptPDFFromHTML(r)
	default:
		data, err = s.receiptPDF(r)
	}
	if err != nil {
		return nil, "", err
	}

	s.remember(ctx, key, r, data)
	s.archive(r, data)

	return data, filename, nil
}

func (s *ExportService) remember(ctx context.Context, key string, r *models.Receipt, data []byte) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, pdfCacheTTL); err != nil {
		logger.Warn("failed to cache receipt pdf", "receipt_id", r.ID, "error", err)
	}
}

// ReceiptHTML renders the printable receipt page
func (s *ExportService) ReceiptHTML(ctx context.Context, r *models.Receipt, autoPrint bool) ([]byte, error) {
	view, err := s.view(r)
	if err != nil {
		return nil, err
	}
	view.AutoPrint = autoPrint
	return renderTemplate(receiptTemplate, view)
}

// ListCSV exports receipts as CSV
func (s *ExportService) ListCSV(ctx context.Context, receipts []models.Receipt) ([]byte, string, error) {
	buf := new(bytes.Buffer)
	// BOM so spreadsheet programs read the accents as UTF-8
	buf.WriteString("\ufeff")
	writer := csv.NewWriter(buf)

	_ = writer.Write(exportHeaders)
	for i := range receipts {
		_ = writer.Write(exportRow(&receipts[i]))
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("recibos_%s.csv", s.now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

// ListXLSX exports receipts as an Excel workbook with a total of issued receipts
func (s *ExportService) ListXLSX(ctx context.Context, receipts []models.Receipt) ([]byte, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Recibos"
	_ = f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	moneyFormat := "#,##0.00"
	moneyStyle, _ := f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFormat})

	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	_ = f.SetCellStyle(sheet, "A1", "J1", headerStyle)

	for i := range receipts {
		r := &receipts[i]
		row := i + 2
		values := []interface{}{
			r.Number, r.Date, r.ReceivedFrom, r.Amount.InexactFloat64(), r.AmountInWords,
			r.Concept, r.Location, r.ReceivedBy, statusLabel(r.Status), voidReason(r),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	last := len(receipts) + 1
	if len(receipts) > 0 {
		_ = f.SetCellStyle(sheet, "D2", fmt.Sprintf("D%d", last), moneyStyle)
	}

	totalRow := last + 2
	_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", totalRow), "Total emitido")
	_ = f.SetCellStyle(sheet, fmt.Sprintf("C%d", totalRow), fmt.Sprintf("C%d", totalRow), headerStyle)
	totalCell := fmt.Sprintf("D%d", totalRow)
	_ = f.SetCellValue(sheet, totalCell, issuedTotal(receipts).InexactFloat64())
	if len(receipts) > 0 {
		_ = f.SetCellFormula(sheet, totalCell, fmt.Sprintf(`SUMIF(I2:I%d,"%s",D2:D%d)`, last, statusLabel(models.ReceiptStatusIssued), last))
	}
	_ = f.SetCellStyle(sheet, totalCell, totalCell, moneyStyle)

	_ = f.SetColWidth(sheet, "A", "B", 14)
	_ = f.SetColWidth(sheet, "C", "C", 30)
	_ = f.SetColWidth(sheet, "D", "D", 14)
	_ = f.SetColWidth(sheet, "E", "F", 45)
	_ = f.SetColWidth(sheet, "G", "J", 20)
	_ = f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("recibos_%s.xlsx", s.now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

// ListPDF prints a receipt listing as a table
func (s *ExportService) ListPDF(ctx context.Context, receipts []models.Receipt) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "Letter", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Listado de recibos", true)
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "Listado de recibos", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 6, tr("Generado el "+LongSpanishDate(s.now())), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	widths := []float64{24, 24, 76, 32, 30}
	headers := []string{"No.", "Fecha", "Recibí de", "Monto", "Estado"}
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(224, 224, 224)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, tr(h), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for i := range receipts {
		r := &receipts[i]
		pdf.CellFormat(widths[0], 7, tr(r.Number), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 7, r.Date, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[2], 7, tr(truncateRunes(r.ReceivedFrom, 42)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 7, tr(s.amounts.Format(r.Amount)), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 7, statusLabel(r.Status), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(widths[0]+widths[1]+widths[2], 8, "Total emitido", "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[3], 8, tr(s.amounts.Format(issuedTotal(receipts))), "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[4], 8, "", "1", 1, "C", false, 0, "")

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("recibos_%s.pdf", s.now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

// receiptPDF draws a single receipt with gofpdf
func (s *ExportService) receiptPDF(r *models.Receipt) ([]byte, error) {
	view := newReceiptView(r, s.amounts, s.issuer)

	pdf := gofpdf.New("P", "mm", "Letter", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr("Recibo No. "+r.Number), false)
	if s.issuer != "" {
		pdf.SetAuthor(tr(s.issuer), false)
	}
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	const left, top, width = 15.0, 15.0, 186.0

	// Header: logo and issuer on the left, title, number and amount on the right
	logo, err := s.images.LogoPNG()
	if err != nil {
		logger.Warn("receipt logo unavailable", "error", err)
	}
	if len(logo) > 0 {
		opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
		pdf.RegisterImageOptionsReader("logo", opts, bytes.NewReader(logo))
		pdf.ImageOptions("logo", 20, 20, 0, 18, false, opts, 0, "")
	}
	if s.issuer != "" {
		pdf.SetFont("Arial", "B", 11)
		pdf.SetXY(20, 40)
		pdf.CellFormat(90, 6, tr(s.issuer), "", 0, "L", false, 0, "")
	}

	pdf.SetXY(120, 20)
	pdf.SetFont("Arial", "B", 22)
	pdf.CellFormat(76, 10, "RECIBO", "", 1, "R", false, 0, "")
	pdf.SetX(120)
	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(76, 7, tr("No. "+view.Number), "", 1, "R", false, 0, "")
	pdf.SetX(146)
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(50, 9, tr(view.Amount), "1", 1, "C", false, 0, "")

	pdf.SetY(55)
	field := func(label, value string) {
		pdf.SetX(20)
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(42, 8, tr(label), "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.MultiCell(134, 8, tr(value), "B", "L", false)
		pdf.Ln(2)
	}
	field("Recibí de:", view.ReceivedFrom)
	field("La cantidad de:", view.AmountInWords)
	field("Por concepto de:", view.Concept)
	field("Lugar y fecha:", view.Location+", "+view.LongDate)
	if view.Voided {
		field("Motivo de anulación:", view.VoidReason)
	}

	// Signature line
	y := pdf.GetY() + 20
	pdf.Line(68, y, 148, y)
	pdf.SetXY(68, y+1)
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(80, 6, tr(view.ReceivedBy), "", 1, "C", false, 0, "")
	pdf.SetX(68)
	pdf.SetFont("Arial", "I", 9)
	pdf.CellFormat(80, 5, "Recibido por", "", 1, "C", false, 0, "")

	bottom := pdf.GetY() + 6
	pdf.Rect(left, top, width, bottom-top, "D")

	if view.Voided {
		pdf.SetTextColor(200, 0, 0)
		pdf.SetAlpha(0.35, "Normal")
		pdf.SetFont("Arial", "B", 60)
		pdf.TransformBegin()
		pdf.TransformRotate(20, 108, (top+bottom)/2)
		pdf.Text(48, (top+bottom)/2+8, "ANULADO")
		pdf.TransformEnd()
		pdf.SetAlpha(1, "Normal")
		pdf.SetTextColor(0, 0, 0)
	}

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("failed to create pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// receiptPDFFromHTML converts the printable template with wkhtmltopdf
func (s *ExportService) receiptPDFFromHTML(r *models.Receipt) ([]byte, error) {
	view, err := s.view(r)
	if err != nil {
		return nil, err
	}
	html, err := renderTemplate(receiptTemplate, view)
	if err != nil {
		return nil, err
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create pdf generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.PageSize.Set(wkhtmltopdf.PageSizeLetter)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.Title.Set("Recibo No. " + r.Number)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader(html))
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create pdf: %w", err)
	}
	return pdfg.Bytes(), nil
}

func (s *ExportService) view(r *models.Receipt) (receiptView, error) {
	view := newReceiptView(r, s.amounts, s.issuer)
	uri, err := s.images.LogoDataURI()
	if err != nil {
		logger.Warn("receipt logo unavailable", "error", err)
	}
	view.LogoURI = template.URL(uri)
	return view, nil
}

// ArchivePath is where the rendering of one receipt version is kept on disk
func ArchivePath(r *models.Receipt, engine string) string {
	return filepath.Join("receipts", r.PublicID.String(), fmt.Sprintf("%d-%s.pdf", r.Version(), engine))
}

// archive keeps every rendered version of a receipt on disk
func (s *ExportService) archive(r *models.Receipt, data []byte) {
	if s.storage == nil {
		return
	}
	if _, err := s.storage.Put(data, ArchivePath(r, s.engine)); err != nil {
		logger.Warn("failed to archive receipt pdf", "receipt_id", r.ID, "error", err)
	}
}

func (s *ExportService) archived(r *models.Receipt) ([]byte, bool) {
	if s.storage == nil {
		return nil, false
	}
	data, err := s.storage.Read(ArchivePath(r, s.engine))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("failed to read archived receipt pdf", "receipt_id", r.ID, "error", err)
		}
		return nil, false
	}
	return data, true
}

var exportHeaders = []string{
	"Número", "Fecha", "Recibí de", "Monto", "Cantidad en letras",
	"Concepto", "Lugar", "Recibido por", "Estado", "Motivo de anulación",
}

func exportRow(r *models.Receipt) []string {
	return []string{
		r.Number, r.Date, r.ReceivedFrom, r.Amount.StringFixed(2), r.AmountInWords,
		r.Concept, r.Location, r.ReceivedBy, statusLabel(r.Status), voidReason(r),
	}
}

func voidReason(r *models.Receipt) string {
	if r.VoidReason == nil {
		return ""
	}
	return *r.VoidReason
}

func issuedTotal(receipts []models.Receipt) decimal.Decimal {
	total := decimal.Zero
	for i := range receipts {
		if !receipts[i].IsVoided() {
			total = total.Add(receipts[i].Amount)
		}
	}
	return total
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
