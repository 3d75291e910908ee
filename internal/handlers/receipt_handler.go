package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/Henry-Tercero-MH/Generador-Facturas/internal/middleware"
	"github.com/Henry-Tercero-MH/Generador-Facturas/internal/repository"
	"github.com/Henry-Tercero-MH/Generador-Facturas/internal/services"
	"github.com/gin-gonic/gin"
)

type ReceiptHandler struct {
	receiptService *services.ReceiptService
	exportService  *services.ExportService
	shareService   *services.ShareService
	emailService   *services.EmailService
}

func NewReceiptHandler(receiptService *services.ReceiptService, exportService *services.ExportService, shareService *services.ShareService, emailService *services.EmailService) *ReceiptHandler {
	return &ReceiptHandler{
		receiptService: receiptService,
		exportService:  exportService,
		shareService:   shareService,
		emailService:   emailService,
	}
}

// @Summary List Receipts
// @Description Paginated receipt history with search and filters
// @Tags Receipts
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search_term query string false "Search by number, payer or concept"
// @Param status query string false "issued or voided"
// @Param date_from query string false "YYYY-MM-DD"
// @Param date_to query string false "YYYY-MM-DD"
// @Param sort query string false "Sort field and direction, e.g. date-desc"
// @Param created_by query int false "Only receipts issued by this user"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /receipts [get]
func (h *ReceiptHandler) Index(c *gin.Context) {
	query := receiptQueryFromRequest(c)

	receipts, pagination, err := h.receiptService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"receipts":   receipts,
		"pagination": pagination,
	})
}

// @Summary Create Receipt
// @Description Issues a new receipt; the amount in words is derived on the server
// @Tags Receipts
// @Accept json
// @Produce json
// @Param receipt body services.ReceiptInput true "Receipt data"
// @Success 201 {object} models.Receipt
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]interface{}
// @Security BearerAuth
// @Router /receipts [post]
func (h *ReceiptHandler) Create(c *gin.Context) {
	var input services.ReceiptInput
	if err := BindNestedOrFlat(c, "receipt", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos del recibo inválidos"})
		return
	}

	receipt, err := h.receiptService.Create(c.Request.Context(), middleware.GetUserID(c), input, clientInfo(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, receipt)
}

// @Summary Get Receipt
// @Tags Receipts
// @Produce json
// @Param receipt_id path string true "Receipt ID or public UUID"
// @Success 200 {object} models.Receipt
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /receipts/{receipt_id} [get]
func (h *ReceiptHandler) Show(c *gin.Context) {
	receipt, err := h.receiptService.Get(c.Request.Context(), c.Param("receipt_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, receipt)
}

// @Summary Update Receipt
// @Description Edits an issued receipt; voided receipts cannot be edited
// @Tags Receipts
// @Accept json
// @Produce json
// @Param receipt_id path string true "Receipt ID or public UUID"
// @Param receipt body services.ReceiptInput true "Receipt data"
// @Success 200 {object} models.Receipt
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]interface{}
// @Security BearerAuth
// @Router /receipts/{receipt_id} [put]
func (h *ReceiptHandler) Update(c *gin.Context) {
	var input services.ReceiptInput
	if err := BindNestedOrFlat(c, "receipt", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos del recibo inválidos"})
		return
	}

	receipt, err := h.receiptService.Update(c.Request.Context(), middleware.GetUserID(c), c.Param("receipt_id"), input, clientInfo(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, receipt)
}

type VoidRequest struct {
	Reason string `json:"reason"`
}

// @Summary Void Receipt
// @Tags Receipts
// @Accept json
// @Produce json
// @Param receipt_id path string true "Receipt ID or public UUID"
// @Param request body VoidRequest true "Void reason"
// @Success 200 {object} models.Receipt
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]interface{}
// @Security BearerAuth
// @Router /receipts/{receipt_id}/void [post]
func (h *ReceiptHandler) Void(c *gin.Context) {
	var req VoidRequest
	if err := BindNestedOrFlat(c, "receipt", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Motivo de anulación inválido"})
		return
	}

	receipt, err := h.receiptService.Void(c.Request.Context(), middleware.GetUserID(c), c.Param("receipt_id"), req.Reason, clientInfo(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, receipt)
}

// @Summary Restore Receipt
// @Description Returns a voided receipt to issued
// @Tags Receipts
// @Produce json
// @Param receipt_id path string true "Receipt ID or public UUID"
// @Success 200 {object} models.Receipt
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /receipts/{receipt_id}/restore [post]
func (h *ReceiptHandler) Restore(c *gin.Context) {
	receipt, err := h.receiptService.Restore(c.Request.Context(), middleware.GetUserID(c), c.Param("receipt_id"), clientInfo(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, receipt)
}

// @Summary Receipt PDF
// @Tags Receipts
// @Produce application/pdf
// @Param receipt_id path string true "Receipt ID or public UUID"
// @Param download query bool false "Send as attachment"
// @Success 200 {file} file
// @Security BearerAuth
// @Router /receipts/{receipt_id}/pdf [get]
func (h *ReceiptHandler) PDF(c *gin.Context) {
	receipt, err := h.receiptService.Get(c.Request.Context(), c.Param("receipt_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	data, filename, err := h.exportService.ReceiptPDF(c.Request.Context(), receipt)
	if err != nil {
		respondError(c, err)
		return
	}

	disposition := "inline"
	if c.Query("download") == "true" {
		disposition = "attachment"
	}
	c.Header("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

// @Summary Printable Receipt
// @Description HTML page of the receipt that opens the print dialog on load
// @Tags Receipts
// @Produce html
// @Param receipt_id path string true "Receipt ID or public UUID"
// @Success 200 {string} string
// @Security BearerAuth
// @Router /receipts/{receipt_id}/print [get]
func (h *ReceiptHandler) Print(c *gin.Context) {
	receipt, err := h.receiptService.Get(c.Request.Context(), c.Param("receipt_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	page, err := h.exportService.ReceiptHTML(c.Request.Context(), receipt, c.DefaultQuery("autoprint", "true") != "false")
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

// @Summary WhatsApp share link
// @Tags Receipts
// @Produce json
// @Param receipt_id path string true "Receipt ID or public UUID"
// @Param phone query string false "Recipient phone; 8-digit numbers get the 502 prefix"
// @Success 200 {object} services.ShareLink
// @Security BearerAuth
// @Router /receipts/{receipt_id}/whatsapp [get]
func (h *ReceiptHandler) WhatsApp(c *gin.Context) {
	receipt, err := h.receiptService.Get(c.Request.Context(), c.Param("receipt_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	link, err := h.shareService.WhatsAppLink(receipt, c.Query("phone"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, link)
}

// @Summary Email Receipt
// @Description Queues an email with the receipt PDF attached
// @Tags Receipts
// @Accept json
// @Produce json
// @Param receipt_id path string true "Receipt ID or public UUID"
// @Param request body services.EmailRequest true "Recipient"
// @Success 202 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Security BearerAuth
// @Router /receipts/{receipt_id}/email [post]
func (h *ReceiptHandler) Email(c *gin.Context) {
	var req services.EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Correo del destinatario requerido"})
		return
	}

	receipt, err := h.receiptService.Get(c.Request.Context(), c.Param("receipt_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.emailService.QueueReceipt(receipt, req, middleware.GetUserID(c), clientInfo(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"message": "El recibo se enviará a " + req.To})
}

// @Summary Export Receipts
// @Description Exports every receipt matching the filters as CSV, XLSX or PDF
// @Tags Receipts
// @Produce octet-stream
// @Param format query string false "csv, xlsx or pdf" default(csv)
// @Param search_term query string false "Search by number, payer or concept"
// @Param status query string false "issued or voided"
// @Param date_from query string false "YYYY-MM-DD"
// @Param date_to query string false "YYYY-MM-DD"
// @Success 200 {file} file
// @Security BearerAuth
// @Router /receipts/export [get]
func (h *ReceiptHandler) Export(c *gin.Context) {
	query := receiptQueryFromRequest(c)
	query.PerPage = 0

	receipts, _, err := h.receiptService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	var (
		data        []byte
		filename    string
		contentType string
	)
	switch strings.ToLower(c.DefaultQuery("format", "csv")) {
	case "csv":
		data, filename, err = h.exportService.ListCSV(c.Request.Context(), receipts)
		contentType = "text/csv; charset=utf-8"
	case "xlsx":
		data, filename, err = h.exportService.ListXLSX(c.Request.Context(), receipts)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case "pdf":
		data, filename, err = h.exportService.ListPDF(c.Request.Context(), receipts)
		contentType = "application/pdf"
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Formato no soportado"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}

// receiptQueryFromRequest reads paging, search and filters from the query string
func receiptQueryFromRequest(c *gin.Context) *repository.ReceiptQuery {
	list := repository.NewListQuery()
	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		list.Page = page
	}
	if perPage, err := strconv.Atoi(c.Query("per_page")); err == nil && perPage > 0 {
		list.PerPage = perPage
	}
	list.Search = strings.TrimSpace(c.Query("search_term"))
	if sort := c.Query("sort"); sort != "" {
		parts := strings.SplitN(sort, "-", 2)
		list.SortBy = parts[0]
		if len(parts) == 2 {
			list.SortDir = parts[1]
		}
	}

	if createdBy, err := strconv.ParseUint(c.Query("created_by"), 10, 32); err == nil {
		list.Filters["created_by"] = strconv.FormatUint(createdBy, 10)
	}

	return &repository.ReceiptQuery{
		ListQuery: list,
		Status:    c.Query("status"),
		DateFrom:  c.Query("date_from"),
		DateTo:    c.Query("date_to"),
	}
}
