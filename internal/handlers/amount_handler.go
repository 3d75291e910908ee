package handlers

import (
	"net/http"

	"github.com/Henry-Tercero-MH/Generador-Facturas/internal/services"
	"github.com/gin-gonic/gin"
)

type AmountHandler struct {
	amountService *services.AmountService
}

func NewAmountHandler(amountService *services.AmountService) *AmountHandler {
	return &AmountHandler{amountService: amountService}
}

// @Summary Amount in words
// @Description Live preview of the Spanish words for an amount as typed in the receipt form.
// @Description Unparseable input is treated as zero.
// @Tags Amounts
// @Produce json
// @Param amount query string true "Amount, e.g. 21.50 or Q 1,250.00"
// @Success 200 {object} services.AmountWords
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /amount_in_words [get]
func (h *AmountHandler) Show(c *gin.Context) {
	words, err := h.amountService.AmountInWords(c.Query("amount"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, words)
}
