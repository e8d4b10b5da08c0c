package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	invoicedomain "github.com/enotehq/enote/internal/invoice/domain"
)

// PublicInvoicePage serves the shareable HTML rendition of an invoice.
func (s *Server) PublicInvoicePage(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		c.String(http.StatusNotFound, "not found")
		return
	}

	invoice, err := s.invoiceSvc.GetPublic(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, invoicedomain.ErrNotFound) {
			c.String(http.StatusNotFound, "not found")
			return
		}
		AbortWithError(c, err)
		return
	}

	html, err := s.invoiceRenderer.RenderHTML(invoice)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}
