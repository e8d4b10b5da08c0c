package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/enotehq/enote/internal/actorcontext"
	invoicedomain "github.com/enotehq/enote/internal/invoice/domain"
)

func (s *Server) CreateInvoice(c *gin.Context) {
	var req invoicedomain.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	invoice, err := s.invoiceSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": invoice})
}

func (s *Server) ListInvoices(c *gin.Context) {
	actor, err := actorcontext.Require(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var query struct {
		ClientID    string `form:"client_id"`
		SellerID    string `form:"seller_employee_id"`
		CreatedFrom string `form:"created_from"`
		CreatedTo   string `form:"created_to"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var filter invoicedomain.ListInvoicesFilter
	if v := strings.TrimSpace(query.ClientID); v != "" {
		id, err := snowflake.ParseString(v)
		if err != nil {
			AbortWithError(c, newValidationError("client_id", "invalid_client_id", "invalid client_id"))
			return
		}
		filter.ClientID = &id
	}
	if v := strings.TrimSpace(query.SellerID); v != "" {
		id, err := snowflake.ParseString(v)
		if err != nil {
			AbortWithError(c, newValidationError("seller_employee_id", "invalid_seller_employee_id", "invalid seller_employee_id"))
			return
		}
		filter.SellerEmployeeID = &id
	}
	if v := strings.TrimSpace(query.CreatedFrom); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			AbortWithError(c, newValidationError("created_from", "invalid_created_from", "invalid created_from"))
			return
		}
		filter.CreatedFrom = &t
	}
	if v := strings.TrimSpace(query.CreatedTo); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			AbortWithError(c, newValidationError("created_to", "invalid_created_to", "invalid created_to"))
			return
		}
		filter.CreatedTo = &t
	}

	// Employees see only their own sales.
	if employeeID := actor.SellerEmployeeID(); employeeID != nil {
		filter.SellerEmployeeID = employeeID
	}

	invoices, err := s.invoiceSvc.List(c.Request.Context(), invoicedomain.ListInvoicesRequest{
		OwnerID: actor.OwnerID(),
		Filter:  filter,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": invoices})
}

func (s *Server) GetInvoice(c *gin.Context) {
	actor, err := actorcontext.Require(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	id, err := parseIDParam(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	invoice, err := s.invoiceSvc.GetByID(c.Request.Context(), actor.OwnerID(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": invoice})
}

type recordPaymentRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

func (s *Server) RecordInvoicePayment(c *gin.Context) {
	actor, err := actorcontext.Require(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	id, err := parseIDParam(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req recordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	invoice, err := s.invoiceSvc.RecordPayment(c.Request.Context(), actor.OwnerID(), id, req.Amount)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": invoice})
}

func (s *Server) SellerStats(c *gin.Context) {
	actor, err := actorcontext.RequireOwner(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var from, to *time.Time
	if v := strings.TrimSpace(c.Query("created_from")); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			AbortWithError(c, newValidationError("created_from", "invalid_created_from", "invalid created_from"))
			return
		}
		from = &t
	}
	if v := strings.TrimSpace(c.Query("created_to")); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			AbortWithError(c, newValidationError("created_to", "invalid_created_to", "invalid created_to"))
			return
		}
		to = &t
	}

	stats, err := s.invoiceSvc.SellerStats(c.Request.Context(), actor.Owner.ID, from, to)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": stats})
}
