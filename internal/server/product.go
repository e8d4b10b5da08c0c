package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/enotehq/enote/internal/actorcontext"
	productdomain "github.com/enotehq/enote/internal/product/domain"
)

func (s *Server) ListProducts(c *gin.Context) {
	actor, err := actorcontext.Require(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	q := strings.TrimSpace(c.Query("q"))
	products, err := s.productSvc.List(c.Request.Context(), actor.OwnerID(), q)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": products})
}

func (s *Server) CreateProduct(c *gin.Context) {
	actor, err := actorcontext.Require(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req productdomain.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	product, err := s.productSvc.Create(c.Request.Context(), actor.OwnerID(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": product})
}

func (s *Server) GetProduct(c *gin.Context) {
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

	product, err := s.productSvc.GetByID(c.Request.Context(), actor.OwnerID(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": product})
}

func (s *Server) UpdateProduct(c *gin.Context) {
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

	var req productdomain.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	product, err := s.productSvc.Update(c.Request.Context(), actor.OwnerID(), id, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": product})
}

func (s *Server) DeleteProduct(c *gin.Context) {
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

	if err := s.productSvc.Delete(c.Request.Context(), actor.OwnerID(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}
