package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/enotehq/enote/internal/actorcontext"
	employeedomain "github.com/enotehq/enote/internal/employee/domain"
)

func parseIDParam(c *gin.Context) (snowflake.ID, error) {
	raw := strings.TrimSpace(c.Param("id"))
	id, err := snowflake.ParseString(raw)
	if err != nil {
		return 0, newValidationError("id", "invalid_id", "invalid id")
	}
	return id, nil
}

func (s *Server) ListEmployees(c *gin.Context) {
	actor, err := actorcontext.RequireOwner(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	employees, err := s.employeeSvc.List(c.Request.Context(), actor.Owner.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": employees})
}

func (s *Server) CreateEmployee(c *gin.Context) {
	actor, err := actorcontext.RequireOwner(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req employeedomain.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	employee, err := s.employeeSvc.Create(c.Request.Context(), actor.Owner.ID, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": employee})
}

func (s *Server) GetEmployee(c *gin.Context) {
	actor, err := actorcontext.RequireOwner(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	id, err := parseIDParam(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	employee, err := s.employeeSvc.GetByID(c.Request.Context(), actor.Owner.ID, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": employee})
}

type updateEmployeePhoneRequest struct {
	Phone string `json:"phone" binding:"required"`
}

func (s *Server) UpdateEmployeePhone(c *gin.Context) {
	actor, err := actorcontext.RequireOwner(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	id, err := parseIDParam(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req updateEmployeePhoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	employee, err := s.employeeSvc.UpdatePhone(c.Request.Context(), actor.Owner.ID, id, req.Phone)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": employee})
}

type updateEmployeePasswordRequest struct {
	Password string `json:"password" binding:"required,min=6"`
}

func (s *Server) UpdateEmployeePassword(c *gin.Context) {
	actor, err := actorcontext.RequireOwner(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	id, err := parseIDParam(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req updateEmployeePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.employeeSvc.UpdatePassword(c.Request.Context(), actor.Owner.ID, id, req.Password); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"updated": true}})
}

func (s *Server) BlockEmployee(c *gin.Context) {
	s.setEmployeeBlocked(c, true)
}

func (s *Server) UnblockEmployee(c *gin.Context) {
	s.setEmployeeBlocked(c, false)
}

func (s *Server) setEmployeeBlocked(c *gin.Context, blocked bool) {
	actor, err := actorcontext.RequireOwner(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	id, err := parseIDParam(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	employee, err := s.employeeSvc.SetBlocked(c.Request.Context(), actor.Owner.ID, id, blocked)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": employee})
}

func (s *Server) DeleteEmployee(c *gin.Context) {
	actor, err := actorcontext.RequireOwner(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	id, err := parseIDParam(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.employeeSvc.Delete(c.Request.Context(), actor.Owner.ID, id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}
