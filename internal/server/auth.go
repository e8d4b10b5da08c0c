package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/enotehq/enote/internal/actorcontext"
	authdomain "github.com/enotehq/enote/internal/auth/domain"
	ownerdomain "github.com/enotehq/enote/internal/owner/domain"
	subscriptiondomain "github.com/enotehq/enote/internal/subscription/domain"
)

func (s *Server) Register(c *gin.Context) {
	var req ownerdomain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	owner, err := s.ownerSvc.Register(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": owner})
}

type loginRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (s *Server) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.authSvc.Login(c.Request.Context(), authdomain.LoginRequest{
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": result.AccessToken,
		"token_type":   result.TokenType,
		"expires_at":   result.ExpiresAt,
	})
}

func (s *Server) Me(c *gin.Context) {
	actor, err := actorcontext.Require(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	switch {
	case actor.IsOwner():
		data := gin.H{
			"role":  actor.Role,
			"owner": actor.Owner,
		}
		sub, err := s.subscriptionSvc.GetByOwner(c.Request.Context(), actor.Owner.ID)
		if err == nil {
			data["subscription_end"] = sub.EndDate
		} else if !errors.Is(err, subscriptiondomain.ErrNotFound) {
			AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": data})
	default:
		data := gin.H{
			"role":     actor.Role,
			"employee": actor.Employee,
		}
		owner, err := s.ownerSvc.GetByID(c.Request.Context(), actor.Employee.OwnerID)
		if err == nil {
			data["company"] = owner.Company
		} else if !errors.Is(err, ownerdomain.ErrNotFound) {
			AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": data})
	}
}

func (s *Server) UpdateMe(c *gin.Context) {
	actor, err := actorcontext.RequireOwner(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req ownerdomain.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	owner, err := s.ownerSvc.UpdateProfile(c.Request.Context(), actor.Owner.ID, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": owner})
}

func (s *Server) MySubscription(c *gin.Context) {
	actor, err := actorcontext.Require(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	sub, err := s.subscriptionSvc.GetByOwner(c.Request.Context(), actor.OwnerID())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": sub})
}
