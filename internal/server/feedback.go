package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type submitFeedbackRequest struct {
	Message string `json:"message" binding:"required"`
}

func (s *Server) SubmitFeedback(c *gin.Context) {
	var req submitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	feedback, err := s.feedbackSvc.Submit(c.Request.Context(), req.Message)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": feedback})
}
