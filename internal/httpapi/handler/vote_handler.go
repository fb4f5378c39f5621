package handler

import (
	"errors"
	"net/http"
	"strconv"

	"civiscore/internal/httpapi/dto"
	"civiscore/internal/httpapi/middleware"
	"civiscore/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct {
	voteService service.VoteService
}

func NewVoteHandler(voteService service.VoteService) *VoteHandler {
	return &VoteHandler{voteService: voteService}
}

// RegisterRoutes registers vote routes. Counts and listings are public;
// casting and removing votes require an authenticated user.
func (h *VoteHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/evaluations/:id/votes", h.List)
	public.GET("/evaluations/:id/votes/counts", h.Counts)

	protected.POST("/votes", h.Cast)
	protected.GET("/evaluations/:id/votes/me", h.MyVote)
	protected.DELETE("/evaluations/:id/votes", h.Remove)
}

// Cast records or overwrites a helpful/unhelpful vote
// POST /api/votes
func (h *VoteHandler) Cast(c *gin.Context) {
	var req dto.CastVoteDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	vote, created, err := h.voteService.Cast(middleware.UserID(c), req)
	if err != nil {
		if errors.Is(err, service.ErrEvaluationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "evaluation not found"})
			return
		}
		if errors.Is(err, service.ErrOwnVote) {
			c.JSON(http.StatusForbidden, gin.H{"error": "cannot vote on your own evaluation"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cast vote"})
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, vote)
}

// Remove deletes the caller's vote on an evaluation
// DELETE /api/evaluations/:id/votes
func (h *VoteHandler) Remove(c *gin.Context) {
	err := h.voteService.Remove(c.Param("id"), middleware.UserID(c))
	if err != nil {
		if errors.Is(err, service.ErrVoteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "vote not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove vote"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "vote removed"})
}

// Counts returns helpful/unhelpful tallies for an evaluation
// GET /api/evaluations/:id/votes/counts
func (h *VoteHandler) Counts(c *gin.Context) {
	counts, err := h.voteService.Counts(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrEvaluationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "evaluation not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count votes"})
		return
	}

	c.JSON(http.StatusOK, counts)
}

// MyVote returns the caller's vote on an evaluation
// GET /api/evaluations/:id/votes/me
func (h *VoteHandler) MyVote(c *gin.Context) {
	vote, err := h.voteService.MyVote(c.Param("id"), middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "vote not found"})
		return
	}

	c.JSON(http.StatusOK, vote)
}

// List retrieves votes for an evaluation with an optional helpful filter
// GET /api/evaluations/:id/votes?is_helpful=true&page=1&limit=20
func (h *VoteHandler) List(c *gin.Context) {
	var isHelpful *bool
	if raw := c.Query("is_helpful"); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid is_helpful value"})
			return
		}
		isHelpful = &value
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	votes, err := h.voteService.ListByEvaluation(c.Param("id"), isHelpful, page, limit)
	if err != nil {
		if errors.Is(err, service.ErrEvaluationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "evaluation not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list votes"})
		return
	}

	c.JSON(http.StatusOK, votes)
}
