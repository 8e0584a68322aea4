package grading

import (
	"cardpulse/internal/grading"
	"cardpulse/pkg/errors"
	"cardpulse/pkg/errors/ecode"
	"cardpulse/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

type estimateRequest struct {
	ConditionNotes string `json:"condition_notes" binding:"required"`
}

type costRequest struct {
	CardValue      float64 `json:"card_value" binding:"required"`
	EstimatedGrade float64 `json:"estimated_grade" binding:"required"`
}

// GradeEstimate POST /grading/estimate 从品相描述估算评级
func (h *Handler) GradeEstimate() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req estimateRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.JSON(ctx, errors.Wrap(ecode.InvalidParam, err), nil)
			return
		}
		response.JSON(ctx, nil, gin.H{
			"estimate":   grading.EstimateGrade(req.ConditionNotes),
			"assessment": grading.AssessCondition(req.ConditionNotes),
		})
	}
}

// GradeCostEstimate POST /grading/cost-estimate 送评费用与预期收益
func (h *Handler) GradeCostEstimate() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req costRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.JSON(ctx, errors.Wrap(ecode.InvalidParam, err), nil)
			return
		}
		if req.EstimatedGrade < 1 || req.EstimatedGrade > 10 {
			response.JSON(ctx, errors.NewWithMsg(ecode.InvalidParam, "estimated_grade must be between 1 and 10"), nil)
			return
		}
		response.JSON(ctx, nil, grading.EstimateCost(req.CardValue, req.EstimatedGrade))
	}
}
