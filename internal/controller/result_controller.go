package controller

import (
	"errors"

	"testhub_backend/internal/service"
	"testhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ResultController struct {
	ResultService *service.ResultService
	AccessService *service.AccessService
}

func NewResultController(resultService *service.ResultService, accessService *service.AccessService) *ResultController {
	return &ResultController{
		ResultService: resultService,
		AccessService: accessService,
	}
}

// swagger:model SubmitResultRequest
type SubmitResultRequest struct {
	TestID  uint                      `json:"testId" binding:"required"`
	Answers []service.SubmittedAnswer `json:"answers" binding:"required"`
}

// SubmitResult godoc
// @Summary Submit answers for scoring
// @Description Scores the submission against the stored answer key and records the attempt
// @Tags results
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body SubmitResultRequest true "test id and answers"
// @Success 201 {object} util.Response{data=model.Result} "scored result"
// @Failure 403 {object} util.Response "purchase required"
// @Failure 404 {object} util.Response "test not found"
// @Router /api/results [post]
func (c *ResultController) SubmitResult(ctx *gin.Context) {
	var req SubmitResultRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := util.GetUserFromContext(ctx)

	// Taking a paid test is gated the same way as viewing its PDF.
	if _, err := c.AccessService.CheckAccess(user.UserID, user.HasAdminRights(), req.TestID); err != nil {
		switch {
		case errors.Is(err, util.ErrTestNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrPurchaseRequired):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	result, err := c.ResultService.SubmitResult(user.UserID, req.TestID, req.Answers)
	if err != nil {
		if errors.Is(err, util.ErrTestNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, result)
}

// ListResults godoc
// @Summary List the caller's scored attempts
// @Tags results
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Result} "results"
// @Router /api/results [get]
func (c *ResultController) ListResults(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	results, err := c.ResultService.ListResults(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, results)
}
