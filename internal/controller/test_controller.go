package controller

import (
	"errors"
	"strconv"

	"testhub_backend/internal/service"
	"testhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TestController struct {
	TestService *service.TestService
}

func NewTestController(testService *service.TestService) *TestController {
	return &TestController{TestService: testService}
}

func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// ListTests godoc
// @Summary List all tests
// @Tags tests
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Test} "tests"
// @Router /api/tests [get]
func (c *TestController) ListTests(ctx *gin.Context) {
	tests, err := c.TestService.ListTests()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, tests)
}

// ListByCategory godoc
// @Summary List tests in a category
// @Tags tests
// @Produce  json
// @Security ApiKeyAuth
// @Param   key path string true "CA, INTER or FINAL"
// @Success 200 {object} util.Response{data=[]model.Test} "tests"
// @Failure 400 {object} util.Response "unknown category"
// @Router /api/tests/category/{key} [get]
func (c *TestController) ListByCategory(ctx *gin.Context) {
	tests, err := c.TestService.ListTestsByCategory(ctx.Param("key"))
	if err != nil {
		var ve *service.ValidationError
		if errors.As(err, &ve) {
			util.BadRequest(ctx, ve.Message)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, tests)
}

// GetTest godoc
// @Summary Fetch a single test with its questions
// @Tags tests
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "test id"
// @Success 200 {object} util.Response{data=model.Test} "test"
// @Failure 404 {object} util.Response "not found"
// @Router /api/tests/{id} [get]
func (c *TestController) GetTest(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	test, err := c.TestService.GetTest(id)
	if err != nil {
		if errors.Is(err, util.ErrTestNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, test)
}

// CreateTest godoc
// @Summary Create a test
// @Tags tests
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.TestInput true "test definition"
// @Success 201 {object} util.Response{data=model.Test} "created"
// @Failure 400 {object} util.Response "validation failure"
// @Failure 403 {object} util.Response "admin only"
// @Router /api/tests [post]
func (c *TestController) CreateTest(ctx *gin.Context) {
	var input service.TestInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := util.GetUserFromContext(ctx)
	test, err := c.TestService.CreateTest(&input, user.UserID)
	if err != nil {
		var ve *service.ValidationError
		if errors.As(err, &ve) {
			util.BadRequest(ctx, ve.Message)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, test)
}

// UpdateTest godoc
// @Summary Update a test
// @Description Replaces the question list when questions are provided
// @Tags tests
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "test id"
// @Param   body body service.TestInput true "test definition"
// @Success 200 {object} util.Response{data=model.Test} "updated"
// @Failure 400 {object} util.Response "validation failure"
// @Failure 404 {object} util.Response "not found"
// @Router /api/tests/{id} [put]
func (c *TestController) UpdateTest(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var input service.TestInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	test, err := c.TestService.UpdateTest(id, &input)
	if err != nil {
		var ve *service.ValidationError
		switch {
		case errors.As(err, &ve):
			util.BadRequest(ctx, ve.Message)
		case errors.Is(err, util.ErrTestNotFound):
			util.NotFound(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, test)
}

// DeleteTest godoc
// @Summary Delete a test and its questions
// @Tags tests
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "test id"
// @Success 200 {object} util.Response "deleted"
// @Failure 404 {object} util.Response "not found"
// @Router /api/tests/{id} [delete]
func (c *TestController) DeleteTest(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.TestService.DeleteTest(id); err != nil {
		if errors.Is(err, util.ErrTestNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "test deleted"})
}
