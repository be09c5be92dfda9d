package controller

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"testhub_backend/internal/config"
	"testhub_backend/internal/model"
	"testhub_backend/internal/service"
	"testhub_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/go-resty/resty/v2"
)

// PDFController streams gated test PDFs. Clients never see storage URLs;
// everything goes through this proxy after the access check.
type PDFController struct {
	TestService    *service.TestService
	AccessService  *service.AccessService
	StorageService *service.StorageService
	Cfg            *config.Config

	http *resty.Client
}

func NewPDFController(testService *service.TestService, accessService *service.AccessService, storageService *service.StorageService, cfg *config.Config) *PDFController {
	return &PDFController{
		TestService:    testService,
		AccessService:  accessService,
		StorageService: storageService,
		Cfg:            cfg,
		http:           resty.New().SetDoNotParseResponse(true),
	}
}

// ViewPDF godoc
// @Summary View a test's PDF inline
// @Description Accepts either a scoped access token in the query or an authenticated session, then streams the PDF through the storage provider
// @Tags pdf
// @Produce  application/pdf
// @Param   testId path int true "test id"
// @Param   token query string false "scoped access token from the confirmation mail"
// @Success 200 {file} binary "PDF"
// @Failure 401 {object} util.Response "no usable credential"
// @Failure 403 {object} util.Response "purchase required"
// @Failure 404 {object} util.Response "test not found"
// @Router /pdf/view/{testId} [get]
func (c *PDFController) ViewPDF(ctx *gin.Context) {
	testID, ok := parseIDParam(ctx, "testId")
	if !ok {
		return
	}

	// A mailed token grants exactly one test, regardless of session state.
	if tokenString := ctx.Query("token"); tokenString != "" {
		claims, err := util.ParsePDFAccessToken(tokenString, c.Cfg.JWT.Secret)
		if err != nil || claims.TestID != testID {
			util.Unauthorized(ctx)
			return
		}

		test, err := c.TestService.GetTest(testID)
		if err != nil {
			if errors.Is(err, util.ErrTestNotFound) {
				util.NotFound(ctx, err.Error())
				return
			}
			util.LogInternalError(ctx, err)
			return
		}

		c.stream(ctx, test)
		return
	}

	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	test, err := c.AccessService.CheckAccess(user.UserID, user.HasAdminRights(), testID)
	if err != nil {
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

	c.stream(ctx, test)
}

func (c *PDFController) stream(ctx *gin.Context, test *model.Test) {
	var body io.ReadCloser

	if test.PDFObjectKey != "" {
		reader, err := c.StorageService.Open(ctx.Request.Context(), test.PDFObjectKey)
		if err != nil {
			util.LogInternalError(ctx, err)
			return
		}
		body = reader
	} else {
		// Tests authored with an external PDF link are proxied so the
		// origin URL stays hidden.
		resp, err := c.http.R().SetContext(ctx.Request.Context()).Get(test.PDFURL)
		if err != nil {
			util.LogInternalError(ctx, err)
			return
		}
		if resp.StatusCode() != http.StatusOK {
			resp.RawBody().Close()
			util.LogInternalError(ctx, fmt.Errorf("pdf origin returned status %d", resp.StatusCode()))
			return
		}
		body = resp.RawBody()
	}
	defer body.Close()

	ctx.Header("Content-Type", "application/pdf")
	ctx.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", fmt.Sprintf("test-%d.pdf", test.ID)))
	ctx.Header("Cache-Control", "private, max-age=300")
	ctx.Status(http.StatusOK)

	if _, err := io.Copy(ctx.Writer, body); err != nil {
		// Too late for an error payload once streaming started.
		_ = ctx.Error(err)
	}
}
