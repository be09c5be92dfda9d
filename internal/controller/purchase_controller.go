package controller

import (
	"errors"
	"io"
	"net/http"

	"testhub_backend/internal/service"
	"testhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PurchaseController struct {
	PaymentService *service.PaymentService
	AccessService  *service.AccessService
}

func NewPurchaseController(paymentService *service.PaymentService, accessService *service.AccessService) *PurchaseController {
	return &PurchaseController{
		PaymentService: paymentService,
		AccessService:  accessService,
	}
}

// swagger:model CreateOrderRequest
type CreateOrderRequest struct {
	BuyerName  string `json:"buyerName"`
	BuyerEmail string `json:"buyerEmail" binding:"omitempty,email"`
	BuyerPhone string `json:"buyerPhone"`
}

// CreateOrder godoc
// @Summary Open a payment order for a paid test
// @Description Creates a provider order and a pending purchase; callers who already hold access are told so without being charged
// @Tags purchases
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   testId path int true "test id"
// @Param   body body CreateOrderRequest false "buyer details for the receipt"
// @Success 201 {object} util.Response{data=service.CheckoutOrder} "order opened"
// @Failure 400 {object} util.Response "test is free"
// @Failure 404 {object} util.Response "test not found"
// @Failure 502 {object} util.Response "provider failure"
// @Router /api/purchases/create-order/{testId} [post]
func (c *PurchaseController) CreateOrder(ctx *gin.Context) {
	testID, ok := parseIDParam(ctx, "testId")
	if !ok {
		return
	}

	// Buyer details are optional, so an empty body is fine.
	var req CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := util.GetUserFromContext(ctx)
	order, err := c.PaymentService.CreateOrder(ctx.Request.Context(), user.UserID, user.HasAdminRights(), testID, service.BuyerInfo{
		Name:  req.BuyerName,
		Email: req.BuyerEmail,
		Phone: req.BuyerPhone,
	})
	if err != nil {
		var gw *util.GatewayError
		switch {
		case errors.Is(err, util.ErrTestNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrTestNotPaid):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrAlreadyGranted):
			util.Success(ctx, gin.H{"alreadyGranted": true, "message": err.Error()})
		case errors.As(err, &gw):
			util.Error(ctx, http.StatusBadGateway, gw.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, order)
}

// swagger:model VerifyPaymentRequest
type VerifyPaymentRequest struct {
	OrderID   string `json:"razorpayOrderId" binding:"required"`
	PaymentID string `json:"razorpayPaymentId" binding:"required"`
	Signature string `json:"razorpaySignature" binding:"required"`
}

// VerifyPayment godoc
// @Summary Verify a completed payment
// @Description Recomputes the provider signature; only an exact match flips the purchase to paid
// @Tags purchases
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   testId path int true "test id"
// @Param   body body VerifyPaymentRequest true "provider callback fields"
// @Success 200 {object} util.Response{data=model.Purchase} "purchase confirmed"
// @Failure 400 {object} util.Response "signature mismatch"
// @Failure 404 {object} util.Response "no pending purchase for this order"
// @Router /api/purchases/verify/{testId} [post]
func (c *PurchaseController) VerifyPayment(ctx *gin.Context) {
	testID, ok := parseIDParam(ctx, "testId")
	if !ok {
		return
	}

	var req VerifyPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := util.GetUserFromContext(ctx)
	purchase, err := c.PaymentService.VerifyPayment(ctx.Request.Context(),
		user.UserID, testID, req.OrderID, req.PaymentID, req.Signature)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSignatureInvalid):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrPurchaseMissing):
			util.NotFound(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, purchase)
}

// ListPurchases godoc
// @Summary List the caller's purchases
// @Tags purchases
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Purchase} "purchases"
// @Router /api/purchases [get]
func (c *PurchaseController) ListPurchases(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	purchases, err := c.PaymentService.ListPurchases(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, purchases)
}

// CheckPurchase godoc
// @Summary Check access to a single test
// @Tags purchases
// @Produce  json
// @Security ApiKeyAuth
// @Param   testId path int true "test id"
// @Success 200 {object} util.Response{data=object} "access flag"
// @Failure 404 {object} util.Response "test not found"
// @Router /api/purchases/check/{testId} [get]
func (c *PurchaseController) CheckPurchase(ctx *gin.Context) {
	testID, ok := parseIDParam(ctx, "testId")
	if !ok {
		return
	}

	user := util.GetUserFromContext(ctx)
	hasAccess, err := c.AccessService.HasAccess(user.UserID, user.HasAdminRights(), testID)
	if err != nil {
		if errors.Is(err, util.ErrTestNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"hasAccess": hasAccess})
}
