package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/railscamp/registration-api/internal/api/handler/v1/request"
	"github.com/railscamp/registration-api/internal/api/handler/v1/response"
	"github.com/railscamp/registration-api/internal/domain"
	"github.com/railscamp/registration-api/internal/service"
)

type BeddingService interface {
	Purchase(ctx context.Context, payment domain.BeddingPayment) (domain.BeddingPayment, error)
}

type BeddingHandler struct {
	svc BeddingService
}

func NewBeddingHandler(svc BeddingService) *BeddingHandler {
	return &BeddingHandler{
		svc: svc,
	}
}

// HandleCreateBeddingPayment godoc
// @Summary      Buy the bedding pack
// @Tags         bedding
// @Produce      json
// @Param        request body request.BeddingPaymentRequest true "request body"
// @Success      201 {object} domain.BeddingPayment
// @Failure      400 {object} response.Err
// @Failure      402 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /bedding-payments [post]
func (h *BeddingHandler) HandleCreateBeddingPayment(ctx *gin.Context) {
	var req request.BeddingPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	ipAddress := req.IPAddress
	if ipAddress == "" {
		ipAddress = ctx.ClientIP()
	}

	created, err := h.svc.Purchase(ctx.Request.Context(), domain.BeddingPayment{
		Email:      req.Email,
		CCName:     req.CCName,
		CCAddress:  req.CCAddress,
		CCCity:     req.CCCity,
		CCPostCode: req.CCPostCode,
		CCState:    req.CCState,
		CCCountry:  req.CCCountry,
		CardToken:  req.CardToken,
		IPAddress:  ipAddress,
	})
	if err != nil {
		// The row is already saved; only the charge failed. The submitter
		// gets the generic billing message and can try again.
		if errors.Is(err, service.ErrChargeFailed) {
			response.RenderErr(ctx, response.ErrCardDeclined())

			return
		}

		err = fmt.Errorf("v1.HandleCreateBeddingPayment -> h.svc.Purchase -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, created)
}
