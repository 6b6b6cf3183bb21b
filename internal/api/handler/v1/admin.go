package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/railscamp/registration-api/internal/api/handler/v1/request"
	"github.com/railscamp/registration-api/internal/api/handler/v1/response"
	"github.com/railscamp/registration-api/internal/domain"
	"github.com/railscamp/registration-api/internal/pin"
	"github.com/railscamp/registration-api/internal/service"
)

type AdminService interface {
	Login(email, password, userAgent string) (string, error)
}

type AdminRegistrationService interface {
	EligibleForSelection(ctx context.Context) ([]domain.Entrant, error)
	Unchosen(ctx context.Context) ([]domain.Entrant, error)
	Chosen(ctx context.Context) ([]domain.Entrant, error)
	TentCampers(ctx context.Context) ([]domain.Entrant, error)
	BunkCampers(ctx context.Context) ([]domain.Entrant, error)
	Uncharged(ctx context.Context) ([]domain.Entrant, error)
	Choose(ctx context.Context, id uint) error
	MarkNotified(ctx context.Context, id uint) error
	ChargeEntrant(ctx context.Context, id uint) (pin.Charge, error)
	CreateCompTicket(ctx context.Context, name, email, ticketType, notes string) (domain.Entrant, error)
}

type AdminHandler struct {
	svc    AdminService
	regSvc AdminRegistrationService
}

func NewAdminHandler(svc AdminService, regSvc AdminRegistrationService) *AdminHandler {
	return &AdminHandler{
		svc:    svc,
		regSvc: regSvc,
	}
}

// HandleLogin godoc
// @Summary      Organiser login
// @Tags         admin
// @Produce      json
// @Param        request body request.LoginRequest true "request body"
// @Success      200 {object} response.LoginResponse
// @Failure      401 {object} response.Err
// @Router       /admin/login [post]
func (h *AdminHandler) HandleLogin(ctx *gin.Context) {
	var req request.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	token, err := h.svc.Login(req.Email, req.Password, ctx.Request.UserAgent())
	if err != nil {
		if errors.Is(err, service.ErrWrongCredentials) {
			response.RenderErr(ctx, response.ErrWrongCredentials(service.ErrWrongCredentials))

			return
		}

		err = fmt.Errorf("v1.HandleLogin -> h.svc.Login -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.LoginResponse{Token: token})
}

// HandleListEntrants godoc
// @Summary      List entrants by selection filter
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        filter query string false "eligible | chosen | unchosen | uncharged | tent | bunk"
// @Success      200 {object} response.EntrantListResponse
// @Failure      400 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /admin/entrants [get]
func (h *AdminHandler) HandleListEntrants(ctx *gin.Context) {
	var (
		entrants []domain.Entrant
		err      error
	)

	reqCtx := ctx.Request.Context()

	switch filter := ctx.DefaultQuery("filter", "eligible"); filter {
	case "eligible":
		entrants, err = h.regSvc.EligibleForSelection(reqCtx)
	case "chosen":
		entrants, err = h.regSvc.Chosen(reqCtx)
	case "unchosen":
		entrants, err = h.regSvc.Unchosen(reqCtx)
	case "uncharged":
		entrants, err = h.regSvc.Uncharged(reqCtx)
	case "tent":
		entrants, err = h.regSvc.TentCampers(reqCtx)
	case "bunk":
		entrants, err = h.regSvc.BunkCampers(reqCtx)
	default:
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("unknown filter %q", filter)))

		return
	}

	if err != nil {
		err = fmt.Errorf("v1.HandleListEntrants -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.EntrantListResponse{
		Entrants: entrants,
		Count:    len(entrants),
	})
}

// HandleChooseEntrant godoc
// @Summary      Mark an entrant as chosen
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        entrantID path int true "entrant ID"
// @Success      204
// @Failure      404 {object} response.Err
// @Router       /admin/entrants/{entrantID}/choose [post]
func (h *AdminHandler) HandleChooseEntrant(ctx *gin.Context) {
	id, ok := h.entrantID(ctx)
	if !ok {
		return
	}

	if err := h.regSvc.Choose(ctx.Request.Context(), id); err != nil {
		h.renderEntrantErr(ctx, fmt.Errorf("v1.HandleChooseEntrant -> %w", err))

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleNotifyEntrant godoc
// @Summary      Record that a chosen entrant was notified
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        entrantID path int true "entrant ID"
// @Success      204
// @Failure      404 {object} response.Err
// @Router       /admin/entrants/{entrantID}/notify [post]
func (h *AdminHandler) HandleNotifyEntrant(ctx *gin.Context) {
	id, ok := h.entrantID(ctx)
	if !ok {
		return
	}

	if err := h.regSvc.MarkNotified(ctx.Request.Context(), id); err != nil {
		h.renderEntrantErr(ctx, fmt.Errorf("v1.HandleNotifyEntrant -> %w", err))

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleChargeEntrant godoc
// @Summary      Charge the ticket price to an entrant's card
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        entrantID path int true "entrant ID"
// @Success      200 {object} response.ChargeResponse
// @Failure      402 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      409 {object} response.Err
// @Router       /admin/entrants/{entrantID}/charge [post]
func (h *AdminHandler) HandleChargeEntrant(ctx *gin.Context) {
	id, ok := h.entrantID(ctx)
	if !ok {
		return
	}

	charge, err := h.regSvc.ChargeEntrant(ctx.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEntrantNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrEntrantNotFound))
		case errors.Is(err, service.ErrAlreadyCharged):
			response.RenderErr(ctx, response.ErrAlreadyCharged(service.ErrAlreadyCharged))
		case errors.Is(err, service.ErrChargeFailed):
			response.RenderErr(ctx, response.ErrCardDeclined())
		default:
			err = fmt.Errorf("v1.HandleChargeEntrant -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, response.ChargeResponse{
		ChargeToken: charge.Token,
		Amount:      charge.Amount,
		Currency:    charge.Currency,
	})
}

// HandleCreateCompTicket godoc
// @Summary      Register an entrant without a card (speakers, organisers)
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        request body request.CompTicketRequest true "request body"
// @Success      201 {object} domain.Entrant
// @Failure      400 {object} response.Err
// @Router       /admin/entrants [post]
func (h *AdminHandler) HandleCreateCompTicket(ctx *gin.Context) {
	var req request.CompTicketRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	created, err := h.regSvc.CreateCompTicket(ctx.Request.Context(), req.Name, req.Email, req.TicketType, req.Notes)
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateCompTicket -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, created)
}

func (h *AdminHandler) entrantID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("entrantID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid entrant ID -> %w", err)))

		return 0, false
	}

	return uint(id), true
}

func (h *AdminHandler) renderEntrantErr(ctx *gin.Context, err error) {
	if errors.Is(err, service.ErrEntrantNotFound) {
		response.RenderErr(ctx, response.ErrNotFound(service.ErrEntrantNotFound))

		return
	}

	response.RenderErr(ctx, response.ErrInternalServerError(err))
}
