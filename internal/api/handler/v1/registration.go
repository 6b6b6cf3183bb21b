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

type RegistrationService interface {
	Register(ctx context.Context, entrant domain.Entrant) (domain.Entrant, error)
	TentsAvailable(ctx context.Context) (bool, error)
	FindByEmail(ctx context.Context, email string) (domain.Entrant, error)
	UpdateExtras(ctx context.Context, email, beddingSelection, tshirtSize string) (domain.Entrant, error)
}

type RegistrationHandler struct {
	svc RegistrationService
}

func NewRegistrationHandler(svc RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{
		svc: svc,
	}
}

// HandleGetRegistration godoc
// @Summary      Registration availability
// @Tags         registration
// @Produce      json
// @Success      200 {object} response.RegistrationOpenResponse
// @Failure      500 {object} response.Err
// @Router       /registration [get]
func (h *RegistrationHandler) HandleGetRegistration(ctx *gin.Context) {
	available, err := h.svc.TentsAvailable(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetRegistration -> h.svc.TentsAvailable -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.RegistrationOpenResponse{
		TentsAvailable: available,
	})
}

// HandleCreateRegistration godoc
// @Summary      Submit a registration
// @Tags         registration
// @Produce      json
// @Param        request body request.RegisterEntrantRequest true "request body"
// @Success      201 {object} domain.Entrant
// @Failure      400 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /registrations [post]
func (h *RegistrationHandler) HandleCreateRegistration(ctx *gin.Context) {
	var req request.RegisterEntrantRequest
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

	entrant := domain.Entrant{
		Name:         req.Name,
		Email:        req.Email,
		DietaryReqs:  req.DietaryReqs,
		WantsBus:     *req.WantsBus,
		CCName:       req.CCName,
		CCAddress:    req.CCAddress,
		CCCity:       req.CCCity,
		CCPostCode:   req.CCPostCode,
		CCState:      req.CCState,
		CCCountry:    req.CCCountry,
		CardToken:    req.CardToken,
		IPAddress:    ipAddress,
		TicketType:   req.TicketType,
		Notes:        req.Notes,
		WantsBedding: req.WantsBedding,
		TshirtSize:   req.TshirtSize,
	}
	if req.Tent != nil {
		entrant.Tent = *req.Tent
	}

	created, err := h.svc.Register(ctx.Request.Context(), entrant)
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateRegistration -> h.svc.Register -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleGetExtras godoc
// @Summary      Check whether an entrant still needs to pick extras
// @Tags         registration
// @Produce      json
// @Param        email query string true "entrant email"
// @Success      200 {object} map[string]bool
// @Failure      404 {object} response.Err
// @Router       /extras [get]
func (h *RegistrationHandler) HandleGetExtras(ctx *gin.Context) {
	email := ctx.Query("email")
	if email == "" {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("email is required")))

		return
	}

	entrant, err := h.svc.FindByEmail(ctx.Request.Context(), email)
	if err != nil {
		if errors.Is(err, service.ErrEntrantNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrEntrantNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleGetExtras -> h.svc.FindByEmail -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, gin.H{"needs_extras": entrant.NeedsExtras()})
}

// HandleUpdateExtras godoc
// @Summary      Record bedding and t-shirt choices
// @Tags         registration
// @Produce      json
// @Param        request body request.UpdateExtrasRequest true "request body"
// @Success      200 {object} domain.Entrant
// @Failure      400 {object} response.Err
// @Failure      404 {object} response.Err
// @Router       /extras [post]
func (h *RegistrationHandler) HandleUpdateExtras(ctx *gin.Context) {
	var req request.UpdateExtrasRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	entrant, err := h.svc.UpdateExtras(ctx.Request.Context(), req.Email, req.BeddingSelection, req.TshirtSize)
	if err != nil {
		if errors.Is(err, service.ErrEntrantNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrEntrantNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleUpdateExtras -> h.svc.UpdateExtras -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, entrant)
}
