package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/railscamp/registration-api/internal/api/handler/v1/request"
	"github.com/railscamp/registration-api/internal/api/handler/v1/response"
	"github.com/railscamp/registration-api/internal/domain"
)

type ScholarshipService interface {
	Apply(ctx context.Context, entrant domain.ScholarshipEntrant) (domain.ScholarshipEntrant, error)
	List(ctx context.Context) ([]domain.ScholarshipEntrant, error)
}

type ScholarshipHandler struct {
	svc ScholarshipService
}

func NewScholarshipHandler(svc ScholarshipService) *ScholarshipHandler {
	return &ScholarshipHandler{
		svc: svc,
	}
}

// HandleCreateScholarship godoc
// @Summary      Submit a scholarship application
// @Tags         scholarship
// @Produce      json
// @Param        request body request.ScholarshipRequest true "request body"
// @Success      201 {object} domain.ScholarshipEntrant
// @Failure      400 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /scholarships [post]
func (h *ScholarshipHandler) HandleCreateScholarship(ctx *gin.Context) {
	var req request.ScholarshipRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	// The legacy form never posted the applicant's address; it always came
	// from the request.
	created, err := h.svc.Apply(ctx.Request.Context(), domain.ScholarshipEntrant{
		Name:              req.Name,
		Email:             req.Email,
		DietaryReqs:       req.DietaryReqs,
		WantsBus:          *req.WantsBus,
		ScholarshipPitch:  req.ScholarshipPitch,
		ScholarshipGithub: req.ScholarshipGithub,
		IPAddress:         ctx.ClientIP(),
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateScholarship -> h.svc.Apply -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleListScholarships godoc
// @Summary      List scholarship applications
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200 {array} domain.ScholarshipEntrant
// @Failure      500 {object} response.Err
// @Router       /admin/scholarships [get]
func (h *ScholarshipHandler) HandleListScholarships(ctx *gin.Context) {
	entrants, err := h.svc.List(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListScholarships -> h.svc.List -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, entrants)
}
