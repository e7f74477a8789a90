package approval

import (
	"net/http"

	"roomdesk/infras/otel"
	"roomdesk/internal/domains/approval/model/dto"
	"roomdesk/internal/domains/approval/service"
	"roomdesk/shared/constant"
	gDto "roomdesk/shared/dto"
	"roomdesk/shared/failure"
	"roomdesk/shared/validator"
	"roomdesk/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Approval
	otel    otel.Otel
}

func New(service service.Approval, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/requests", func(r chi.Router) {
		r.Get("/pending", handler.GetPendingRequests)
		r.Post("/{id}/approve", handler.ApproveRequest)
		r.Post("/{id}/reject", handler.RejectRequest)
	})
}

// GetPendingRequests lists booking requests awaiting a decision.
// @Summary Get pending booking requests
// @Description Retrieve pending booking requests, oldest first, with pagination.
// @Tags Approval
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[requestDto.GetPendingRequestsResponse] "Pending requests"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/requests/pending [get]
// @Security BearerAuth
func (handler *Handler) GetPendingRequests(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPendingRequests")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	res, err := handler.service.ListPending(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get pending requests")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// ApproveRequest approves a pending booking request.
// @Summary Approve a booking request
// @Description Approve a pending booking request. When the room is already
// booked for an overlapping window the request is rejected as conflicting.
// @Tags Approval
// @Accept json
// @Produce json
// @Param id path string true "Booking request ID"
// @Success 200 {object} response.Data[dto.DecisionResponse] "Request approved"
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Data[dto.DecisionResponse] "Request rejected due to conflict"
// @Failure 500 {object} response.Error
// @Router /v1/requests/{id}/approve [post]
// @Security BearerAuth
func (handler *Handler) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ApproveRequest")
	defer scope.End()

	id := chi.URLParam(r, "id")

	if err := validator.ValidateVar(id, "required,uuid"); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("invalid booking request id")

		response.WithError(w, failure.BadRequestFromString("invalid booking request id"))

		return
	}

	res, err := handler.service.Approve(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to approve booking request")

		response.WithError(w, err)

		return
	}

	code := http.StatusOK
	if res.Status == constant.DecisionRejectedConflict {
		code = http.StatusConflict
	}

	scope.AddEvent("Booking request decided: " + res.Status)

	response.WithJSON(w, code, res)
}

// RejectRequest rejects a pending booking request.
// @Summary Reject a booking request
// @Description Reject a pending booking request with an optional reason.
// @Tags Approval
// @Accept json
// @Produce json
// @Param id path string true "Booking request ID"
// @Param request body dto.RejectRequest false "Reject Request"
// @Success 200 {object} response.Data[dto.DecisionResponse] "Request rejected"
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/requests/{id}/reject [post]
// @Security BearerAuth
func (handler *Handler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RejectRequest")
	defer scope.End()

	id := chi.URLParam(r, "id")

	if err := validator.ValidateVar(id, "required,uuid"); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("invalid booking request id")

		response.WithError(w, failure.BadRequestFromString("invalid booking request id"))

		return
	}

	req := dto.RejectRequest{}

	// The reason body is optional.
	if r.ContentLength > 0 {
		if err := validator.Validate(r.Body, &req); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Msg("failed to validate request body")

			response.WithError(w, err)

			return
		}
	}

	res, err := handler.service.Reject(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reject booking request")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking request rejected")

	response.WithJSON(w, http.StatusOK, res)
}
