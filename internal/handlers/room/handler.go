package room

import (
	"net/http"

	"roomdesk/infras/otel"
	"roomdesk/internal/domains/room/service"
	"roomdesk/shared/constant"
	"roomdesk/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Room
	otel    otel.Otel
}

func New(service service.Room, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/rooms", func(routerGroup chi.Router) {
		routerGroup.Get("/status", handler.GetRoomStatuses)
	})
}

// GetRoomStatuses retrieves the live occupancy of every active room.
// @Summary Get room statuses
// @Description Retrieve all active rooms with their booking in progress, if any.
// @Tags Room
// @Accept json
// @Produce json
// @Success 200 {object} response.Data[dto.GetRoomStatusesResponse] "Room statuses"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/status [get]
// @Security BearerAuth
func (handler *Handler) GetRoomStatuses(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomStatuses")
	defer scope.End()

	res, err := handler.service.GetStatuses(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get room statuses")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
