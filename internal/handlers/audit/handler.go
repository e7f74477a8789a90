package audit

import (
	"net/http"

	"roomdesk/infras/otel"
	"roomdesk/internal/domains/audit/model"
	"roomdesk/internal/domains/audit/service"
	"roomdesk/shared/constant"
	gDto "roomdesk/shared/dto"
	"roomdesk/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Audit
	otel    otel.Otel
}

func New(service service.Audit, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/audit", func(r chi.Router) {
		r.Get("/", handler.GetAuditLogs)
	})
}

// GetAuditLogs lists recorded decision audit entries.
// @Summary Get audit logs
// @Description Retrieve audit log entries with optional filtering and pagination.
// @Tags Audit
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param actor query string false "Filter by actor"
// @Param action query string false "Filter by action"
// @Success 200 {object} response.Data[dto.GetAuditLogsResponse] "Audit logs"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/audit [get]
// @Security BearerAuth
func (handler *Handler) GetAuditLogs(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAuditLogs")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filters := []any{}

	if actor := r.URL.Query().Get(model.FieldActor); actor != "" {
		filters = append(filters, gDto.Filter{
			Field:    model.FieldActor,
			Operator: gDto.FilterOperatorEq,
			Value:    actor,
			Table:    model.TableName,
		})
	}

	if action := r.URL.Query().Get(model.FieldAction); action != "" {
		filters = append(filters, gDto.Filter{
			Field:    model.FieldAction,
			Operator: gDto.FilterOperatorEq,
			Value:    action,
			Table:    model.TableName,
		})
	}

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  filters,
	}

	res, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get audit logs")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
