package api

import (
	"errors"
	"time"

	"TriggerLab/internal/aggregate"
	models "TriggerLab/internal/domain/models"
	domrepo "TriggerLab/internal/domain/repository"
	"TriggerLab/internal/ranking"
	"TriggerLab/internal/signal"
	"TriggerLab/internal/usecase"
	xhttp "TriggerLab/pkg/http"
	xlogger "TriggerLab/pkg/logger"

	"github.com/labstack/echo/v4"
)

// TriggersEchoHandler serves the dashboard's trigger API.
type TriggersEchoHandler struct {
	logger  *xlogger.Logger
	sync    *usecase.TriggerSynchronizer
	metrics domrepo.Metrics
}

func NewTriggersEchoHandler(logger *xlogger.Logger, sync *usecase.TriggerSynchronizer, metrics domrepo.Metrics) *TriggersEchoHandler {
	return &TriggersEchoHandler{logger: logger, sync: sync, metrics: metrics}
}

func (h *TriggersEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/triggers", h.List)
	g.POST("/triggers", h.Save)
	g.PATCH("/triggers/:id", h.Update)
	g.DELETE("/triggers/:id", h.Delete)
	g.GET("/condition_types", h.ConditionTypes)
	g.POST("/summary", h.Summary)
}

type listResult struct {
	Triggers  []models.TriggerRecord `json:"triggers"`
	SortKey   string                 `json:"sort_key"`
	Direction string                 `json:"direction"`
}

// List loads the saved triggers (local cache on remote failure) and returns
// them sorted. Loading never fails, so this endpoint always answers 200.
func (h *TriggersEchoHandler) List(c echo.Context) error {
	start := time.Now()
	req := &models.ListTriggersRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	records := h.sync.Load(c.Request().Context())
	sorted := ranking.Sort(records, ranking.SortKey(req.SortKey), ranking.Direction(req.Direction))

	h.metrics.RecordLatency("api_list", time.Since(start).Seconds())
	return xhttp.SuccessResponse(c, listResult{
		Triggers:  sorted,
		SortKey:   req.SortKey,
		Direction: req.Direction,
	})
}

// Save persists a backtest result as a trigger: aggregate, score, classify,
// then create on the remote store.
func (h *TriggersEchoHandler) Save(c echo.Context) error {
	req := &models.SaveTriggerRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	rec, err := h.sync.SaveAnalysis(c.Request().Context(), req.Name, req.Criteria, req.Events, req.EnforceQuality)
	if err != nil {
		if errors.Is(err, usecase.ErrQualityRejected) {
			return xhttp.AppErrorResponse(c, xhttp.UnprocessableError(err.Error()))
		}
		h.logger.Error("save trigger failed", xlogger.String("name", req.Name), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.BadGatewayError(err.Error()))
	}
	return xhttp.CreatedResponse(c, rec)
}

// Update applies a partial update (rename and the like) by id.
func (h *TriggersEchoHandler) Update(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError("trigger id required"))
	}

	req := &models.UpdateTriggerRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	fields := req.Fields()
	if len(fields) == 0 {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError("no updatable fields provided"))
	}

	rec, err := h.sync.Update(c.Request().Context(), id, fields)
	if err != nil {
		h.logger.Error("update trigger failed", xlogger.String("id", id), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.BadGatewayError(err.Error()))
	}
	return xhttp.SuccessResponse(c, rec)
}

func (h *TriggersEchoHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError("trigger id required"))
	}

	if err := h.sync.Delete(c.Request().Context(), id); err != nil {
		h.logger.Error("delete trigger failed", xlogger.String("id", id), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.BadGatewayError(err.Error()))
	}
	return xhttp.NoContentResponse(c)
}

type conditionType struct {
	Type          string         `json:"type"`
	Signal        models.Signal  `json:"signal,omitempty"`
	DefaultParams map[string]any `json:"default_params,omitempty"`
}

// ConditionTypes returns the closed condition-type enumeration with per-type
// defaults, for the dashboard's analysis form.
func (h *TriggersEchoHandler) ConditionTypes(c echo.Context) error {
	out := make([]conditionType, 0, len(signal.ConditionTypes))
	for _, ct := range signal.ConditionTypes {
		out = append(out, conditionType{
			Type:          ct,
			Signal:        signal.Derive(ct),
			DefaultParams: signal.DefaultParams[ct],
		})
	}
	return xhttp.SuccessResponse(c, out)
}

type summaryResult struct {
	Summaries map[models.Horizon]models.OutcomeSummary `json:"summaries"`
	Curve     *models.ForwardCurve                     `json:"curve,omitempty"`
	Score     float64                                  `json:"score"`
}

// Summary aggregates an analysis result without saving it: horizon
// summaries, the forward curve when daily series are supplied, and the
// score the trigger would get if saved.
func (h *TriggersEchoHandler) Summary(c echo.Context) error {
	req := &models.SummaryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	draft := usecase.BuildDraft("", models.Criteria{}, req.Events, time.Now())
	res := summaryResult{
		Summaries: aggregate.SummarizeByHorizon(req.Events),
		Score:     draft.Score,
	}
	if len(req.Curves) > 0 {
		curve := aggregate.BuildForwardCurve(req.Curves)
		res.Curve = &curve
	}
	return xhttp.SuccessResponse(c, res)
}
