package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/laughline/booking-api/internal/api/metrics"
	"github.com/laughline/booking-api/internal/core/ports"
)

// ShowHandler handles HTTP requests for booking opportunities.
type ShowHandler struct {
	service ports.ShowService
}

func NewShowHandler(service ports.ShowService) *ShowHandler {
	return &ShowHandler{service: service}
}

type createShowRequest struct {
	Title             string   `json:"title" validate:"required"`
	Type              string   `json:"type" validate:"required"`
	Location          string   `json:"location" validate:"required"`
	IsPriceNegotiable *bool    `json:"isPriceNegotiable"`
	Price             *float64 `json:"price"`
	Description       string   `json:"description" validate:"required"`
	Deadline          string   `json:"deadline" validate:"required"`
	Contact           string   `json:"contact" validate:"required"`
}

// Create publishes a show owned by the caller.
//
// @Summary      Publish a show
// @Tags         shows
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string             false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      createShowRequest  true   "Show details"
// @Success      201              {object}  dataResponse{data=domain.Show}
// @Success      200              {object}  dataResponse{data=domain.Show}  "Replayed submission"
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      500              {object}  errorResponse
// @Router       /shows [post]
func (h *ShowHandler) Create(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req createShowRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	show, replayed, err := h.service.Create(c.Request().Context(), sess, ports.ShowInput{
		Title:             req.Title,
		Type:              req.Type,
		Location:          req.Location,
		IsPriceNegotiable: req.IsPriceNegotiable,
		Price:             req.Price,
		Description:       req.Description,
		Deadline:          req.Deadline,
		Contact:           req.Contact,
		IdempotencyKey:    c.Request().Header.Get("Idempotency-Key"),
	})
	if err != nil {
		return err
	}

	if replayed {
		metrics.ShowSubmissionsReplayedTotal.Inc()
		return c.JSON(http.StatusOK, dataResponse{Data: show})
	}
	metrics.ShowsPublishedTotal.WithLabelValues(string(show.Type)).Inc()
	return c.JSON(http.StatusCreated, dataResponse{Data: show})
}

// List returns every show, newest first.
//
// @Summary      List shows
// @Tags         shows
// @Produce      json
// @Success      200  {object}  dataResponse{data=[]domain.ShowView}
// @Failure      500  {object}  errorResponse
// @Router       /shows [get]
func (h *ShowHandler) List(c echo.Context) error {
	views, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Data: views})
}

// Get returns one show with its owner's name and email.
//
// @Summary      Get a show
// @Tags         shows
// @Produce      json
// @Param        id   path      string  true  "Show ID"
// @Success      200  {object}  domain.ShowView
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /shows/{id} [get]
func (h *ShowHandler) Get(c echo.Context) error {
	view, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}
