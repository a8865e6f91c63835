package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/laughline/booking-api/internal/api/metrics"
	"github.com/laughline/booking-api/internal/core/domain"
	"github.com/laughline/booking-api/internal/core/ports"
)

// ProfileHandler serves the caller's own profile and the public directory.
type ProfileHandler struct {
	service ports.ProfileService
}

func NewProfileHandler(service ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

type locationRequest struct {
	Province string `json:"province"`
	City     string `json:"city"`
}

// profileRequest is a partial profile; omitted fields keep their stored value.
// Text lengths are checked by the service on the decoded value.
type profileRequest struct {
	StageName  *string          `json:"stageName"`
	Experience *int             `json:"experience" validate:"omitempty,gte=0"`
	Location   *locationRequest `json:"location"`
	HasClub    *bool            `json:"hasClub"`
	ClubName   *string          `json:"clubName"`
	Bio        *string          `json:"bio"`
	Contact    *string          `json:"contact"`

	HasCommercialExp    *bool    `json:"hasCommercialExp"`
	HasScriptwritingExp *bool    `json:"hasScriptwritingExp"`
	HasPersonalShow     *bool    `json:"hasPersonalShow"`
	PersonalShows       []string `json:"personalShows"`
	HasVarietyExp       *bool    `json:"hasVarietyExp"`
	VarietyShows        []string `json:"varietyShows"`

	IsPriceNegotiable *bool    `json:"isPriceNegotiable"`
	CommercialFee     *float64 `json:"commercialFee"`
	JointShowFee      *float64 `json:"jointShowFee"`
	PersonalShowFee   *float64 `json:"personalShowFee"`
	ScriptwritingFee  *float64 `json:"scriptwritingFee"`

	Avatar *string  `json:"avatar"`
	Photos []string `json:"photos"`
}

func (r profileRequest) toInput() ports.ProfileInput {
	in := ports.ProfileInput{
		StageName:           r.StageName,
		Experience:          r.Experience,
		HasClub:             r.HasClub,
		ClubName:            r.ClubName,
		Bio:                 r.Bio,
		Contact:             r.Contact,
		HasCommercialExp:    r.HasCommercialExp,
		HasScriptwritingExp: r.HasScriptwritingExp,
		HasPersonalShow:     r.HasPersonalShow,
		PersonalShows:       r.PersonalShows,
		HasVarietyExp:       r.HasVarietyExp,
		VarietyShows:        r.VarietyShows,
		IsPriceNegotiable:   r.IsPriceNegotiable,
		CommercialFee:       r.CommercialFee,
		JointShowFee:        r.JointShowFee,
		PersonalShowFee:     r.PersonalShowFee,
		ScriptwritingFee:    r.ScriptwritingFee,
		Avatar:              r.Avatar,
		Photos:              r.Photos,
	}
	if r.Location != nil {
		in.Location = &domain.Location{Province: r.Location.Province, City: r.Location.City}
	}
	return in
}

// Get returns the caller's profile, or an empty object when none exists yet.
//
// @Summary      Own profile
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Profile
// @Failure      401  {object}  errorResponse
// @Router       /profile [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	profile, err := h.service.Get(c.Request().Context(), sess.AccountID)
	if errors.Is(err, domain.ErrProfileNotFound) {
		return c.JSON(http.StatusOK, map[string]any{})
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// Save creates or updates the caller's profile.
//
// @Summary      Save own profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      profileRequest  true  "Profile fields; omitted fields are kept"
// @Success      200   {object}  domain.Profile
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /profile [post]
func (h *ProfileHandler) Save(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	profile, outcome, err := h.service.Save(c.Request().Context(), sess, req.toInput())
	if err != nil {
		return err
	}

	metrics.ProfileSavesTotal.WithLabelValues(string(outcome)).Inc()
	return c.JSON(http.StatusOK, profile)
}

// List returns the public performer directory.
//
// @Summary      Performer directory
// @Tags         comedians
// @Produce      json
// @Success      200  {object}  dataResponse{data=[]domain.ComedianSummary}
// @Failure      500  {object}  errorResponse
// @Router       /comedians [get]
func (h *ProfileHandler) List(c echo.Context) error {
	list, err := h.service.ListDirectory(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Data: list})
}

// profileDetail adds whether the caller may edit the profile.
type profileDetail struct {
	*domain.Profile
	CanEdit bool `json:"canEdit"`
}

// Detail returns a full profile by its ID.
//
// @Summary      Performer detail
// @Tags         comedians
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Profile ID"
// @Success      200  {object}  dataResponse{data=profileDetail}
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /comedians/{id} [get]
func (h *ProfileHandler) Detail(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	profile, err := h.service.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Data: profileDetail{
		Profile: profile,
		CanEdit: h.service.CanEdit(sess, profile),
	}})
}

// Mine returns the caller's profile wrapped in the directory envelope.
//
// @Summary      Own performer profile
// @Tags         comedians
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dataResponse{data=domain.Profile}
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /comedians/profile [get]
func (h *ProfileHandler) Mine(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	profile, err := h.service.Get(c.Request().Context(), sess.AccountID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Data: profile})
}
