package controllerImp

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"agrisahayak/pkg/cycle/controller"
	"agrisahayak/pkg/cycle/service"
)

type cycleCtrl struct{ svc service.CycleService }

func New(svc service.CycleService) controller.CycleController { return &cycleCtrl{svc} }

func fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrLandNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "land not found"})
	case errors.Is(err, service.ErrCycleNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "crop cycle not found"})
	case errors.Is(err, service.ErrCycleCompleted):
		return c.JSON(http.StatusConflict, map[string]string{"error": "crop cycle already completed"})
	case errors.Is(err, service.ErrConflict):
		return c.JSON(http.StatusConflict, map[string]string{"error": "concurrent update, retry"})
	case errors.Is(err, service.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

type startReq struct {
	LandID          string `json:"land_id"`
	Crop            string `json:"crop"`
	Season          string `json:"season"`
	SowingDate      string `json:"sowing_date"`
	ExpectedHarvest string `json:"expected_harvest"`
}

func (h *cycleCtrl) Start(c echo.Context) error {
	var req startReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	out, err := h.svc.Start(service.StartInput{
		LandID:          req.LandID,
		Crop:            req.Crop,
		Season:          req.Season,
		SowingDate:      req.SowingDate,
		ExpectedHarvest: req.ExpectedHarvest,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *cycleCtrl) Get(c echo.Context) error {
	out, err := h.svc.Get(c.Param("cycle_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *cycleCtrl) ListByLand(c echo.Context) error {
	activeOnly := c.QueryParam("active_only") != "false"
	cycles, err := h.svc.ListByLand(c.Param("land_id"), activeOnly)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"land_id": c.Param("land_id"),
		"total":   len(cycles),
		"cycles":  cycles,
	})
}

func (h *cycleCtrl) ListActive(c echo.Context) error {
	out, err := h.svc.ListActive()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type activityReq struct {
	ActivityType string  `json:"activity_type"`
	Description  string  `json:"description"`
	Cost         float64 `json:"cost"`
	Date         string  `json:"date"`
}

func (h *cycleCtrl) LogActivity(c echo.Context) error {
	var req activityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	a, err := h.svc.LogActivity(c.Param("cycle_id"), service.ActivityInput{
		ActivityType: req.ActivityType,
		Description:  req.Description,
		Cost:         req.Cost,
		Date:         req.Date,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"message": "Activity logged", "activity": a})
}

type diseaseReq struct {
	DiseaseName         string  `json:"disease_name"`
	Confidence          float64 `json:"confidence"`
	AffectedAreaPercent float64 `json:"affected_area_percent"`
}

func (h *cycleCtrl) ReportDisease(c echo.Context) error {
	var req diseaseReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	out, err := h.svc.ReportDisease(c.Param("cycle_id"), service.DiseaseInput{
		DiseaseName:         req.DiseaseName,
		Confidence:          req.Confidence,
		AffectedAreaPercent: req.AffectedAreaPercent,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *cycleCtrl) UpdateHealth(c echo.Context) error {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	out, err := h.svc.UpdateHealth(c.Param("cycle_id"), req.Status)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type completeReq struct {
	ActualYieldKg     float64  `json:"actual_yield_kg"`
	SellingPricePerKg *float64 `json:"selling_price_per_kg"`
	Notes             string   `json:"notes"`
}

func (h *cycleCtrl) Complete(c echo.Context) error {
	var req completeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	out, err := h.svc.Complete(c.Param("cycle_id"), service.CompleteInput{
		ActualYieldKg:     req.ActualYieldKg,
		SellingPricePerKg: req.SellingPricePerKg,
		Notes:             req.Notes,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
