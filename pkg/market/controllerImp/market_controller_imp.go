package controllerImp

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/montanaflynn/stats"

	"agrisahayak/entities"
	"agrisahayak/pkg/market/repository"
)

type MarketCtrl struct{ repo repository.MarketRepository }

func New(repo repository.MarketRepository) *MarketCtrl { return &MarketCtrl{repo} }

type priceReq struct {
	Crop         string   `json:"crop"`
	Mandi        string   `json:"mandi"`
	State        string   `json:"state"`
	MinPrice     *float64 `json:"min_price"`
	MaxPrice     *float64 `json:"max_price"`
	ModalPrice   float64  `json:"modal_price"`
	RecordedDate string   `json:"recorded_date"`
}

func (h *MarketCtrl) Create(c echo.Context) error {
	var req priceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if req.Crop == "" || req.ModalPrice <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "crop and positive modal_price are required"})
	}
	d := time.Now()
	if req.RecordedDate != "" {
		dd, err := time.Parse("2006-01-02", req.RecordedDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "recorded_date must be YYYY-MM-DD"})
		}
		d = dd
	}
	p := &entities.MarketPrice{
		Crop: req.Crop, Mandi: req.Mandi, State: req.State,
		MinPrice: req.MinPrice, MaxPrice: req.MaxPrice, ModalPrice: req.ModalPrice,
		RecordedDate: d,
	}
	if err := h.repo.Create(p); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, p)
}

// Summary aggregates the last 90 days of modal prices for a crop into
// mean/min/max/stddev and a coarse volatility label for the UI.
func (h *MarketCtrl) Summary(c echo.Context) error {
	crop := c.Param("crop")
	points, err := h.repo.Recent(crop, 90)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if len(points) == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "no price data for crop"})
	}

	prices := make(stats.Float64Data, len(points))
	for i, p := range points {
		prices[i] = p.ModalPrice
	}
	mean, _ := stats.Mean(prices)
	min, _ := stats.Min(prices)
	max, _ := stats.Max(prices)
	sd, _ := stats.StandardDeviation(prices)

	volatility := "stable"
	if mean > 0 {
		switch cv := sd / mean; {
		case cv > 0.15:
			volatility = "volatile"
		case cv > 0.05:
			volatility = "moderate"
		}
	}

	trend := "stable"
	first, last := points[0].ModalPrice, points[len(points)-1].ModalPrice
	switch {
	case last > first*1.03:
		trend = "up"
	case last < first*0.97:
		trend = "down"
	}

	return c.JSON(http.StatusOK, map[string]any{
		"crop":        points[0].Crop,
		"samples":     len(points),
		"mean_price":  mean,
		"min_price":   min,
		"max_price":   max,
		"stddev":      sd,
		"volatility":  volatility,
		"trend":       trend,
		"latest":      last,
		"window_days": 90,
	})
}
