package controllerImp

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"agrisahayak/entities"
	"agrisahayak/pkg/land/controller"
	"agrisahayak/pkg/land/repository"
)

type landCtrl struct{ repo repository.LandRepository }

func New(repo repository.LandRepository) controller.LandController { return &landCtrl{repo} }

type createReq struct {
	Name           string  `json:"name"`
	AreaAcres      float64 `json:"area_acres"`
	SoilType       string  `json:"soil_type"`
	IrrigationType string  `json:"irrigation_type"`
	Village        string  `json:"village"`
	District       string  `json:"district"`
	State          string  `json:"state"`
}

func newLandID() string {
	return "L" + strings.ToUpper(uuid.NewString()[:6])
}

func (h *landCtrl) Create(c echo.Context) error {
	var req createReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if req.AreaAcres <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "area_acres must be positive"})
	}
	l := &entities.Land{
		LandID:         newLandID(),
		Name:           req.Name,
		AreaAcres:      req.AreaAcres,
		SoilType:       req.SoilType,
		IrrigationType: req.IrrigationType,
		Village:        req.Village,
		District:       req.District,
		State:          req.State,
	}
	if err := h.repo.Create(l); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, l)
}

func (h *landCtrl) Get(c echo.Context) error {
	l, err := h.repo.FindByLandID(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "land not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, l)
}

func (h *landCtrl) List(c echo.Context) error {
	out, err := h.repo.List(100)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, out)
}
