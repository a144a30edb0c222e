package export

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"agrisahayak/pkg/cycle/service"
)

type ExportCtrl struct{ cycles service.CycleService }

func NewCtrl(cycles service.CycleService) *ExportCtrl { return &ExportCtrl{cycles} }

func (h *ExportCtrl) XLSX(c echo.Context) error {
	landID := c.Param("id")
	cycles, err := h.cycles.ListByLand(landID, false)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	buf, err := Workbook(landID, cycles)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="cycles_%s.xlsx"`, landID))
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func (h *ExportCtrl) CSV(c echo.Context) error {
	landID := c.Param("id")
	cycles, err := h.cycles.ListByLand(landID, false)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	buf, err := CSV(cycles)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="cycles_%s.csv"`, landID))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
