package controller

import "github.com/labstack/echo/v4"

type CycleController interface {
	Start(c echo.Context) error
	Get(c echo.Context) error
	ListByLand(c echo.Context) error
	ListActive(c echo.Context) error
	LogActivity(c echo.Context) error
	ReportDisease(c echo.Context) error
	UpdateHealth(c echo.Context) error
	Complete(c echo.Context) error
}
