package router

import (
	"github.com/labstack/echo/v4"

	authCtrl "agrisahayak/pkg/auth/controller"
	advisoryCtrl "agrisahayak/pkg/advisory/controller"
	cycleCtrl "agrisahayak/pkg/cycle/controller"
	"agrisahayak/pkg/export"
	landCtrl "agrisahayak/pkg/land/controller"
	marketCtrl "agrisahayak/pkg/market/controllerImp"
	"agrisahayak/pkg/middleware"
)

func New(
	e *echo.Echo,
	jwtSecret string,
	authDisabled bool,
	auth authCtrl.AuthController,
	lands landCtrl.LandController,
	cycles cycleCtrl.CycleController,
	advisory advisoryCtrl.AdvisoryController,
	market *marketCtrl.MarketCtrl,
	exporter *export.ExportCtrl,
	healthCtrl interface{ Health(echo.Context) error },
) *echo.Echo {
	e.GET("/healthz", healthCtrl.Health)

	e.POST("/auth/otp/request", auth.RequestOTP)
	e.POST("/auth/otp/verify", auth.VerifyOTP)

	api := e.Group("", middleware.BearerAuth(jwtSecret, authDisabled))

	api.GET("/whoami", auth.WhoAmI)

	api.POST("/lands", lands.Create)
	api.GET("/lands", lands.List)
	api.GET("/lands/:id", lands.Get)

	api.POST("/cycles/start", cycles.Start)
	api.GET("/cycles/active/all", cycles.ListActive)
	api.GET("/cycles/land/:land_id", cycles.ListByLand)
	api.GET("/cycles/:cycle_id", cycles.Get)
	api.POST("/cycles/:cycle_id/activity", cycles.LogActivity)
	api.POST("/cycles/:cycle_id/report-disease", cycles.ReportDisease)
	api.POST("/cycles/:cycle_id/update-health", cycles.UpdateHealth)
	api.POST("/cycles/:cycle_id/complete", cycles.Complete)

	api.POST("/advisory/ingest", advisory.IngestText)
	api.POST("/advisory/ingest/url", advisory.IngestURL)
	api.GET("/advisory/search", advisory.Search)

	api.POST("/market/prices", market.Create)
	api.GET("/market/:crop/summary", market.Summary)

	api.GET("/export/lands/:id/cycles.xlsx", exporter.XLSX)
	api.GET("/export/lands/:id/cycles.csv", exporter.CSV)

	return e
}
