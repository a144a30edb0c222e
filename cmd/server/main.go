package main

import (
	"log"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"agrisahayak/config"
	"agrisahayak/database"
	"agrisahayak/router"

	// Auth
	authCtrlImp "agrisahayak/pkg/auth/controllerImp"
	"agrisahayak/pkg/auth/otp"

	// Land
	landCtrlImp "agrisahayak/pkg/land/controllerImp"
	landRepoImp "agrisahayak/pkg/land/repositoryImp"

	// Crop cycles
	cycleCtrlImp "agrisahayak/pkg/cycle/controllerImp"
	cycleRepoImp "agrisahayak/pkg/cycle/repositoryImp"
	cycleSvcImp "agrisahayak/pkg/cycle/serviceImp"

	// Advisory library
	advCtrlImp "agrisahayak/pkg/advisory/controllerImp"
	advRepoImp "agrisahayak/pkg/advisory/repositoryImp"
	advSvcImp "agrisahayak/pkg/advisory/serviceImp"

	// Market prices
	marketCtrlImp "agrisahayak/pkg/market/controllerImp"
	marketRepoImp "agrisahayak/pkg/market/repositoryImp"

	// Reference data + export
	"agrisahayak/pkg/cropref"
	"agrisahayak/pkg/export"

	// Health
	healthCtrlImp "agrisahayak/pkg/health/controllerImp"
)

func main() {
	// 1) Config
	cfg := config.Load()

	// 2) DB (sqlite) + automigrate
	db := database.OpenSQLite(cfg.DBPath)

	// 3) Crop reference table (built-ins + optional overrides)
	crops := cropref.New()
	if cfg.CropTableCSV != "" {
		if err := crops.LoadCSV(cfg.CropTableCSV); err != nil {
			log.Printf("crop table csv warn: %v", err)
		}
	}
	if cfg.CropTableXLS != "" {
		if err := crops.LoadXLSX(cfg.CropTableXLS); err != nil {
			log.Printf("crop table xlsx warn: %v", err)
		}
	}

	// 4) OTP store — Redis when configured, in-memory otherwise
	var store otp.Store
	if cfg.RedisAddr != "" {
		s, err := otp.NewRedis(cfg.RedisAddr)
		if err != nil {
			log.Fatalf("redis otp store: %v", err)
		}
		store = s
	} else {
		store = otp.NewMemory()
	}

	// 5) Repos
	lRepo := landRepoImp.New(db)
	cRepo := cycleRepoImp.New(db)
	aRepo := advRepoImp.New(db)
	mRepo := marketRepoImp.New(db)

	// 6) Services
	advSvc := advSvcImp.New(aRepo)
	cycleSvc := cycleSvcImp.New(crops, cRepo, lRepo, advSvc)

	// 7) Controllers
	authCtrl := authCtrlImp.New(store, cfg.JWTSecret)
	landCtrl := landCtrlImp.New(lRepo)
	cycleCtrl := cycleCtrlImp.New(cycleSvc)
	advCtrl := advCtrlImp.New(advSvc)
	marketCtrl := marketCtrlImp.New(mRepo)
	exportCtrl := export.NewCtrl(cycleSvc)
	hCtrl := healthCtrlImp.NewHealthCtrl(db)

	// 8) Echo + routes
	e := echo.New()
	e.Use(echoMiddleware.Recover())
	r := router.New(
		e,
		cfg.JWTSecret,
		cfg.AuthDisabled,
		authCtrl,
		landCtrl,
		cycleCtrl,
		advCtrl,
		marketCtrl,
		exportCtrl,
		hCtrl,
	)

	// 9) Start
	log.Printf("listening on :%s", cfg.Port)
	if err := r.Start(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
