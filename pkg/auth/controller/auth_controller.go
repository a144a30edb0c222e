package controller

import "github.com/labstack/echo/v4"

type AuthController interface {
	RequestOTP(c echo.Context) error
	VerifyOTP(c echo.Context) error
	WhoAmI(c echo.Context) error
}
