package controllerImp

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"agrisahayak/pkg/auth/controller"
	"agrisahayak/pkg/auth/otp"
	"agrisahayak/pkg/auth/token"
)

type authCtrl struct {
	store  otp.Store
	secret string
}

func New(store otp.Store, jwtSecret string) controller.AuthController {
	return &authCtrl{store: store, secret: jwtSecret}
}

type otpRequest struct {
	Phone string `json:"phone"`
}

type otpVerify struct {
	Phone string `json:"phone"`
	OTP   string `json:"otp"`
}

func (h *authCtrl) RequestOTP(c echo.Context) error {
	var req otpRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if len(req.Phone) < 10 || len(req.Phone) > 15 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "phone must be 10-15 digits"})
	}

	code := otp.Generate()
	if err := h.store.Put(c.Request().Context(), req.Phone, code); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	// No SMS gateway wired here; the code is logged for operators. A real
	// deployment replaces this with the SMS provider call.
	log.Printf("[auth] OTP for %s: %s", req.Phone, code)

	return c.JSON(http.StatusOK, map[string]any{
		"message":      "OTP sent",
		"expires_in_s": int(otp.TTL.Seconds()),
	})
}

func (h *authCtrl) VerifyOTP(c echo.Context) error {
	var req otpVerify
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}

	ok, err := h.store.Verify(c.Request().Context(), req.Phone, req.OTP)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid or expired OTP"})
	}

	tok, err := token.Sign(h.secret, req.Phone, "farmer")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"access_token": tok,
		"token_type":   "bearer",
		"expires_in":   int(token.TokenTTL.Seconds()),
		"user":         map[string]string{"phone": req.Phone, "role": "farmer"},
	})
}

func (h *authCtrl) WhoAmI(c echo.Context) error {
	phone, _ := c.Get("phone").(string)
	role, _ := c.Get("role").(string)
	return c.JSON(http.StatusOK, map[string]string{"phone": phone, "role": role})
}
