package auth

import (
	"net/http"

	"ak-attendance/internal/shared/apperror"
	"ak-attendance/internal/shared/response"

	"github.com/gin-gonic/gin"
)

const sessionCookie = "session"
const sessionMaxAge = 7 * 24 * 3600

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	// Token juga ditaruh di cookie HttpOnly untuk halaman server-rendered
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, resp.Token, sessionMaxAge, "/", "", false, true)

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	response.Success(c, http.StatusOK, gin.H{"logged_out": true}, nil)
}

func (h *Handler) UpdateAdminPin(c *gin.Context) {
	var req UpdateAdminPinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	if err := h.service.UpdateAdminPin(c.Request.Context(), req); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"updated": true}, nil)
}
