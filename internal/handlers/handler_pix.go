package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pixbank-app/pixbank-backend/internal/apperrors"
	portssvc "github.com/pixbank-app/pixbank-backend/internal/core/ports/services"
	"github.com/pixbank-app/pixbank-backend/internal/dto"
	"github.com/pixbank-app/pixbank-backend/internal/middleware"
)

// pixKeyHandler handles HTTP requests related to PIX keys.
type pixKeyHandler struct {
	pixKeyService portssvc.PixKeySvcFacade
}

// newPixKeyHandler creates a new pixKeyHandler.
func newPixKeyHandler(ps portssvc.PixKeySvcFacade) *pixKeyHandler {
	return &pixKeyHandler{pixKeyService: ps}
}

// registerPixKeyRoutes registers routes related to PIX keys.
func registerPixKeyRoutes(r *gin.Engine, jwtSecret string, pixKeyService portssvc.PixKeySvcFacade) {
	h := newPixKeyHandler(pixKeyService)

	pix := r.Group("/pix", middleware.AuthMiddleware(jwtSecret))
	{
		pix.POST("/:email", h.createPixKey)
		pix.GET("/:email", h.listPixKeys)
		pix.DELETE("/:email/:pixId", h.deletePixKey)
	}
}

// createPixKey godoc
// @Summary Register a PIX key
// @Description Registers a PIX key for the account. For type CHAVE_ALEATORIA the key value is generated server-side.
// @Tags pix
// @Accept  json
// @Produce  json
// @Param   email path string true "Account email"
// @Param   key body dto.CreatePixKeyRequest true "Key details"
// @Success 201 {object} dto.PixKeyResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Key value already registered"
// @Failure 422 {object} ErrorResponse "Key value does not match its declared type"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /pix/{email} [post]
func (h *pixKeyHandler) createPixKey(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	email := c.Param("email")

	requesterID, ok := middleware.GetAccountIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreatePixKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createPixKey", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	key, err := h.pixKeyService.CreatePixKey(c.Request.Context(), email, req, requesterID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "PIX key already registered"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Account not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Cannot register keys for another account"})
		default:
			logger.Error("Failed to create PIX key", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to register PIX key"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToPixKeyResponse(key))
}

// listPixKeys godoc
// @Summary List PIX keys
// @Description Lists all PIX keys of the account, oldest first.
// @Tags pix
// @Produce  json
// @Param   email path string true "Account email"
// @Success 200 {array} dto.PixKeyResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /pix/{email} [get]
func (h *pixKeyHandler) listPixKeys(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	email := c.Param("email")

	requesterID, ok := middleware.GetAccountIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	keys, err := h.pixKeyService.ListPixKeys(c.Request.Context(), email, requesterID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Account not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Cannot list another account's keys"})
		default:
			logger.Error("Failed to list PIX keys", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list PIX keys"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPixKeyResponses(keys))
}

// deletePixKey godoc
// @Summary Delete a PIX key
// @Description Removes a PIX key owned by the account.
// @Tags pix
// @Produce  json
// @Param   email path string true "Account email"
// @Param   pixId path string true "PIX key ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /pix/{email}/{pixId} [delete]
func (h *pixKeyHandler) deletePixKey(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	email := c.Param("email")
	pixKeyID := c.Param("pixId")

	requesterID, ok := middleware.GetAccountIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.pixKeyService.DeletePixKey(c.Request.Context(), email, pixKeyID, requesterID); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "PIX key not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Cannot delete another account's key"})
		default:
			logger.Error("Failed to delete PIX key", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete PIX key"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
