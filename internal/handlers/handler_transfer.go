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

// transferHandler handles HTTP requests for PIX transfers.
type transferHandler struct {
	transferService portssvc.TransferSvcFacade
}

// newTransferHandler creates a new transferHandler.
func newTransferHandler(ts portssvc.TransferSvcFacade) *transferHandler {
	return &transferHandler{transferService: ts}
}

// registerTransferRoutes registers the transfer route.
func registerTransferRoutes(r *gin.Engine, jwtSecret string, transferService portssvc.TransferSvcFacade) {
	h := newTransferHandler(transferService)

	r.POST("/accounts/send-pix", middleware.AuthMiddleware(jwtSecret), h.sendPix)
}

// sendPix godoc
// @Summary Send a PIX transfer
// @Description Atomically moves funds between two accounts. The destination is resolved by PIX key value first, then by email.
// @Tags transfers
// @Accept  json
// @Produce  json
// @Param   transfer body dto.SendPixRequest true "Transfer details"
// @Success 200 {object} dto.TransferConfirmation
// @Failure 400 {object} ErrorResponse "Invalid payload or non-positive amount"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Source account does not belong to the caller"
// @Failure 404 {object} ErrorResponse "Source account not found"
// @Failure 422 {object} ErrorResponse "Insufficient funds, self-transfer, or unresolved destination"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/send-pix [post]
func (h *transferHandler) sendPix(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	requesterID, ok := middleware.GetAccountIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.SendPixRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for sendPix", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	confirmation, err := h.transferService.SendPix(c.Request.Context(), requesterID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Cannot send from another account"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Source account not found"})
		case errors.Is(err, apperrors.ErrInsufficientFunds):
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "Insufficient funds"})
		case errors.Is(err, apperrors.ErrInvalidTransfer):
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "Source and destination must differ"})
		case errors.Is(err, apperrors.ErrDestinationNotFound):
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "Destination could not be resolved"})
		default:
			logger.Error("Transfer failed", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Transfer failed"})
		}
		return
	}

	c.JSON(http.StatusOK, confirmation)
}
