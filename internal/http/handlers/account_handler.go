package handlers

import (
	"github.com/adpilot/backend/internal/http/dto"
	"github.com/adpilot/backend/internal/middleware"
	"github.com/adpilot/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AccountHandler struct {
	accountService *services.AccountService
	syncService    *services.SyncService
	log            *zap.Logger
}

func NewAccountHandler(accountService *services.AccountService, syncService *services.SyncService, log *zap.Logger) *AccountHandler {
	return &AccountHandler{accountService: accountService, syncService: syncService, log: log}
}

func (h *AccountHandler) ConnectAccount(c *fiber.Ctx) error {
	var req dto.ConnectAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	userID := middleware.GetUserID(c)
	account, err := h.accountService.Connect(c.Context(), userID, req.AccountID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: account})
}

func (h *AccountHandler) GetAccount(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	account, err := h.accountService.Get(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: account})
}

func (h *AccountHandler) DisconnectAccount(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if err := h.accountService.Disconnect(c.Context(), userID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}

func (h *AccountHandler) GetSyncStatus(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	status, err := h.syncService.GetStatus(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: status})
}
