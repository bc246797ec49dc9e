package handlers

import (
	"strconv"

	"github.com/adpilot/backend/internal/http/dto"
	"github.com/adpilot/backend/internal/middleware"
	"github.com/adpilot/backend/internal/repositories"
	"github.com/adpilot/backend/internal/services"
	"github.com/adpilot/backend/internal/wizard"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type WizardHandler struct {
	wizardService *services.WizardService
	log           *zap.Logger
}

func NewWizardHandler(wizardService *services.WizardService, log *zap.Logger) *WizardHandler {
	return &WizardHandler{wizardService: wizardService, log: log}
}

func (h *WizardHandler) CreateDraft(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	draft, err := h.wizardService.CreateDraft(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: draft})
}

func (h *WizardHandler) GetDraft(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid draft id"})
	}

	userID := middleware.GetUserID(c)
	draft, err := h.wizardService.GetDraft(c.Context(), id, userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "draft not found"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: draft})
}

func (h *WizardHandler) ListDrafts(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	filter := repositories.DraftFilter{Limit: 20}

	if v := c.Query("status"); v != "" {
		filter.Status = &v
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Offset = n
		}
	}

	drafts, err := h.wizardService.ListDrafts(c.Context(), userID, filter)
	if err != nil {
		h.log.Error("list drafts failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: drafts})
}

func (h *WizardHandler) UpdateDraft(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid draft id"})
	}

	var req dto.UpdateDraftRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}
	if req.Field == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "field is required"})
	}

	userID := middleware.GetUserID(c)
	draft, err := h.wizardService.ApplyUpdate(c.Context(), id, userID,
		wizard.Update{Field: req.Field, Value: req.Value})
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: draft})
}

func (h *WizardHandler) NavigateDraft(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid draft id"})
	}

	var req dto.NavigateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	userID := middleware.GetUserID(c)
	draft, err := h.wizardService.Navigate(c.Context(), id, userID, req.Step)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: draft})
}

func (h *WizardHandler) SubmitDraft(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid draft id"})
	}

	userID := middleware.GetUserID(c)
	draft, err := h.wizardService.Submit(c.Context(), id, userID)
	if err != nil {
		// Validation and backend failures alike: the message is already
		// user-facing, the wizard stays on review with state intact.
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	campaignID := ""
	if draft.CampaignID != nil {
		campaignID = *draft.CampaignID
	}
	return c.JSON(dto.SubmitResponse{OK: true, CampaignID: campaignID, DraftID: draft.ID.String()})
}

func (h *WizardHandler) AbandonDraft(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid draft id"})
	}

	userID := middleware.GetUserID(c)
	if err := h.wizardService.Abandon(c.Context(), id, userID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}

func (h *WizardHandler) ListPixels(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	pixels, err := h.wizardService.ListPixels(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: pixels})
}

func (h *WizardHandler) ListLeadForms(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	forms, err := h.wizardService.ListLeadForms(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: forms})
}
