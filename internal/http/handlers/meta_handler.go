package handlers

import (
	"github.com/adpilot/backend/internal/http/dto"
	"github.com/adpilot/backend/internal/models"
	"github.com/gofiber/fiber/v2"
)

type MetaHandler struct{}

func NewMetaHandler() *MetaHandler {
	return &MetaHandler{}
}

type MetaObjective struct {
	ID               string `json:"id"`
	Label            string `json:"label"`
	RequiresPixel    bool   `json:"requires_pixel"`
	RequiresLeadType bool   `json:"requires_lead_type"`
}

type MetaLeadType struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type MetaCallToAction struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

var predefinedObjectives = []MetaObjective{
	{ID: models.ObjectiveSales, Label: "Sales", RequiresPixel: true},
	{ID: models.ObjectiveLeads, Label: "Leads", RequiresLeadType: true},
	{ID: models.ObjectiveTraffic, Label: "Traffic"},
	{ID: models.ObjectiveEngagement, Label: "Engagement"},
	{ID: models.ObjectiveWhatsApp, Label: "WhatsApp Messages"},
	{ID: models.ObjectiveCalls, Label: "Phone Calls"},
}

var predefinedLeadTypes = []MetaLeadType{
	{ID: models.LeadTypeWebsite, Label: "Collect leads on your website"},
	{ID: models.LeadTypeForm, Label: "Collect leads with an instant form"},
}

var ctaLabels = map[string]string{
	"SHOP_NOW":         "Shop Now",
	"BUY_NOW":          "Buy Now",
	"ORDER_NOW":        "Order Now",
	"GET_OFFER":        "Get Offer",
	"SIGN_UP":          "Sign Up",
	"SUBSCRIBE":        "Subscribe",
	"GET_QUOTE":        "Get Quote",
	"APPLY_NOW":        "Apply Now",
	"LEARN_MORE":       "Learn More",
	"LIKE_PAGE":        "Like Page",
	"MESSAGE_PAGE":     "Send Message",
	"WHATSAPP_MESSAGE": "Send WhatsApp Message",
	"CALL_NOW":         "Call Now",
}

func (h *MetaHandler) GetObjectives(c *fiber.Ctx) error {
	return c.JSON(dto.SuccessResponse{OK: true, Data: predefinedObjectives})
}

func (h *MetaHandler) GetLeadTypes(c *fiber.Ctx) error {
	return c.JSON(dto.SuccessResponse{OK: true, Data: predefinedLeadTypes})
}

// GetCallToActions returns the CTA options for an objective, or every option
// when no objective query param is given.
func (h *MetaHandler) GetCallToActions(c *fiber.Ctx) error {
	objective := c.Query("objective")

	var ids []string
	if objective != "" {
		if !models.IsValidObjective(objective) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "unknown objective"})
		}
		ids = models.ObjectiveCallToActions[objective]
	} else {
		seen := map[string]bool{}
		for _, obj := range predefinedObjectives {
			for _, id := range models.ObjectiveCallToActions[obj.ID] {
				if !seen[id] {
					seen[id] = true
					ids = append(ids, id)
				}
			}
		}
	}

	ctas := make([]MetaCallToAction, 0, len(ids))
	for _, id := range ids {
		ctas = append(ctas, MetaCallToAction{ID: id, Label: ctaLabels[id]})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: ctas})
}
