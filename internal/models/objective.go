package models

// Campaign objectives
const (
	ObjectiveSales      = "SALES"
	ObjectiveLeads      = "LEADS"
	ObjectiveTraffic    = "TRAFFIC"
	ObjectiveEngagement = "ENGAGEMENT"
	ObjectiveWhatsApp   = "WHATSAPP"
	ObjectiveCalls      = "CALLS"
)

// Lead types (sub-choice when objective = LEADS)
const (
	LeadTypeWebsite = "WEBSITE"
	LeadTypeForm    = "FORM"
)

var allObjectives = []string{
	ObjectiveSales, ObjectiveLeads, ObjectiveTraffic,
	ObjectiveEngagement, ObjectiveWhatsApp, ObjectiveCalls,
}

func IsValidObjective(o string) bool {
	for _, v := range allObjectives {
		if v == o {
			return true
		}
	}
	return false
}

func IsValidLeadType(t string) bool {
	return t == LeadTypeWebsite || t == LeadTypeForm
}

// ObjectiveRequiresLink reports whether the creative must carry a destination
// URL for the given objective. LEADS only needs one when the lead type sends
// people to a website instead of an in-platform form.
func ObjectiveRequiresLink(objective, leadType string) bool {
	switch objective {
	case ObjectiveSales, ObjectiveTraffic:
		return true
	case ObjectiveLeads:
		return leadType == LeadTypeWebsite
	}
	return false
}

// ObjectiveRequiresPixel: conversion tracking is mandatory for sales campaigns.
func ObjectiveRequiresPixel(objective string) bool {
	return objective == ObjectiveSales
}

// ObjectiveRequiresLeadForm: in-platform form campaigns must reference a form
// from the connected page.
func ObjectiveRequiresLeadForm(objective, leadType string) bool {
	return objective == ObjectiveLeads && leadType == LeadTypeForm
}

// Call-to-action options offered per objective.
var ObjectiveCallToActions = map[string][]string{
	ObjectiveSales:      {"SHOP_NOW", "BUY_NOW", "ORDER_NOW", "GET_OFFER"},
	ObjectiveLeads:      {"SIGN_UP", "SUBSCRIBE", "GET_QUOTE", "APPLY_NOW"},
	ObjectiveTraffic:    {"LEARN_MORE", "SHOP_NOW", "SIGN_UP"},
	ObjectiveEngagement: {"LEARN_MORE", "LIKE_PAGE", "MESSAGE_PAGE"},
	ObjectiveWhatsApp:   {"WHATSAPP_MESSAGE"},
	ObjectiveCalls:      {"CALL_NOW"},
}
