package handler

import (
	"time"

	appclaims "github.com/claimdesk/backend/internal/application/claims"
	"github.com/claimdesk/backend/internal/domain/claims"
	"github.com/gin-gonic/gin"
)

// WizardHandler answers the step-gating question for the client-driven
// submission wizard: given the state accumulated so far, may the user
// advance? The server owns the gating rules so every client agrees on them.
type WizardHandler struct {
	BaseHandler
	cloud appclaims.CloudService
}

// NewWizardHandler creates a new WizardHandler. cloud may be nil when no
// cloud storage is configured.
func NewWizardHandler(cloud appclaims.CloudService) *WizardHandler {
	return &WizardHandler{cloud: cloud}
}

// RegisterRoutes registers wizard routes on the API group
func (h *WizardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/wizard")
	{
		group.POST("/check", h.Check)
	}
}

// WizardCheckRequest carries the wizard state accumulated by the client
type WizardCheckRequest struct {
	Step            int                               `json:"step" binding:"required,min=1,max=4"`
	PolicyNumber    string                            `json:"policy_number"`
	Insurer         string                            `json:"insurer"`
	ClaimType       string                            `json:"claim_type"`
	IncidentDate    *time.Time                        `json:"incident_date"`
	SelectedItemIDs []string                          `json:"selected_item_ids"`
	Method          string                            `json:"method"`
	EmailRecipient  string                            `json:"email_recipient"`
	CloudSelected   bool                              `json:"cloud_selected"`
	Validation      *appclaims.ClaimValidationResults `json:"validation"`
}

// WizardCheckResponse is the gating verdict for the presented state
type WizardCheckResponse struct {
	Step       int     `json:"step"`
	TotalSteps int     `json:"total_steps"`
	CanAdvance bool    `json:"can_advance"`
	Progress   float64 `json:"progress"`
}

// Check evaluates whether the wizard may advance from the presented step
func (h *WizardHandler) Check(c *gin.Context) {
	var req WizardCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	itemIDs, err := parseItemIDs(req.SelectedItemIDs)
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	cloud := appclaims.NoServiceSelected()
	if req.CloudSelected && h.cloud != nil {
		cloud = appclaims.SelectedService(h.cloud)
	}

	state := appclaims.WizardState{
		Step:            req.Step,
		PolicyNumber:    req.PolicyNumber,
		Insurer:         claims.InsurerFormat(req.Insurer),
		ClaimType:       claims.ClaimType(req.ClaimType),
		IncidentDate:    req.IncidentDate,
		SelectedItemIDs: itemIDs,
		Validation:      req.Validation,
		Method:          claims.SubmissionMethod(req.Method),
		EmailRecipient:  req.EmailRecipient,
		Cloud:           cloud,
	}

	h.Success(c, WizardCheckResponse{
		Step:       state.Step,
		TotalSteps: appclaims.TotalWizardSteps,
		CanAdvance: state.CanAdvance(),
		Progress:   state.Progress(),
	})
}
