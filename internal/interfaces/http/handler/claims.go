package handler

import (
	"time"

	appclaims "github.com/claimdesk/backend/internal/application/claims"
	"github.com/claimdesk/backend/internal/domain/claims"
	"github.com/claimdesk/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ClaimHandler handles claim validation, submission and tracking endpoints
type ClaimHandler struct {
	BaseHandler
	validation  *appclaims.ValidationService
	coordinator *appclaims.ExportCoordinator
	tracking    *appclaims.TrackingService
	cloud       appclaims.CloudService
}

// NewClaimHandler creates a new ClaimHandler. cloud may be nil when no cloud
// storage is configured; cloud-upload submissions are then rejected with a
// recovery suggestion.
func NewClaimHandler(
	validation *appclaims.ValidationService,
	coordinator *appclaims.ExportCoordinator,
	tracking *appclaims.TrackingService,
	cloud appclaims.CloudService,
) *ClaimHandler {
	return &ClaimHandler{
		validation:  validation,
		coordinator: coordinator,
		tracking:    tracking,
		cloud:       cloud,
	}
}

// RegisterRoutes registers claim routes on the API group
func (h *ClaimHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/claims")
	{
		group.GET("/formats", h.ListFormats)
		group.POST("/validate", h.Validate)
		group.POST("", h.Submit)
		group.GET("", h.List)
		group.GET("/active", h.ListActive)
		group.GET("/:id", h.Get)
		group.DELETE("/:id", h.Delete)
		group.PUT("/:id/status", h.UpdateStatus)
		group.POST("/:id/correspondence", h.AddCorrespondence)
		group.PUT("/:id/confirmation", h.SetConfirmation)
		group.GET("/:id/timeline", h.Timeline)
	}
}

// ValidateSelectionRequest asks for a pre-submission inspection of the
// selected items against an insurer's requirements
type ValidateSelectionRequest struct {
	Insurer string   `json:"insurer" binding:"required"`
	ItemIDs []string `json:"item_ids" binding:"required,min=1,dive,uuid"`
}

// SubmitClaimRequest creates a claim from the selected items and delivers it
type SubmitClaimRequest struct {
	Insurer        string     `json:"insurer" binding:"required"`
	ClaimType      string     `json:"claim_type" binding:"required"`
	Method         string     `json:"method" binding:"required"`
	PolicyNumber   string     `json:"policy_number" binding:"required,min=1,max=100"`
	ItemIDs        []string   `json:"item_ids" binding:"required,min=1,dive,uuid"`
	IncidentDate   *time.Time `json:"incident_date"`
	EmailRecipient string     `json:"email_recipient" binding:"omitempty,email"`
}

// UpdateStatusRequest moves a claim to a new lifecycle status
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes" binding:"max=2000"`
}

// CorrespondenceRequest appends a communication record to a claim
type CorrespondenceRequest struct {
	Type        string   `json:"type" binding:"required"`
	Direction   string   `json:"direction" binding:"required"`
	Subject     string   `json:"subject" binding:"required,min=1,max=200"`
	Content     string   `json:"content" binding:"max=10000"`
	Attachments []string `json:"attachments"`
}

// ConfirmationRequest records the insurer's confirmation reference
type ConfirmationRequest struct {
	ConfirmationNumber string `json:"confirmation_number" binding:"required,min=1,max=200"`
}

// CorrespondenceResponse is a single communication record
type CorrespondenceResponse struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	Type        string    `json:"type"`
	Direction   string    `json:"direction"`
	Subject     string    `json:"subject"`
	Content     string    `json:"content"`
	Attachments []string  `json:"attachments,omitempty"`
}

// ClaimResponse is a claim submission in API responses
type ClaimResponse struct {
	ID                 string                   `json:"id"`
	ClaimNumber        string                   `json:"claim_number,omitempty"`
	PolicyNumber       string                   `json:"policy_number"`
	Insurer            string                   `json:"insurer"`
	InsurerName        string                   `json:"insurer_name"`
	ClaimType          string                   `json:"claim_type"`
	IncidentDate       *time.Time               `json:"incident_date,omitempty"`
	Method             string                   `json:"method"`
	RequiresManual     bool                     `json:"requires_manual_submission"`
	SubmissionDate     *time.Time               `json:"submission_date,omitempty"`
	Status             string                   `json:"status"`
	StatusSeverity     string                   `json:"status_severity"`
	ConfirmationNumber string                   `json:"confirmation_number,omitempty"`
	ItemIDs            []string                 `json:"item_ids"`
	TotalItemCount     int                      `json:"total_item_count"`
	TotalClaimedValue  string                   `json:"total_claimed_value"`
	ArtifactRef        string                   `json:"artifact_ref,omitempty"`
	ExportFormat       string                   `json:"export_format"`
	ArtifactSize       int64                    `json:"artifact_size,omitempty"`
	FileName           string                   `json:"file_name"`
	Correspondence     []CorrespondenceResponse `json:"correspondence"`
	FollowUpDate       *time.Time               `json:"follow_up_date,omitempty"`
	Notes              string                   `json:"notes,omitempty"`
	CreatedAt          time.Time                `json:"created_at"`
	UpdatedAt          time.Time                `json:"updated_at"`
	Version            int                      `json:"version"`
}

// ExportResponse describes the produced export artifact
type ExportResponse struct {
	FileRef    string `json:"file_ref"`
	Format     string `json:"format"`
	ItemCount  int    `json:"item_count"`
	TotalValue string `json:"total_value"`
	ByteSize   int64  `json:"byte_size"`
}

// SubmitClaimResponse is the outcome of a create-and-submit run
type SubmitClaimResponse struct {
	Claim      ClaimResponse                     `json:"claim"`
	Export     ExportResponse                    `json:"export"`
	Validation *appclaims.ClaimValidationResults `json:"validation"`
}

// FormatResponse describes one supported insurer format
type FormatResponse struct {
	Format            string   `json:"format"`
	DisplayName       string   `json:"display_name"`
	FileExtension     string   `json:"file_extension"`
	SubmissionMethods []string `json:"submission_methods"`
}

func toClaimResponse(claim *claims.ClaimSubmission) ClaimResponse {
	itemIDs := make([]string, len(claim.ItemIDs))
	for i, id := range claim.ItemIDs {
		itemIDs[i] = id.String()
	}
	correspondence := make([]CorrespondenceResponse, len(claim.Correspondence))
	for i, record := range claim.Correspondence {
		correspondence[i] = CorrespondenceResponse{
			ID:          record.ID.String(),
			Date:        record.Date,
			Type:        string(record.Type),
			Direction:   string(record.Direction),
			Subject:     record.Subject,
			Content:     record.Content,
			Attachments: record.Attachments,
		}
	}
	return ClaimResponse{
		ID:                 claim.ID.String(),
		ClaimNumber:        claim.ClaimNumber,
		PolicyNumber:       claim.PolicyNumber,
		Insurer:            string(claim.Insurer),
		InsurerName:        claim.Insurer.DisplayName(),
		ClaimType:          string(claim.ClaimType),
		IncidentDate:       claim.IncidentDate,
		Method:             string(claim.Method),
		RequiresManual:     claim.Method.RequiresManualSubmission(),
		SubmissionDate:     claim.SubmissionDate,
		Status:             string(claim.Status),
		StatusSeverity:     string(claim.Status.Severity()),
		ConfirmationNumber: claim.ConfirmationNumber,
		ItemIDs:            itemIDs,
		TotalItemCount:     claim.TotalItemCount,
		TotalClaimedValue:  claim.TotalClaimedValue.StringFixed(2),
		ArtifactRef:        claim.ArtifactRef,
		ExportFormat:       claim.ExportFormat,
		ArtifactSize:       claim.ArtifactSize,
		FileName:           claim.FileName(),
		Correspondence:     correspondence,
		FollowUpDate:       claim.FollowUpDate,
		Notes:              claim.Notes,
		CreatedAt:          claim.CreatedAt,
		UpdatedAt:          claim.UpdatedAt,
		Version:            claim.Version,
	}
}

func parseItemIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, len(raw))
	for i, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}

// ListFormats returns the supported insurer formats with their allowed
// submission methods
func (h *ClaimHandler) ListFormats(c *gin.Context) {
	formats := make([]FormatResponse, 0, len(claims.AllFormats))
	for _, format := range claims.AllFormats {
		methods := format.SubmissionMethods()
		methodNames := make([]string, len(methods))
		for i, m := range methods {
			methodNames[i] = string(m)
		}
		formats = append(formats, FormatResponse{
			Format:            string(format),
			DisplayName:       format.DisplayName(),
			FileExtension:     format.FileExtension(),
			SubmissionMethods: methodNames,
		})
	}
	h.Success(c, formats)
}

// Validate inspects the selected items against the insurer's requirements
// without creating a claim
func (h *ClaimHandler) Validate(c *gin.Context) {
	var req ValidateSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	format := claims.InsurerFormat(req.Insurer)
	if !format.IsValid() {
		h.BadRequest(c, "Unknown insurer format: "+req.Insurer)
		return
	}

	itemIDs, err := parseItemIDs(req.ItemIDs)
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	results, err := h.validation.InspectSelection(c.Request.Context(), itemIDs, format)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, results)
}

// Submit runs the full claim pipeline: validate, export, persist, deliver
func (h *ClaimHandler) Submit(c *gin.Context) {
	var req SubmitClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	itemIDs, err := parseItemIDs(req.ItemIDs)
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	cfg := appclaims.ClaimConfig{
		Insurer:        claims.InsurerFormat(req.Insurer),
		ClaimType:      claims.ClaimType(req.ClaimType),
		Method:         claims.SubmissionMethod(req.Method),
		ItemIDs:        itemIDs,
		PolicyNumber:   req.PolicyNumber,
		IncidentDate:   req.IncidentDate,
		EmailRecipient: req.EmailRecipient,
		Cloud:          appclaims.NoServiceSelected(),
	}
	if cfg.Method == claims.MethodCloudUpload && h.cloud != nil {
		cfg.Cloud = appclaims.SelectedService(h.cloud)
	}

	outcome, err := h.coordinator.CreateAndSubmit(c.Request.Context(), cfg, nil)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, SubmitClaimResponse{
		Claim: toClaimResponse(outcome.Claim),
		Export: ExportResponse{
			FileRef:    outcome.Export.FileRef,
			Format:     string(outcome.Export.Format),
			ItemCount:  outcome.Export.ItemCount,
			TotalValue: outcome.Export.TotalValue.StringFixed(2),
			ByteSize:   outcome.Export.ByteSize,
		},
		Validation: outcome.Validation,
	})
}

// List returns claims with pagination and filtering
func (h *ClaimHandler) List(c *gin.Context) {
	req := dtoListRequest(c)
	filter := shared.DefaultFilter()
	filter.Page = req.Page
	filter.PageSize = req.PageSize
	filter.OrderBy = req.OrderBy
	filter.OrderDir = req.OrderDir
	filter.Search = req.Search

	for _, key := range []string{"status", "insurer", "claim_type", "method"} {
		if value := c.Query(key); value != "" {
			filter.Filters[key] = value
		}
	}
	if c.Query("active") == "true" {
		filter.Filters["active"] = true
	}

	list, total, err := h.tracking.ListClaims(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]ClaimResponse, len(list))
	for i := range list {
		responses[i] = toClaimResponse(&list[i])
	}
	h.SuccessWithMeta(c, responses, total, filter.Page, filter.PageSize)
}

// ListActive returns claims that still need attention
func (h *ClaimHandler) ListActive(c *gin.Context) {
	list, err := h.tracking.ListActiveClaims(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	responses := make([]ClaimResponse, len(list))
	for i := range list {
		responses[i] = toClaimResponse(&list[i])
	}
	h.Success(c, responses)
}

// Get returns a single claim by ID
func (h *ClaimHandler) Get(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	claim, err := h.tracking.GetClaim(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toClaimResponse(claim))
}

// Delete removes a claim. Deletion is an explicit user action only.
func (h *ClaimHandler) Delete(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	if err := h.tracking.DeleteClaim(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// UpdateStatus moves a claim to a new lifecycle status
func (h *ClaimHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	claim, err := h.tracking.UpdateStatus(c.Request.Context(), id, claims.ClaimStatus(req.Status), req.Notes)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toClaimResponse(claim))
}

// AddCorrespondence appends a communication record to a claim
func (h *ClaimHandler) AddCorrespondence(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req CorrespondenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	claim, err := h.tracking.AddCorrespondence(
		c.Request.Context(),
		id,
		claims.CorrespondenceType(req.Type),
		claims.Direction(req.Direction),
		req.Subject,
		req.Content,
		req.Attachments...,
	)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toClaimResponse(claim))
}

// SetConfirmation records the insurer's confirmation reference
func (h *ClaimHandler) SetConfirmation(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req ConfirmationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	claim, err := h.tracking.SetConfirmationNumber(c.Request.Context(), id, req.ConfirmationNumber)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toClaimResponse(claim))
}

// Timeline returns the claim history oldest first
func (h *ClaimHandler) Timeline(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	timeline, err := h.tracking.Timeline(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, timeline)
}

func (h *ClaimHandler) bindID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid claim ID")
		return uuid.Nil, false
	}
	return id, true
}
