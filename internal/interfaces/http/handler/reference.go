package handler

import (
	referenceapp "github.com/contable/backoffice/internal/application/reference"
	"github.com/contable/backoffice/internal/domain/shared/valueobject"
	"github.com/contable/backoffice/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// ReferenceHandler handles reference-data API endpoints: the chart of
// accounts, period parameters, tax brackets and tax-identifier checks
type ReferenceHandler struct {
	BaseHandler
	referenceService *referenceapp.Service
}

// NewReferenceHandler creates a new ReferenceHandler
func NewReferenceHandler(referenceService *referenceapp.Service) *ReferenceHandler {
	return &ReferenceHandler{referenceService: referenceService}
}

// RegisterRoutes registers reference-data routes
func (h *ReferenceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.CreateAccount)
		accounts.GET("", h.ListAccounts)
		accounts.GET("/missing", h.MissingAccounts)
	}

	parameters := rg.Group("/parameters")
	{
		parameters.PUT("", h.SetParameter)
		parameters.GET("/:period", h.ListParameters)
	}

	brackets := rg.Group("/brackets")
	{
		brackets.PUT("", h.SetBrackets)
		brackets.GET("/:period", h.ListBrackets)
	}

	rg.GET("/rut/:rut", h.CheckRUT)
}

// CreateAccount adds an account to the chart
func (h *ReferenceHandler) CreateAccount(c *gin.Context) {
	var req referenceapp.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	account, err := h.referenceService.CreateAccount(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, account)
}

// ListAccounts returns the chart of accounts
func (h *ReferenceHandler) ListAccounts(c *gin.Context) {
	accounts, err := h.referenceService.ListAccounts(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, accounts)
}

// MissingAccounts returns the synthesizer account names the chart lacks
func (h *ReferenceHandler) MissingAccounts(c *gin.Context) {
	missing, err := h.referenceService.MissingAccounts(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"missing": missing, "complete": len(missing) == 0})
}

// SetParameter stores one named scalar value for a period
func (h *ReferenceHandler) SetParameter(c *gin.Context) {
	var req referenceapp.SetParameterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	param, err := h.referenceService.SetParameter(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, param)
}

// ListParameters returns the parameters of a period
func (h *ReferenceHandler) ListParameters(c *gin.Context) {
	var req dto.PeriodRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid period, expected YYYY-MM")
		return
	}
	params, err := h.referenceService.ListParameters(c.Request.Context(), req.Period)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, params)
}

// SetBrackets stores a period's bracket table, returning any contiguity
// violations alongside
func (h *ReferenceHandler) SetBrackets(c *gin.Context) {
	var req referenceapp.SetBracketsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	violations, err := h.referenceService.SetBrackets(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"violations": violations})
}

// ListBrackets returns the brackets of a period
func (h *ReferenceHandler) ListBrackets(c *gin.Context) {
	var req dto.PeriodRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid period, expected YYYY-MM")
		return
	}
	brackets, err := h.referenceService.ListBrackets(c.Request.Context(), req.Period)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, brackets)
}

// CheckRUT validates a tax identifier and returns its canonical and
// display forms
func (h *ReferenceHandler) CheckRUT(c *gin.Context) {
	raw := c.Param("rut")
	rut, err := valueobject.NewRUT(raw)
	if err != nil {
		h.Success(c, gin.H{"input": raw, "valid": false})
		return
	}
	h.Success(c, gin.H{
		"input":     raw,
		"valid":     true,
		"compact":   rut.Compact(),
		"formatted": rut.String(),
	})
}
