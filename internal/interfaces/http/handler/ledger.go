package handler

import (
	"time"

	ledgerapp "github.com/contable/backoffice/internal/application/ledger"
	"github.com/contable/backoffice/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LedgerHandler handles invoice and voucher API endpoints
type LedgerHandler struct {
	BaseHandler
	postingService *ledgerapp.PostingService
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(postingService *ledgerapp.PostingService) *LedgerHandler {
	return &LedgerHandler{postingService: postingService}
}

// RegisterRoutes registers ledger routes
func (h *LedgerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.CreateInvoice)
		invoices.GET("", h.ListInvoices)
		invoices.POST("/import", h.ImportInvoices)
		invoices.POST("/repost", h.RepostUnposted)
		invoices.POST("/:id/repost", h.RepostInvoice)
	}

	fees := rg.Group("/fee-invoices")
	{
		fees.POST("", h.CreateFeeInvoice)
		fees.GET("", h.ListFeeInvoices)
	}

	vouchers := rg.Group("/vouchers")
	{
		vouchers.GET("", h.ListVouchers)
		vouchers.GET("/:id", h.GetVoucher)
		vouchers.POST("/:id/reverse", h.ReverseVoucher)
	}
}

// CreateInvoice records an invoice and attempts to post its voucher
func (h *LedgerHandler) CreateInvoice(c *gin.Context) {
	var req ledgerapp.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	result, err := h.postingService.CreateInvoice(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// ListInvoices returns all stored invoices
func (h *LedgerHandler) ListInvoices(c *gin.Context) {
	invoices, err := h.postingService.ListInvoices(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoices)
}

// ImportInvoices records a batch of parser-produced invoice rows
func (h *LedgerHandler) ImportInvoices(c *gin.Context) {
	var rows []ledgerapp.ImportInvoiceRow
	if err := c.ShouldBindJSON(&rows); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	h.Success(c, h.postingService.ImportInvoices(c.Request.Context(), rows))
}

// RepostInvoice retries voucher synthesis for one unposted invoice
func (h *LedgerHandler) RepostInvoice(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}
	id, _ := uuid.Parse(req.ID)
	result, err := h.postingService.RepostInvoice(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// RepostUnposted retries voucher synthesis for every unposted invoice
func (h *LedgerHandler) RepostUnposted(c *gin.Context) {
	results, err := h.postingService.RepostUnposted(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, results)
}

// CreateFeeInvoice records a fee invoice and attempts to post its voucher
func (h *LedgerHandler) CreateFeeInvoice(c *gin.Context) {
	var req ledgerapp.CreateFeeInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	result, err := h.postingService.CreateFeeInvoice(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// ListFeeInvoices returns all stored fee invoices
func (h *LedgerHandler) ListFeeInvoices(c *gin.Context) {
	fees, err := h.postingService.ListFeeInvoices(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, fees)
}

// ListVouchers returns all vouchers
func (h *LedgerHandler) ListVouchers(c *gin.Context) {
	vouchers, err := h.postingService.ListVouchers(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, vouchers)
}

// GetVoucher returns one voucher with its entries
func (h *LedgerHandler) GetVoucher(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid voucher ID")
		return
	}
	id, _ := uuid.Parse(req.ID)
	voucher, err := h.postingService.GetVoucher(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, voucher)
}

// ReverseVoucherRequest represents a request to reverse a voucher
type ReverseVoucherRequest struct {
	Date        time.Time `json:"date" binding:"required"`
	Description string    `json:"description" binding:"required"`
}

// ReverseVoucher posts the correcting voucher for a stored one
func (h *LedgerHandler) ReverseVoucher(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid voucher ID")
		return
	}
	var req ReverseVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	id, _ := uuid.Parse(uri.ID)
	reversal, err := h.postingService.ReverseVoucher(c.Request.Context(), id, req.Date, req.Description)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, reversal)
}
