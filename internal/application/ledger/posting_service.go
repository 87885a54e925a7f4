package ledger

import (
	"context"
	"time"

	"github.com/contable/backoffice/internal/domain/ledger"
	"github.com/contable/backoffice/internal/domain/shared"
	"github.com/contable/backoffice/internal/domain/tax"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PostingService records invoices and synthesizes their ledger vouchers
type PostingService struct {
	invoiceRepo   ledger.InvoiceRepository
	feeRepo       ledger.FeeInvoiceRepository
	voucherRepo   ledger.VoucherRepository
	accountRepo   ledger.AccountRepository
	parameterRepo tax.ParameterRepository
	logger        *zap.Logger
}

// NewPostingService creates a new posting service
func NewPostingService(
	invoiceRepo ledger.InvoiceRepository,
	feeRepo ledger.FeeInvoiceRepository,
	voucherRepo ledger.VoucherRepository,
	accountRepo ledger.AccountRepository,
	parameterRepo tax.ParameterRepository,
	logger *zap.Logger,
) *PostingService {
	return &PostingService{
		invoiceRepo:   invoiceRepo,
		feeRepo:       feeRepo,
		voucherRepo:   voucherRepo,
		accountRepo:   accountRepo,
		parameterRepo: parameterRepo,
		logger:        logger,
	}
}

// CreateInvoiceRequest represents a request to record an invoice. Tax is
// optional: a document that omits it gets round(net × VAT_RATE) for the
// invoice date's period.
type CreateInvoiceRequest struct {
	Kind             string    `json:"kind" binding:"required"`
	Number           string    `json:"number" binding:"required"`
	CounterpartyRUT  string    `json:"counterparty_rut" binding:"required,rut"`
	CounterpartyName string    `json:"counterparty_name" binding:"required"`
	Date             time.Time `json:"date" binding:"required"`
	Net              int64     `json:"net"`
	Tax              *int64    `json:"tax"`
}

// PostingResult is the outcome of recording an invoice. Recording and
// posting are two phases: the invoice persists even when voucher synthesis
// fails, and PostError carries the reason so the caller can fix the chart
// and repost.
type PostingResult struct {
	Invoice   *ledger.Invoice `json:"invoice"`
	VoucherID *uuid.UUID      `json:"voucher_id,omitempty"`
	PostError string          `json:"post_error,omitempty"`
}

// CreateInvoice validates and stores an invoice, then attempts to
// synthesize and store its voucher
func (s *PostingService) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*PostingResult, error) {
	taxAmount, err := s.invoiceTax(ctx, req)
	if err != nil {
		return nil, err
	}
	invoice, err := ledger.NewInvoice(
		ledger.InvoiceKind(req.Kind),
		req.Number,
		req.CounterpartyRUT,
		req.CounterpartyName,
		req.Date,
		req.Net,
		taxAmount,
	)
	if err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}
	return s.post(ctx, invoice), nil
}

// invoiceTax returns the document's explicit tax amount, or derives it
// from the period's VAT rate when the document carries none
func (s *PostingService) invoiceTax(ctx context.Context, req CreateInvoiceRequest) (int64, error) {
	if req.Tax != nil {
		return *req.Tax, nil
	}
	period := req.Date.Format("2006-01")
	params, err := s.parameterRepo.FindByPeriod(ctx, period)
	if err != nil {
		return 0, err
	}
	values, err := tax.ResolveParameters(params, period, tax.ParamVATRate)
	if err != nil {
		return 0, err
	}
	return values[tax.ParamVATRate].Mul(decimal.NewFromInt(req.Net)).Round(0).IntPart(), nil
}

// post synthesizes and stores the voucher of a recorded invoice, linking
// the two on success. Synthesis failure is captured in the result, never
// returned: the invoice already exists and stays retryable.
func (s *PostingService) post(ctx context.Context, invoice *ledger.Invoice) *PostingResult {
	result := &PostingResult{Invoice: invoice}

	directory, err := s.accountRepo.Directory(ctx)
	if err != nil {
		result.PostError = err.Error()
		return result
	}
	voucher, err := ledger.FromInvoice(invoice, directory)
	if err != nil {
		s.logger.Warn("Invoice posting failed",
			zap.String("number", invoice.Number),
			zap.Error(err))
		result.PostError = err.Error()
		return result
	}
	if err := s.voucherRepo.Save(ctx, voucher); err != nil {
		result.PostError = err.Error()
		return result
	}

	invoice.VoucherID = &voucher.ID
	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		result.PostError = err.Error()
		return result
	}
	result.VoucherID = &voucher.ID
	return result
}

// RepostInvoice retries voucher synthesis for a stored, unposted invoice
func (s *PostingService) RepostInvoice(ctx context.Context, id uuid.UUID) (*PostingResult, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice.IsPosted() {
		return nil, shared.ErrAlreadyExists
	}
	return s.post(ctx, invoice), nil
}

// RepostUnposted retries voucher synthesis for every unposted invoice
func (s *PostingService) RepostUnposted(ctx context.Context) ([]PostingResult, error) {
	invoices, err := s.invoiceRepo.FindUnposted(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]PostingResult, 0, len(invoices))
	for i := range invoices {
		results = append(results, *s.post(ctx, &invoices[i]))
	}
	return results, nil
}

// RowStatusError is the parser's mark for a row it could not produce.
// Marked rows are echoed back in the results and never recorded.
const RowStatusError = "error"

// ImportInvoiceRow is one parser-produced invoice row. The parser
// pre-classifies rows (ok, error); only error rows are binding here.
// No binding tags: a parser-rejected row may carry arbitrary junk.
type ImportInvoiceRow struct {
	Status           string    `json:"status"`
	Error            string    `json:"error,omitempty"`
	Kind             string    `json:"kind"`
	Number           string    `json:"number"`
	CounterpartyRUT  string    `json:"counterparty_rut"`
	CounterpartyName string    `json:"counterparty_name"`
	Date             time.Time `json:"date"`
	Net              int64     `json:"net"`
	Tax              *int64    `json:"tax"`
}

// ImportInvoices records a batch of invoices. Rows the parser marked as
// error are skipped and echoed back; the rest succeed or fail
// individually, and a row whose voucher could not be synthesized still
// counts as recorded and carries its posting error.
func (s *PostingService) ImportInvoices(ctx context.Context, rows []ImportInvoiceRow) []ImportInvoiceResult {
	results := make([]ImportInvoiceResult, 0, len(rows))
	for i, row := range rows {
		if row.Status == RowStatusError {
			reason := row.Error
			if reason == "" {
				reason = "rejected by the import parser"
			}
			results = append(results, ImportInvoiceResult{Row: i, Number: row.Number, Error: reason})
			continue
		}

		posting, err := s.CreateInvoice(ctx, CreateInvoiceRequest{
			Kind:             row.Kind,
			Number:           row.Number,
			CounterpartyRUT:  row.CounterpartyRUT,
			CounterpartyName: row.CounterpartyName,
			Date:             row.Date,
			Net:              row.Net,
			Tax:              row.Tax,
		})
		if err != nil {
			results = append(results, ImportInvoiceResult{Row: i, Number: row.Number, Error: err.Error()})
			continue
		}
		results = append(results, ImportInvoiceResult{
			Row:     i,
			Number:  posting.Invoice.Number,
			Posting: posting,
		})
	}
	return results
}

// ImportInvoiceResult reports the outcome of one imported invoice row
type ImportInvoiceResult struct {
	Row     int            `json:"row"`
	Number  string         `json:"number,omitempty"`
	Posting *PostingResult `json:"posting,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// CreateFeeInvoiceRequest represents a request to record a fee invoice
type CreateFeeInvoiceRequest struct {
	Number     string    `json:"number" binding:"required"`
	IssuerRUT  string    `json:"issuer_rut" binding:"required,rut"`
	IssuerName string    `json:"issuer_name" binding:"required"`
	Date       time.Time `json:"date" binding:"required"`
	Gross      int64     `json:"gross" binding:"required"`
	Retention  int64     `json:"retention"`
}

// FeePostingResult is the two-phase outcome of recording a fee invoice
type FeePostingResult struct {
	FeeInvoice *ledger.FeeInvoice `json:"fee_invoice"`
	VoucherID  *uuid.UUID         `json:"voucher_id,omitempty"`
	PostError  string             `json:"post_error,omitempty"`
}

// CreateFeeInvoice validates and stores a fee invoice, then attempts to
// synthesize and store its voucher
func (s *PostingService) CreateFeeInvoice(ctx context.Context, req CreateFeeInvoiceRequest) (*FeePostingResult, error) {
	fee, err := ledger.NewFeeInvoice(req.Number, req.IssuerRUT, req.IssuerName, req.Date, req.Gross, req.Retention)
	if err != nil {
		return nil, err
	}
	if err := s.feeRepo.Save(ctx, fee); err != nil {
		return nil, err
	}

	result := &FeePostingResult{FeeInvoice: fee}
	directory, err := s.accountRepo.Directory(ctx)
	if err != nil {
		result.PostError = err.Error()
		return result, nil
	}
	voucher, err := ledger.FromFeeInvoice(fee, directory)
	if err != nil {
		s.logger.Warn("Fee invoice posting failed",
			zap.String("number", fee.Number),
			zap.Error(err))
		result.PostError = err.Error()
		return result, nil
	}
	if err := s.voucherRepo.Save(ctx, voucher); err != nil {
		result.PostError = err.Error()
		return result, nil
	}

	fee.VoucherID = &voucher.ID
	if err := s.feeRepo.Save(ctx, fee); err != nil {
		result.PostError = err.Error()
		return result, nil
	}
	result.VoucherID = &voucher.ID
	return result, nil
}

// ListInvoices returns all stored invoices
func (s *PostingService) ListInvoices(ctx context.Context) ([]ledger.Invoice, error) {
	return s.invoiceRepo.FindAll(ctx)
}

// ListFeeInvoices returns all stored fee invoices
func (s *PostingService) ListFeeInvoices(ctx context.Context) ([]ledger.FeeInvoice, error) {
	return s.feeRepo.FindAll(ctx)
}

// GetVoucher returns one voucher with its entries
func (s *PostingService) GetVoucher(ctx context.Context, id uuid.UUID) (*ledger.Voucher, error) {
	return s.voucherRepo.FindByID(ctx, id)
}

// ListVouchers returns all vouchers
func (s *PostingService) ListVouchers(ctx context.Context) ([]ledger.Voucher, error) {
	return s.voucherRepo.FindAll(ctx)
}

// ReverseVoucher posts the correcting voucher for a stored one
func (s *PostingService) ReverseVoucher(ctx context.Context, id uuid.UUID, date time.Time, description string) (*ledger.Voucher, error) {
	original, err := s.voucherRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	reversal, err := original.Reversed(date, description)
	if err != nil {
		return nil, err
	}
	if err := s.voucherRepo.Save(ctx, reversal); err != nil {
		return nil, err
	}
	s.logger.Info("Voucher reversed",
		zap.String("original", original.ID.String()),
		zap.String("reversal", reversal.ID.String()))
	return reversal, nil
}
