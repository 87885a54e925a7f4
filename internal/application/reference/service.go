package reference

import (
	"context"

	"github.com/contable/backoffice/internal/domain/ledger"
	"github.com/contable/backoffice/internal/domain/tax"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service maintains the reference data the computation core reads: the
// chart of accounts, period parameters and tax brackets
type Service struct {
	accountRepo   ledger.AccountRepository
	parameterRepo tax.ParameterRepository
	bracketRepo   tax.BracketRepository
	logger        *zap.Logger
}

// NewService creates a new reference-data service
func NewService(
	accountRepo ledger.AccountRepository,
	parameterRepo tax.ParameterRepository,
	bracketRepo tax.BracketRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		accountRepo:   accountRepo,
		parameterRepo: parameterRepo,
		bracketRepo:   bracketRepo,
		logger:        logger,
	}
}

// CreateAccountRequest represents a request to create a chart account
type CreateAccountRequest struct {
	Code string `json:"code" binding:"required"`
	Name string `json:"name" binding:"required"`
	Kind string `json:"kind" binding:"required"`
}

// CreateAccount adds an account to the chart
func (s *Service) CreateAccount(ctx context.Context, req CreateAccountRequest) (*ledger.Account, error) {
	account, err := ledger.NewAccount(req.Code, req.Name, ledger.AccountKind(req.Kind))
	if err != nil {
		return nil, err
	}
	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// ListAccounts returns the chart of accounts
func (s *Service) ListAccounts(ctx context.Context) ([]ledger.Account, error) {
	return s.accountRepo.FindAll(ctx)
}

// MissingAccounts returns the synthesizer account names the chart does not
// yet cover. An empty slice means posting can proceed for every document
// kind.
func (s *Service) MissingAccounts(ctx context.Context) ([]string, error) {
	directory, err := s.accountRepo.Directory(ctx)
	if err != nil {
		return nil, err
	}
	return ledger.MissingAccounts(directory), nil
}

// SetParameterRequest represents a request to set a period parameter
type SetParameterRequest struct {
	Period string          `json:"period" binding:"required"`
	Name   string          `json:"name" binding:"required"`
	Value  decimal.Decimal `json:"value" binding:"required"`
}

// SetParameter stores one named scalar value for a period, overwriting any
// prior value
func (s *Service) SetParameter(ctx context.Context, req SetParameterRequest) (*tax.PeriodParameter, error) {
	param, err := tax.NewPeriodParameter(req.Period, tax.ParameterName(req.Name), req.Value)
	if err != nil {
		return nil, err
	}
	if err := s.parameterRepo.Save(ctx, param); err != nil {
		return nil, err
	}
	return param, nil
}

// ListParameters returns the parameters of a period
func (s *Service) ListParameters(ctx context.Context, period string) ([]tax.PeriodParameter, error) {
	return s.parameterRepo.FindByPeriod(ctx, period)
}

// SetBracketsRequest represents a request to replace a period's bracket
// table
type SetBracketsRequest struct {
	Period   string       `json:"period" binding:"required"`
	Brackets []BracketRow `json:"brackets" binding:"required,dive"`
}

// BracketRow is one bracket of a SetBracketsRequest
type BracketRow struct {
	FromUnits   decimal.Decimal  `json:"from_units"`
	ToUnits     *decimal.Decimal `json:"to_units"`
	Rate        decimal.Decimal  `json:"rate"`
	RebateUnits decimal.Decimal  `json:"rebate_units"`
}

// SetBrackets replaces a period's bracket table: the prior table is
// discarded so a corrected upload never mixes with stale rows. Contiguity
// defects are logged and returned but do not reject the table; tax
// selection degrades to first-match on a defective table.
func (s *Service) SetBrackets(ctx context.Context, req SetBracketsRequest) ([]tax.BracketViolation, error) {
	brackets := make([]tax.TaxBracket, 0, len(req.Brackets))
	for _, row := range req.Brackets {
		bracket, err := tax.NewTaxBracket(req.Period, row.FromUnits, row.ToUnits, row.Rate, row.RebateUnits)
		if err != nil {
			return nil, err
		}
		brackets = append(brackets, *bracket)
	}

	violations := tax.ValidateBrackets(brackets, req.Period)
	for _, v := range violations {
		s.logger.Warn("Tax bracket table violation", zap.String("period", v.Period), zap.String("detail", v.Detail))
	}

	if err := s.bracketRepo.ReplaceByPeriod(ctx, req.Period, brackets); err != nil {
		return violations, err
	}
	return violations, nil
}

// ListBrackets returns the brackets of a period
func (s *Service) ListBrackets(ctx context.Context, period string) ([]tax.TaxBracket, error) {
	return s.bracketRepo.FindByPeriod(ctx, period)
}
