package payroll

import (
	"github.com/contable/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InstitutionKind classifies a social-security institution
type InstitutionKind string

const (
	// InstitutionPensionFund is an AFP managing mandatory retirement
	// contributions; it charges an administrative rate on top of the
	// statutory 10%
	InstitutionPensionFund InstitutionKind = "PENSION_FUND"
	// InstitutionHealthProvider is a private health insurer (isapre)
	InstitutionHealthProvider InstitutionKind = "HEALTH_PROVIDER"
	// InstitutionPublicHealth is the public health system (Fonasa)
	InstitutionPublicHealth InstitutionKind = "PUBLIC_HEALTH"
	// InstitutionOther covers remaining institutions (mutuales, cajas)
	InstitutionOther InstitutionKind = "OTHER"
)

// IsValid checks if the kind is a known InstitutionKind
func (k InstitutionKind) IsValid() bool {
	switch k {
	case InstitutionPensionFund, InstitutionHealthProvider, InstitutionPublicHealth, InstitutionOther:
		return true
	}
	return false
}

// String returns the string representation
func (k InstitutionKind) String() string {
	return string(k)
}

// Institution is reference data for a pension fund or health provider.
// ContributionRatePercent is the fund's administrative rate in percent
// (1.44 means 1.44%); it is mandatory for pension funds, optional
// otherwise.
type Institution struct {
	ID                      uuid.UUID        `json:"id" gorm:"type:uuid;primary_key"`
	Name                    string           `json:"name" gorm:"type:varchar(120);not null"`
	Kind                    InstitutionKind  `json:"kind" gorm:"type:varchar(20);not null;index"`
	ContributionRatePercent *decimal.Decimal `json:"contribution_rate_percent" gorm:"type:decimal(9,4)"`
}

// TableName returns the table name for GORM
func (Institution) TableName() string {
	return "institutions"
}

// NewInstitution creates an institution, enforcing that pension funds
// carry a contribution rate
func NewInstitution(name string, kind InstitutionKind, ratePercent *decimal.Decimal) (*Institution, error) {
	if name == "" {
		return nil, shared.NewValidationError("name", "institution name is required")
	}
	if !kind.IsValid() {
		return nil, shared.NewValidationError("kind", "unknown institution kind")
	}
	if kind == InstitutionPensionFund && ratePercent == nil {
		return nil, shared.NewValidationError("contribution_rate_percent", "pension funds require a contribution rate")
	}
	return &Institution{
		ID:                      uuid.New(),
		Name:                    name,
		Kind:                    kind,
		ContributionRatePercent: ratePercent,
	}, nil
}

// CanProvideHealth reports whether the institution may appear as an
// employee's health provider
func (i *Institution) CanProvideHealth() bool {
	return i.Kind == InstitutionHealthProvider || i.Kind == InstitutionPublicHealth
}

// findInstitution resolves an institution by id within a reference table
func findInstitution(institutions []Institution, id uuid.UUID) *Institution {
	for i := range institutions {
		if institutions[i].ID == id {
			return &institutions[i]
		}
	}
	return nil
}
