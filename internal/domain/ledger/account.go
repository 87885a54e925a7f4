package ledger

import (
	"strings"

	"github.com/contable/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// AccountKind classifies a ledger account
type AccountKind string

const (
	AccountAsset     AccountKind = "ASSET"
	AccountLiability AccountKind = "LIABILITY"
	AccountEquity    AccountKind = "EQUITY"
	AccountIncome    AccountKind = "INCOME"
	AccountExpense   AccountKind = "EXPENSE"
)

// IsValid checks if the kind is a known AccountKind
func (k AccountKind) IsValid() bool {
	switch k {
	case AccountAsset, AccountLiability, AccountEquity, AccountIncome, AccountExpense:
		return true
	}
	return false
}

// String returns the string representation
func (k AccountKind) String() string {
	return string(k)
}

// Account is one entry of the chart of accounts. Reference data: created
// out of band and read-only to the computation core.
type Account struct {
	ID   uuid.UUID   `json:"id" gorm:"type:uuid;primary_key"`
	Code string      `json:"code" gorm:"type:varchar(20);not null;uniqueIndex"`
	Name string      `json:"name" gorm:"type:varchar(120);not null"`
	Kind AccountKind `json:"kind" gorm:"type:varchar(15);not null;index"`
}

// TableName returns the table name for GORM
func (Account) TableName() string {
	return "accounts"
}

// NewAccount creates a chart-of-accounts entry
func NewAccount(code, name string, kind AccountKind) (*Account, error) {
	if code == "" {
		return nil, shared.NewValidationError("code", "account code is required")
	}
	if name == "" {
		return nil, shared.NewValidationError("name", "account name is required")
	}
	if !kind.IsValid() {
		return nil, shared.NewValidationError("kind", "unknown account kind")
	}
	return &Account{
		ID:   uuid.New(),
		Code: code,
		Name: name,
		Kind: kind,
	}, nil
}

// AccountDirectory resolves an account name to its identifier.
// Resolution is a case-insensitive exact match, no fuzzy matching; an
// unknown name yields AccountNotFoundError.
type AccountDirectory interface {
	Resolve(name string) (uuid.UUID, error)
}

// ChartDirectory is an AccountDirectory built once from a chart of
// accounts. Lookup keys are lowercased account names.
type ChartDirectory struct {
	byName map[string]uuid.UUID
}

// NewChartDirectory builds a directory from the given accounts. When two
// accounts share a name (case-insensitively), the first one wins.
func NewChartDirectory(accounts []Account) *ChartDirectory {
	byName := make(map[string]uuid.UUID, len(accounts))
	for _, a := range accounts {
		key := strings.ToLower(a.Name)
		if _, ok := byName[key]; !ok {
			byName[key] = a.ID
		}
	}
	return &ChartDirectory{byName: byName}
}

// Resolve implements AccountDirectory
func (d *ChartDirectory) Resolve(name string) (uuid.UUID, error) {
	if id, ok := d.byName[strings.ToLower(name)]; ok {
		return id, nil
	}
	return uuid.Nil, shared.NewAccountNotFoundError(name)
}
