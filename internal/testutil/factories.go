package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/repository"
)

// TestPasswordHash is the stored hash of users created by UserBuilder. It is
// not a valid argon2id hash; use the UserService to create users that log in.
const TestPasswordHash = "$argon2id$v=19$m=1024,t=1,p=1$c2FsdHNhbHQ$aGFzaGhhc2g"

// UserBuilder provides a fluent interface for creating test users.
//
// Example usage:
//
//	// Simple creation with defaults
//	user := testutil.NewUser().Build(t, db)
//
//	// Customized user
//	user := testutil.NewUser().
//	    WithUsername("alice").
//	    WithEmail("alice@example.com").
//	    Build(t, db)
type UserBuilder struct {
	ID        string
	Username  string
	Name      *string
	Email     *string
	CreatedAt time.Time
}

// NewUser creates a UserBuilder with sensible defaults.
func NewUser() *UserBuilder {
	return &UserBuilder{
		ID:        MakeID(),
		Username:  MakeUsername("user"),
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
}

// WithID sets a custom ID.
func (b *UserBuilder) WithID(id string) *UserBuilder {
	b.ID = id
	return b
}

// WithUsername sets a custom username.
func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.Username = username
	return b
}

// WithName sets a display name.
func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.Name = &name
	return b
}

// WithEmail sets an email address.
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.Email = &email
	return b
}

// Build creates the user in the database and returns it.
func (b *UserBuilder) Build(t *testing.T, db *sql.DB) model.User {
	t.Helper()

	u := model.User{
		ID:        b.ID,
		Username:  b.Username,
		Password:  TestPasswordHash,
		Name:      b.Name,
		Email:     b.Email,
		CreatedAt: b.CreatedAt,
	}

	if err := repository.NewUserRepository(db).InsertUser(context.Background(), &u); err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return u
}

// PortfolioBuilder provides a fluent interface for creating test portfolios.
//
// Example usage:
//
//	user := testutil.NewUser().Build(t, db)
//	portfolio := testutil.NewPortfolio(user.ID).
//	    WithName("Custom Portfolio").
//	    WithTotalValue("2500.00").
//	    Inactive().
//	    Build(t, db)
type PortfolioBuilder struct {
	ID          string
	UserID      string
	Name        string
	Description string
	TotalValue  decimal.Decimal
	IsActive    bool
	CreatedAt   time.Time
}

// NewPortfolio creates a PortfolioBuilder with sensible defaults.
func NewPortfolio(userID string) *PortfolioBuilder {
	return &PortfolioBuilder{
		ID:          MakeID(),
		UserID:      userID,
		Name:        MakePortfolioName("Test Portfolio"),
		Description: "Test description",
		TotalValue:  decimal.Zero,
		IsActive:    true,
		CreatedAt:   time.Now().UTC().Truncate(time.Microsecond),
	}
}

// WithID sets a custom ID.
func (b *PortfolioBuilder) WithID(id string) *PortfolioBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *PortfolioBuilder) WithName(name string) *PortfolioBuilder {
	b.Name = name
	return b
}

// WithDescription sets a custom description.
func (b *PortfolioBuilder) WithDescription(desc string) *PortfolioBuilder {
	b.Description = desc
	return b
}

// WithTotalValue sets the total value from a decimal string.
func (b *PortfolioBuilder) WithTotalValue(value string) *PortfolioBuilder {
	b.TotalValue = decimal.RequireFromString(value)
	return b
}

// Inactive marks the portfolio as inactive.
func (b *PortfolioBuilder) Inactive() *PortfolioBuilder {
	b.IsActive = false
	return b
}

// Build creates the portfolio in the database and returns it.
func (b *PortfolioBuilder) Build(t *testing.T, db *sql.DB) model.Portfolio {
	t.Helper()

	p := model.Portfolio{
		ID:          b.ID,
		UserID:      b.UserID,
		Name:        b.Name,
		Description: b.Description,
		TotalValue:  b.TotalValue,
		IsActive:    b.IsActive,
		CreatedAt:   b.CreatedAt,
	}

	if err := repository.NewPortfolioRepository(db).InsertPortfolio(context.Background(), &p); err != nil {
		t.Fatalf("Failed to create test portfolio: %v", err)
	}

	return p
}

// Convenience functions

// CreatePortfolio creates a user and a portfolio with the given name owned by it.
//
// Example usage:
//
//	portfolio := testutil.CreatePortfolio(t, db, "My Portfolio")
func CreatePortfolio(t *testing.T, db *sql.DB, name string) model.Portfolio {
	t.Helper()
	user := NewUser().Build(t, db)
	return NewPortfolio(user.ID).WithName(name).Build(t, db)
}

// InvestmentBuilder provides a fluent interface for creating test investments.
//
// Example usage:
//
//	inv := testutil.NewInvestment(portfolio.ID).
//	    WithAmount("1000.00").
//	    WithPurchaseDate(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)).
//	    Build(t, db)
type InvestmentBuilder struct {
	ID           string
	PortfolioID  string
	Name         string
	Type         string
	RiskLevel    string
	Amount       decimal.Decimal
	CurrentValue decimal.Decimal
	PurchaseDate time.Time
	IsActive     bool
}

// NewInvestment creates an InvestmentBuilder with sensible defaults.
func NewInvestment(portfolioID string) *InvestmentBuilder {
	return &InvestmentBuilder{
		ID:           MakeID(),
		PortfolioID:  portfolioID,
		Name:         MakeInvestmentName("Test Investment"),
		Type:         "stock",
		RiskLevel:    "medium",
		Amount:       decimal.RequireFromString("100.00"),
		CurrentValue: decimal.RequireFromString("110.00"),
		PurchaseDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		IsActive:     true,
	}
}

// WithName sets a custom name.
func (b *InvestmentBuilder) WithName(name string) *InvestmentBuilder {
	b.Name = name
	return b
}

// WithAmount sets the invested amount from a decimal string.
func (b *InvestmentBuilder) WithAmount(amount string) *InvestmentBuilder {
	b.Amount = decimal.RequireFromString(amount)
	return b
}

// WithCurrentValue sets the current value from a decimal string.
func (b *InvestmentBuilder) WithCurrentValue(value string) *InvestmentBuilder {
	b.CurrentValue = decimal.RequireFromString(value)
	return b
}

// WithPurchaseDate sets the purchase date.
func (b *InvestmentBuilder) WithPurchaseDate(date time.Time) *InvestmentBuilder {
	b.PurchaseDate = date
	return b
}

// Inactive marks the investment as inactive.
func (b *InvestmentBuilder) Inactive() *InvestmentBuilder {
	b.IsActive = false
	return b
}

// Build creates the investment in the database and returns it.
func (b *InvestmentBuilder) Build(t *testing.T, db *sql.DB) model.Investment {
	t.Helper()

	inv := model.Investment{
		ID:           b.ID,
		PortfolioID:  b.PortfolioID,
		Name:         b.Name,
		Type:         b.Type,
		RiskLevel:    b.RiskLevel,
		Amount:       b.Amount,
		CurrentValue: b.CurrentValue,
		PurchaseDate: model.DateOf(b.PurchaseDate),
		IsActive:     b.IsActive,
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}

	if err := repository.NewInvestmentRepository(db).InsertInvestment(context.Background(), &inv); err != nil {
		t.Fatalf("Failed to create test investment: %v", err)
	}

	return inv
}

// TransactionBuilder provides a fluent interface for creating test transactions.
//
// Example usage:
//
//	tx := testutil.NewTransaction(portfolio.ID).
//	    WithInvestment(inv.ID).
//	    WithType("sell").
//	    WithAmount("50.00").
//	    WithDate(time.Now().AddDate(0, 0, -1)).
//	    Build(t, db)
type TransactionBuilder struct {
	ID              string
	PortfolioID     string
	InvestmentID    *string
	TransactionType string
	Amount          decimal.Decimal
	Notes           string
	Date            time.Time
}

// NewTransaction creates a TransactionBuilder with sensible defaults.
func NewTransaction(portfolioID string) *TransactionBuilder {
	return &TransactionBuilder{
		ID:              MakeID(),
		PortfolioID:     portfolioID,
		TransactionType: "buy",
		Amount:          decimal.RequireFromString("100.00"),
		Date:            time.Now().UTC().Truncate(time.Microsecond),
	}
}

// WithID sets a custom ID.
func (b *TransactionBuilder) WithID(id string) *TransactionBuilder {
	b.ID = id
	return b
}

// WithInvestment links the transaction to an investment.
func (b *TransactionBuilder) WithInvestment(investmentID string) *TransactionBuilder {
	b.InvestmentID = &investmentID
	return b
}

// WithDate sets the transaction date.
func (b *TransactionBuilder) WithDate(date time.Time) *TransactionBuilder {
	b.Date = date.UTC().Truncate(time.Microsecond)
	return b
}

// WithType sets the transaction type.
func (b *TransactionBuilder) WithType(txType string) *TransactionBuilder {
	b.TransactionType = txType
	return b
}

// WithAmount sets the amount from a decimal string.
func (b *TransactionBuilder) WithAmount(amount string) *TransactionBuilder {
	b.Amount = decimal.RequireFromString(amount)
	return b
}

// WithNotes sets free-form notes.
func (b *TransactionBuilder) WithNotes(notes string) *TransactionBuilder {
	b.Notes = notes
	return b
}

// Build creates the transaction in the database and returns it.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	tx := model.Transaction{
		ID:              b.ID,
		PortfolioID:     b.PortfolioID,
		InvestmentID:    b.InvestmentID,
		TransactionType: b.TransactionType,
		Amount:          b.Amount,
		Notes:           b.Notes,
		Date:            b.Date,
	}

	if err := repository.NewTransactionRepository(db).InsertTransaction(context.Background(), &tx); err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}

	return tx
}

// PerformanceBuilder provides a fluent interface for creating test performance snapshots.
//
// Example usage:
//
//	snap := testutil.NewPerformance(portfolio.ID).
//	    WithDate(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)).
//	    WithTotalValue("1050.00").
//	    Build(t, db)
type PerformanceBuilder struct {
	ID               string
	PortfolioID      string
	Date             time.Time
	TotalValue       decimal.Decimal
	DailyChange      decimal.NullDecimal
	PercentageChange decimal.NullDecimal
}

// NewPerformance creates a PerformanceBuilder dated today with a zero total value.
func NewPerformance(portfolioID string) *PerformanceBuilder {
	return &PerformanceBuilder{
		ID:          MakeID(),
		PortfolioID: portfolioID,
		Date:        model.Today(),
		TotalValue:  decimal.Zero,
	}
}

// WithDate sets the snapshot date.
func (b *PerformanceBuilder) WithDate(date time.Time) *PerformanceBuilder {
	b.Date = model.DateOf(date)
	return b
}

// WithTotalValue sets the total value from a decimal string.
func (b *PerformanceBuilder) WithTotalValue(value string) *PerformanceBuilder {
	b.TotalValue = decimal.RequireFromString(value)
	return b
}

// WithDailyChange sets the daily change from a decimal string.
func (b *PerformanceBuilder) WithDailyChange(value string) *PerformanceBuilder {
	b.DailyChange = decimal.NewNullDecimal(decimal.RequireFromString(value))
	return b
}

// Build creates the snapshot in the database and returns it.
func (b *PerformanceBuilder) Build(t *testing.T, db *sql.DB) model.Performance {
	t.Helper()

	p := model.Performance{
		ID:               b.ID,
		PortfolioID:      b.PortfolioID,
		Date:             b.Date,
		TotalValue:       b.TotalValue,
		DailyChange:      b.DailyChange,
		PercentageChange: b.PercentageChange,
	}

	if err := repository.NewPerformanceRepository(db).InsertPerformance(context.Background(), &p); err != nil {
		t.Fatalf("Failed to create test performance: %v", err)
	}

	return p
}
