package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/ledger"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// ExpenseUseCase registra y elimina gastos. Los gastos no tocan el stock.
type ExpenseUseCase struct {
	repo     repository.ExpenseRepository
	userRepo repository.UserRepository
	cache    inventory.CacheInvalidator
	log      zerolog.Logger
	now      func() time.Time
}

// NewExpenseUseCase construye el caso de uso. cache puede ser nil.
func NewExpenseUseCase(
	repo repository.ExpenseRepository,
	userRepo repository.UserRepository,
	cache inventory.CacheInvalidator,
	log zerolog.Logger,
) *ExpenseUseCase {
	return &ExpenseUseCase{repo: repo, userRepo: userRepo, cache: cache, log: log, now: time.Now}
}

// AddExpenseInput entrada para registrar un gasto.
type AddExpenseInput struct {
	Description string
	Amount      decimal.Decimal
	Category    string
	CreatedBy   string
}

// NormalizeCategory lleva la categoría a su forma canónica ("supplies" -> "Supplies").
// Devuelve ok=false si no pertenece al conjunto conocido.
func NormalizeCategory(raw string) (string, bool) {
	c := cases.Title(language.English).String(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range entity.ExpenseCategories {
		if c == known {
			return known, true
		}
	}
	return "", false
}

// AddExpense valida y agrega un gasto al libro.
func (uc *ExpenseUseCase) AddExpense(ctx context.Context, input AddExpenseInput) (*entity.Expense, error) {
	if !input.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, domain.ErrInvalidInput
	}
	category, ok := NormalizeCategory(input.Category)
	if !ok {
		return nil, domain.ErrInvalidInput
	}

	expense := &entity.Expense{
		ID:          uuid.Must(uuid.NewV7()).String(),
		Description: description,
		Amount:      input.Amount,
		Category:    category,
		Timestamp:   uc.now().UTC(),
		CreatedBy:   input.CreatedBy,
	}
	if err := uc.repo.Append(ctx, expense); err != nil {
		return nil, err
	}

	uc.invalidate(ctx)
	uc.log.Info().
		Str("expense_id", expense.ID).
		Str("category", expense.Category).
		Str("amount", expense.Amount.StringFixed(2)).
		Msg("gasto registrado")
	return expense, nil
}

// RemoveExpense elimina un gasto; ErrExpenseNotFound si no existe.
func (uc *ExpenseUseCase) RemoveExpense(ctx context.Context, id string) error {
	removed, err := uc.repo.Remove(ctx, id)
	if err != nil {
		return err
	}
	if removed == nil {
		return domain.ErrExpenseNotFound
	}
	uc.invalidate(ctx)
	uc.log.Info().Str("expense_id", id).Msg("gasto eliminado")
	return nil
}

// List lista gastos filtrados con el nombre de quien los registró.
func (uc *ExpenseUseCase) List(ctx context.Context, filter repository.ExpenseFilter) (*dto.ExpenseListResponse, error) {
	if filter.Category != "" {
		category, ok := NormalizeCategory(filter.Category)
		if !ok {
			return nil, domain.ErrInvalidInput
		}
		filter.Category = category
	}
	expenses, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}

	items := make([]dto.ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		name, ok := names[e.CreatedBy]
		if !ok {
			name = ledger.UnknownLabel
		}
		items = append(items, dto.ToExpenseResponse(e, name))
	}
	return &dto.ExpenseListResponse{Items: items, Total: ledger.TotalExpenses(expenses)}, nil
}

func (uc *ExpenseUseCase) invalidate(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Invalidate(ctx); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo invalidar el caché de snapshots")
	}
}
