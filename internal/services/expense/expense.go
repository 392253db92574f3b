// Package expense содержит бизнес-логику для управления расходами
// и кеширования их списков.
package expense

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"time"

	"github.com/webtechhobbyist/expense-tracker/internal/lib/sl"
	"github.com/webtechhobbyist/expense-tracker/internal/models"
)

// DateLayout формат дат, принимаемый от клиента (значение input type=date).
const DateLayout = "2006-01-02"

// listCacheTTL время жизни кешированного списка расходов.
const listCacheTTL = 5 * time.Minute

// Ошибки уровня бизнес-логики.
var (
	// ErrExpenseNotFound записи нет или она принадлежит другому пользователю.
	// Эти два случая намеренно неразличимы, чтобы не раскрывать чужие данные.
	ErrExpenseNotFound = errors.New("expense not found")
	// ErrInvalidAmount сумма не парсится или не положительна.
	ErrInvalidAmount = errors.New("amount must be a decimal greater than zero")
	// ErrInvalidDate дата не соответствует формату 2006-01-02.
	ErrInvalidDate = errors.New("date must be in format 2006-01-02")
)

// ExpenseRepository определяет методы для работы с расходами в хранилище.
type ExpenseRepository interface {
	// CreateExpense добавляет новый расход и возвращает его ID.
	CreateExpense(ctx context.Context, expense models.Expense) (int, error)
	// ListExpenses возвращает расходы пользователя, самые свежие первыми.
	ListExpenses(ctx context.Context, userID int) ([]*models.Expense, error)
	// UpdateExpense обновляет расход по паре (id, user_id), возвращает число изменённых строк.
	UpdateExpense(ctx context.Context, expense models.Expense, id, userID int) (int, error)
	// RemoveExpense удаляет расход по паре (id, user_id), возвращает число удалённых строк.
	RemoveExpense(ctx context.Context, id, userID int) (int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// ExpenseService реализует бизнес-логику работы с расходами, включая кеширование.
type ExpenseService struct {
	repo  ExpenseRepository
	cache Cache
	log   *slog.Logger
}

// NewExpenseService создает новый экземпляр ExpenseService.
func NewExpenseService(repo ExpenseRepository, cache Cache, log *slog.Logger) *ExpenseService {
	return &ExpenseService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

func listCacheKey(userID int) string {
	return fmt.Sprintf("expenses:%d", userID)
}

// parse превращает DTO запроса в доменную модель.
// Сумма обязана быть конечным десятичным числом > 0, дата — валидной ISO-датой.
// ParseFloat принимает "NaN" и "Inf", но NaN не сериализуется в JSON,
// а бесконечность не является суммой — такие значения отклоняются до записи.
func parse(req models.DummyExpense) (models.Expense, error) {
	amount, err := strconv.ParseFloat(req.Amount, 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return models.Expense{}, ErrInvalidAmount
	}
	date, err := time.Parse(DateLayout, req.Date)
	if err != nil {
		return models.Expense{}, ErrInvalidDate
	}
	return models.Expense{
		Category: req.Category,
		Amount:   amount,
		Date:     date,
	}, nil
}

// Create создает новый расход пользователя и возвращает его ID.
// Кешированный список расходов пользователя сбрасывается.
func (s *ExpenseService) Create(ctx context.Context, userID int, req models.DummyExpense) (int, error) {
	entry, err := parse(req)
	if err != nil {
		return 0, err
	}
	entry.UserID = userID

	id, err := s.repo.CreateExpense(ctx, entry)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new expense", slog.Int("id", id), slog.Int("user_id", userID))

	s.invalidateList(userID)
	return id, nil
}

// List возвращает все расходы пользователя, используя кеш или репозиторий.
// Пустой список — валидный результат, кешируется наравне с непустым.
func (s *ExpenseService) List(ctx context.Context, userID int) ([]*models.Expense, error) {
	cacheKey := listCacheKey(userID)

	var cached []*models.Expense
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read expense list from cache", slog.String("key", cacheKey), sl.Err(err))
	}
	if found {
		return cached, nil
	}

	result, err := s.repo.ListExpenses(ctx, userID)
	if err != nil {
		return nil, err
	}
	if result == nil {
		result = []*models.Expense{}
	}

	if err := s.cache.Set(cacheKey, result, listCacheTTL); err != nil {
		s.log.Warn("failed to cache expense list", slog.String("key", cacheKey), sl.Err(err))
	}
	return result, nil
}

// Update обновляет расход пользователя. Ноль изменённых строк означает,
// что записи нет или она чужая, — наружу это ErrExpenseNotFound.
func (s *ExpenseService) Update(ctx context.Context, req models.DummyExpense, id, userID int) error {
	entry, err := parse(req)
	if err != nil {
		return err
	}

	count, err := s.repo.UpdateExpense(ctx, entry, id, userID)
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrExpenseNotFound
	}
	s.log.Info("updated expense", slog.Int("id", id), slog.Int("user_id", userID))

	s.invalidateList(userID)
	return nil
}

// Remove удаляет расход пользователя с той же семантикой владения, что и Update.
func (s *ExpenseService) Remove(ctx context.Context, id, userID int) error {
	count, err := s.repo.RemoveExpense(ctx, id, userID)
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrExpenseNotFound
	}
	s.log.Info("removed expense", slog.Int("id", id), slog.Int("user_id", userID))

	s.invalidateList(userID)
	return nil
}

func (s *ExpenseService) invalidateList(userID int) {
	cacheKey := listCacheKey(userID)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate expense list cache", slog.String("key", cacheKey), sl.Err(err))
	}
}
