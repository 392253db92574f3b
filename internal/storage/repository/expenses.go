package repository

import (
	"context"
	"fmt"

	"github.com/webtechhobbyist/expense-tracker/internal/models"
)

// CreateExpense вставляет новую запись расхода и возвращает её ID.
func (s *Storage) CreateExpense(ctx context.Context, expense models.Expense) (int, error) {
	const op = "storage.CreateExpense"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO expenses (user_id, category, amount, date)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		expense.UserID, expense.Category, expense.Amount, expense.Date).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListExpenses возвращает все расходы пользователя, самые свежие первыми.
func (s *Storage) ListExpenses(ctx context.Context, userID int) ([]*models.Expense, error) {
	const op = "storage.ListExpenses"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, category, amount, date
			  FROM expenses
			  WHERE user_id = $1
			  ORDER BY date DESC, id DESC`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Expense
	for rows.Next() {
		var item models.Expense
		if err := rows.Scan(&item.ID, &item.UserID, &item.Category,
			&item.Amount, &item.Date); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateExpense обновляет расход по паре (id, user_id) и возвращает
// количество изменённых строк. Ноль означает, что записи нет или она
// принадлежит другому пользователю — снаружи эти случаи неразличимы.
func (s *Storage) UpdateExpense(ctx context.Context, expense models.Expense, id, userID int) (int, error) {
	const op = "storage.UpdateExpense"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE expenses
			  SET category = $1, amount = $2, date = $3
			  WHERE id = $4 AND user_id = $5`
	result, err := s.DB.ExecContext(ctx, query,
		expense.Category, expense.Amount, expense.Date, id, userID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveExpense удаляет расход по паре (id, user_id) и возвращает
// количество удалённых строк. Семантика владения та же, что у UpdateExpense.
func (s *Storage) RemoveExpense(ctx context.Context, id, userID int) (int, error) {
	const op = "storage.RemoveExpense"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM expenses WHERE id = $1 AND user_id = $2`
	result, err := s.DB.ExecContext(ctx, query, id, userID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
