package models

import "time"

// Expense представляет собой запись о расходе,
// используемую в бизнес-логике и хранилище.
// Все операции изменения и удаления выполняются только
// владельцем записи (поле UserID).
type Expense struct {
	ID       int       `json:"id"`       // Идентификатор записи
	UserID   int       `json:"-"`        // Владелец записи, наружу не отдается
	Category string    `json:"category"` // Категория расхода
	Amount   float64   `json:"amount"`   // Сумма расхода
	Date     time.Time `json:"date"`     // Дата расхода
}

// DummyExpense используется для приёма данных из JSON-запроса,
// прежде чем конвертировать их в Expense.
// Сумма и дата приходят строками (значения полей формы как есть),
// чтобы их можно было валидировать и парсить вручную.
type DummyExpense struct {
	Category string `json:"category" validate:"required"` // Категория расхода
	Amount   string `json:"amount" validate:"required"`   // Сумма, десятичная строка > 0
	Date     string `json:"date" validate:"required"`     // Дата в формате 2006-01-02
}
