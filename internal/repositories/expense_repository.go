package repositories

import (
	"context"
	"database/sql"
	"strings"

	intdb "logisticshub/internal/db"
	"logisticshub/internal/domain"
	"logisticshub/internal/domain/models"
)

type ExpenseRepository struct {
	DB *sql.DB
}

func (r ExpenseRepository) db() *sql.DB { return dbOr(r.DB) }

const expenseColumns = `id, expense_date, category, description, amount, COALESCE(supplier,''), created_at`

func (r ExpenseRepository) List(ctx context.Context, p domain.Period) ([]models.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses`
	args := []any{}
	if from, to, ok := p.Bounds(); ok {
		query += ` WHERE expense_date>=? AND expense_date<?`
		args = append(args, from, to)
	}
	query += ` ORDER BY expense_date DESC, id DESC`

	rows, err := r.db().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Expense{}
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.ExpenseDate, &e.Category, &e.Description, &e.Amount, &e.Supplier, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r ExpenseRepository) Create(ctx context.Context, e models.Expense) (int64, error) {
	return r.InsertWith(ctx, r.db(), e)
}

func (r ExpenseRepository) InsertWith(ctx context.Context, q Execer, e models.Expense) (int64, error) {
	res, err := q.ExecContext(ctx,
		`INSERT INTO expenses (expense_date, category, description, amount, supplier) VALUES (?,?,?,?,?)`,
		e.ExpenseDate, strings.TrimSpace(e.Category), strings.TrimSpace(e.Description), e.Amount, intdb.NullIfEmpty(e.Supplier))
	if err != nil {
		return 0, intdb.TranslateError("expense", err)
	}
	return res.LastInsertId()
}

func (r ExpenseRepository) Update(ctx context.Context, e models.Expense) error {
	db := r.db()
	res, err := db.ExecContext(ctx,
		`UPDATE expenses SET expense_date=?, category=?, description=?, amount=?, supplier=? WHERE id=?`,
		e.ExpenseDate, strings.TrimSpace(e.Category), strings.TrimSpace(e.Description), e.Amount, intdb.NullIfEmpty(e.Supplier), e.ID)
	if err != nil {
		return intdb.TranslateError("expense", err)
	}
	return checkUpdated(ctx, db, res, "expenses", "expense", e.ID)
}

func (r ExpenseRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db().ExecContext(ctx, `DELETE FROM expenses WHERE id=?`, id)
	if err != nil {
		return intdb.TranslateError("expense", err)
	}
	return checkDeleted(res, "expense")
}

// ExpenseLines loads the fields the aggregation needs for the period.
func (r ExpenseRepository) ExpenseLines(ctx context.Context, p domain.Period) ([]domain.ExpenseLine, error) {
	query := `SELECT expense_date, category, description, amount FROM expenses`
	args := []any{}
	if from, to, ok := p.Bounds(); ok {
		query += ` WHERE expense_date>=? AND expense_date<?`
		args = append(args, from, to)
	}

	rows, err := r.db().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.ExpenseLine{}
	for rows.Next() {
		var l domain.ExpenseLine
		if err := rows.Scan(&l.Date, &l.Category, &l.Description, &l.Amount); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
