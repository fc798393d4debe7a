package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"logisticshub/internal/domain"
	"logisticshub/internal/domain/models"
	"logisticshub/internal/ingest"
	"logisticshub/internal/repositories"
	"logisticshub/internal/utils"
)

const notesShipmentPrefix = "Contenedor: "

// TripCandidate is an imported row waiting for confirmation.
type TripCandidate struct {
	Line        int             `json:"line"`
	TripDate    string          `json:"trip_date"`
	ClientID    int64           `json:"client_id"`
	RouteID     int64           `json:"route_id"`
	Origin      string          `json:"origin"`
	Destination string          `json:"destination"`
	Shipment    string          `json:"shipment"`
	Notes       string          `json:"notes"`
	Amount      decimal.Decimal `json:"amount"`
	PriceSource PriceSource     `json:"price_source"`
	NeedsReview bool            `json:"needs_review"`
}

type TripPreview struct {
	Format        string            `json:"format"`
	ClientID      int64             `json:"client_id"`
	Candidates    []TripCandidate   `json:"candidates"`
	Errors        []ingest.RowError `json:"errors"`
	DroppedNoDate int               `json:"dropped_no_date"`
	CreatedRoutes []string          `json:"created_routes"`
	TotalAmount   decimal.Decimal   `json:"total_amount"`
}

type BatchResult struct {
	Inserted          int               `json:"inserted"`
	SkippedDuplicates int               `json:"skipped_duplicates"`
	SkippedPayroll    int               `json:"skipped_payroll,omitempty"`
	Failed            int               `json:"failed"`
	Errors            []ingest.RowError `json:"errors"`
}

type ExpenseCandidate struct {
	Line        int             `json:"line"`
	ExpenseDate string          `json:"expense_date"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Supplier    string          `json:"supplier"`
}

type ExpensePreview struct {
	Candidates         []ExpenseCandidate `json:"candidates"`
	Errors             []ingest.RowError  `json:"errors"`
	DroppedMissing     int                `json:"dropped_missing"`
	SkippedPayroll     int                `json:"skipped_payroll"`
	DroppedNonPositive int                `json:"dropped_non_positive"`
	TotalAmount        decimal.Decimal    `json:"total_amount"`
}

// ImportService runs the spreadsheet pipelines. Preview never writes trips or
// expenses; it may create routes. Commit inserts each row in its own
// transaction so one bad row does not undo the others.
type ImportService struct {
	Clients  repositories.ClientRepository
	Trips    repositories.TripRepository
	Expenses repositories.ExpenseRepository
	Routes   RouteService
	Pricing  PricingService

	RequestID string
}

func (s ImportService) PreviewTrips(ctx context.Context, session domain.Session, formatName string, clientID int64, file io.Reader) (TripPreview, error) {
	format, err := ingest.Lookup(formatName)
	if err != nil {
		return TripPreview{}, err
	}
	if format.Kind != ingest.KindTrips {
		return TripPreview{}, domain.ValidationError{Field: "format", Msg: format.Name + " is not a trip format"}
	}
	if clientID <= 0 {
		return TripPreview{}, domain.ValidationError{Field: "client_id", Msg: "required"}
	}
	if _, err := s.Clients.Get(ctx, clientID); err != nil {
		return TripPreview{}, err
	}

	table, err := ingest.ReadTable(file, format)
	if err != nil {
		return TripPreview{}, err
	}
	parsed := ingest.ParseTrips(table)

	out := TripPreview{
		Format:        format.Name,
		ClientID:      clientID,
		Candidates:    []TripCandidate{},
		Errors:        parsed.Errors,
		DroppedNoDate: parsed.DroppedNoDate,
		CreatedRoutes: []string{},
	}
	if out.Errors == nil {
		out.Errors = []ingest.RowError{}
	}

	for _, row := range parsed.Rows {
		routeID, created, err := s.Routes.ResolveOrCreate(ctx, row.Origin, row.Destination)
		if err != nil {
			if !domain.IsValidation(err) {
				return TripPreview{}, err
			}
			out.Errors = append(out.Errors, ingest.RowError{Line: row.Line, Field: "DESDE/HASTA", Message: err.Error()})
			continue
		}
		origin, destination := strings.ToUpper(utils.NormalizeSpace(row.Origin)), strings.ToUpper(utils.NormalizeSpace(row.Destination))
		if created {
			out.CreatedRoutes = append(out.CreatedRoutes, fmt.Sprintf("%s -> %s", origin, destination))
		}

		amount, source := row.Amount, PriceFromSheet
		if !amount.IsPositive() {
			amount, source, err = s.Pricing.ResolvePrice(ctx, clientID, routeID)
			if err != nil {
				return TripPreview{}, err
			}
		}

		c := TripCandidate{
			Line:        row.Line,
			TripDate:    utils.FormatDate(row.Date),
			ClientID:    clientID,
			RouteID:     routeID,
			Origin:      origin,
			Destination: destination,
			Shipment:    row.Shipment,
			Notes:       notesShipmentPrefix + row.Shipment,
			Amount:      amount,
			PriceSource: source,
			NeedsReview: amount.IsZero(),
		}
		out.Candidates = append(out.Candidates, c)
		out.TotalAmount = out.TotalAmount.Add(amount)
	}

	utils.LogEvent(s.RequestID, "imports", "preview_trips",
		fmt.Sprintf("user=%s format=%s client=%d candidates=%d errors=%d routes_created=%d",
			session.Username, format.Name, clientID, len(out.Candidates), len(out.Errors), len(out.CreatedRoutes)))
	return out, nil
}

// duplicateNeedle is what must appear in an existing trip's notes for a
// candidate to count as already imported.
func duplicateNeedle(c TripCandidate) string {
	if s := strings.TrimSpace(c.Shipment); s != "" {
		return s
	}
	return strings.TrimSpace(c.Notes)
}

func (s ImportService) CommitTrips(ctx context.Context, session domain.Session, candidates []TripCandidate) (BatchResult, error) {
	res := BatchResult{Errors: []ingest.RowError{}}
	for _, c := range candidates {
		dup, err := s.commitTrip(ctx, c)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return res, ctx.Err()
			}
			res.Failed++
			res.Errors = append(res.Errors, ingest.RowError{Line: c.Line, Message: err.Error()})
		case dup:
			res.SkippedDuplicates++
		default:
			res.Inserted++
		}
	}

	utils.LogEvent(s.RequestID, "imports", "commit_trips",
		fmt.Sprintf("user=%s inserted=%d duplicates=%d failed=%d", session.Username, res.Inserted, res.SkippedDuplicates, res.Failed))
	return res, nil
}

func (s ImportService) commitTrip(ctx context.Context, c TripCandidate) (duplicate bool, err error) {
	date, err := utils.ParseDate(c.TripDate)
	if err != nil {
		return false, domain.ValidationError{Field: "trip_date", Msg: "expected YYYY-MM-DD"}
	}
	if c.ClientID <= 0 || c.RouteID <= 0 {
		return false, domain.ValidationError{Field: "route", Msg: "client and route are required"}
	}
	if c.Amount.IsNegative() {
		return false, domain.ValidationError{Field: "amount", Msg: "must not be negative"}
	}
	notes := strings.TrimSpace(c.Notes)
	if notes == "" && strings.TrimSpace(c.Shipment) != "" {
		notes = notesShipmentPrefix + strings.TrimSpace(c.Shipment)
	}

	tx, err := s.Trips.BeginTx(ctx)
	if err != nil {
		return false, err
	}
	defer func() {
		if err != nil || duplicate {
			_ = tx.Rollback()
		}
	}()

	duplicate, err = s.Trips.HasDuplicateWith(ctx, tx, date, c.ClientID, c.RouteID, duplicateNeedle(c))
	if err != nil || duplicate {
		return duplicate, err
	}

	_, err = s.Trips.InsertWith(ctx, tx, models.Trip{
		TripDate:  date,
		ClientID:  c.ClientID,
		RouteID:   c.RouteID,
		Status:    models.TripCompleted,
		NetAmount: c.Amount,
		Notes:     notes,
	})
	if err != nil {
		return false, err
	}
	if err = tx.Commit(); err != nil {
		return false, err
	}
	return false, nil
}

func (s ImportService) PreviewExpenses(ctx context.Context, session domain.Session, file io.Reader) (ExpensePreview, error) {
	table, err := ingest.ReadTable(file, ingest.Expenses)
	if err != nil {
		return ExpensePreview{}, err
	}
	parsed := ingest.ParseExpenses(table)

	out := ExpensePreview{
		Candidates:         make([]ExpenseCandidate, 0, len(parsed.Rows)),
		Errors:             parsed.Errors,
		DroppedMissing:     parsed.DroppedMissing,
		SkippedPayroll:     parsed.SkippedPayroll,
		DroppedNonPositive: parsed.DroppedNonPositive,
	}
	if out.Errors == nil {
		out.Errors = []ingest.RowError{}
	}
	for _, r := range parsed.Rows {
		out.Candidates = append(out.Candidates, ExpenseCandidate{
			Line:        r.Line,
			ExpenseDate: utils.FormatDate(r.Date),
			Category:    r.Category,
			Description: r.Description,
			Amount:      r.Amount,
			Supplier:    r.Supplier,
		})
		out.TotalAmount = out.TotalAmount.Add(r.Amount)
	}

	utils.LogEvent(s.RequestID, "imports", "preview_expenses",
		fmt.Sprintf("user=%s candidates=%d payroll_skipped=%d non_positive=%d",
			session.Username, len(out.Candidates), out.SkippedPayroll, out.DroppedNonPositive))
	return out, nil
}

func (s ImportService) CommitExpenses(ctx context.Context, session domain.Session, candidates []ExpenseCandidate) (BatchResult, error) {
	res := BatchResult{Errors: []ingest.RowError{}}
	for _, c := range candidates {
		if ingest.IsPayroll(c.Description) {
			res.SkippedPayroll++
			continue
		}
		e, err := expenseFromCandidate(c)
		if err == nil {
			_, err = s.Expenses.Create(ctx, e)
		}
		if err != nil {
			if ctx.Err() != nil {
				return res, ctx.Err()
			}
			res.Failed++
			res.Errors = append(res.Errors, ingest.RowError{Line: c.Line, Message: err.Error()})
			continue
		}
		res.Inserted++
	}

	utils.LogEvent(s.RequestID, "imports", "commit_expenses",
		fmt.Sprintf("user=%s inserted=%d payroll_skipped=%d failed=%d", session.Username, res.Inserted, res.SkippedPayroll, res.Failed))
	return res, nil
}

func expenseFromCandidate(c ExpenseCandidate) (models.Expense, error) {
	date, err := utils.ParseDate(c.ExpenseDate)
	if err != nil {
		return models.Expense{}, domain.ValidationError{Field: "expense_date", Msg: "expected YYYY-MM-DD"}
	}
	e := models.Expense{
		ExpenseDate: date,
		Category:    strings.TrimSpace(c.Category),
		Description: strings.TrimSpace(c.Description),
		Amount:      c.Amount,
		Supplier:    strings.TrimSpace(c.Supplier),
	}
	return e, validateExpense(&e)
}

// validateExpense fills defaults and rejects rows the dashboard cannot use.
func validateExpense(e *models.Expense) error {
	if e.ExpenseDate.IsZero() {
		return domain.ValidationError{Field: "expense_date", Msg: "required"}
	}
	if !e.Amount.IsPositive() {
		return domain.ValidationError{Field: "amount", Msg: "must be greater than zero"}
	}
	if e.Category == "" {
		e.Category = ingest.DefaultExpenseCategory
	}
	if e.Description == "" {
		e.Description = ingest.DefaultExpenseDetail
	}
	return nil
}
