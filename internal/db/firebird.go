package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/nakagami/firebirdsql"

	"github.com/Poleswar/netsuite-order-sync/internal/models"
	"github.com/Poleswar/netsuite-order-sync/pkg/encoding"
)

// feeColumns is the fee-category column list shared by PAYMENT_TERMS and
// TERM_LINE_ITEMS. Keeping it in one place is the field contract: adding a
// category means touching this constant, the scan, and the payload struct.
const feeColumns = `TUITION_FEE, FOOD_FEE, TRANSPORT_FEE, KIT_FEE, DEPOSIT,
		CORP_TUITION_FEE, CORP_FOOD_FEE, CORP_TRANSPORT_FEE, CORP_KIT_FEE, CORP_DEPOSIT,
		REGISTRATION_FEE, ADMISSION_FEE, UNIFORM_FEE, BOOKS_FEE, ANNUAL_CHARGES,
		LATE_FEE, DISCOUNT, MISC_FEE`

// OrderRepository reads the order graph from the legacy Firebird system of
// record and performs the single write this service is allowed: the
// write-once NetSuite order ID.
type OrderRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewOrderRepository initializes a connection pool for Firebird 2.5
func NewOrderRepository(connString string, logger *slog.Logger) (*OrderRepository, error) {
	db, err := sql.Open("firebirdsql", connString)
	if err != nil {
		return nil, fmt.Errorf("failed to open firebird connection: %v", err)
	}

	// Connection pool settings optimized for legacy systems
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetConnMaxIdleTime(10 * time.Minute)

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("firebird ping failed: %v", err)
	}

	logger.Info("Connected to Firebird successfully", "dialect", 3)

	return &OrderRepository{
		db:     db,
		logger: logger,
	}, nil
}

// FetchBatch loads each requested order with its payment terms and line
// items. Identifiers that do not resolve to an order are skipped, not
// errored: the batch is best-effort by contract. Refund-type terms are
// filtered out. Terms and line items come back sorted by start date then ID
// so downstream output is reproducible.
func (r *OrderRepository) FetchBatch(ctx context.Context, orderIDs []string) ([]models.OrderWithTerms, error) {
	result := make([]models.OrderWithTerms, 0, len(orderIDs))

	for _, id := range orderIDs {
		order, err := r.fetchOrder(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				r.logger.Warn("Order not found in source store, skipping", "order_id", id)
				continue
			}
			return nil, fmt.Errorf("failed to fetch order %s: %v", id, err)
		}

		terms, err := r.fetchTerms(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch payment terms for order %s: %v", id, err)
		}

		result = append(result, models.OrderWithTerms{Order: order, Terms: terms})
	}

	return result, nil
}

func (r *OrderRepository) fetchOrder(ctx context.Context, orderID string) (models.Order, error) {
	opCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	query := `
		SELECT ID, RECORD_TYPE, STATUS, ORDER_NUMBER, CUSTOMER_ID, CORPORATE_ID,
		       SUBSIDIARY, ORDER_DATE, START_DATE, END_DATE, ACADEMIC_YEAR,
		       JOINING_DATE, LOCATION, CENTRE_CODE, PRIMARY_PARENT, PRIMARY_MOBILE,
		       PRIMARY_EMAIL, EMPLOYEE_ID, PROGRAM, SUB_PROGRAM, CLASS_ID,
		       CORPORATE_EMAIL, NS_ORDER_ID
		FROM ORDERS
		WHERE ID = ?`

	var o models.Order
	var parent, location []byte
	err := r.db.QueryRowContext(opCtx, query, orderID).Scan(
		&o.ID, &o.RecordType, &o.Status, &o.OrderNumber, &o.CustomerID, &o.CorporateID,
		&o.Subsidiary, &o.OrderDate, &o.StartDate, &o.EndDate, &o.AcademicYear,
		&o.JoiningDate, &location, &o.CentreCode, &parent, &o.PrimaryMobile,
		&o.PrimaryEmail, &o.EmployeeID, &o.Program, &o.SubProgram, &o.ClassID,
		&o.CorporateEmail, &o.NSOrderID,
	)
	if err != nil {
		return models.Order{}, err
	}

	// Free-text columns in the legacy DB are WIN1252
	o.PrimaryParent = legacyText(parent)
	o.Location = legacyText(location)
	return o, nil
}

func (r *OrderRepository) fetchTerms(ctx context.Context, orderID string) ([]models.MilestoneWithItems, error) {
	opCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	query := `
		SELECT ID, ORDER_ID, NAME, RECORD_TYPE, STATUS, PAID, ADJUSTMENT,
		       ADJUSTMENT_REMARK, BACKEND_ENTITY, START_DATE, END_DATE, ` + feeColumns + `
		FROM PAYMENT_TERMS
		WHERE ORDER_ID = ?
		ORDER BY START_DATE, ID`

	rows, err := r.db.QueryContext(opCtx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var milestones []models.Milestone
	for rows.Next() {
		var m models.Milestone
		var paid sql.NullInt64
		var name, remark []byte
		dest := []any{
			&m.ID, &m.OrderID, &name, &m.RecordType, &m.Status, &paid, &m.Adjustment,
			&remark, &m.BackendEntity, &m.StartDate, &m.EndDate,
		}
		if err := rows.Scan(append(dest, feeDest(&m.Fees)...)...); err != nil {
			return nil, fmt.Errorf("payment term scan failed: %v", err)
		}
		m.Name = legacyText(name)
		m.AdjustmentRemark = legacyText(remark)
		m.Paid = flag(paid)

		// Refund terms never leave this layer
		if m.RecordType.Valid && models.IsRefundType(m.RecordType.String) {
			continue
		}
		milestones = append(milestones, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// The pool holds a single connection; the line-item queries must wait
	// until the term cursor is drained and released
	rows.Close()

	terms := make([]models.MilestoneWithItems, 0, len(milestones))
	for _, m := range milestones {
		items, err := r.fetchLineItems(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		terms = append(terms, models.MilestoneWithItems{Milestone: m, Items: items})
	}
	return terms, nil
}

func (r *OrderRepository) fetchLineItems(ctx context.Context, milestoneID string) ([]models.MilestoneLineItem, error) {
	opCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	query := `
		SELECT ID, MILESTONE_ID, NAME, START_DATE, END_DATE, ACTIVE,
		       MONTH_ADJUSTMENT, STANDARD_AMOUNT, ` + feeColumns + `
		FROM TERM_LINE_ITEMS
		WHERE MILESTONE_ID = ?
		ORDER BY START_DATE, ID`

	rows, err := r.db.QueryContext(opCtx, query, milestoneID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.MilestoneLineItem
	for rows.Next() {
		var li models.MilestoneLineItem
		var active sql.NullInt64
		var name []byte
		dest := []any{
			&li.ID, &li.MilestoneID, &name, &li.StartDate, &li.EndDate, &active,
			&li.MonthAdjustment, &li.StandardAmount,
		}
		if err := rows.Scan(append(dest, feeDest(&li.Fees)...)...); err != nil {
			return nil, fmt.Errorf("line item scan failed: %v", err)
		}
		li.Name = legacyText(name)
		li.Active = flag(active)
		items = append(items, li)
	}
	return items, rows.Err()
}

// SetNSOrderID writes the NetSuite-assigned identifier back to the order.
// The guard in the WHERE clause makes the write-once invariant hold even if
// two runs race: a populated NS_ORDER_ID is never overwritten.
func (r *OrderRepository) SetNSOrderID(ctx context.Context, orderID, nsOrderID string) error {
	opCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	query := `
		UPDATE ORDERS SET NS_ORDER_ID = ?
		WHERE ID = ? AND (NS_ORDER_ID IS NULL OR NS_ORDER_ID = '')`

	res, err := r.db.ExecContext(opCtx, query, nsOrderID, orderID)
	if err != nil {
		return fmt.Errorf("failed to write back external id: %v", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		r.logger.Warn("External ID already populated, write-back skipped", "order_id", orderID)
	}
	return nil
}

// Close gracefully shuts down the database connection pool
func (r *OrderRepository) Close() error {
	r.logger.Info("Closing Firebird connection pool")
	return r.db.Close()
}

func feeDest(f *models.FeeBreakup) []any {
	return []any{
		&f.Tuition, &f.Food, &f.Transport, &f.Kit, &f.Deposit,
		&f.CorporateTuition, &f.CorporateFood, &f.CorporateTransport, &f.CorporateKit, &f.CorporateDeposit,
		&f.Registration, &f.Admission, &f.Uniform, &f.Books, &f.AnnualCharges,
		&f.LateFee, &f.Discount, &f.Miscellaneous,
	}
}

// legacyText converts a raw WIN1252 column into a nullable UTF-8 string.
func legacyText(b []byte) sql.NullString {
	if b == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: encoding.ToUTF8(b), Valid: true}
}

// flag maps a legacy SMALLINT 0/1 column to a nullable bool.
func flag(n sql.NullInt64) sql.NullBool {
	if !n.Valid {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: n.Int64 != 0, Valid: true}
}
