package models

import "database/sql"

// Refund record types are never synchronized. A refund term is a bookkeeping
// artifact of the source system and has no counterpart order line in NetSuite.
var RefundRecordTypes = map[string]struct{}{
	"Fee_Refunds":     {},
	"Deposit_Refunds": {},
}

// IsRefundType reports whether a payment-term record type belongs to the
// refund family excluded from synchronization.
func IsRefundType(recordType string) bool {
	_, ok := RefundRecordTypes[recordType]
	return ok
}

// Order represents a row in the legacy ORDERS table, with the customer,
// corporate and centre references already denormalized by the fetch query.
// NSOrderID is empty until the first successful synchronization and is
// write-once after that.
type Order struct {
	ID             string         `db:"ID"`
	RecordType     sql.NullString `db:"RECORD_TYPE"`
	Status         sql.NullString `db:"STATUS"`
	OrderNumber    sql.NullString `db:"ORDER_NUMBER"`
	CustomerID     sql.NullString `db:"CUSTOMER_ID"`
	CorporateID    sql.NullString `db:"CORPORATE_ID"`
	Subsidiary     sql.NullString `db:"SUBSIDIARY"`
	OrderDate      sql.NullTime   `db:"ORDER_DATE"`
	StartDate      sql.NullTime   `db:"START_DATE"`
	EndDate        sql.NullTime   `db:"END_DATE"`
	AcademicYear   sql.NullString `db:"ACADEMIC_YEAR"`
	JoiningDate    sql.NullTime   `db:"JOINING_DATE"`
	Location       sql.NullString `db:"LOCATION"`
	CentreCode     sql.NullString `db:"CENTRE_CODE"`
	PrimaryParent  sql.NullString `db:"PRIMARY_PARENT"`
	PrimaryMobile  sql.NullString `db:"PRIMARY_MOBILE"`
	PrimaryEmail   sql.NullString `db:"PRIMARY_EMAIL"`
	EmployeeID     sql.NullString `db:"EMPLOYEE_ID"`
	Program        sql.NullString `db:"PROGRAM"`
	SubProgram     sql.NullString `db:"SUB_PROGRAM"`
	ClassID        sql.NullString `db:"CLASS_ID"`
	CorporateEmail sql.NullString `db:"CORPORATE_EMAIL"`
	NSOrderID      sql.NullString `db:"NS_ORDER_ID"`
}

// FeeBreakup holds the fee-category amounts shared by payment terms and
// their line items. Column names match the legacy schema one to one.
type FeeBreakup struct {
	Tuition            sql.NullFloat64 `db:"TUITION_FEE"`
	Food               sql.NullFloat64 `db:"FOOD_FEE"`
	Transport          sql.NullFloat64 `db:"TRANSPORT_FEE"`
	Kit                sql.NullFloat64 `db:"KIT_FEE"`
	Deposit            sql.NullFloat64 `db:"DEPOSIT"`
	CorporateTuition   sql.NullFloat64 `db:"CORP_TUITION_FEE"`
	CorporateFood      sql.NullFloat64 `db:"CORP_FOOD_FEE"`
	CorporateTransport sql.NullFloat64 `db:"CORP_TRANSPORT_FEE"`
	CorporateKit       sql.NullFloat64 `db:"CORP_KIT_FEE"`
	CorporateDeposit   sql.NullFloat64 `db:"CORP_DEPOSIT"`
	Registration       sql.NullFloat64 `db:"REGISTRATION_FEE"`
	Admission          sql.NullFloat64 `db:"ADMISSION_FEE"`
	Uniform            sql.NullFloat64 `db:"UNIFORM_FEE"`
	Books              sql.NullFloat64 `db:"BOOKS_FEE"`
	AnnualCharges      sql.NullFloat64 `db:"ANNUAL_CHARGES"`
	LateFee            sql.NullFloat64 `db:"LATE_FEE"`
	Discount           sql.NullFloat64 `db:"DISCOUNT"`
	Miscellaneous      sql.NullFloat64 `db:"MISC_FEE"`
}

// Milestone is a payment term under an order.
type Milestone struct {
	ID               string          `db:"ID"`
	OrderID          string          `db:"ORDER_ID"`
	Name             sql.NullString  `db:"NAME"`
	RecordType       sql.NullString  `db:"RECORD_TYPE"`
	Status           sql.NullString  `db:"STATUS"`
	Paid             sql.NullBool    `db:"PAID"`
	Adjustment       sql.NullFloat64 `db:"ADJUSTMENT"`
	AdjustmentRemark sql.NullString  `db:"ADJUSTMENT_REMARK"`
	BackendEntity    sql.NullString  `db:"BACKEND_ENTITY"`
	StartDate        sql.NullTime    `db:"START_DATE"`
	EndDate          sql.NullTime    `db:"END_DATE"`
	Fees             FeeBreakup
}

// MilestoneLineItem is a billing-period breakdown of one payment term.
type MilestoneLineItem struct {
	ID              string          `db:"ID"`
	MilestoneID     string          `db:"MILESTONE_ID"`
	Name            sql.NullString  `db:"NAME"`
	StartDate       sql.NullTime    `db:"START_DATE"`
	EndDate         sql.NullTime    `db:"END_DATE"`
	Active          sql.NullBool    `db:"ACTIVE"`
	MonthAdjustment sql.NullFloat64 `db:"MONTH_ADJUSTMENT"`
	StandardAmount  sql.NullFloat64 `db:"STANDARD_AMOUNT"`
	Fees            FeeBreakup
}

// MilestoneWithItems pairs a payment term with its line items in fetch order.
type MilestoneWithItems struct {
	Milestone Milestone
	Items     []MilestoneLineItem
}

// OrderWithTerms is the unit of work handed to the pipeline for one order.
type OrderWithTerms struct {
	Order Order
	Terms []MilestoneWithItems
}
