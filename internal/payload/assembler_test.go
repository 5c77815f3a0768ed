package payload

import (
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Poleswar/netsuite-order-sync/internal/models"
)

func ns(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}

func nt(y int, m time.Month, d int) sql.NullTime {
	return sql.NullTime{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), Valid: true}
}

func TestBuildAllOptionalFieldsNull(t *testing.T) {
	out := Build(models.OrderWithTerms{Order: models.Order{ID: "O1"}})

	assert.Equal(t, "O1", out.OrderID)
	assert.Equal(t, "FYLS", out.Subsidiary)
	assert.Equal(t, "None", out.Corporate)
	assert.Equal(t, "None", out.Location)
	assert.Equal(t, "None", out.Center)
	assert.Equal(t, "None", out.EmployeeID)
	assert.Equal(t, "None", out.CorporateEmail)
	assert.Equal(t, "", out.Date)
	assert.Equal(t, "", out.StartDate)
	assert.Equal(t, "", out.Status)
	assert.Equal(t, "", out.PrimaryParent)
	assert.Empty(t, out.Milestones)

	// The serialized form must never contain a JSON null
	raw, err := json.Marshal(out)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "null")
}

func TestBuildNullMilestoneDefaults(t *testing.T) {
	out := Build(models.OrderWithTerms{
		Order: models.Order{ID: "O1"},
		Terms: []models.MilestoneWithItems{
			{
				Milestone: models.Milestone{ID: "M1", OrderID: "O1"},
				Items:     []models.MilestoneLineItem{{ID: "L1", MilestoneID: "M1"}},
			},
		},
	})

	require.Len(t, out.Milestones, 1)
	m := out.Milestones[0]
	assert.Equal(t, "No", m.AmountPaid)
	assert.Equal(t, "None", m.AdjustmentRemark)
	assert.Equal(t, "FYLS", m.BackendEntity)
	assert.Equal(t, "", m.StartDate)
	assert.Zero(t, m.Adjustment)
	assert.Zero(t, m.Tuition)
	assert.Zero(t, m.CorporateDeposit)

	require.Len(t, m.Lines, 1)
	li := m.Lines[0]
	assert.Equal(t, "No", li.Active)
	assert.Zero(t, li.MonthAdjustment)
	assert.Zero(t, li.StandardAmount)
}

func TestBuildExcludesRefundTerms(t *testing.T) {
	out := Build(models.OrderWithTerms{
		Order: models.Order{ID: "O1"},
		Terms: []models.MilestoneWithItems{
			{
				Milestone: models.Milestone{ID: "M1", RecordType: ns("Fee_Refunds")},
				Items:     []models.MilestoneLineItem{{ID: "L1"}},
			},
			{
				Milestone: models.Milestone{ID: "M2", RecordType: ns("Standard")},
				Items:     []models.MilestoneLineItem{{ID: "L2"}},
			},
			{
				Milestone: models.Milestone{ID: "M3", RecordType: ns("Deposit_Refunds")},
			},
		},
	})

	require.Len(t, out.Milestones, 1)
	assert.Equal(t, "M2", out.Milestones[0].ID)
	require.Len(t, out.Milestones[0].Lines, 1)
	assert.Equal(t, "L2", out.Milestones[0].Lines[0].ID)
}

func TestBuildPreservesFetchOrder(t *testing.T) {
	out := Build(models.OrderWithTerms{
		Order: models.Order{ID: "O1"},
		Terms: []models.MilestoneWithItems{
			{
				Milestone: models.Milestone{ID: "M1", StartDate: nt(2026, time.April, 1)},
				Items: []models.MilestoneLineItem{
					{ID: "L1", StartDate: nt(2026, time.April, 1)},
					{ID: "L2", StartDate: nt(2026, time.May, 1)},
				},
			},
			{
				Milestone: models.Milestone{ID: "M2", StartDate: nt(2026, time.June, 1)},
			},
		},
	})

	require.Len(t, out.Milestones, 2)
	assert.Equal(t, "M1", out.Milestones[0].ID)
	assert.Equal(t, "M2", out.Milestones[1].ID)
	assert.Equal(t, "L1", out.Milestones[0].Lines[0].ID)
	assert.Equal(t, "L2", out.Milestones[0].Lines[1].ID)
}

// The wire vocabulary is a fixed contract with the RESTlet; the json tags
// carry it. This pins the keys that cost the most to get wrong.
func TestWireVocabulary(t *testing.T) {
	out := Build(models.OrderWithTerms{
		Order: models.Order{
			ID:          "O1",
			CustomerID:  ns("CUST-9"),
			OrderDate:   nt(2026, time.January, 15),
			CorporateID: ns("ACME"),
		},
		Terms: []models.MilestoneWithItems{
			{
				Milestone: models.Milestone{
					ID:   "M1",
					Paid: sql.NullBool{Bool: true, Valid: true},
					Fees: models.FeeBreakup{Tuition: sql.NullFloat64{Float64: 900, Valid: true}},
				},
				Items: []models.MilestoneLineItem{
					{ID: "L1", Active: sql.NullBool{Bool: true, Valid: true}},
				},
			},
		},
	})

	raw, err := json.Marshal(out)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))

	assert.Equal(t, "O1", doc["orderid"])
	assert.Equal(t, "CUST-9", doc["customerID"])
	assert.Equal(t, "ACME", doc["Corporate__c"])
	assert.Equal(t, "15/01/2026", doc["date"])

	milestones, ok := doc["milestone"].([]any)
	require.True(t, ok, "milestone must be an array")
	require.Len(t, milestones, 1)

	m := milestones[0].(map[string]any)
	assert.Equal(t, "M1", m["id"])
	assert.Equal(t, "Yes", m["Amount_Paid__c"])
	assert.Equal(t, float64(900), m["Tuition_Fee__c"])

	lines, ok := m["milestoneline"].([]any)
	require.True(t, ok, "milestoneline must be an array")
	require.Len(t, lines, 1)

	li := lines[0].(map[string]any)
	assert.Equal(t, "L1", li["Id"])
	assert.Equal(t, "Yes", li["ActiveX__c"])
	assert.Contains(t, li, "Term_Line_Item_Start_Date__c")
	assert.Contains(t, li, "Adjustment_for_current_month")
	assert.Contains(t, li, "Total_standard_amount")
}
