package payload

import (
	"github.com/Poleswar/netsuite-order-sync/internal/models"
	"github.com/Poleswar/netsuite-order-sync/internal/normalize"
)

// Build assembles the request body for one order. Milestones and line items
// keep the order the repository returned them in (start date, then ID).
// Refund-type terms are dropped here as well as at the fetch: no code path
// may emit them.
func Build(ow models.OrderWithTerms) Order {
	o := ow.Order

	out := Order{
		OrderID:        o.ID,
		RecordType:     normalize.Text(o.RecordType, ""),
		CustomerID:     normalize.Text(o.CustomerID, ""),
		Corporate:      normalize.Text(o.CorporateID, "None"),
		Subsidiary:     normalize.Text(o.Subsidiary, normalize.DefaultSubsidiary),
		Date:           normalize.Date(o.OrderDate),
		StartDate:      normalize.Date(o.StartDate),
		EndDate:        normalize.Date(o.EndDate),
		Status:         normalize.Text(o.Status, ""),
		OrderNumber:    normalize.Text(o.OrderNumber, ""),
		AcademicYear:   normalize.Text(o.AcademicYear, ""),
		DateOfJoining:  normalize.Date(o.JoiningDate),
		Location:       normalize.Text(o.Location, normalize.DefaultLocation),
		Center:         normalize.Text(o.CentreCode, normalize.DefaultLocation),
		PrimaryParent:  normalize.Text(o.PrimaryParent, ""),
		PrimaryMobile:  normalize.Text(o.PrimaryMobile, ""),
		PrimaryEmail:   normalize.Text(o.PrimaryEmail, ""),
		EmployeeID:     normalize.Text(o.EmployeeID, "None"),
		StudentProgram: normalize.Text(o.Program, ""),
		SubProgram:     normalize.Text(o.SubProgram, ""),
		ClassID:        normalize.Text(o.ClassID, ""),
		CorporateEmail: normalize.Text(o.CorporateEmail, "None"),
		Milestones:     make([]Milestone, 0, len(ow.Terms)),
	}

	for _, t := range ow.Terms {
		if t.Milestone.RecordType.Valid && models.IsRefundType(t.Milestone.RecordType.String) {
			continue
		}
		out.Milestones = append(out.Milestones, buildMilestone(t))
	}
	return out
}

func buildMilestone(t models.MilestoneWithItems) Milestone {
	m := t.Milestone

	out := Milestone{
		ID:               m.ID,
		Name:             normalize.Text(m.Name, ""),
		Status:           normalize.Text(m.Status, ""),
		AmountPaid:       normalize.YesNo(m.Paid),
		Adjustment:       normalize.Amount(m.Adjustment),
		AdjustmentRemark: normalize.Text(m.AdjustmentRemark, "None"),
		BackendEntity:    normalize.Text(m.BackendEntity, normalize.DefaultSubsidiary),
		StartDate:        normalize.Date(m.StartDate),
		EndDate:          normalize.Date(m.EndDate),
		FeeAmounts:       buildFees(m.Fees),
		Lines:            make([]LineItem, 0, len(t.Items)),
	}

	for _, li := range t.Items {
		out.Lines = append(out.Lines, LineItem{
			ID:              li.ID,
			Name:            normalize.Text(li.Name, ""),
			StartDate:       normalize.Date(li.StartDate),
			EndDate:         normalize.Date(li.EndDate),
			Active:          normalize.YesNo(li.Active),
			FeeAmounts:      buildFees(li.Fees),
			MonthAdjustment: normalize.Amount(li.MonthAdjustment),
			StandardAmount:  normalize.Amount(li.StandardAmount),
		})
	}
	return out
}

func buildFees(f models.FeeBreakup) FeeAmounts {
	return FeeAmounts{
		Tuition:            normalize.Amount(f.Tuition),
		Food:               normalize.Amount(f.Food),
		Transport:          normalize.Amount(f.Transport),
		Kit:                normalize.Amount(f.Kit),
		Deposit:            normalize.Amount(f.Deposit),
		CorporateTuition:   normalize.Amount(f.CorporateTuition),
		CorporateFood:      normalize.Amount(f.CorporateFood),
		CorporateTransport: normalize.Amount(f.CorporateTransport),
		CorporateKit:       normalize.Amount(f.CorporateKit),
		CorporateDeposit:   normalize.Amount(f.CorporateDeposit),
		Registration:       normalize.Amount(f.Registration),
		Admission:          normalize.Amount(f.Admission),
		Uniform:            normalize.Amount(f.Uniform),
		Books:              normalize.Amount(f.Books),
		AnnualCharges:      normalize.Amount(f.AnnualCharges),
		LateFee:            normalize.Amount(f.LateFee),
		Discount:           normalize.Amount(f.Discount),
		Miscellaneous:      normalize.Amount(f.Miscellaneous),
	}
}
