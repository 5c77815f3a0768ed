// Package payload defines the exact wire vocabulary of the NetSuite order
// RESTlet as typed structs. Field names are fixed by the destination; the
// json tags are the contract and must not be edited casually.
package payload

// FeeAmounts is the fee-category family shared by payment terms and their
// line items.
type FeeAmounts struct {
	Tuition            float64 `json:"Tuition_Fee__c"`
	Food               float64 `json:"Food_Fee__c"`
	Transport          float64 `json:"Transport_Fee__c"`
	Kit                float64 `json:"Kit_Fee__c"`
	Deposit            float64 `json:"Deposit__c"`
	CorporateTuition   float64 `json:"Corporate_Tuition_Fee__c"`
	CorporateFood      float64 `json:"Corporate_Food_Fee__c"`
	CorporateTransport float64 `json:"Corporate_Transport_Fee__c"`
	CorporateKit       float64 `json:"Corporate_Kit_Fee__c"`
	CorporateDeposit   float64 `json:"Corporate_Deposit__c"`
	Registration       float64 `json:"Registration_Fee__c"`
	Admission          float64 `json:"Admission_Fee__c"`
	Uniform            float64 `json:"Uniform_Fee__c"`
	Books              float64 `json:"Books_Fee__c"`
	AnnualCharges      float64 `json:"Annual_Charges__c"`
	LateFee            float64 `json:"Late_Fee__c"`
	Discount           float64 `json:"Discount__c"`
	Miscellaneous      float64 `json:"Miscellaneous_Fee__c"`
}

// LineItem is one billing-period breakdown nested under a milestone.
type LineItem struct {
	ID        string `json:"Id"`
	Name      string `json:"Term_Line_Item_Name"`
	StartDate string `json:"Term_Line_Item_Start_Date__c"`
	EndDate   string `json:"Term_Line_Item_End_Date__c"`
	Active    string `json:"ActiveX__c"`
	FeeAmounts
	MonthAdjustment float64 `json:"Adjustment_for_current_month"`
	StandardAmount  float64 `json:"Total_standard_amount"`
}

// Milestone is one payment term nested under the order.
type Milestone struct {
	ID               string  `json:"id"`
	Name             string  `json:"Name"`
	Status           string  `json:"Milestone_Status__c"`
	AmountPaid       string  `json:"Amount_Paid__c"`
	Adjustment       float64 `json:"Adjustment__c"`
	AdjustmentRemark string  `json:"Adjustment_Fee_Remarks__c"`
	BackendEntity    string  `json:"Entity_Backend__c"`
	StartDate        string  `json:"Term_Start_Date__c"`
	EndDate          string  `json:"Term_End_Date__c"`
	FeeAmounts
	Lines []LineItem `json:"milestoneline"`
}

// Order is the top-level request body, one per synchronized order.
type Order struct {
	OrderID        string      `json:"orderid"`
	RecordType     string      `json:"orderrecordtype"`
	CustomerID     string      `json:"customerID"`
	Corporate      string      `json:"Corporate__c"`
	Subsidiary     string      `json:"subsidiary"`
	Date           string      `json:"date"`
	StartDate      string      `json:"orderstartdate"`
	EndDate        string      `json:"orderenddate"`
	Status         string      `json:"status"`
	OrderNumber    string      `json:"ordernumber"`
	AcademicYear   string      `json:"academicyear"`
	DateOfJoining  string      `json:"dateofjoining"`
	Location       string      `json:"location"`
	Center         string      `json:"center"`
	PrimaryParent  string      `json:"primaryparent"`
	PrimaryMobile  string      `json:"primarymobno"`
	PrimaryEmail   string      `json:"primaryemailid"`
	EmployeeID     string      `json:"employeeid"`
	StudentProgram string      `json:"studentprogram"`
	SubProgram     string      `json:"subprogram"`
	ClassID        string      `json:"classid"`
	CorporateEmail string      `json:"companyemaildcorporate"`
	Milestones     []Milestone `json:"milestone"`
}
