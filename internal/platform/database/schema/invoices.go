package schema

// InvoicesTable represents the 'user_program_invoices' table
type InvoicesTable struct {
	Table                string
	ID                   string
	EnrollmentID         string
	AmountIDR            string
	Status               string
	VirtualAccountNumber string
	PaymentDueDatetime   string
	CreatedAt            string
	UpdatedAt            string
}

// Invoices is the schema definition for user_program_invoices
var Invoices = InvoicesTable{
	Table:                "user_program_invoices",
	ID:                   "id",
	EnrollmentID:         "enrollment_id",
	AmountIDR:            "amount_idr",
	Status:               "status",
	VirtualAccountNumber: "virtual_account_number",
	PaymentDueDatetime:   "payment_due_datetime",
	CreatedAt:            "created_at",
	UpdatedAt:            "updated_at",
}

// PaymentsTable represents the 'payments' table
type PaymentsTable struct {
	Table     string
	ID        string
	InvoiceID string
	AmountIDR string
	PaidAt    string
	CreatedAt string
}

// Payments is the schema definition for payments
var Payments = PaymentsTable{
	Table:     "payments",
	ID:        "id",
	InvoiceID: "invoice_id",
	AmountIDR: "amount_idr",
	PaidAt:    "paid_at",
	CreatedAt: "created_at",
}
