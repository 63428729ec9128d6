package schema

// CertificatesTable represents the 'certificates' table
type CertificatesTable struct {
	Table            string
	ID               string
	UserID           string
	ProgramID        string
	CredentialNumber string
	IssuedAt         string
	ExpiredAt        string
	PDFURL           string
	CreatedAt        string
	UpdatedAt        string
}

// Certificates is the schema definition for certificates
var Certificates = CertificatesTable{
	Table:            "certificates",
	ID:               "id",
	UserID:           "user_id",
	ProgramID:        "program_id",
	CredentialNumber: "credential_number",
	IssuedAt:         "issued_at",
	ExpiredAt:        "expired_at",
	PDFURL:           "pdf_url",
	CreatedAt:        "created_at",
	UpdatedAt:        "updated_at",
}
