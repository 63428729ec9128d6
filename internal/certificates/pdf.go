// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

package certificates

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"

	"github.com/informatics-lc/backend/pkg/pointer"
)

// RenderPDF draws the certificate document and returns the PDF bytes.
//
// Landscape A4 with the holder's name centered, the program title beneath,
// and the credential number plus issue date in the footer line.
func RenderPDF(certificate *Certificate) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Certificate of Completion", true)
	pdf.AddPage()

	pageWidth, _ := pdf.GetPageSize()

	// Border frame.
	pdf.SetLineWidth(1.2)
	pdf.SetDrawColor(30, 64, 124)
	pdf.Rect(10, 10, pageWidth-20, 190, "D")

	pdf.SetY(40)
	pdf.SetFont("Helvetica", "B", 28)
	pdf.SetTextColor(30, 64, 124)
	pdf.CellFormat(0, 14, "Certificate of Completion", "", 1, "C", false, 0, "")

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 14)
	pdf.SetTextColor(60, 60, 60)
	pdf.CellFormat(0, 8, "This certifies that", "", 1, "C", false, 0, "")

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetTextColor(20, 20, 20)
	pdf.CellFormat(0, 12, pointer.Fallback(certificate.UserFullName, "Certificate Holder"), "", 1, "C", false, 0, "")

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "", 14)
	pdf.SetTextColor(60, 60, 60)
	pdf.CellFormat(0, 8, "has successfully completed", "", 1, "C", false, 0, "")

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(20, 20, 20)
	pdf.CellFormat(0, 10, pointer.Fallback(certificate.ProgramTitle, "the program"), "", 1, "C", false, 0, "")

	pdf.SetY(165)
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(90, 90, 90)
	footer := fmt.Sprintf("Credential %s  |  Issued %s",
		certificate.CredentialNumber,
		certificate.IssuedAt.Format("2 January 2006"),
	)
	pdf.CellFormat(0, 6, footer, "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, "Informatics Learning Center", "", 1, "C", false, 0, "")

	var buffer bytes.Buffer
	if err := pdf.Output(&buffer); err != nil {
		return nil, fmt.Errorf("render certificate pdf: %w", err)
	}

	return buffer.Bytes(), nil
}
