package services

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"aeropark/internal/domain"
	"aeropark/internal/domain/models"
	"aeropark/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// BonService renders the "bon de commande" order form summarizing one
// reservation and stores it under Dir, keyed by the reservation number.
type BonService struct {
	Dir       string
	RequestID string
}

// Render writes the order form to disk and returns its path. A booking
// must not be reported successful without a retrievable document, so any
// write failure is surfaced.
func (s BonService) Render(res models.Reservation, client models.Client) (string, error) {
	pdfBytes, filename, err := s.Generate(res, client)
	if err != nil {
		return "", domain.InternalError{Msg: "order form rendering failed", Err: err}
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", domain.InternalError{Msg: "order form directory unavailable", Err: err}
	}
	path := filepath.Join(s.Dir, filename)
	if err := os.WriteFile(path, pdfBytes, 0o644); err != nil {
		return "", domain.InternalError{Msg: "order form write failed", Err: err}
	}

	utils.LogEvent(s.RequestID, "bon", "render", fmt.Sprintf("reservation=%s path=%s", res.ReservationNumber, path))
	return path, nil
}

// Generate builds the PDF in memory and returns its bytes and filename.
func (s BonService) Generate(res models.Reservation, client models.Client) ([]byte, string, error) {
	breakdown := ComputeBreakdown(
		utils.StayDays(res.DateAller, res.DateRetour),
		res.ParkingType, res.IsOversized, res.CleaningType, res.WithFuel,
	)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Bon de commande "+res.ReservationNumber, false)
	pdf.AddPage()

	// Company header
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "AERO PARK")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 5, "Parking aeroport - gardiennage et services auto")
	pdf.Ln(5)
	pdf.Cell(0, 5, "info@matarpark.com")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, "BON DE COMMANDE")
	pdf.Ln(10)

	// Reservation metadata
	pdf.SetFont("Helvetica", "", 11)
	meta := []string{
		fmt.Sprintf("Reservation no : %s", res.ReservationNumber),
		fmt.Sprintf("Creee le       : %s", res.CreatedAt.Format("2006-01-02 15:04")),
		fmt.Sprintf("Statut         : %s", safe(res.Status, "pending")),
	}
	for _, line := range meta {
		pdf.Cell(0, 6, line)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	// Client block
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Client")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 11)
	clientLines := []string{
		fmt.Sprintf("Nom       : %s", safe(client.FullName, "-")),
		fmt.Sprintf("Email     : %s", safe(client.Email, "-")),
		fmt.Sprintf("Telephone : %s", safe(client.PhoneNumber, "-")),
		fmt.Sprintf("Vehicule  : %s", safe(res.CarImmatriculation, "-")),
	}
	for _, line := range clientLines {
		pdf.Cell(0, 6, line)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	// Service period and flights
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Periode de service")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 11)
	periodLines := []string{
		fmt.Sprintf("Depart : %s (vol %s)", utils.FormatDate(res.DateAller), strings.ToUpper(safe(res.FlightNumberAller, "-"))),
		fmt.Sprintf("Retour : %s (vol %s)", utils.FormatDate(res.DateRetour), strings.ToUpper(safe(res.FlightNumberRetour, "-"))),
		fmt.Sprintf("Duree  : %d jour(s)", breakdown.Days),
	}
	for _, line := range periodLines {
		pdf.Cell(0, 6, line)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	// Itemized cost table
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Detail des prestations")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(120, 7, "Prestation", "1", 0, "L", false, 0, "")
	pdf.CellFormat(60, 7, "Montant", "1", 0, "R", false, 0, "")
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 10)
	costRow := func(label string, amount int64) {
		pdf.CellFormat(120, 7, label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 7, utils.FormatDZD(amount), "1", 0, "R", false, 0, "")
		pdf.Ln(7)
	}

	costRow(fmt.Sprintf("Parking %s (%d jour(s) x %s)", res.ParkingType, breakdown.Days, utils.FormatDZD(breakdown.DailyRate)), breakdown.ParkingTotal)
	if breakdown.OversizeTotal > 0 {
		costRow(fmt.Sprintf("Supplement vehicule hors gabarit (%d jour(s))", breakdown.Days), breakdown.OversizeTotal)
	}
	if breakdown.CleaningFee > 0 {
		costRow("Nettoyage ("+res.CleaningType+")", breakdown.CleaningFee)
	}
	if breakdown.FuelFee > 0 {
		costRow("Service carburant", breakdown.FuelFee)
	}
	if breakdown.LongStayDiscount > 0 {
		costRow("Remise long sejour", -breakdown.LongStayDiscount)
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(120, 8, "TOTAL", "1", 0, "L", false, 0, "")
	pdf.CellFormat(60, 8, utils.FormatDZD(breakdown.Total), "1", 0, "R", false, 0, "")
	pdf.Ln(14)

	// Terms and signature block
	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, "Le vehicule est restitue sur presentation de ce bon de commande. "+
		"Le reglement s'effectue a la restitution du vehicule. "+
		"Aero Park decline toute responsabilite pour les objets laisses a bord.", "", "", false)
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(95, 6, "Signature du client")
	pdf.Cell(95, 6, "Signature Aero Park")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("bon-%s.pdf", safeFilenamePart(res.ReservationNumber))
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 60 {
		s = s[:60]
	}
	return s
}
