package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"

	"github.com/ajitpratap0/tripplanner/internal/models"
)

// DefaultCurrencyCode labels budgets in PDF output, where the core fonts
// cannot draw the rupee sign.
const DefaultCurrencyCode = "INR"

// PDF renders the summary as a single A4 page and returns the document bytes
// with a suggested filename.
func PDF(s models.Summary, currencyCode string) ([]byte, string, error) {
	if currencyCode == "" {
		currencyCode = DefaultCurrencyCode
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	text := func(str string) string { return tr(latin1(str)) }

	pdf.SetTitle(text(orDash(s.TripName)), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, text(orDash(s.TripName)))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Destination : %s", orDash(s.Destination)),
		fmt.Sprintf("Start date  : %s", dateOrDash(s.StartDate)),
		fmt.Sprintf("End date    : %s", dateOrDash(s.EndDate)),
		fmt.Sprintf("Duration    : %d days", s.Duration),
		fmt.Sprintf("Budget      : %s %.2f", currencyCode, s.Budget),
	}
	for _, l := range lines {
		pdf.Cell(0, 7, text(l))
		pdf.Ln(7)
	}

	section := func(title string, items []string, numbered bool) {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 13)
		pdf.Cell(0, 8, title)
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		if len(items) == 0 {
			pdf.Cell(0, 6, "-")
			pdf.Ln(6)
			return
		}
		for i, item := range items {
			if numbered {
				item = fmt.Sprintf("%d. %s", i+1, item)
			}
			pdf.MultiCell(0, 6, text(item), "", "", false)
		}
	}

	section("Planned activities", s.Activities, true)
	section("Suggestions", SuggestionLines(s, false), false)
	section("Places to visit", s.Places, true)

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, text("Fun fact: "+s.Fact), "", "", false)
	pdf.MultiCell(0, 6, text("Quote: "+s.Quote), "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("render: writing PDF: %w", err)
	}

	start := "undated"
	if s.StartDate != nil {
		start = *s.StartDate
	}
	filename := fmt.Sprintf("TRIP_%s_%s.pdf", safeFilenamePart(s.Destination), safeFilenamePart(start))
	return buf.Bytes(), filename, nil
}

// latin1 drops runes the PDF core fonts cannot encode.
func latin1(s string) string {
	return strings.Map(func(r rune) rune {
		if r > 0xFF {
			return -1
		}
		return r
	}, s)
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "trip"
	}
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
