// Package pdf genera el volante imprimible de una vacante publicada.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + logo URL   │  Fecha de publicación        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TÍTULO + seniority / contratación / remoto                  │
//	│  SALARIO: mínimo – máximo                                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DESCRIPCIÓN (párrafos partidos por palabras)                │
//	│  ETIQUETAS                                                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR hacia la URL pública + slug                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/jobboard-api/internal/application/dto"
	"github.com/jhoicas/jobboard-api/internal/application/joboffer"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// descriptionLineWidth caracteres por línea de descripción a tamaño 9.
const descriptionLineWidth = 95

// ── Generator ─────────────────────────────────────────────────────────────────

var _ joboffer.PDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa joboffer.PDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateJobOfferPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateJobOfferPDF(_ context.Context, offer *dto.JobOfferDetailView, publicURL string) ([]byte, error) {
	if offer == nil {
		return nil, fmt.Errorf("pdf: vacante nil")
	}
	companyName := "-"
	if offer.Company != nil {
		companyName = nonEmpty(offer.Company.Name, "-")
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(offer.Title, true).
		WithAuthor(companyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(offer, companyName))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(titleRow(offer))
	m.AddRows(salaryRow(offer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(descriptionRows(offer.Description)...)
	if len(offer.Tags) > 0 {
		m.AddRows(tagsRow(offer.Tags))
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(offer, publicURL))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa (izq) y fecha de publicación (der).
func headerRow(offer *dto.JobOfferDetailView, companyName string) core.Row {
	published := "-"
	if offer.PublishedAt != nil {
		published = offer.PublishedAt.Format("02/01/2006")
	}
	logo := ""
	if offer.Company != nil {
		logo = offer.Company.Logo
	}
	return row.New(16).Add(
		col.New(8).Add(
			text.New(companyName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(logo, props.Text{Size: 7, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("VACANTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Publicada: "+published, props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// titleRow: título y atributos de la vacante.
func titleRow(offer *dto.JobOfferDetailView) core.Row {
	remote := "Presencial"
	if offer.AllowRemote {
		remote = "Remoto"
	}
	return row.New(18).Add(
		col.New(12).Add(
			text.New(offer.Title, props.Text{Style: fontstyle.Bold, Size: 15, Top: 2}),
			text.New(fmt.Sprintf("Seniority: %s   |   Contratación: %s   |   %s",
				nonEmpty(offer.SeniorityLevel, "-"), nonEmpty(offer.HiringType, "-"), remote,
			), props.Text{Size: 9, Top: 11, Color: colorGray}),
		),
	)
}

// salaryRow: rango salarial tal como fue publicado (no se valida mínimo <= máximo).
func salaryRow(offer *dto.JobOfferDetailView) core.Row {
	return row.New(10).Add(
		col.New(12).Add(
			text.New("Salario: "+salaryRange(offer.MinimumSalary, offer.MaximumSalary), props.Text{
				Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 2,
			}),
		),
	)
}

// descriptionRows: una fila por línea, partida por palabras.
func descriptionRows(description string) []core.Row {
	rows := []core.Row{
		row.New(7).Add(col.New(12).Add(
			text.New("DESCRIPCIÓN", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
		)),
	}
	for _, l := range wrapWords(description, descriptionLineWidth) {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New(l, props.Text{Size: 9, Top: 0.5}),
		)))
	}
	return rows
}

// tagsRow: etiquetas separadas por " · ".
func tagsRow(tags []dto.TagResponse) core.Row {
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, "#"+t.Name)
	}
	return row.New(10).Add(col.New(12).Add(
		text.New(strings.Join(names, " · "), props.Text{Size: 9, Top: 3, Color: colorPrimary}),
	))
}

// footerRow: QR a la URL pública + slug.
func footerRow(offer *dto.JobOfferDetailView, publicURL string) core.Row {
	if publicURL == "" {
		return row.New(8).Add(col.New(12).Add(
			text.New(offer.Slug, props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 2}),
		))
	}
	return row.New(45).Add(
		col.New(4).Add(code.NewQr(publicURL, props.Rect{
			Percent: 95,
			Center:  true,
		})),
		col.New(8).Add(
			text.New("Escanea el código QR para ver la vacante\ny postularte en línea.", props.Text{
				Size: 9, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New(publicURL, props.Text{
				Size: 7, Top: 20, Left: 3, Color: colorPrimary,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// salaryRange "4.000 - 4.500"; sin salarios devuelve "A convenir".
func salaryRange(lo, hi int) string {
	switch {
	case lo == 0 && hi == 0:
		return "A convenir"
	case hi == 0:
		return "desde " + formatMoney(lo)
	case lo == 0:
		return "hasta " + formatMoney(hi)
	}
	return formatMoney(lo) + " - " + formatMoney(hi)
}

// formatMoney inserta puntos de miles. Ej: 25000 -> "25.000", 1000000 -> "1.000.000".
func formatMoney(v int) string {
	s := strconv.Itoa(v)
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}

// wrapWords parte el texto en líneas de como máximo width runas sin cortar palabras
// (salvo palabras más largas que width). Respeta los saltos de línea originales.
func wrapWords(s string, width int) []string {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		var cur []rune
		for _, word := range strings.Fields(para) {
			w := []rune(word)
			for len(w) > width {
				if len(cur) > 0 {
					lines = append(lines, string(cur))
					cur = nil
				}
				lines = append(lines, string(w[:width]))
				w = w[width:]
			}
			switch {
			case len(cur) == 0:
				cur = append(cur, w...)
			case len(cur)+1+len(w) <= width:
				cur = append(append(cur, ' '), w...)
			default:
				lines = append(lines, string(cur))
				cur = append([]rune(nil), w...)
			}
		}
		lines = append(lines, string(cur))
	}
	return lines
}
