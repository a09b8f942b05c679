// Package render turns an assembled proposal into a paginated PDF document
// with embedded charts. Rendering is a pure function of the proposal: the
// same input always produces the same pages.
package render

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/levenlabs/go-lflag"

	"github.com/levesol/solarproposal/pkg/types"
)

// Renderer lays out proposal PDFs.
type Renderer struct {
	companyName string
	companyLine string
}

// Configured registers the renderer flags and returns a Renderer populated
// once flags are parsed.
func Configured() *Renderer {
	r := &Renderer{}
	name := lflag.String("company-name", "LEVESOL", "company name printed on proposals")
	line := lflag.String("company-line", "Energia Solar Fotovoltaica", "tagline printed under the company name")
	lflag.Do(func() {
		r.companyName = *name
		r.companyLine = *line
	})
	return r
}

// New returns a renderer with explicit branding, used by tests and the CLI.
func New(companyName, companyLine string) *Renderer {
	return &Renderer{companyName: companyName, companyLine: companyLine}
}

// Render produces the full proposal document as PDF bytes.
func (r *Renderer) Render(p *types.Proposal) ([]byte, error) {
	payback, err := paybackChart(p)
	if err != nil {
		return nil, err
	}
	bills, err := billsChart(p)
	if err != nil {
		return nil, err
	}
	firstYear, err := firstYearChart(p)
	if err != nil {
		return nil, err
	}

	doc := fpdf.New("P", "mm", "A4", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.AliasNbPages("")
	doc.SetFooterFunc(func() {
		doc.SetY(-15)
		doc.SetFont("Helvetica", "I", 8)
		doc.SetTextColor(120, 120, 120)
		doc.CellFormat(0, 10, tr(fmt.Sprintf("%s - Proposta %s - Página %d/{nb}", r.companyName, p.ProposalNumber, doc.PageNo())), "", 0, "C", false, 0, "")
	})

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	doc.RegisterImageOptionsReader("payback", opts, bytes.NewReader(payback))
	doc.RegisterImageOptionsReader("bills", opts, bytes.NewReader(bills))
	doc.RegisterImageOptionsReader("firstYear", opts, bytes.NewReader(firstYear))

	r.coverPage(doc, tr, p)
	r.systemPage(doc, tr, p)
	r.financialPage(doc, tr, p)
	r.projectionPage(doc, tr, p)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) coverPage(doc *fpdf.Fpdf, tr func(string) string, p *types.Proposal) {
	doc.AddPage()

	doc.SetFillColor(31, 58, 95)
	doc.Rect(0, 0, 210, 70, "F")
	doc.SetTextColor(255, 255, 255)
	doc.SetFont("Helvetica", "B", 28)
	doc.SetXY(15, 22)
	doc.CellFormat(0, 12, tr(r.companyName), "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 13)
	doc.SetX(15)
	doc.CellFormat(0, 8, tr(r.companyLine), "", 1, "L", false, 0, "")

	doc.SetTextColor(31, 58, 95)
	doc.SetFont("Helvetica", "B", 22)
	doc.SetXY(15, 95)
	doc.CellFormat(0, 10, tr("Proposta Comercial"), "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 14)
	doc.SetX(15)
	doc.CellFormat(0, 8, tr("Sistema Fotovoltaico Conectado à Rede"), "", 1, "L", false, 0, "")
	doc.SetX(15)
	doc.SetFont("Helvetica", "", 11)
	doc.CellFormat(0, 8, tr("Proposta nº "+p.ProposalNumber), "", 1, "L", false, 0, "")

	doc.SetXY(15, 140)
	doc.SetFont("Helvetica", "B", 12)
	doc.SetTextColor(60, 60, 60)
	doc.CellFormat(0, 8, tr("Preparada para:"), "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 11)
	for _, line := range []string{p.Client.Name, p.Client.Document, p.Client.Address, p.Client.City, p.Client.Phone} {
		if line == "" {
			continue
		}
		doc.SetX(15)
		doc.CellFormat(0, 7, tr(line), "", 1, "L", false, 0, "")
	}
}

func (r *Renderer) systemPage(doc *fpdf.Fpdf, tr func(string) string, p *types.Proposal) {
	doc.AddPage()
	r.sectionTitle(doc, tr, "Dimensionamento do Sistema")

	r.kvTable(doc, tr, [][2]string{
		{"Consumo médio mensal", fmt.Sprintf("%.2f kWh", p.Consumption.AverageMonthlyKWH)},
		{"Meses informados", strconv.Itoa(p.Consumption.MonthsReported)},
		{"Consumo mínimo / máximo", fmt.Sprintf("%.2f / %.2f kWh", p.Consumption.MinKWH, p.Consumption.MaxKWH)},
		{"Variação do consumo", fmt.Sprintf("%.1f%%", p.Consumption.VariationPct)},
		{"Tipo de fornecimento", serviceTypeLabel(p.ServiceType)},
		{"Disponibilidade mínima", fmt.Sprintf("%d kWh", p.System.AvailabilityKWH)},
	})

	doc.Ln(6)
	r.sectionTitle(doc, tr, "Sistema Proposto")
	r.kvTable(doc, tr, [][2]string{
		{"Quantidade de módulos", fmt.Sprintf("%d x %.0f W", p.System.ModuleCount, p.System.ModuleWatts)},
		{"Potência do sistema", fmt.Sprintf("%.2f kWp", p.System.SystemPowerKWP)},
		{"Inversor", fmt.Sprintf("%s (%.1f kW)", p.System.Inverter.Name, p.System.Inverter.PowerKW)},
		{"Área necessária", fmt.Sprintf("%.2f m²", p.System.RequiredAreaM2)},
		{"Geração média diária", fmt.Sprintf("%.2f kWh", p.System.DailyGenerationKWH)},
		{"Geração média mensal", fmt.Sprintf("%.2f kWh", p.System.MonthlyGenerationKWH)},
		{"Geração média anual", fmt.Sprintf("%.2f kWh", p.System.AnnualGenerationKWH)},
		{"Produtividade específica", fmt.Sprintf("%.2f kWh/kWp/ano", p.System.SpecificYieldKWHPerKWP)},
	})
}

func (r *Renderer) financialPage(doc *fpdf.Fpdf, tr func(string) string, p *types.Proposal) {
	doc.AddPage()
	r.sectionTitle(doc, tr, "Análise Financeira")

	r.kvTable(doc, tr, [][2]string{
		{"Investimento total", formatBRL(p.Financial.InvestmentTotal)},
		{"Conta mensal sem o sistema (ano 1)", formatBRL(p.Financial.FirstYearBillWithout)},
		{"Conta mensal com o sistema (ano 1)", formatBRL(p.Financial.FirstYearBillWith)},
		{"Economia mensal no primeiro ano", formatBRL(p.Financial.FirstYearMonthlySavings)},
		{"Economia acumulada em 25 anos", formatBRL(p.Financial.TotalSavings)},
	})

	doc.Ln(6)
	doc.ImageOptions("firstYear", 25, doc.GetY(), 70, 0, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	doc.ImageOptions("payback", 100, doc.GetY(), 95, 0, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	doc.SetY(doc.GetY() + 70)

	doc.SetFont("Helvetica", "", 9)
	doc.SetTextColor(90, 90, 90)
	doc.MultiCell(0, 5, tr("A projeção considera o reajuste tarifário anual e o escalonamento "+
		"da compensação de energia previsto na legislação vigente: nos primeiros "+
		"quatro anos a energia injetada é compensada parcialmente, atingindo "+
		"compensação integral a partir do quinto ano."), "", "L", false)
}

func (r *Renderer) projectionPage(doc *fpdf.Fpdf, tr func(string) string, p *types.Proposal) {
	doc.AddPage()
	r.sectionTitle(doc, tr, "Projeção de 25 Anos")

	doc.ImageOptions("bills", 15, doc.GetY(), 180, 0, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	doc.SetY(doc.GetY() + 82)

	headers := []string{"Ano", "Sem sistema", "Com sistema", "Economia mensal"}
	widths := []float64{25, 52, 52, 51}
	doc.SetFont("Helvetica", "B", 9)
	doc.SetFillColor(31, 58, 95)
	doc.SetTextColor(255, 255, 255)
	for i, h := range headers {
		doc.CellFormat(widths[i], 7, tr(h), "1", 0, "C", true, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont("Helvetica", "", 8.5)
	doc.SetTextColor(40, 40, 40)
	for i, rec := range p.YearlyProjection {
		fill := i%2 == 1
		doc.SetFillColor(240, 243, 247)
		doc.CellFormat(widths[0], 6, strconv.Itoa(rec.CalendarYear), "1", 0, "C", fill, 0, "")
		doc.CellFormat(widths[1], 6, formatBRL(rec.BillWithoutSystem), "1", 0, "R", fill, 0, "")
		doc.CellFormat(widths[2], 6, formatBRL(rec.BillWithSystem), "1", 0, "R", fill, 0, "")
		doc.CellFormat(widths[3], 6, formatBRL(rec.MonthlySavings), "1", 0, "R", fill, 0, "")
		doc.Ln(-1)
		if doc.GetY() > 270 && i < len(p.YearlyProjection)-1 {
			doc.AddPage()
		}
	}
}

func (r *Renderer) sectionTitle(doc *fpdf.Fpdf, tr func(string) string, title string) {
	doc.SetFont("Helvetica", "B", 16)
	doc.SetTextColor(31, 58, 95)
	doc.CellFormat(0, 10, tr(title), "", 1, "L", false, 0, "")
	doc.SetDrawColor(245, 134, 46)
	doc.SetLineWidth(0.8)
	doc.Line(15, doc.GetY(), 90, doc.GetY())
	doc.Ln(4)
}

func (r *Renderer) kvTable(doc *fpdf.Fpdf, tr func(string) string, rows [][2]string) {
	doc.SetFont("Helvetica", "", 10)
	for i, row := range rows {
		fill := i%2 == 1
		doc.SetFillColor(240, 243, 247)
		doc.SetTextColor(40, 40, 40)
		doc.SetFont("Helvetica", "B", 10)
		doc.CellFormat(90, 7, tr(row[0]), "1", 0, "L", fill, 0, "")
		doc.SetFont("Helvetica", "", 10)
		doc.CellFormat(90, 7, tr(row[1]), "1", 1, "R", fill, 0, "")
	}
}

func serviceTypeLabel(st types.ServiceType) string {
	switch st {
	case types.ServiceSinglePhase:
		return "Monofásico"
	case types.ServiceTwoPhase:
		return "Bifásico"
	case types.ServiceThreePhase:
		return "Trifásico"
	}
	return string(st)
}

// formatBRL formats a currency amount in the Brazilian convention
// (R$ 1.234,56).
func formatBRL(v float64) string {
	negative := v < 0
	if negative {
		v = -v
	}
	s := strconv.FormatFloat(v, 'f', 2, 64)
	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	out := "R$ " + b.String() + "," + fracPart
	if negative {
		out = "-" + out
	}
	return out
}
