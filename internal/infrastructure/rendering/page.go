package rendering

import (
	"strings"

	"github.com/go-pdf/fpdf"
)

const fontFamily = "Helvetica"

// span is a run of text sharing one font style
type span struct {
	text   string
	bold   bool
	italic bool
}

func plain(text string) span  { return span{text: text} }
func bold(text string) span   { return span{text: text, bold: true} }
func italic(text string) span { return span{text: text, italic: true} }

// page wraps an fpdf document with paragraph level helpers
type page struct {
	pdf   *fpdf.Fpdf
	tr    func(string) string
	left  float64
	width float64
}

func newPage(left, top, right, bottom float64) *page {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(left, top, right)
	pdf.SetAutoPageBreak(true, bottom)
	pdf.AddPage()

	w, _ := pdf.GetPageSize()
	return &page{
		pdf:   pdf,
		tr:    pdf.UnicodeTranslatorFromDescriptor(""),
		left:  left,
		width: w - left - right,
	}
}

func (p *page) setFont(st style, s span) {
	fontStyle := st.font
	if s.bold && !strings.ContainsRune(fontStyle, 'B') {
		fontStyle += "B"
	}
	if s.italic && !strings.ContainsRune(fontStyle, 'I') {
		fontStyle += "I"
	}
	p.pdf.SetFont(fontFamily, fontStyle, st.size)
	p.pdf.SetTextColor(st.color.r, st.color.g, st.color.b)
}

func (p *page) space(h float64) {
	if h > 0 {
		p.pdf.SetY(p.pdf.GetY() + h)
	}
}

// paragraph writes flowing text that wraps at the right margin
func (p *page) paragraph(st style, spans ...span) {
	p.space(st.before)

	if st.align != "" && st.align != "L" {
		p.aligned(st, spans)
	} else {
		p.pdf.SetLeftMargin(p.left + st.indent)
		p.pdf.SetX(p.left + st.indent)
		for _, s := range spans {
			p.setFont(st, s)
			p.pdf.Write(st.leading, p.tr(s.text))
		}
		p.pdf.Ln(st.leading)
		p.pdf.SetLeftMargin(p.left)
	}

	p.space(st.after)
}

// aligned writes a centred or right aligned paragraph in a single font
func (p *page) aligned(st style, spans []span) {
	var sb strings.Builder
	for _, s := range spans {
		sb.WriteString(s.text)
	}

	first := span{}
	if len(spans) > 0 {
		first = spans[0]
	}
	p.setFont(st, first)
	p.pdf.SetX(p.left)
	p.pdf.MultiCell(p.width, st.leading, p.tr(sb.String()), "", st.align, false)
}

func (p *page) bullet(st style, spans ...span) {
	p.paragraph(st, append([]span{plain("• ")}, spans...)...)
}

// row writes bold text on the left and a right aligned value on the same line
func (p *page) row(st style, left, right string) {
	p.space(st.before)
	p.pdf.SetX(p.left)

	rightWidth := 0.0
	if right != "" {
		p.setFont(st, span{})
		rightWidth = p.pdf.GetStringWidth(p.tr(right)) + 2
	}

	p.setFont(st, span{bold: true})
	p.pdf.CellFormat(p.width-rightWidth, st.leading, p.tr(left), "", 0, "L", false, 0, "")

	p.setFont(st, span{})
	p.pdf.CellFormat(rightWidth, st.leading, p.tr(right), "", 1, "R", false, 0, "")

	p.space(st.after)
}

func (p *page) divider() {
	y := p.pdf.GetY()
	p.pdf.SetDrawColor(colorSecondary.r, colorSecondary.g, colorSecondary.b)
	p.pdf.SetLineWidth(1)
	p.pdf.SetLineCapStyle("round")
	p.pdf.Line(p.left, y, p.left+p.width, y)
	p.pdf.SetY(y + 5)
}

