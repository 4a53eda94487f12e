package rendering

const inch = 72.0

// Page geometry in points
const (
	marginX      = 0.5 * inch
	marginY      = 0.3 * inch
	sampleMargin = 0.5 * inch
)

type rgb struct {
	r, g, b int
}

var (
	colorPrimary   = rgb{0x2A, 0x10, 0x52}
	colorSecondary = rgb{0x33, 0x33, 0x33}
	colorText      = rgb{0x00, 0x00, 0x00}
	colorSubtext   = rgb{0x66, 0x66, 0x66}
	colorError     = rgb{0xFF, 0x00, 0x00}
)

// style mirrors a paragraph style: font size, line height and vertical spacing in points
type style struct {
	size    float64
	leading float64
	before  float64
	after   float64
	indent  float64
	font    string
	color   rgb
	align   string
}

var (
	styleHeaderName = style{size: 20, leading: 24, after: 10, font: "B", color: colorPrimary, align: "C"}
	styleContact    = style{size: 10, leading: 12, after: 5, color: colorText, align: "C"}
	styleSection    = style{size: 14, leading: 16, before: 8, after: 2, font: "B", color: colorPrimary}
	styleNormal     = style{size: 10, leading: 12, color: colorText}
	styleContent    = style{size: 10, leading: 13, after: 3, color: colorText}
	styleListItem   = style{size: 9, leading: 13, after: 3, indent: 10, color: colorText}
	styleSkillItem  = style{size: 9, leading: 12, before: 1, after: 1, color: colorText}
	styleEntryTitle = style{size: 10, leading: 12, before: 4, after: 1, color: colorText}
	styleJobTitle   = style{size: 10, leading: 12, before: 1, after: 2, color: colorPrimary}
	styleDetails    = style{size: 9, leading: 11, before: 1, after: 2, color: colorSubtext}
	styleError      = style{size: 11, leading: 14, before: 2, after: 2, color: colorError}
	styleTitle      = style{size: 18, leading: 22, after: 6, font: "B", color: colorText, align: "C"}
)
