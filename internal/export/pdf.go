// Package export renders finished party plans as printable documents.
package export

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-pdf/fpdf"
	"github.com/phuslu/log"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"partyplanner/internal/model"
)

const (
	fontFamily = "Arial"
	bodySize   = 10.0
	lineHeight = 5.0
)

// MetaField is one labelled line printed under the title
type MetaField struct {
	Label string
	Value string
}

// Plan is the printable form of a party plan
type Plan struct {
	Title    string
	Meta     []MetaField
	Sections []model.PlanSection
}

// FileName returns the download name of a plan document
func FileName(city, date string) string {
	return fmt.Sprintf("birthday_plan_%s_%s.pdf", city, date)
}

// turkishASCII keeps case, unlike the search normalizer
var turkishASCII = strings.NewReplacer(
	"ı", "i", "İ", "I",
	"ş", "s", "Ş", "S",
	"ğ", "g", "Ğ", "G",
	"ü", "u", "Ü", "U",
	"ö", "o", "Ö", "O",
	"ç", "c", "Ç", "C",
	"₺", "TL",
	"–", "-", "—", "-",
	"…", "...",
	"’", "'", "‘", "'", "“", "\"", "”", "\"",
)

// ASCII transliterates s for the built-in PDF fonts. Turkish letters map
// to their base letter, other accents are stripped and anything left
// outside ASCII (emoji included) is dropped.
func ASCII(s string) string {
	s = turkishASCII.Replace(strings.TrimSpace(s))
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, out)
}

// RenderPlanPDF lays out the title, meta lines and one headed block per
// section. Section bodies are markdown.
func RenderPlanPDF(plan Plan) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(13, 13, 13)
	pdf.SetAutoPageBreak(true, 13)
	pdf.SetTitle(ASCII(plan.Title), false)
	pdf.SetCreator("partyplanner", false)
	pdf.AddPage()

	pdf.SetFont(fontFamily, "B", 16)
	pdf.MultiCell(0, 8, ASCII(plan.Title), "", "L", false)
	pdf.Ln(3)

	for _, m := range plan.Meta {
		if strings.TrimSpace(m.Value) == "" {
			continue
		}
		pdf.SetFont(fontFamily, "B", bodySize)
		pdf.Write(lineHeight, m.Label+": ")
		pdf.SetFont(fontFamily, "", bodySize)
		pdf.Write(lineHeight, ASCII(m.Value))
		pdf.Ln(lineHeight)
	}
	pdf.Ln(5)

	md := goldmark.New(goldmark.WithExtensions(extension.Strikethrough, extension.Linkify))
	for _, sec := range plan.Sections {
		pdf.SetFont(fontFamily, "B", 13)
		pdf.MultiCell(0, 7, ASCII(sec.Title), "", "L", false)
		pdf.Ln(2)
		pdf.SetFont(fontFamily, "", bodySize)

		source := []byte(ASCII(sec.Content))
		r := &markdownWriter{pdf: pdf, source: source}
		if err := ast.Walk(md.Parser().Parse(text.NewReader(source)), r.walk); err != nil {
			return nil, fmt.Errorf("failed to render section %q: %w", sec.Title, err)
		}
		pdf.Ln(6)
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to lay out PDF: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF output: %w", err)
	}
	log.Debug().Str("title", plan.Title).Int("pdf_size", buf.Len()).Msg("PDF generated")
	return buf.Bytes(), nil
}

// markdownWriter streams a goldmark tree into the current page
type markdownWriter struct {
	pdf       *fpdf.Fpdf
	source    []byte
	bold      bool
	italic    bool
	listLevel int
}

func (w *markdownWriter) setFont() {
	style := ""
	if w.bold {
		style += "B"
	}
	if w.italic {
		style += "I"
	}
	w.pdf.SetFont(fontFamily, style, bodySize)
}

func (w *markdownWriter) walk(n ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node := n.(type) {
	case *ast.Heading:
		if entering {
			w.pdf.SetFont(fontFamily, "B", 11)
		} else {
			w.pdf.Ln(lineHeight + 1)
			w.setFont()
		}
	case *ast.Paragraph, *ast.TextBlock:
		if !entering {
			w.pdf.Ln(lineHeight)
			if w.listLevel == 0 {
				w.pdf.Ln(1.5)
			}
		}
	case *ast.Text:
		if entering {
			w.pdf.Write(lineHeight, string(node.Segment.Value(w.source)))
			if node.SoftLineBreak() || node.HardLineBreak() {
				w.pdf.Ln(lineHeight)
			}
		}
	case *ast.String:
		if entering {
			w.pdf.Write(lineHeight, string(node.Value))
		}
	case *ast.Emphasis:
		if node.Level == 2 {
			w.bold = entering
		} else {
			w.italic = entering
		}
		w.setFont()
	case *ast.CodeSpan:
		if entering {
			for c := node.FirstChild(); c != nil; c = c.NextSibling() {
				if t, ok := c.(*ast.Text); ok {
					w.pdf.Write(lineHeight, string(t.Segment.Value(w.source)))
				}
			}
		}
		return ast.WalkSkipChildren, nil
	case *ast.AutoLink:
		if entering {
			w.pdf.Write(lineHeight, string(node.URL(w.source)))
		}
		return ast.WalkSkipChildren, nil
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		if entering {
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				w.pdf.MultiCell(0, lineHeight, strings.TrimRight(string(seg.Value(w.source)), "\n"), "", "L", false)
			}
		}
		return ast.WalkSkipChildren, nil
	case *ast.List:
		if entering {
			w.listLevel++
		} else {
			w.listLevel--
			if w.listLevel == 0 {
				w.pdf.Ln(1.5)
			}
		}
	case *ast.ListItem:
		if entering {
			w.pdf.SetX(13 + float64(w.listLevel)*5)
			w.pdf.Write(lineHeight, "- ")
		}
	case *ast.ThematicBreak:
		if entering {
			y := w.pdf.GetY() + 2
			w.pdf.Line(13, y, 197, y)
			w.pdf.Ln(4)
		}
	}
	return ast.WalkContinue, nil
}
