// Package renderer renders ledger views as markdown.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"iter"
	"strings"
	"text/template"
	"time"

	"github.com/etnz/finance"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed templates/*.md
var templates embed.FS

// Row is an entry along with its position in the ledger.
type Row struct {
	Index int
	finance.Entry
}

// Rows collects a ledger listing.
func Rows(entries iter.Seq2[int, finance.Entry]) []Row {
	var rows []Row
	for i, e := range entries {
		rows = append(rows, Row{Index: i, Entry: e})
	}
	return rows
}

// Balance renders the balance row of a ledger.
func Balance(balance finance.Entry, currency string) string {
	return renderTemplate("balance.md", currency, balance)
}

// Transactions renders a listing of entries under a title.
func Transactions(title string, rows []Row, currency string) string {
	data := struct {
		Title string
		Rows  []Row
	}{title, rows}
	return renderTemplate("transactions.md", currency, data)
}

// Summary renders the totals of a ledger, and its balance when known.
func Summary(totals finance.Totals, balance *finance.Entry, currency string) string {
	data := struct {
		finance.Totals
		Balance *finance.Entry
	}{totals, balance}
	return renderTemplate("summary.md", currency, data)
}

// Check renders the result of a ledger verification.
func Check(err error, totals finance.Totals, currency string) string {
	data := struct {
		Err     error
		Count   int
		Balance decimal.Decimal
	}{err, totals.IncomeCount + totals.ExpenseCount, totals.Net()}
	return renderTemplate("check.md", currency, data)
}

// funcs returns the template helpers formatting amounts in currency.
func funcs(currency string) template.FuncMap {
	return template.FuncMap{
		"amount": func(d decimal.Decimal) string { return finance.FormatAmount(d, currency) },
		"time":   func(t time.Time) string { return t.Format(finance.TimeLayout) },
		"upper":  func(s string) string { return cases.Upper(language.Und).String(s) },
	}
}

// renderTemplate renders one of the embedded templates.
func renderTemplate(file, currency string, data any) string {
	content, err := fs.ReadFile(templates, "templates/"+file)
	if err != nil {
		return fmt.Sprintf("error reading template %q: %v", file, err)
	}

	tmpl, err := template.New(file).Funcs(funcs(currency)).Parse(string(content))
	if err != nil {
		return fmt.Sprintf("error parsing template %q: %v", file, err)
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", file, err)
	}
	return b.String()
}
