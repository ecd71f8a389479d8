package finance

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/PaesslerAG/jsonpath"
	"gopkg.in/yaml.v3"
)

// MarshalJSON writes the entry with its fields in a fixed order, and its
// amount as a number with two fractional digits.
func (e Entry) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("kind", e.Kind.String())
	w.Append("time", e.Time.Format(TimeLayout))
	w.Optional("label", e.Label)
	w.Append("amount", json.Number(e.Amount.StringFixed(2)))
	return w.MarshalJSON()
}

// indexedEntry is an entry exported along with its position in the ledger.
type indexedEntry struct {
	Index int
	Entry
}

func (e indexedEntry) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("index", e.Index)
	w.Append("kind", e.Kind.String())
	w.Append("time", e.Time.Format(TimeLayout))
	w.Optional("label", e.Label)
	w.Append("amount", json.Number(e.Amount.StringFixed(2)))
	return w.MarshalJSON()
}

// yamlEntry is the YAML form of an indexed entry.
type yamlEntry struct {
	Index  int    `yaml:"index"`
	Kind   string `yaml:"kind"`
	Time   string `yaml:"time"`
	Label  string `yaml:"label,omitempty"`
	Amount string `yaml:"amount"`
}

// yamlBalance is the YAML form of the balance row.
type yamlBalance struct {
	Time   string `yaml:"time"`
	Amount string `yaml:"amount"`
}

type yamlDocument struct {
	Entries []yamlEntry  `yaml:"entries"`
	Balance *yamlBalance `yaml:"balance,omitempty"`
}

// document builds the export document of a ledger: every income and expense
// with its index, then the current balance when there is one.
func document(l *Ledger) ([]byte, error) {
	entries := make([]indexedEntry, 0, l.Len())
	for i, e := range l.Entries(All) {
		entries = append(entries, indexedEntry{Index: i, Entry: e})
	}

	var w jsonObjectWriter
	w.Append("entries", entries)
	if b, err := l.CurrentBalance(); err == nil {
		var bw jsonObjectWriter
		bw.Append("time", b.Time.Format(TimeLayout))
		bw.Append("amount", json.Number(b.Amount.StringFixed(2)))
		w.Append("balance", &bw)
	}
	return w.MarshalJSON()
}

// ExportJSON writes the ledger as a single JSON document.
func ExportJSON(w io.Writer, l *Ledger) error {
	doc, err := document(l)
	if err != nil {
		return fmt.Errorf("failed to export ledger: %w", err)
	}
	if _, err := w.Write(append(doc, '\n')); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

// ExportYAML writes the ledger as a YAML document with the same structure as
// ExportJSON.
func ExportYAML(w io.Writer, l *Ledger) error {
	var doc yamlDocument
	doc.Entries = make([]yamlEntry, 0, l.Len())
	for i, e := range l.Entries(All) {
		doc.Entries = append(doc.Entries, yamlEntry{
			Index:  i,
			Kind:   e.Kind.String(),
			Time:   e.Time.Format(TimeLayout),
			Label:  e.Label,
			Amount: e.Amount.StringFixed(2),
		})
	}
	if b, err := l.CurrentBalance(); err == nil {
		doc.Balance = &yamlBalance{Time: b.Time.Format(TimeLayout), Amount: b.Amount.StringFixed(2)}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to export ledger: %w", err)
	}
	return enc.Close()
}

// Query evaluates a JSONPath expression against the JSON export of the ledger.
//
// A result made of a single value is returned as that value.
func Query(l *Ledger, path string) (any, error) {
	doc, err := document(l)
	if err != nil {
		return nil, fmt.Errorf("failed to export ledger: %w", err)
	}
	var jobj any
	if err := json.Unmarshal(doc, &jobj); err != nil {
		return nil, fmt.Errorf("failed to decode export: %w", err)
	}
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, errors.Join(ErrInvalidArgument, fmt.Errorf("error evaluating %q: %w", path, err))
	}
	// jsonpath returns either a value or a list of values depending on the expression.
	if jlist, ok := jval.([]any); ok && len(jlist) == 1 {
		jval = jlist[0]
	}
	return jval, nil
}
