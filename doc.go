// Package finance provides a personal finance ledger: a list of incomes and
// expenses kept against a running balance, and persisted to a plain text
// file. It is designed to be local-first and readable: the ledger file can be
// inspected, versioned and fixed by hand.
//
// The core functionalities include:
//   - Ledger Management: recording incomes and expenses, and removing them,
//     while the trailing balance row always holds the running total.
//   - Data Persistence: encoding entries one per line as
//     `kind,YYYY-MM-DD HH:MM,label,amount`, and decoding them back while
//     skipping the lines that cannot be read.
//   - Storage: a Backend abstracts the durable store, a Store binds a Ledger
//     to it and writes it back on Save and Close.
//   - Export: JSON and YAML documents of the ledger, and JSONPath queries on
//     them.
//
// This package serves as the foundational logic for the `fin` command-line
// tool.
package finance
