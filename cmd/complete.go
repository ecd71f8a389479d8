package cmd

import (
	"github.com/etnz/finance/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion tree of the fin command.
func Completion() *complete.Command {
	kinds := predict.Set{"expense", "income"}
	add := &complete.Command{
		Flags: map[string]complete.Predictor{
			"label":  predict.Something,
			"amount": predict.Something,
		},
	}

	topics, _ := docs.GetAllTopics()

	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"ledger-file": predict.Files("*.csv"),
			"currency":    predict.Set{"USD", "EUR", "GBP", "CHF", "JPY", "CAD"},
			"v":           predict.Nothing,
		},
		Args: predict.Files("*.csv"),
		Sub: map[string]*complete.Command{
			"shell":       {Args: predict.Files("*.csv")},
			"add-expense": add,
			"add-income":  add,
			"remove": {Flags: map[string]complete.Predictor{
				"kind":  kinds,
				"index": predict.Something,
			}},
			"balance": {},
			"list": {Flags: map[string]complete.Predictor{
				"kind":  predict.Set{"all", "expense", "income"},
				"label": predict.Something,
				"head":  predict.Something,
				"tail":  predict.Something,
			}},
			"summary":       {Flags: map[string]complete.Predictor{"label": predict.Something}},
			"check":         {},
			"format-ledger": {},
			"export": {Flags: map[string]complete.Predictor{
				"format": predict.Set{"json", "yaml"},
				"o":      predict.Files("*"),
			}},
			"query": {Args: predict.Something},
			"topic": {Args: predict.Set(append(topics, "*"))},
			"help":  {},
		},
	}
}
