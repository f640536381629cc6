// Package cmd - quote command
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"energy-quote/core/contract"
	"energy-quote/core/types"
	"energy-quote/internal/logging"
)

var (
	quoteIndustry     string
	answersFile       string
	utilityRate       float64
	demandCharge      float64
	quoteOutputFormat string
)

// quoteCmd runs one contract quote from an answers file
var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Run a contract quote for one set of intake answers",
	Long: `Run the Layer A contract pipeline: resolve the industry, validate its
template/calculator pairing, map the answers, and compute the load profile
and pricing freeze.

The answers file is a JSON object keyed by question id:

  {"rooms": 150, "occupancyPct": 70}

Examples:
  energy-quote quote --industry hotel --answers answers.json
  energy-quote quote --industry gas_station --answers answers.json --rate 0.14`,
	RunE: runQuote,
}

func init() {
	quoteCmd.Flags().StringVarP(&quoteIndustry, "industry", "i", "", "industry identifier (required)")
	quoteCmd.Flags().StringVarP(&answersFile, "answers", "a", "", "answers JSON file (required)")
	quoteCmd.Flags().Float64Var(&utilityRate, "rate", 0, "electricity rate in $/kWh (0 uses the fallback)")
	quoteCmd.Flags().Float64Var(&demandCharge, "demand-charge", 0, "demand charge in $/kW-month (0 uses the fallback)")
	quoteCmd.Flags().StringVarP(&quoteOutputFormat, "format", "f", "json", "output format (json)")
	_ = quoteCmd.MarkFlagRequired("industry")
	_ = quoteCmd.MarkFlagRequired("answers")
}

func runQuote(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(answersFile)
	if err != nil {
		return fmt.Errorf("reading answers file: %w", err)
	}

	var answers types.Answers
	if err := json.Unmarshal(data, &answers); err != nil {
		return fmt.Errorf("parsing answers file: %w", err)
	}

	params := contract.RunParams{
		Industry: quoteIndustry,
		Answers:  answers,
	}
	if utilityRate > 0 || demandCharge > 0 {
		intel := &types.LocationIntel{}
		if utilityRate > 0 {
			rate := decimal.NewFromFloat(utilityRate)
			intel.UtilityRate = &rate
		}
		if demandCharge > 0 {
			charge := decimal.NewFromFloat(demandCharge)
			intel.DemandCharge = &charge
		}
		params.LocationIntel = intel
	}

	logging.Info("running contract quote")
	result, err := contract.Run(params)
	if err != nil {
		return err
	}

	return printJSON(result)
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
