// Package cmd - templates command
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"energy-quote/core/calc"
	"energy-quote/core/industry"
	"energy-quote/core/template"
)

// templatesCmd lists the registered templates, calculators, and industries
var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List registered templates and calculators",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Industries:")
		for _, slug := range industry.Default.Slugs() {
			ctx, err := industry.Default.Resolve(slug.String())
			if err != nil {
				continue
			}
			borrowed := ""
			if ctx.Borrowed() {
				borrowed = fmt.Sprintf(" (borrows template %q)", ctx.TemplateKey)
			}
			fmt.Printf("  %-15s calculator=%s%s\n", slug, ctx.CalculatorID, borrowed)
		}

		fmt.Println("\nTemplates:")
		for _, key := range template.Default.Keys() {
			t := template.Default.GetTemplate(key)
			fmt.Printf("  %-15s v%-6s %2d questions, %d parts\n", key, t.Version, len(t.Questions), len(t.Parts))
		}

		fmt.Println("\nCalculators:")
		for _, id := range calc.Default.IDs() {
			fmt.Printf("  %s\n", id)
		}
		return nil
	},
}
