// Pre-computes a customer operations assessment and writes it as
// static JSON, ready to be baked into the static site build.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"customer_ops_assessment/pkg/core/assess"
	"customer_ops_assessment/pkg/core/config"
	"customer_ops_assessment/pkg/core/refdata"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgCyan)
)

var (
	companyID    string
	outPath      string
	registryPath string
	referenceDir string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the customer ops assessment JSON artifact",
		Long: `Runs the full assessment for a configured company and writes the
result as indented JSON. Run before the UI build to bake the data
into the static site (Vite copies public/ into dist/).`,
		RunE: runGenerate,
	}

	rootCmd.Flags().StringVar(&companyID, "company", "athenahealth", "Company to assess")
	rootCmd.Flags().StringVar(&outPath, "out", "ui/public/assessment.json", "Output file path")
	rootCmd.Flags().StringVar(&registryPath, "registry", "config/companies.yaml", "Company registry path")
	rootCmd.Flags().StringVar(&referenceDir, "reference", "reference/customer_ops", "Reference data directory")

	if err := rootCmd.Execute(); err != nil {
		errorColor.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	registry, err := config.Load(registryPath)
	if err != nil {
		return fmt.Errorf("failed to load company registry: %w", err)
	}
	cfg, err := registry.Company(companyID)
	if err != nil {
		return err
	}

	infoColor.Printf("Running %s assessment (no network calls needed)...\n", companyID)

	store := refdata.NewStore(referenceDir)
	result, err := assess.Run(cfg, store, assess.DefaultPolicy())
	if err != nil {
		return fmt.Errorf("assessment failed: %w", err)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize assessment: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}

	successColor.Printf("Wrote %s (%.1f KB)\n", outPath, float64(len(data))/1024)
	infoColor.Println("Done. Now run `npm run build` in the ui/ directory.")
	return nil
}
