// Deploys the built ui/dist directory to Vercel as a static site via
// the REST API, bypassing the CLI's --scope bug in non-interactive mode.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"customer_ops_assessment/pkg/core/deploy"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgCyan)
)

var (
	distDir     string
	projectName string
	teamID      string
	wait        bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy the static assessment site to Vercel",
		RunE:  runDeploy,
	}

	rootCmd.Flags().StringVar(&distDir, "dir", "ui/dist", "Built static site directory")
	rootCmd.Flags().StringVar(&projectName, "project", "athenahealth-ops-assessment", "Vercel project name")
	rootCmd.Flags().StringVar(&teamID, "team", "", "Vercel team id (optional)")
	rootCmd.Flags().BoolVar(&wait, "wait", false, "Poll until the deployment is READY")

	if err := rootCmd.Execute(); err != nil {
		errorColor.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func runDeploy(cmd *cobra.Command, args []string) error {
	if info, err := os.Stat(distDir); err != nil || !info.IsDir() {
		return fmt.Errorf("%s not found. Run `npm run build` first", distDir)
	}

	token, err := deploy.TokenFromAuthFile()
	if err != nil {
		return err
	}
	client := deploy.NewVercelClient(token, teamID)

	projectID, err := client.EnsureProject(projectName)
	if err != nil {
		return fmt.Errorf("failed to ensure project: %w", err)
	}
	infoColor.Printf("Project '%s' ready (id: %s)\n", projectName, projectID)

	files, err := deploy.CollectFiles(distDir)
	if err != nil {
		return fmt.Errorf("failed to collect files: %w", err)
	}
	total := 0
	for _, f := range files {
		total += f.Size
	}
	infoColor.Printf("Found %d files in %s (%.0f KB total)\n", len(files), distDir, float64(total)/1024)

	url, err := client.Deploy(projectName, files)
	if err != nil {
		return err
	}
	infoColor.Printf("Deployment created: https://%s\n", url)

	if wait {
		infoColor.Println("Waiting for deployment to be READY...")
		if err := client.WaitReady(url, 5*time.Minute); err != nil {
			return err
		}
	}

	successColor.Println("Deployed successfully!")
	fmt.Printf("  URL: https://%s\n", url)
	fmt.Printf("  Production: https://%s.vercel.app\n", projectName)
	return nil
}
