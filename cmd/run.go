package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/biocore/biocore-cli/pkg/form"
	"github.com/biocore/biocore-cli/pkg/formatter"
	"github.com/biocore/biocore-cli/pkg/progress"
	"github.com/biocore/biocore-cli/pkg/report"
	"github.com/biocore/biocore-cli/pkg/runner"
	"github.com/biocore/biocore-cli/pkg/webhook"
)

var (
	description   string
	compoundName  string
	compoundID    string
	pdbID         string
	dockingJSON   string
	swissdockJSON string
	pymolJSON     string
	webhookURL    string
	outputFormat  string
	timeout       time.Duration
	copyReport    bool
	saveDir       string
)

func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run ANALYSIS_NAME",
		Short: "Submit one analysis to the BioCore webhook and render the report",
		Long: `Submit a compound + protein target payload to the configured BioCore
webhook and wait for the report. The remote pipeline profiles the compound,
fetches the target structure and synthesizes a markdown report.

Examples:
  # Analyze a compound by name against a PDB target
  biocore run "Ibuprofen vs COX-2" --compound ibuprofen --pdb 1eqg

  # Use a PubChem CID and attach docking poses from a file
  biocore run "Docking check" --cid 3672 --pdb 1EQG --docking @poses.json

  # Save the report next to the terminal output
  biocore run "Aspirin study" --compound aspirin --pdb 1oxr --save-dir .`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalysis,
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Optional analysis description")
	cmd.Flags().StringVar(&compoundName, "compound", "", "Compound name (e.g. ibuprofen)")
	cmd.Flags().StringVar(&compoundID, "cid", "", "PubChem CID (numeric, wins over --compound)")
	cmd.Flags().StringVar(&pdbID, "pdb", "", "4-character RCSB PDB accession (e.g. 1EQG)")
	cmd.Flags().StringVar(&dockingJSON, "docking", "", "Docking results as inline JSON or @file")
	cmd.Flags().StringVar(&swissdockJSON, "swissdock", "", "SwissDock results as inline JSON or @file")
	cmd.Flags().StringVar(&pymolJSON, "pymol", "", "PyMOL visualization data as inline JSON or @file")
	cmd.Flags().StringVar(&webhookURL, "url", "", "BioCore webhook URL (overrides env and config)")
	cmd.Flags().StringVarP(&outputFormat, "output", "o", "human", "Output format (human, json, yaml, html)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Request timeout (0 waits indefinitely)")
	cmd.Flags().BoolVar(&copyReport, "copy", false, "Copy the raw report to the clipboard on success")
	cmd.Flags().StringVar(&saveDir, "save-dir", "", "Directory to save the raw report into on success")

	return cmd
}

func runAnalysis(cmd *cobra.Command, args []string) error {
	analysisName := args[0]

	url, err := resolveWebhookURL()
	if err != nil {
		return err
	}

	docking, err := readJSONValue(dockingJSON)
	if err != nil {
		return fmt.Errorf("read docking results: %w", err)
	}
	swissdock, err := readJSONValue(swissdockJSON)
	if err != nil {
		return fmt.Errorf("read swissdock results: %w", err)
	}
	pymol, err := readJSONValue(pymolJSON)
	if err != nil {
		return fmt.Errorf("read pymol data: %w", err)
	}

	formState := form.FormState{
		AnalysisName:  analysisName,
		Description:   description,
		CompoundName:  compoundName,
		CompoundID:    compoundID,
		PDBID:         pdbID,
		DockingJSON:   docking,
		SwissDockJSON: swissdock,
		PyMOLJSON:     pymol,
		WebhookURL:    url,
	}

	printHeader(formState)

	ui := newTermUI()
	narrator := progress.New(progress.DefaultStages, ui)
	controller := runner.New(webhook.NewClient(timeout), narrator, ui)

	switch controller.Run(formState) {
	case runner.Failed:
		return fmt.Errorf("analysis failed: %s", controller.ErrorMessage())

	case runner.Succeeded:
		printSuccess("Analysis complete")
		name, text, _ := controller.LastReport()
		res, _ := controller.LastResult()

		if err := formatter.DisplayResult(res, name, outputFormat); err != nil {
			return err
		}

		actions := report.NewActions()
		actions.SetReport(name, text)
		if copyReport {
			if err := actions.Copy(); err != nil {
				printError(fmt.Sprintf("clipboard copy failed: %v", err))
			} else {
				printSuccess("Report copied to clipboard")
			}
		}
		if saveDir != "" {
			path, err := actions.Download(saveDir)
			if err != nil {
				return fmt.Errorf("save report: %w", err)
			}
			printSuccess(fmt.Sprintf("Report saved to %s", path))
		}
		return nil

	default:
		// Validation errors were already printed through the UI binding.
		return fmt.Errorf("fix the inputs above and run again")
	}
}

// resolveWebhookURL picks the endpoint in priority order: flag, env,
// persisted config.
func resolveWebhookURL() (string, error) {
	if webhookURL != "" {
		return webhookURL, nil
	}
	if env := os.Getenv("BIOCORE_WEBHOOK_URL"); env != "" {
		return env, nil
	}
	store, err := openStore()
	if err != nil {
		return "", err
	}
	url, _, err := store.Load()
	if err != nil {
		return "", err
	}
	return url, nil
}

// readJSONValue accepts inline JSON or, with a leading @, a file path.
func readJSONValue(v string) (string, error) {
	if !strings.HasPrefix(v, "@") {
		return v, nil
	}
	data, err := os.ReadFile(strings.TrimPrefix(v, "@"))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// termUI is the terminal binding for both the controller and the
// narrator: validation errors and stage transitions print here, and
// the spinner is torn down when the controller unlocks.
type termUI struct {
	spin *spinner.Spinner
}

func newTermUI() *termUI {
	return &termUI{spin: spinner.New(spinner.CharSets[11], 100*time.Millisecond)}
}

func (u *termUI) SetBusy(busy bool) {
	if !busy {
		u.spin.Stop()
	}
}

func (u *termUI) ShowValidationErrors(errs []string) {
	for _, e := range errs {
		printError(e)
	}
}

func (u *termUI) StageActive(index int, label string) {
	u.spin.Suffix = " " + label + "..."
	if !u.spin.Active() {
		u.spin.Start()
	}
}

func (u *termUI) StageDone(index int, label string) {
	u.spin.Stop()
	printSuccess(label)
}

func printHeader(f form.FormState) {
	cyan := color.New(color.FgCyan, color.Bold)
	fmt.Println()
	cyan.Println("🧬 BioCore Analysis")
	fmt.Printf("📝 Analysis: %s\n", f.AnalysisName)
	if f.CompoundID != "" {
		fmt.Printf("⚗️  Compound: CID %s\n", f.CompoundID)
	} else if f.CompoundName != "" {
		fmt.Printf("⚗️  Compound: %s\n", f.CompoundName)
	}
	if f.PDBID != "" {
		fmt.Printf("🎯 Target: %s\n", strings.ToUpper(strings.TrimSpace(f.PDBID)))
	}
	fmt.Println()
}

func printSuccess(msg string) {
	green := color.New(color.FgGreen)
	green.Printf("✓ %s\n", msg)
}

func printError(msg string) {
	red := color.New(color.FgRed)
	red.Printf("✗ %s\n", msg)
}
