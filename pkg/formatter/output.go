package formatter

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/biocore/biocore-cli/pkg/webhook"
)

// DisplayResult formats and displays a settled analysis result
func DisplayResult(res *webhook.Result, analysisName, format string) error {
	switch format {
	case "json":
		return displayJSON(res, analysisName)
	case "yaml":
		return displayYAML(res, analysisName)
	case "html":
		fmt.Println(HTMLPage(analysisName, res.Report))
		return nil
	case "human":
		fallthrough
	default:
		displayHuman(res, analysisName)
	}
	return nil
}

type machineResult struct {
	AnalysisName string        `json:"analysis_name" yaml:"analysis_name"`
	Report       string        `json:"report" yaml:"report"`
	Meta         *webhook.Meta `json:"meta,omitempty" yaml:"meta,omitempty"`
}

func displayJSON(res *webhook.Result, analysisName string) error {
	output, err := json.MarshalIndent(machineResult{AnalysisName: analysisName, Report: res.Report, Meta: res.Meta}, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(output))
	return nil
}

func displayYAML(res *webhook.Result, analysisName string) error {
	output, err := yaml.Marshal(machineResult{AnalysisName: analysisName, Report: res.Report, Meta: res.Meta})
	if err != nil {
		return err
	}
	fmt.Println(string(output))
	return nil
}

func displayHuman(res *webhook.Result, analysisName string) {
	cyan := color.New(color.FgCyan, color.Bold)

	fmt.Println()
	cyan.Printf("🧬 %s\n", analysisName)

	if m := res.Meta; m != nil {
		if m.CompoundQueried != nil {
			fmt.Printf("   Compound: %v\n", m.CompoundQueried)
		}
		if m.PDBIDQueried != "" {
			fmt.Printf("   Target:   %s\n", m.PDBIDQueried)
		}
		if m.ModelUsed != "" {
			fmt.Printf("   Model:    %s\n", m.ModelUsed)
		}
		if m.TokensUsed != nil {
			fmt.Printf("   Tokens:   %d\n", m.TokensUsed.TotalTokens)
		}
	}
	fmt.Println(strings.Repeat("─", 80))

	printReport(res.Report)

	fmt.Println(strings.Repeat("─", 80))
	fmt.Printf("💡 %s\n", color.HiBlackString("Run with -o json, yaml or html for machine-readable output"))
}

// printReport styles the markdown subset for the terminal, same rule
// set as HTML expressed as ANSI colors line by line.
func printReport(text string) {
	heading := color.New(color.FgCyan, color.Bold)
	inFence := false

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
			continue
		}
		if inFence {
			fmt.Printf("    %s\n", color.HiBlackString(line))
			continue
		}

		switch {
		case strings.HasPrefix(line, "# "), strings.HasPrefix(line, "## "), strings.HasPrefix(line, "### "):
			fmt.Println()
			heading.Println(strings.TrimLeft(line, "# "))
		case trimmed == "---":
			fmt.Println(strings.Repeat("─", 80))
		default:
			fmt.Println(styleInline(line))
		}
	}
}

func styleInline(line string) string {
	line = inlineRe.ReplaceAllStringFunc(line, func(m string) string {
		return color.CyanString(inlineRe.FindStringSubmatch(m)[1])
	})
	line = boldRe.ReplaceAllStringFunc(line, func(m string) string {
		return color.New(color.Bold).Sprint(boldRe.FindStringSubmatch(m)[1])
	})
	return line
}
