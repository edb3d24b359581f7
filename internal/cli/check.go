package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/adetolu/medfact/internal/model"
)

var checkTimeout time.Duration

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <claim>",
	Short: "Verify a single health claim",
	Long: `Check verifies one health claim:
- Match the claim against the curated myth database
- A strong match answers with the vetted verdict directly
- Otherwise search PubMed and synthesize a verdict from the research

Example:
  medfact check "drinking hot water cures malaria"
  medfact check "bitter kola cures ebola" --json
  medfact check "garlic lowers blood pressure" --verbose`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 2*time.Minute, "overall verification timeout")
}

func runCheck(cmd *cobra.Command, args []string) error {
	claim := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	if verbose {
		fmt.Fprintf(os.Stderr, "Checking: %s\n", claim)
		fmt.Fprintf(os.Stderr, "Provider: %s\n", cfg.LLM.Provider)
		fmt.Fprintln(os.Stderr)
	}

	a, _, store, err := buildAgent(cfg, logger)
	if err != nil {
		return err
	}
	if count, cerr := store.Count(ctx); cerr == nil && count == 0 {
		fmt.Fprintf(os.Stderr, "✗ Knowledge store is empty; run `medfact index` first. Falling back to literature search.\n")
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "⚙️  Searching curated knowledge base...\n")
	}

	resp, err := a.Check(ctx, claim)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Verdict: %s (%d%% confidence, %s)\n", resp.Verdict, resp.Confidence, resp.Origin)
		fmt.Fprintln(os.Stderr)
	}

	return renderResponse(resp, jsonOut || cfg.Output.JSON)
}

// renderResponse prints a verdict either as JSON or as a readable report
func renderResponse(resp *model.VerdictResponse, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Printf("  Claim: %s\n", resp.Claim)
	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Println()
	fmt.Printf("Verdict:    %s\n", resp.Verdict)
	fmt.Printf("Confidence: %d%%\n", resp.Confidence)
	if resp.Origin == model.OriginCurated {
		fmt.Printf("Answered from the curated knowledge base (similarity %.2f)\n", resp.Certainty)
	} else {
		fmt.Println("Answered from a PubMed literature search")
	}
	fmt.Println()
	fmt.Println("Explanation:")
	fmt.Println(indent(resp.Explanation))
	if resp.Consequence != "" {
		fmt.Println()
		fmt.Println("Why this matters:")
		fmt.Println(indent(resp.Consequence))
	}
	if resp.Recommendation != "" {
		fmt.Println()
		fmt.Println("What you should do instead:")
		fmt.Println(indent(resp.Recommendation))
	}
	if len(resp.Sources) > 0 {
		fmt.Println()
		fmt.Println("Sources:")
		for _, s := range resp.Sources {
			fmt.Printf("  - %s\n", s)
		}
	}
	fmt.Println()

	return nil
}

func indent(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	for i, line := range lines {
		lines[i] = "  " + line
	}
	return strings.Join(lines, "\n")
}
