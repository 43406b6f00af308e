// Package ask handles one-shot question commands
package ask

import (
	"strings"

	"fjacquet/cfo-copilot/cmd/common"
	"fjacquet/cfo-copilot/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the ask command
var Cmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a single finance question and print the answer",
	Long: `Ask a single finance question against the loaded dataset and print the
answer. With --json the full answer envelope is printed instead.

Example:
  cfo-copilot ask "What was June 2025 revenue vs budget in USD?"`,
	Args: cobra.MinimumNArgs(1),
	Run:  askFunc,
}

func askFunc(cmd *cobra.Command, args []string) {
	question := strings.Join(args, " ")
	root.Log.Debugf("Ask command called with question: %s", question)

	appContainer := root.GetContainer()
	if appContainer == nil {
		root.GetLogrusAdapter().Fatal("Container not initialized")
	}

	envelope := appContainer.GetAgent().Process(cmd.Context(), question)

	if err := common.WriteEnvelope(cmd.OutOrStdout(), envelope, root.SharedFlags.JSON); err != nil {
		root.Log.Fatalf("Error rendering answer: %v", err)
	}
}
