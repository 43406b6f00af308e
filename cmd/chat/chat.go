// Package chat provides the interactive question session
package chat

import (
	"bufio"
	"strings"

	"fjacquet/cfo-copilot/cmd/common"
	"fjacquet/cfo-copilot/cmd/root"
	"fjacquet/cfo-copilot/internal/models"

	"github.com/spf13/cobra"
)

// Cmd represents the chat command
var Cmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive question session",
	Long: `Start an interactive session that answers finance questions until you
type "exit" or "quit". Sample questions are printed at startup and
"history" replays the answers given so far. Nothing is persisted; the
history lives only for the session.`,
	Run: chatFunc,
}

// exchange pairs a question with the answer it produced.
type exchange struct {
	question string
	envelope models.Envelope
}

func chatFunc(cmd *cobra.Command, args []string) {
	root.Log.Debug("Chat command called")

	appContainer := root.GetContainer()
	if appContainer == nil {
		root.GetLogrusAdapter().Fatal("Container not initialized")
	}

	qa := appContainer.GetAgent()

	cmd.Println("CFO Copilot - ask about revenue vs budget, gross margin, opex, cash runway or EBITDA.")
	cmd.Println("Sample questions:")
	for _, question := range appContainer.GetSamples() {
		cmd.Printf("  - %s\n", question)
	}
	cmd.Println(`Type "history" to replay this session, "exit" or "quit" to leave.`)

	var history []exchange
	scanner := bufio.NewScanner(cmd.InOrStdin())

	for {
		cmd.Print("> ")
		if !scanner.Scan() {
			break
		}

		question := strings.TrimSpace(scanner.Text())
		switch {
		case question == "":
			continue
		case isExit(question):
			cmd.Printf("Answered %d questions this session.\n", len(history))
			return
		case strings.EqualFold(question, "history"):
			printHistory(cmd, history)
			continue
		}

		envelope := qa.Process(cmd.Context(), question)
		history = append(history, exchange{question: question, envelope: envelope})

		if err := common.WriteEnvelope(cmd.OutOrStdout(), envelope, root.SharedFlags.JSON); err != nil {
			root.Log.Errorf("Error rendering answer: %v", err)
		}
	}

	if err := scanner.Err(); err != nil {
		root.Log.Errorf("Error reading input: %v", err)
	}
	cmd.Printf("Answered %d questions this session.\n", len(history))
}

// isExit reports whether the input ends the session.
func isExit(input string) bool {
	switch strings.ToLower(input) {
	case "exit", "quit":
		return true
	}
	return false
}

// printHistory replays the questions and answers of the current session.
func printHistory(cmd *cobra.Command, history []exchange) {
	if len(history) == 0 {
		cmd.Println("No questions asked yet.")
		return
	}

	for i, item := range history {
		cmd.Printf("%d. %s\n", i+1, item.question)
		cmd.Printf("   %s\n", strings.ReplaceAll(item.envelope.Text, "\n", "\n   "))
	}
}
