package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	agl "github.com/agl-team/agl-go"
)

var (
	dialogueEmotion  string
	dialoguePersona  string
	dialogueLang     string
	dialogueContext  []string
	dialogueForceLLM bool
)

var dialogueCmd = &cobra.Command{
	Use:   "dialogue <event>",
	Short: "Generate an NPC line for a game event",
	Long: `Ask the dialogue service for an NPC line matching the event, emotion,
and persona. With --player set, the service pulls that player's memories
into the generation context.

Examples:
  agl dialogue victory --emotion happy --persona cheerful --lang en
  agl dialogue defeat --emotion sad --persona cool --player alice`,
	Args: cobra.ExactArgs(1),
	RunE: runDialogue,
}

func init() {
	dialogueCmd.Flags().StringVarP(&dialogueEmotion, "emotion", "e", "neutral", "current emotion")
	dialogueCmd.Flags().StringVar(&dialoguePersona, "persona", "cheerful", "NPC persona (cheerful, cool, cute)")
	dialogueCmd.Flags().StringVar(&dialogueLang, "lang", "zh", "language code (zh, en, ja)")
	dialogueCmd.Flags().StringSliceVarP(&dialogueContext, "context", "c", nil, "extra context as key=value")
	dialogueCmd.Flags().BoolVar(&dialogueForceLLM, "force-llm", false, "force LLM generation")
}

func runDialogue(cmd *cobra.Command, args []string) error {
	event, err := eventFromFlag(args[0])
	if err != nil {
		return err
	}

	req := agl.NewDialogueRequest(event, agl.ParseEmotionType(dialogueEmotion), agl.ParsePersona(dialoguePersona))
	req.Language = dialogueLang
	req.PlayerID = sdk.PlayerID()
	req.ForceLLM = dialogueForceLLM
	req.Context, err = parseKV(dialogueContext)
	if err != nil {
		return err
	}

	var (
		ok   bool
		resp agl.DialogueResponse
		done = make(chan struct{})
	)
	sdk.Dialogue().GenerateDialogue(req, func(callOK bool, r agl.DialogueResponse) {
		ok, resp = callOK, r
		close(done)
	})
	if err := await(done); err != nil {
		return err
	}

	if !ok {
		fmt.Println(errorStyle().Render("dialogue generation failed"))
		printStats()
		return fmt.Errorf("dialogue %s: request failed", event)
	}

	fmt.Println(successStyle().Render(resp.Dialogue))
	if resp.UsedSpecialCase {
		for _, reason := range resp.SpecialCaseReasons {
			fmt.Printf("  special case: %s\n", reason)
		}
	}
	fmt.Println(hintStyle().Render(fmt.Sprintf(
		"method=%s cost=$%.4f memories=%d cache=%t latency=%dms",
		resp.Method, resp.Cost, resp.MemoryCount, resp.CacheHit, resp.LatencyMs)))
	printStats()
	return nil
}
