package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	agl "github.com/agl-team/agl-go"
)

var (
	analyzeMVP       bool
	analyzeWinStreak int
	analyzeLossStrk  int
	analyzeRarity    string
	analyzeKills     int
	analyzeLegendary bool
	analyzeData      []string
	analyzeForceML   bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <event>",
	Short: "Report a game event for emotion analysis",
	Long: `Report a game event to the emotion service and print the detected
emotion.

Victory, defeat, achievement, and kill events get their payload from the
dedicated flags; any event can carry extra --data pairs.

Examples:
  agl analyze victory --mvp --win-streak 3
  agl analyze defeat --loss-streak 2
  agl analyze achievement --rarity legendary
  agl analyze kill --kills 5 --legendary
  agl analyze player.levelup --data level=42`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeMVP, "mvp", false, "player was MVP (victory)")
	analyzeCmd.Flags().IntVar(&analyzeWinStreak, "win-streak", 0, "current win streak (victory)")
	analyzeCmd.Flags().IntVar(&analyzeLossStrk, "loss-streak", 0, "current loss streak (defeat)")
	analyzeCmd.Flags().StringVar(&analyzeRarity, "rarity", "", "achievement rarity")
	analyzeCmd.Flags().IntVar(&analyzeKills, "kills", 1, "kill count (kill)")
	analyzeCmd.Flags().BoolVar(&analyzeLegendary, "legendary", false, "legendary kill")
	analyzeCmd.Flags().StringSliceVarP(&analyzeData, "data", "d", nil, "extra event data as key=value")
	analyzeCmd.Flags().BoolVar(&analyzeForceML, "force-ml", false, "force ML-based analysis")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	event, err := eventFromFlag(args[0])
	if err != nil {
		return err
	}

	var req agl.EmotionRequest
	switch event {
	case agl.EventVictory:
		req = agl.VictoryRequest(analyzeMVP, analyzeWinStreak)
	case agl.EventDefeat:
		req = agl.DefeatRequest(analyzeLossStrk)
	case agl.EventAchievement:
		req = agl.AchievementRequest(analyzeRarity)
	case agl.EventKill:
		req = agl.KillRequest(analyzeKills, analyzeLegendary)
	default:
		req = agl.EmotionRequest{EventType: event}
	}
	req.ForceML = analyzeForceML

	extra, err := parseKV(analyzeData)
	if err != nil {
		return err
	}
	if len(extra) > 0 {
		if req.Data == nil {
			req.Data = make(map[string]string, len(extra))
		}
		for k, v := range extra {
			req.Data[k] = v
		}
	}

	var (
		ok   bool
		resp agl.EmotionResponse
		done = make(chan struct{})
	)
	sdk.Emotion().AnalyzeEmotion(req, func(callOK bool, r agl.EmotionResponse) {
		ok, resp = callOK, r
		close(done)
	})
	if err := await(done); err != nil {
		return err
	}

	if !ok {
		fmt.Println(errorStyle().Render("emotion analysis failed"))
		printStats()
		return fmt.Errorf("analyze %s: request failed", event)
	}

	fmt.Printf("%s %s\n", accentStyle().Render("emotion:"), resp.Emotion)
	fmt.Printf("  intensity:  %.2f\n", resp.Intensity)
	fmt.Printf("  confidence: %.2f\n", resp.Confidence)
	if resp.Action != "" {
		fmt.Printf("  action:     %s\n", resp.Action)
	}
	if resp.Reasoning != "" {
		fmt.Printf("  reasoning:  %s\n", resp.Reasoning)
	}
	fmt.Println(hintStyle().Render(fmt.Sprintf(
		"method=%s cost=$%.4f cache=%t latency=%dms",
		resp.Method, resp.Cost, resp.CacheHit, resp.LatencyMs)))
	printStats()
	return nil
}
