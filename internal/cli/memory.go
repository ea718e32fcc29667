package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	agl "github.com/agl-team/agl-go"
)

var (
	memType         string
	memEmotion      string
	memImportance   int
	memContext      []string
	memSearchLimit  int
	memContextLimit int
	memListLimit    int
	memOffset       int
)

var memoryCmd = &cobra.Command{
	Use:   "memory",
	Short: "Create, search, and list player memories",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Run the root setup first; cobra only runs the innermost hook.
		if err := rootCmd.PersistentPreRunE(cmd, args); err != nil {
			return err
		}
		if sdk.PlayerID() == "" {
			return fmt.Errorf("memory commands require --player")
		}
		return nil
	},
}

var memoryCreateCmd = &cobra.Command{
	Use:   "create <content>",
	Short: "Store a new memory for the player",
	Long: `Store a new memory for the player.

Examples:
  agl memory create "First pentakill" --player alice --type achievement --importance 9
  agl memory create "Talked about the old war" --player alice --type conversation`,
	Args: cobra.ExactArgs(1),
	RunE: runMemoryCreate,
}

var memorySearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the player's memories semantically",
	Args:  cobra.ExactArgs(1),
	RunE:  runMemorySearch,
}

var memoryContextCmd = &cobra.Command{
	Use:   "context <current-event>",
	Short: "Retrieve memories relevant to the current event",
	Args:  cobra.ExactArgs(1),
	RunE:  runMemoryContext,
}

var memoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the player's memories",
	Args:  cobra.NoArgs,
	RunE:  runMemoryList,
}

func init() {
	memoryCreateCmd.Flags().StringVarP(&memType, "type", "t", "event", "memory type")
	memoryCreateCmd.Flags().StringVarP(&memEmotion, "emotion", "e", "", "associated emotion")
	memoryCreateCmd.Flags().IntVarP(&memImportance, "importance", "i", 5, "importance score (0-10)")
	memoryCreateCmd.Flags().StringSliceVarP(&memContext, "context", "c", nil, "extra context as key=value")

	memorySearchCmd.Flags().IntVarP(&memSearchLimit, "limit", "n", 10, "max results")
	memoryContextCmd.Flags().IntVarP(&memContextLimit, "limit", "n", 5, "max memories")
	memoryListCmd.Flags().IntVarP(&memListLimit, "limit", "n", 20, "max memories")
	memoryListCmd.Flags().IntVar(&memOffset, "offset", 0, "paging offset")

	memoryCmd.AddCommand(memoryCreateCmd)
	memoryCmd.AddCommand(memorySearchCmd)
	memoryCmd.AddCommand(memoryContextCmd)
	memoryCmd.AddCommand(memoryListCmd)
}

func runMemoryCreate(cmd *cobra.Command, args []string) error {
	req := agl.NewCreateMemoryRequest(agl.ParseMemoryType(memType), args[0])
	req.Emotion = memEmotion
	req.Importance = memImportance
	var err error
	req.Context, err = parseKV(memContext)
	if err != nil {
		return err
	}

	var (
		ok     bool
		memory agl.Memory
		done   = make(chan struct{})
	)
	sdk.Memory().CreateMemory(sdk.PlayerID(), req, func(callOK bool, m agl.Memory) {
		ok, memory = callOK, m
		close(done)
	})
	if err := await(done); err != nil {
		return err
	}

	if !ok {
		fmt.Println(errorStyle().Render("memory creation failed"))
		printStats()
		return fmt.Errorf("memory create: request failed")
	}

	fmt.Printf("%s %s\n", successStyle().Render("created"), memory.ID)
	printMemory(memory, "")
	printStats()
	return nil
}

func runMemorySearch(cmd *cobra.Command, args []string) error {
	req := agl.NewSearchMemoriesRequest(args[0])
	req.Limit = memSearchLimit

	var (
		ok      bool
		results []agl.MemorySearchResult
		done    = make(chan struct{})
	)
	sdk.Memory().SearchMemories(sdk.PlayerID(), req, func(callOK bool, r []agl.MemorySearchResult) {
		ok, results = callOK, r
		close(done)
	})
	if err := await(done); err != nil {
		return err
	}

	if !ok {
		fmt.Println(errorStyle().Render("memory search failed"))
		printStats()
		return fmt.Errorf("memory search: request failed")
	}

	if len(results) == 0 {
		fmt.Println("No memories found.")
		printStats()
		return nil
	}

	fmt.Printf("Found %d memories:\n\n", len(results))
	for i, r := range results {
		fmt.Printf("%d. %s\n", i+1, hintStyle().Render(fmt.Sprintf("score %.3f", r.SimilarityScore)))
		printMemory(r.Memory, "   ")
	}
	printStats()
	return nil
}

func runMemoryContext(cmd *cobra.Command, args []string) error {
	req := agl.NewGetContextRequest(args[0])
	req.Limit = memContextLimit

	var (
		ok       bool
		memories []agl.Memory
		done     = make(chan struct{})
	)
	sdk.Memory().GetContext(sdk.PlayerID(), req, func(callOK bool, m []agl.Memory) {
		ok, memories = callOK, m
		close(done)
	})
	if err := await(done); err != nil {
		return err
	}
	return printMemories(ok, memories, "memory context")
}

func runMemoryList(cmd *cobra.Command, args []string) error {
	var (
		ok       bool
		memories []agl.Memory
		done     = make(chan struct{})
	)
	sdk.Memory().GetMemories(sdk.PlayerID(), memListLimit, memOffset, func(callOK bool, m []agl.Memory) {
		ok, memories = callOK, m
		close(done)
	})
	if err := await(done); err != nil {
		return err
	}
	return printMemories(ok, memories, "memory list")
}

func printMemories(ok bool, memories []agl.Memory, op string) error {
	if !ok {
		fmt.Println(errorStyle().Render(op + " failed"))
		printStats()
		return fmt.Errorf("%s: request failed", op)
	}
	if len(memories) == 0 {
		fmt.Println("No memories found.")
		printStats()
		return nil
	}
	fmt.Printf("%d memories:\n\n", len(memories))
	for i, m := range memories {
		fmt.Printf("%d.\n", i+1)
		printMemory(m, "   ")
	}
	printStats()
	return nil
}

func printMemory(m agl.Memory, indent string) {
	fmt.Printf("%s[%s] %s\n", indent, m.Type, m.Content)
	details := fmt.Sprintf("importance=%d", m.Importance)
	if m.Emotion != "" {
		details += " emotion=" + m.Emotion
	}
	if m.CreatedAt != "" {
		details += " created=" + m.CreatedAt
	}
	fmt.Printf("%s%s\n", indent, hintStyle().Render(details))
}
