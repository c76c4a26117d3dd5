package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	ai "github.com/spetersoncode/conform"
	"github.com/spetersoncode/conform/llm"
	"github.com/spetersoncode/conform/models"
	"github.com/spetersoncode/conform/provider"
	"github.com/spetersoncode/conform/shape"
	"github.com/spetersoncode/conform/tool"
)

var reader = bufio.NewReader(os.Stdin)

func main() {
	godotenv.Load()
	ctx := context.Background()

	fmt.Println("╔════════════════════════════════════════╗")
	fmt.Println("║      conform - Structured Output       ║")
	fmt.Println("╚════════════════════════════════════════╝")
	fmt.Println()

	all := []ai.Provider{ai.ProviderOpenAI, ai.ProviderOpenRouter, ai.ProviderGemini}

	var available []ai.Provider
	fmt.Println("Available providers:")
	for _, p := range all {
		if os.Getenv(provider.EnvAPIKey(p)) != "" {
			fmt.Printf("  [%d] %s\n", len(available)+1, p)
			available = append(available, p)
		}
	}
	if len(available) == 0 {
		fmt.Println("  ✗ No API keys found. Set OPENAI_API_KEY, OPENROUTER_API_KEY, or GEMINI_API_KEY.")
		return
	}
	fmt.Println()

	var selected int
	if len(available) == 1 {
		fmt.Printf("Using %s (only available provider)\n", available[0])
	} else {
		fmt.Printf("Select provider [1-%d]: ", len(available))
		answer, _ := reader.ReadString('\n')
		fmt.Sscanf(strings.TrimSpace(answer), "%d", &selected)
		selected--
		if selected < 0 || selected >= len(available) {
			selected = 0
		}
	}
	p := available[selected]
	model := models.Default(p)
	fmt.Printf("Model: %s\n\n", model)

	if askYesNo("Demo structured completion?") {
		demoStructured(ctx, p, model)
	}
	if askYesNo("Demo wrapped enum completion?") {
		demoSeverity(ctx, p, model)
	}
	if askYesNo("Demo tool calling loop?") {
		demoToolLoop(ctx, p, model)
	}
	if askYesNo("Demo plain text completion?") {
		demoText(ctx, p, model)
	}

	fmt.Println("\n✨ Demo complete!")
}

func askYesNo(question string) bool {
	fmt.Printf("%s [y/N]: ", question)
	answer, _ := reader.ReadString('\n')
	answer = strings.TrimSpace(strings.ToLower(answer))
	return answer == "y" || answer == "yes"
}

func reportError(err error) {
	switch {
	case ai.IsRefusal(err):
		fmt.Fprintf(os.Stderr, "Model refused: %v\n", err)
	case ai.IsSchemaViolation(err):
		fmt.Fprintf(os.Stderr, "Output violated the schema: %v\n", err)
	case ai.IsTransient(err):
		fmt.Fprintf(os.Stderr, "Transient failure (status %d), try again: %v\n", ai.StatusCodeOf(err), err)
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}

// Review is the structured target for the sentiment demo.
type Review struct {
	Sentiment  string  `json:"sentiment" desc:"positive, negative, or mixed"`
	Confidence float64 `json:"confidence" desc:"Confidence in the sentiment, 0 to 1"`
	Summary    string  `json:"summary" desc:"One-sentence summary of the review"`
}

func demoStructured(ctx context.Context, p ai.Provider, model string) {
	fmt.Println("\n┌─────────────────────────────────────────┐")
	fmt.Println("│       Structured Completion Demo        │")
	fmt.Println("└─────────────────────────────────────────┘")

	review := "The keyboard feels fantastic and the battery lasts a week, " +
		"but the companion app crashes constantly."
	fmt.Printf("Review: %s\n\n", review)

	result, err := llm.Complete[Review](ctx, llm.With(p).
		APIKeyFromEnv().
		Model(model).
		Messages(
			ai.NewSystemMessage("You analyze product reviews."),
			ai.NewUserMessage("Analyze this review: "+review),
		))
	if err != nil {
		reportError(err)
		return
	}

	fmt.Printf("Sentiment:  %s\n", result.Data.Sentiment)
	fmt.Printf("Confidence: %.2f\n", result.Data.Confidence)
	fmt.Printf("Summary:    %s\n", result.Data.Summary)
	fmt.Printf("[%s, %d in, %d out]\n", result.Model,
		result.Usage.InputTokens, result.Usage.OutputTokens)
}

// Severity demonstrates a non-object target: on the wire it travels
// wrapped as {"value": "..."} and is unwrapped on the way back.
type Severity string

func (Severity) DescribeShape() shape.Descriptor {
	return shape.NewEnum("Severity", "Low", "Medium", "High", "Critical")
}

func demoSeverity(ctx context.Context, p ai.Provider, model string) {
	fmt.Println("\n┌─────────────────────────────────────────┐")
	fmt.Println("│        Wrapped Enum Completion          │")
	fmt.Println("└─────────────────────────────────────────┘")

	incident := "Checkout is returning 500s for roughly a third of users since 14:02 UTC."
	fmt.Printf("Incident: %s\n\n", incident)

	result, err := llm.Complete[Severity](ctx, llm.With(p).
		APIKeyFromEnv().
		Model(model).
		Messages(ai.NewUserMessage("Classify the severity of this incident: "+incident)))
	if err != nil {
		reportError(err)
		return
	}

	fmt.Printf("Severity: %s\n", result.Data)
	fmt.Printf("[%s, %d in, %d out]\n", result.Model,
		result.Usage.InputTokens, result.Usage.OutputTokens)
}

// TripAdvice is the structured target for the tool loop demo.
type TripAdvice struct {
	Recommendation string `json:"recommendation" desc:"What to do, given the weather"`
	Reason         string `json:"reason" desc:"Why, citing the conditions"`
}

func demoToolLoop(ctx context.Context, p ai.Provider, model string) {
	fmt.Println("\n┌─────────────────────────────────────────┐")
	fmt.Println("│          Tool Calling Loop              │")
	fmt.Println("└─────────────────────────────────────────┘")

	registry := tool.MustNewRegistry(weatherTool, nowTool)
	fmt.Printf("Tools available: %s\n", strings.Join(registry.Names(), ", "))
	fmt.Println("User: Should I bike to work in Amsterdam today?")
	fmt.Println()

	events := make(chan ai.Event, 64)
	result, err := llm.Complete[TripAdvice](ctx, llm.With(p).
		APIKeyFromEnv().
		Model(model).
		Messages(ai.NewUserMessage("Should I bike to work in Amsterdam today? Check the weather first.")).
		Tools(registry).
		Config(ai.WithEvents(events), ai.WithMaxToolTurns(8)))

	for len(events) > 0 {
		ev := <-events
		switch ev.Type {
		case ai.EventToolStart:
			fmt.Printf("  → turn %d: calling %s\n", ev.Turn, ev.ToolName)
		case ai.EventToolEnd:
			if ev.ToolIsError {
				fmt.Printf("  ← %s failed (fed back to the model)\n", ev.ToolName)
			} else {
				fmt.Printf("  ← %s returned\n", ev.ToolName)
			}
		}
	}

	if err != nil {
		reportError(err)
		return
	}

	fmt.Printf("\nRecommendation: %s\n", result.Data.Recommendation)
	fmt.Printf("Reason:         %s\n", result.Data.Reason)
	fmt.Printf("[%s, %d turns, %d in, %d out]\n", result.Model, result.Turns,
		result.Usage.InputTokens, result.Usage.OutputTokens)
}

func demoText(ctx context.Context, p ai.Provider, model string) {
	fmt.Println("\n┌─────────────────────────────────────────┐")
	fmt.Println("│         Plain Text Completion           │")
	fmt.Println("└─────────────────────────────────────────┘")

	result, err := llm.CompleteText(ctx, llm.With(p).
		APIKeyFromEnv().
		Model(model).
		Messages(ai.NewUserMessage("Write a haiku about type safety.")))
	if err != nil {
		reportError(err)
		return
	}

	fmt.Println(result.Data)
	fmt.Printf("[%s, %d in, %d out]\n", result.Model,
		result.Usage.InputTokens, result.Usage.OutputTokens)
}
