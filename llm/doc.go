// Package llm is the completion entry point: a staged request builder and
// the typed terminal operations that drive the exchange loop.
//
// The builder enforces its construction sequence at run time. Provider,
// credentials, model and messages must be set, in that order, before a
// completion can be issued; tools and config are optional stages after
// messages. A method called out of sequence records a
// *conform.BuilderError, and the terminal operation returns it without
// touching the network.
//
// # Basic Usage
//
// Declare the target type, then complete into it:
//
//	type Analysis struct {
//	    Sentiment  string  `json:"sentiment"`
//	    Confidence float64 `json:"confidence"`
//	}
//
//	result, err := llm.Complete[Analysis](ctx,
//	    llm.With(conform.ProviderOpenAI).
//	        APIKeyFromEnv().
//	        Model(models.DefaultOpenAI).
//	        Messages(conform.NewUserMessage("Rate the sentiment of: great product!")),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Data.Sentiment, result.Data.Confidence)
//
// The response is validated against the schema derived from Analysis before
// decoding; unknown properties and type mismatches surface as
// *conform.CompletionError rather than half-filled values.
//
// # Non-Object Targets
//
// Targets whose JSON root is not an object (enums, slices, scalars) are
// wrapped under a single property for transmission and unwrapped before
// validation:
//
//	type Severity string // derives an enum schema via shape.Describer
//
//	result, err := llm.Complete[Severity](ctx, b)
//
// The wrapper property name defaults to "value" and follows
// conform.WithWrapProperty.
//
// # Tools
//
// Attaching a registry offers its tools to the model and serves the
// resulting calls. The loop feeds each result back as a follow-up message
// and asks again, up to the configured turn limit:
//
//	result, err := llm.Complete[Answer](ctx,
//	    llm.With(conform.ProviderOpenAI).
//	        APIKeyFromEnv().
//	        Model(models.DefaultOpenAI).
//	        Messages(conform.NewUserMessage("What's the weather in Oslo?")).
//	        Tools(registry).
//	        Config(conform.WithMaxToolTurns(8)),
//	)
//
// Individual tool failures are recovered: the model sees the failure text
// and may correct the call. Exceeding the turn limit is fatal and reported
// as a tool-loop-exceeded completion error carrying the turn count.
//
// # Text Completions
//
// CompleteText runs the same pipeline, tool loop included, without a
// response schema:
//
//	result, err := llm.CompleteText(ctx,
//	    llm.With(conform.ProviderGemini).
//	        APIKeyFromEnv().
//	        Model(models.DefaultGemini).
//	        Messages(conform.NewUserMessage("Summarize this in one line: ...")),
//	)
//
// # Observability
//
// Config accepts an event channel, a logger, and raw payload inspectors:
//
//	events := make(chan conform.Event, 64)
//	b := llm.With(conform.ProviderOpenAI).
//	    APIKeyFromEnv().
//	    Model(models.DefaultOpenAI).
//	    Messages(msgs...).
//	    Config(conform.WithEvents(events), conform.WithLogger(logger))
//
// Events are emitted best-effort and never block the loop.
package llm
