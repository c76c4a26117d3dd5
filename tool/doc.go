// Package tool builds tool definitions from typed functions and serves
// their calls through an ordered, immutable registry.
//
// # Defining Tools
//
// Define tool arguments as a struct, document the tool in plain text, and
// let New derive the parameter schema:
//
//	type WeatherArgs struct {
//	    City string `json:"city"`
//	    Unit string `json:"unit"`
//	}
//
//	weather := tool.MustNew("get_weather",
//	    `Get current weather for a city.
//	     city: Name of the city to query.
//	     unit: Temperature unit, celsius or fahrenheit.`,
//	    func(ctx context.Context, args WeatherArgs) (string, error) {
//	        return fmt.Sprintf(`{"temp": 18, "city": %q}`, args.City), nil
//	    })
//
// The first documentation line is the tool description; each following
// "name: text" line documents one parameter. Documented names must match
// the argument struct's fields exactly. A parameter documented but absent
// from the struct, or present in the struct but undocumented, fails New
// with a *conform.DefinitionError naming the offenders. The check runs
// once at definition time, never per call.
//
// # The Registry
//
// A registry is built once from definitions and never changes, so
// concurrent completion calls share it freely:
//
//	registry := tool.MustNewRegistry(weather, forecast)
//
// Incoming calls are validated against the derived parameter schema before
// the typed function runs. Handler failures do not abort a completion:
// Execute converts them into error-carrying tool results for the model to
// react to.
//
// # Middleware
//
// Cross-cutting behavior wraps a definition's handler:
//
//	weather = weather.Wrap(
//	    tool.WithLogging(logger),
//	    tool.WithRecovery(),
//	    tool.WithTimeout(10*time.Second),
//	)
package tool
