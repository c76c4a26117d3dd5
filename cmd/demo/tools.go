package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spetersoncode/conform/tool"
)

// Demo tools. Handlers fabricate plausible data; the point is exercising
// the registry and loop, not real lookups.

type weatherArgs struct {
	City string `json:"city"`
	Unit string `json:"unit,omitempty"`
}

var weatherTool = tool.MustNew("get_weather",
	`Get the current weather for a city.
city: Name of the city to query.
unit: Temperature unit, celsius or fahrenheit. Defaults to celsius.`,
	func(_ context.Context, args weatherArgs) (string, error) {
		temp := "13°C"
		if strings.EqualFold(args.Unit, "fahrenheit") {
			temp = "55°F"
		}
		return fmt.Sprintf(`{"city":%q,"temperature":%q,"conditions":"partly cloudy"}`, args.City, temp), nil
	})

type nowArgs struct {
	Format string `json:"format,omitempty"`
}

var nowTool = tool.MustNew("current_time",
	`Get the current date and time.
format: Output format, rfc3339 or human. Defaults to human.`,
	func(_ context.Context, args nowArgs) (string, error) {
		now := time.Now()
		if strings.EqualFold(args.Format, "rfc3339") {
			return now.Format(time.RFC3339), nil
		}
		return now.Format("Monday, January 2, 2006 at 3:04 PM MST"), nil
	})
