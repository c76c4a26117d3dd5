// Command mcp is a reference MCP server that exposes conform tools over
// stdio, so MCP clients can discover and call tools built with the tool
// package.
//
// Usage:
//
//	go run ./cmd/mcp
//
// Configuration for an MCP client:
//
//	{
//	    "mcpServers": {
//	        "conform-tools": {
//	            "command": "go",
//	            "args": ["run", "./cmd/mcp"],
//	            "cwd": "/path/to/conform"
//	        }
//	    }
//	}
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/spetersoncode/conform/mcp"
	"github.com/spetersoncode/conform/shape"
	"github.com/spetersoncode/conform/tool"
)

func main() {
	registry := tool.MustNewRegistry(echoTool, calculateTool)

	if err := mcp.ServeStdio(registry, mcp.WithName("conform-mcp-example")); err != nil {
		log.Fatal(err)
	}
}

type echoArgs struct {
	Text string `json:"text"`
}

var echoTool = tool.MustNew("echo",
	`Echo back the input text.
text: The text to echo back.`,
	func(_ context.Context, args echoArgs) (string, error) {
		return args.Text, nil
	})

type calculateArgs struct {
	Operation calcOp  `json:"operation"`
	A         float64 `json:"a"`
	B         float64 `json:"b"`
}

type calcOp string

func (calcOp) DescribeShape() shape.Descriptor {
	return shape.NewEnum("Operation", "add", "subtract", "multiply", "divide")
}

var calculateTool = tool.MustNew("calculate",
	`Perform basic arithmetic on two numbers.
operation: The operation to perform.
a: First operand.
b: Second operand.`,
	func(_ context.Context, args calculateArgs) (string, error) {
		var result float64
		switch args.Operation {
		case "add":
			result = args.A + args.B
		case "subtract":
			result = args.A - args.B
		case "multiply":
			result = args.A * args.B
		case "divide":
			if args.B == 0 {
				return "", fmt.Errorf("cannot divide by zero")
			}
			result = args.A / args.B
		}
		data, err := json.Marshal(result)
		return string(data), err
	})
