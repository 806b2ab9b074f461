package tools

import (
	"context"
	"regexp"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	fencedJSONBlock = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")
	bareToolObject  = regexp.MustCompile(`(?s)(\{\s*"tool"\s*:\s*"[^"]+".*\})`)
)

// ToolCall is a request from an agent to run a tool
type ToolCall struct {
	Name   string         `json:"tool"`
	Args   map[string]any `json:"args"`
	Caller string         `json:"-"`
}

// ToolResult carries tool output, or the error that stopped it
type ToolResult struct {
	Output string
	Error  error
}

// Tool is something an agent may call by name
type Tool interface {
	Name() string
	Description() string
	Parameters() map[string]string // name:description
	Call(ctx context.Context, call ToolCall) ToolResult
}

// ParseToolCall tries to extract a tool call from LLM output.
// Accepts a bare JSON object, a fenced ```json block, or an object embedded in prose.
func ParseToolCall(llmResp string) (ToolCall, bool) {
	text := strings.TrimSpace(llmResp)
	if call, ok := decodeToolCall(text); ok {
		return call, true
	}
	if block := extractFirstJSONBlock(text); block != "" {
		return decodeToolCall(block)
	}
	return ToolCall{}, false
}

func decodeToolCall(s string) (ToolCall, bool) {
	var call ToolCall
	if err := json.Unmarshal([]byte(s), &call); err != nil || call.Name == "" {
		return ToolCall{}, false
	}
	if call.Args == nil {
		call.Args = map[string]any{}
	}
	return call, true
}

// extractFirstJSONBlock returns the first fenced JSON block if present,
// else the first object starting with a "tool" key, else empty string
func extractFirstJSONBlock(s string) string {
	if matches := fencedJSONBlock.FindStringSubmatch(s); len(matches) >= 2 {
		return matches[1]
	}
	if matches := bareToolObject.FindStringSubmatch(s); len(matches) >= 2 {
		return matches[1]
	}
	return ""
}

// StringArg reads a non-empty string argument
func (c ToolCall) StringArg(name string) (string, bool) {
	v, ok := c.Args[name].(string)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}
