package prompt

import (
	"fmt"
	"sort"
	"strings"
)

const (
	// MusicalContentStart marks the beginning of generated chords or lyrics
	MusicalContentStart = "🎵 MUSICAL CONTENT START 🎵"
	// MusicalContentEnd marks the end of generated chords or lyrics
	MusicalContentEnd = "🎵 MUSICAL CONTENT END 🎵"
)

// ToolSpec describes a tool for the agent system prompt
type ToolSpec struct {
	Name        string
	Description string
	Parameters  map[string]string
}

// TurnInput carries what every delegation task embeds
type TurnInput struct {
	Query         string
	Context       string
	SearchResults string
}

// MayaPromptBuilder builds system prompts and task descriptions for the MAYA agents
type MayaPromptBuilder struct{}

// NewMayaPromptBuilder creates a new MAYA prompt builder
func NewMayaPromptBuilder() *MayaPromptBuilder {
	return &MayaPromptBuilder{}
}

// AgentSystemPrompt builds the persona prompt for one agent, including its tools if any
func (b *MayaPromptBuilder) AgentSystemPrompt(role, goal, backstory string, tools []ToolSpec) string {
	sections := []string{
		fmt.Sprintf("You are %s.\n%s\n\nYour personal goal is: %s", role, backstory, goal),
	}
	if len(tools) > 0 {
		sections = append(sections, b.getToolInstructions(tools))
	}
	sections = append(sections, "Answer in plain text. Give your best complete answer in a single response.")
	return strings.Join(sections, "\n\n")
}

func (b *MayaPromptBuilder) getToolInstructions(tools []ToolSpec) string {
	var sb strings.Builder
	sb.WriteString("## Available Tools\n")
	for _, t := range tools {
		sb.WriteString(fmt.Sprintf("\n**%s**\n%s\n", t.Name, t.Description))
		if len(t.Parameters) > 0 {
			sb.WriteString("- Arguments:\n")
			for _, name := range sortedKeys(t.Parameters) {
				sb.WriteString(fmt.Sprintf("  - `%s`: %s\n", name, t.Parameters[name]))
			}
		}
	}
	sb.WriteString(`
To use a tool, reply with ONLY a JSON object and nothing else:
{"tool": "<tool name>", "args": {"<argument>": "<value>"}}

The tool result will be sent back to you. Then write your final answer in plain text.
If no tool is needed, answer directly.`)
	return sb.String()
}

// ToolResultMessage is the follow-up input after a tool call
func (b *MayaPromptBuilder) ToolResultMessage(toolName, result string) string {
	return fmt.Sprintf("Tool `%s` returned:\n%s\n\nNow write your final answer in plain text. Do not call another tool.", toolName, result)
}

// TaskMessage joins a task description and its expected output into the user input
func (b *MayaPromptBuilder) TaskMessage(description, expectedOutput string) string {
	if expectedOutput == "" {
		return description
	}
	return fmt.Sprintf("%s\n\nThis is the expected criteria for your final answer: %s", description, expectedOutput)
}

// SearchTask asks the advisor to gather information for the turn
func (b *MayaPromptBuilder) SearchTask(in TurnInput) string {
	return fmt.Sprintf(`Perform an initial search to gather relevant information about:
Query: %s
Context: %s

Focus on finding the most recent and relevant information.
Return the search results in a clear, structured format.`, in.Query, in.Context)
}

// ClassificationTask asks the advisor which specialists should handle the query
func (b *MayaPromptBuilder) ClassificationTask(in TurnInput) string {
	return fmt.Sprintf(`Analyze this query and determine which specialists should handle it:
Query: %s
Context: %s
Initial Search Results: %s

If the query involves:
- Music industry news, trends, market analysis -> Delegate to Trend Analyst
- Creative aspects (composition, chords, scale modes, lyrics, artistic direction) -> Delegate to Creative Assistant
- If the query requires an internet search, indicate that a search should be performed.
- Multiple aspects -> Coordinate responses from relevant agents

Return the decision as: "TREND", "CREATIVE", "SEARCH", or "BOTH"`, in.Query, in.Context, in.SearchResults)
}

// TrendTask asks the trend analyst for an industry perspective
func (b *MayaPromptBuilder) TrendTask(in TurnInput) string {
	return fmt.Sprintf(`Analyze the following query from a music industry trend perspective:
Query: %s
Context: %s
Initial Search Results: %s

Provide insights on current trends, market analysis, and industry patterns.
Focus on delivering clear, concise, and accurate information in a single response.
Use the search results to support your analysis.`, in.Query, in.Context, in.SearchResults)
}

// CreativeTask asks the creative assistant for compositions, chords or lyrics
func (b *MayaPromptBuilder) CreativeTask(in TurnInput) string {
	return fmt.Sprintf(`Address the following query from a creative and artistic perspective:
Query: %s
Context: %s
Initial Search Results: %s

Provide creative insights, musical suggestions, or artistic direction.
Include detailed chord progressions, scales, and lyrical content if applicable.

IMPORTANT: When generating musical content:
1. For chord progressions, format them clearly with:
   - Chord names (e.g., Am, F, C, G)
   - Time signature
   - Any specific voicings or variations
2. For lyrics, format them with:
   - Clear verse/chorus structure
   - Line breaks
   - Rhyme scheme indicators if applicable
3. Always mark the start of musical content with "%s"
4. Always mark the end of musical content with "%s"

Focus on delivering complete, well-structured content in a single response.
Use the search results to inform your creative suggestions.`,
		in.Query, in.Context, in.SearchResults, MusicalContentStart, MusicalContentEnd)
}

// SynthesisTask merges specialist responses into one reply
func (b *MayaPromptBuilder) SynthesisTask(searchResults string, responses []string) string {
	return fmt.Sprintf(`Synthesize these specialist insights into a coherent response:
Initial Search Results: %s
Specialist Responses: %s

Create a clear, unified response that incorporates all relevant insights.
Focus on delivering a well-structured, complete response in a single iteration.
Use the search results to support and validate the specialist insights.`, searchResults, strings.Join(responses, " "))
}

// DirectTask answers a query no specialist was picked for
func (b *MayaPromptBuilder) DirectTask(in TurnInput) string {
	return fmt.Sprintf(`Provide a direct response to:
Query: %s
Context: %s
Initial Search Results: %s

Focus on delivering a clear, complete response in a single iteration.
Use the search results to support your response.`, in.Query, in.Context, in.SearchResults)
}

// GreetingTask asks the advisor for a welcome message
func (b *MayaPromptBuilder) GreetingTask() string {
	return `Create a warm, engaging welcome message for a new user.
Include:
1. A friendly introduction as MAYA (Music Assistant for Your Activities)
2. A small explanation of your capabilities
3. An invitation to start the conversation
Keep it short and sweet with artistic flair.`
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
