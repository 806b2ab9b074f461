package tools

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseToolCall(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantOK   bool
		wantName string
		wantArg  string
	}{
		{
			name:     "bare object",
			input:    `{"tool": "weather_search", "args": {"city": "Lisbon"}}`,
			wantOK:   true,
			wantName: "weather_search",
			wantArg:  "Lisbon",
		},
		{
			name:     "fenced json block",
			input:    "Let me check.\n```json\n{\"tool\": \"weather_search\", \"args\": {\"city\": \"Oslo\"}}\n```",
			wantOK:   true,
			wantName: "weather_search",
			wantArg:  "Oslo",
		},
		{
			name:     "embedded in prose",
			input:    `Sure thing: {"tool": "weather_search", "args": {"city": "Rome"}}`,
			wantOK:   true,
			wantName: "weather_search",
			wantArg:  "Rome",
		},
		{
			name:   "plain answer",
			input:  "Jazz originated in New Orleans.",
			wantOK: false,
		},
		{
			name:   "json without tool key",
			input:  `{"answer": "TREND"}`,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			call, ok := ParseToolCall(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}
			assert.Equal(t, tt.wantName, call.Name)
			city, _ := call.StringArg("city")
			assert.Equal(t, tt.wantArg, city)
		})
	}
}

func TestParseToolCall_MissingArgs(t *testing.T) {
	call, ok := ParseToolCall(`{"tool": "web_search"}`)
	require.True(t, ok)
	assert.NotNil(t, call.Args)
	_, has := call.StringArg("query")
	assert.False(t, has)
}

type echoTool struct{}

func (echoTool) Name() string                  { return "echo" }
func (echoTool) Description() string           { return "echo" }
func (echoTool) Parameters() map[string]string { return map[string]string{"text": "text"} }
func (echoTool) Call(_ context.Context, call ToolCall) ToolResult {
	s, _ := call.StringArg("text")
	return ToolResult{Output: s}
}

func TestToolRegistry(t *testing.T) {
	r := NewToolRegistry(echoTool{}, NewWeatherTool("k"))

	assert.True(t, r.HasTool("echo"))
	assert.False(t, r.HasTool("web_search"))

	names := []string{}
	for _, tool := range r.List() {
		names = append(names, tool.Name())
	}
	assert.Equal(t, []string{"echo", "weather_search"}, names)

	res := r.CallTool(context.Background(), ToolCall{Name: "echo", Args: map[string]any{"text": "hi"}})
	require.NoError(t, res.Error)
	assert.Equal(t, "hi", res.Output)

	res = r.CallTool(context.Background(), ToolCall{Name: "nope"})
	assert.EqualError(t, res.Error, "tool not found: nope")
}

func newWeatherServer(t *testing.T, status int, body string) (*WeatherTool, *url.Values) {
	t.Helper()
	captured := url.Values{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r.URL.Query()
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(server.Close)

	tool := NewWeatherTool("owm-key")
	tool.BaseURL = server.URL
	tool.Client = server.Client()
	return tool, &captured
}

func TestWeatherTool_Success(t *testing.T) {
	tool, query := newWeatherServer(t, http.StatusOK,
		`{"weather":[{"description":"light rain"}],"main":{"temp":12.5},"cod":200}`)

	out := tool.FetchWeather(context.Background(), "New York")

	assert.Equal(t, "The current weather in New York is light rain with a temperature of 12.5°C.", out)
	assert.Equal(t, "New York", query.Get("q"))
	assert.Equal(t, "owm-key", query.Get("appid"))
	assert.Equal(t, "metric", query.Get("units"))
}

func TestWeatherTool_APIError(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"with message", `{"cod":"404","message":"city not found"}`, "Error fetching weather data: city not found"},
		{"without message", `{"cod":"500"}`, "Error fetching weather data: Unknown error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tool, _ := newWeatherServer(t, http.StatusNotFound, tt.body)
			res := tool.Call(context.Background(), ToolCall{Name: WeatherToolName, Args: map[string]any{"city": "Atlantis"}})
			require.NoError(t, res.Error)
			assert.Equal(t, tt.want, res.Output)
		})
	}
}

func TestWeatherTool_TransportFailure(t *testing.T) {
	tool := NewWeatherTool("k")
	tool.BaseURL = "http://127.0.0.1:1/unreachable"

	out := tool.FetchWeather(context.Background(), "Paris")
	assert.Equal(t, "Unable to fetch weather data at this time.", out)
}

func TestWeatherTool_MalformedBody(t *testing.T) {
	tool, _ := newWeatherServer(t, http.StatusOK, `<html>oops</html>`)
	assert.Equal(t, "Unable to fetch weather data at this time.", tool.FetchWeather(context.Background(), "Paris"))
}

func TestSearchTool_Search(t *testing.T) {
	var gotKey, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-API-KEY")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		_, _ = io.WriteString(w, `{"organic":[
			{"title":"Billboard Hot 100","link":"https://billboard.com","snippet":"This week's top songs"},
			{"title":"Spotify Charts","link":"https://charts.spotify.com","snippet":"Global top 50"},
			{"title":"Third","link":"https://example.com","snippet":"dropped"}
		]}`)
	}))
	defer server.Close()

	tool := NewSearchTool("serper-key")
	tool.BaseURL = server.URL
	tool.Client = server.Client()
	tool.MaxResults = 2

	res := tool.Call(context.Background(), ToolCall{Name: SearchToolName, Args: map[string]any{"query": "top songs"}})
	require.NoError(t, res.Error)

	assert.Equal(t, "serper-key", gotKey)
	assert.JSONEq(t, `{"q":"top songs"}`, gotBody)
	assert.Contains(t, res.Output, "Title: Billboard Hot 100\nLink: https://billboard.com\nSnippet: This week's top songs")
	assert.Contains(t, res.Output, "Spotify Charts")
	assert.NotContains(t, res.Output, "dropped")
}

func TestSearchTool_Errors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, `{"message":"Unauthorized."}`)
	}))
	defer server.Close()

	tool := NewSearchTool("bad")
	tool.BaseURL = server.URL

	_, err := tool.Search(context.Background(), "anything")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "search API error 403"))

	res := tool.Call(context.Background(), ToolCall{Name: SearchToolName, Args: map[string]any{}})
	assert.EqualError(t, res.Error, "missing argument: query")
}

func TestFormatSearchResults_Empty(t *testing.T) {
	assert.Equal(t, "No search results found for: x", formatSearchResults("x", serperResponse{}, 5))
}
