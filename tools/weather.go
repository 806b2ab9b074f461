package tools

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	WeatherToolName = "weather_search"

	// DefaultWeatherURL is the OpenWeatherMap current weather endpoint
	DefaultWeatherURL = "http://api.openweathermap.org/data/2.5/weather"

	weatherUnavailable = "Unable to fetch weather data at this time."
)

// WeatherTool reports current conditions for a city via OpenWeatherMap.
// Fetch failures come back as readable text, never as a ToolResult error.
type WeatherTool struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
}

type weatherResponse struct {
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Message string `json:"message"`
}

func NewWeatherTool(apiKey string) *WeatherTool {
	return &WeatherTool{
		APIKey:  apiKey,
		BaseURL: DefaultWeatherURL,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (t *WeatherTool) Name() string { return WeatherToolName }
func (t *WeatherTool) Description() string {
	return "Fetch current weather information for a specified city."
}
func (t *WeatherTool) Parameters() map[string]string {
	return map[string]string{"city": "Name of the city, e.g. London"}
}

func (t *WeatherTool) Call(ctx context.Context, call ToolCall) ToolResult {
	city, ok := call.StringArg("city")
	if !ok {
		return ToolResult{Error: fmt.Errorf("missing argument: city")}
	}
	return ToolResult{Output: t.FetchWeather(ctx, city)}
}

// FetchWeather returns a one-line weather report for city
func (t *WeatherTool) FetchWeather(ctx context.Context, city string) string {
	q := url.Values{}
	q.Set("q", city)
	q.Set("appid", t.APIKey)
	q.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		log.Error().Err(err).Msg("Error fetching weather")
		return weatherUnavailable
	}

	client := t.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		log.Error().Err(err).Msg("Error fetching weather")
		return weatherUnavailable
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error().Err(err).Msg("Error fetching weather")
		return weatherUnavailable
	}

	var data weatherResponse
	if err := json.Unmarshal(body, &data); err != nil {
		log.Error().Err(err).Msg("Error fetching weather")
		return weatherUnavailable
	}

	if resp.StatusCode != http.StatusOK {
		message := data.Message
		if message == "" {
			message = "Unknown error"
		}
		return fmt.Sprintf("Error fetching weather data: %s", message)
	}

	if len(data.Weather) == 0 {
		log.Error().Str("city", city).Msg("Error fetching weather: response has no weather entries")
		return weatherUnavailable
	}

	temp := strconv.FormatFloat(data.Main.Temp, 'f', -1, 64)
	return fmt.Sprintf("The current weather in %s is %s with a temperature of %s°C.", city, data.Weather[0].Description, temp)
}
