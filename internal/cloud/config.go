// Copyright 2024 Google, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cloud defines the data structures for application configuration,
// loaded from TOML files. It provides a structured way to manage settings
// for the Google Cloud services, the Gemini models, the novelty vault store,
// Pub/Sub subscriptions and the prompt templates used by the director.
//
// Structs:
//   - BigQueryDataSource: Dataset and table holding finished shot lists.
//   - PromptTemplates: Text templates for the director and refinement prompts.
//   - VertexAiLLMModel: Configuration for a Vertex AI Large Language Model (LLM).
//   - TopicSubscription: Configuration for a single Pub/Sub topic subscription.
//   - Director: Which models the director uses and how many suggestions it offers.
//   - Vaults: Where the novelty vaults persist and how strictly they match.
//   - Config: The top-level struct that aggregates all other configuration structs.
//
// Functions:
//   - NewConfig: A constructor that initializes a new Config object with defaults.
package cloud

import (
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/model"
	"github.com/jaycherian/gcp-go-fashion-director/internal/core/novelty"
	"github.com/jaycherian/gcp-go-fashion-director/internal/storage"
	"google.golang.org/genai"
)

// DefaultSafetySettings blocks only high-probability harmful content. Fashion
// briefs routinely describe bodies and fit, which lower thresholds reject.
var DefaultSafetySettings = []*genai.SafetySetting{
	{
		Category:  genai.HarmCategoryDangerousContent,
		Threshold: genai.HarmBlockThresholdBlockOnlyHigh,
	},
	{
		Category:  genai.HarmCategoryHarassment,
		Threshold: genai.HarmBlockThresholdBlockOnlyHigh,
	},
	{
		Category:  genai.HarmCategoryHateSpeech,
		Threshold: genai.HarmBlockThresholdBlockOnlyHigh,
	},
	{
		Category:  genai.HarmCategorySexuallyExplicit,
		Threshold: genai.HarmBlockThresholdBlockOnlyHigh,
	},
}

// BigQueryDataSource represents the configuration for the BigQuery tables the
// finished shot lists are written to and read back from.
type BigQueryDataSource struct {
	DatasetName   string `toml:"dataset"`         // The name of the BigQuery dataset.
	ShotListTable string `toml:"shot_list_table"` // The table holding one row per director run.
}

// PromptTemplates holds the text/template sources for the two model calls.
type PromptTemplates struct {
	DirectorPrompt   string `toml:"director"`   // Rendered with the brief, blocklists and suggestions.
	RefinementPrompt string `toml:"refinement"` // Rendered with the extracted sections and beat info.
}

// VertexAiLLMModel represents the configuration for a Vertex AI large language model (LLM).
type VertexAiLLMModel struct {
	Model              string  `toml:"model"`               // The name of the Vertex AI LLM.
	SystemInstructions string  `toml:"system_instructions"` // The system instructions for the LLM.
	Temperature        float32 `toml:"temperature"`         // The temperature parameter for the LLM.
	TopP               float32 `toml:"top_p"`               // The top_p parameter for the LLM.
	TopK               float32 `toml:"top_k"`               // The top_k parameter for the LLM.
	MaxTokens          int32   `toml:"max_tokens"`          // The maximum number of tokens for the LLM output.
	OutputFormat       string  `toml:"output_format"`       // The desired output format for the LLM.
	RateLimit          int     `toml:"rate_limit"`          // The rate limit for the LLM in requests per second.
}

// TopicSubscription represents the configuration for a Pub/Sub topic subscription.
type TopicSubscription struct {
	Name             string `toml:"name"`               // The name of the Pub/Sub subscription.
	DeadLetterTopic  string `toml:"dead_letter_topic"`  // The name of the dead-letter topic for the subscription.
	TimeoutInSeconds int    `toml:"timeout_in_seconds"` // The timeout for the subscription in seconds.
}

// Director selects the agent models used by the director workflow and sizes
// the lists injected into its prompt.
type Director struct {
	Model                string `toml:"model"`                  // Key into AgentModels for the first pass.
	RefinementModel      string `toml:"refinement_model"`       // Key into AgentModels for scene refinement. Falls back to Model.
	SuggestedLocations   int    `toml:"suggested_locations"`    // How many unused locations to suggest.
	SuggestedStudios     int    `toml:"suggested_studios"`      // How many unused studio backdrops to suggest.
	OpeningLineBlocklist int    `toml:"opening_line_blocklist"` // How many recent opening lines to forbid.
	RequestSubscription  string `toml:"request_subscription"`   // Key into TopicSubscriptions delivering director requests.
}

// Vaults configures the slot store behind the novelty vaults and the
// per-vault fuzzy matching thresholds. Zero thresholds keep the defaults.
type Vaults struct {
	Store                    string `toml:"store"` // memory, file, sqlite, redis or gcs.
	Dir                      string `toml:"dir"`
	SQLitePath               string `toml:"sqlite_path"`
	RedisAddr                string `toml:"redis_addr"`
	RedisPassword            string `toml:"redis_password"`
	RedisDB                  int    `toml:"redis_db"`
	KeyPrefix                string `toml:"key_prefix"`
	Bucket                   string `toml:"bucket"`
	LocationCompareLength    int    `toml:"location_compare_length"`
	BackdropCompareLength    int    `toml:"backdrop_compare_length"`
	OpeningLineCompareLength int    `toml:"opening_line_compare_length"`
	HeadTokens               int    `toml:"head_tokens"`
}

// StoreConfig maps the vault settings onto a storage.Config.
func (v Vaults) StoreConfig() storage.Config {
	return storage.Config{
		Kind:          v.Store,
		Dir:           v.Dir,
		SQLitePath:    v.SQLitePath,
		RedisAddr:     v.RedisAddr,
		RedisPassword: v.RedisPassword,
		RedisDB:       v.RedisDB,
		KeyPrefix:     v.KeyPrefix,
		Bucket:        v.Bucket,
	}
}

// Matchers returns the matcher overrides for the vaults that have one
// configured. Vaults without overrides keep novelty.DefaultOptions.
func (v Vaults) Matchers() map[model.VaultName]novelty.Matcher {
	out := make(map[model.VaultName]novelty.Matcher)
	lengths := map[model.VaultName]int{
		model.LocationVault:    v.LocationCompareLength,
		model.BackdropVault:    v.BackdropCompareLength,
		model.OpeningLineVault: v.OpeningLineCompareLength,
	}
	for name, length := range lengths {
		if length <= 0 && v.HeadTokens <= 0 {
			continue
		}
		m := novelty.DefaultOptions(name).Matcher
		if length > 0 {
			m.CompareLength = length
		}
		if v.HeadTokens > 0 {
			m.HeadTokens = v.HeadTokens
		}
		out[name] = m
	}
	return out
}

// Config represents the overall configuration for the application, loaded from TOML files.
// It acts as the root container for all other configuration structs.
type Config struct {
	// Application holds general application settings.
	Application struct {
		Name            string `toml:"name"`              // The name of the application.
		GoogleProjectId string `toml:"google_project_id"` // The Google Cloud project ID. Empty runs without cloud services.
		GoogleLocation  string `toml:"location"`          // The Google Cloud location.
	} `toml:"application"`
	Server struct {
		Port          int `toml:"port"`
		MaxUploadMB   int `toml:"max_upload_mb"`  // Limit on the multipart director form.
		MaxTextKB     int `toml:"max_text_kb"`    // Limit on the JSON bodies of /extract and /split.
		WorkflowLimit int `toml:"workflow_limit"` // Seconds a single director run may take.
	} `toml:"server"`
	Logging struct {
		Level string `toml:"level"` // debug, info, warn or error.
		File  string `toml:"file"`  // Optional file mirrored alongside stdout.
	} `toml:"logging"`
	Director           Director                     `toml:"director"`
	Vaults             Vaults                       `toml:"vaults"`
	BigQueryDataSource BigQueryDataSource           `toml:"big_query_data_source"` // BigQuery data source configuration.
	PromptTemplates    PromptTemplates              `toml:"prompt_templates"`      // Prompt templates configuration.
	TopicSubscriptions map[string]TopicSubscription `toml:"topic_subscriptions"`   // Pub/Sub subscriptions, keyed by a logical name (e.g., "DirectorRequests").
	AgentModels        map[string]VertexAiLLMModel  `toml:"agent_models"`          // Vertex AI LLM models, keyed by a logical name (e.g., "director-pro").
}

// NewConfig is a constructor function that creates a new, initialized Config instance.
// The maps are initialized so the TOML decoder can populate them, and the
// scalar defaults apply when a file leaves a value out.
//
// Outputs:
//   - *Config: A pointer to a new Config struct.
func NewConfig() *Config {
	c := &Config{
		TopicSubscriptions: make(map[string]TopicSubscription),
		AgentModels:        make(map[string]VertexAiLLMModel),
	}
	c.Application.Name = "fashion-director"
	c.Server.Port = 8080
	c.Server.MaxUploadMB = 20
	c.Server.MaxTextKB = 1024
	c.Server.WorkflowLimit = 300
	c.Logging.Level = "info"
	c.Director.SuggestedLocations = 5
	c.Director.SuggestedStudios = 5
	c.Director.OpeningLineBlocklist = 15
	c.Vaults.Store = storage.KindMemory
	c.PromptTemplates.DirectorPrompt = DefaultDirectorPrompt
	c.PromptTemplates.RefinementPrompt = DefaultRefinementPrompt
	return c
}
