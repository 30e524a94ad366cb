// Package config manages configuration for the callscope services.
// It uses Viper for unified configuration management from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/callscope/callscope/internal/constants"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config represents the unified configuration structure for both services.
// All values are loaded from environment variables with the CALLSCOPE_ prefix.
type Config struct {
	// Shared
	InitTimeout time.Duration `mapstructure:"init_timeout"`
	LogLevel    string        `mapstructure:"log_level"`

	// Transcript processor
	AppSyncAPIKey            string                `mapstructure:"appsync_api_key"`
	AppSyncGraphQLURL        string                `mapstructure:"appsync_graphql_url" validate:"omitempty,url"`
	AudioSource              constants.AudioSource `mapstructure:"call_audio_source"`
	ComprehendLanguageCode   string                `mapstructure:"comprehend_language_code"`
	LambdaAgentAssistEnabled bool                  `mapstructure:"is_lambda_agent_assist_enabled"`
	LambdaAgentAssistFnARN   string                `mapstructure:"lambda_agent_assist_function_arn"`
	LexAgentAssistEnabled    bool                  `mapstructure:"is_lex_agent_assist_enabled"`
	LexBotAliasID            string                `mapstructure:"lex_bot_alias_id"`
	LexBotID                 string                `mapstructure:"lex_bot_id"`
	LexBotLocaleID           string                `mapstructure:"lex_bot_locale_id"`
	ParameterStoreName       string                `mapstructure:"parameter_store_name"`
	SentimentAnalysisEnabled bool                  `mapstructure:"is_sentiment_analysis_enabled"`
	SNSTopicARN              string                `mapstructure:"sns_topic_arn"`
	StateTable               string                `mapstructure:"state_table"`

	// Voice tone processor
	CallEventTable    string `mapstructure:"transcriber_call_event_table"`
	CallCacheSize     int    `mapstructure:"call_cache_size"`
	KinesisStreamName string `mapstructure:"kinesis_stream_name"`
	TaskCacheSize     int    `mapstructure:"task_cache_size"`
}

var validate = validator.New()

// Load loads the configuration using Viper from the environment.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("CALLSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadTranscriptProcessor loads configuration for the transcript processor
// service and validates its required fields.
func LoadTranscriptProcessor() (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	if err := validateTranscriptProcessor(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadVoiceToneProcessor loads configuration for the voice tone processor
// service and validates its required fields.
func LoadVoiceToneProcessor() (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	if err := validateVoiceToneProcessor(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// MustLoadTranscriptProcessor loads transcript processor configuration and exits on error.
// Suitable for application startup where configuration errors should be fatal.
func MustLoadTranscriptProcessor() *Config {
	cfg, err := LoadTranscriptProcessor()
	if err != nil {
		slog.Error("failed to load transcript processor configuration", "error", err)
		os.Exit(1)
	}
	return cfg
}

// MustLoadVoiceToneProcessor loads voice tone processor configuration and exits on error.
// Suitable for application startup where configuration errors should be fatal.
func MustLoadVoiceToneProcessor() *Config {
	cfg, err := LoadVoiceToneProcessor()
	if err != nil {
		slog.Error("failed to load voice tone processor configuration", "error", err)
		os.Exit(1)
	}
	return cfg
}

// GetLogLevel returns the slog.Level from the string configuration.
// Defaults to INFO if the level string is invalid.
func (c *Config) GetLogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Helper functions

func setDefaults(v *viper.Viper) {
	v.SetDefault("init_timeout", "10s")
	v.SetDefault("log_level", "INFO")
	v.SetDefault("comprehend_language_code", "en")
	v.SetDefault("is_sentiment_analysis_enabled", true)
	v.SetDefault("is_lex_agent_assist_enabled", true)
	v.SetDefault("is_lambda_agent_assist_enabled", true)
	v.SetDefault("call_cache_size", 1024)
	v.SetDefault("task_cache_size", 1024)
}

func bindEnvVars(v *viper.Viper) {
	envVars := []string{
		"APPSYNC_API_KEY",
		"APPSYNC_GRAPHQL_URL",
		"CALL_AUDIO_SOURCE",
		"CALL_CACHE_SIZE",
		"COMPREHEND_LANGUAGE_CODE",
		"INIT_TIMEOUT",
		"IS_LAMBDA_AGENT_ASSIST_ENABLED",
		"IS_LEX_AGENT_ASSIST_ENABLED",
		"IS_SENTIMENT_ANALYSIS_ENABLED",
		"KINESIS_STREAM_NAME",
		"LAMBDA_AGENT_ASSIST_FUNCTION_ARN",
		"LEX_BOT_ALIAS_ID",
		"LEX_BOT_ID",
		"LEX_BOT_LOCALE_ID",
		"LOG_LEVEL",
		"PARAMETER_STORE_NAME",
		"SNS_TOPIC_ARN",
		"STATE_TABLE",
		"TASK_CACHE_SIZE",
		"TRANSCRIBER_CALL_EVENT_TABLE",
	}

	for _, envVar := range envVars {
		configKey := strings.ToLower(envVar)
		_ = v.BindEnv(configKey, "CALLSCOPE_"+envVar)
	}
}

// validateTranscriptProcessor validates required fields for the transcript processor.
func validateTranscriptProcessor(cfg *Config) error {
	required := map[string]string{
		"AppSyncGraphQLURL":  cfg.AppSyncGraphQLURL,
		"ParameterStoreName": cfg.ParameterStoreName,
		"StateTable":         cfg.StateTable,
	}

	for field, value := range required {
		if value == "" {
			return fmt.Errorf("%s cannot be empty", field)
		}
	}

	if cfg.LambdaAgentAssistEnabled && cfg.LambdaAgentAssistFnARN == "" {
		return fmt.Errorf("LambdaAgentAssistFnARN cannot be empty when Lambda agent assist is enabled")
	}

	if cfg.LexAgentAssistEnabled {
		if cfg.LexBotID == "" || cfg.LexBotAliasID == "" || cfg.LexBotLocaleID == "" {
			return fmt.Errorf("LexBotID, LexBotAliasID and LexBotLocaleID cannot be empty when Lex agent assist is enabled")
		}
	}

	return nil
}

// validateVoiceToneProcessor validates required fields for the voice tone processor.
func validateVoiceToneProcessor(cfg *Config) error {
	required := map[string]string{
		"CallEventTable":    cfg.CallEventTable,
		"KinesisStreamName": cfg.KinesisStreamName,
	}

	for field, value := range required {
		if value == "" {
			return fmt.Errorf("%s cannot be empty", field)
		}
	}

	return nil
}
