package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultAdminKey guards the maintenance endpoints when ADMIN_KEY is unset
const DefaultAdminKey = "resume_admin_key_2025"

// AppConfig is the root configuration shared by the API server and the CLI
type AppConfig struct {
	Port     string         `mapstructure:"port" validate:"required"`
	AdminKey string         `mapstructure:"admin_key" validate:"required"`
	LLM      LLMSettings    `mapstructure:"llm"`
	Cosmos   CosmosSettings `mapstructure:"cosmos"`
	Blob     BlobSettings   `mapstructure:"blob"`
	Store    StoreSettings  `mapstructure:"store"`
	Cache    CacheSettings  `mapstructure:"cache"`
	Logger   LoggerSettings `mapstructure:"logger"`
}

// envBindings maps config keys to the environment variables that can provide them.
// The first name is checked first.
var envBindings = map[string][]string{
	"port":                            {"PORT"},
	"admin_key":                       {"ADMIN_KEY"},
	"llm.api_key":                     {"OPENAI_API_KEY"},
	"llm.base_url":                    {"OPENAI_API_BASE"},
	"llm.api_type":                    {"OPENAI_API_TYPE"},
	"llm.api_version":                 {"OPENAI_API_VERSION"},
	"llm.deployment":                  {"OPENAI_DEPLOYMENT_NAME"},
	"llm.max_retries":                 {"OPENAI_MAX_RETRIES"},
	"cosmos.endpoint":                 {"COSMOS_HOST"},
	"cosmos.key":                      {"COSMOS_MASTER_KEY"},
	"cosmos.resume_database":          {"RESUME_DATABASE_ID"},
	"cosmos.resume_container":         {"RESUME_CONTAINER_ID"},
	"cosmos.job_database":             {"JOB_DATABASE_ID"},
	"cosmos.job_container":            {"JOB_CONTAINER_ID"},
	"cosmos.tailored_container":       {"TAILORED_RESUME_CONTAINER_ID"},
	"cosmos.partition_key_path":       {"PARTITION_KEY_PATH"},
	"blob.connection_string":          {"BLOB_CONNECTION_STRING"},
	"blob.connection_string_with_sas": {"BLOB_CONNECTION_STRING_WITH_SAS"},
	"blob.container_name":             {"BLOB_CONTAINER_NAME"},
	"blob.sas_token":                  {"BLOB_SAS_TOKEN"},
	"blob.base_url":                   {"BLOB_BASE_URL"},
	"blob.sas_url":                    {"BLOB_SAS_URL"},
	"store.type":                      {"STORE_TYPE"},
	"store.dsn":                       {"STORE_DSN"},
	"cache.redis_addr":                {"REDIS_ADDR"},
	"cache.redis_password":            {"REDIS_PASSWORD"},
	"cache.redis_db":                  {"REDIS_DB"},
	"cache.ttl":                       {"CACHE_TTL"},
	"logger.log_level":                {"LOG_LEVEL"},
	"logger.log_type":                 {"LOG_TYPE"},
	"logger.file_path":                {"LOG_FILE_PATH"},
	"logger.max_size":                 {"LOG_MAX_SIZE"},
	"logger.max_backups":              {"LOG_MAX_BACKUPS"},
	"logger.max_age":                  {"LOG_MAX_AGE"},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8000")
	v.SetDefault("admin_key", DefaultAdminKey)
	v.SetDefault("llm.api_type", LLMTypeAzure)
	v.SetDefault("llm.max_retries", 3)
	v.SetDefault("cosmos.partition_key_path", "/items")
	v.SetDefault("blob.container_name", DefaultBlobContainer)
	v.SetDefault("blob.base_url", DefaultBlobBaseURL)
	v.SetDefault("store.type", StoreTypeCosmos)
	v.SetDefault("cache.ttl", "24h")
	v.SetDefault("logger.log_level", LogLevelInfo)
	v.SetDefault("logger.log_type", LogTypeConsole)
}

// Load reads a .env file when present, then the YAML file at filePath when it exists,
// and finally lets environment variables override both.
func Load(filePath string) (*AppConfig, error) {
	// A missing .env is the normal case in containers
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if err := bindEnvs(v); err != nil {
		return nil, fmt.Errorf("failed to bind environment: %w", err)
	}

	if filePath != "" {
		if _, err := os.Stat(filePath); !errors.Is(err, fs.ErrNotExist) {
			v.SetConfigFile(filePath)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config file %s: %w", filePath, err)
			}
		}
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the root settings and every nested block
func (c *AppConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("validation failed for AppConfig: %w", err)
	}
	if err := c.Logger.Validate(); err != nil {
		return err
	}
	if err := c.LLM.Validate(); err != nil {
		return err
	}
	if err := c.Blob.Validate(); err != nil {
		return err
	}
	if err := c.Store.Validate(); err != nil {
		return err
	}
	return c.Cosmos.Validate(c.Store.Type == StoreTypeCosmos)
}

// MissingCritical lists the environment variables that are unset but needed
// for the full processing pipeline. The service still starts without them.
func (c *AppConfig) MissingCritical() []string {
	var missing []string
	check := func(value, env string) {
		if value == "" {
			missing = append(missing, env)
		}
	}

	check(c.LLM.APIKey, "OPENAI_API_KEY")
	check(c.LLM.BaseURL, "OPENAI_API_BASE")
	check(c.LLM.Deployment, "OPENAI_DEPLOYMENT_NAME")
	if c.Store.Type == StoreTypeCosmos {
		check(c.Cosmos.Endpoint, "COSMOS_HOST")
		check(c.Cosmos.Key, "COSMOS_MASTER_KEY")
	}
	check(c.Blob.ConnectionString, "BLOB_CONNECTION_STRING")

	return missing
}

func bindEnvs(v *viper.Viper) error {
	for key, envs := range envBindings {
		inputs := slices.Insert(slices.Clone(envs), 0, key)
		if err := v.BindEnv(inputs...); err != nil {
			return err
		}
	}
	return nil
}
