package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/ecovate/internal/flagx"
	"github.com/dmitrijs2005/ecovate/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish absent keys from zero values.
type JsonConfig struct {
	StoreDriver *string `json:"store_driver"`
	StoreDSN    *string `json:"store_dsn"`

	LogBackend *string `json:"log_backend"`
	LogLevel   *string `json:"log_level"`
	LogFormat  *string `json:"log_format"`

	SessionSecret          *string         `json:"session_secret"`
	SessionTTL             *timex.Duration `json:"session_ttl"`
	LoginAttemptsPerMinute *int            `json:"login_attempts_per_minute"`

	FactorsFile *string `json:"factors_file"`

	AssistantDelay *timex.Duration `json:"assistant_delay"`
	InvestDelay    *timex.Duration `json:"invest_delay"`

	S3Bucket       *string `json:"s3_bucket"`
	S3Region       *string `json:"s3_region"`
	S3BaseEndpoint *string `json:"s3_base_endpoint"`
	S3AccessKey    *string `json:"s3_access_key"`
	S3SecretKey    *string `json:"s3_secret_key"`
	BackupPrefix   *string `json:"backup_prefix"`
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Without the flag nothing happens; read or decode errors
// panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}
	jc.apply(cfg)
}

func (jc *JsonConfig) apply(cfg *Config) {
	setString(&cfg.StoreDriver, jc.StoreDriver)
	setString(&cfg.StoreDSN, jc.StoreDSN)
	setString(&cfg.LogBackend, jc.LogBackend)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)
	setString(&cfg.SessionSecret, jc.SessionSecret)
	if jc.SessionTTL != nil {
		cfg.SessionTTL = jc.SessionTTL.Duration
	}
	if jc.LoginAttemptsPerMinute != nil {
		cfg.LoginAttemptsPerMinute = *jc.LoginAttemptsPerMinute
	}
	setString(&cfg.FactorsFile, jc.FactorsFile)
	if jc.AssistantDelay != nil {
		cfg.AssistantDelay = jc.AssistantDelay.Duration
	}
	if jc.InvestDelay != nil {
		cfg.InvestDelay = jc.InvestDelay.Duration
	}
	setString(&cfg.S3Bucket, jc.S3Bucket)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
	setString(&cfg.S3AccessKey, jc.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.S3SecretKey)
	setString(&cfg.BackupPrefix, jc.BackupPrefix)
}
