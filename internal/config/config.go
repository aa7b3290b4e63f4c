package config

import (
	"github.com/kelseyhightower/envconfig"
)

var singleConfig *Config = nil

type Config struct {
	Database  *dbConfig
	Service   *svcConfig
	Workspace *workspaceConfig
}

type dbConfig struct {
	Type     string `envconfig:"DB_TYPE" default:"sqlite"`
	Hostname string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	Name     string `envconfig:"DB_NAME" default:"sustaino.db"`
	User     string `envconfig:"DB_USER" default:"admin"`
	Password string `envconfig:"DB_PASS" default:"adminpass"`
}

type svcConfig struct {
	Address        string `envconfig:"SUSTAINO_ADDRESS" default:":3443"`
	MetricsAddress string `envconfig:"SUSTAINO_METRICS_ADDRESS" default:":8080"`
	LogLevel       string `envconfig:"SUSTAINO_LOG_LEVEL" default:"info"`
	LogFormat      string `envconfig:"SUSTAINO_LOG_FORMAT" default:"console"`
	Auth           Auth
}

type workspaceConfig struct {
	DebounceMs       int    `envconfig:"SUSTAINO_WORKSPACE_DEBOUNCE_MS" default:"2000"`
	AutoSaveSeconds  int    `envconfig:"SUSTAINO_WORKSPACE_AUTOSAVE_SECONDS" default:"30"`
	JobNumberBase    int    `envconfig:"SUSTAINO_WORKSPACE_JOB_NUMBER_BASE" default:"10000"`
	DataDir          string `envconfig:"SUSTAINO_WORKSPACE_DATA_DIR" default:"."`
	ServiceServer    string `envconfig:"SUSTAINO_WORKSPACE_SERVICE_URL" default:""`
	ServiceAuthToken string `envconfig:"SUSTAINO_WORKSPACE_SERVICE_TOKEN" default:""`
}

type Auth struct {
	AuthenticationType string `envconfig:"SUSTAINO_AUTH" default:""`
	StaticUsername     string `envconfig:"SUSTAINO_AUTH_STATIC_USERNAME" default:"admin"`
	StaticOrganization string `envconfig:"SUSTAINO_AUTH_STATIC_ORG" default:"internal"`
}

func New() (*Config, error) {
	if singleConfig == nil {
		singleConfig = new(Config)
		if err := envconfig.Process("", singleConfig); err != nil {
			return nil, err
		}
	}
	return singleConfig, nil
}
