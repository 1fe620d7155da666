package config

type Database struct {
	Host     string `mapstructure:"DATABASE_HOST" default:"localhost"`
	Port     int    `mapstructure:"DATABASE_PORT" default:"5432"`
	Name     string `mapstructure:"DATABASE_NAME" default:"procflow"`
	User     string `mapstructure:"DATABASE_USER" default:"postgres"`
	Password string `mapstructure:"DATABASE_PASSWORD" default:"procflow"`
}

type Redis struct {
	Host     string `mapstructure:"REDIS_HOST" default:"127.0.0.1"`
	Port     int    `mapstructure:"REDIS_PORT" default:"6379"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB" default:"0"`
}

type Server struct {
	Platform string `mapstructure:"PLATFORM" default:"openwms"`
	Service  string `mapstructure:"SERVICE" default:"procflow"`
	Port     int    `mapstructure:"WEB_PORT" default:"8080"`
	Env      string `mapstructure:"ENV" default:"dev"`
}

type Auth struct {
	Secret   string `mapstructure:"AUTH_SECRET" default:"procflow-dev-secret"`
	TokenTTL int    `mapstructure:"AUTH_TOKEN_TTL_HOURS" default:"24"`
}

// Catalog points at the framework configuration document. Path wins
// over Addr; with neither set the embedded default catalog is used.
type Catalog struct {
	Path string `mapstructure:"CATALOG_PATH" default:""`
	Addr string `mapstructure:"CATALOG_ADDR" default:""`
}

type Log struct {
	LogPath  string `mapstructure:"LOG_PATH" default:"./info.log"`
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
}

type Trace struct {
	Version        string `mapstructure:"TRACE_VERSION" default:"0.0.1"`
	TraceEndpoint  string `mapstructure:"TRACE_TRACEENDPOINT" default:""`
	MetricEndpoint string `mapstructure:"TRACE_METRICENDPOINT" default:""`
}
