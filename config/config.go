package config

// Config contains all application settings
type Config struct {
	BindPort      int    `mapstructure:"PORT" yaml:"port"`
	BindHost      string `mapstructure:"HOST" yaml:"host"`
	DatabaseURL   string `mapstructure:"DATABASE_URL" yaml:"database_url"`
	NATSServerURL string `mapstructure:"NATS_URL" yaml:"nats_url"`
	InfluxURL     string `mapstructure:"INFLUX_URL" yaml:"influx_url"`
	InfluxToken   string `mapstructure:"INFLUX_TOKEN" yaml:"influx_token"`
	InfluxOrg     string `mapstructure:"INFLUX_ORG" yaml:"influx_org"`
	InfluxBucket  string `mapstructure:"INFLUX_BUCKET" yaml:"influx_bucket"`

	// Version
	BuildVersion string `yaml:"-"`
	BuildHash    string `yaml:"-"`
	BuildTime    string `yaml:"-"`
}
