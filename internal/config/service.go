package config

type ServiceConfig struct {
	Name                string `yaml:"name"`
	Environment         string `yaml:"environment"`
	Version             string `yaml:"version"`
	EnableTestEndpoints bool   `yaml:"enable_test_endpoints"`
	// CORSOrigins are the dashboard and checkout origins allowed to call the API
	CORSOrigins []string `yaml:"cors_origins"`
}
