package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/onsi/gomega"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"TODOS_CONFIG", "PORT", "TODOS_DATA_FILE", "TODOS_STATIC_DIR", "GIN_MODE",
		"ENFORCE_HTTPS", "RATE_LIMIT_ENABLED", "OTEL_EXPORTER_OTLP_ENDPOINT", "LOKI_URL",
	} {
		t.Setenv(key, "")
	}

	// Setenv first so the original value is restored after the test.
	t.Setenv("METRICS_PORT", "")
	os.Unsetenv("METRICS_PORT")
}

func TestLoad_Defaults(t *testing.T) {
	RegisterTestingT(t)
	clearEnv(t)

	config, err := Load()

	Expect(err).To(BeNil())
	Expect(config.Port).To(Equal("3000"))
	Expect(config.DataFile).To(Equal("todos.json"))
	Expect(config.StaticDir).To(Equal("public"))
	Expect(config.Environment).To(Equal("development"))
	Expect(config.EnforceHTTPS).To(BeFalse())
	Expect(config.RateLimitEnabled).To(BeTrue())
	Expect(config.Telemetry.MetricsPort).To(Equal("9091"))
	Expect(config.Telemetry.OTLPEndpoint).To(BeEmpty())
}

func TestLoad_EnvOverrides(t *testing.T) {
	RegisterTestingT(t)
	clearEnv(t)

	t.Setenv("PORT", "8081")
	t.Setenv("TODOS_DATA_FILE", "/var/lib/todos/data.json")
	t.Setenv("GIN_MODE", "release")
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("METRICS_PORT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4317")

	config, err := Load()

	Expect(err).To(BeNil())
	Expect(config.Port).To(Equal("8081"))
	Expect(config.DataFile).To(Equal("/var/lib/todos/data.json"))
	Expect(config.Environment).To(Equal("production"))
	Expect(config.EnforceHTTPS).To(BeTrue())
	Expect(config.RateLimitEnabled).To(BeFalse())
	Expect(config.Telemetry.MetricsPort).To(BeEmpty())
	Expect(config.Telemetry.OTLPEndpoint).To(Equal("collector:4317"))
}

func TestLoad_InvalidBool(t *testing.T) {
	RegisterTestingT(t)
	clearEnv(t)

	t.Setenv("ENFORCE_HTTPS", "maybe")

	_, err := Load()

	Expect(err).To(MatchError(ContainSubstring("ENFORCE_HTTPS")))
}

func TestLoad_TOMLFile(t *testing.T) {
	RegisterTestingT(t)
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "todos.toml")
	content := `
port = "4000"
data_file = "data/todos.json"
loki_url = "http://loki:3100"

[telemetry]
service_name = "todos-staging"

[rate_limits."POST /api/todos"]
requests = 5
window = "30s"
`
	Expect(os.WriteFile(path, []byte(content), 0644)).To(Succeed())

	t.Setenv("TODOS_CONFIG", path)
	t.Setenv("PORT", "4001")

	config, err := Load()

	Expect(err).To(BeNil())
	Expect(config.Port).To(Equal("4001"))
	Expect(config.DataFile).To(Equal("data/todos.json"))
	Expect(config.LokiURL).To(Equal("http://loki:3100"))
	Expect(config.Telemetry.ServiceName).To(Equal("todos-staging"))
	Expect(config.Telemetry.ServiceVersion).To(Equal("1.0.0"))
	Expect(config.RateLimitConfigs["POST /api/todos"]).To(Equal(RateLimitConfig{Requests: 5, Window: 30 * time.Second}))
	Expect(config.RateLimitConfigs).To(HaveKey("default"))
}

func TestLoad_MissingTOMLFile(t *testing.T) {
	RegisterTestingT(t)
	clearEnv(t)

	t.Setenv("TODOS_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	_, err := Load()

	Expect(err).To(HaveOccurred())
}
