package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Faclon-Labs/connector-go/pkg/ioclient"
	"github.com/Faclon-Labs/connector-go/pkg/ioconnect"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Common string constants used throughout the commands package.
const (
	NotAvailable = "N/A"

	// Output formats.
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"

	// JSON formatting.
	defaultJSONIndent = 2

	dateFormat     = "2006-01-02"
	dateTimeFormat = "2006-01-02 15:04:05"
)

// createClient builds an ioconnect.Client from the effective configuration.
func createClient() (ioconnect.Client, error) {
	backend := viper.GetString("backend")
	if backend == "" {
		return nil, ioconnect.ErrBackendHostRequired
	}

	token := viper.GetString("token")
	if token == "" {
		return nil, ioconnect.ErrNoTokenConfigured
	}

	config := &ioconnect.Config{
		BackendHost: backend,
		AccessToken: token,
		OnPrem:      viper.GetBool("on-prem"),
	}

	if viper.GetBool("verbose") {
		config.Debug = true
		config.Logger = &stderrLogger{}
	}

	return ioclient.New(config)
}

// stderrLogger writes structured log lines to stderr so they never mix with
// command output on stdout.
type stderrLogger struct{}

func (l *stderrLogger) log(level, msg string, fields map[string]interface{}) {
	fmt.Fprintf(os.Stderr, "[%s] %s", level, msg)

	for key, value := range fields {
		fmt.Fprintf(os.Stderr, " %s=%v", key, value)
	}

	fmt.Fprintln(os.Stderr)
}

func (l *stderrLogger) Debug(msg string, fields map[string]interface{}) { l.log("DEBUG", msg, fields) }
func (l *stderrLogger) Info(msg string, fields map[string]interface{})  { l.log("INFO", msg, fields) }
func (l *stderrLogger) Warn(msg string, fields map[string]interface{})  { l.log("WARN", msg, fields) }
func (l *stderrLogger) Error(msg string, fields map[string]interface{}) { l.log("ERROR", msg, fields) }

// StandardJSONRenderer writes v to stdout as indented JSON.
func StandardJSONRenderer(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(v)
	if err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}

	return nil
}

// StandardYAMLRenderer writes v to stdout as YAML.
func StandardYAMLRenderer(v interface{}) error {
	encoder := yaml.NewEncoder(os.Stdout)

	err := encoder.Encode(v)
	if err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}

	return nil
}
