package cmd

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"text/template"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/joescharf/revscore/internal/analysis"
	"github.com/joescharf/revscore/internal/models"
	"github.com/joescharf/revscore/internal/report"
)

var configForce bool

// configDirFunc returns the config directory path, replaceable in tests.
var configDirFunc = defaultConfigDir

func defaultConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "revscore"), nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or manage configuration",
	Long: `Show or manage revscore configuration.

Running bare 'revscore config' is the same as 'revscore config show'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return configShowRun()
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create config file with commented defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		return configInitRun()
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration with sources",
	RunE: func(cmd *cobra.Command, args []string) error {
		return configShowRun()
	},
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open config file in $EDITOR",
	RunE: func(cmd *cobra.Command, args []string) error {
		return configEditRun()
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite existing config file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configEditCmd)
	rootCmd.AddCommand(configCmd)
}

// configTemplate is the template for generating config.yaml with comments.
const configTemplate = `# revscore configuration
# See: revscore config show (for effective values and sources)

# Directory holding self-reviews/, coderabbit/ and security/ (default: results)
base_dir: "{{ .BaseDir }}"

# Report output path, overwritten on every run
report_path: "{{ .ReportPath }}"

# Candidate whose self-review is a single fixed file in self-reviews/
unified:
  candidate: "{{ .UnifiedCandidate }}"
  file: "{{ .UnifiedFile }}"

# Candidate name -> commit hash used to locate review files
candidates:
{{- range .Candidates }}
  {{ .Name }}: "{{ .Hash }}"
{{- end }}

# Composite score weights
weights:
  self: {{ .Weights.Self }}
  independent: {{ .Weights.Independent }}
  security: {{ .Weights.Security }}

# Narrative thresholds (0-100)
thresholds:
  self: {{ .Thresholds.Self }}
  independent: {{ .Thresholds.Independent }}
  security: {{ .Thresholds.Security }}
  needs_work: {{ .Thresholds.NeedsWork }}

# Logging
log:
  # debug, info, warn, error (default: info)
  level: "{{ .LogLevel }}"
  # Optional JSON log file, rotated automatically
  # file: /tmp/revscore.log
`

type configTemplateData struct {
	BaseDir          string
	ReportPath       string
	UnifiedCandidate string
	UnifiedFile      string
	Candidates       []models.Candidate
	Weights          analysis.Weights
	Thresholds       report.Thresholds
	LogLevel         string
}

func configFilePath() (string, error) {
	dir, err := configDirFunc()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func configInitRun() error {
	cfgPath, err := configFilePath()
	if err != nil {
		return err
	}

	// Check if file already exists
	if _, err := os.Stat(cfgPath); err == nil {
		if !configForce {
			return fmt.Errorf("config file already exists: %s (use --force to overwrite)", cfgPath)
		}
		ui.Warning("Overwriting existing config file")
	}

	// Build template data from current viper values
	st := loadSettings()
	data := configTemplateData{
		BaseDir:          st.Layout.BaseDir,
		ReportPath:       st.ReportPath,
		UnifiedCandidate: st.Layout.UnifiedCandidate,
		UnifiedFile:      st.Layout.UnifiedFile,
		Candidates:       st.Candidates,
		Weights:          st.Weights,
		Thresholds:       st.Report.Thresholds,
		LogLevel:         viper.GetString("log.level"),
	}

	tmpl, err := template.New("config").Parse(configTemplate)
	if err != nil {
		return fmt.Errorf("template parse error: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("template execute error: %w", err)
	}

	if dryRun {
		ui.DryRunMsg("Would create config file: %s", cfgPath)
		fmt.Fprintln(ui.Out)
		fmt.Fprint(ui.Out, buf.String())
		return nil
	}

	// Create config directory
	dir := filepath.Dir(cfgPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(cfgPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	ui.Success("Config file created: %s", cfgPath)
	fmt.Fprintln(ui.Out)
	fmt.Fprint(ui.Out, buf.String())
	return nil
}

// configKeyInfo describes a config key for display purposes.
type configKeyInfo struct {
	Key    string
	EnvVar string
}

var configKeys = []configKeyInfo{
	{Key: "base_dir", EnvVar: "REVSCORE_BASE_DIR"},
	{Key: "report_path", EnvVar: "REVSCORE_REPORT_PATH"},
	{Key: "unified.candidate", EnvVar: "REVSCORE_UNIFIED_CANDIDATE"},
	{Key: "unified.file", EnvVar: "REVSCORE_UNIFIED_FILE"},
	{Key: "weights.self", EnvVar: "REVSCORE_WEIGHTS_SELF"},
	{Key: "weights.independent", EnvVar: "REVSCORE_WEIGHTS_INDEPENDENT"},
	{Key: "weights.security", EnvVar: "REVSCORE_WEIGHTS_SECURITY"},
	{Key: "thresholds.self", EnvVar: "REVSCORE_THRESHOLDS_SELF"},
	{Key: "thresholds.independent", EnvVar: "REVSCORE_THRESHOLDS_INDEPENDENT"},
	{Key: "thresholds.security", EnvVar: "REVSCORE_THRESHOLDS_SECURITY"},
	{Key: "thresholds.needs_work", EnvVar: "REVSCORE_THRESHOLDS_NEEDS_WORK"},
	{Key: "log.level", EnvVar: "REVSCORE_LOG_LEVEL"},
	{Key: "log.file", EnvVar: "REVSCORE_LOG_FILE"},
}

func configShowRun() error {
	cfgPath, err := configFilePath()
	if err != nil {
		return err
	}

	// Check if config file exists
	if _, err := os.Stat(cfgPath); err == nil {
		ui.Info("Config file: %s", cfgPath)
	} else {
		ui.Info("Config file: (none)")
	}
	fmt.Fprintln(ui.Out)

	// Read config file values to determine file source
	fileValues := readConfigFileValues(cfgPath)

	for _, k := range configKeys {
		val := viper.Get(k.Key)
		source := detectSource(k.Key, k.EnvVar, fileValues)
		fmt.Fprintf(ui.Out, "  %-24s %v  %s\n", k.Key, val, source)
	}

	fmt.Fprintln(ui.Out)
	fmt.Fprintf(ui.Out, "  %-24s %s\n", "candidates", detectSource("candidates", "REVSCORE_CANDIDATES", fileValues))
	for _, c := range candidatesFromMap(viper.GetStringMapString("candidates")) {
		fmt.Fprintf(ui.Out, "    %-22s %s\n", c.Name, c.Hash)
	}

	return nil
}

// readConfigFileValues reads the raw YAML file and returns a flat map of keys present in it.
func readConfigFileValues(path string) map[string]bool {
	result := make(map[string]bool)

	data, err := os.ReadFile(path)
	if err != nil {
		return result
	}

	var parsed map[string]any
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return result
	}

	// Flatten nested keys with dot notation
	flattenKeys("", parsed, result)
	return result
}

// flattenKeys recursively flattens a nested map to dot-notation keys,
// recording parent keys as well as leaves.
func flattenKeys(prefix string, m map[string]any, result map[string]bool) {
	for key, val := range m {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}
		result[fullKey] = true
		if nested, ok := val.(map[string]any); ok {
			flattenKeys(fullKey, nested, result)
		}
	}
}

// detectSource determines where a config value is coming from.
func detectSource(key, envVar string, fileValues map[string]bool) string {
	if _, ok := os.LookupEnv(envVar); ok {
		return fmt.Sprintf("(env: %s)", envVar)
	}
	if fileValues[key] {
		return "(file)"
	}
	return "(default)"
}

func configEditRun() error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		return fmt.Errorf("$EDITOR is not set; set it to your preferred editor (e.g. export EDITOR=vim)")
	}

	cfgPath, err := configFilePath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		return fmt.Errorf("config file not found: %s (run 'revscore config init' first)", cfgPath)
	}

	if dryRun {
		ui.DryRunMsg("Would open %s in %s", cfgPath, editor)
		return nil
	}

	editCmd := exec.Command(editor, cfgPath)
	editCmd.Stdin = os.Stdin
	editCmd.Stdout = os.Stdout
	editCmd.Stderr = os.Stderr
	return editCmd.Run()
}
