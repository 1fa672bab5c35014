package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"instascan/pkg/config"
	"instascan/pkg/ui"
)

// configCmd groups the configuration subcommands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration files",
	Long: `Manage instascan configuration files.

Configuration is loaded from:
  - Command line flags (highest priority)
  - Environment variables (INSTASCAN_*)
  - Configuration file
  - Default values (lowest priority)`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an example configuration file",
	Long: `Create an example configuration file with all available options.

The file is created as '.instascan.yaml' in the current directory
unless a different path is given with the --config flag.`,
	Run: runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Show the configuration after merging all sources. Credentials are
masked.`,
	Run: runConfigShow,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

const exampleConfig = `# instascan configuration file
#
# Every option can also be set through environment variables prefixed
# with INSTASCAN_, for example INSTASCAN_SESSION_ID.

# Instagram session and transport settings
instagram:
  # Session cookie values, required for connection analysis.
  # Prefer 'instascan auth login' over keeping them in this file.
  session_id: ""
  csrf_token: ""

  # User agent sent with every request, empty for the default
  user_agent: ""

  # HTTP proxy URL, e.g. http://127.0.0.1:8080
  proxy: ""

  # Per-request timeout
  timeout: 30s

# Scan settings
scan:
  # Maximum number of posts to analyze
  max_posts: 50

# External presence probing
probe:
  enabled: false
  timeout: 10s
  concurrency: 5

# Output settings
output:
  # json, csv or text
  format: text
  directory: results

# Rate limiting for Instagram requests
rate_limit:
  requests_per_minute: 60
  max_retries: 3
  retry_delay: 5s

# Logging
logging:
  level: info
  file: ""
`

func runConfigInit(cmd *cobra.Command, args []string) {
	configPath := configFile
	if configPath == "" {
		configPath = ".instascan.yaml"
	}

	if _, err := os.Stat(configPath); err == nil {
		ui.PrintError("Configuration file already exists", configPath)
		os.Exit(1)
	}

	if err := os.WriteFile(configPath, []byte(exampleConfig), 0644); err != nil {
		ui.PrintError("Failed to create configuration file", err.Error())
		os.Exit(1)
	}

	ui.PrintSuccess("Configuration file created: " + configPath)
	fmt.Println("\nNext steps:")
	fmt.Println("1. Store credentials with 'instascan auth login' for connection analysis")
	fmt.Println("2. Start a scan with 'instascan scan <username>'")
}

func runConfigShow(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(configFile, nil)
	if err != nil {
		ui.PrintError("Failed to load configuration", err.Error())
		os.Exit(1)
	}

	displayCfg := *cfg
	displayCfg.Instagram.SessionID = maskSecret(displayCfg.Instagram.SessionID)
	displayCfg.Instagram.CSRFToken = maskSecret(displayCfg.Instagram.CSRFToken)

	data, err := yaml.Marshal(&displayCfg)
	if err != nil {
		ui.PrintError("Failed to format configuration", err.Error())
		os.Exit(1)
	}

	ui.PrintHighlight("Current Configuration")
	fmt.Println()
	fmt.Print(string(data))

	fmt.Println("\nConfiguration sources (in order of priority):")
	fmt.Println("1. Command line flags")
	fmt.Println("2. Environment variables (INSTASCAN_*)")
	if configFile != "" {
		fmt.Printf("3. Configuration file: %s\n", configFile)
	} else {
		fmt.Println("3. Configuration file: (not specified)")
	}
	fmt.Println("4. Default values")
}

func maskSecret(s string) string {
	if s == "" {
		return ""
	}
	if len(s) > 8 {
		return s[:4] + "..." + s[len(s)-4:]
	}
	return "***"
}
