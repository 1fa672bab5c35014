package main

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"instascan/internal/prober"
	"instascan/pkg/auth"
	"instascan/pkg/config"
	"instascan/pkg/errors"
	"instascan/pkg/export"
	"instascan/pkg/instagram"
	"instascan/pkg/logger"
	"instascan/pkg/scanner"
	"instascan/pkg/ui"
)

var (
	// Scan command flags
	outputFormat   string
	outputDir      string
	maxPosts       int
	probeTimeout   time.Duration
	externalSearch bool
	proxyURL       string
	accountName    string
	sessionID      string
	csrfToken      string
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan <username>",
	Short: "Scan an Instagram profile",
	Long: `Scan an Instagram profile and aggregate its public footprint.

Without credentials the scan covers the profile and its recent posts.
With a stored session (see 'instascan auth login') it additionally
collects followers and followees and reports who does not follow back.

The --external-search flag probes other platforms for the same handle.`,
	Example: `  # Basic scan with the console report
  instascan scan johndoe

  # Full scan with external presence probing, exported as JSON
  instascan scan johndoe --external-search --format json

  # Use a specific stored account and a custom post window
  instascan scan johndoe --account myaccount --max-posts 100`,
	Args: cobra.ExactArgs(1),
	Run:  runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format (json, csv, text)")
	scanCmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "directory for exported artifacts")
	scanCmd.Flags().IntVarP(&maxPosts, "max-posts", "m", 0, "maximum number of posts to analyze")
	scanCmd.Flags().DurationVarP(&probeTimeout, "timeout", "t", 0, "per-request timeout for platform probes")
	scanCmd.Flags().BoolVarP(&externalSearch, "external-search", "e", false, "probe other platforms for the handle")
	scanCmd.Flags().StringVar(&proxyURL, "proxy", "", "HTTP proxy URL for all requests")
	scanCmd.Flags().StringVarP(&accountName, "account", "a", "", "use a specific stored account")
	scanCmd.Flags().StringVar(&sessionID, "session-id", "", "Instagram session ID")
	scanCmd.Flags().StringVar(&csrfToken, "csrf-token", "", "Instagram CSRF token")
}

func runScan(cmd *cobra.Command, args []string) {
	username := strings.TrimSpace(args[0])
	if !quiet {
		ui.PrintInfo("Target Profile", username)
	}

	flags := make(map[string]interface{})
	if sessionID != "" {
		flags["session-id"] = sessionID
	}
	if csrfToken != "" {
		flags["csrf-token"] = csrfToken
	}
	if proxyURL != "" {
		flags["proxy"] = proxyURL
	}
	if outputFormat != "" {
		flags["format"] = outputFormat
	}
	if outputDir != "" {
		flags["output-dir"] = outputDir
	}
	if maxPosts > 0 {
		flags["max-posts"] = maxPosts
	}
	if probeTimeout > 0 {
		flags["timeout"] = probeTimeout
	}
	if externalSearch {
		flags["external-search"] = true
	}
	if verbose {
		flags["verbose"] = true
	}
	if logLevel != "info" {
		flags["log-level"] = logLevel
	}

	cfg, err := config.Load(configFile, flags)
	if err != nil {
		ui.PrintError("Failed to load configuration", err.Error())
		os.Exit(1)
	}

	logger.Initialize(&cfg.Logging)
	log := logger.GetLogger()
	log.WithField("version", version).Info("instascan starting")

	applyStoredCredentials(cfg, log)

	client, err := instagram.NewClient(cfg, log)
	if err != nil {
		ui.PrintError("Failed to initialize client", err.Error())
		os.Exit(1)
	}
	provider := instagram.NewProvider(client, log)

	var probe scanner.Prober
	if cfg.Probe.Enabled {
		p, err := prober.New(cfg.Probe.Timeout, cfg.Instagram.Proxy, cfg.Probe.Concurrency, log)
		if err != nil {
			ui.PrintError("Failed to initialize platform prober", err.Error())
			os.Exit(1)
		}
		probe = p
	}

	s := scanner.New(cfg, provider, probe, export.New(log), log)

	var progress *ui.ScanProgress
	if cfg.Scan.Verbose && !quiet {
		progress = ui.NewScanProgress()
		s.SetProgress(progress.Update)
	}

	result, err := s.Run(username)
	if progress != nil {
		progress.Finish()
	}
	if err != nil {
		log.WithError(err).WithField("username", username).Error("scan failed")
		if errors.IsFatal(errors.TypeOf(err)) {
			ui.PrintError("Profile not found", username)
		} else {
			ui.PrintError("Scan failed", err.Error())
		}
		os.Exit(1)
	}

	if !quiet {
		if result.Connections != nil && result.Connections.SkipReason != "" {
			ui.PrintWarning("Connection analysis skipped", result.Connections.SkipReason)
		}
		ui.PrintSuccess("Scan completed")
	}
}

// applyStoredCredentials fills session credentials from the credential
// manager when the configuration carries none. Scans run without
// credentials too, just with the connection stage skipped.
func applyStoredCredentials(cfg *config.Config, log logger.Logger) {
	if cfg.Instagram.SessionID != "" && cfg.Instagram.CSRFToken != "" {
		return
	}

	manager, err := auth.NewManager()
	if err != nil {
		log.WithError(err).Debug("credential manager unavailable")
		return
	}

	var account *auth.Account
	if accountName != "" {
		account, err = manager.Retrieve(accountName)
		if err != nil {
			ui.PrintError("Account not found", accountName)
			ui.PrintInfo("Available accounts", "Use 'instascan auth list' to see stored accounts")
			os.Exit(1)
		}
	} else {
		account, err = manager.RetrieveDefault()
		if err != nil {
			log.Debug("no stored credentials, running unauthenticated")
			return
		}
	}

	cfg.Instagram.SessionID = account.SessionID
	cfg.Instagram.CSRFToken = account.CSRFToken
	if account.UserAgent != "" {
		cfg.Instagram.UserAgent = account.UserAgent
	}
	log.WithField("account", account.Username).Info("using stored credentials")
	if !quiet {
		ui.PrintInfo("Using account", account.Username)
	}
}
