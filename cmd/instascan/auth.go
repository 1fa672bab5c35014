package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"instascan/pkg/auth"
	"instascan/pkg/ui"
)

// authCmd groups the credential subcommands
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage Instagram credentials",
	Long: `Manage stored Instagram credentials securely.

Credentials are stored using:
  - System keychain (when available)
  - Encrypted file with PBKDF2 key derivation
  - Environment variables (read-only fallback)

Never share your credentials or config files!`,
}

var loginCmd = &cobra.Command{
	Use:   "login [username]",
	Short: "Store Instagram credentials securely",
	Long: `Store Instagram credentials in the system keychain or an encrypted file.

To get the cookie values:
  1. Log into Instagram in your browser
  2. Open Developer Tools (F12)
  3. Go to Application/Storage > Cookies
  4. Copy the sessionid and csrftoken values`,
	Example: `  # Interactive login
  instascan auth login

  # Login with username
  instascan auth login myusername`,
	Args: cobra.MaximumNArgs(1),
	Run:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout <username>",
	Short: "Remove stored credentials",
	Args:  cobra.ExactArgs(1),
	Run:   runLogout,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored accounts",
	Long:  `List all stored Instagram accounts with credentials masked.`,
	Run:   runList,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which credentials a scan would use",
	Run:   runStatus,
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(listCmd)
	authCmd.AddCommand(statusCmd)
}

func runLogin(cmd *cobra.Command, args []string) {
	manager, err := auth.NewManager()
	if err != nil {
		ui.PrintError("Failed to initialize credential manager", err.Error())
		os.Exit(1)
	}

	reader := bufio.NewReader(os.Stdin)

	var username string
	if len(args) > 0 {
		username = args[0]
	}
	if username == "" {
		fmt.Print("Instagram username: ")
		input, err := reader.ReadString('\n')
		if err != nil {
			ui.PrintError("Failed to read username", err.Error())
			os.Exit(1)
		}
		username = strings.TrimSpace(input)
	}
	if username == "" {
		ui.PrintError("Username is required")
		os.Exit(1)
	}

	if existing, _ := manager.Retrieve(username); existing != nil {
		fmt.Printf("Account %q already exists. Update credentials? (y/N): ", username)
		input, _ := reader.ReadString('\n')
		if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(input)), "y") {
			return
		}
	}

	fmt.Println("\nEnter your cookie values (hidden as you type):")

	fmt.Print("sessionid cookie value: ")
	sessionID, err := readPassword()
	if err != nil {
		ui.PrintError("Failed to read session ID", err.Error())
		os.Exit(1)
	}

	fmt.Print("\ncsrftoken cookie value: ")
	csrfToken, err := readPassword()
	if err != nil {
		ui.PrintError("Failed to read CSRF token", err.Error())
		os.Exit(1)
	}
	fmt.Println()

	fmt.Print("User agent (optional, Enter for default): ")
	userAgent, _ := reader.ReadString('\n')
	userAgent = strings.TrimSpace(userAgent)

	account := &auth.Account{
		Username:  username,
		SessionID: sessionID,
		CSRFToken: csrfToken,
		UserAgent: userAgent,
	}
	if err := manager.Store(account); err != nil {
		ui.PrintError("Failed to store credentials", err.Error())
		os.Exit(1)
	}

	ui.PrintSuccess(fmt.Sprintf("Credentials stored for %s", username))
}

func runLogout(cmd *cobra.Command, args []string) {
	manager, err := auth.NewManager()
	if err != nil {
		ui.PrintError("Failed to initialize credential manager", err.Error())
		os.Exit(1)
	}

	username := args[0]
	if err := manager.Delete(username); err != nil {
		ui.PrintError("Failed to remove credentials", err.Error())
		os.Exit(1)
	}
	ui.PrintSuccess(fmt.Sprintf("Credentials removed for %s", username))
}

func runList(cmd *cobra.Command, args []string) {
	manager, err := auth.NewManager()
	if err != nil {
		ui.PrintError("Failed to initialize credential manager", err.Error())
		os.Exit(1)
	}

	accounts, err := manager.List()
	if err != nil {
		ui.PrintError("Failed to list accounts", err.Error())
		os.Exit(1)
	}
	if len(accounts) == 0 {
		fmt.Println("No stored accounts. Run 'instascan auth login' to add one.")
		return
	}

	fmt.Println("Stored accounts:")
	for _, account := range accounts {
		sanitized := auth.Sanitize(account)
		fmt.Printf("  %s (session: %s, updated: %s)\n",
			sanitized.Username,
			sanitized.SessionID,
			sanitized.LastModified.Format("2006-01-02 15:04"),
		)
	}
}

func runStatus(cmd *cobra.Command, args []string) {
	if os.Getenv("INSTASCAN_SESSION_ID") != "" && os.Getenv("INSTASCAN_CSRF_TOKEN") != "" {
		ui.PrintSuccess("Authenticated via environment variables")
		return
	}

	manager, err := auth.NewManager()
	if err != nil {
		ui.PrintError("Failed to initialize credential manager", err.Error())
		os.Exit(1)
	}

	account, err := manager.RetrieveDefault()
	if err != nil {
		ui.PrintWarning("No credentials stored", "scans will run unauthenticated")
		fmt.Println("Run 'instascan auth login' to store a session.")
		return
	}

	sanitized := auth.Sanitize(account)
	ui.PrintSuccess(fmt.Sprintf("Authenticated as %s", sanitized.Username))
	ui.PrintInfo("Session", sanitized.SessionID)
	ui.PrintInfo("Last updated", sanitized.LastModified.Format("2006-01-02 15:04"))
}

// readPassword reads a line without echoing it
func readPassword() (string, error) {
	data, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
