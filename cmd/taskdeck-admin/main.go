// ABOUTME: Admin CLI for the taskdeck task list server
// ABOUTME: Talks to the HTTP API with JWT authentication from a token file

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
)

const banner = `
 _            _       _           _
| |_ __ _ ___| | ____| | ___  ___| | __
| __/ _' / __| |/ / _' |/ _ \/ __| |/ /
| || (_| \__ \   < (_| |  __/ (__|   <
 \__\__,_|___/_|\_\__,_|\___|\___|_|\_\  admin
`

const requestTimeout = 10 * time.Second

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := LoadConfig(getConfigPath())
	if err != nil {
		color.Red("Error: %v\n", err)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "signup":
		err = cmdSignup(cfg, args)
	case "login":
		err = cmdLogin(cfg, args)
	case "list":
		err = cmdList(cfg)
	case "add":
		err = cmdAdd(cfg, args)
	case "delete":
		err = cmdDelete(cfg, args)
	case "status":
		err = cmdStatus(cfg)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		color.Red("Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	cyan := color.New(color.FgCyan)
	yellow := color.New(color.FgYellow)

	cyan.Print(banner)
	fmt.Println()
	fmt.Println("Usage: taskdeck-admin <command> [args]")
	fmt.Println()
	yellow.Println("Commands:")
	fmt.Println("  signup --username USER --name NAME --password PASS  Create an account")
	fmt.Println("  login --username USER --password PASS               Log in and save the token")
	fmt.Println("  list                                                List your tasks")
	fmt.Println("  add --title TITLE [--description DESC]              Add a task")
	fmt.Println("  delete <id>                                         Delete a task by ID")
	fmt.Println("  status                                              Show server and login status")
	fmt.Println()
	yellow.Println("Environment:")
	fmt.Println("  TASKDECK_ADMIN_CONFIG  Config file path (default: ~/.config/taskdeck/admin.toml)")
	fmt.Println("  TASKDECK_TOKEN         JWT token (overrides the saved token file)")
	fmt.Println()
	yellow.Println("Examples:")
	fmt.Println("  taskdeck-admin signup --username ann --name 'Ann' --password secret")
	fmt.Println("  taskdeck-admin login --username ann --password secret")
	fmt.Println("  taskdeck-admin add --title 'buy milk' --description 'two liters'")
	fmt.Println()
}

// getToken returns the JWT token. TASKDECK_TOKEN wins over the token
// file written by login.
func getToken(cfg *Config) string {
	if token := os.Getenv("TASKDECK_TOKEN"); token != "" {
		return token
	}

	data, err := os.ReadFile(cfg.Auth.TokenFile)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// parseFlags parses "--name value" and "--name=value" style arguments
// into the provided destinations.
func parseFlags(args []string, dests map[string]*string) error {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "--") {
			return fmt.Errorf("unexpected argument: %s", arg)
		}

		name, value, hasValue := strings.Cut(strings.TrimPrefix(arg, "--"), "=")
		dest, ok := dests[name]
		if !ok {
			return fmt.Errorf("unknown flag: --%s", name)
		}

		if !hasValue {
			if i+1 >= len(args) {
				return fmt.Errorf("--%s requires a value", name)
			}
			value = args[i+1]
			i++
		}
		*dest = value
	}
	return nil
}

// doRequest sends a JSON request and decodes the response body. A
// non-nil token is attached as a bearer credential.
func doRequest(cfg *Config, method, path, token string, payload any) (int, []byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, cfg.Server.URL+path, body)
	if err != nil {
		return 0, nil, fmt.Errorf("creating request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("reading response: %w", err)
	}

	return resp.StatusCode, data, nil
}

// serverMessage pulls the "message" field out of an API response body.
func serverMessage(body []byte) string {
	var resp struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &resp); err != nil || resp.Message == "" {
		return strings.TrimSpace(string(body))
	}
	return resp.Message
}

func cmdSignup(cfg *Config, args []string) error {
	var username, name, password string
	err := parseFlags(args, map[string]*string{
		"username": &username,
		"name":     &name,
		"password": &password,
	})
	if err != nil {
		return err
	}
	if username == "" || name == "" || password == "" {
		return fmt.Errorf("--username, --name, and --password are required")
	}

	status, body, err := doRequest(cfg, http.MethodPost, "/signup", "", map[string]string{
		"username": username,
		"name":     name,
		"password": password,
	})
	if err != nil {
		return err
	}
	if status != http.StatusCreated {
		return fmt.Errorf("signup failed: %s", serverMessage(body))
	}

	green := color.New(color.FgGreen)
	green.Printf("  ✓ ")
	fmt.Printf("Account created: %s\n", username)
	fmt.Println("  Run taskdeck-admin login to get a token.")
	return nil
}

func cmdLogin(cfg *Config, args []string) error {
	var username, password string
	err := parseFlags(args, map[string]*string{
		"username": &username,
		"password": &password,
	})
	if err != nil {
		return err
	}
	if username == "" || password == "" {
		return fmt.Errorf("--username and --password are required")
	}

	status, body, err := doRequest(cfg, http.MethodPost, "/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("login failed: %s", serverMessage(body))
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &resp); err != nil || resp.Token == "" {
		return fmt.Errorf("no token in login response")
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Auth.TokenFile), 0755); err != nil {
		return fmt.Errorf("creating token directory: %w", err)
	}
	if err := os.WriteFile(cfg.Auth.TokenFile, []byte(resp.Token), 0600); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}

	green := color.New(color.FgGreen)
	green.Printf("  ✓ ")
	fmt.Printf("Logged in as %s\n", username)
	green.Printf("  ✓ ")
	fmt.Printf("Saved token: %s\n", cfg.Auth.TokenFile)
	return nil
}

func cmdList(cfg *Config) error {
	token := getToken(cfg)
	if token == "" {
		return fmt.Errorf("not logged in: run taskdeck-admin login first")
	}

	status, body, err := doRequest(cfg, http.MethodGet, "/todos", token, nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("listing tasks failed: %s", serverMessage(body))
	}

	var resp struct {
		Todos []struct {
			ID          string `json:"id"`
			Title       string `json:"title"`
			Description string `json:"description"`
			Status      bool   `json:"status"`
		} `json:"todos"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	if len(resp.Todos) == 0 {
		fmt.Println("No tasks.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tDESCRIPTION\tDONE")
	for _, t := range resp.Todos {
		done := ""
		if t.Status {
			done = "✓"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.ID, t.Title, t.Description, done)
	}
	return w.Flush()
}

func cmdAdd(cfg *Config, args []string) error {
	token := getToken(cfg)
	if token == "" {
		return fmt.Errorf("not logged in: run taskdeck-admin login first")
	}

	var title, description string
	err := parseFlags(args, map[string]*string{
		"title":       &title,
		"description": &description,
	})
	if err != nil {
		return err
	}
	if title == "" {
		return fmt.Errorf("--title is required")
	}

	status, body, err := doRequest(cfg, http.MethodPost, "/add", token, map[string]string{
		"title":       title,
		"description": description,
	})
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("adding task failed: %s", serverMessage(body))
	}

	green := color.New(color.FgGreen)
	green.Printf("  ✓ ")
	fmt.Printf("Added: %s\n", title)
	return nil
}

func cmdDelete(cfg *Config, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: taskdeck-admin delete <id>")
	}

	token := getToken(cfg)
	if token == "" {
		return fmt.Errorf("not logged in: run taskdeck-admin login first")
	}

	status, body, err := doRequest(cfg, http.MethodDelete, "/delete/"+args[0], token, nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("deleting task failed: %s", serverMessage(body))
	}

	green := color.New(color.FgGreen)
	green.Printf("  ✓ ")
	fmt.Printf("Deleted: %s\n", args[0])
	return nil
}

func cmdStatus(cfg *Config) error {
	cyan := color.New(color.FgCyan)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	cyan.Print(banner)
	fmt.Println()

	status, _, err := doRequest(cfg, http.MethodGet, "/health", "", nil)
	if err != nil {
		yellow.Printf("  Server: ")
		color.Red("UNREACHABLE (%v)\n", err)
		return nil
	}
	if status != http.StatusOK {
		yellow.Printf("  Server: ")
		color.Red("unhealthy (status %d)\n", status)
		return nil
	}

	green.Printf("  Server: ")
	fmt.Printf("healthy at %s\n", cfg.Server.URL)

	token := getToken(cfg)
	if token == "" {
		yellow.Printf("  Login:  ")
		fmt.Println("(no token - run taskdeck-admin login)")
		fmt.Println()
		return nil
	}

	code, body, err := doRequest(cfg, http.MethodGet, "/todos", token, nil)
	if err != nil {
		return err
	}
	if code != http.StatusOK {
		yellow.Printf("  Login:  ")
		color.Red("token rejected (%s)\n", serverMessage(body))
	} else {
		green.Printf("  Login:  ")
		fmt.Println("token accepted")
	}

	fmt.Println()
	return nil
}
