package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case User:
		o.printUser(v)
	case TokenResult:
		o.printTokenResult(v)
	case Progress:
		o.printProgress(v)
	case ProgressUpdateResult:
		o.printProgressUpdateResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// User response type (matches API)
type User struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
	Version   int    `json:"version"`
}

// TokenResult response type
type TokenResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Item response type
type Item struct {
	Name   string `json:"name"`
	Amount int    `json:"amount"`
}

// Progress response type
type Progress struct {
	PassedLevel int    `json:"passedLevel"`
	Items       []Item `json:"items"`
}

// ProgressUpdateResult response type
type ProgressUpdateResult struct {
	UserID   string   `json:"user_id"`
	Version  int      `json:"version"`
	Progress Progress `json:"progress"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printUser(u User) {
	fmt.Printf("User: %s (%s)\n", u.Username, u.UserID)
	fmt.Printf("Email: %s\n", u.Email)
	fmt.Printf("Created: %s\n", u.CreatedAt)
	fmt.Printf("Version: %d\n", u.Version)
}

func (o *Output) printTokenResult(t TokenResult) {
	fmt.Printf("Token: %s\n", t.AccessToken)
}

func (o *Output) printProgress(p Progress) {
	fmt.Printf("Passed Level: %d\n", p.PassedLevel)
	fmt.Printf("Items (%d):\n", len(p.Items))
	for _, item := range p.Items {
		fmt.Printf("  - %s: %d\n", item.Name, item.Amount)
	}
}

func (o *Output) printProgressUpdateResult(r ProgressUpdateResult) {
	fmt.Printf("User: %s\n", r.UserID)
	fmt.Printf("Version: %d\n", r.Version)
	o.printProgress(r.Progress)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
