package e2e_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/playerbase/playerbase/internal/api"
	"github.com/playerbase/playerbase/internal/factory"
	"github.com/playerbase/playerbase/internal/services/token"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
	tokenFile  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(projectRoot, "bin", "playerctl-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/playerctl")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	// Create temp token file
	tokenFile := filepath.Join(t.TempDir(), "token")

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
		tokenFile:  tokenFile,
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token-file", r.tokenFile,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func (r *cliRunner) runWithToken(token string, args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token", token,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	// Create application
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	app, err := factory.New(factory.Config{
		Logger:         logger,
		TokenConfig:    token.Config{Secret: "e2e-secret"},
		CredentialCost: bcrypt.MinCost,
	})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:          logger,
		IdentityService: app.IdentityService,
		ProgressService: app.ProgressService,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	// Wait for server to be ready
	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/api/v1/health")

	return &testServer{
		addr: serverURL,
		shutdown: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing
type userResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Version  int    `json:"version"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type progressResponse struct {
	PassedLevel int `json:"passedLevel"`
	Items       []struct {
		Name   string `json:"name"`
		Amount int    `json:"amount"`
	} `json:"items"`
}

type progressUpdateResponse struct {
	UserID   string           `json:"user_id"`
	Version  int              `json:"version"`
	Progress progressResponse `json:"progress"`
}

type healthResponse struct {
	Status string `json:"status"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)

	var resp healthResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestCLI_UserCommands(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Register
	output, err := cli.run("user", "register", "--user", "alice", "--email", "alice@example.com", "--pass", "secret123")
	require.NoError(t, err, "output: %s", output)

	var user userResponse
	require.NoError(t, json.Unmarshal([]byte(output), &user))
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, 1, user.Version)

	// Login (token is saved in the token file)
	output, err = cli.run("user", "login", "--user", "alice", "--pass", "secret123")
	require.NoError(t, err, "output: %s", output)

	var tok tokenResponse
	require.NoError(t, json.Unmarshal([]byte(output), &tok))
	assert.NotEmpty(t, tok.AccessToken)
	assert.Equal(t, "bearer", tok.TokenType)

	// Me uses the saved token
	output, err = cli.run("user", "me")
	require.NoError(t, err, "output: %s", output)

	var me userResponse
	require.NoError(t, json.Unmarshal([]byte(output), &me))
	assert.Equal(t, user.UserID, me.UserID)
}

func TestCLI_ProgressCommands(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("user", "register", "--user", "bob", "--email", "bob@example.com", "--pass", "pw")
	require.NoError(t, err, "output: %s", output)

	output, err = cli.run("user", "login", "--user", "bob", "--pass", "pw")
	require.NoError(t, err, "output: %s", output)

	// Initial progress
	output, err = cli.run("progress", "get")
	require.NoError(t, err, "output: %s", output)

	var prog progressResponse
	require.NoError(t, json.Unmarshal([]byte(output), &prog))
	assert.Equal(t, 0, prog.PassedLevel)
	assert.Len(t, prog.Items, 2)

	// Apply an update
	output, err = cli.run("progress", "update", "--level", "3", "--item", "shield=2", "--item", "booster=-1")
	require.NoError(t, err, "output: %s", output)

	var update progressUpdateResponse
	require.NoError(t, json.Unmarshal([]byte(output), &update))
	assert.Equal(t, 2, update.Version)
	assert.Equal(t, 3, update.Progress.PassedLevel)

	// Verify the merge stuck
	output, err = cli.run("progress", "get")
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &prog))
	assert.Equal(t, 3, prog.PassedLevel)
	require.Len(t, prog.Items, 1)
	assert.Equal(t, "shield", prog.Items[0].Name)
	assert.Equal(t, 3, prog.Items[0].Amount)
}

func TestCLI_DeleteAccount(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	_, err := cli.run("user", "register", "--user", "carol", "--email", "carol@example.com", "--pass", "pw")
	require.NoError(t, err)

	_, err = cli.run("user", "login", "--user", "carol", "--pass", "pw")
	require.NoError(t, err)

	output, err := cli.run("user", "delete")
	require.NoError(t, err, "output: %s", output)

	var msg messageResponse
	require.NoError(t, json.Unmarshal([]byte(output), &msg))
	assert.Equal(t, "Account deleted", msg.Message)

	// The saved token is gone and the account no longer authenticates
	output, err = cli.run("user", "me")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "auth")
}

func TestCLI_ErrorHandling(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Me without auth
	output, err := cli.run("user", "me")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "auth")

	// Wrong password
	_, err = cli.run("user", "register", "--user", "dave", "--email", "dave@example.com", "--pass", "pw")
	require.NoError(t, err)

	output, err = cli.run("user", "login", "--user", "dave", "--pass", "wrong")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "invalid")

	// Bad item spec is rejected client-side
	output, err = cli.runWithToken("sometoken", "progress", "update", "--item", "shield")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "name=amount")
}
