// Package notifier delivers reminders to the desktop tray companion over its
// local webhook. The tray publishes "port|pid|secret" in a lockfile.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/mgurlek/hybit/internal/constants"
)

// ErrTrayNotRunning means no live tray process answered the lockfile.
var ErrTrayNotRunning = errors.New(constants.TrayExecutablePrefix + " is not running")

// SecretHeader carries the lockfile secret on every webhook request.
const SecretHeader = "X-Hybit-Secret"

type Notifier struct {
	UserConfigDir func() (string, error)
	FindProcess   func(pid int) (ps.Process, error)
	Client        *http.Client
}

type WebhookPayload struct {
	Title      string `json:"title"`
	Text       string `json:"text"`
	DurationMs uint32 `json:"duration_ms"`
}

// Endpoint is a validated tray webhook.
type Endpoint struct {
	Port   int
	Secret string
}

func New() *Notifier {
	return &Notifier{
		UserConfigDir: os.UserConfigDir,
		FindProcess:   ps.FindProcess,
		Client:        &http.Client{Timeout: 5 * time.Second},
	}
}

// Notify posts a notification to the running tray app.
func (n *Notifier) Notify(ctx context.Context, title, body string) error {
	endpoint, err := n.Discover()
	if err != nil {
		return err
	}
	return n.send(ctx, endpoint, WebhookPayload{
		Title:      title,
		Text:       body,
		DurationMs: constants.NotificationDurationMs,
	})
}

// Discover locates and validates the tray webhook.
func (n *Notifier) Discover() (Endpoint, error) {
	dir, err := n.TrayConfigDir()
	if err != nil {
		return Endpoint{}, err
	}
	return n.readLockfile(filepath.Join(dir, constants.NotifierLockfileName))
}

// TrayConfigDir returns the directory holding the tray lockfile. The tray's
// settings.json may point it elsewhere via settings.lockfile_dir.
func (n *Notifier) TrayConfigDir() (string, error) {
	configDir, err := n.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}

	trayConfigDir := filepath.Join(configDir, constants.TrayAppIdentifier)

	data, err := os.ReadFile(filepath.Join(trayConfigDir, "settings.json"))
	if err != nil {
		return trayConfigDir, nil
	}
	var store struct {
		Settings struct {
			LockfileDir *string `json:"lockfile_dir"`
		} `json:"settings"`
	}
	if err := json.Unmarshal(data, &store); err == nil {
		if dir := store.Settings.LockfileDir; dir != nil && *dir != "" {
			return *dir, nil
		}
	}
	return trayConfigDir, nil
}

func (n *Notifier) readLockfile(path string) (Endpoint, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Endpoint{}, ErrTrayNotRunning
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 3 {
		return Endpoint{}, errors.New("lockfile is malformed")
	}

	port, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Endpoint{}, errors.New("invalid port number in lockfile")
	}
	if port < 1 || port > 65535 {
		return Endpoint{}, fmt.Errorf("port number %d is outside valid range (1-65535)", port)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Endpoint{}, errors.New("invalid process ID in lockfile")
	}

	secret := strings.TrimSpace(parts[2])
	if secret == "" {
		return Endpoint{}, errors.New("secret in lockfile is empty")
	}

	process, err := n.FindProcess(pid)
	if err != nil || process == nil {
		return Endpoint{}, ErrTrayNotRunning
	}
	if !strings.HasPrefix(process.Executable(), constants.TrayExecutablePrefix) {
		return Endpoint{}, fmt.Errorf("process with PID %d is not %s (is %s)", pid, constants.TrayExecutablePrefix, process.Executable())
	}

	return Endpoint{Port: port, Secret: secret}, nil
}

func (n *Notifier) send(ctx context.Context, endpoint Endpoint, payload WebhookPayload) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("http://127.0.0.1:%d", endpoint.Port)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(SecretHeader, endpoint.Secret)

	client := n.Client
	if client == nil {
		client = http.DefaultClient
	}
	res, err := client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
	return fmt.Errorf("notification failed with status %d: %s", res.StatusCode, strings.TrimSpace(string(body)))
}
