// Package notifier sends desktop notifications through the momentum tray
// app, which listens on a localhost port advertised in a lockfile.
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

	"github.com/julianstephens/momentum/internal/constants"
)

var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess
)

// ErrTrayNotRunning is returned when no tray app is available to show the
// notification. Callers generally treat it as a silent no-op.
var ErrTrayNotRunning = errors.New(constants.TrayExecutablePrefix + " is not running")

type Notifier struct {
	client *http.Client
}

type WebhookPayload struct {
	Text       string `json:"text"`
	DurationMs uint32 `json:"duration_ms"`
}

// lockInfo is the content of the tray lockfile: port|pid|secret.
type lockInfo struct {
	Port   int
	PID    int
	Secret string
}

func New() *Notifier {
	return &Notifier{client: &http.Client{Timeout: 5 * time.Second}}
}

// Notify shows text through the tray app.
func (n *Notifier) Notify(ctx context.Context, text string) error {
	dir, err := GetTrayAppConfigDir()
	if err != nil {
		return err
	}

	lock, err := findAndValidateTrayProcess(filepath.Join(dir, constants.NotifierLockfileName))
	if err != nil {
		return err
	}

	return n.send(ctx, lock, WebhookPayload{
		Text:       text,
		DurationMs: constants.NotificationDurationMs,
	})
}

// CelebrationMessage is the text shown when progress is logged for a goal.
func CelebrationMessage(title string, streak int) string {
	switch {
	case streak >= 30:
		return fmt.Sprintf("🏆 %s: %d days in a row. Unstoppable!", title, streak)
	case streak >= 7:
		return fmt.Sprintf("🔥 %s: %d-day streak! Keep the momentum going.", title, streak)
	case streak > 1:
		return fmt.Sprintf("✨ %s: %d days in a row.", title, streak)
	default:
		return fmt.Sprintf("🎉 Progress logged for %s!", title)
	}
}

// ReminderMessage nudges the user to keep a streak alive before the day ends.
func ReminderMessage(title string, streak int) string {
	if streak == 1 {
		return fmt.Sprintf("⏰ %s: log today to keep your streak going.", title)
	}
	return fmt.Sprintf("⏰ %s: log today to keep your %d-day streak.", title, streak)
}

// GetTrayAppConfigDir returns the configuration directory used by the tray application.
func GetTrayAppConfigDir() (string, error) {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}

	trayConfigDir := filepath.Join(configDir, constants.TrayAppIdentifier)

	// The tray can relocate its lockfile via settings.json.
	data, err := os.ReadFile(filepath.Join(trayConfigDir, "settings.json"))
	if err == nil {
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
	}

	return trayConfigDir, nil
}

func parseLockfile(content string) (lockInfo, error) {
	parts := strings.Split(strings.TrimSpace(content), "|")
	if len(parts) != 3 {
		return lockInfo{}, errors.New("lockfile is malformed")
	}

	port, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return lockInfo{}, errors.New("invalid port number in lockfile")
	}
	if port < 1 || port > 65535 {
		return lockInfo{}, fmt.Errorf("port number %d is outside valid range (1-65535)", port)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return lockInfo{}, errors.New("invalid process ID in lockfile")
	}

	secret := strings.TrimSpace(parts[2])
	if secret == "" {
		return lockInfo{}, errors.New("secret in lockfile is empty")
	}

	return lockInfo{Port: port, PID: pid, Secret: secret}, nil
}

func findAndValidateTrayProcess(lockfilePath string) (lockInfo, error) {
	content, err := os.ReadFile(lockfilePath)
	if err != nil {
		return lockInfo{}, ErrTrayNotRunning
	}

	lock, err := parseLockfile(string(content))
	if err != nil {
		return lockInfo{}, err
	}

	// A stale lockfile can point at a PID reused by another program.
	process, err := findProcessFunc(lock.PID)
	if err != nil || process == nil {
		return lockInfo{}, ErrTrayNotRunning
	}
	if !strings.HasPrefix(process.Executable(), constants.TrayExecutablePrefix) {
		return lockInfo{}, fmt.Errorf("process with PID %d is not %s (is %s)", lock.PID, constants.TrayExecutablePrefix, process.Executable())
	}

	return lock, nil
}

func (n *Notifier) send(ctx context.Context, lock lockInfo, payload WebhookPayload) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("http://127.0.0.1:%d", lock.Port)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Momentum-Secret", lock.Secret)

	res, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}

	body, _ := io.ReadAll(res.Body)
	return fmt.Errorf("notification failed with status %d: %s", res.StatusCode, string(body))
}
