package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/rizqapp/rizq/internal/constants"
)

var findProcessFunc = ps.FindProcess

func pidFilePath(configDir string) string {
	return filepath.Join(configDir, constants.AppName+".pid")
}

// WritePIDFile records the current process id next to the storage file so
// other invocations can detect a live interactive session.
func WritePIDFile(configDir string) error {
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	pid := strconv.Itoa(os.Getpid())
	if err := os.WriteFile(pidFilePath(configDir), []byte(pid), 0600); err != nil {
		return fmt.Errorf("failed to write pid file: %w", err)
	}
	return nil
}

// RemovePIDFile removes the pid file. Missing files are not an error.
func RemovePIDFile(configDir string) error {
	err := os.Remove(pidFilePath(configDir))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// RunningInstance reports whether another live rizq process holds the pid
// file. A stale pid file (dead process or unparseable content) reports false.
func RunningInstance(configDir string) (pid int, running bool) {
	data, err := os.ReadFile(pidFilePath(configDir))
	if err != nil {
		return 0, false
	}

	pid, err = strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 || pid == os.Getpid() {
		return 0, false
	}

	proc, err := findProcessFunc(pid)
	if err != nil || proc == nil {
		return 0, false
	}
	if !strings.Contains(proc.Executable(), constants.AppName) {
		// PID was recycled by an unrelated process
		return 0, false
	}
	return pid, true
}
