// Package autostart manages the XDG autostart entry that launches the
// daemon on session login.
package autostart

import (
	"fmt"
	"os"
	"path/filepath"
)

const desktopFileName = "deskhop.desktop"

const desktopFileTemplate = `[Desktop Entry]
Type=Application
Name=deskhop
Comment=Numbered virtual desktop switcher
Exec=%s daemon
Terminal=false
X-GNOME-Autostart-enabled=true
`

// EntryPath returns the autostart .desktop file location, honoring
// XDG_CONFIG_HOME.
func EntryPath() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "autostart", desktopFileName), nil
}

// Install writes the autostart entry pointing at the current executable.
func Install() error {
	executable, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to resolve executable path: %w", err)
	}
	return InstallWithExecutable(executable)
}

// InstallWithExecutable writes the autostart entry for a specific binary.
func InstallWithExecutable(executable string) error {
	path, err := EntryPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create autostart directory: %w", err)
	}

	content := fmt.Sprintf(desktopFileTemplate, executable)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write autostart entry: %w", err)
	}
	return nil
}

// Uninstall removes the autostart entry. Removing a missing entry is
// not an error.
func Uninstall() error {
	path, err := EntryPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove autostart entry: %w", err)
	}
	return nil
}

// Installed reports whether the autostart entry exists.
func Installed() (bool, error) {
	path, err := EntryPath()
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
