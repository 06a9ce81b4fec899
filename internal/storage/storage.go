// Package storage provides XDG-compliant storage path management for commiter.
package storage

import (
	"fmt"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/spf13/afero"
)

const (
	// AppName is the application name used for XDG directory paths
	AppName = "commiter"

	// ConfigFilename is the name of the persisted configuration file
	ConfigFilename = "config.json"

	// LogFilename is the name of the rotating debug log file
	LogFilename = "commiter.log"
)

// Manager handles storage operations with filesystem abstraction
type Manager struct {
	fs afero.Fs
}

// New creates a new storage manager with the given filesystem
func New(fs afero.Fs) *Manager {
	return &Manager{fs: fs}
}

// ConfigDir returns the XDG config directory for commiter, creating it if necessary
func (m *Manager) ConfigDir() (string, error) {
	configDir := filepath.Join(xdg.ConfigHome, AppName)
	if err := m.fs.MkdirAll(configDir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create config directory %s: %w", configDir, err)
	}
	return configDir, nil
}

// ConfigPath returns the full path to the commiter configuration file
func (m *Manager) ConfigPath() (string, error) {
	configDir, err := m.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, ConfigFilename), nil
}

// DataDir returns the XDG data directory for commiter, creating it if necessary
func (m *Manager) DataDir() (string, error) {
	dataDir := filepath.Join(xdg.DataHome, AppName)
	if err := m.fs.MkdirAll(dataDir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create data directory %s: %w", dataDir, err)
	}
	return dataDir, nil
}

// LogPath returns the full path to the commiter log file
func (m *Manager) LogPath() (string, error) {
	dataDir, err := m.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, LogFilename), nil
}
