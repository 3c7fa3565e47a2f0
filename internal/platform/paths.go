package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Service defines OS-specific helpers needed by the application.
type Service interface {
	GetConfigDir() (string, error)
	AppDir(appName string) (string, error)
}

type platformService struct{}

// NewService returns a platform-specific implementation.
func NewService() Service {
	return &platformService{}
}

// GetConfigDir returns the OS-standard configuration directory.
func (service *platformService) GetConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return configDir, nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("get config dir: %w", err)
		}
		return "", fmt.Errorf("get config dir: %w", homeErr)
	}

	return fallbackConfigDir(homeDir), nil
}

// AppDir returns the directory holding the settings file and the session
// log for appName.
func (service *platformService) AppDir(appName string) (string, error) {
	name := strings.TrimSpace(appName)
	if name == "" {
		return "", fmt.Errorf("app dir: app name is empty")
	}
	configDir, err := service.GetConfigDir()
	if err != nil {
		return "", fmt.Errorf("app dir: %w", err)
	}
	return filepath.Join(configDir, name), nil
}
