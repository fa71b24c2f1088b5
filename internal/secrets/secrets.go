// Package secrets loads the opaque secret files mounted into the
// function environment. Files are read once per process; a missing or
// malformed file is logged and skipped, never fatal.
package secrets

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

const (
	defaultSecretsFile      = "/tmp/vault/secrets.json"
	defaultStackSecretsFile = "/tmp/vault/secretsStack.json"
)

// secretsFile is the on-disk shape: {"data": {"KEY": "value"}}.
type secretsFile struct {
	Data map[string]string `json:"data"`
}

// Service holds the merged secret key-value pairs.
type Service struct {
	secrets map[string]string
}

var (
	instance *Service
	once     sync.Once
)

// WithDefaults returns the process-wide secrets service, loading the
// default secret files on first use.
func WithDefaults(logger *logrus.Logger) *Service {
	once.Do(func() {
		instance = Load(logger, defaultSecretsFile, defaultStackSecretsFile)
	})
	return instance
}

// Load reads and merges the given secret files. Later files override
// earlier ones.
func Load(logger *logrus.Logger, paths ...string) *Service {
	data := make(map[string]string)

	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			logger.WithError(err).WithField("path", path).Error("Error reading or parsing secret files")
			continue
		}

		var file secretsFile
		if err := json.Unmarshal(raw, &file); err != nil {
			logger.WithError(err).WithField("path", path).Error("Error reading or parsing secret files")
			continue
		}

		for key, value := range file.Data {
			data[key] = value
		}
	}

	return &Service{secrets: data}
}

// Get returns the secret value for a key.
func (s *Service) Get(key string) (string, error) {
	value, ok := s.secrets[key]
	if !ok {
		return "", fmt.Errorf("secret %s not found", key)
	}
	return value, nil
}
