// Package config loads the proxy's startup options from a YAML file:
// listen address, backend address, compression threshold, whether to
// perform the encryption handshake, RSA keypair persistence path, and log
// level.
package config

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the proxy's startup configuration, loaded from a YAML file.
type Config struct {
	ListenAddr          string `yaml:"listen_addr"`
	BackendAddr         string `yaml:"backend_addr"`
	CompressionThreshold int   `yaml:"compression_threshold"`
	OnlineMode          bool   `yaml:"online_mode"`
	KeyPath             string `yaml:"key_path"`
	LogLevel            string `yaml:"log_level"`
}

// applyDefaults fills in any field left unset by the YAML file.
func (c *Config) applyDefaults() {
	if c.ListenAddr == "" {
		c.ListenAddr = "0.0.0.0:25565"
	}
	if c.BackendAddr == "" {
		c.BackendAddr = "127.0.0.1:25566"
	}
	if c.CompressionThreshold == 0 {
		c.CompressionThreshold = 256
	}
	if c.KeyPath == "" {
		c.KeyPath = "proxy.key"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Load reads and decodes path, applying defaults for any field left unset.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	var c Config
	if err := yaml.NewDecoder(f).Decode(&c); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	c.applyDefaults()
	return &c, nil
}

// LoadOrGenerateKey loads an RSA private key from path, generating and
// persisting a new 1024-bit key (the vanilla Notchian convention) if the
// file does not exist, so the key pair survives restarts.
func LoadOrGenerateKey(path string) (*rsa.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		block, _ := pem.Decode(data)
		if block == nil {
			return nil, fmt.Errorf("config: %s is not valid PEM", path)
		}
		return x509.ParsePKCS1PrivateKey(block.Bytes)
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	key, err := rsa.GenerateKey(rand.Reader, 1024)
	if err != nil {
		return nil, fmt.Errorf("config: generate key: %w", err)
	}
	block := &pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)}
	if err := os.WriteFile(path, pem.EncodeToMemory(block), 0600); err != nil {
		return nil, fmt.Errorf("config: persist %s: %w", path, err)
	}
	return key, nil
}
