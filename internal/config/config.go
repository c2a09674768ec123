package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
	"teamdesk/internal/validation"
)

// ConfigDirEnv overrides the configuration directory.
const ConfigDirEnv = "TEAMDESK_CONFIG_DIR"

const configFileName = "servers.yaml"

// dirOverride is set from the --config-dir flag and wins over the environment.
var dirOverride string

// Server represents a server connection entry
type Server struct {
	Name     string `yaml:"name"`
	URL      string `yaml:"url"`
	Identity string `yaml:"identity"` // path to a Ziti identity.json
	Order    int    `yaml:"order"`
}

// Config represents the server file. A server's index is its position in Servers.
type Config struct {
	Servers    []Server `yaml:"servers"`
	configPath string
}

// SetConfigDir forces the configuration directory. An empty dir clears it.
func SetConfigDir(dir string) {
	dirOverride = dir
}

// DefaultConfigDir returns the directory holding the server file and logs
func DefaultConfigDir() (string, error) {
	if dirOverride != "" {
		return dirOverride, nil
	}
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return dir, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".teamdesk"), nil
}

// DefaultConfigPath returns the default server file path
func DefaultConfigPath() (string, error) {
	dir, err := DefaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Load loads configuration from the default path
func Load() (*Config, error) {
	configPath, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(configPath)
}

// LoadFromPath loads configuration from the specified path.
// A missing file yields an empty configuration.
func LoadFromPath(configPath string) (*Config, error) {
	if err := os.MkdirAll(filepath.Dir(configPath), 0700); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return &Config{Servers: []Server{}, configPath: configPath}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if config.Servers == nil {
		config.Servers = []Server{}
	}

	config.configPath = configPath
	return &config, nil
}

// Path returns the file this configuration was loaded from
func (c *Config) Path() string {
	return c.configPath
}

// Save saves the configuration to the stored path
func (c *Config) Save() error {
	if c.configPath == "" {
		return fmt.Errorf("config has no file path")
	}
	return c.SaveToPath(c.configPath)
}

// SaveToPath saves the configuration to the specified path (mode 0600)
func (c *Config) SaveToPath(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write a sibling temp file and rename it so readers never see a partial file.
	tmp, err := os.CreateTemp(filepath.Dir(configPath), "."+filepath.Base(configPath)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp config file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set config file mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := os.Rename(tmp.Name(), configPath); err != nil {
		return fmt.Errorf("failed to replace config file: %w", err)
	}
	return nil
}

// AddServer appends a server and returns its index
func (c *Config) AddServer(server Server) (int, error) {
	if err := server.Validate(); err != nil {
		return -1, fmt.Errorf("invalid server configuration: %w", err)
	}
	if err := c.checkDuplicate(server.Name, -1); err != nil {
		return -1, err
	}

	c.Servers = append(c.Servers, server)
	return len(c.Servers) - 1, nil
}

// UpdateServer replaces the server at index
func (c *Config) UpdateServer(index int, server Server) error {
	if index < 0 || index >= len(c.Servers) {
		return fmt.Errorf("server index %d out of range", index)
	}
	if err := server.Validate(); err != nil {
		return fmt.Errorf("invalid server configuration: %w", err)
	}
	if err := c.checkDuplicate(server.Name, index); err != nil {
		return err
	}

	c.Servers[index] = server
	return nil
}

// RemoveServer removes the server at index. Later servers shift down one slot.
func (c *Config) RemoveServer(index int) error {
	if index < 0 || index >= len(c.Servers) {
		return fmt.Errorf("server index %d out of range", index)
	}
	c.Servers = append(c.Servers[:index], c.Servers[index+1:]...)
	return nil
}

// GetServer returns a copy of the server at index
func (c *Config) GetServer(index int) (*Server, error) {
	if index < 0 || index >= len(c.Servers) {
		return nil, fmt.Errorf("server index %d out of range", index)
	}
	server := c.Servers[index]
	return &server, nil
}

// FindServer looks a server up by name
func (c *Config) FindServer(name string) (int, *Server, error) {
	for i, server := range c.Servers {
		if server.Name == name {
			return i, &server, nil
		}
	}
	return -1, nil, fmt.Errorf("server '%s' not found", name)
}

// NextOrder returns the order a newly created server should get
func (c *Config) NextOrder() int {
	next := 0
	for _, server := range c.Servers {
		if server.Order >= next {
			next = server.Order + 1
		}
	}
	return next
}

// OrderedIndices returns server indices sorted by Order. Ties keep file order.
func (c *Config) OrderedIndices() []int {
	indices := make([]int, len(c.Servers))
	for i := range indices {
		indices[i] = i
	}
	slices.SortStableFunc(indices, func(a, b int) int {
		return c.Servers[a].Order - c.Servers[b].Order
	})
	return indices
}

func (c *Config) checkDuplicate(name string, skip int) error {
	for i, existing := range c.Servers {
		if i != skip && existing.Name == name {
			return fmt.Errorf("server with name '%s' already exists", name)
		}
	}
	return nil
}

// Validate applies the same field rules as the server dialog
func (s *Server) Validate() error {
	return validation.Check(s.Name, s.URL, s.Identity).Err()
}
