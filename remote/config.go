package remote

import "time"

// Timeouts for remote command execution. Package installs get extra headroom
// because opkg pulls from slow upstream mirrors on embedded devices.
const (
	DefaultTimeout = 30 * time.Second
	UpdateTimeout  = 60 * time.Second
	InstallTimeout = 120 * time.Second
)

// Config holds connection parameters for the managed host.
type Config struct {
	Host     string `json:"host,omitempty"`
	User     string `json:"user,omitempty"`
	Password string `json:"password,omitempty"`
	Port     int    `json:"port,omitempty"`
	// ConnectTimeout bounds the initial dial and handshake.
	ConnectTimeout time.Duration `json:"connect_timeout,omitempty"`
}

// DefaultConfig returns the default host configuration.
func DefaultConfig() Config {
	return Config{
		Host:           "192.168.1.1",
		User:           "root",
		Port:           22,
		ConnectTimeout: 30 * time.Second,
	}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Host != "" {
		c.Host = source.Host
	}
	if source.User != "" {
		c.User = source.User
	}
	if source.Password != "" {
		c.Password = source.Password
	}
	if source.Port > 0 {
		c.Port = source.Port
	}
	if source.ConnectTimeout > 0 {
		c.ConnectTimeout = source.ConnectTimeout
	}
}
