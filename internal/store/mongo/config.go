package mongo

const DefaultDatabase = "hashprobe"

// ClientConfig is the `mongodb` config node minus the database name. An empty
// URI disables persistence.
type ClientConfig struct {
	URI      string `kdl:"uri"`
	Username string `kdl:"username"`
	Password string `kdl:"password"`
}

func (c *ClientConfig) hasCredentials() bool {
	return c.Username != ""
}

type Config struct {
	ClientConfig
	Database string `kdl:"database"`
}

// Enabled reports whether a MongoDB deployment is configured.
func (c *Config) Enabled() bool {
	return c != nil && c.URI != ""
}

// DatabaseName falls back to DefaultDatabase when the node leaves it empty.
func (c *Config) DatabaseName() string {
	if c.Database == "" {
		return DefaultDatabase
	}
	return c.Database
}
