package config

import (
	"net"
	"time"

	"github.com/go-sql-driver/mysql"
)

type DatabaseConfig struct {
	Host            string        `json:"host"`
	Port            string        `json:"port"`
	User            string        `json:"user"`
	Password        string        `json:"password"`
	DBName          string        `json:"dbName"`
	MaxOpenConns    int           `json:"maxOpenConns"`
	MaxIdleConns    int           `json:"maxIdleConns"`
	ConnMaxLifetime Duration      `json:"connMaxLifetime"`
}

func NewDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		Host:            "localhost",
		Port:            "3306",
		User:            "root",
		DBName:          "crack_insight",
		MaxOpenConns:    25,
		MaxIdleConns:    5,
		ConnMaxLifetime: Duration(5 * time.Minute),
	}
}

// Enabled reports whether a database has been configured at all.
func (c *DatabaseConfig) Enabled() bool {
	return c.Host != "" && c.DBName != ""
}

func (c *DatabaseConfig) GetDSN() string {
	cfg := mysql.NewConfig()
	cfg.User = c.User
	cfg.Passwd = c.Password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(c.Host, c.Port)
	cfg.DBName = c.DBName
	cfg.ParseTime = true
	return cfg.FormatDSN()
}
