package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config 应用配置
type Config struct {
	Port           string
	ResearchRoot   string // 保存JSON文件的根目录
	SavePath       string // 保存接口的路由
	DatabaseURL    string // 为空时不记录保存日志
	LogLevel       string
	LogFormat      string // json 或 text
	StrictWrites   bool   // 写入失败时返回500，而不是照常返回成功
	MetricsEnabled bool
}

// Load 从环境变量加载配置
func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8080"),
		ResearchRoot:   getEnv("RESEARCH_ROOT", "research"),
		SavePath:       getEnv("SAVE_PATH", "/"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		StrictWrites:   getEnvBool("STRICT_WRITES", false),
		MetricsEnabled: getEnvBool("METRICS_ENABLED", true),
	}
}

// Validate 检查配置，SAVE_PATH 不能和内置路由冲突
func (c *Config) Validate() error {
	if !strings.HasPrefix(c.SavePath, "/") {
		return fmt.Errorf("SAVE_PATH %q must start with /", c.SavePath)
	}
	reserved := []string{"/health"}
	if c.MetricsEnabled {
		reserved = append(reserved, "/metrics")
	}
	for _, r := range reserved {
		if c.SavePath == r {
			return fmt.Errorf("SAVE_PATH %q conflicts with the built-in %s route", c.SavePath, r)
		}
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}
