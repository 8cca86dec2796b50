package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Zacy-Sokach/Mira/internal/chat"
	"github.com/Zacy-Sokach/Mira/internal/utils"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

type Config struct {
	ResponseDelayMS  int    `yaml:"response_delay_ms" env:"MIRA_RESPONSE_DELAY_MS"`
	SplashDurationMS int    `yaml:"splash_duration_ms" env:"MIRA_SPLASH_DURATION_MS"`
	ReplyPolicy      string `yaml:"reply_policy" env:"MIRA_REPLY_POLICY"`
	UserName         string `yaml:"user_name" env:"MIRA_USER_NAME"`
	CameraEnabled    *bool  `yaml:"camera_enabled,omitempty" env:"MIRA_CAMERA_ENABLED"`
	LogFile          string `yaml:"log_file" env:"MIRA_LOG_FILE"`
	LogLevel         string `yaml:"log_level" env:"MIRA_LOG_LEVEL"`
	MaxInputLength   int    `yaml:"max_input_length" env:"MIRA_MAX_INPUT_LENGTH"`
}

// Default 返回默认配置
func Default() *Config {
	enabled := true
	return &Config{
		ResponseDelayMS:  int(chat.DefaultResponseDelay / time.Millisecond),
		SplashDurationMS: 3000,
		ReplyPolicy:      chat.PolicyAuto,
		UserName:         "John Doe",
		CameraEnabled:    &enabled,
		LogLevel:         "info",
		MaxInputLength:   chat.DefaultMaxInputLength,
	}
}

// LoadConfig 读取配置文件，再用环境变量覆盖
func LoadConfig() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	config := Default()
	data, err := os.ReadFile(configPath)
	switch {
	case os.IsNotExist(err):
		// 没有配置文件时使用默认值
	case err != nil:
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	default:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("解析配置文件失败: %w", err)
		}
	}

	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("解析环境变量失败: %w", err)
	}

	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// applyDefaults 补齐配置文件中为空的字段。数值字段在解析前已由 Default 填好，
// 显式写出的值原样保留，交给 Validate
func (c *Config) applyDefaults() {
	def := Default()
	if c.ReplyPolicy == "" {
		c.ReplyPolicy = def.ReplyPolicy
	}
	if c.UserName == "" {
		c.UserName = def.UserName
	}
	if c.CameraEnabled == nil {
		c.CameraEnabled = def.CameraEnabled
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.MaxInputLength <= 0 {
		c.MaxInputLength = def.MaxInputLength
	}
}

// Validate 校验配置
func (c *Config) Validate() error {
	if c.ResponseDelayMS <= 0 {
		return fmt.Errorf("response_delay_ms 必须大于 0: %d", c.ResponseDelayMS)
	}
	if c.SplashDurationMS < 0 {
		return fmt.Errorf("splash_duration_ms 不能为负数: %d", c.SplashDurationMS)
	}
	if _, err := chat.NewReplyPolicy(c.ReplyPolicy); err != nil {
		return fmt.Errorf("reply_policy 无效: %w", err)
	}
	return nil
}

// ResponseDelay 回复延迟
func (c *Config) ResponseDelay() time.Duration {
	return time.Duration(c.ResponseDelayMS) * time.Millisecond
}

// SplashDuration 启动画面持续时间
func (c *Config) SplashDuration() time.Duration {
	return time.Duration(c.SplashDurationMS) * time.Millisecond
}

// Camera 是否允许使用相机
func (c *Config) Camera() bool {
	return c.CameraEnabled == nil || *c.CameraEnabled
}

// LogPath 日志文件路径，未配置时放在配置目录下
func (c *Config) LogPath() (string, error) {
	if c.LogFile != "" {
		return utils.ExpandHome(c.LogFile), nil
	}
	configDir, err := utils.GetConfigDir()
	if err != nil {
		return "", fmt.Errorf("获取配置目录失败: %w", err)
	}
	return filepath.Join(configDir, "mira.log"), nil
}

func SaveConfig(config *Config) error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("创建配置目录失败: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("序列化配置失败: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("写入配置文件失败: %w", err)
	}

	return nil
}

// Summary 非交互模式下显示的配置摘要
func (c *Config) Summary() string {
	return strings.Join([]string{
		fmt.Sprintf("回复延迟: %dms", c.ResponseDelayMS),
		fmt.Sprintf("回复策略: %s", c.ReplyPolicy),
		fmt.Sprintf("用户: %s", c.UserName),
	}, "\n")
}

func getConfigPath() (string, error) {
	configDir, err := utils.GetConfigDir()
	if err != nil {
		return "", fmt.Errorf("获取配置目录失败: %w", err)
	}
	return filepath.Join(configDir, "config.yaml"), nil
}
