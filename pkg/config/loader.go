package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// LoadFrameworkConfig 加载框架配置文件
// 根据扩展名选择解析器（.toml 使用TOML，其余按YAML解析），解析前展开 ${ENV} 环境变量。
// 文件不存在时返回默认配置。
func LoadFrameworkConfig(path string) (*EngineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewDefaultConfig(), nil
		}
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	content := os.ExpandEnv(string(data))

	var cfg EngineConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(content, &cfg); err != nil {
			return nil, fmt.Errorf("解析TOML配置失败: %w", err)
		}
	default:
		if err := yaml.Unmarshal([]byte(content), &cfg); err != nil {
			return nil, fmt.Errorf("解析YAML配置失败: %w", err)
		}
	}

	cfg.ApplyDefaults()
	return &cfg, nil
}
