package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"gcgviz/internal/logging"
	"gcgviz/internal/store"
)

// AppConfig 应用配置
type AppConfig struct {
	Server ServerConfig    `toml:"server"`
	Data   DataConfig      `toml:"data"`
	Store  StoreConfig     `toml:"store"`
	Log    logging.Options `toml:"log"`
	Upload UploadConfig    `toml:"upload"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig 数据配置
type DataConfig struct {
	DataDir string `toml:"data_dir"`
}

// StoreConfig 记录表存储配置
type StoreConfig struct {
	Backend string `toml:"backend"` // xlsx | sqlite | memory
	File    string `toml:"file"`    // 相对 data_dir 的文件名，空则使用后端默认值
}

// UploadConfig 上传限制
type UploadConfig struct {
	MaxBytes int64 `toml:"max_bytes"`
}

// LoadConfigInfo 配置加载元信息
type LoadConfigInfo struct {
	Path          string
	FromFile      bool
	PortSpecified bool
}

// EnvDataDir 覆盖 data_dir 的环境变量
const EnvDataDir = "GCGVIZ_DATA_DIR"

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    5000,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir: "data",
		},
		Store: StoreConfig{
			Backend: store.BackendXLSX,
		},
		Log: logging.DefaultOptions(),
		Upload: UploadConfig{
			MaxBytes: 16 << 20,
		},
	}
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// DefaultPath 默认配置文件路径（可执行文件同目录下的 config.toml）
func DefaultPath() string {
	exeDir, err := GetExeDir()
	if err != nil {
		// 无法获取可执行文件目录，使用当前目录
		exeDir = "."
	}
	return filepath.Join(exeDir, "config.toml")
}

// LoadFrom 从指定路径加载配置；文件不存在时使用默认配置
func LoadFrom(configPath string) (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{Path: configPath}
	config := DefaultConfig()

	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		info.FromFile = true
		info.PortSpecified = isPortSpecifiedInToml(data)
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, info, err
		}
	case os.IsNotExist(err):
		// 配置文件不存在，使用默认配置
	default:
		return nil, info, err
	}

	// 环境变量覆盖（用于部署 / 本地运行）
	if v := os.Getenv(EnvDataDir); v != "" {
		config.Data.DataDir = v
	}

	return config, info, nil
}

// SaveConfig 保存配置到指定路径
func SaveConfig(config *AppConfig, configPath string) error {
	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(configPath, data, 0644)
}

// ResolveDataDir 返回数据目录的绝对路径并确保其存在
// 相对路径以可执行文件所在目录为基准。
func ResolveDataDir(config *AppConfig) (string, error) {
	dataDir := config.Data.DataDir
	if !filepath.IsAbs(dataDir) {
		exeDir, err := GetExeDir()
		if err != nil {
			exeDir = "."
		}
		dataDir = filepath.Join(exeDir, dataDir)
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}
	return dataDir, nil
}
