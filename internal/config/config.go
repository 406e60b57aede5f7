package config

import (
	"github.com/rizaldinur/crowdfunding-api/internal/logger"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Midtrans  MidtransConfig  `mapstructure:"midtrans"`
	Jwt       JwtConfig       `mapstructure:"jwt"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Cors      CorsConfig      `mapstructure:"cors"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// MidtransConfig 支付网关配置, 进程启动时一次性注入
type MidtransConfig struct {
	ServerKey   string `mapstructure:"server_key"`
	ClientKey   string `mapstructure:"client_key"`
	Environment string `mapstructure:"environment"` // sandbox, production
}

type JwtConfig struct {
	Secret           string `mapstructure:"secret"`
	ExpiryMinutes    int    `mapstructure:"expiry_minutes"`    // token有效期
	RefreshThreshold int    `mapstructure:"refresh_threshold"` // 剩余有效期低于该分钟数时下发新token
}

type StorageConfig struct {
	RootDir string `mapstructure:"root_dir"` // 上传文件根目录
	BaseUrl string `mapstructure:"base_url"` // 对外访问地址
}

type SchedulerConfig struct {
	SweepInterval     int `mapstructure:"sweep_interval"`      // 状态扫描间隔(秒)
	LaunchWindow      int `mapstructure:"launch_window_hours"` // 上线补扫窗口(小时)
	ReconcileInterval int `mapstructure:"reconcile_interval"`  // 对账间隔(秒)
	ReconcilePoolSize int `mapstructure:"reconcile_pool_size"` // 对账协程池大小
}

type CorsConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // 日志级别: debug, info, warn, error, fatal
	Output string `mapstructure:"output"` // 输出目标: stdout, file
	File   string `mapstructure:"file"`   // 日志文件路径（当output为file时使用）
}

func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/crowdfunding-api")

	// 设置默认值
	viper.SetDefault("server.port", "8000")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "")
	viper.SetDefault("database.dbname", "crowdfunding")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("midtrans.environment", "sandbox")
	viper.SetDefault("jwt.expiry_minutes", 15)
	viper.SetDefault("jwt.refresh_threshold", 5)
	viper.SetDefault("storage.root_dir", "data")
	viper.SetDefault("storage.base_url", "http://localhost:8000")
	viper.SetDefault("scheduler.sweep_interval", 3600)
	viper.SetDefault("scheduler.launch_window_hours", 24)
	viper.SetDefault("scheduler.reconcile_interval", 300)
	viper.SetDefault("scheduler.reconcile_pool_size", 8)
	viper.SetDefault("cors.allow_origins", []string{"*"})
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.output", "stdout")
	viper.SetDefault("log.file", "logs/app.log")

	// 自动读取环境变量
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logger.Warn("Warning: Could not read config file: %v", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		logger.Fatal("Unable to decode config into struct: %v", err)
	}

	return &config
}
