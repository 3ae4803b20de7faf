package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Log      LogConfig
	Redis    RedisConfig
	CORS     CORSConfig
	AI       AIConfig
	Campaign CampaignConfig
	Seed     SeedConfig
}

type ServerConfig struct {
	Port            string
	Mode            string
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Driver     string // postgres 或 sqlite
	Host       string
	Port       string
	User       string
	Password   string
	DBName     string
	SSLMode    string
	SQLitePath string
}

type JWTConfig struct {
	SecretKey     string        // JWT密钥
	TokenDuration time.Duration // 令牌有效期，默认24h
}

type LogConfig struct {
	Level      string
	FilePath   string
	MaxSize    int    // MB
	MaxBackups int    // 保留的备份文件数
	MaxAge     int    // 保留天数
	Compress   bool   // 是否压缩
	Format     string // json 或 text
}

type RedisConfig struct {
	Enabled  bool
	Host     string // Redis主机地址
	Port     int    // Redis端口
	Password string // Redis密码
	DB       int    // Redis数据库编号
	Prefix   string // 队列键前缀
}

type CORSConfig struct {
	AllowOrigins     []string // 允许的源
	AllowMethods     []string // 允许的HTTP方法
	AllowHeaders     []string // 允许的请求头
	ExposeHeaders    []string // 暴露的响应头
	AllowCredentials bool     // 是否允许携带凭证
	MaxAge           int      // 预检请求缓存时间（小时）
}

// AIConfig 文本生成服务配置
type AIConfig struct {
	ServiceURL     string
	Timeout        time.Duration
	MaxTokens      int
	PromptTemplate string // 支持 {type} 和 {prompt} 占位符
}

// CampaignConfig 活动生命周期配置
type CampaignConfig struct {
	StrictTransitions bool   // 开启后 update 校验状态流转
	DispatchEnabled   bool   // 是否启动定时派发，需同时启用 Redis
	DispatchSpec      string // cron 表达式
	Templates         map[string][]ContentTemplate
}

// ContentTemplate 渠道内容模板，{prompt} 为占位符
type ContentTemplate struct {
	Name        string `json:"name"`
	Template    string `json:"template"`
	Description string `json:"description"`
}

type SeedConfig struct {
	DemoData     bool
	DemoEmail    string
	DemoPassword string
}

// DefaultPromptTemplate 默认的内容生成提示词模板
const DefaultPromptTemplate = "Créez un contenu de {type} pour: {prompt}"

// DefaultContentTemplates 按渠道分组的内置内容模板
var DefaultContentTemplates = map[string][]ContentTemplate{
	"facebook": {
		{
			Name:        "Promotion Produit",
			Template:    "🌟 Découvrez {prompt} ! Une offre exceptionnelle vous attend. Visitez-nous dès aujourd'hui ! #LocalBusiness #Madagascar",
			Description: "Template pour promouvoir un produit ou service",
		},
		{
			Name:        "Événement",
			Template:    "📅 Ne manquez pas {prompt} ! Rejoignez-nous pour un moment inoubliable. Réservez votre place maintenant ! 🎉",
			Description: "Template pour annoncer un événement",
		},
	},
	"sms": {
		{
			Name:        "Promo Flash",
			Template:    "PROMO: {prompt} - Offre limitée ! Valable jusqu'au [DATE]. Info: [PHONE]",
			Description: "Template pour une promotion flash",
		},
		{
			Name:        "Rappel RDV",
			Template:    "Rappel: RDV {prompt} demain à [HEURE]. Confirmez au [PHONE]. Merci !",
			Description: "Template pour rappel de rendez-vous",
		},
	},
	"email": {
		{
			Name:        "Newsletter",
			Template:    "Objet: Nouveautés {prompt}\n\nBonjour,\n\nDécouvrez nos dernières nouveautés concernant {prompt}. [CONTENU]\n\nCordialement,\nL'équipe",
			Description: "Template pour newsletter",
		},
	},
	"whatsapp": {
		{
			Name:        "Message Amical",
			Template:    "Salut ! 👋 J'ai pensé que {prompt} pourrait t'intéresser. Qu'en penses-tu ? 😊",
			Description: "Template pour message WhatsApp amical",
		},
	},
}

// 获取环境变量，如果不存在则使用默认值
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// 获取环境变量转换为int
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// 获取环境变量转换为bool
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true"
	}
	return defaultValue
}

// 获取环境变量转换为时长，如 "30s"、"24h"
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// 获取环境变量转换为字符串数组（逗号分隔）
func getEnvAsStringArray(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		result := make([]string, 0, len(parts))
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return defaultValue
}

// LoadConfig 读取 .env（可选）和环境变量
func LoadConfig() (*Config, error) {
	// .env 不存在时直接使用系统环境变量
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "4000"),
			Mode:            getEnv("SERVER_MODE", "debug"),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Driver:     getEnv("DB_DRIVER", "postgres"),
			Host:       getEnv("DB_HOST", "localhost"),
			Port:       getEnv("DB_PORT", "5432"),
			User:       getEnv("DB_USER", "postgres"),
			Password:   getEnv("DB_PASSWORD", ""),
			DBName:     getEnv("DB_NAME", "ai4local"),
			SSLMode:    getEnv("DB_SSLMODE", "disable"),
			SQLitePath: getEnv("DB_SQLITE_PATH", "ai4local.db"),
		},
		JWT: JWTConfig{
			SecretKey:     getEnv("JWT_SECRET_KEY", "default-secret-change-me"),
			TokenDuration: getEnvAsDuration("JWT_TOKEN_DURATION", 24*time.Hour),
		},
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			FilePath:   getEnv("LOG_FILE_PATH", "logs/app.log"),
			MaxSize:    getEnvAsInt("LOG_MAX_SIZE", 100),
			MaxBackups: getEnvAsInt("LOG_MAX_BACKUPS", 7),
			MaxAge:     getEnvAsInt("LOG_MAX_AGE", 30),
			Compress:   getEnvAsBool("LOG_COMPRESS", true),
			Format:     getEnv("LOG_FORMAT", "json"),
		},
		Redis: RedisConfig{
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Prefix:   getEnv("REDIS_PREFIX", "ai4local:queue"),
		},
		CORS: CORSConfig{
			AllowOrigins:     getEnvAsStringArray("CORS_ALLOW_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
			AllowMethods:     getEnvAsStringArray("CORS_ALLOW_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"}),
			AllowHeaders:     getEnvAsStringArray("CORS_ALLOW_HEADERS", []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With", "X-Request-ID"}),
			ExposeHeaders:    getEnvAsStringArray("CORS_EXPOSE_HEADERS", []string{"Content-Length", "Content-Type", "X-Request-ID"}),
			AllowCredentials: getEnvAsBool("CORS_ALLOW_CREDENTIALS", true),
			MaxAge:           getEnvAsInt("CORS_MAX_AGE", 12),
		},
		AI: AIConfig{
			ServiceURL:     getEnv("AI_SERVICE_URL", "http://localhost:8000"),
			Timeout:        getEnvAsDuration("AI_TIMEOUT", 30*time.Second),
			MaxTokens:      getEnvAsInt("AI_MAX_TOKENS", 200),
			PromptTemplate: getEnv("AI_PROMPT_TEMPLATE", DefaultPromptTemplate),
		},
		Campaign: CampaignConfig{
			StrictTransitions: getEnvAsBool("CAMPAIGN_STRICT_TRANSITIONS", false),
			DispatchEnabled:   getEnvAsBool("CAMPAIGN_DISPATCH_ENABLED", false),
			DispatchSpec:      getEnv("CAMPAIGN_DISPATCH_SPEC", "@every 1m"),
			Templates:         DefaultContentTemplates,
		},
		Seed: SeedConfig{
			DemoData:     getEnvAsBool("SEED_DEMO_DATA", false),
			DemoEmail:    getEnv("SEED_DEMO_EMAIL", "demo@ai4local.mg"),
			DemoPassword: getEnv("SEED_DEMO_PASSWORD", "demo1234"),
		},
	}

	return config, nil
}

// DispatchActive 派发只投递到 Redis，进程内队列没有消费者
func (c *Config) DispatchActive() bool {
	return c.Campaign.DispatchEnabled && c.Redis.Enabled
}
