package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Mailjet   MailjetConfig
	Redis     RedisConfig
	Finlife   FinlifeConfig
	Recommend RecommendConfig
	Quiz      QuizConfig
	Metal     MetalConfig
}

type MailjetConfig struct {
	MailjetBaseUrl           string
	MailjetBasicAuthUsername string
	MailjetBasicAuthPassword string
	MailjetSenderEmail       string
	MailjetSenderName        string
}

type AppConfig struct {
	Name                    string
	Version                 string
	Environment             string
	AppDeploymentUrl        string
	AppEmailVerificationKey string
	AllowOrigins            []string
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type JWTConfig struct {
	SecretKey string
	TTL       time.Duration
}

type RedisConfig struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisTLS      bool
	RedisPoolSize int
}

// FinlifeConfig points at the FSS financial product open API.
type FinlifeConfig struct {
	BaseURL        string
	APIKey         string
	TopFinGrpNo    string
	RequestsPerSec float64
	Timeout        time.Duration
}

type RecommendConfig struct {
	Neighbors  int
	TopPerKind int
	TopTotal   int
}

type QuizConfig struct {
	CertificateDir  string
	CertificateFont string
}

type MetalConfig struct {
	DataDir string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, errors.New("invalid redis database")
	}

	cfg := &Config{
		App: AppConfig{
			Name:                    getEnv("APP_NAME", "Youth Banking API"),
			Version:                 getEnv("APP_VERSION", "1.0.0"),
			Environment:             getEnv("APP_ENV", "development"),
			AppDeploymentUrl:        getEnv("APP_DEPLOYMENT_URL", ""),
			AppEmailVerificationKey: getEnv("APP_EMAIL_VERIFICATION_KEY", ""),
			AllowOrigins:            []string{getEnv("APP_ALLOW_ORIGIN", "http://localhost:5173"), "http://localhost:8080"},
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "youth_banking"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", ""),
			TTL:       getDuration("JWT_TTL", 24*time.Hour),
		},
		Mailjet: MailjetConfig{
			MailjetBaseUrl:           getEnv("MAILJET_BASE_URL", "https://api.mailjet.com"),
			MailjetBasicAuthUsername: getEnv("MAILJET_BASIC_AUTH_USERNAME", ""),
			MailjetBasicAuthPassword: getEnv("MAILJET_BASIC_AUTH_PASSWORD", ""),
			MailjetSenderEmail:       getEnv("MAILJET_SENDER_EMAIL", ""),
			MailjetSenderName:        getEnv("MAILJET_SENDER_NAME", ""),
		},
		Redis: RedisConfig{
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       redisDB,
			RedisTLS:      getEnv("REDIS_TLS", "false") == "true",
			RedisPoolSize: getInt("REDIS_POOL_SIZE", 10),
		},
		Finlife: FinlifeConfig{
			BaseURL:        getEnv("FINLIFE_BASE_URL", "http://finlife.fss.or.kr/finlifeapi"),
			APIKey:         getEnv("FINLIFE_API_KEY", ""),
			TopFinGrpNo:    getEnv("FINLIFE_TOP_FIN_GRP_NO", "020000"),
			RequestsPerSec: getFloat("FINLIFE_REQUESTS_PER_SEC", 2),
			Timeout:        getDuration("FINLIFE_TIMEOUT", 10*time.Second),
		},
		Recommend: RecommendConfig{
			Neighbors:  getInt("RECOMMEND_NEIGHBORS", 50),
			TopPerKind: getInt("RECOMMEND_TOP_PER_KIND", 5),
			TopTotal:   getInt("RECOMMEND_TOP_TOTAL", 10),
		},
		Quiz: QuizConfig{
			CertificateDir:  getEnv("QUIZ_CERTIFICATE_DIR", "media/certificates"),
			CertificateFont: getEnv("QUIZ_CERTIFICATE_FONT", ""),
		},
		Metal: MetalConfig{
			DataDir: getEnv("METAL_DATA_DIR", "data"),
		},
	}

	if cfg.JWT.SecretKey == "" {
		return nil, errors.New("missing jwt secret")
	}

	if cfg.App.AppDeploymentUrl == "" {
		return nil, errors.New("missing app deployment url")
	}

	if cfg.App.AppEmailVerificationKey == "" {
		return nil, errors.New("missing app email verification key")
	}

	if cfg.Database.Password == "" {
		return nil, errors.New("missing database password")
	}

	if cfg.Recommend.Neighbors <= 0 || cfg.Recommend.TopPerKind <= 0 || cfg.Recommend.TopTotal <= 0 {
		return nil, errors.New("recommendation limits must be positive")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func getInt(key string, defaultVal int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultVal
	}
	return v
}

func getFloat(key string, defaultVal float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return defaultVal
	}
	return v
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultVal
	}
	return v
}
