package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

var (
	JwtSecret  string
	Issuer     string
	ServerPort string

	DbHost     string
	DbPort     string
	DbUser     string
	DbPassword string
	DbName     string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
	MinioPublicURL string

	ResendAPIKey string
	EmailFrom    string
	ExpoPushURL  string

	// Roles allowed to decide document status and delete documents.
	ApproverRoles = []string{"admin", "commissioner"}
)

// fileConfig mirrors the optional config.yaml; any non-empty value
// overrides the corresponding environment variable.
type fileConfig struct {
	ServerPort     string `yaml:"server_port"`
	JwtSecret      string `yaml:"jwt_secret"`
	Issuer         string `yaml:"issuer"`
	DbHost         string `yaml:"db_host"`
	DbPort         string `yaml:"db_port"`
	DbUser         string `yaml:"db_user"`
	DbPassword     string `yaml:"db_password"`
	DbName         string `yaml:"db_name"`
	MinioEndpoint  string `yaml:"minio_endpoint"`
	MinioAccessKey string `yaml:"minio_access_key"`
	MinioSecretKey string `yaml:"minio_secret_key"`
	MinioBucket    string `yaml:"minio_bucket"`
	MinioPublicURL string `yaml:"minio_public_url"`
	ResendAPIKey   string `yaml:"resend_api_key"`
	EmailFrom      string `yaml:"email_from"`
	ExpoPushURL    string `yaml:"expo_push_url"`
}

func LoadConfig() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	JwtSecret = getEnv("JWT_SECRET", "defaultsecret")
	Issuer = getEnv("ISSUER", "dms")
	ServerPort = getEnv("SERVER_PORT", "8080")

	DbHost = getEnv("DB_HOST", "localhost")
	DbPort = getEnv("DB_PORT", "5432")
	DbUser = getEnv("DB_USER", "postgres")
	DbPassword = getEnv("DB_PASSWORD", "password")
	DbName = getEnv("DB_NAME", "dms")

	MinioEndpoint = getEnv("MINIO_ENDPOINT", "localhost:9000")
	MinioAccessKey = getEnv("MINIO_ACCESS_KEY", "minioadmin")
	MinioSecretKey = getEnv("MINIO_SECRET_KEY", "minioadmin")
	MinioBucket = getEnv("MINIO_BUCKET", "documents")
	MinioUseSSL, _ = strconv.ParseBool(getEnv("MINIO_USE_SSL", "false"))
	MinioPublicURL = getEnv("MINIO_PUBLIC_URL", "")

	ResendAPIKey = getEnv("RESEND_API_KEY", "")
	EmailFrom = getEnv("EMAIL_FROM", "dms@example.com")
	ExpoPushURL = getEnv("EXPO_PUSH_URL", "https://exp.host/--/api/v2/push/send")

	applyFileOverrides(getEnv("CONFIG_FILE", "config.yaml"))
}

func applyFileOverrides(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		log.Printf("Failed to parse %s: %v", path, err)
		return
	}

	override(&ServerPort, fc.ServerPort)
	override(&JwtSecret, fc.JwtSecret)
	override(&Issuer, fc.Issuer)
	override(&DbHost, fc.DbHost)
	override(&DbPort, fc.DbPort)
	override(&DbUser, fc.DbUser)
	override(&DbPassword, fc.DbPassword)
	override(&DbName, fc.DbName)
	override(&MinioEndpoint, fc.MinioEndpoint)
	override(&MinioAccessKey, fc.MinioAccessKey)
	override(&MinioSecretKey, fc.MinioSecretKey)
	override(&MinioBucket, fc.MinioBucket)
	override(&MinioPublicURL, fc.MinioPublicURL)
	override(&ResendAPIKey, fc.ResendAPIKey)
	override(&EmailFrom, fc.EmailFrom)
	override(&ExpoPushURL, fc.ExpoPushURL)

	log.Printf("Loaded config overrides from %s", path)
}

func override(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
