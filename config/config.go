package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Filter    FilterConfig
	Scheduler SchedulerConfig
	CORS      CORSConfig
	Log       LogConfig
	Timezone  *time.Location
}

type ServerConfig struct {
	Port        string
	GinMode     string
	Environment string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

// FilterConfig 매물 허용 규칙 기본값 (환경변수로 재정의 가능)
type FilterConfig struct {
	AreaBands        string // "56-62,72-78,81-87" 형식
	ExcludeSeango    bool
	ExcludeLowFloors bool
	MaxPyeong        float64
	IncludeLargeArea bool
}

type SchedulerConfig struct {
	Enabled   bool
	CronSpec  string // 임포트+집계 사이클 주기
	ImportDir string // 수집기 내보내기 JSON 디렉토리
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
	File   string // 비어 있으면 stdout만 사용
}

func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// 수집/집계 날짜 기준 시간대는 고정값
	tz := getEnv("TIMEZONE", "Asia/Seoul")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}

	config := &Config{
		Server: ServerConfig{
			Port:        getEnv("SERVER_PORT", "8080"),
			GinMode:     getEnv("GIN_MODE", "debug"),
			Environment: getEnv("ENVIRONMENT", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "admin"),
			Password: getEnv("DB_PASSWORD", "1234"),
			DBName:   getEnv("DB_NAME", "aptgap"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Enabled:  parseBool(getEnv("REDIS_ENABLED", "false")),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       parseInt(getEnv("REDIS_DB", "0"), 0),
		},
		Filter: FilterConfig{
			AreaBands:        getEnv("FILTER_AREA_BANDS", "56-62,72-78,81-87"),
			ExcludeSeango:    parseBool(getEnv("FILTER_EXCLUDE_SEANGO", "true")),
			ExcludeLowFloors: parseBool(getEnv("FILTER_EXCLUDE_LOW_FLOORS", "true")),
			MaxPyeong:        parseFloat(getEnv("FILTER_MAX_PYEONG", "35"), 35),
			IncludeLargeArea: parseBool(getEnv("FILTER_INCLUDE_LARGE_AREA", "false")),
		},
		Scheduler: SchedulerConfig{
			Enabled:   parseBool(getEnv("SCHEDULER_ENABLED", "false")),
			CronSpec:  getEnv("SCHEDULER_CRON", "0 9 * * *"),
			ImportDir: getEnv("SCHEDULER_IMPORT_DIR", "data/exports"),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseSlice(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
			File:   getEnv("LOG_FILE", ""),
		},
		Timezone: loc,
	}

	return config, nil
}

// AreaBandValues "56-62,72-78" 형식의 면적 구간 문자열 파싱
//
// 형식이 깨진 구간은 건너뛴다.
func (f *FilterConfig) AreaBandValues() [][2]float64 {
	var bands [][2]float64
	for _, part := range parseSlice(f.AreaBands) {
		bounds := strings.SplitN(part, "-", 2)
		if len(bounds) != 2 {
			continue
		}
		min, err1 := strconv.ParseFloat(strings.TrimSpace(bounds[0]), 64)
		max, err2 := strconv.ParseFloat(strings.TrimSpace(bounds[1]), 64)
		if err1 != nil || err2 != nil || min > max {
			continue
		}
		bands = append(bands, [2]float64{min, max})
	}
	return bands
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseBool(s string) bool {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false
	}
	return v
}

func parseInt(s string, defaultValue int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultValue
	}
	return v
}

func parseFloat(s string, defaultValue float64) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return defaultValue
	}
	return v
}

func parseSlice(s string) []string {
	if s == "" {
		return []string{}
	}
	var result []string
	for i := 0; i < len(s); {
		end := i
		for end < len(s) && s[end] != ',' {
			end++
		}
		result = append(result, s[i:end])
		i = end + 1
	}
	return result
}
