// Package config, uygulamanın tüm konfigürasyonunu merkezi olarak yönetir.
// Environment variable'lardan okur, .env dosyasını da destekler.
//
// Her alt bölüm ayrı bir struct: her struct tek bir concern'ü temsil eder.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config, uygulamanın tüm konfigürasyon değerlerini taşır.
type Config struct {
	Server     ServerConfig
	Content    ContentConfig
	Admin      AdminConfig
	JWT        JWTConfig
	Revocation RevocationConfig
	RateLimit  RateLimitConfig
	Notify     NotifyConfig
	CORS       CORSConfig
}

// ServerConfig, HTTP server ayarları.
type ServerConfig struct {
	Host string
	Port int
}

// ContentConfig, blog içeriğinin diskteki yerleri.
type ContentConfig struct {
	PublicDir     string // Statik sayfaların kök dizini
	PostsFile     string // Tüm yazıları tutan JSON dosyası
	TemplateFile  string // Script enjeksiyonunun hedefi (index.html)
	ImagesDir     string // Yüklenen post görselleri
	UploadMaxSize int64  // Byte cinsinden max multipart body
}

// AdminConfig, tek admin hesabı ve script enjeksiyon pin'i.
// Şifre ve pin bcrypt hash olarak saklanır, düz metin DEĞİL.
type AdminConfig struct {
	Username      string
	PasswordHash  string
	ScriptPinHash string // Boşsa add-script her zaman 403 döner
}

// JWTConfig, oturum token ayarları.
type JWTConfig struct {
	Secret string
	Expiry time.Duration
}

// RevocationConfig, logout edilen token'ların nerede tutulacağı.
type RevocationConfig struct {
	Backend       string // "memory" veya "redis"
	RedisAddr     string
	RedisPassword string
	// Enforce: true ise iptal edilmiş token'lar tüm korumalı route'larda
	// reddedilir. false (varsayılan) ise sadece logout kontrol eder.
	Enforce bool
}

// RateLimitConfig, login ve yorum spam korumaları. Max = 0 → kapalı.
type RateLimitConfig struct {
	LoginMax        int
	LoginWindow     time.Duration
	CommentMax      int
	CommentWindow   time.Duration
	CommentCooldown time.Duration
}

// NotifyConfig, yeni yorum bildirim email'i. APIKey veya To boşsa kapalı.
type NotifyConfig struct {
	ResendAPIKey string
	From         string
	To           string
}

// CORSConfig, izin verilen origin'ler.
type CORSConfig struct {
	AllowedOrigins []string
}

// Load, environment variable'lardan Config oluşturur.
// .env dosyası varsa önce onu yükler; yoksa sessizce devam eder.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("SERVER_PORT", "14000"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	maxSize, err := strconv.ParseInt(getEnv("UPLOAD_MAX_SIZE", "10485760"), 10, 64) // 10MB
	if err != nil {
		return nil, fmt.Errorf("invalid UPLOAD_MAX_SIZE: %w", err)
	}

	jwtSecret := getEnv("JWT_SECRET", "")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	jwtExpiry, err := ParseExpiry(getEnv("JWT_EXPIRY", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRY: %w", err)
	}

	adminUser := getEnv("ADMIN_USERNAME", "")
	adminHash := getEnv("ADMIN_PASSWORD", "")
	if adminUser == "" || adminHash == "" {
		return nil, fmt.Errorf("ADMIN_USERNAME and ADMIN_PASSWORD environment variables are required")
	}

	enforce, err := strconv.ParseBool(getEnv("AUTH_ENFORCE_REVOCATION", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_ENFORCE_REVOCATION: %w", err)
	}

	backend := getEnv("REVOCATION_BACKEND", "memory")
	if backend != "memory" && backend != "redis" {
		return nil, fmt.Errorf("invalid REVOCATION_BACKEND %q (want memory or redis)", backend)
	}

	rl, err := loadRateLimit()
	if err != nil {
		return nil, err
	}

	publicDir := getEnv("PUBLIC_DIR", "./public")

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: port,
		},
		Content: ContentConfig{
			PublicDir:     publicDir,
			PostsFile:     getEnv("POSTS_FILE", publicDir+"/posts.json"),
			TemplateFile:  getEnv("TEMPLATE_FILE", publicDir+"/index.html"),
			ImagesDir:     getEnv("IMAGES_DIR", publicDir+"/assets/images"),
			UploadMaxSize: maxSize,
		},
		Admin: AdminConfig{
			Username:      adminUser,
			PasswordHash:  adminHash,
			ScriptPinHash: getEnv("ADD_SCRIPT_KEY", ""),
		},
		JWT: JWTConfig{
			Secret: jwtSecret,
			Expiry: jwtExpiry,
		},
		Revocation: RevocationConfig{
			Backend:       backend,
			RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			Enforce:       enforce,
		},
		RateLimit: rl,
		Notify: NotifyConfig{
			ResendAPIKey: getEnv("RESEND_API_KEY", ""),
			From:         getEnv("NOTIFY_FROM", "blog@localhost"),
			To:           getEnv("NOTIFY_EMAIL", ""),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:14000")),
		},
	}

	return cfg, nil
}

func loadRateLimit() (RateLimitConfig, error) {
	var rl RateLimitConfig
	var err error

	if rl.LoginMax, err = strconv.Atoi(getEnv("LOGIN_RATE_LIMIT", "5")); err != nil {
		return rl, fmt.Errorf("invalid LOGIN_RATE_LIMIT: %w", err)
	}
	if rl.LoginWindow, err = time.ParseDuration(getEnv("LOGIN_RATE_WINDOW", "2m")); err != nil {
		return rl, fmt.Errorf("invalid LOGIN_RATE_WINDOW: %w", err)
	}
	if rl.CommentMax, err = strconv.Atoi(getEnv("COMMENT_RATE_LIMIT", "5")); err != nil {
		return rl, fmt.Errorf("invalid COMMENT_RATE_LIMIT: %w", err)
	}
	if rl.CommentWindow, err = time.ParseDuration(getEnv("COMMENT_RATE_WINDOW", "30s")); err != nil {
		return rl, fmt.Errorf("invalid COMMENT_RATE_WINDOW: %w", err)
	}
	if rl.CommentCooldown, err = time.ParseDuration(getEnv("COMMENT_RATE_COOLDOWN", "2m")); err != nil {
		return rl, fmt.Errorf("invalid COMMENT_RATE_COOLDOWN: %w", err)
	}
	return rl, nil
}

// expiryPattern, "2 days", "7d", "1.5h", "3600" gibi token ömürleri.
var expiryPattern = regexp.MustCompile(`(?i)^(-?\d*\.?\d+) *(milliseconds?|msecs?|ms|seconds?|secs?|s|minutes?|mins?|m|hours?|hrs?|h|days?|d|weeks?|w|years?|yrs?|y)?$`)

var expiryUnits = map[string]time.Duration{
	"ms": time.Millisecond,
	"s":  time.Second,
	"m":  time.Minute,
	"h":  time.Hour,
	"d":  24 * time.Hour,
	"w":  7 * 24 * time.Hour,
	"y":  time.Duration(365.25 * float64(24*time.Hour)),
}

// ParseExpiry, token ömrünü çözer.
//
// Eski .env dosyalarıyla uyumlu format: sayı + isteğe bağlı birim
// ("7d", "12h", "2 days", "1.5h"). Birimsiz sayı MİLİSANİYEDİR: "3600"
// 3.6 saniyedir, bir saat değil. Bunlara ek olarak Go duration formatı
// ("1h30m") da kabul edilir.
func ParseExpiry(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}

	var d time.Duration
	if m := expiryPattern.FindStringSubmatch(s); m != nil {
		n, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q: %w", s, err)
		}
		d = time.Duration(n * float64(expiryUnit(m[2])))
	} else {
		var err error
		if d, err = time.ParseDuration(s); err != nil {
			return 0, err
		}
	}

	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive")
	}
	return d, nil
}

// expiryUnit, birim adını süreye çevirir. Boş birim milisaniyedir.
func expiryUnit(unit string) time.Duration {
	unit = strings.ToLower(unit)
	switch {
	case unit == "":
		return time.Millisecond
	case strings.HasPrefix(unit, "ms"), strings.HasPrefix(unit, "millisecond"):
		return expiryUnits["ms"]
	default:
		return expiryUnits[unit[:1]]
	}
}

// Addr, HTTP server'ın dinleyeceği adresi döner (ör: "0.0.0.0:14000").
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv, environment variable'ı okur, yoksa fallback değeri döner.
func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
