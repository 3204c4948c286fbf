package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/appsqueeze/wpslider/internal/carousel"
	"github.com/appsqueeze/wpslider/internal/database"
	"github.com/appsqueeze/wpslider/internal/docs"
	"github.com/appsqueeze/wpslider/internal/geoip"
	"github.com/appsqueeze/wpslider/internal/player"
	"github.com/appsqueeze/wpslider/internal/playlist"
	"github.com/appsqueeze/wpslider/internal/proxy"
	"github.com/appsqueeze/wpslider/internal/ratelimit"
	"github.com/appsqueeze/wpslider/internal/server"
	"github.com/appsqueeze/wpslider/internal/storage"
	"github.com/appsqueeze/wpslider/internal/validate"
)

func main() {
	slog.SetDefault(newLogger(getEnv("LOG_FORMAT", "text"), os.Stderr))

	port := getEnv("PORT", "8080")
	baseURL := getEnv("BASE_URL", "http://localhost:8080")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	source, pinger, closeSource, err := newSource(ctx, getEnv("PLAYLIST_SOURCE", "remote"))
	if err != nil {
		log.Fatalf("playlist source initialization failed: %v", err)
	}
	defer closeSource()

	geo, _ := geoip.New(os.Getenv("GEOIP_DB_PATH"))
	defer func() { _ = geo.Close() }()

	var signer *proxy.Signer
	if secret := os.Getenv("PROXY_SIGNING_SECRET"); secret != "" {
		signer = proxy.NewSigner(secret, getEnvDuration("PROXY_TOKEN_TTL", proxy.DefaultTokenTTL))
		log.Println("proxy link signing enabled")
	}

	allowedHosts := getEnvList("PROXY_ALLOWED_HOSTS")
	for _, host := range allowedHosts {
		if msg := validate.AllowedHost(host); msg != "" {
			log.Fatalf("invalid PROXY_ALLOWED_HOSTS: %s", msg)
		}
	}
	proxyHandler := proxy.New(proxy.Config{
		Timeout:      getEnvDuration("PROXY_TIMEOUT", proxy.DefaultTimeout),
		AllowedHosts: allowedHosts,
		Signer:       signer,
	})
	if len(allowedHosts) == 0 {
		slog.Warn("proxy: no PROXY_ALLOWED_HOSTS set, relaying to any host")
	}

	carouselHandler := carousel.NewHandler(carousel.Config{
		Source:           source,
		Pool:             player.NewPool(getEnvDuration("MANIFEST_TIMEOUT", player.DefaultManifestTimeout)),
		ProxyImages:      getEnv("CAROUSEL_PROXY_IMAGES", "false") == "true",
		Signer:           signer,
		ProbeConcurrency: int(getEnvInt64("CAROUSEL_PROBE_CONCURRENCY", carousel.DefaultProbeConcurrency)),
		Probes:           carousel.NewProbeCache(getEnvDuration("CAROUSEL_PROBE_TTL", carousel.DefaultProbeTTL)),
	}, carousel.Assets{
		HLSScript:    os.Getenv("HLS_SCRIPT_URL"),
		SwiperScript: os.Getenv("SWIPER_SCRIPT_URL"),
		SwiperStyle:  os.Getenv("SWIPER_STYLE_URL"),
	})

	runCtx, stop := context.WithCancel(context.Background())
	defer stop()
	limiter := ratelimit.NewLimiter(getEnvFloat("PROXY_RATE_LIMIT", 10), int(getEnvInt64("PROXY_RATE_BURST", 20)))
	go limiter.Run(runCtx)

	var assetsFS fs.FS
	if dir := os.Getenv("ASSETS_DIR"); dir != "" {
		assetsFS = os.DirFS(dir)
		log.Printf("serving local assets from %s", dir)
	}

	mediaSources := getEnvList("MEDIA_SOURCES")
	if len(mediaSources) == 0 {
		mediaSources = []string{"https:"}
	}
	assets := carouselHandler.Assets()

	var reference *docs.Handler
	if getEnv("API_DOCS_ENABLED", "false") == "true" {
		reference, err = docs.New(docs.Config{ReferenceScript: os.Getenv("API_DOCS_SCRIPT_URL")})
		if err != nil {
			log.Fatalf("API docs initialization failed: %v", err)
		}
	}

	srv := server.New(server.Config{
		Pinger:       pinger,
		Proxy:        proxyHandler,
		Carousel:     carouselHandler,
		ProxyLimiter: limiter,
		GeoIP:        geo,
		AssetsFS:     assetsFS,
		BaseURL:      baseURL,
		Docs:         reference,
		Security: server.SecurityConfig{
			ScriptSources: []string{assets.HLSScript, assets.SwiperScript},
			StyleSources:  []string{assets.SwiperStyle},
			MediaSources:  mediaSources,
		},
	})

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		// Proxied video bodies stream for as long as the client reads.
		WriteTimeout: 0,
		IdleTimeout:  120 * time.Second,
	}

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("wpslider listening on :%s", port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-shutdownCh
	log.Println("shutting down...")
	stop()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("shutdown failed: %v", err)
	}
	log.Println("shutdown complete")
}

// newSource builds the playlist source named by kind. The returned Pinger is
// non-nil only for sources the health check should watch.
func newSource(ctx context.Context, kind string) (playlist.Source, server.Pinger, func(), error) {
	noop := func() {}

	switch kind {
	case "", "remote":
		return playlist.NewRemoteSource(
			os.Getenv("PLAYLIST_URL"),
			getEnvDuration("PLAYLIST_TIMEOUT", playlist.DefaultTimeout),
		), nil, noop, nil

	case "static":
		entries, err := playlist.ParseStatic(os.Getenv("PLAYLIST_STATIC"))
		if err != nil {
			return nil, nil, noop, err
		}
		log.Printf("static playlist loaded (%d entries)", len(entries))
		return playlist.NewStaticSource(entries), nil, noop, nil

	case "database":
		databaseURL := os.Getenv("DATABASE_URL")
		if databaseURL == "" {
			return nil, nil, noop, errors.New("DATABASE_URL is required for the database playlist source")
		}
		db, err := database.Connect(ctx, databaseURL)
		if err != nil {
			return nil, nil, noop, fmt.Errorf("database connection failed: %w", err)
		}
		if err := db.Migrate(databaseURL); err != nil {
			db.Close()
			return nil, nil, noop, fmt.Errorf("database migration failed: %w", err)
		}
		log.Println("database migrations applied")
		return playlist.NewDatabaseSource(db.Pool), db, db.Close, nil

	case "bucket":
		store, err := storage.New(ctx, storage.Config{
			Endpoint:       getEnv("S3_ENDPOINT", "http://localhost:3900"),
			PublicEndpoint: os.Getenv("S3_PUBLIC_ENDPOINT"),
			Bucket:         getEnv("S3_BUCKET", "wallpapers"),
			AccessKey:      os.Getenv("S3_ACCESS_KEY"),
			SecretKey:      os.Getenv("S3_SECRET_KEY"),
			Region:         getEnv("S3_REGION", "eu-central-1"),
		})
		if err != nil {
			return nil, nil, noop, fmt.Errorf("storage initialization failed: %w", err)
		}
		if err := store.Ping(ctx); err != nil {
			return nil, nil, noop, fmt.Errorf("storage bucket check failed: %w", err)
		}
		log.Println("storage bucket ready")
		return playlist.NewBucketSource(store, getEnv("PLAYLIST_BUCKET_KEY", "playlist.json")), nil, noop, nil

	default:
		return nil, nil, noop, fmt.Errorf("unknown PLAYLIST_SOURCE %q", kind)
	}
}

func newLogger(format string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

// getEnvDuration accepts Go durations ("15s") or whole seconds ("15").
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	if parsed, err := time.ParseDuration(value); err == nil {
		return parsed
	}
	if seconds, err := strconv.ParseInt(value, 10, 64); err == nil {
		return time.Duration(seconds) * time.Second
	}
	return fallback
}

func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
