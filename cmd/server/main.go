package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/baditaflorin/l"
	"github.com/valyala/fasthttp"

	"github.com/baditaflorin/go_ngram_similarity/internal/adapters/extract"
	stdlogger "github.com/baditaflorin/go_ngram_similarity/internal/adapters/logger"
	"github.com/baditaflorin/go_ngram_similarity/internal/adapters/normalizer"
	"github.com/baditaflorin/go_ngram_similarity/internal/server"
	"github.com/baditaflorin/go_ngram_similarity/internal/warmup"
	"github.com/baditaflorin/go_ngram_similarity/pkg/analysis"
	"github.com/baditaflorin/go_ngram_similarity/pkg/shorttext"
)

// Default configuration
const (
	DefaultPort            = 8080
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultMaxRequestSize  = 50 * 1024 * 1024 // 50MB, two uploaded documents
	DefaultConcurrency     = 0                // 0 means use GOMAXPROCS
	DefaultAnalysisTimeout = 60 * time.Second
	DefaultCacheSize       = 256
)

func main() {
	// Parse command-line flags
	port := flag.Int("port", DefaultPort, "HTTP server port")
	readTimeout := flag.Duration("read-timeout", DefaultReadTimeout, "HTTP read timeout")
	writeTimeout := flag.Duration("write-timeout", DefaultWriteTimeout, "HTTP write timeout")
	maxRequestSize := flag.Int("max-request-size", DefaultMaxRequestSize, "Maximum request size in bytes")
	concurrency := flag.Int("concurrency", DefaultConcurrency, "Maximum number of concurrent requests (0 = GOMAXPROCS)")
	analysisTimeout := flag.Duration("analysis-timeout", DefaultAnalysisTimeout, "Maximum duration of a single analysis")
	maxAnalyses := flag.Int64("max-analyses", int64(runtime.NumCPU()), "Maximum number of analyses running at once")
	cacheSize := flag.Int("cache-size", DefaultCacheSize, "Number of analysis results kept in memory (0 = disabled)")
	warmUp := flag.Bool("warm-up", true, "Perform system warm-up on startup")
	logFile := flag.String("log-file", "", "Log file path (empty = stdout)")
	flag.Parse()

	logger, err := createLogger(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	logger.Info("Starting n-gram similarity HTTP server",
		"port", *port,
		"read_timeout", *readTimeout,
		"write_timeout", *writeTimeout,
		"max_request_size", *maxRequestSize,
		"concurrency", *concurrency,
		"analysis_timeout", *analysisTimeout,
		"max_analyses", *maxAnalyses,
		"cache_size", *cacheSize,
	)

	opts := []analysis.Option{
		analysis.WithLogger(logger),
		analysis.WithTimeout(*analysisTimeout),
		analysis.WithMaxConcurrent(*maxAnalyses),
		analysis.WithCacheSize(*cacheSize),
	}
	analyzer, err := analysis.New(opts...)
	if err != nil {
		logger.Error("Failed to initialize analyzer", "error", err)
		os.Exit(1)
	}

	comparator, err := shorttext.New(
		shorttext.WithLogger(logger),
		shorttext.WithOptimizedNormalizer(),
	)
	if err != nil {
		logger.Error("Failed to initialize short text comparator", "error", err)
		os.Exit(1)
	}

	portsLogger := stdlogger.FromExisting(logger)
	srv := server.New(portsLogger, analyzer, comparator, extract.NewExtractor(portsLogger))

	if *warmUp {
		mgr := warmup.NewManager(portsLogger, warmup.DefaultWarmupConfig())
		mgr.RegisterAnalyzer(analyzer.Uncached())
		mgr.RegisterShortTextComparator(comparator)
		mgr.RegisterNormalizer(normalizer.NewNormalizerFactory().CreateNormalizer(normalizer.OptimizedNormalizerType))
		mgr.WarmUp(context.Background())
	}

	logger.Info("Analysis components initialized successfully",
		"warm_up", *warmUp,
		"cpus", runtime.NumCPU(),
	)

	httpServer := &fasthttp.Server{
		Handler:               srv.Handler,
		ReadTimeout:           *readTimeout,
		WriteTimeout:          *writeTimeout,
		MaxRequestBodySize:    *maxRequestSize,
		Concurrency:           *concurrency,
		TCPKeepalive:          true,
		TCPKeepalivePeriod:    3 * time.Minute,
		MaxIdleWorkerDuration: 10 * time.Second,
		Logger:                nil, // requests are logged by the handler
	}

	// Set up graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		logger.Info("Shutting down server...")
		if err := httpServer.Shutdown(); err != nil {
			logger.Error("Error during server shutdown", "error", err)
		}
		close(idleConnsClosed)
	}()

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("Server listening", "address", addr)
	if err := httpServer.ListenAndServe(addr); err != nil {
		logger.Error("Server error", "error", err)
		return
	}

	<-idleConnsClosed
	logger.Info("Server stopped")
}

// createLogger creates and configures a logger
func createLogger(logFile string) (l.Logger, error) {
	var output io.Writer = os.Stdout
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		output = file
	}

	logger, err := l.NewStandardFactory().CreateLogger(l.Config{
		Output:      output,
		JsonFormat:  true,
		AsyncWrite:  true,
		BufferSize:  1024 * 1024,       // 1MB
		MaxFileSize: 100 * 1024 * 1024, // 100MB
		MaxBackups:  5,
		AddSource:   true,
		Metrics:     true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return logger, nil
}
