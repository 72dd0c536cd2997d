package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	log "github.com/go-pkgz/lgr"
	"github.com/umputun/go-flags"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/umputun/wagetrack/app/store"
	"github.com/umputun/wagetrack/app/web"
)

var opts struct {
	Listen    string  `short:"l" long:"listen" env:"WAGETRACK_LISTEN" default:":8080" description:"web server listen address"`
	DB        string  `long:"db" env:"WAGETRACK_DB" default:"wage.db" description:"sqlite database file"`
	BaseURL   string  `long:"base-url" env:"WAGETRACK_BASE_URL" description:"base URL path for reverse proxy (e.g., /wages)"`
	Hostname  string  `long:"hostname" env:"WAGETRACK_HOSTNAME" description:"hostname to display in UI"`
	PostLimit float64 `long:"post-limit" env:"WAGETRACK_POST_LIMIT" default:"10" description:"max form submissions per second per client"`
	Dbg       bool    `long:"dbg" env:"WAGETRACK_DEBUG" description:"debug mode"`

	Log struct {
		Enabled         bool   `long:"enabled" env:"ENABLED" description:"enable logging"`
		Filename        string `long:"file" env:"FILE" description:"log file, stdout if not set"`
		MaxSize         int    `long:"max-size" env:"MAX_SIZE" default:"100" description:"max log file size in megabytes"`
		MaxAge          int    `long:"max-age" env:"MAX_AGE" default:"0" description:"max days to keep old log files, 0 to keep all"`
		MaxBackups      int    `long:"max-backups" env:"MAX_BACKUPS" default:"7" description:"max number of old log files"`
		EnabledCompress bool   `long:"compress" env:"COMPRESS" description:"compress rotated log files"`
	} `group:"log" namespace:"log" env-namespace:"WAGETRACK_LOG"`
}

var revision = "unknown"

func main() {
	fmt.Printf("wagetrack %s\n", revision)

	if _, err := flags.Parse(&opts); err != nil {
		os.Exit(2)
	}
	logOut := setupLogs()
	defer closeLogs(logOut)

	defer func() {
		if x := recover(); x != nil {
			log.Printf("[WARN] run time panic:\n%v", x)
			panic(x)
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	signals() // handle SIGQUIT

	if err := run(ctx); err != nil {
		log.Fatalf("[ERROR] %v", err)
	}
}

// run opens the store and serves the web UI until ctx is canceled
func run(ctx context.Context) error {
	st, err := store.NewSQLiteStore(ctx, opts.DB)
	if err != nil {
		return fmt.Errorf("failed to open store %s: %w", opts.DB, err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Printf("[WARN] failed to close store: %v", err)
		}
	}()

	srv, err := web.New(web.Config{
		Store:     st,
		BaseURL:   validateBaseURL(opts.BaseURL),
		Hostname:  makeHostName(),
		Version:   revision,
		PostLimit: opts.PostLimit,
	})
	if err != nil {
		return err
	}
	return srv.Run(ctx, opts.Listen)
}

func makeHostName() string {
	if opts.Hostname != "" {
		return opts.Hostname
	}
	host, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return host
}

// validateBaseURL normalizes base URL to "/path" form, empty for root
func validateBaseURL(baseURL string) string {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return ""
	}
	if !strings.HasPrefix(baseURL, "/") {
		baseURL = "/" + baseURL
	}
	return baseURL
}

// setupLogs configures lgr and returns the writer used for regular log output
func setupLogs() io.Writer {
	if !opts.Log.Enabled {
		// errors still reach stderr
		log.Setup(log.Out(io.Discard), log.Err(os.Stderr))
		return io.Discard
	}

	var out io.Writer = os.Stdout
	if opts.Log.Filename != "" {
		out = &lumberjack.Logger{
			Filename:   opts.Log.Filename,
			MaxSize:    opts.Log.MaxSize,
			MaxBackups: opts.Log.MaxBackups,
			MaxAge:     opts.Log.MaxAge,
			Compress:   opts.Log.EnabledCompress,
		}
	}

	if opts.Dbg {
		log.Setup(log.Out(out), log.Err(out), log.Debug, log.Msec, log.CallerFunc, log.CallerPkg, log.CallerFile)
		return out
	}
	log.Setup(log.Out(out), log.Err(out), log.Msec)
	return out
}

// closeLogs closes the rotating log file, other writers are left alone
func closeLogs(w io.Writer) {
	lj, ok := w.(*lumberjack.Logger)
	if !ok {
		return
	}
	if err := lj.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
	}
}

func signals() {
	// catch SIGQUIT and print stack traces
	sigChan := make(chan os.Signal, 1)
	go func() {
		stacktrace := make([]byte, 8192)
		for range sigChan {
			length := runtime.Stack(stacktrace, true)
			fmt.Println(string(stacktrace[:length]))
		}
	}()
	signal.Notify(sigChan, syscall.SIGQUIT)
}
