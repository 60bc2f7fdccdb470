package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/ironsheep/raster-tools/internal/logging"
	"github.com/ironsheep/raster-tools/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// envSwapRB selects blue-green-red triple order for color tools.
const envSwapRB = "RASTER_MCP_SWAP_RB"

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("raster-tools-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("raster-tools-mcp - MCP server for gray and color raster processing")
			fmt.Println()
			fmt.Println("Usage: raster-tools-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  RASTER_MCP_LOG_LEVEL=debug      Log level (debug, info, warn, error)")
			fmt.Println("  RASTER_MCP_LOG_FILE=/path.log   Log to a rotated file instead of stderr")
			fmt.Println("  RASTER_MCP_LOG_JSON=true        Log as JSON")
			fmt.Println("  RASTER_MCP_SWAP_RB=true         Read P6 triples as blue, green, red")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			return
		}
	}

	ctx, cnc := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cnc()

	// stdout is for MCP protocol
	logger, closer := logging.New(logging.ConfigFromEnv())
	defer closer.Close()
	slog.SetDefault(logger)

	ctx = logging.AppendCtx(ctx, slog.Group("raster",
		slog.String("name", "raster-tools-mcp"),
		slog.String("version", Version),
		slog.String("git", GitCommit),
	))
	slog.DebugContext(ctx, "starting", "built", BuildTime)

	swap, _ := strconv.ParseBool(os.Getenv(envSwapRB))
	server.Version = Version

	srv := server.New(server.WithLogger(logger), server.WithSwapRB(swap))
	if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
		slog.ErrorContext(ctx, "server error", "error", err)
		closer.Close()
		os.Exit(1)
	}
}
