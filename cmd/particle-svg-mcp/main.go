package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/ironsheep/particle-svg-mcp/internal/export"
	"github.com/ironsheep/particle-svg-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("particle-svg-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			fmt.Printf("  WEBP export: %v\n", export.WEBPAvailable)
			return
		case "--help", "-h", "help":
			fmt.Println("particle-svg-mcp - MCP server that turns images into particle-art SVG")
			fmt.Println()
			fmt.Println("Usage: particle-svg-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  PARTICLE_MCP_LOG_LEVEL=debug    Enable debug logging")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg := server.DefaultConfig()

	if os.Getenv("PARTICLE_MCP_LOG_LEVEL") == "debug" {
		log.Printf("Particle SVG MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		cfg.Logger = logger
		export.SetLogger(logger)
	}

	srv := server.NewWithConfig(cfg)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
