package main

import (
	"fmt"
	"os"

	"github.com/ironsheep/threshold-mcp/internal/config"
	"github.com/ironsheep/threshold-mcp/internal/logger"
	"github.com/ironsheep/threshold-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("threshold-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printHelp()
			return
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "threshold-mcp: %v\n", err)
		os.Exit(2)
	}

	// Logs go to stderr; stdout is for MCP protocol or the binarize summary.
	log := logger.NewFromConfig(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	if len(os.Args) > 1 && os.Args[1] == "binarize" {
		if err := runBinarize(os.Args[2:], cfg, log, os.Stdout); err != nil {
			log.Error("cli", err, nil)
			os.Exit(1)
		}
		return
	}

	log.Debug("main", "starting server", map[string]interface{}{
		"version":    Version,
		"build_time": BuildTime,
		"git_commit": GitCommit,
		"strategy":   cfg.Strategy.String(),
	})

	srv := server.NewWithConfig(cfg, log)
	if err := srv.Run(); err != nil {
		log.Error("main", err, nil)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println("threshold-mcp - global intensity thresholding over MCP")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  threshold-mcp [options]                 Run the MCP server on stdin/stdout")
	fmt.Println("  threshold-mcp binarize [flags] in out   Threshold one image and save it")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Binarize flags:")
	fmt.Println("  -strategy s         cumulative, histogram or pixel")
	fmt.Println("  -max-iterations n   Iteration cap")
	fmt.Println("  -workers n          Row bands scanned concurrently by the pixel strategy")
	fmt.Println("  -gray-method m      luma or lightness")
	fmt.Println()
	fmt.Println("Environment variables (also read from ./.env):")
	fmt.Printf("  %s=debug|info|warn|error\n", config.EnvLogLevel)
	fmt.Printf("  %s=json|console\n", config.EnvLogFormat)
	fmt.Printf("  %s=cumulative|histogram|pixel\n", config.EnvStrategy)
	fmt.Printf("  %s=n\n", config.EnvMaxIterations)
	fmt.Printf("  %s=n\n", config.EnvWorkers)
	fmt.Printf("  %s=luma|lightness\n", config.EnvGrayMethod)
	fmt.Println()
	fmt.Println("In server mode configure it in your MCP client (e.g., Claude Desktop).")
}
