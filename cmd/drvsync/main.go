package main

import (
	"fmt"
	"os"
)

// Version will be set at build time via -ldflags
var Version = "v0.1.0"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version":
			fmt.Printf("drvsync %s\n", Version)
			fmt.Println("Keeps chromedriver and msedgedriver in step with the installed browser")
			return
		case "--help", "-h", "help":
			printHelp()
			return
		}
	}

	if err := runSync(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println("Usage: drvsync [options] [chrome|msedge]")
	fmt.Println()
	fmt.Println("Detect the installed browser version and make sure a matching driver")
	fmt.Println("is present under <install-root>/browser_driver/<browser>/.")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --config <path>        Lua config file (default: $DRVSYNC_CONFIG)")
	fmt.Println("  --install-root <dir>   Directory that holds browser_driver/ (default: system temp dir)")
	fmt.Println("  --log-level <level>    debug, info, warn or error (default: info)")
	fmt.Println("  --log-format <format>  text or json (default: text)")
	fmt.Println("  --platform <id>        Force win32, linux64 or mac64 instead of detecting")
	fmt.Println("  --version              Show version information")
	fmt.Println("  -h, --help             Show this help message")
	fmt.Println()
	fmt.Println("Environment:")
	fmt.Println("  DRVSYNC_CONFIG, DRVSYNC_INSTALL_ROOT, DRVSYNC_CHROME_MIRROR,")
	fmt.Println("  DRVSYNC_EDGE_CDN, DRVSYNC_USER_AGENT, DRVSYNC_LOG_DIR,")
	fmt.Println("  DRVSYNC_LOG_LEVEL, DRVSYNC_LOG_FORMAT, DRVSYNC_PLATFORM")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  drvsync                         Sync chromedriver")
	fmt.Println("  drvsync msedge                  Sync msedgedriver")
	fmt.Println("  drvsync --install-root ./bin    Install under ./bin/browser_driver/")
}
