package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/nullcipher-labs/mp3-album-splitter/internal/config"
	"github.com/nullcipher-labs/mp3-album-splitter/internal/split"
)

func main() {
	var (
		jobFlag      = flag.String("config", "split_config.txt", "Path to the job file")
		settingsFlag = flag.String("settings", "", "Path to an optional JSON settings file")
		verboseFlag  = flag.Bool("verbose", false, "Show verbose output")
		noWaitFlag   = flag.Bool("no-wait", false, "Do not wait for a keypress before exiting")
	)

	flag.Parse()

	settings := config.DefaultSettings()
	if *settingsFlag != "" {
		var err error
		settings, err = config.Load(*settingsFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
			os.Exit(1)
		}
	}

	runner := split.NewRunner(settings, func(event split.ProgressEvent) {
		if event.Level == split.LevelVerbose && !*verboseFlag {
			return
		}

		switch event.Level {
		case split.LevelError:
			fmt.Fprintln(os.Stderr, event.Message)
		case split.LevelWarning:
			fmt.Println("warning: " + event.Message)
		default:
			fmt.Println(event.Message)
		}
	})

	err := runner.Initialize(*jobFlag)
	if err == nil {
		err = runner.Run()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		waitForKeypress(settings, *noWaitFlag)
		os.Exit(1)
	}

	waitForKeypress(settings, *noWaitFlag)
}

func waitForKeypress(settings *config.Settings, noWait bool) {
	if noWait || !settings.WaitForKeypress {
		return
	}
	fmt.Print("\nPress Enter to exit...")
	bufio.NewReader(os.Stdin).ReadString('\n')
}
