// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/wingedpig/sieve/pkg/sieve"
)

// initAnswers holds the values collected by "sieve init".
type initAnswers struct {
	Sign       string
	SourcePath string
	Resolution string
	Interval   string
	Quantity   int
	Listen     string
}

// runInit handles the "sieve init" command
func runInit(args []string, in io.Reader, out io.Writer) error {
	initFlags := flag.NewFlagSet("init", flag.ContinueOnError)
	initFlags.SetOutput(out)
	configFile := initFlags.String("file", "sieve.hjson", "Config file to create")
	showHelp := initFlags.Bool("help", false, "Show help for init command")
	initFlags.BoolVar(showHelp, "h", false, "Show help for init command")
	if err := initFlags.Parse(args); err != nil {
		return err
	}

	if *showHelp {
		fmt.Fprintln(out, `Usage: sieve init [options]

Create a commented sieve.hjson configuration file in the current directory.

Options:
  -file <path>  Config file to create (default: sieve.hjson)
  -h, -help     Show this help message

The command will ask about:
  - Session sign (label attached to every record)
  - Error feed to tail (NDJSON, one error event per line)
  - Record resolution (Low, Medium or High)
  - Automatic report triggers
  - Address for the inspection API and metrics`)
		return nil
	}

	// Check if config file already exists
	if _, err := os.Stat(*configFile); err == nil {
		return fmt.Errorf("%s already exists; remove it first or use a different directory", *configFile)
	}

	reader := bufio.NewReader(in)

	fmt.Fprintln(out, "Sieve Configuration Setup")
	fmt.Fprintln(out, "=========================")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Press Enter to accept defaults shown in [brackets].")
	fmt.Fprintln(out)

	answers := initAnswers{}
	answers.Sign = prompt(reader, out, "Session sign (empty for an anonymous sign)", "")
	answers.SourcePath = prompt(reader, out, "Error feed to tail", "errors.ndjson")

	for {
		answers.Resolution = prompt(reader, out, "Record resolution (Low, Medium, High)", "Medium")
		if tier, ok := sieve.ParseTier(answers.Resolution); ok && tier != sieve.TierUnknown {
			answers.Resolution = string(tier)
			break
		}
		fmt.Fprintln(out, "  Please answer Low, Medium or High.")
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Reports can be emitted on a timer, after a number of errors, and on panics.")
	for {
		answers.Interval = prompt(reader, out, "Report interval (e.g. 1m, or 0 to skip)", "1m")
		if answers.Interval == "0" {
			answers.Interval = ""
			break
		}
		if d, err := time.ParseDuration(answers.Interval); err == nil && d >= time.Millisecond {
			break
		}
		fmt.Fprintln(out, "  Please enter a duration of at least 1ms.")
	}

	quantity := prompt(reader, out, "Report after this many errors (0 to skip)", "50")
	answers.Quantity, _ = strconv.Atoi(quantity)

	answers.Listen = prompt(reader, out, "Inspection API address (or none to disable)", "127.0.0.1:9464")
	if strings.EqualFold(answers.Listen, "none") {
		answers.Listen = ""
	}

	if err := os.WriteFile(*configFile, []byte(generateConfig(answers)), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Created %s\n", *configFile)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintf(out, "  1. Review and edit %s as needed\n", *configFile)
	fmt.Fprintln(out, "  2. Run: ./sieve")
	fmt.Fprintln(out)

	return nil
}

func prompt(reader *bufio.Reader, out io.Writer, question, defaultVal string) string {
	if defaultVal != "" {
		fmt.Fprintf(out, "%s [%s]: ", question, defaultVal)
	} else {
		fmt.Fprintf(out, "%s: ", question)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return defaultVal
	}
	return input
}

// escapeHJSONValue escapes a string for safe inclusion in an HJSON double-quoted value.
func escapeHJSONValue(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return s
}

func generateConfig(a initAnswers) string {
	var sb strings.Builder

	sb.WriteString(`{
  // =============================================================================
  // Sieve Configuration
  // =============================================================================
  //
  // This is an HJSON file (JSON with comments and relaxed syntax).

  // Label attached to every record and report.
`)
	if a.Sign != "" {
		sb.WriteString(`  sign: "` + escapeHJSONValue(a.Sign) + "\"\n")
	} else {
		sb.WriteString(`  // sign: "checkout"` + "\n")
	}

	sb.WriteString(`
  // Detail level of records: "Low", "Medium" or "High".
  response_resolution: "` + escapeHJSONValue(a.Resolution) + `"

  // ---------------------------------------------------------------------------
  // Filtering
  // ---------------------------------------------------------------------------
  //
  // Error types: Reference, Syntax, Type, Range, Eval, Uri, ByEmit, Unknown.
  // exclude_types: ["Syntax"]

  // Messages matching any of these regular expressions are dropped.
  // exclude_messages: ["ResizeObserver loop"]

  // Messages matching any of these are flagged as panics.
  // panic_messages: ["out of memory"]

  // exclude_browsers: ["Internet Explorer"]
  // exclude_mobile: false
  // exclude_desktop: false

  // Suppress the source's default handling of captured errors.
  // prevent_errors_default: false

  // Log every dropped error.
  // debug: false

  // ---------------------------------------------------------------------------
  // Automatic Reports
  // ---------------------------------------------------------------------------
  auto_report_triggers: [
`)
	if a.Interval != "" {
		sb.WriteString(`    { type: "TimeInterval", interval: "` + escapeHJSONValue(a.Interval) + `" }` + "\n")
	}
	if a.Quantity > 0 {
		sb.WriteString(`    { type: "ErrorsQuantity", value: ` + strconv.Itoa(a.Quantity) + ` }` + "\n")
	}
	sb.WriteString(`    { type: "Panic" }
  ]

  // ---------------------------------------------------------------------------
  // Platform
  // ---------------------------------------------------------------------------
  //
  // Describes where errors come from. Without a user agent the host process
  // is described.
  // platform: {
  //   user_agent: "Mozilla/5.0 ..."
  //   lang: "en-US"
  //   url: "https://example.com"
  //   width: 1280
  //   height: 720
  // }

  // ---------------------------------------------------------------------------
  // Error Feed
  // ---------------------------------------------------------------------------
  source: {
    // NDJSON file, one error event per line
    path: "` + escapeHJSONValue(a.SourcePath) + `"

    // Read errors already in the file at startup
    // from_start: false
  }

  // ---------------------------------------------------------------------------
  // Logging
  // ---------------------------------------------------------------------------
  logging: {
    level: "info"
    format: "text"
  }
`)

	if a.Listen != "" {
		sb.WriteString(`
  // ---------------------------------------------------------------------------
  // Inspection API and Prometheus metrics
  // ---------------------------------------------------------------------------
  metrics: {
    listen: "` + escapeHJSONValue(a.Listen) + `"
    path: "/metrics"
  }
`)
	}

	sb.WriteString("}\n")
	return sb.String()
}
