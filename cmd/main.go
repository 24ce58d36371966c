// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"telescan/internal/config"
	"telescan/internal/report"
	"telescan/internal/scanner"
	"telescan/internal/version"
	"telescan/pkg/metadata"
	"telescan/pkg/phonenumber"

	_ "telescan/internal/report/csv"
	_ "telescan/internal/report/json"
	_ "telescan/internal/report/text"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// cliFlags holds command line flag values
type cliFlags struct {
	file        string
	parse       string
	validate    string
	region      string
	leniency    string
	format      string
	maxTries    int
	configFile  string
	profile     string
	recursive   bool
	verbose     bool
	noColor     bool
	validOnly   bool
	showVersion bool
	listFormats bool
	listRegions bool
}

// settings holds resolved configuration values after merging config file,
// profile and flags
type settings struct {
	region    string
	leniency  phonenumber.Leniency
	format    string
	maxTries  int
	recursive bool
	verbose   bool
	noColor   bool
	validOnly bool
}

func main() {
	flags := parseFlags()

	if flags.showVersion {
		fmt.Println(version.Info())
		return
	}
	if flags.listFormats {
		listFormats()
		return
	}

	repo, err := metadata.NewRepository()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading number rules: %v\n", err)
		os.Exit(1)
	}
	util := phonenumber.NewUtil(repo)

	if flags.listRegions {
		fmt.Println(strings.Join(util.SupportedRegions(), " "))
		return
	}

	resolved, err := resolveSettings(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if resolved.noColor {
		color.NoColor = true
	}

	switch {
	case flags.parse != "":
		if err := runParse(util, flags.parse, resolved); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case flags.validate != "":
		valid, err := runValidate(util, flags.validate, resolved)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if !valid {
			os.Exit(1)
		}
	case flags.file != "":
		if err := runScan(util, flags.file, resolved); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		printUsage()
		os.Exit(2)
	}
}

func parseFlags() *cliFlags {
	flags := &cliFlags{}
	flag.StringVar(&flags.file, "file", "", "File or directory to scan for phone numbers")
	flag.StringVar(&flags.parse, "parse", "", "Parse a single phone number and describe it")
	flag.StringVar(&flags.validate, "validate", "", "Validate a single phone number (exit 1 when invalid)")
	flag.StringVar(&flags.region, "region", "", "Default region for numbers without a calling code (e.g. US)")
	flag.StringVar(&flags.leniency, "leniency", "", "Matching leniency: POSSIBLE, VALID, STRICT_GROUPING, EXACT_GROUPING")
	flag.StringVar(&flags.format, "format", "", "Output format (see -list-formats)")
	flag.IntVar(&flags.maxTries, "max-tries", 0, "Matcher work budget per input")
	flag.StringVar(&flags.configFile, "config", "", "Path to configuration file")
	flag.StringVar(&flags.profile, "profile", "", "Configuration profile to apply")
	flag.BoolVar(&flags.recursive, "recursive", false, "Scan directories recursively")
	flag.BoolVar(&flags.verbose, "verbose", false, "Show detailed output")
	flag.BoolVar(&flags.noColor, "no-color", false, "Disable colored output")
	flag.BoolVar(&flags.validOnly, "valid-only", false, "Report only fully valid numbers")
	flag.BoolVar(&flags.showVersion, "version", false, "Show version information")
	flag.BoolVar(&flags.listFormats, "list-formats", false, "List available output formats")
	flag.BoolVar(&flags.listRegions, "list-regions", false, "List supported regions")
	flag.Usage = printUsage
	flag.Parse()

	// A bare positional argument is treated as the scan target.
	if flags.file == "" && flag.NArg() > 0 {
		flags.file = flag.Arg(0)
	}
	return flags
}

// resolveSettings merges the config file, the selected profile, and explicit
// flags, in increasing order of precedence.
func resolveSettings(flags *cliFlags) (*settings, error) {
	cfg := config.LoadConfigOrDefault(flags.configFile)

	resolved := &settings{
		region:    cfg.Defaults.Region,
		format:    cfg.Defaults.Format,
		maxTries:  cfg.Defaults.MaxTries,
		recursive: cfg.Defaults.Recursive,
		verbose:   cfg.Defaults.Verbose,
		noColor:   cfg.Defaults.NoColor,
		validOnly: cfg.Defaults.ValidOnly,
	}
	leniency := cfg.Defaults.Leniency

	if flags.profile != "" {
		profile := cfg.GetProfile(flags.profile)
		if profile == nil {
			return nil, fmt.Errorf("unknown profile %q (available: %s)",
				flags.profile, strings.Join(cfg.ListProfiles(), ", "))
		}
		if profile.Region != "" {
			resolved.region = profile.Region
		}
		if profile.Leniency != "" {
			leniency = profile.Leniency
		}
		if profile.Format != "" {
			resolved.format = profile.Format
		}
		if profile.MaxTries > 0 {
			resolved.maxTries = profile.MaxTries
		}
		resolved.recursive = resolved.recursive || profile.Recursive
		resolved.verbose = resolved.verbose || profile.Verbose
		resolved.noColor = resolved.noColor || profile.NoColor
		resolved.validOnly = resolved.validOnly || profile.ValidOnly
	}

	if flags.region != "" {
		resolved.region = strings.ToUpper(flags.region)
	}
	if flags.leniency != "" {
		leniency = flags.leniency
	}
	if flags.format != "" {
		resolved.format = flags.format
	}
	if flags.maxTries > 0 {
		resolved.maxTries = flags.maxTries
	}
	resolved.recursive = resolved.recursive || flags.recursive
	resolved.verbose = resolved.verbose || flags.verbose
	resolved.noColor = resolved.noColor || flags.noColor
	resolved.validOnly = resolved.validOnly || flags.validOnly

	parsed, err := scanner.ParseLeniency(leniency)
	if err != nil {
		return nil, err
	}
	resolved.leniency = parsed

	// Color output only makes sense on a terminal.
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		resolved.noColor = true
	}
	return resolved, nil
}

// runScan scans a file or directory and prints the findings in the selected
// format. It exits non-zero via the caller if anything was found invalid to
// read, but partial results are still printed.
func runScan(util *phonenumber.Util, path string, resolved *settings) error {
	s := scanner.New(util, scanner.Options{
		DefaultRegion: resolved.region,
		Leniency:      resolved.leniency,
		MaxTries:      resolved.maxTries,
	})

	findings, scanErr := s.ScanPath(path, resolved.recursive)

	output, err := report.Export(resolved.format, findings, report.FormatterOptions{
		Verbose:   resolved.verbose,
		NoColor:   resolved.noColor,
		ValidOnly: resolved.validOnly,
	})
	if err != nil {
		return err
	}
	if output != "" {
		fmt.Println(output)
	}
	return scanErr
}

// runParse parses one number and prints everything the engine knows about it.
func runParse(util *phonenumber.Util, input string, resolved *settings) error {
	n, err := util.ParseAndKeepRawInput(input, resolved.region)
	if err != nil {
		return fmt.Errorf("parsing %q: %w", input, err)
	}

	label := color.New(color.FgCyan).SprintFunc()
	valid := util.IsValidNumber(n)
	validity := color.GreenString("valid")
	if !valid {
		validity = color.YellowString(util.IsPossibleNumberWithReason(n).String())
	}

	fmt.Printf("%s %s\n", label("input:"), input)
	fmt.Printf("%s %s\n", label("status:"), validity)
	fmt.Printf("%s %s\n", label("region:"), util.RegionCodeForNumber(n))
	fmt.Printf("%s %s\n", label("type:"), util.NumberType(n).String())
	fmt.Printf("%s +%d\n", label("country code:"), n.CountryCode)
	fmt.Printf("%s %s\n", label("national number:"), util.NationalSignificantNumber(n))
	fmt.Printf("%s %s\n", label("E164:"), util.Format(n, phonenumber.E164))
	fmt.Printf("%s %s\n", label("international:"), util.Format(n, phonenumber.International))
	fmt.Printf("%s %s\n", label("national:"), util.Format(n, phonenumber.National))
	fmt.Printf("%s %s\n", label("RFC3966:"), util.Format(n, phonenumber.RFC3966))
	if resolved.verbose {
		fmt.Printf("%s %s\n", label("country code source:"), n.CountryCodeSource.String())
		if n.Extension != "" {
			fmt.Printf("%s %s\n", label("extension:"), n.Extension)
		}
	}
	return nil
}

// runValidate checks a single number and reports validity. The exit status
// carries the verdict for script use.
func runValidate(util *phonenumber.Util, input string, resolved *settings) (bool, error) {
	n, err := util.Parse(input, resolved.region)
	if err != nil {
		return false, fmt.Errorf("parsing %q: %w", input, err)
	}
	if util.IsValidNumber(n) {
		fmt.Printf("%s: %s (%s, %s)\n", input, color.GreenString("valid"),
			util.RegionCodeForNumber(n), util.NumberType(n).String())
		return true, nil
	}
	fmt.Printf("%s: %s (%s)\n", input, color.YellowString("invalid"),
		util.IsPossibleNumberWithReason(n).String())
	return false, nil
}

func listFormats() {
	fmt.Println("Available output formats:")
	for _, name := range report.List() {
		formatter, _ := report.Get(name)
		fmt.Printf("  %-8s %s\n", name, formatter.Description())
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `telescan - find, parse and validate phone numbers

Usage:
  telescan -file <path> [options]     Scan a file or directory
  telescan -parse <number> [options]  Parse and describe one number
  telescan -validate <number> [options]  Check one number (exit 1 when invalid)
  telescan -version                   Show version information

Options:
`)
	flag.PrintDefaults()
}
