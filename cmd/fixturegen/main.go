package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/c-m-hunt/fixture-generator/internal/config"
	"github.com/c-m-hunt/fixture-generator/internal/loader"
	"github.com/c-m-hunt/fixture-generator/internal/logging"
	"github.com/c-m-hunt/fixture-generator/internal/output"
	"github.com/c-m-hunt/fixture-generator/internal/solver"
	"github.com/c-m-hunt/fixture-generator/internal/validate"
)

const defaultConfigFile = "solver.yaml"

func resolveConfigPath(path string) string {
	if path != "" {
		return path
	}
	return defaultConfigFile
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "fixturegen",
		Short: "Cricket league fixture generator",
	}

	var verbose bool
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	cobra.OnInitialize(func() {
		if verbose {
			logging.SetLevel(logrus.DebugLevel)
		}
	})

	var inputDir, outputDir, configPath string
	var seed int64
	var withExcel, withHTML bool
	generateCmd := &cobra.Command{
		Use:          "generate",
		Short:        "Generate a season's fixtures from the CSV inputs in a directory",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(inputDir, outputDir, resolveConfigPath(configPath), seed, withExcel, withHTML)
		},
	}
	generateCmd.Flags().StringVar(&inputDir, "input-dir", ".", "directory containing divisions.csv, fixReq.csv, venReq.csv, venConflicts.csv")
	generateCmd.Flags().StringVar(&outputDir, "output-dir", ".", "directory to write fixtures.csv and grid output to")
	generateCmd.Flags().StringVar(&configPath, "config", "", "solver policy file (default solver.yaml if present)")
	generateCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 picks one and reports it)")
	generateCmd.Flags().BoolVar(&withExcel, "excel", false, "also write fixtures.xlsx")
	generateCmd.Flags().BoolVar(&withHTML, "html", false, "also write grid.html")

	validateCmd := &cobra.Command{
		Use:          "validate <fixtures.csv>",
		Short:        "Re-check a fixtures.csv against every hard and soft rule",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(args[0])
		},
	}

	var initOutputPath string
	initCmd := &cobra.Command{
		Use:          "init",
		Short:        "Write a starter solver.yaml in the current directory",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(initOutputPath)
		},
	}
	initCmd.Flags().StringVarP(&initOutputPath, "output", "o", defaultConfigFile, "output path for the config file")

	rootCmd.AddCommand(generateCmd, validateCmd, initCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runInit(outputPath string) error {
	if _, err := os.Stat(outputPath); err == nil {
		return fmt.Errorf("%s already exists; remove it first or use -o to write elsewhere", outputPath)
	}
	if err := os.WriteFile(outputPath, []byte(config.Template), 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	fmt.Printf("Created %s\n", outputPath)
	return nil
}

func runGenerate(inputDir, outputDir, configPath string, seed int64, withExcel, withHTML bool) error {
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	divisions, err := loader.LoadDivisions(filepath.Join(inputDir, "divisions.csv"))
	if err != nil {
		return fmt.Errorf("loading divisions: %w", err)
	}
	fixed, err := loader.LoadFixedMatches(filepath.Join(inputDir, "fixReq.csv"))
	if err != nil {
		return fmt.Errorf("loading fixed matches: %w", err)
	}
	venueReqs, err := loader.LoadVenueRequirements(filepath.Join(inputDir, "venReq.csv"))
	if err != nil {
		return fmt.Errorf("loading venue requirements: %w", err)
	}
	venueConflicts, err := loader.LoadVenueConflicts(filepath.Join(inputDir, "venConflicts.csv"))
	if err != nil {
		return fmt.Errorf("loading venue conflicts: %w", err)
	}

	results, seedUsed, err := solver.Generate(divisions, fixed, venueReqs, venueConflicts, solver.Options{Seed: seed, Config: cfg})
	if err != nil {
		return fmt.Errorf("generating fixtures: %w", err)
	}
	fmt.Printf("Using seed %d\n", seedUsed)
	seed = seedUsed

	fmt.Println("\nPer-division results:")
	for _, r := range results {
		if r.Diagnostic != "" {
			fmt.Printf("  %-20s FAILED   %s\n", r.Division, r.Diagnostic)
			continue
		}
		fmt.Printf("  %-20s %-8s %d fixtures\n", r.Division, r.Strategy, len(r.Fixtures))
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	csvPath := filepath.Join(outputDir, "fixtures.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", csvPath, err)
	}
	defer csvFile.Close()
	if err := output.WriteCSV(csvFile, results, seed); err != nil {
		return fmt.Errorf("writing fixtures.csv: %w", err)
	}
	fmt.Printf("\nFixtures written to %s\n", csvPath)

	if withHTML {
		htmlPath := filepath.Join(outputDir, "grid.html")
		htmlFile, err := os.Create(htmlPath)
		if err != nil {
			return fmt.Errorf("creating %s: %w", htmlPath, err)
		}
		defer htmlFile.Close()
		if err := output.WriteHTMLGrid(htmlFile, results); err != nil {
			return fmt.Errorf("writing grid.html: %w", err)
		}
		fmt.Printf("Grid written to %s\n", htmlPath)
	}

	if withExcel {
		xlsxPath := filepath.Join(outputDir, "fixtures.xlsx")
		f, err := output.WriteExcel(results)
		if err != nil {
			return fmt.Errorf("building workbook: %w", err)
		}
		if err := f.SaveAs(xlsxPath); err != nil {
			return fmt.Errorf("saving %s: %w", xlsxPath, err)
		}
		fmt.Printf("Workbook written to %s\n", xlsxPath)
	}

	return nil
}

func runValidate(path string) error {
	rows, err := validate.ReadFixturesCSV(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	violations := validate.Fixtures(rows)
	errors, warnings := 0, 0
	for _, v := range violations {
		switch v.Type {
		case "error":
			errors++
			fmt.Printf("x %s: %s\n", v.Division, v.Message)
		case "warning":
			warnings++
			fmt.Printf("! %s: %s\n", v.Division, v.Message)
		}
	}

	fmt.Printf("\nValidation complete: %d rule violations, %d guideline violations\n", errors, warnings)
	if errors > 0 {
		return fmt.Errorf("%d constraint violations found", errors)
	}
	return nil
}
