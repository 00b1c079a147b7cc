package main

import (
	"os"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/spf13/cobra"

	runner "github.com/micmurawski/osdu-client-sub000/internal/cli"
)

func main() {
	log.SetHandler(cli.Default)
	log.SetLevel(log.InfoLevel)

	var verbose bool
	root := &cobra.Command{
		Use:           "osdu-gen",
		Short:         "Generate Python clients for OSDU services from OpenAPI documents",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(newNamesCmd())

	if err := root.Execute(); err != nil {
		log.WithError(err).Error("osdu-gen failed")
		os.Exit(1)
	}
}

func newGenerateCmd() *cobra.Command {
	var configPath string
	var service string
	var fb runner.FallbackParams

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate service clients",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runner.RunGenerate(runner.RunGenerateParams{
				ConfigPath:  configPath,
				OnlyService: service,
				Fallback:    fb,
			})
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to osdu-gen.yaml config")
	cmd.Flags().StringVar(&service, "service", "", "Generate only the named service from config")
	// Fallback single-service flags
	cmd.Flags().StringVar(&fb.Spec, "input", "", "OpenAPI or Swagger document (file or URL)")
	cmd.Flags().StringVar(&fb.Name, "name", "", "Service name")
	cmd.Flags().StringVar(&fb.Version, "version", "", "API version of the service")
	cmd.Flags().StringVar(&fb.OutDir, "out", "", "Output directory of the python package")
	cmd.Flags().StringVar(&fb.Package, "package", "", "Python package name")
	cmd.Flags().StringVar(&fb.BasePath, "base-path", "", "Path prefix of every operation")
	cmd.Flags().BoolVar(&fb.Validate, "validate", false, "Validate request bodies against their schema")
	cmd.Flags().StringArrayVar(&fb.IncludeTags, "include-tags", nil, "Regex patterns for tags to include")
	cmd.Flags().StringArrayVar(&fb.ExcludeTags, "exclude-tags", nil, "Regex patterns for tags to exclude")

	return cmd
}

func newValidateCmd() *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate an OpenAPI or Swagger document",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runner.RunValidate(input)
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "OpenAPI or Swagger document (file or URL)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func newNamesCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "names",
		Short: "List the method names recorded in a name registry",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runner.RunNames(cmd.OutOrStdout(), path)
		},
	}
	cmd.Flags().StringVar(&path, "registry", "", "Path to a method_names.json file")
	_ = cmd.MarkFlagRequired("registry")
	return cmd
}
