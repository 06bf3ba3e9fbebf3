package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ajitpratap0/ragged/pkg/config"
	"github.com/ajitpratap0/ragged/pkg/forms"
	"github.com/ajitpratap0/ragged/pkg/logger"
)

var version = "0.1.0"

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := config.DefaultToolConfig()
	var configFile string

	root := &cobra.Command{
		Use:   "ragged",
		Short: "Ragged - schema metadata toolkit for nested, variable-length arrays",
		Long: `Ragged inspects and transforms the schema metadata ("forms") of nested,
variable-length arrays: validation, type derivation, column projection, and
buffer-key enumeration over the JSON schema interchange format.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configFile != "" {
				if err := config.Load(configFile, cfg); err != nil {
					return fmt.Errorf("configuration error: %w", err)
				}
			}
			return logger.Init(logger.Config{
				Level:    cfg.LogLevel,
				Encoding: cfg.LogEncoding,
			})
		},
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "Path to YAML configuration file (optional)")
	root.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("Ragged v%s\n", version)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	})

	root.AddCommand(validateCommand())
	root.AddCommand(describeCommand(cfg))
	root.AddCommand(columnsCommand(cfg))
	root.AddCommand(selectCommand())
	root.AddCommand(buffersCommand())
	root.AddCommand(arrowCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadForm reads and deserializes a schema file; "-" reads standard input.
func loadForm(ctx context.Context, filename string) (forms.Form, error) {
	var data []byte
	var err error
	if filename == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(filename) //nolint:gosec // G304: File path is controlled by caller
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file %s: %w", filename, err)
	}

	form, err := forms.FromJSON(string(data))
	if err != nil {
		logger.WithContext(ctx).Error("schema deserialization failed",
			zap.String("file", filename),
			zap.Error(err))
		return nil, err
	}
	return form, nil
}

func commandContext(name, file string) context.Context {
	ctx := context.WithValue(context.Background(), logger.CommandKey, name)
	return context.WithValue(ctx, logger.SchemaFileKey, file)
}

func validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <schema.json>",
		Short: "Validate a serialized schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := loadForm(commandContext("validate", args[0]), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("OK: %s\n", form.Class())
			return nil
		},
	}
}

func describeCommand(cfg *config.ToolConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "describe <schema.json>",
		Short: "Show the semantic type and shape of a schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := loadForm(commandContext("describe", args[0]), args[0])
			if err != nil {
				return err
			}
			mn, mx := form.MinMaxDepth()
			branch, _ := form.BranchDepth()
			fmt.Printf("class:   %s\n", form.Class())
			fmt.Printf("type:    %s\n", form.Type())
			fmt.Printf("depth:   min %d, max %d\n", mn, mx)
			fmt.Printf("branchy: %v\n", branch)
			columnTypes := forms.ColumnTypes(form)
			for i, column := range forms.Columns(form, cfg.ListIndicator) {
				fmt.Printf("column:  %-30s %s\n", column, columnTypes[i])
			}
			return nil
		},
	}
}

func columnsCommand(cfg *config.ToolConfig) *cobra.Command {
	var listIndicator string
	cmd := &cobra.Command{
		Use:   "columns <schema.json>",
		Short: "List the dotted column paths of a schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := loadForm(commandContext("columns", args[0]), args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("list-indicator") {
				listIndicator = cfg.ListIndicator
			}
			for _, column := range forms.Columns(form, listIndicator) {
				fmt.Println(column)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&listIndicator, "list-indicator", "", "Token inserted at list boundaries in column paths")
	return cmd
}

func selectCommand() *cobra.Command {
	var noExpandBraces bool
	cmd := &cobra.Command{
		Use:   "select <schema.json> <specifier> [specifier...]",
		Short: "Project a schema down to the columns matching glob specifiers",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := loadForm(commandContext("select", args[0]), args[0])
			if err != nil {
				return err
			}
			selected, err := forms.SelectColumns(form, args[1:], !noExpandBraces)
			if err != nil {
				return err
			}
			out, err := forms.ToJSON(selected)
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}
	cmd.Flags().BoolVar(&noExpandBraces, "no-expand-braces", false, "Treat {a,b} groups literally instead of expanding them")
	return cmd
}

func buffersCommand() *cobra.Command {
	var shallow bool
	cmd := &cobra.Command{
		Use:   "buffers <schema.json>",
		Short: "List the buffer keys and dtypes needed to hydrate a schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := loadForm(commandContext("buffers", args[0]), args[0])
			if err != nil {
				return err
			}
			expectations := forms.ExpectedFromBuffers(form, forms.DefaultBufferKey, !shallow)
			for _, e := range expectations {
				fmt.Printf("%-40s %s\n", e.Key, e.DType)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&shallow, "shallow", false, "Only report the root node's own buffers")
	return cmd
}

func arrowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "arrow <schema.json>",
		Short: "Convert a record-rooted schema to an Arrow schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := loadForm(commandContext("arrow", args[0]), args[0])
			if err != nil {
				return err
			}
			record, ok := form.(*forms.RecordForm)
			if !ok {
				return fmt.Errorf("arrow conversion needs a record-rooted schema, got %s", form.Class())
			}
			schema, err := forms.ToArrowSchema(record)
			if err != nil {
				return err
			}
			fmt.Println(schema)
			return nil
		},
	}
}
