package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	gjson "github.com/mgavaghan/GavaghanJSON"
	"github.com/mgavaghan/GavaghanJSON/envconfig"
	"github.com/mgavaghan/GavaghanJSON/i18n"
	"github.com/mgavaghan/GavaghanJSON/internal/logutil"
	_ "github.com/mgavaghan/GavaghanJSON/source"
	drvgojson "github.com/mgavaghan/GavaghanJSON/source/gojson"
	drvjsoniter "github.com/mgavaghan/GavaghanJSON/source/jsoniter"
	"github.com/mgavaghan/GavaghanJSON/yamlconv"
)

type options struct {
	debug     int
	lang      string
	driver    string
	flat      bool
	comments  bool
	maxDepth  int
	rejectDup bool
	logger    *slog.Logger
}

func (o *options) factory() *gjson.Factory {
	opts := []gjson.Option{gjson.WithMaxDepth(o.maxDepth), gjson.WithLogger(o.logger)}
	if o.comments {
		opts = append(opts, gjson.WithComments())
	}
	if o.rejectDup {
		opts = append(opts, gjson.WithDuplicateKeys(gjson.DuplicateReject))
	}
	return gjson.NewFactory(opts...)
}

// openInput returns the named file, or stdin when no name or "-" is given.
func openInput(cmd *cobra.Command, args []string) (io.ReadCloser, string, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(cmd.InOrStdin()), "<stdin>", nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, "", err
	}
	return f, args[0], nil
}

func readValue(cmd *cobra.Command, args []string, o *options) (gjson.Value, string, error) {
	in, name, err := openInput(cmd, args)
	if err != nil {
		return nil, "", err
	}
	defer in.Close()
	v, err := o.factory().Read(in)
	if err != nil {
		return nil, name, errors.Wrap(err, name)
	}
	if v == nil {
		return nil, name, errors.Errorf("%s: no JSON value found", name)
	}
	return v, name, nil
}

// drivers lists the token drivers selectable with --driver.
var drivers = map[string]func() gjson.Driver{
	"encoding/json": func() gjson.Driver { gjson.UseDefaultDriver(); return gjson.CurrentDriver() },
	"go-json":       drvgojson.Driver,
	"json-iterator": drvjsoniter.Driver,
}

func selectDriver(name string) error {
	if name == "" {
		return nil
	}
	mk, ok := drivers[name]
	if !ok {
		return errors.Errorf("unknown driver %q", name)
	}
	gjson.SetDriver(mk())
	return nil
}

func writeValue(w io.Writer, v gjson.Value, flat bool) error {
	if err := gjson.WriteTo(w, v, !flat); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func NewCLI() *cobra.Command {
	o := &options{
		debug:    envconfig.Debug,
		lang:     envconfig.Lang,
		comments: envconfig.Comments,
		maxDepth: envconfig.MaxDepth,
	}

	rootCmd := &cobra.Command{
		Use:   "gjson",
		Short: "Format, validate and convert JSON documents",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Disable usage printing on errors
			cmd.SilenceUsage = true
			i18n.SetLanguage(o.lang)
			if err := selectDriver(o.driver); err != nil {
				return err
			}
			o.logger = logutil.NewLogger(cmd.ErrOrStderr(), logutil.Level(o.debug))
			o.logger.Debug("starting", "command", cmd.Name(), "driver", gjson.CurrentDriver().Name())
			return nil
		},
	}

	rootCmd.PersistentFlags().IntVar(&o.debug, "debug", o.debug, "Log verbosity: 1 debug, 2 trace")
	rootCmd.PersistentFlags().StringVar(&o.lang, "lang", o.lang, "Language of error messages (en, ja)")
	rootCmd.PersistentFlags().StringVar(&o.driver, "driver", "", "Token driver for duplicate key checks (encoding/json, go-json, json-iterator)")

	parseFlags := func(c *cobra.Command) {
		c.Flags().BoolVar(&o.comments, "comments", o.comments, "Treat // and /* */ comments as whitespace")
		c.Flags().IntVar(&o.maxDepth, "max-depth", o.maxDepth, "Maximum container nesting (0 = unlimited)")
		c.Flags().BoolVar(&o.rejectDup, "reject-duplicates", false, "Fail on repeated object keys")
	}

	cobra.EnableCommandSorting = false

	fmtCmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Pretty-print or flatten a JSON document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, _, err := readValue(cmd, args, o)
			if err != nil {
				return err
			}
			return writeValue(cmd.OutOrStdout(), v, o.flat)
		},
	}
	parseFlags(fmtCmd)
	fmtCmd.Flags().BoolVar(&o.flat, "flat", false, "Write on a single line")

	checkCmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Validate a JSON document and report repeated keys",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, name, err := readValue(cmd, args, o)
			if err != nil {
				return err
			}
			// comments are not understood by the token drivers
			if !o.comments && len(args) > 0 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				dups, err := gjson.FindDuplicateKeys(f, -1)
				if err != nil {
					return errors.Wrap(err, name)
				}
				for _, d := range dups {
					fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s: %v\n", name, d)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%s)\n", name, v.Kind())
			return nil
		},
	}
	parseFlags(checkCmd)

	fromYAMLCmd := &cobra.Command{
		Use:   "from-yaml [file]",
		Short: "Convert the first YAML document to JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, name, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer in.Close()
			v, err := yamlconv.NewReader(in).Next()
			if errors.Is(err, io.EOF) {
				v, err = gjson.Null{}, nil
			}
			if err != nil {
				return errors.Wrap(err, name)
			}
			return writeValue(cmd.OutOrStdout(), v, o.flat)
		},
	}
	fromYAMLCmd.Flags().BoolVar(&o.flat, "flat", false, "Write on a single line")

	toYAMLCmd := &cobra.Command{
		Use:   "to-yaml [file]",
		Short: "Convert a JSON document to YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, _, err := readValue(cmd, args, o)
			if err != nil {
				return err
			}
			b, err := yamlconv.Encode(v)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}
	parseFlags(toYAMLCmd)

	envCmd := &cobra.Command{
		Use:   "env",
		Short: "Show environment settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			vars := envconfig.AsMap()
			names := make([]string, 0, len(vars))
			for k := range vars {
				names = append(names, k)
			}
			sort.Strings(names)
			for _, k := range names {
				fmt.Fprintf(cmd.OutOrStdout(), "%s=%v\t# %s\n", k, vars[k].Value, vars[k].Description)
			}
			return nil
		},
	}

	rootCmd.AddCommand(fmtCmd, checkCmd, fromYAMLCmd, toYAMLCmd, envCmd)
	return rootCmd
}
