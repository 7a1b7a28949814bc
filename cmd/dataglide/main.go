// Command dataglide runs a declarative database-to-database pipeline job:
// it reads records through a source connector and writes them through a
// sink connector on the in-process reference runner.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dataglide/dataglide/pkg/config"
	"github.com/dataglide/dataglide/pkg/connector/jdbc"
	"github.com/dataglide/dataglide/pkg/engine"
	"github.com/dataglide/dataglide/pkg/engine/direct"
	"github.com/dataglide/dataglide/pkg/logger"

	// Database drivers available to job configs
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

var version = "0.1.0"

func main() {
	root := &cobra.Command{
		Use:   "dataglide",
		Short: "Declarative database pipeline runner",
		Long:  "dataglide reads records from one database and writes them to another, driven entirely by a declarative job configuration.",
	}

	root.AddCommand(newRunCommand())
	root.AddCommand(newVersionCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the dataglide version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("dataglide %s\n", version)
		},
	}
}

func newRunCommand() *cobra.Command {
	var configPath string
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a pipeline job from a config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			if err := logger.Init(logger.Config{
				Level:       cfg.Logging.Level,
				Development: cfg.Logging.Development,
				Encoding:    cfg.Logging.Encoding,
			}); err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			return runJob(ctx, cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to the job config file (required)")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Minute, "overall job timeout")
	cmd.MarkFlagRequired("config") //nolint:errcheck

	return cmd
}

// rowRecord is the generic record shape the CLI pipes between endpoints:
// one map of column name to value per row.
type rowRecord = map[string]interface{}

func runJob(ctx context.Context, cfg *config.JobConfig) error {
	log := logger.WithComponent("job").With(zap.String("job", cfg.Name))

	source, err := jdbc.Read(jdbc.ReadOptions[rowRecord]{
		Connection: jdbc.ConnectionOptions{
			DriverName: cfg.Source.Driver,
			URL:        cfg.Source.URL,
			Username:   cfg.Source.Username,
			Password:   cfg.Source.Password,
		},
		Query:     cfg.Source.Query,
		RowMapper: mapRow,
		FetchSize: cfg.Source.FetchSize,
	})
	if err != nil {
		return err
	}

	sink, err := jdbc.Write(jdbc.WriteOptions[rowRecord]{
		Connection: jdbc.ConnectionOptions{
			DriverName: cfg.Sink.Driver,
			URL:        cfg.Sink.URL,
			Username:   cfg.Sink.Username,
			Password:   cfg.Sink.Password,
		},
		Statement:               cfg.Sink.Statement,
		PreparedStatementSetter: columnSetter(cfg.Sink.Columns),
		BatchSize:               cfg.Sink.BatchSize,
	})
	if err != nil {
		return err
	}

	ec := engine.NewContext(direct.NewRunner(), engine.WithLogger(log))

	start := time.Now()
	collection, err := source.Read(ctx, ec)
	if err != nil {
		return err
	}

	if _, err := sink.Write(ctx, ec, collection); err != nil {
		return err
	}

	log.Info("job complete",
		zap.Int("records", collection.Size()),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

// mapRow scans every column of the current row into a map record.
func mapRow(row engine.Row) (rowRecord, error) {
	columns := row.Columns()
	values := make([]interface{}, len(columns))
	ptrs := make([]interface{}, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}

	if err := row.Scan(ptrs...); err != nil {
		return nil, err
	}

	record := make(rowRecord, len(columns))
	for i, name := range columns {
		// Drivers hand back []byte for text columns; keep records printable.
		if b, ok := values[i].([]byte); ok {
			record[name] = string(b)
		} else {
			record[name] = values[i]
		}
	}
	return record, nil
}

// columnSetter binds the named record fields as statement parameters in
// placeholder order. A nil return means the statement takes no parameters.
func columnSetter(columns []string) jdbc.PreparedStatementSetter[rowRecord] {
	if len(columns) == 0 {
		return nil
	}
	return func(record rowRecord, b engine.ParameterBinder) error {
		for _, name := range columns {
			b.Bind(record[name])
		}
		return nil
	}
}
