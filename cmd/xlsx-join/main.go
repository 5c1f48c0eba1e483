// Binary xlsx-join соединяет основной файл с файлом поставщика по ключевой колонке.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ryabkov82/xlsx-join/internal/config"
	"github.com/ryabkov82/xlsx-join/internal/logging"
	"github.com/ryabkov82/xlsx-join/internal/merger"
	"github.com/ryabkov82/xlsx-join/internal/report"
)

func newRootCmd() *cobra.Command {
	cfg := config.Default()
	var configPath string

	cmd := &cobra.Command{
		Use:   "xlsx-join",
		Short: "Inner join of two XLSX files",
		Long: "Находит ключевую колонку, соединяет строки основного файла со строками " +
			"файла поставщика и записывает результат в новый XLSX файл.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			start := time.Now()
			out := cmd.OutOrStdout()

			if configPath != "" {
				if err := cfg.LoadFile(configPath, cmd.Flags()); err != nil {
					return fail(out, cfg.Report, start, "Ошибка конфигурации", err)
				}
			}
			if err := cfg.Validate(); err != nil {
				return fail(out, cfg.Report, start, "Ошибка конфигурации", err)
			}
			lg, err := logging.New(cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return fail(out, cfg.Report, start, "Ошибка конфигурации", err)
			}
			defer func() { _ = lg.Sync() }()

			runID := uuid.New().String()
			lg = lg.With(zap.String("run_id", runID))

			run, joinErr := merger.NewJoiner(lg).JoinFiles(cmd.Context(), &cfg)
			summary := report.Summary{
				Success:     joinErr == nil,
				RunID:       runID,
				MainFile:    run.MainFile,
				VendorFile:  run.VendorFile,
				OutputFiles: run.OutputFiles,
			}
			summary.FromResult(run.Result)
			if joinErr != nil {
				lg.Error("Ошибка соединения", zap.Error(joinErr))
				summary.Error = fmt.Sprintf("Ошибка соединения: %v", joinErr)
			}
			summary.Duration = time.Since(start).String()
			if err := emit(out, cfg.Report, summary); err != nil {
				return err
			}
			return joinErr
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML файл конфигурации")
	cfg.AddFlags(cmd.Flags())
	return cmd
}

func fail(w io.Writer, format string, start time.Time, prefix string, err error) error {
	if emitErr := emit(w, format, report.Summary{
		Error:    fmt.Sprintf("%s: %v", prefix, err),
		Duration: time.Since(start).String(),
	}); emitErr != nil {
		return emitErr
	}
	return err
}

func emit(w io.Writer, format string, s report.Summary) error {
	var err error
	if format == config.ReportText {
		err = report.WriteText(w, s)
	} else {
		err = report.WriteJSON(w, s)
	}
	if err != nil {
		return errors.Wrap(err, "ошибка вывода итогов")
	}
	return nil
}

func run(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
		os.Exit(1)
	}
}
