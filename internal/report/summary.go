// Package report формирует итоговые сводки запуска и описания таблиц.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/go-faster/errors"

	"github.com/ryabkov82/xlsx-join/internal/join"
)

// Key пара колонок ключа соединения.
type Key struct {
	Main   string `json:"main"`
	Vendor string `json:"vendor"`
	Tier   string `json:"tier"`
}

// Summary итог запуска, выводится в stdout.
type Summary struct {
	Success     bool        `json:"success"`
	RunID       string      `json:"run_id,omitempty"`
	MainFile    string      `json:"main_file,omitempty"`
	VendorFile  string      `json:"vendor_file,omitempty"`
	OutputFiles []string    `json:"output_files,omitempty"`
	Error       string      `json:"error,omitempty"`
	Duration    string      `json:"duration"`
	RowCount    int64       `json:"row_count,omitempty"`
	Key         *Key        `json:"key,omitempty"`
	Stats       *join.Stats `json:"stats,omitempty"`
	MatchRate   float64     `json:"match_rate,omitempty"`
	Common      []string    `json:"common_columns,omitempty"`
	VendorOnly  []string    `json:"vendor_only_columns,omitempty"`
}

// FromResult заполняет сводку по результату соединения.
func (s *Summary) FromResult(res *join.Result) {
	if res == nil {
		return
	}
	stats := res.Stats
	s.Stats = &stats
	s.MatchRate = stats.MatchRate()
	s.RowCount = int64(len(res.Rows))
	s.Common = res.Common
	s.VendorOnly = res.VendorOnly
	if res.Key.Main != "" {
		s.Key = &Key{
			Main:   res.Key.Main,
			Vendor: res.Key.Vendor,
			Tier:   res.Key.Tier.String(),
		}
	}
}

// WriteJSON выводит сводку в JSON с отступами.
func WriteJSON(w io.Writer, s Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return errors.Wrap(err, "ошибка вывода JSON")
	}
	return nil
}

// WriteText выводит сводку для человека.
func WriteText(w io.Writer, s Summary) error {
	status := color.GreenString("OK")
	if !s.Success {
		status = color.RedString("ОШИБКА")
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	row := func(name, format string, args ...any) {
		fmt.Fprintf(tw, "%s:\t%s\n", name, fmt.Sprintf(format, args...))
	}
	row("Статус", "%s", status)
	if s.RunID != "" {
		row("Запуск", "%s", s.RunID)
	}
	if s.MainFile != "" {
		row("Основной файл", "%s", s.MainFile)
	}
	if s.VendorFile != "" {
		row("Файл поставщика", "%s", s.VendorFile)
	}
	if s.Key != nil {
		row("Ключ", "%s = %s (%s)", s.Key.Main, s.Key.Vendor, s.Key.Tier)
	}
	if st := s.Stats; st != nil {
		row("Строк в основном файле", "%s", humanize.Comma(int64(st.MainRows)))
		row("Строк у поставщика", "%s", humanize.Comma(int64(st.VendorRows)))
		row("Совпало", "%s (%s)", humanize.Comma(int64(st.Matched)), rateString(s.MatchRate))
		row("Без пары", "%s", humanize.Comma(int64(st.Unmatched())))
		row("Пустой ключ", "%s", humanize.Comma(int64(st.NullKey)))
	}
	if len(s.Common) > 0 {
		row("Общие колонки", "%q", s.Common)
	}
	if len(s.VendorOnly) > 0 {
		row("Колонки поставщика", "%q", s.VendorOnly)
	}
	for _, f := range s.OutputFiles {
		size := ""
		if fi, err := os.Stat(f); err == nil {
			size = " " + humanize.Bytes(uint64(fi.Size()))
		}
		row("Результат", "%s%s", f, size)
	}
	if s.Error != "" {
		row("Ошибка", "%s", color.RedString("%s", s.Error))
	}
	row("Время", "%s", s.Duration)
	if err := tw.Flush(); err != nil {
		return errors.Wrap(err, "ошибка вывода отчета")
	}
	return nil
}

func rateString(rate float64) string {
	c := color.GreenString
	switch {
	case rate == 0:
		c = color.RedString
	case rate < 50:
		c = color.YellowString
	}
	return c("%.1f%%", rate)
}
