// Package config описывает параметры запуска.
package config

import (
	"os"
	"path/filepath"
	"slices"

	"github.com/go-faster/errors"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/ryabkov82/xlsx-join/internal/joinkey"
	"github.com/ryabkov82/xlsx-join/internal/schema"
	"github.com/ryabkov82/xlsx-join/internal/xlsx"
)

// Форматы итогового отчета.
const (
	ReportJSON = "json"
	ReportText = "text"
)

type Config struct {
	// Main и Vendor списки кандидатов, берется первый существующий.
	// Кандидат-папка заменяется самым большим .xlsx файлом в ней.
	Main   []string `yaml:"main"`
	Vendor []string `yaml:"vendor"`

	OutputDir    string `yaml:"output_dir"`
	OutputPrefix string `yaml:"output_prefix"`
	Sheet        string `yaml:"sheet"`
	// MaxRowPerFile максимальное количество строк в одном результирующем файле
	MaxRowPerFile int `yaml:"max_row_per_file"`

	HeaderScanRows int      `yaml:"header_scan_rows"`
	JoinKeys       []string `yaml:"join_keys"`

	Verify     bool `yaml:"verify"`
	AllowEmpty bool `yaml:"allow_empty"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	Report    string `yaml:"report"`
}

// Default возвращает конфигурацию по умолчанию.
func Default() Config {
	return Config{
		Main:           []string{filepath.Join("MainFile", "MainData.xlsx")},
		Vendor:         []string{filepath.Join("InputFolder", "Data_Vendor.xlsx")},
		OutputDir:      "OutputFolder",
		OutputPrefix:   "InnerJoinResult",
		Sheet:          xlsx.DefaultSheet,
		MaxRowPerFile:  xlsx.MaxDataRows,
		HeaderScanRows: schema.DefaultScanRows,
		JoinKeys:       slices.Clone(joinkey.Preferred),
		Verify:         true,
		LogLevel:       "info",
		LogFormat:      "console",
		Report:         ReportJSON,
	}
}

// AddFlags регистрирует флаги, привязанные к полям конфигурации.
func (c *Config) AddFlags(fs *pflag.FlagSet) {
	fs.StringSliceVar(&c.Main, "main", c.Main, "основной файл или папка (можно несколько кандидатов)")
	fs.StringSliceVar(&c.Vendor, "vendor", c.Vendor, "файл поставщика или папка (можно несколько кандидатов)")
	fs.StringVarP(&c.OutputDir, "out", "o", c.OutputDir, "папка для результата")
	fs.StringVar(&c.OutputPrefix, "prefix", c.OutputPrefix, "префикс имени результирующего файла")
	fs.StringVar(&c.Sheet, "sheet", c.Sheet, "имя листа результата")
	fs.IntVar(&c.MaxRowPerFile, "max-row", c.MaxRowPerFile, "максимальное количество строк в одном файле")
	fs.IntVar(&c.HeaderScanRows, "header-rows", c.HeaderScanRows, "количество строк для поиска заголовка")
	fs.StringSliceVar(&c.JoinKeys, "keys", c.JoinKeys, "предпочтительные имена ключевой колонки")
	fs.BoolVar(&c.Verify, "verify", c.Verify, "перечитать результат после записи")
	fs.BoolVar(&c.AllowEmpty, "allow-empty", c.AllowEmpty, "записывать результат без совпадений")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "уровень логирования: debug, info, warn, error")
	fs.StringVar(&c.LogFormat, "log-format", c.LogFormat, "формат логов: console, json")
	fs.StringVar(&c.Report, "report", c.Report, "формат итогового отчета: json, text")
}

// LoadFile читает YAML файл поверх текущих значений. Флаги, явно
// заданные в fs, сохраняют свои значения.
func (c *Config) LoadFile(path string, fs *pflag.FlagSet) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "ошибка чтения файла конфигурации")
	}

	type saved struct {
		flag  *pflag.Flag
		value string
		slice []string
	}
	var changed []saved
	if fs != nil {
		fs.Visit(func(f *pflag.Flag) {
			s := saved{flag: f, value: f.Value.String()}
			if sv, ok := f.Value.(pflag.SliceValue); ok {
				s.slice = slices.Clone(sv.GetSlice())
			}
			changed = append(changed, s)
		})
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return errors.Wrapf(err, "ошибка разбора %s", path)
	}

	for _, s := range changed {
		if sv, ok := s.flag.Value.(pflag.SliceValue); ok {
			err = sv.Replace(s.slice)
		} else {
			err = s.flag.Value.Set(s.value)
		}
		if err != nil {
			return errors.Wrapf(err, "ошибка восстановления флага %s", s.flag.Name)
		}
	}
	return nil
}

// Validate проверяет и нормализует конфигурацию.
func (c *Config) Validate() error {
	c.Main = cleanPaths(c.Main)
	c.Vendor = cleanPaths(c.Vendor)
	switch {
	case len(c.Main) == 0:
		return errors.New("необходимо указать основной файл через --main")
	case len(c.Vendor) == 0:
		return errors.New("необходимо указать файл поставщика через --vendor")
	case c.OutputPrefix == "":
		return errors.New("префикс результата не может быть пустым")
	case c.HeaderScanRows < 1:
		return errors.Errorf("header-rows должен быть положительным: %d", c.HeaderScanRows)
	case c.MaxRowPerFile < 0:
		return errors.Errorf("max-row не может быть отрицательным: %d", c.MaxRowPerFile)
	}
	switch c.Report {
	case ReportJSON, ReportText:
	default:
		return errors.Errorf("неизвестный формат отчета %q", c.Report)
	}
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	c.OutputDir = filepath.Clean(c.OutputDir)
	return nil
}

func cleanPaths(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if p == "" {
			continue
		}
		out = append(out, filepath.Clean(p))
	}
	return out
}
