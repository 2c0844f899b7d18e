package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/apkforge/restable/internal/config"
	"github.com/apkforge/restable/internal/framework"
	"github.com/apkforge/restable/internal/logging"
	"github.com/apkforge/restable/internal/meta"
	"github.com/apkforge/restable/internal/restable"
	"github.com/apkforge/restable/internal/values"
)

func main() {
	cfg := config.LoadOrDefault()

	// Parse flags
	frameworkDir := flag.String("frameworks", cfg.Framework.Dir, "Framework cache directory")
	frameworkTag := flag.String("tag", cfg.Framework.Tag, "Framework cache tag")
	pkgList := flag.String("pkg", "", "Comma-separated main package descriptors (.json.gz)")
	resolve := flag.String("resolve", "", "Resource identifier to resolve, e.g. 0x7f010002")
	out := flag.String("out", "", "Manifest output path (YAML)")
	flag.Parse()

	logger := newLogger(cfg)
	defer logger.Sync()

	loader := framework.NewLoader(*frameworkDir, *frameworkTag)
	loader.SetLogger(logger)

	table := restable.NewWithLoader(loader)
	table.SetLogger(logger)

	for _, path := range splitList(*pkgList) {
		pkg, err := loader.LoadFile(table, path, true)
		if err != nil {
			logger.Fatal("Failed to load package", zap.String("path", path), zap.Error(err))
		}
		logger.Info("Main package loaded",
			zap.Uint8("id", pkg.ID()),
			zap.String("name", pkg.Name()),
			zap.Int("specs", pkg.SpecCount()),
		)
	}

	if *resolve != "" {
		raw, err := parseID(*resolve)
		if err != nil {
			logger.Fatal("Invalid resource identifier", zap.String("id", *resolve), zap.Error(err))
		}
		spec, err := table.ResolveID(raw)
		if err != nil {
			logger.Fatal("Resolution failed", zap.String("id", *resolve), zap.Error(err))
		}
		fmt.Printf("%s %s = %s\n", spec.ID(), spec.Name(), spec.Default())
	}

	if *out != "" {
		if err := writeManifest(table, *out); err != nil {
			logger.Fatal("Failed to write manifest", zap.String("path", *out), zap.Error(err))
		}
		logger.Info("Manifest written", zap.String("path", *out))
	}
}

func newLogger(cfg *config.Config) *logging.Logger {
	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
		OutputPaths: []string{"stderr"},
	})
	if err != nil {
		return logging.NewDefault()
	}
	return logger
}

func writeManifest(table *restable.Table, path string) error {
	info, err := table.AssembleMeta(values.Nop{}, filepath.Dir(path))
	if err != nil {
		return err
	}
	return meta.Save(path, info)
}

func splitList(list string) []string {
	if list == "" {
		return nil
	}
	parts := strings.Split(list, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseID(s string) (uint32, error) {
	raw, err := strconv.ParseUint(strings.TrimPrefix(s, "0x"), 16, 32)
	if err != nil {
		return 0, err
	}
	return uint32(raw), nil
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: restable [flags]\n\nFlags:\n")
		flag.PrintDefaults()
	}
}
