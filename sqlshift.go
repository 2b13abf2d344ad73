package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sqlshift/sqlshift/catalog"
	"github.com/sqlshift/sqlshift/cfg"
	"github.com/sqlshift/sqlshift/function"
	"github.com/sqlshift/sqlshift/ir"
	"github.com/sqlshift/sqlshift/pipeline"
	"github.com/sqlshift/sqlshift/telemetry"
)

var (
	catalogPathFlag = flag.String("catalog", "", "Path to catalog definition file")
	queryFlag       = flag.String("query", "", "Query to convert (reads stdin when empty)")
	aliasesFlag     = flag.String("aliases", "", "Comma-separated output column aliases")
)

func main() {
	flag.Parse()

	err := cfg.Load(*cfg.ConfigPathFlag)
	if err != nil {
		panic(err)
	}

	// Setup logging
	var writer io.Writer = zerolog.NewConsoleWriter()
	if cfg.Config.Logging.Format == "json" {
		writer = os.Stderr
	}
	gLog := zerolog.New(writer).
		With().
		Timestamp().
		Logger()

	if cfg.Config.Logging.Verbose {
		log.Logger = gLog.Level(zerolog.DebugLevel)
	} else {
		log.Logger = gLog.Level(zerolog.InfoLevel)
	}

	log.Debug().Msg("Initializing telemetry")
	telemetry.InitializeTelemetry()
	telemetry.InitMetrics()
	serveMetrics()

	function.SetShadingTag(cfg.Config.Engine.ShadingTag)

	cat, err := loadCatalog(*catalogPathFlag)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load catalog")
		return
	}

	denylist := cfg.Config.Engine.DenylistedClasses
	engine, err := pipeline.NewEngine(cat, pipeline.Options{
		CacheSize:  cfg.Config.Engine.CacheSize,
		Transports: cfg.Config.Transports,
		Renames:    cfg.Config.Renames,
		Denylist:   denylist,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize engine")
		return
	}

	if cfg.Config.Prometheus.Enabled {
		collector := telemetry.NewMetricsCollector(engine, 10*time.Second)
		collector.Start()
		defer collector.Stop()
	}

	query := *queryFlag
	if query == "" {
		data, err := io.ReadAll(bufio.NewReader(os.Stdin))
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to read query from stdin")
			return
		}
		query = strings.TrimSpace(string(data))
	}
	if query == "" {
		log.Fatal().Msg("No query given")
		return
	}

	var aliases []string
	if *aliasesFlag != "" {
		aliases = strings.Split(*aliasesFlag, ",")
		for i := range aliases {
			aliases[i] = strings.TrimSpace(aliases[i])
		}
	}

	result, err := engine.Convert(query, aliases)
	if err != nil {
		log.Fatal().Err(err).Msg("Conversion failed")
		return
	}

	fmt.Println(result.SQL)
	for _, rec := range result.Records {
		log.Info().
			Str("operator", rec.Operator).
			Str("target", rec.Target).
			Strs("dependencies", rec.Dependencies).
			Str("kind", rec.Kind.String()).
			Msg("UDF record")
	}
}

func serveMetrics() {
	handler := telemetry.GetMetricsHandler()
	if handler == nil {
		return
	}
	addr := fmt.Sprintf("%s:%d", cfg.Config.Prometheus.Address, cfg.Config.Prometheus.Port)
	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Warn().Err(err).Msg("Metrics server stopped")
		}
	}()
}

// catalogFile is the on-disk catalog shape: tables with typed columns,
// dependency coordinates, and alias→class function mappings.
type catalogFile struct {
	Tables []struct {
		Database     string   `toml:"database"`
		Name         string   `toml:"name"`
		Dependencies []string `toml:"dependencies"`
		Columns      []struct {
			Name string `toml:"name"`
			Type string `toml:"type"`
		} `toml:"columns"`
		Functions []struct {
			Alias string `toml:"alias"`
			Class string `toml:"class"`
		} `toml:"functions"`
	} `toml:"table"`
}

func loadCatalog(path string) (catalog.Catalog, error) {
	cat := catalog.NewMemoryCatalog()
	if path == "" {
		return cat, nil
	}

	var file catalogFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	for _, t := range file.Tables {
		tbl := &catalog.MemoryTable{
			DB:        t.Database,
			TableName: t.Name,
			Deps:      t.Dependencies,
		}
		for _, c := range t.Columns {
			tbl.Cols = append(tbl.Cols, catalog.Column{Name: c.Name, Type: parseType(c.Type)})
		}
		for _, f := range t.Functions {
			tbl.Functions = append(tbl.Functions, catalog.FunctionMapping{Alias: f.Alias, Class: f.Class})
		}
		cat.AddTable(tbl)
	}
	log.Info().Int("tables", len(file.Tables)).Str("path", path).Msg("Catalog loaded")
	return cat, nil
}

func parseType(name string) ir.DataType {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "boolean", "bool":
		return ir.Boolean()
	case "int", "integer":
		return ir.Integer()
	case "bigint", "long":
		return ir.Bigint()
	case "double", "float":
		return ir.Double()
	case "varchar", "string", "text":
		return ir.Varchar()
	case "date":
		return ir.Date()
	case "timestamp":
		return ir.Timestamp()
	case "binary", "varbinary":
		return ir.Varbinary()
	}
	if strings.HasPrefix(strings.ToLower(name), "array<") && strings.HasSuffix(name, ">") {
		inner := name[len("array<") : len(name)-1]
		return ir.Array(parseType(inner))
	}
	return ir.Unknown()
}
