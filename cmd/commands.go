package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"

	"crackInsightBackend/internal/adapter/db"
	"crackInsightBackend/internal/adapter/potfile"
	"crackInsightBackend/internal/adapter/session"
	"crackInsightBackend/internal/core/algorithm"
	"crackInsightBackend/internal/core/domain"
	"crackInsightBackend/internal/core/service"
	"crackInsightBackend/internal/pkg/metrics"
	"crackInsightBackend/internal/platform/desktop"
	"crackInsightBackend/internal/platform/web"
	"crackInsightBackend/internal/port"
)

type PotfileArgs struct {
	Potfile   string `arg:"" help:"hashcat potfile or outfile (hash:plain per line)." type:"existingfile"`
	Algorithm string `short:"m" help:"Algorithm id to tag the pairs with (hashcat -m)." default:""`
}

type ServeCmd struct {
	Potfile       []string `help:"Serve potfiles from memory instead of the configured MySQL database (repeatable)."`
	Summaries     string   `help:"JSON array of past run summaries for the in-memory corpus." type:"existingfile"`
	Address       string   `help:"Listen address, overrides the config." default:""`
	LiveAlgorithm string   `help:"Algorithm id of the running cracking session (hashcat -m)."`
	LiveHashrate  float64  `help:"Current hashrate of the running session in GH/s."`
	LiveStatus    string   `help:"Log of hashcat --status-json output to read the live hashrate from." type:"path"`
}

type AnalyzeCmd struct {
	PotfileArgs
	Hashrate float64 `help:"Hashrate in GH/s used for time-to-crack (default: configured placeholder)."`
	Top      int     `help:"Masks to print." default:"20"`
	JSON     bool    `help:"Print the full result as JSON."`
}

type MasksCmd struct {
	PotfileArgs
	Budget    string          `short:"b" help:"Time budget, a duration (24h) or seconds." default:"24h"`
	Hashrate  float64         `short:"g" help:"Hashrate in GH/s." default:"10"`
	MinLength int             `help:"Minimum mask length in characters." default:"0"`
	Sort      domain.SortMode `help:"Candidate order: occurrence or optindex." enum:"occurrence,optindex" default:"occurrence"`
	Output    string          `short:"o" help:"Output file, - for stdout." default:"-"`
}

type RulesCmd struct {
	PotfileArgs
	Output string `short:"o" help:"Output file, - for stdout." default:"-"`
}

type WordlistCmd struct {
	PotfileArgs
	Output string `short:"o" help:"Output file, - for stdout." default:"-"`
}

func (c *ServeCmd) Run(g *Globals) error {
	logger := g.logger()
	cfg, err := g.config()
	if err != nil {
		return err
	}
	if c.Address != "" {
		cfg.Server.Address = c.Address
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var repo port.Repository
	switch {
	case len(c.Potfile) > 0:
		memory, err := c.memoryRepository(logger)
		if err != nil {
			return err
		}
		repo = memory
	case !cfg.Database.Enabled():
		return errors.New("no corpus source: pass --potfile or configure a database")
	default:
		mysqlRepo, conn, err := db.NewMySQLRepository(cfg.Database.GetDSN(),
			cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime.Std())
		if err != nil {
			return err
		}
		defer conn.Close()
		if err := conn.PingContext(ctx); err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		if err := db.Migrate(ctx, conn); err != nil {
			return err
		}
		repo = mysqlRepo
	}

	reporter, err := metrics.NewReporter(cfg.Metrics.ReportPath)
	if err != nil {
		logger.WithError(err).Warn("metrics report disabled")
		reporter = nil
	} else {
		defer reporter.Close()
	}

	svc := service.NewAnalysisService(repo, c.liveSession(), cfg, logger, reporter)
	defer svc.Wait()

	if !g.Verbose {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), web.RequestLogger(logger))
	web.SetupRoutes(router, web.NewWebHandler(svc), cfg.Server)

	server := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.WithField("address", cfg.Server.Address).Info("listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}
	return nil
}

func (c *ServeCmd) memoryRepository(logger logrus.FieldLogger) (*potfile.MemoryRepository, error) {
	var summaries []domain.HistoricalRunSummary
	if c.Summaries != "" {
		var err error
		if summaries, err = potfile.ReadSummariesFile(c.Summaries); err != nil {
			return nil, err
		}
	}

	repo := potfile.NewMemoryRepository(nil, summaries)
	for _, path := range c.Potfile {
		pairs, err := loadPotfile(path, "", logger)
		if err != nil {
			return nil, err
		}
		repo.AddPairs(pairs...)
	}
	return repo, nil
}

// liveSession prefers a hashcat status log over a fixed reading.
func (c *ServeCmd) liveSession() port.LiveSession {
	switch {
	case c.LiveStatus != "":
		return session.NewStatusFile(c.LiveStatus, c.LiveAlgorithm)
	case c.LiveHashrate > 0:
		return session.NewStatic(c.LiveAlgorithm, service.GigahashToHz(c.LiveHashrate))
	default:
		return nil
	}
}

func (c *AnalyzeCmd) Run(g *Globals) error {
	lib, logger, err := newDesktopLib(g, desktop.NewDefaultConfig())
	if err != nil {
		return err
	}
	pairs, err := loadPotfile(c.Potfile, c.Algorithm, logger)
	if err != nil {
		return err
	}

	result, err := lib.AnalyzeAt(pairs, c.Hashrate)
	if err != nil {
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	printSummary(os.Stdout, result, c.Top)
	return nil
}

func (c *MasksCmd) Run(g *Globals) error {
	cfg := desktop.NewDefaultConfig()
	cfg.SaveResults = false
	cfg.HashrateGHs = c.Hashrate
	cfg.TimeBudget = c.Budget
	cfg.MinMaskLength = c.MinLength
	cfg.SortMode = c.Sort

	lib, logger, err := newDesktopLib(g, cfg)
	if err != nil {
		return err
	}
	pairs, err := loadPotfile(c.Potfile, c.Algorithm, logger)
	if err != nil {
		return err
	}

	result, err := lib.Analyze(pairs)
	if err != nil {
		return err
	}
	selection, err := lib.SelectMasks(result)
	if err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"masks":    len(selection.SelectedMasks),
		"seconds":  selection.AccumulatedTimeSeconds,
		"coverage": fmt.Sprintf("%.2f%%", selection.Coverage(result.Total)*100),
	}).Info("masks selected")
	return writeOutput(c.Output, algorithm.MaskFileBody(selection.SelectedMasks))
}

func (c *RulesCmd) Run(g *Globals) error {
	lib, logger, err := newDesktopLib(g, desktop.NewDefaultConfig())
	if err != nil {
		return err
	}
	pairs, err := loadPotfile(c.Potfile, c.Algorithm, logger)
	if err != nil {
		return err
	}

	result, err := lib.Analyze(pairs)
	if err != nil {
		return err
	}
	return writeOutput(c.Output, algorithm.SynthesizeRules(result.Prefixes, result.Suffixes))
}

func (c *WordlistCmd) Run(g *Globals) error {
	pairs, err := loadPotfile(c.Potfile, c.Algorithm, g.logger())
	if err != nil {
		return err
	}
	return writeOutput(c.Output, algorithm.WordlistBody(pairs))
}

func newDesktopLib(g *Globals, libCfg *desktop.Config) (*desktop.DesktopLib, logrus.FieldLogger, error) {
	logger := g.logger()
	cfg, err := g.config()
	if err != nil {
		return nil, nil, err
	}
	svc := service.NewAnalysisService(potfile.NewMemoryRepository(nil, nil), nil, cfg, logger, nil)
	return desktop.NewDesktopLib(svc, libCfg), logger, nil
}

// loadPotfile reads a potfile with a progress bar on stderr.
func loadPotfile(path, algorithmID string, logger logrus.FieldLogger) ([]domain.RecoveredPair, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening potfile: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}

	bar := progressbar.NewOptions64(info.Size(),
		progressbar.OptionSetDescription("reading potfile"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionThrottle(500*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(25),
	)
	pairs, stats, err := potfile.Read(io.TeeReader(file, bar), potfile.Options{AlgorithmID: algorithmID})
	_ = bar.Finish()
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"pairs":     stats.Pairs,
		"lines":     stats.Lines,
		"malformed": stats.Malformed,
	}).Info("potfile loaded")
	return pairs, nil
}

func writeOutput(path, body string) error {
	if path == "" || path == "-" {
		_, err := io.WriteString(os.Stdout, body)
		return err
	}
	return os.WriteFile(path, []byte(body), 0644)
}

func printSummary(w io.Writer, result *domain.AnalysisResult, top int) {
	fmt.Fprintf(w, "Analyzed:        %d\n", result.Total)
	fmt.Fprintf(w, "Distinct masks:  %d\n", result.DistinctMasks)
	fmt.Fprintf(w, "Avg entropy:     %.2f bits\n", result.AvgEntropy)
	fmt.Fprintf(w, "Length:          %.2f mean, %.2f stddev\n", result.LengthMean, result.LengthStdDev)
	fmt.Fprintf(w, "Throughput:      %.2f GH/s\n\n", result.ThroughputHz/domain.HashratePerGigahash)

	fmt.Fprintln(w, "Charsets:")
	for _, class := range domain.CharsetClasses {
		fmt.Fprintf(w, "  %-16s %d\n", class, result.Charsets[class])
	}

	lengths := make([]int, 0, len(result.Lengths))
	for length := range result.Lengths {
		lengths = append(lengths, length)
	}
	sort.Ints(lengths)
	fmt.Fprintln(w, "\nLengths:")
	for _, length := range lengths {
		fmt.Fprintf(w, "  %-4d %d\n", length, result.Lengths[length])
	}

	fmt.Fprintln(w, "\nTop masks:")
	for i, m := range result.Masks {
		if i >= top {
			break
		}
		fmt.Fprintf(w, "  %-32s %8d  %.3gs\n", m.Mask, m.Count, m.TimeToCrack)
	}

	printCounts(w, "Top base words", result.BaseWords, top)
	printCounts(w, "Top prefixes", result.Prefixes, top)
	printCounts(w, "Top suffixes", result.Suffixes, top)
}

func printCounts(w io.Writer, title string, entries []domain.CountEntry, top int) {
	fmt.Fprintf(w, "\n%s:\n", title)
	for i, e := range entries {
		if i >= top {
			break
		}
		fmt.Fprintf(w, "  %-24s %d\n", e.Value, e.Count)
	}
}
