package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"

	"crackInsightBackend/internal/config"
)

type Globals struct {
	Config  string `short:"c" help:"JSON config file overlaying the defaults." type:"path"`
	Verbose bool   `short:"v" help:"Enable debug logging."`
}

type CLI struct {
	Globals

	Serve    ServeCmd    `cmd:"" help:"Serve the analysis API over HTTP."`
	Analyze  AnalyzeCmd  `cmd:"" help:"Print corpus statistics for a potfile."`
	Masks    MasksCmd    `cmd:"" help:"Select masks that fit a time budget and write an .hcmask file."`
	Rules    RulesCmd    `cmd:"" help:"Write a rule file from the most frequent prefixes and suffixes."`
	Wordlist WordlistCmd `cmd:"" help:"Write the unique decoded plaintexts of a potfile."`
}

func (g *Globals) logger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if g.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}
	return logger
}

func (g *Globals) config() (config.Config, error) {
	return config.LoadConfig(g.Config)
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("crackinsight"),
		kong.Description("Statistics, mask budgets and rule files from cracked password corpora"),
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(ctx.Run(&cli.Globals))
}
