package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/GustavoCaso/expenselog/internal/cli"
	"github.com/GustavoCaso/expenselog/internal/cli/add"
	clearcmd "github.com/GustavoCaso/expenselog/internal/cli/clear"
	deletecmd "github.com/GustavoCaso/expenselog/internal/cli/delete"
	"github.com/GustavoCaso/expenselog/internal/cli/edit"
	exportcmd "github.com/GustavoCaso/expenselog/internal/cli/export"
	historycmd "github.com/GustavoCaso/expenselog/internal/cli/history"
	importcmd "github.com/GustavoCaso/expenselog/internal/cli/import"
	"github.com/GustavoCaso/expenselog/internal/cli/list"
	"github.com/GustavoCaso/expenselog/internal/cli/report"
	"github.com/GustavoCaso/expenselog/internal/cli/summary"
	"github.com/GustavoCaso/expenselog/internal/cli/tui"
	"github.com/GustavoCaso/expenselog/internal/config"
	"github.com/GustavoCaso/expenselog/internal/destination"
	"github.com/GustavoCaso/expenselog/internal/history"
	"github.com/GustavoCaso/expenselog/internal/logger"
	"github.com/GustavoCaso/expenselog/internal/storage"
	"github.com/GustavoCaso/expenselog/internal/util"
)

var configPath string

var subcommands = map[string]cli.Command{
	"add":     add.NewCommand(),
	"edit":    edit.NewCommand(),
	"delete":  deletecmd.NewCommand(),
	"list":    list.NewCommand(),
	"summary": summary.NewCommand(),
	"report":  report.NewCommand(),
	"export":  exportcmd.NewCommand(),
	"import":  importcmd.NewCommand(),
	"history": historycmd.NewCommand(),
	"clear":   clearcmd.NewCommand(),
	"tui":     tui.NewCommand(),
}

var subcommandsFlagSets = map[string]*flag.FlagSet{}

func main() {
	if len(os.Args) < 2 {
		fmt.Printf("subcommand is required\n")
		printUsage()

		os.Exit(1)
	}

	for c, cLogic := range subcommands {
		fset := flag.NewFlagSet(c, flag.ExitOnError)
		fset.StringVar(&configPath, "c", "expenselog.yaml", "Configuration file (YAML or TOML)")

		cLogic.SetFlags(fset)

		subcommandsFlagSets[c] = fset
	}

	commandName := os.Args[1]
	command, ok := subcommands[commandName]
	if !ok {
		if strings.Contains(commandName, "help") {
			printHelp()

			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "unsupported command %s.\nUse 'help' command to print information about supported commands\n", commandName)
		os.Exit(1)
	}

	_ = subcommandsFlagSets[commandName].Parse(os.Args[2:])

	conf, err := config.Parse(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to parse the configuration: %s\n", err.Error())
		os.Exit(1)
	}

	if err = conf.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err.Error())
		os.Exit(1)
	}

	log := logger.New(conf.Logger)
	util.SetColors(!conf.NoColor)

	loc, err := conf.Location()
	if err != nil {
		log.Fatal("Invalid timezone", "timezone", conf.Timezone, "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := storage.Open(ctx, conf.Storage, log)
	if err != nil {
		log.Fatal("Unable to open storage", "backend", conf.Storage.Backend, "error", err)
	}
	store := storage.New(backend, log)
	defer store.Close()

	env := &cli.Env{
		Conf:         conf,
		Store:        store,
		Destinations: destination.FromConfig(conf, os.Stdout, log),
		History:      history.New(conf.Export.HistoryPath),
		Logger:       log.WithComponent(commandName),
		Out:          os.Stdout,
		Now:          cli.NowIn(loc),
	}

	if err = command.Run(ctx, env); err != nil {
		store.Close()
		log.Fatal("Command failed", "command", commandName, "error", err)
	}
}

func printHelp() {
	printUsage()

	names := make([]string, 0, len(subcommands))
	for c := range subcommands {
		names = append(names, c)
	}
	sort.Strings(names)

	for _, c := range names {
		fmt.Printf("subcommand <%s>: %s\n", c, subcommands[c].Description())
		subcommandsFlagSets[c].PrintDefaults()
		fmt.Println()
	}
}

func printUsage() {
	fmt.Printf("usage: expenselog <subcommand> [flags]\n\n")
}
