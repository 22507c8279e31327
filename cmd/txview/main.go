package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"txview/internal/api"
	"txview/internal/config"
	"txview/internal/view"
)

func main() {
	wait := flag.Bool("wait", false, "probe the API with backoff until it answers before starting")
	flag.Parse()

	cfg := config.Load()
	setupLogger(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := api.NewClient(cfg.API.BaseURL, cfg.API.TransactionsPath, cfg.API.TimeoutSec)

	if *wait {
		if err := probeAPI(ctx, client); err != nil {
			log.Fatal().Err(err).Msg("transactions API did not become reachable")
		}
	}

	v := view.New(client, view.Options{
		PageSize:       cfg.UI.PageSize,
		CurrencySymbol: cfg.UI.CurrencySymbol,
	})

	done := make(chan struct{})
	go func() {
		v.Run(ctx, os.Stdout)
		close(done)
	}()

	fmt.Println("commands: n(ext) p(rev) g(oto) <page> s(ize) <n> r(efresh) q(uit)")
	readCommands(v)

	cancel()
	<-done
	log.Info().Msg("txview stopped")
}

func setupLogger(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
}

// probeAPI waits for the endpoint to answer. Startup convenience only; the
// fetch cycle itself never retries.
func probeAPI(ctx context.Context, client *api.Client) error {
	bo := backoff.WithContext(backoff.NewExponentialBackOff(
		backoff.WithMaxElapsedTime(2*time.Minute),
	), ctx)
	return backoff.RetryNotify(
		func() error { return client.Ping(ctx) },
		bo,
		func(err error, next time.Duration) {
			log.Warn().Err(err).Dur("retry_in", next).Msg("transactions API not reachable yet")
		},
	)
}

// readCommands translates stdin lines into view events until EOF or quit.
func readCommands(v *view.View) {
	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		fields := strings.Fields(strings.ToLower(sc.Text()))
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "n", "next":
			v.NextPage()
		case "p", "prev":
			v.PrevPage()
		case "g", "goto":
			if len(fields) < 2 {
				fmt.Println("usage: goto <page>")
				continue
			}
			page, err := strconv.Atoi(fields[1])
			if err != nil {
				fmt.Println("usage: goto <page>")
				continue
			}
			v.GoToPage(page)
		case "s", "size":
			if len(fields) < 2 {
				fmt.Println("usage: size <rows>")
				continue
			}
			n, err := strconv.Atoi(fields[1])
			if err != nil || n <= 0 {
				fmt.Println("usage: size <rows>")
				continue
			}
			v.SetPageSize(n)
		case "r", "refresh":
			v.Refresh()
		case "q", "quit", "exit":
			v.Close()
			return
		default:
			fmt.Printf("unknown command %q\n", fields[0])
		}
	}
	v.Close()
}
