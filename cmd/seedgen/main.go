package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Decentr-net/logrus/sentry"

	"github.com/poeit/seedgen/internal/generator"
	"github.com/poeit/seedgen/internal/poetry/poetrydb"
	"github.com/poeit/seedgen/internal/service/impl"
	"github.com/poeit/seedgen/internal/storage/sqlfile"
)

const dateLayout = "2006-01-02 15:04:05"

// nolint:lll,gochecknoglobals
var opts = struct {
	Output   string `long:"output" env:"OUTPUT" default:"../sql/04-testing-data.sql" description:"path to sql file to be (re)written"`
	Database string `long:"database" env:"DATABASE" default:"PoeItDB" description:"database name used in USE statement"`
	Seed     int64  `long:"seed" env:"SEED" default:"0" description:"random seed, 0 means seed is picked from current time"`

	Users          int      `long:"users.count" env:"USERS_COUNT" default:"50" description:"number of users to generate"`
	BeginID        int      `long:"users.begin_id" env:"USERS_BEGIN_ID" default:"2" description:"id of the first generated user, ids below are reserved"`
	MaxNameLen     int      `long:"users.max_name_len" env:"USERS_MAX_NAME_LEN" default:"20" description:"maximal username length in bytes"`
	Locales        []string `long:"users.locales" env:"USERS_LOCALES" env-delim:"," default:"en" default:"it_IT" default:"ja_JP" default:"de" default:"ru_RU" default:"fr_FR" default:"ko_KR" default:"sv_SE" default:"es" default:"da_DK" default:"no_NO" default:"fi_FI" description:"name locales as code or code:weight"`
	PasswordHash   string   `long:"users.password_hash" env:"USERS_PASSWORD_HASH" default:"$APP_ADMIN_HASH" description:"password hash written for every user"`
	RoleID         int      `long:"users.role_id" env:"USERS_ROLE_ID" default:"2" description:"role id written for every user"`
	RegisteredFrom string   `long:"users.registered_from" env:"USERS_REGISTERED_FROM" default:"2022-08-01 00:00:00" description:"beginning of registration window (UTC)"`
	RegisteredTo   string   `long:"users.registered_to" env:"USERS_REGISTERED_TO" default:"2022-10-01 23:59:59" description:"end of registration window (UTC)"`

	PoetryURL           string        `long:"poetry.url" env:"POETRY_URL" default:"https://poetrydb.org" description:"poetrydb base url"`
	PoetryTimeout       time.Duration `long:"poetry.timeout" env:"POETRY_TIMEOUT" default:"30s" description:"timeout for requests to poetrydb"`
	PoetryRetries       int           `long:"poetry.retries" env:"POETRY_RETRIES" default:"3" description:"retries after the first attempt on temporary errors"`
	PoetryRetryInterval time.Duration `long:"poetry.retry_interval" env:"POETRY_RETRY_INTERVAL" default:"2s" description:"interval to be waited on error before retry"`

	PoemsPerLines int `long:"poems.per_lines" env:"POEMS_PER_LINES" default:"20" description:"poems requested for every line count"`
	PoemsMinLines int `long:"poems.min_lines" env:"POEMS_MIN_LINES" default:"2" description:"minimal line count of requested poems"`
	PoemsMaxLines int `long:"poems.max_lines" env:"POEMS_MAX_LINES" default:"10" description:"maximal line count of requested poems"`
	PoemsMaxLen   int `long:"poems.max_len" env:"POEMS_MAX_LEN" default:"256" description:"poems longer than this (bytes) are skipped"`

	FavoritesFraction float64 `long:"favorites.users_fraction" env:"FAVORITES_USERS_FRACTION" default:"0.6666666666666666" description:"part of users having favorites"`
	FavoritesMin      int     `long:"favorites.min" env:"FAVORITES_MIN" default:"1" description:"minimal favorites per user"`
	FavoritesMax      int     `long:"favorites.max" env:"FAVORITES_MAX" default:"20" description:"maximal favorites per user"`

	RatingsFraction float64 `long:"ratings.users_fraction" env:"RATINGS_USERS_FRACTION" default:"0.5" description:"part of users rating poems"`
	RatingsMin      int     `long:"ratings.min" env:"RATINGS_MIN" default:"1" description:"minimal ratings per user"`
	RatingsMax      int     `long:"ratings.max" env:"RATINGS_MAX" default:"30" description:"maximal ratings per user"`

	ReportsFraction float64 `long:"reports.users_fraction" env:"REPORTS_USERS_FRACTION" default:"0.1" description:"part of users reporting poems"`
	ReportsMin      int     `long:"reports.min" env:"REPORTS_MIN" default:"1" description:"minimal reports per user"`
	ReportsMax      int     `long:"reports.max" env:"REPORTS_MAX" default:"3" description:"maximal reports per user"`
	ReportsMaxLen   int     `long:"reports.max_len" env:"REPORTS_MAX_LEN" default:"256" description:"maximal report text length in bytes"`

	FollowsFraction float64 `long:"follows.users_fraction" env:"FOLLOWS_USERS_FRACTION" default:"0.6666666666666666" description:"part of users following others"`
	FollowsMin      int     `long:"follows.min" env:"FOLLOWS_MIN" default:"1" description:"minimal followed users per user"`
	FollowsMax      int     `long:"follows.max" env:"FOLLOWS_MAX" default:"7" description:"maximal followed users per user"`

	LogLevel  string `long:"log.level" env:"LOG_LEVEL" default:"info" description:"Log level" choice:"debug" choice:"info" choice:"warning" choice:"error"`
	SentryDSN string `long:"sentry.dsn" env:"SENTRY_DSN" description:"sentry dsn"`
}{}

var errTerminated = errors.New("terminated")

func main() {
	parser := flags.NewParser(&opts, flags.Default)
	parser.ShortDescription = "PoeIt seedgen"
	parser.LongDescription = "Generates PoeIt testing data as SQL INSERT statements"

	_, err := parser.Parse()

	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			parser.WriteHelp(os.Stdout)
			os.Exit(0)
		}
		logrus.WithError(err).Fatal("error occurred while parsing flags")
	}

	lvl, _ := logrus.ParseLevel(opts.LogLevel) // err will always be nil
	logrus.SetLevel(lvl)

	logrus.Debug(spew.Sdump(opts))

	if opts.SentryDSN != "" {
		hook, err := sentry.NewHook(sentry.Options{
			Dsn:              opts.SentryDSN,
			AttachStacktrace: true,
			ServerName:       "seedgen",
		}, logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel)

		if err != nil {
			logrus.WithError(err).Fatal("failed to init sentry")
		}

		logrus.AddHook(hook)
	} else {
		logrus.Debug("empty sentry dsn, skip sentry initialization")
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logrus.WithField("seed", seed).Info("generating data")

	g, err := generator.New(mustGetConfig(), seed)
	if err != nil {
		logrus.WithError(err).Fatal("failed to create generator")
	}

	s := impl.New(
		poetrydb.New(opts.PoetryURL, opts.PoetryTimeout, opts.PoetryRetries, opts.PoetryRetryInterval),
		g,
		sqlfile.New(sqlfile.Options{
			Path:         opts.Output,
			Database:     opts.Database,
			PasswordHash: opts.PasswordHash,
			RoleID:       opts.RoleID,
		}),
		impl.Options{
			PoemsPerLines: opts.PoemsPerLines,
			MinLines:      opts.PoemsMinLines,
			MaxLines:      opts.PoemsMaxLines,
		},
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gr, gctx := errgroup.WithContext(ctx)
	gr.Go(func() error {
		defer cancel()

		_, err := s.Run(gctx, time.Now().UTC())
		return err
	})
	gr.Go(func() error {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
		defer signal.Stop(sigs)

		select {
		case sig := <-sigs:
			logrus.Infof("terminating by %s signal", sig)
			cancel()
			return errTerminated
		case <-gctx.Done():
			return nil
		}
	})

	if err := gr.Wait(); err != nil {
		if errors.Is(err, errTerminated) {
			os.Exit(1)
		}
		logrus.WithError(err).Fatal("failed to generate data")
	}

	logrus.WithField("path", opts.Output).Info("done")
}

func mustGetConfig() generator.Config {
	locales, err := generator.ParseLocales(opts.Locales)
	if err != nil {
		logrus.WithError(err).Fatal("failed to parse locales")
	}

	return generator.Config{
		Users:          opts.Users,
		BeginID:        opts.BeginID,
		MaxNameLen:     opts.MaxNameLen,
		Locales:        locales,
		RegisteredFrom: mustParseDate("users.registered_from", opts.RegisteredFrom),
		RegisteredTo:   mustParseDate("users.registered_to", opts.RegisteredTo),

		MaxPoemLen:   opts.PoemsMaxLen,
		MaxReportLen: opts.ReportsMaxLen,

		Favorites: relation(opts.FavoritesFraction, opts.FavoritesMin, opts.FavoritesMax),
		Ratings:   relation(opts.RatingsFraction, opts.RatingsMin, opts.RatingsMax),
		Reports:   relation(opts.ReportsFraction, opts.ReportsMin, opts.ReportsMax),
		Follows:   relation(opts.FollowsFraction, opts.FollowsMin, opts.FollowsMax),

		NegativeRatingWeight: 30,
		PositiveRatingWeight: 70,
	}
}

// relation keeps the historical +1 on every drawn count.
func relation(fraction float64, min, max int) generator.Relation {
	return generator.Relation{
		UsersFraction: fraction,
		Count:         generator.Range{Min: min, Max: max, CountBias: 1},
	}
}

func mustParseDate(name, s string) time.Time {
	t, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		logrus.WithError(err).Fatalf("failed to parse %s", name)
	}

	return t
}
