package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"

	"github.com/bitmark-inc/covid-chart/chart"
	"github.com/bitmark-inc/covid-chart/consts"
	"github.com/bitmark-inc/covid-chart/external/tracking"
	"github.com/bitmark-inc/covid-chart/plotter"
	"github.com/bitmark-inc/covid-chart/schema"
)

const envPrefix = "covidchart"

func init() {
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
}

func initLog() {
	logLevel, err := log.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(logLevel)
	}

	log.SetOutput(os.Stdout)

	log.SetFormatter(&prefixed.TextFormatter{
		ForceFormatting: true,
		FullTimestamp:   true,
	})
}

func loadConfig(file string) {
	// Config from file
	viper.SetConfigType("yaml")
	if file != "" {
		viper.SetConfigFile(file)
	}

	viper.AddConfigPath("/.config/")
	viper.AddConfigPath(".")
	err := viper.ReadInConfig()
	if err != nil {
		fmt.Println("No config file. Read config from env.")
		viper.AllowEmptyEnv(false)
	}

	// Config from env if possible
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
}

func bindFlags(flags *pflag.FlagSet) error {
	for key, flag := range map[string]string{
		"average":        "average",
		"state":          "state",
		"positive_start": "positive-start",
	} {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return err
		}
	}
	return nil
}

func newCommand() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:           "covid-chart",
		Short:         "Plot US and US state COVID-19 data",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			loadConfig(configFile)
			initLog()
			return bindFlags(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context())
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&configFile, "config", "c", "", "[optional] path of configuration file")
	flags.Int("average", consts.DefaultAverage, "Number of days to use for running average")
	flags.StringP("state", "s", "", "The state data to display (e.g., ID for Idaho); if not provided the US data is shown.")
	flags.Int("positive-start", consts.DefaultPositiveStart, "Number of positive cases considered for starting the plots")

	return cmd
}

func run(ctx context.Context) error {
	if dsn := viper.GetString("sentry.dsn"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			AttachStacktrace: true,
			Environment:      viper.GetString("sentry.environment"),
		}); err != nil {
			log.Error(err)
		} else {
			log.WithField("prefix", "init").Info("Initialized sentry")
			defer sentry.Flush(2 * time.Second)
		}
	}

	cfg := schema.NewChartConfig(
		viper.GetString("state"),
		viper.GetInt("average"),
		viper.GetInt("positive_start"),
		schema.Sources{
			USURL:    viper.GetString("source.us_url"),
			StateURL: viper.GetString("source.state_url"),
		},
	)

	httpClient := &http.Client{
		Timeout: viper.GetDuration("source.timeout"),
	}

	p := plotter.New(
		tracking.New(httpClient),
		chart.NewPDFRenderer(),
		viper.GetString("output.dir"),
	)
	defer p.LogMetrics()

	if _, err := p.Run(ctx, cfg); err != nil {
		sentry.CaptureException(err)
		return err
	}

	return nil
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newCommand().ExecuteContext(ctx); err != nil {
		log.WithField("prefix", "main").Error(err)
		cancel()
		os.Exit(1)
	}
}
