// Package cmd wires the ja4extract command tree: one subcommand per Zeek
// record family plus "all".
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/zeekwatch/ja4extract/internal/store"
)

var cfgFile string

// rootCmd is the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "ja4extract",
	Short: "Extract JA4 fingerprint records from Zeek logs",
	Long: `ja4extract reads Zeek tab-separated logs (http.log, ssl.log, conn.log,
x509.log), keeps the entries that carry JA4-family fingerprints (JA4H, JA4,
JA4S, JA4T, JA4TS, JA4X), and writes the normalized records as timestamped
CSV and JSON artifacts, optionally mirroring them into a database.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig, initLogging)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: $HOME/.ja4extract.yaml)")
	rootCmd.PersistentFlags().String("log-file", "", "also write diagnostics to this file, with rotation")
	rootCmd.PersistentFlags().String("db", "", "database to also insert surviving records into (file path or connection string)")
	rootCmd.PersistentFlags().String("db-driver", "", "database driver for --db: sqlite, postgres")

	viper.BindPFlag("log.file", rootCmd.PersistentFlags().Lookup("log-file"))
	viper.BindPFlag("db.dsn", rootCmd.PersistentFlags().Lookup("db"))
	viper.BindPFlag("db.driver", rootCmd.PersistentFlags().Lookup("db-driver"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigName(".ja4extract")
		viper.SetConfigType("yaml")
	}

	// Production defaults from the Zeek sensor layout.
	viper.SetDefault("http.input", "/mnt/zeek_logs/current/http.log")
	viper.SetDefault("http.output_dir", "/mnt/zeek_logs/ja4/ja4h_http_hourly")
	viper.SetDefault("ssl.input", "/mnt/zeek_logs/current/ssl.log")
	viper.SetDefault("ssl.output_dir", "/mnt/zeek_logs/ja4/ja4s_ssl_hourly")
	viper.SetDefault("tcp.input", "/mnt/zeek_logs/current/conn.log")
	viper.SetDefault("tcp.output_dir", "/mnt/zeek_logs/ja4/ja4t_ja4ts_hourly")
	viper.SetDefault("x509.input", "/mnt/zeek_logs/current/x509.log")
	viper.SetDefault("x509.output_dir", "/mnt/zeek_logs/ja4/ja4x_x509_hourly")
	viper.SetDefault("db.driver", "sqlite")

	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}

func initLogging() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if lf := viper.GetString("log.file"); lf != "" {
		rotator := &lumberjack.Logger{
			Filename:   lf,
			MaxSize:    50, // MB
			MaxBackups: 3,
			MaxAge:     28, // days
		}
		logrus.SetOutput(io.MultiWriter(os.Stderr, rotator))
	}
}

// openStore opens the optional database sink if one is configured.
// Returns nil when no database was requested; failures are reported and
// swallowed so file artifacts are unaffected.
func openStore() store.Store {
	dsn := viper.GetString("db.dsn")
	if dsn == "" {
		return nil
	}

	st, err := store.Open(viper.GetString("db.driver"), dsn)
	if err != nil {
		logrus.Errorf("Opening record database: %v", err)
		return nil
	}
	return st
}
