// Package cmd provides the blog command line interface. Configuration is
// layered: site.yaml (or the file named by --config / BLOG_CONFIG), then
// BLOG_* environment variables, then flags.
package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/yunus25jmi1/personal-Blog-website/internal/domain/config"
	"github.com/yunus25jmi1/personal-Blog-website/internal/logger"
)

var (
	cfgFile string
	log     *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "blog",
	Short: "Static blog generator",
	Long: `blog turns a directory of Markdown files into a static site.

Content lives under content/posts and content/pages, themes under themes/,
and site.yaml configures the rest.

Quick start:
  blog build                  Generate the site into public/
  blog serve                  Preview with live reload
  blog audit                  Verify the generated output`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		initViper()
		log = logger.NewLogger(viper.GetString("log.level"), viper.GetString("log.format"))
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default site.yaml, also BLOG_CONFIG)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "log format (text, json)")
	bindFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	bindFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
}

func bindFlag(key string, f *pflag.Flag) {
	if err := viper.BindPFlag(key, f); err != nil {
		panic(err)
	}
}

func initViper() {
	viper.SetEnvPrefix("BLOG")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
}

func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	if env := viper.GetString("config"); env != "" {
		return env
	}
	return "site.yaml"
}

// loadConfig reads the config file, applies viper overrides, and validates
// the result.
func loadConfig() (config.Config, error) {
	cfg, err := config.LoadOrDefault(configPath())
	if err != nil {
		return cfg, err
	}

	if v := viper.GetString("serve.addr"); v != "" {
		cfg.Serve.Addr = v
	}
	if v := viper.GetString("build.output"); v != "" {
		cfg.Build.OutputDir = v
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
