package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sgrouples/iplookups"
	"github.com/sgrouples/iplookups/alog"
)

func newRootCmd() *cobra.Command {
	var (
		configFile string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "iplookup address...",
		Short: "Resolve addresses to location, ISP, organization, domain, and connection type.",
		Long: `Resolve addresses against locally configured geo databases.

Each category is served by its own database file; a category without a file
stays absent from the output. Failures are reported per category, the command
itself only fails if the databases cannot be opened.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			vip := iplookups.DefaultViper()
			vip.SetEnvPrefix("IPLOOKUPS")
			vip.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
			vip.AutomaticEnv()

			for key, flag := range map[string]string{
				"databases.geo_file":             "geo-file",
				"databases.isp_file":             "isp-file",
				"databases.domain_file":          "domain-file",
				"databases.connection_type_file": "connection-type-file",
				"databases.ip2location_file":     "ip2location-file",
				"cache.size":                     "cache-size",
				"cache.memory_cache":             "memory-cache",
				"cache.memory_cache_size":        "memory-cache-size",
			} {
				if err := vip.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
					return fmt.Errorf("could not bind flag %s: %w", flag, err)
				}
			}

			if configFile != "" {
				vip.SetConfigFile(configFile)

				if err := vip.ReadInConfig(); err != nil {
					return fmt.Errorf("could not read config file: %w", err)
				}
			}

			conf := &iplookups.Config{}
			if err := vip.Unmarshal(conf); err != nil {
				return err
			}

			logger := alog.New()
			if verbose {
				logger = alog.NewDevelopment()
			}

			lookups, err := iplookups.NewIPLookups(conf, iplookups.WithLogger(logger))
			if err != nil {
				return err
			}

			defer func() { _ = lookups.Close() }()

			type lookupOutput struct {
				IP     string           `json:"ip"`
				Result iplookups.Result `json:"result"`
			}

			output := make([]lookupOutput, 0, len(args))
			for _, rawIP := range args {
				output = append(output, lookupOutput{
					IP:     rawIP,
					Result: lookups.Lookup(cmd.Context(), rawIP),
				})
			}

			buf, err := json.MarshalIndent(output, "", "  ")
			if err != nil {
				return fmt.Errorf("could not marshal results: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(buf))

			return nil
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "config file to load")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log what is going on to stderr")
	cmd.Flags().String("geo-file", "", "MaxMind city database for the location category")
	cmd.Flags().String("isp-file", "", "MaxMind ISP database, serves isp and organization")
	cmd.Flags().String("domain-file", "", "MaxMind domain database")
	cmd.Flags().String("connection-type-file", "", "MaxMind connection type database")
	cmd.Flags().String("ip2location-file", "", "IP2Location .BIN database for the location category")
	cmd.Flags().Int("cache-size", 10000, "bound of the result cache, 0 disables memoization")
	cmd.Flags().Bool("memory-cache", true, "give each database reader its own read-through cache")
	cmd.Flags().Int("memory-cache-size", 4096, "bound of each reader's read-through cache")

	return cmd
}
