package main

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/contactkeval/box-arb/internal/config"
	"github.com/contactkeval/box-arb/internal/logger"
)

var verbosity int

var rootCmd = &cobra.Command{
	Use:   "boxarb",
	Short: "Scans option chains for box-spread arbitrage candidates",
	Long: `boxarb detects riskless-arbitrage candidates in an options chain. For a fixed
underlying and expiration it evaluates strike pairs, prices the box spread from
the executable bid/ask legs, and reports pairs whose market price deviates from
the discounted guaranteed payoff by more than the configured minimum profit.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetVerbosity(verbosity)
		config.LoadEnv()
	},
}

func main() {
	rootCmd.PersistentFlags().IntVarP(&verbosity, "verbosity", "v", 1, "log verbosity: 0=errors, 1=info, 2=debug, 3=trace")
	rootCmd.AddCommand(scanCmd, reportCmd, volCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
