package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/YanChii/pcstopo/util/logging"
	"github.com/YanChii/pcstopo/util/pcs"
)

var (
	debugFlag   bool
	checkFlag   bool
	logFileFlag string

	log zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:               "pcstopo",
	Short:             "Reconcile the pacemaker/corosync cluster topology with a desired state, using the pcs tool.",
	PersistentPreRunE: persistentPreRunE,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "log debug messages")
	rootCmd.PersistentFlags().BoolVar(&checkFlag, "check", false, "report the commands that would run, execute nothing")
	rootCmd.PersistentFlags().StringVar(&logFileFlag, "log-file", "", "also log to this file")
	viper.SetEnvPrefix("pcstopo")
	viper.AutomaticEnv()
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("check", rootCmd.PersistentFlags().Lookup("check"))
	_ = viper.BindPFlag("log_file", rootCmd.PersistentFlags().Lookup("log-file"))
}

func persistentPreRunE(_ *cobra.Command, _ []string) error {
	debugFlag = viper.GetBool("debug")
	checkFlag = viper.GetBool("check")
	logFileFlag = viper.GetString("log_file")
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if debugFlag {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	config := logging.Config{
		WithConsoleLog: debugFlag,
		WithColor:      false,
	}
	if logFileFlag != "" {
		config.WithLogFile = true
		config.Directory = "."
		config.Filename = logFileFlag
		config.MaxSize = 10
		config.MaxBackups = 3
	}
	log = logging.Configure(config)
	if !pcs.IsCapable() {
		return pcs.ErrNotFound
	}
	return nil
}

// report marshals the result document on stdout, or a failure document
// when the convergence pass returned an error.
func report(result interface{}, err error) error {
	if err != nil {
		doc := map[string]interface{}{
			"failed": true,
			"msg":    err.Error(),
		}
		var xerr *pcs.ExecError
		if errors.As(err, &xerr) {
			doc["cmd"] = xerr.Cmd
			doc["output"] = xerr.Stdout
			doc["error"] = xerr.Stderr
		}
		b, _ := json.Marshal(doc)
		fmt.Println(string(b))
		return err
	}
	b, err := json.Marshal(result)
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
