package cmd

import (
	"log"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	authorityKey = "authority"
	indexKey     = "index"
	logLevelKey  = "loglevel"
)

// bindConfig lets global flags be set from the environment or a config file
func bindConfig(flags *pflag.FlagSet) {
	for key, env := range map[string]string{
		authorityKey: "DATA_AUTHORITY",
		indexKey:     "DATA_INDEX",
		logLevelKey:  "DATATOOL_LOGLEVEL",
	} {
		if err := viper.BindPFlag(key, flags.Lookup(key)); err != nil {
			logFatalln(err)
		}
		if err := viper.BindEnv(key, env); err != nil {
			logFatalln(err)
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	viper.SetDefault(logLevelKey, "info")
	if os.Getenv("DATATOOL_CONFIG") != "" {
		// Use config file from the flag.
		viper.SetConfigFile(os.Getenv("DATATOOL_CONFIG"))
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.datatool")
		viper.SetConfigName("datatool")
	}

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		log.Println("Using config file:", viper.ConfigFileUsed())
	}
}
