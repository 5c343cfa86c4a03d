package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-errors/errors"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/privacybydesign/gsjoin"
	"github.com/privacybydesign/gsjoin/gskeys"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "gsjoin",
	Short: "Join a BN254 group signature scheme as a member",
	Long: `gsjoin performs the user side of the join protocol of a group signature
scheme. The protocol consists of two steps around a round trip to the issuer:

  gsjoin start  --challenge NONCE --session FILE
  gsjoin finish --pubkey KEY --session FILE --response HEX

Flags can also be set in $HOME/.gsjoin/config.yml or through GSJOIN_*
environment variables.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(viper.GetString("loglevel"))
		if err != nil {
			return errors.WrapPrefix(err, "invalid log level", 0)
		}
		gsjoin.Logger.SetLevel(level)
		return nil
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.gsjoin/config.yml)")
	flags.StringP("loglevel", "l", "info", "one of trace|debug|info|warn|error")
	flags.String("pubkey", "", "file containing the hex encoded group public key")
	flags.String("session", "", "file holding the join session between start and finish")

	for _, key := range []string{"loglevel", "pubkey", "session"} {
		if err := viper.BindPFlag(key, flags.Lookup(key)); err != nil {
			panic(err)
		}
	}
	viper.SetEnvPrefix("gsjoin")
	viper.AutomaticEnv()
}

// initConfig reads the config file, if there is one.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			gsjoin.Logger.Warn("cannot determine home directory: ", err)
			return
		}
		viper.AddConfigPath(filepath.Join(home, ".gsjoin"))
		viper.SetConfigType("yml")
		viper.SetConfigName("config")
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && cfgFile == "" {
			return
		}
		fmt.Fprintln(os.Stderr, "cannot read config file:", err)
		os.Exit(1)
	}
	gsjoin.Logger.Debug("using config file ", viper.ConfigFileUsed())
}

// loadPublicKey loads the group public key named by the pubkey setting. It
// returns nil if the setting is empty and the key is optional.
func loadPublicKey(required bool) (*gskeys.PublicKey, error) {
	filename := viper.GetString("pubkey")
	if filename == "" {
		if required {
			return nil, errors.New("no group public key given, use --pubkey")
		}
		return nil, nil
	}
	pk, err := gskeys.NewPublicKeyFromFile(filename)
	if err != nil {
		return nil, errors.WrapPrefix(err, "failed to load group public key", 0)
	}
	return pk, nil
}

func sessionFile() (string, error) {
	filename := viper.GetString("session")
	if filename == "" {
		return "", errors.New("no session file given, use --session")
	}
	return filename, nil
}
