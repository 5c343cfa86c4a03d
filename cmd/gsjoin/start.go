package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/go-errors/errors"
	"github.com/spf13/cobra"

	"github.com/privacybydesign/gsjoin"
	"github.com/privacybydesign/gsjoin/cbor"
	"github.com/privacybydesign/gsjoin/internal/common"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Create a join request for the issuer's challenge",
	Long: `start generates a fresh membership secret and a join request answering
the issuer's challenge. The secret is written to the session file, which must
not exist yet; the hex encoded request is printed on stdout.

If --pubkey is given the session can only be finished with that key.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		challenge, _ := cmd.Flags().GetString("challenge")
		seedHex, _ := cmd.Flags().GetString("seed")
		filename, err := sessionFile()
		if err != nil {
			return err
		}
		pk, err := loadPublicKey(false)
		if err != nil {
			return err
		}

		m, err := newManager(seedHex)
		if err != nil {
			return err
		}
		start, err := m.StartJoin([]byte(challenge))
		if err != nil {
			return err
		}
		session := gsjoin.NewJoinSession(start, pk)
		defer session.Erase()
		defer start.Secret.Erase()

		if err = writeSession(filename, session); err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(start.Request.Bytes()))
		return err
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
	startCmd.Flags().String("challenge", "", "challenge received from the issuer")
	startCmd.Flags().String("seed", "", "hex encoded seed for reproducible requests; never use in production")
	_ = startCmd.MarkFlagRequired("challenge")
}

func newManager(seedHex string) (*gsjoin.Manager, error) {
	if seedHex == "" {
		return gsjoin.NewManager()
	}
	seed, err := hex.DecodeString(seedHex)
	if err != nil {
		return nil, errors.WrapPrefix(err, "seed is not valid hex", 0)
	}
	defer common.Erase(seed)
	return gsjoin.NewManagerWithSeed(seed)
}

func writeSession(filename string, session *gsjoin.JoinSession) error {
	f, err := os.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return errors.WrapPrefix(err, "failed to create session file", 0)
	}
	defer common.Close(f)
	if err = cbor.NewEncoder(f).Encode(session); err != nil {
		return errors.WrapPrefix(err, "failed to write session file", 0)
	}
	return f.Sync()
}
