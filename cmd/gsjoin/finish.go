package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/go-errors/errors"
	"github.com/spf13/cobra"

	"github.com/privacybydesign/gsjoin"
	"github.com/privacybydesign/gsjoin/curve"
)

var finishCmd = &cobra.Command{
	Use:   "finish",
	Short: "Validate the issuer's join response",
	Long: `finish validates the issuer's response against the secret in the session
file and the group public key. On success the hex encoded credential is printed
on stdout. Once the response has been checked the session file is overwritten
and removed, whether the response was accepted or not; after a rejection the
join has to be started again with a new secret.

--response takes the hex encoded response, or @FILE to read it from a file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		filename, err := sessionFile()
		if err != nil {
			return err
		}
		pk, err := loadPublicKey(true)
		if err != nil {
			return err
		}
		respArg, _ := cmd.Flags().GetString("response")
		resp, err := readResponse(respArg)
		if err != nil {
			return err
		}

		sessionBytes, err := os.ReadFile(filename)
		if err != nil {
			return errors.WrapPrefix(err, "failed to read session file", 0)
		}
		session, err := gsjoin.ParseJoinSession(sessionBytes)
		if err != nil {
			return err
		}
		defer session.Erase()
		gsk, _, err := session.Open(pk)
		if err != nil {
			return err
		}

		// FinishJoin consumes the secret whatever its verdict.
		cred, err := gsjoin.FinishJoin(curve.DefaultParams, pk, gsk, resp)
		if err != nil && !errors.Is(err, gsjoin.ErrJoinResponseValidation) {
			return err
		}
		discardSession(filename)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(cred.Bytes()))
		return err
	},
}

func init() {
	rootCmd.AddCommand(finishCmd)
	finishCmd.Flags().String("response", "", "hex encoded join response, or @FILE")
	_ = finishCmd.MarkFlagRequired("response")
}

func readResponse(arg string) (*gsjoin.JoinResponse, error) {
	text := arg
	if strings.HasPrefix(arg, "@") {
		b, err := os.ReadFile(arg[1:])
		if err != nil {
			return nil, errors.WrapPrefix(err, "failed to read response file", 0)
		}
		text = string(bytes.TrimSpace(b))
	}
	b, err := hex.DecodeString(strings.TrimSpace(text))
	if err != nil {
		return nil, errors.WrapPrefix(err, "response is not valid hex", 0)
	}
	return gsjoin.ParseJoinResponse(b)
}

// discardSession overwrites the session file with zeros and removes it.
func discardSession(filename string) {
	if info, err := os.Stat(filename); err == nil {
		if err = os.WriteFile(filename, make([]byte, info.Size()), 0600); err != nil {
			gsjoin.Logger.Warn("failed to overwrite session file: ", err)
		}
	}
	if err := os.Remove(filename); err != nil {
		gsjoin.Logger.Warn("failed to remove session file: ", err)
	}
}
