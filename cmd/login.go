package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/ferd/folio"
)

type loginCmd struct {
	key    string
	secret string
}

func (*loginCmd) Name() string     { return "login" }
func (*loginCmd) Synopsis() string { return "store provider credentials in an encrypted file" }
func (*loginCmd) Usage() string {
	return `login -key <api-key-id> -secret <api-secret>

  Encrypts the provider credentials with a passphrase taken from the
  FOLIO_PASSPHRASE environment variable and stores them in the configured
  credentials file. The environment variables FOLIO_API_KEY_ID and
  FOLIO_API_SECRET_KEY always take precedence over the file.
`
}

func (c *loginCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.key, "key", "", "Provider API key ID")
	f.StringVar(&c.secret, "secret", "", "Provider API secret key")
}

func (c *loginCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.key == "" || c.secret == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	passphrase := os.Getenv("FOLIO_PASSPHRASE")
	if passphrase == "" {
		fmt.Fprintln(os.Stderr, "FOLIO_PASSPHRASE must be set to encrypt the credentials file")
		return subcommands.ExitUsageError
	}

	cfg, err := appConfig()
	if err != nil {
		return fail(err)
	}
	creds := folio.Credentials{APIKey: c.key, APISecret: c.secret}
	if err := folio.SaveCredentials(cfg.CredentialsFile, creds, passphrase); err != nil {
		return fail(err)
	}
	fmt.Printf("Credentials saved to %s\n", cfg.CredentialsFile)
	return subcommands.ExitSuccess
}
