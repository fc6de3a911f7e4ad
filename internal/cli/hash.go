package cli

import (
	"github.com/pterm/pterm"
	"github.com/ykhdr/hashprobe/internal/hashdesc"
	"github.com/ykhdr/hashprobe/internal/verifier"
)

func (a *App) runHash(args []string) error {
	fs := newFlagSet("hash")
	password := fs.String("p", "", "Password to hash")
	cost := fs.Int("cost", hashdesc.SupportedCost, "bcrypt cost; only 10 can be cracked by this tool")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *password == "" {
		pterm.Error.Println("password (-p) must not be empty")
		fs.Usage()
		return errUsage
	}
	h, err := verifier.HashPassword(*password, *cost)
	if err != nil {
		return err
	}
	if *cost != hashdesc.SupportedCost {
		pterm.Warning.Printfln("cost %d is not supported by crack", *cost)
	}
	pterm.Success.Printfln("Hash (cost %d): %s", *cost, h)
	return nil
}
