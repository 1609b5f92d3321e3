package config

import (
	"flag"
	"fmt"

	"github.com/agbru/bincross/internal/ui"
)

// setCustomUsage installs a themed usage screen on fs.
func setCustomUsage(fs *flag.FlagSet) {
	fs.Usage = func() {
		t := ui.GetCurrentTheme()
		if ui.NoColorRequested() {
			t = ui.NoColorTheme
		}
		out := fs.Output()

		fmt.Fprintf(out, "\n%sbincross%s\n", t.Bold, t.Reset)
		fmt.Fprintf(out, "Sweeps n = 1..max and records where C(n,k) crosses 2^128.\n\n")
		fmt.Fprintf(out, "%sUsage:%s\n  %s [flags]\n\n%sFlags:%s\n", t.Warning, t.Reset, fs.Name(), t.Warning, t.Reset)

		fs.VisitAll(func(f *flag.Flag) {
			name, usage := flag.UnquoteUsage(f)
			sig := "-" + f.Name
			if name != "" {
				sig += " " + name
			}
			fmt.Fprintf(out, "  %s%-24s%s %s", t.Primary, sig, t.Reset, usage)
			if f.DefValue != "" && f.DefValue != "0" && f.DefValue != "false" {
				fmt.Fprintf(out, " %s(default %s)%s", t.Secondary, f.DefValue, t.Reset)
			}
			fmt.Fprintln(out)
		})
		fmt.Fprintf(out, "\nEvery flag can also be set with a %s* environment variable (e.g. %sMAX_N=500)\n", EnvPrefix, EnvPrefix)
		fmt.Fprintln(out, "or in the YAML file named by -config. Flags take precedence over both.")
		fmt.Fprintln(out)
	}
}
