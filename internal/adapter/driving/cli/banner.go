package cli

import (
	"fmt"
	"io"

	"github.com/diillson/aws-carbon-emissions-go/pkg/version"
	"github.com/fatih/color"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner(w io.Writer) {
	banner := `
    ___ _       _______    ______           __
   /   | |     / / ___/   / ____/___ ______/ /_  ____  ____
  / /| | | /| / /\__ \   / /   / __ ` + "`" + `/ ___/ __ \/ __ \/ __ \
 / ___ | |/ |/ /___/ /  / /___/ /_/ / /  / /_/ / /_/ / / / /
/_/  |_|__/|__//____/   \____/\__,_/_/  /_.___/\____/_/ /_/
`
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Fprintln(w, green(banner))
	fmt.Fprintln(w, blue(fmt.Sprintf("AWS Carbon Emissions CLI (v%s)", version.FormatVersion())))
}
