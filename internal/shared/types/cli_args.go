package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile string
	Today      string
	Accounts   []string
	Backfill   bool
	LogFormat  string
	ReportName string
	ReportType []string
	Dir        string
	Metrics    string
	Remote     bool
}
