package config

import "cricketcli/pkg/contracts"

// Application constants
const (
	AppName    = "cricketcli"
	AppVersion = contracts.Version

	// EnvPrefix namespaces environment variables, e.g. CRICKET_PATHS_INPUT
	EnvPrefix = "CRICKET"

	DefaultInputFile = "cricketers.csv"

	// Chart output files, fixed names relative to the output directory
	AgeDistributionFile   = "age_distribution.png"
	CountryAveragesFile   = "avg_matches_by_country.png"
	TopPlayersFile        = "top_players.png"
	AgeVsTotalMatchesFile = "age_vs_total_matches.png"
	DashboardFile         = "dashboard.png"

	DefaultHistogramBins = 15
	DefaultTopN          = 10
	DefaultChartDPI      = 100
	DefaultDashboardDPI  = 300

	DefaultFooter = "Cricket Analytics Dashboard"
)
