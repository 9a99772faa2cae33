package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/prospect-search/internal/model"
)

var searchQuery model.SearchQuery

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run one aggregated company search and print the result as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		aggregator := buildAggregator(cfg)

		resp, err := aggregator.Search(cmd.Context(), searchQuery)
		if err != nil {
			return eris.Wrap(err, "search")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	},
}

func init() {
	f := searchCmd.Flags()
	f.StringVar(&searchQuery.Industry, "industry", "", "industry terms, comma separated")
	f.StringVar(&searchQuery.ExcludeIndustries, "exclude-industries", "", "industry terms to exclude, comma separated")
	f.StringVar(&searchQuery.Keywords, "keywords", "", "keyword terms, comma separated")
	f.StringVar(&searchQuery.ExcludeKeywords, "exclude-keywords", "", "keyword terms to exclude, comma separated")
	f.StringVar(&searchQuery.Location, "location", "", "location terms, comma separated")
	f.StringVar(&searchQuery.ExcludeLocations, "exclude-locations", "", "location terms to exclude, comma separated")
	f.IntVar(&searchQuery.EmployeeMin, "employee-min", 0, "minimum employee count")
	f.IntVar(&searchQuery.EmployeeMax, "employee-max", 0, "maximum employee count")
	f.StringSliceVar(&searchQuery.CompanySizes, "company-size", nil, "company size buckets, e.g. 11-50")
	f.StringSliceVar(&searchQuery.CompanyTypes, "company-type", nil, "company type filters, e.g. private")
	f.StringSliceVar(&searchQuery.Technologies, "technology", nil, "technology filters")
	f.StringSliceVar(&searchQuery.SICCodes, "sic-code", nil, "SIC code filters")
	f.StringVar(&searchQuery.RevenueRange, "revenue-range", "", "annual revenue bucket filter")
	f.StringVar(&searchQuery.FundingStage, "funding-stage", "", "latest funding stage filter")
	f.StringSliceVar(&searchQuery.Signals, "signal", nil, "hiring or intent signal filters")
	f.IntVar(&searchQuery.Page, "page", 0, "result page")
	f.IntVar(&searchQuery.Limit, "limit", 0, "results per page")

	rootCmd.AddCommand(searchCmd)
}
