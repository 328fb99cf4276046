package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"hostelhub/internal/model"
	"hostelhub/internal/service"

	"github.com/spf13/cobra"
)

func newSearchCmd(a *app) *cobra.Command {
	var (
		req      model.SearchRequest
		priceMin string
		priceMax string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Filter and sort hostel listings",
		Example: `  hostelctl search --region Nairobi --max 16000 --sort price-low
  hostelctl search umoja --amenity wifi --amenity laundry --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				req.Query = args[0]
			}
			req.PriceMin = model.FlexNumber(priceMin)
			req.PriceMax = model.FlexNumber(priceMax)

			svc := service.NewListingService(a.repo, service.NewFilter(a.dir), service.NewValidator(a.dir), a.logger, 20, 100)
			resp, err := svc.Search(cmd.Context(), req)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(resp)
			}
			return printResults(cmd, resp)
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.University, "university", "", "Only listings near this university")
	f.StringVar(&req.Region, "region", "", "Only listings in this town or area")
	f.StringVar(&priceMin, "min", "", "Minimum monthly price (KSh)")
	f.StringVar(&priceMax, "max", "", "Maximum monthly price (KSh)")
	f.StringSliceVar(&req.Amenities, "amenity", nil, "Required amenity (repeatable or comma separated)")
	f.StringVar(&req.Sort, "sort", "newest", "Sort order: newest, price-low, price-high, rating, name")
	f.IntVar(&req.Page, "page", 1, "Result page")
	f.IntVar(&req.PageSize, "page-size", 20, "Results per page")
	f.BoolVar(&asJSON, "json", false, "Print the full response as JSON")
	return cmd
}

func printResults(cmd *cobra.Command, resp *model.SearchResponse) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d hostel(s) found, page %d of %d\n\n", resp.Total, resp.Page, max(resp.TotalPages, 1))

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tRATING\tUNIVERSITY\tAMENITIES")
	for _, r := range resp.Results {
		fmt.Fprintf(w, "%s\t%s\t%.0f\t%.1f\t%s\t%s\n",
			r.ID, r.Name, r.Price, r.Rating, r.University, strings.Join(r.Amenities, ", "))
	}
	return w.Flush()
}
