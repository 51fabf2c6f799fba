package client

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	config "github.com/mwantia/pathways/internal/config/server"
	"github.com/mwantia/pathways/pkg/catalog"
	"github.com/mwantia/pathways/pkg/match"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func NewMatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Run the matching engine against the built-in catalogs",
		Long:  "Filter the college and transfer program catalogs and compare colleges without starting the agent.",
	}

	cmd.PersistentFlags().Bool("json", false, "Print results as JSON")

	cmd.AddCommand(NewMatchCollegesCommand())
	cmd.AddCommand(NewMatchProgramsCommand())
	cmd.AddCommand(NewMatchCompareCommand())

	return cmd
}

// changedFields collects the criteria flags that were set on the command line.
func changedFields(flags *pflag.FlagSet, names map[string]string) map[string]string {
	fields := map[string]string{}
	for flag, field := range names {
		if f := flags.Lookup(flag); f != nil && f.Changed {
			fields[field] = f.Value.String()
		}
	}
	return fields
}

func tolerances() (match.Tolerances, error) {
	cfg, err := config.LoadServerConfig()
	if err != nil {
		return match.Tolerances{}, err
	}
	return match.Tolerances{GPA: cfg.Match.GPATolerance, Score: cfg.Match.ScoreTolerance}, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func NewMatchCollegesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "colleges",
		Short: "List colleges matching the given criteria",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fields := changedFields(cmd.Flags(), map[string]string{
				"gpa":            match.FieldGPA,
				"sat":            match.FieldSAT,
				"budget":         match.FieldBudget,
				"acceptance-min": match.FieldAcceptanceMin,
				"acceptance-max": match.FieldAcceptanceMax,
				"types":          match.FieldTypes,
				"interests":      match.FieldInterests,
				"locations":      match.FieldLocations,
			})

			criteria, err := match.CollegeCriteria{}.Apply(fields)
			if err != nil {
				return err
			}
			tol, err := tolerances()
			if err != nil {
				return err
			}

			res := match.MatchColleges(catalog.Colleges(), criteria, tol)
			asJSON, _ := cmd.Flags().GetBool("json")
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			return printColleges(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().String("gpa", "", "Unweighted GPA (0-4.0)")
	cmd.Flags().String("sat", "", "SAT score (0-1600)")
	cmd.Flags().String("budget", "", "Maximum yearly tuition")
	cmd.Flags().String("acceptance-min", "", "Minimum acceptance rate in percent")
	cmd.Flags().String("acceptance-max", "", "Maximum acceptance rate in percent")
	cmd.Flags().String("types", "", "Comma separated school types (Public, Private)")
	cmd.Flags().String("interests", "", "Comma separated interests")
	cmd.Flags().String("locations", "", "Comma separated two-letter state codes")

	return cmd
}

func printColleges(w io.Writer, res match.Result[catalog.College]) error {
	if res.NoMatches() {
		_, err := fmt.Fprintln(w, "No colleges match your criteria.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tLOCATION\tTYPE\tGPA\tSAT\tACCEPTANCE\tTUITION")
	for _, c := range res.Items {
		fmt.Fprintf(tw, "%d\t%s\t%s, %s\t%s\t%.2f\t%d\t%.1f%%\t$%d\n",
			c.ID, c.Name, c.Location, c.State, c.Type, c.AvgGPA, c.AvgSAT, c.AcceptanceRate, c.Tuition)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\n%d of %d colleges\n", res.Matched(), res.Total)
	return err
}

func NewMatchProgramsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "programs",
		Short: "List transfer programs open to the given GPA",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fields := changedFields(cmd.Flags(), map[string]string{
				"gpa":        match.FieldGPA,
				"majors":     match.FieldMajors,
				"agreements": match.FieldAgreements,
			})

			criteria, err := match.TransferCriteria{}.Apply(fields)
			if err != nil {
				return err
			}

			res := match.MatchPrograms(catalog.Programs(), criteria)
			asJSON, _ := cmd.Flags().GetBool("json")
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			return printPrograms(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().String("gpa", "", "Community college GPA (0-4.0)")
	cmd.Flags().String("majors", "", "Comma separated majors")
	cmd.Flags().String("agreements", "", "Comma separated agreement types (TAG, TAP, Articulation, Guarantee)")

	return cmd
}

func printPrograms(w io.Writer, res match.Result[catalog.TransferProgram]) error {
	if res.NoMatches() {
		_, err := fmt.Fprintln(w, "No transfer programs match your criteria.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCOLLEGE\tAGREEMENT\tGPA\tPARTNERS")
	for _, p := range res.Items {
		partners := make([]string, len(p.Partners))
		for i, partner := range p.Partners {
			partners[i] = partner.Name
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.1f-%.1f\t%s\n",
			p.ID, p.CollegeName, p.Agreement, p.MinGPA, p.MaxGPA, strings.Join(partners, ", "))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\n%d of %d programs\n", res.Matched(), res.Total)
	return err
}

func NewMatchCompareCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <college-id>...",
		Short: "Compare colleges side by side",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			colleges := catalog.Colleges()

			sel := match.NewSelection()
			for _, arg := range args {
				id, err := strconv.Atoi(arg)
				if err != nil || !colleges.Has(id) {
					return fmt.Errorf("unknown college '%s'", arg)
				}
				if !sel.Contains(id) {
					sel = sel.Toggle(id)
				}
			}

			comparison, err := match.Project(colleges, sel)
			if err != nil {
				return err
			}

			asJSON, _ := cmd.Flags().GetBool("json")
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), comparison)
			}
			return printComparison(cmd.OutOrStdout(), comparison)
		},
	}

	return cmd
}

func printComparison(w io.Writer, comparison match.Comparison) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, row := range comparison.Rows {
		cells := make([]string, 0, len(row.Values)+1)
		cells = append(cells, row.Field.Label)
		for _, v := range row.Values {
			cells = append(cells, fmt.Sprint(v))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}
