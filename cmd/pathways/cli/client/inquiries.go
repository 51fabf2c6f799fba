package client

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/mwantia/pathways/internal/agent"
	config "github.com/mwantia/pathways/internal/config/server"
	"github.com/mwantia/pathways/pkg/db/store"
	"github.com/mwantia/pathways/pkg/inquiry"
	"github.com/mwantia/pathways/pkg/log"
	"github.com/spf13/cobra"
)

func NewInquiriesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inquiries",
		Short: "Manage stored consultation requests",
		Long:  "List, show or delete the consultation requests stored by the agent.",
	}

	cmd.PersistentFlags().Bool("json", false, "Print results as JSON")

	cmd.AddCommand(NewInquiriesListCommand())
	cmd.AddCommand(NewInquiriesShowCommand())
	cmd.AddCommand(NewInquiriesRemoveCommand())

	return cmd
}

// withStore opens the configured store for the duration of fn.
func withStore(cmd *cobra.Command, fn func(store.InquiryStore) error) error {
	cfg, err := config.LoadServerConfig()
	if err != nil {
		return err
	}

	logger := log.NewWriterLogger("pathways", cfg.Log, cmd.ErrOrStderr())
	st, err := agent.OpenStore(cmd.Context(), cfg.Metadata, logger.Named("db"))
	if err != nil {
		return err
	}
	if st == nil {
		return fmt.Errorf("no metadata store configured (metadata.type is 'none')")
	}
	defer st.Close()

	return fn(st)
}

func NewInquiriesListCommand() *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List consultation requests, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(st store.InquiryStore) error {
				rows, err := st.ListInquiries(cmd.Context(), limit, offset)
				if err != nil {
					return err
				}

				subs := make([]inquiry.Submission, 0, len(rows))
				for _, row := range rows {
					sub, err := inquiry.FromModel(row)
					if err != nil {
						return err
					}
					subs = append(subs, sub)
				}

				asJSON, _ := cmd.Flags().GetBool("json")
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), subs)
				}
				return printSubmissions(cmd.OutOrStdout(), subs)
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of requests to list")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of requests to skip")

	return cmd
}

func printSubmissions(w io.Writer, subs []inquiry.Submission) error {
	if len(subs) == 0 {
		_, err := fmt.Fprintln(w, "No consultation requests.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "REFERENCE\tSUBMITTED\tNAME\tEMAIL\tGRADE")
	for _, sub := range subs {
		fmt.Fprintf(tw, "%s\t%s\t%s %s\t%s\t%s\n",
			sub.Reference, sub.SubmittedAt.Format(time.DateTime),
			sub.Form.FirstName, sub.Form.LastName, sub.Form.Email, sub.Form.StudentGrade)
	}
	return tw.Flush()
}

func NewInquiriesShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <reference>",
		Short: "Show one consultation request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(st store.InquiryStore) error {
				row, err := st.GetInquiry(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				sub, err := inquiry.FromModel(*row)
				if err != nil {
					return err
				}

				asJSON, _ := cmd.Flags().GetBool("json")
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), sub)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Reference: %s\n", sub.Reference)
				fmt.Fprintf(out, "Submitted: %s\n", sub.SubmittedAt.Format(time.DateTime))
				fmt.Fprintf(out, "Name:      %s %s\n", sub.Form.FirstName, sub.Form.LastName)
				fmt.Fprintf(out, "Email:     %s\n", sub.Form.Email)
				fmt.Fprintf(out, "Phone:     %s\n", sub.Form.Phone)
				fmt.Fprintf(out, "Grade:     %s\n", sub.Form.StudentGrade)
				fmt.Fprintf(out, "Schools:   %s\n", sub.Form.TargetSchools)
				fmt.Fprintf(out, "Message:   %s\n", sub.Form.Message)
				return nil
			})
		},
	}

	return cmd
}

func NewInquiriesRemoveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <reference>",
		Short: "Delete a consultation request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(st store.InquiryStore) error {
				if err := st.DeleteInquiry(cmd.Context(), args[0]); err != nil {
					return err
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
				return err
			})
		},
	}

	return cmd
}
