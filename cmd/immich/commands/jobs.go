package commands

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/guanana/immich-lib/pkg/immich"
)

// NewJobsCommand creates the jobs command group
func NewJobsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "jobs",
		Aliases: []string{"job"},
		Short:   "Manage background jobs",
		Long:    "Inspect and control the server's background job queues (admin only)",
	}

	cmd.AddCommand(newJobsListCommand())
	cmd.AddCommand(newJobsStartCommand())
	cmd.AddCommand(newJobsQueueCommand("pause", "Pause a job queue", immich.JobCommandPause))
	cmd.AddCommand(newJobsQueueCommand("resume", "Resume a paused job queue", immich.JobCommandResume))
	cmd.AddCommand(newJobsQueueCommand("empty", "Drop waiting jobs from a queue", immich.JobCommandEmpty))
	cmd.AddCommand(newJobsQueueCommand("clear-failed", "Clear failed jobs from a queue", immich.JobCommandClearFailed))

	return cmd
}

func newJobsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List job queues",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			jobs, err := client.Jobs().List(ctx)
			if err != nil {
				return fmt.Errorf("failed to list jobs: %w", err)
			}

			return renderJobs(cmd.OutOrStdout(), jobs)
		},
	}
}

func newJobsStartCommand() *cobra.Command {
	var (
		force bool
		wait  bool
	)

	cmd := &cobra.Command{
		Use:   "start QUEUE",
		Short: "Start a job queue",
		Long:  "Start a job queue, for example thumbnailGeneration or smartSearch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			name := immich.JobName(args[0])

			status, err := client.Jobs().Command(ctx, name, &immich.JobCommandRequest{
				Command: immich.JobCommandStart,
				Force:   force,
			})
			if err != nil {
				return fmt.Errorf("failed to start job: %w", err)
			}

			if wait {
				status, err = client.Jobs().WaitIdle(ctx, name)
				if err != nil {
					return fmt.Errorf("failed waiting for job: %w", err)
				}
			}

			return renderJobs(cmd.OutOrStdout(), map[string]immich.JobStatus{args[0]: *status})
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "process every asset, not only those missing the job's output")
	cmd.Flags().BoolVar(&wait, "wait", false, "wait until the queue is idle")

	return cmd
}

func newJobsQueueCommand(use, short string, command immich.JobCommand) *cobra.Command {
	return &cobra.Command{
		Use:   use + " QUEUE",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			status, err := client.Jobs().Command(ctx, immich.JobName(args[0]), &immich.JobCommandRequest{Command: command})
			if err != nil {
				return fmt.Errorf("failed to %s job: %w", use, err)
			}

			return renderJobs(cmd.OutOrStdout(), map[string]immich.JobStatus{args[0]: *status})
		},
	}
}

func renderJobs(w io.Writer, jobs map[string]immich.JobStatus) error {
	return render(w, jobs, []string{"Queue", "Active", "Waiting", "Failed", "Completed", "Paused"}, func() [][]string {
		names := make([]string, 0, len(jobs))
		for name := range jobs {
			names = append(names, name)
		}

		sort.Strings(names)

		rows := make([][]string, 0, len(names))
		for _, name := range names {
			status := jobs[name]
			rows = append(rows, []string{
				name,
				strconv.Itoa(status.JobCounts.Active),
				strconv.Itoa(status.JobCounts.Waiting),
				strconv.Itoa(status.JobCounts.Failed),
				strconv.Itoa(status.JobCounts.Completed),
				yesNo(status.QueueStatus.IsPaused),
			})
		}

		return rows
	})
}
