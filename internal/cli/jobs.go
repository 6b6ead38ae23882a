package cli

import (
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/mimiry/mimiry-go"
	"github.com/spf13/cobra"
)

var (
	submitName             string
	submitInstanceType     string
	submitImage            string
	submitLocation         string
	submitSSHKeys          []string
	submitScriptPath       string
	submitProvider         string
	submitNoAutoShutdown   bool
	submitHeartbeatTimeout int
	submitMaxRuntime       int
	submitWait             bool

	waitPollInterval time.Duration
	waitTimeout      time.Duration
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Manage batch jobs",
}

var jobsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all jobs",
	RunE:  runJobsList,
}

var jobsGetCmd = &cobra.Command{
	Use:   "get <job-id>",
	Short: "Show details of a job",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobsGet,
}

var jobsSubmitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit a new batch job",
	RunE:  runJobsSubmit,
}

var jobsCancelCmd = &cobra.Command{
	Use:   "cancel <job-id>",
	Short: "Cancel a running or queued job",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobsCancel,
}

var jobsWaitCmd = &cobra.Command{
	Use:   "wait <job-id>",
	Short: "Block until a job reaches a terminal status",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobsWait,
}

func init() {
	jobsSubmitCmd.Flags().StringVar(&submitName, "name", "", "job name")
	jobsSubmitCmd.Flags().StringVar(&submitInstanceType, "instance-type", "", "GPU instance type, e.g. 1V100.6V")
	jobsSubmitCmd.Flags().StringVar(&submitImage, "image", "", "OS image code, e.g. ubuntu-22.04-cuda-12.0")
	jobsSubmitCmd.Flags().StringVar(&submitLocation, "location", "", "datacenter code, e.g. FIN-01")
	jobsSubmitCmd.Flags().StringSliceVar(&submitSSHKeys, "ssh-key", nil, "SSH key id to inject (repeatable)")
	jobsSubmitCmd.Flags().StringVar(&submitScriptPath, "startup-script", "", "path to a bash script to run on boot")
	jobsSubmitCmd.Flags().StringVar(&submitProvider, "provider", "", "cloud provider slug")
	jobsSubmitCmd.Flags().BoolVar(&submitNoAutoShutdown, "no-auto-shutdown", false, "keep the instance alive after the script finishes")
	jobsSubmitCmd.Flags().IntVar(&submitHeartbeatTimeout, "heartbeat-timeout", 0, "seconds without heartbeat before the job is marked stale")
	jobsSubmitCmd.Flags().IntVar(&submitMaxRuntime, "max-runtime", 0, "hard runtime limit in seconds (0 = no limit)")
	jobsSubmitCmd.Flags().BoolVar(&submitWait, "wait", false, "block until the job finishes")
	_ = jobsSubmitCmd.MarkFlagRequired("name")
	_ = jobsSubmitCmd.MarkFlagRequired("instance-type")
	_ = jobsSubmitCmd.MarkFlagRequired("image")
	_ = jobsSubmitCmd.MarkFlagRequired("location")

	for _, c := range []*cobra.Command{jobsSubmitCmd, jobsWaitCmd} {
		c.Flags().DurationVar(&waitPollInterval, "poll-interval", 10*time.Second, "seconds between status checks")
		c.Flags().DurationVar(&waitTimeout, "timeout", time.Hour, "maximum time to wait")
	}

	jobsCmd.AddCommand(jobsListCmd, jobsGetCmd, jobsSubmitCmd, jobsCancelCmd, jobsWaitCmd)
	rootCmd.AddCommand(jobsCmd)
}

func runJobsList(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := commandContext()
	defer cancel()

	jobs, err := client.ListJobs(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tSTATUS\tPROVIDER\tTYPE\tCREATED")
	for _, j := range jobs {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			j.ID, j.Name, j.Status, j.Provider, j.InstanceType, j.CreatedAt)
	}
	return w.Flush()
}

func runJobsGet(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := commandContext()
	defer cancel()

	job, err := client.GetJob(ctx, args[0])
	if err != nil {
		return err
	}
	printJob(job)
	return nil
}

func runJobsSubmit(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := commandContext()
	defer cancel()

	req := mimiry.SubmitJobRequest{
		Name:                    submitName,
		InstanceType:            submitInstanceType,
		Image:                   submitImage,
		Location:                submitLocation,
		SSHKeyIDs:               submitSSHKeys,
		Provider:                submitProvider,
		HeartbeatTimeoutSeconds: submitHeartbeatTimeout,
	}
	if submitScriptPath != "" {
		script, err := os.ReadFile(submitScriptPath)
		if err != nil {
			return fmt.Errorf("failed to read startup script: %w", err)
		}
		req.StartupScript = string(script)
	}
	if submitNoAutoShutdown {
		req.AutoShutdown = mimiry.Bool(false)
	}
	if submitMaxRuntime > 0 {
		req.MaxRuntimeSeconds = mimiry.Int(submitMaxRuntime)
	}

	if submitWait {
		job, err := client.SubmitJobAndWait(ctx, req, mimiry.WaitConfig{
			PollInterval: waitPollInterval,
			Timeout:      waitTimeout,
		})
		if err != nil {
			return err
		}
		printJob(job)
		return nil
	}

	job, err := client.SubmitJob(ctx, req)
	if err != nil {
		return err
	}
	slog.Info("Job submitted", "job_id", job.ID, "status", job.Status)
	return nil
}

func runJobsCancel(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := commandContext()
	defer cancel()

	job, err := client.CancelJob(ctx, args[0])
	if err != nil {
		return err
	}
	slog.Info("Job cancelled", "job_id", job.ID, "status", job.Status)
	return nil
}

func runJobsWait(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := commandContext()
	defer cancel()

	job, err := client.WaitForJob(ctx, args[0], mimiry.WaitConfig{
		PollInterval: waitPollInterval,
		Timeout:      waitTimeout,
	})
	if err != nil {
		return err
	}
	printJob(job)
	return nil
}

func printJob(j *mimiry.Job) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintf(w, "ID\t%s\n", j.ID)
	_, _ = fmt.Fprintf(w, "Name\t%s\n", j.Name)
	_, _ = fmt.Fprintf(w, "Status\t%s\n", j.Status)
	_, _ = fmt.Fprintf(w, "Provider\t%s\n", j.Provider)
	_, _ = fmt.Fprintf(w, "Instance\t%s\n", j.InstanceType)
	_, _ = fmt.Fprintf(w, "Image\t%s\n", j.Image)
	_, _ = fmt.Fprintf(w, "Location\t%s\n", j.Location)
	_, _ = fmt.Fprintf(w, "Created\t%s\n", j.CreatedAt)
	if j.StartedAt != "" {
		_, _ = fmt.Fprintf(w, "Started\t%s\n", j.StartedAt)
	}
	if j.CompletedAt != "" {
		_, _ = fmt.Fprintf(w, "Completed\t%s\n", j.CompletedAt)
	}
	if j.ErrorMessage != "" {
		_, _ = fmt.Fprintf(w, "Error\t%s\n", j.ErrorMessage)
	}
	_ = w.Flush()
	if j.Output != "" {
		fmt.Println(j.Output)
	}
}
