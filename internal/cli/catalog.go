package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/mimiry/mimiry-go"
	"github.com/spf13/cobra"
)

var (
	filterProvider     string
	filterCurrency     string
	filterInstanceType string
)

var instancesCmd = &cobra.Command{
	Use:   "instances",
	Short: "List GPU instance types with pricing",
	RunE:  runInstances,
}

var availabilityCmd = &cobra.Command{
	Use:   "availability [instance-type]",
	Short: "Check real-time GPU availability",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAvailability,
}

var locationsCmd = &cobra.Command{
	Use:   "locations",
	Short: "List datacenter locations",
	RunE:  runLocations,
}

var imagesCmd = &cobra.Command{
	Use:   "images",
	Short: "List available OS images",
	RunE:  runImages,
}

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List supported cloud providers",
	RunE:  runProviders,
}

func init() {
	for _, c := range []*cobra.Command{instancesCmd, availabilityCmd, locationsCmd, imagesCmd} {
		c.Flags().StringVar(&filterProvider, "provider", "", "filter by provider slug")
	}
	instancesCmd.Flags().StringVar(&filterCurrency, "currency", "usd", "price currency")
	imagesCmd.Flags().StringVar(&filterInstanceType, "instance-type", "", "filter images compatible with this type")

	rootCmd.AddCommand(instancesCmd, availabilityCmd, locationsCmd, imagesCmd, providersCmd)
}

func runInstances(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := commandContext()
	defer cancel()

	types, err := client.ListInstanceTypes(ctx, mimiry.ListInstanceTypesOptions{
		Currency: filterCurrency,
		Provider: filterProvider,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, "TYPE\tGPU\tCOUNT\tVRAM\tCPU\tRAM\tPRICE/H\tPROVIDER")
	for _, t := range types {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%.0fG\t%d\t%.0fG\t%.2f %s\t%s\n",
			t.InstanceType, t.GPUType, t.GPUCount, t.GPUMemoryGB,
			t.CPUCores, t.RAMGB, t.PricePerHour, t.Currency, t.Provider)
	}
	return w.Flush()
}

func runAvailability(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := commandContext()
	defer cancel()

	var avail []mimiry.Availability
	if len(args) == 1 {
		one, err := client.CheckInstanceAvailability(ctx, args[0], filterProvider)
		if err != nil {
			return err
		}
		avail = []mimiry.Availability{*one}
	} else {
		var err error
		avail, err = client.CheckAvailability(ctx, filterProvider)
		if err != nil {
			return err
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, "TYPE\tAVAILABLE\tLOCATIONS\tPROVIDER")
	for _, a := range avail {
		_, _ = fmt.Fprintf(w, "%s\t%t\t%v\t%s\n",
			a.InstanceType, a.IsAvailable, a.Locations, a.Provider)
	}
	return w.Flush()
}

func runLocations(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := commandContext()
	defer cancel()

	locs, err := client.ListLocations(ctx, filterProvider)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, "CODE\tNAME\tCOUNTRY\tPROVIDER")
	for _, l := range locs {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", l.Code, l.Name, l.Country, l.Provider)
	}
	return w.Flush()
}

func runImages(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := commandContext()
	defer cancel()

	images, err := client.ListImages(ctx, mimiry.ListImagesOptions{
		InstanceType: filterInstanceType,
		Provider:     filterProvider,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, "CODE\tOS\tVERSION\tCUDA\tPROVIDER")
	for _, img := range images {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			img.Code, img.OS, img.Version, img.CUDAVersion, img.Provider)
	}
	return w.Flush()
}

func runProviders(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := commandContext()
	defer cancel()

	providers, err := client.ListProviders(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, "SLUG\tNAME\tACTIVE")
	for _, p := range providers {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%t\n", p.Slug, p.Name, p.IsActive)
	}
	return w.Flush()
}
