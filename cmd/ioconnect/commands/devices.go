package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Faclon-Labs/connector-go/internal/constants"
	"github.com/Faclon-Labs/connector-go/pkg/ioconnect"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewDevicesCommand creates the devices command group.
func NewDevicesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "devices",
		Aliases: []string{"device", "dev"},
		Short:   "Manage devices",
		Long:    "List devices and query their sensor data",
	}

	cmd.AddCommand(newDevicesListCommand())
	cmd.AddCommand(newDevicesGetCommand())
	cmd.AddCommand(newDevicesDataCommand())
	cmd.AddCommand(newDevicesLatestCommand())

	return cmd
}

func newDevicesListCommand() *cobra.Command {
	var (
		page    int
		perPage int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List devices",
		Long:  "List devices registered to the account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDevicesListCommand(page, perPage)
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page to fetch")
	cmd.Flags().IntVar(&perPage, "per-page", constants.DefaultPageSize, "results per page")

	return cmd
}

func runDevicesListCommand(page, perPage int) error {
	client, err := createClient()
	if err != nil {
		return err
	}

	list, err := client.Devices().ListPaginated(context.Background(), &ioconnect.PageRequest{
		Page:  page,
		Limit: perPage,
	})
	if err != nil {
		return fmt.Errorf("failed to list devices: %w", err)
	}

	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(list.Data)
	case OutputFormatYAML:
		return StandardYAMLRenderer(list.Data)
	default:
		return renderDeviceTable(list)
	}
}

func renderDeviceTable(list *ioconnect.DeviceList) error {
	if len(list.Data) == 0 {
		_, _ = os.Stdout.WriteString("No devices found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Name", "Type", "Sensors", "Added")

	for _, device := range list.Data {
		sensors := make([]string, 0, len(device.Sensors))
		for _, sensor := range device.Sensors {
			sensors = append(sensors, sensor.ID)
		}

		_ = table.Append(device.ID, device.Name, device.TypeName,
			strings.Join(sensors, ", "),
			device.AddedOn.Format(dateFormat))
	}

	_ = table.Render()

	if list.Pagination.TotalPages > 1 {
		fmt.Printf("\nPage %d of %d (%d devices total)\n",
			list.Pagination.Page, list.Pagination.TotalPages, list.Pagination.TotalCount)
	}

	return nil
}

func newDevicesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get DEVICE_ID",
		Short: "Show device details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			device, err := client.Devices().Get(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get device: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case OutputFormatJSON:
				return StandardJSONRenderer(device)
			case OutputFormatYAML:
				return StandardYAMLRenderer(device)
			default:
				return renderDeviceDetails(device)
			}
		},
	}
}

func renderDeviceDetails(device *ioconnect.Device) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")

	_ = table.Append("ID", device.ID)
	_ = table.Append("Name", device.Name)
	_ = table.Append("Type", device.TypeName)
	_ = table.Append("Added", device.AddedOn.Format(dateTimeFormat))

	for _, sensor := range device.Sensors {
		value := sensor.Name
		if sensor.Unit != "" {
			value += " (" + sensor.Unit + ")"
		}

		_ = table.Append("Sensor: "+sensor.ID, value)
	}

	_ = table.Render()

	return nil
}

func newDevicesDataCommand() *cobra.Command {
	var (
		sensors []string
		start   string
		end     string
		limit   int
		cursor  string
	)

	cmd := &cobra.Command{
		Use:   "data DEVICE_ID",
		Short: "Query sensor data",
		Long:  "Fetch sensor readings for a device over a time window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := &ioconnect.DataQuery{
				DeviceID: args[0],
				Sensors:  sensors,
				Limit:    limit,
				Cursor:   cursor,
			}

			var err error

			if start != "" {
				query.Start, err = time.Parse(time.RFC3339, start)
				if err != nil {
					return fmt.Errorf("parsing --start: %w", err)
				}
			}

			if end != "" {
				query.End, err = time.Parse(time.RFC3339, end)
				if err != nil {
					return fmt.Errorf("parsing --end: %w", err)
				}
			}

			return runDevicesDataCommand(query)
		},
	}

	cmd.Flags().StringSliceVarP(&sensors, "sensor", "s", nil, "sensor IDs to include (default all)")
	cmd.Flags().StringVar(&start, "start", "", "window start (RFC3339)")
	cmd.Flags().StringVar(&end, "end", "", "window end (RFC3339)")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of points")
	cmd.Flags().StringVar(&cursor, "cursor", "", "resume cursor from a previous query")

	return cmd
}

func runDevicesDataCommand(query *ioconnect.DataQuery) error {
	client, err := createClient()
	if err != nil {
		return err
	}

	result, err := client.Devices().GetData(context.Background(), query)
	if err != nil {
		return fmt.Errorf("failed to query device data: %w", err)
	}

	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(result)
	case OutputFormatYAML:
		return StandardYAMLRenderer(result)
	default:
		return renderDataPoints(result)
	}
}

func renderDataPoints(result *ioconnect.DataQueryResult) error {
	if len(result.Points) == 0 {
		_, _ = os.Stdout.WriteString("No data points found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Time", "Sensor", "Value")

	for _, point := range result.Points {
		_ = table.Append(point.Time.Format(time.RFC3339), point.Sensor,
			fmt.Sprintf("%g", point.Value))
	}

	_ = table.Render()

	if result.Cursor != "" {
		fmt.Printf("\nMore data available, resume with --cursor %s\n", result.Cursor)
	}

	return nil
}

func newDevicesLatestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "latest DEVICE_ID SENSOR",
		Short: "Show the latest reading of one sensor",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			point, err := client.Devices().GetLatestPoint(context.Background(), args[0], args[1])
			if err != nil {
				return fmt.Errorf("failed to get latest point: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case OutputFormatJSON:
				return StandardJSONRenderer(point)
			case OutputFormatYAML:
				return StandardYAMLRenderer(point)
			default:
				fmt.Printf("%s = %g at %s\n", point.Sensor, point.Value,
					point.Time.Format(time.RFC3339))

				return nil
			}
		},
	}
}
