package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/gni-robotics/fieldrover/pkg/mission"
	"github.com/gni-robotics/fieldrover/pkg/photos"
)

var (
	startRows     int
	startRowTime  int
	startPower    int
	startRadius   int
	startTurnTime int
	startCapture  bool

	drivePower int
	driveTime  int

	captureTag  string
	photosLimit int
)

func init() {
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show the current mission status",
		RunE:  runStatus,
	}
	rootCmd.AddCommand(statusCmd)

	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Start a mission",
		Long: `Start a boustrophedon mission. Flags you leave unset keep the
rover's configured defaults; values outside the hardware's safe range
are clamped by the rover.`,
		RunE: runStart,
	}
	startCmd.Flags().IntVar(&startRows, "rows", 0, "number of rows to mow")
	startCmd.Flags().IntVar(&startRowTime, "row-time", 0, "time per row in ms")
	startCmd.Flags().IntVar(&startPower, "turn-power", 0, "outer wheel power during turns (percent)")
	startCmd.Flags().IntVar(&startRadius, "turn-radius", 0, "turn radius in cm")
	startCmd.Flags().IntVar(&startTurnTime, "turn-time", 0, "time per turn in ms")
	startCmd.Flags().BoolVar(&startCapture, "capture", true, "capture a photo after each row")
	rootCmd.AddCommand(startCmd)

	driveCmd := &cobra.Command{
		Use:       "drive {fwd|back|left|right|stop}",
		Short:     "Send a single manual drive nudge",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"fwd", "back", "left", "right", "stop"},
		RunE:      runDrive,
	}
	driveCmd.Flags().IntVar(&drivePower, "power", 60, "wheel power (percent)")
	driveCmd.Flags().IntVar(&driveTime, "ms", 500, "duration in ms")
	rootCmd.AddCommand(driveCmd)

	captureCmd := &cobra.Command{
		Use:   "capture",
		Short: "Capture a photo now",
		RunE:  runCapture,
	}
	captureCmd.Flags().StringVar(&captureTag, "tag", "manual", "tag recorded with the photo")
	rootCmd.AddCommand(captureCmd)

	photosCmd := &cobra.Command{
		Use:   "photos",
		Short: "List archived photos, newest first",
		RunE:  runPhotos,
	}
	photosCmd.Flags().IntVar(&photosLimit, "limit", 24, "maximum photos to list")
	rootCmd.AddCommand(photosCmd)

	cameraCmd := &cobra.Command{
		Use:   "camera [preset]",
		Short: "Show the camera configuration, or switch preset",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runCamera,
	}
	rootCmd.AddCommand(cameraCmd)

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow live mission status until interrupted",
		RunE:  runWatch,
	}
	rootCmd.AddCommand(watchCmd)
}

// cameraConfig mirrors the rover's camera settings payload. Declared
// here so the CLI does not link the camera stack.
type cameraConfig struct {
	Index   int `json:"index"`
	Width   int `json:"width"`
	Height  int `json:"height"`
	Quality int `json:"quality"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	var st mission.Status
	if err := newAPI().get("/api/status", &st); err != nil {
		return err
	}
	fmt.Printf("running:   %v\n", st.Running)
	fmt.Printf("message:   %s\n", st.Message)
	fmt.Printf("rows done: %d\n", st.RowsDone)
	return nil
}

func runStart(cmd *cobra.Command, args []string) error {
	// Only fields the operator actually set go on the wire, so the
	// rover's defaults fill the rest.
	overrides := map[string]any{}
	if cmd.Flags().Changed("rows") {
		overrides["num_rows"] = startRows
	}
	if cmd.Flags().Changed("row-time") {
		overrides["row_time_ms"] = startRowTime
	}
	if cmd.Flags().Changed("turn-power") {
		overrides["turn_power"] = startPower
	}
	if cmd.Flags().Changed("turn-radius") {
		overrides["turn_radius_cm"] = startRadius
	}
	if cmd.Flags().Changed("turn-time") {
		overrides["turn_time_ms"] = startTurnTime
	}
	if cmd.Flags().Changed("capture") {
		overrides["capture_each_row"] = startCapture
	}

	var resp struct {
		Started bool           `json:"started"`
		Params  mission.Params `json:"params"`
	}
	if err := newAPI().post("/api/mission/start", overrides, &resp); err != nil {
		return err
	}
	fmt.Printf("Mission started: %d rows, %dms per row\n", resp.Params.NumRows, resp.Params.RowTimeMS)
	return nil
}

func runDrive(cmd *cobra.Command, args []string) error {
	body := map[string]any{"cmd": args[0], "power": drivePower, "t_ms": driveTime}
	var resp struct {
		OK bool `json:"ok"`
	}
	if err := newAPI().post("/api/drive", body, &resp); err != nil {
		return err
	}
	if !resp.OK {
		return fmt.Errorf("drive controller rejected the command")
	}
	fmt.Println("ok")
	return nil
}

func runCapture(cmd *cobra.Command, args []string) error {
	var resp struct {
		OK   bool   `json:"ok"`
		Name string `json:"name"`
	}
	if err := newAPI().post("/api/capture", map[string]any{"tag": captureTag}, &resp); err != nil {
		return err
	}
	if !resp.OK {
		return fmt.Errorf("capture failed")
	}
	fmt.Println(resp.Name)
	return nil
}

func runPhotos(cmd *cobra.Command, args []string) error {
	var list []photos.Photo
	if err := newAPI().get(fmt.Sprintf("/api/photos?limit=%d", photosLimit), &list); err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Println("No photos yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTAG\tTAKEN\tSIZE")
	for _, p := range list {
		taken := ""
		if !p.TakenAt.IsZero() {
			taken = p.TakenAt.Local().Format("2006-01-02 15:04:05")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Tag, taken, p.Size)
	}
	return w.Flush()
}

func runCamera(cmd *cobra.Command, args []string) error {
	a := newAPI()

	if len(args) == 1 {
		var resp struct {
			Config cameraConfig `json:"config"`
		}
		if err := a.post("/api/camera", map[string]any{"preset": args[0]}, &resp); err != nil {
			return err
		}
		fmt.Printf("Camera now %dx%d, quality %d\n",
			resp.Config.Width, resp.Config.Height, resp.Config.Quality)
		return nil
	}

	var resp struct {
		Config  cameraConfig `json:"config"`
		Presets []string     `json:"presets"`
	}
	if err := a.get("/api/camera", &resp); err != nil {
		return err
	}
	fmt.Printf("device:  %d\n", resp.Config.Index)
	fmt.Printf("size:    %dx%d\n", resp.Config.Width, resp.Config.Height)
	fmt.Printf("quality: %d\n", resp.Config.Quality)
	fmt.Printf("presets: %s\n", strings.Join(resp.Presets, ", "))
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	a := newAPI()
	url := a.wsURL("/ws/status")

	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", url, err)
	}
	defer conn.Close()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	go func() {
		<-interrupt
		conn.Close()
	}()

	fmt.Println("Watching mission status (Ctrl-C to stop)")
	for {
		var st mission.Status
		if err := conn.ReadJSON(&st); err != nil {
			return nil
		}
		marker := " "
		if st.Running {
			marker = "▶"
		}
		fmt.Printf("%s %-40s rows done: %d\n", marker, st.Message, st.RowsDone)
	}
}
