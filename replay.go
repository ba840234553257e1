// ABOUTME: Headless replay of scripted drawer gestures from YAML
// ABOUTME: Drives the engine frame by frame and prints a tabwriter trace

package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"

	"drawerview/config"
	"drawerview/drawer"
)

const (
	replayFrame     = time.Second / 60
	replaySettleMax = 10 * time.Second
)

// ErrInvalidReplay is returned for scripts that cannot be run
var ErrInvalidReplay = errors.New("invalid replay script")

// ReplayScript is a scripted sequence of drag samples and position changes
type ReplayScript struct {
	Container ReplayContainer `yaml:"container"`
	Positions []string        `yaml:"positions"` // Overrides the config's enabled positions
	Start     string          `yaml:"start"`
	Steps     []ReplayStep    `yaml:"steps"`
}

// ReplayContainer is the geometry the drawer is attached to
type ReplayContainer struct {
	Height         float64 `yaml:"height"`
	SafeAreaBottom float64 `yaml:"safe_area_bottom"`
	WindowGap      float64 `yaml:"window_gap"`
}

// ReplayStep is either a drag sample (Phase set) or a position change
// (SetPosition set). DT seconds of frames run after the step.
type ReplayStep struct {
	Phase       string    `yaml:"phase"` // began, changed, ended, failed
	Translation []float64 `yaml:"translation"`
	Velocity    []float64 `yaml:"velocity"`
	SetPosition string    `yaml:"set_position"`
	Animated    *bool     `yaml:"animated"` // Defaults to true
	DT          float64   `yaml:"dt"`
}

// LoadReplay reads a replay script from a YAML file
func LoadReplay(path string) (*ReplayScript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read replay: %w", err)
	}

	var script ReplayScript
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("failed to parse replay: %w", err)
	}

	if script.Container.Height <= 0 {
		return nil, fmt.Errorf("%w: container height must be positive", ErrInvalidReplay)
	}

	return &script, nil
}

// RunReplay loads the script at path and runs it against cfg
func RunReplay(path string, cfg config.DrawerConfig, w io.Writer) error {
	script, err := LoadReplay(path)
	if err != nil {
		return err
	}

	if len(script.Positions) > 0 {
		cfg.Positions = script.Positions
	}

	drawerCfg, err := cfg.ToDrawer()
	if err != nil {
		return err
	}

	_, err = script.Run(drawerCfg, w)
	return err
}

func parsePhase(s string) (drawer.Phase, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "began", "begin":
		return drawer.PhaseBegan, nil
	case "changed", "change", "move":
		return drawer.PhaseChanged, nil
	case "ended", "end":
		return drawer.PhaseEnded, nil
	case "failed", "cancelled":
		return drawer.PhaseFailed, nil
	}
	return 0, fmt.Errorf("%w: unknown phase %q", ErrInvalidReplay, s)
}

func vec(v []float64) drawer.Vec2 {
	switch len(v) {
	case 0:
		return drawer.Vec2{}
	case 1:
		return drawer.Vec2{Y: v[0]}
	default:
		return drawer.Vec2{X: v[0], Y: v[1]}
	}
}

// replayTrace collects observer events between trace rows
type replayTrace struct {
	events []string
}

func (r *replayTrace) observer() drawer.Observer {
	return &drawer.ObserverFuncs{
		OnWillTransition: func(from, to drawer.Position) {
			r.events = append(r.events, fmt.Sprintf("will %s->%s", from, to))
		},
		OnDidTransition: func(to drawer.Position) {
			r.events = append(r.events, "did "+to.String())
		},
		OnWillBeginDragging: func() {
			r.events = append(r.events, "begin drag")
		},
		OnWillEndDragging: func() {
			r.events = append(r.events, "end drag")
		},
	}
}

func (r *replayTrace) flush() string {
	if len(r.events) == 0 {
		return "-"
	}
	s := strings.Join(r.events, ", ")
	r.events = r.events[:0]
	return s
}

// Run executes the script on a fresh drawer and writes one trace row per
// step plus a final settle row. Returns the committed position at the end.
func (s *ReplayScript) Run(cfg drawer.Config, w io.Writer) (drawer.Position, error) {
	trace := &replayTrace{}
	d := drawer.New(cfg,
		drawer.WithLogger(debugLogger{}),
		drawer.WithObserver(trace.observer()),
	)

	if s.Start != "" {
		start, err := drawer.ParsePosition(s.Start)
		if err != nil {
			return d.Position(), fmt.Errorf("%w: start: %w", ErrInvalidReplay, err)
		}
		d.SetPositionImmediate(start)
	}

	d.Attach(drawer.Container{
		ID: "replay",
		Geometry: drawer.Geometry{
			Height:         s.Container.Height,
			SafeAreaBottom: s.Container.SafeAreaBottom,
			WindowGap:      s.Container.WindowGap,
		},
	})

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "STEP\tTIME\tACTION\tOFFSET\tPOSITION\tOVERLAY\tSHADOW\tCONTENT\tEVENTS"); err != nil {
		return d.Position(), fmt.Errorf("failed to write trace: %w", err)
	}

	var clock time.Duration
	epoch := time.Unix(0, 0)

	row := func(step, action string) error {
		v := d.Visuals()
		_, err := fmt.Fprintf(tw, "%s\t%.3f\t%s\t%.2f\t%s\t%.2f\t%.2f\t%.2f\t%s\n",
			step, clock.Seconds(), action, d.Offset(), d.Position(),
			v.OverlayAlpha, v.ShadowOpacity, v.ContentAlpha, trace.flush())
		return err
	}

	// advance runs whole frames covering dt seconds
	advance := func(dt float64) {
		frames := int(math.Ceil(dt * float64(time.Second) / float64(replayFrame)))
		for i := 0; i < frames; i++ {
			d.Tick(replayFrame)
			clock += replayFrame
		}
	}

	for i, step := range s.Steps {
		var action string

		switch {
		case step.SetPosition != "":
			p, err := drawer.ParsePosition(step.SetPosition)
			if err != nil {
				return d.Position(), fmt.Errorf("%w: step %d: %w", ErrInvalidReplay, i+1, err)
			}
			animated := step.Animated == nil || *step.Animated
			d.SetPosition(p, animated, nil)
			action = "set " + p.String()

		case step.Phase != "":
			phase, err := parsePhase(step.Phase)
			if err != nil {
				return d.Position(), fmt.Errorf("step %d: %w", i+1, err)
			}
			sample := drawer.DragSample{
				Phase:       phase,
				Translation: vec(step.Translation),
				Velocity:    vec(step.Velocity),
				Time:        epoch.Add(clock),
			}
			res := d.HandleDrag(sample)
			action = fmt.Sprintf("%s ty=%.1f vy=%.1f", phase, sample.Translation.Y, sample.Velocity.Y)
			if !res.PanelOwned && phase == drawer.PhaseChanged {
				action += " (declined)"
			}

		default:
			action = "wait"
		}

		advance(step.DT)

		if err := row(fmt.Sprintf("%d", i+1), action); err != nil {
			return d.Position(), fmt.Errorf("failed to write trace: %w", err)
		}
	}

	for settled := time.Duration(0); d.Animating() && settled < replaySettleMax; settled += replayFrame {
		d.Tick(replayFrame)
		clock += replayFrame
	}

	if err := row("end", "settle"); err != nil {
		return d.Position(), fmt.Errorf("failed to write trace: %w", err)
	}

	if err := tw.Flush(); err != nil {
		return d.Position(), fmt.Errorf("failed to flush trace: %w", err)
	}

	return d.Position(), nil
}
