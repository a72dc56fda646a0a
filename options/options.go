package options

import (
	"errors"
	"flag"
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// Options holds the command-line configuration. Fields are the pointers
// returned by the flag package.
type Options struct {
	Width      *int
	Height     *int
	Title      *string
	Headless   *bool
	Frames     *int // close the window after this many frames; 0 runs until closed
	Info       *bool
	ESSL       *bool   // compile the demo from GLSL ES sources through the translator
	Record     *string // ffmpeg output file; empty disables recording
	FPS        *int
	Codec      *string
	FFmpegPath *string
	Config     *string
}

// File is the TOML configuration file layout. Keys mirror the flag names.
type File struct {
	Width      *int    `toml:"width"`
	Height     *int    `toml:"height"`
	Title      *string `toml:"title"`
	Headless   *bool   `toml:"headless"`
	Frames     *int    `toml:"frames"`
	Info       *bool   `toml:"info"`
	ESSL       *bool   `toml:"essl"`
	Record     *string `toml:"record"`
	FPS        *int    `toml:"fps"`
	Codec      *string `toml:"codec"`
	FFmpegPath *string `toml:"ffmpeg"`
}

// Register binds every option to fs with its default value.
func Register(fs *flag.FlagSet) *Options {
	return &Options{
		Width:      fs.Int("width", 500, "Window width in pixels"),
		Height:     fs.Int("height", 500, "Window height in pixels"),
		Title:      fs.String("title", "glrender", "Window title"),
		Headless:   fs.Bool("headless", false, "Render into an EGL pbuffer instead of a window (linux only)"),
		Frames:     fs.Int("frames", 0, "Close after this many frames (0 runs until the window is closed)"),
		Info:       fs.Bool("info", false, "Print context information and extensions, then exit"),
		ESSL:       fs.Bool("essl", false, "Compile the demo from GLSL ES 3.00 sources via the shader translator"),
		Record:     fs.String("record", "", "Record frames to this file with ffmpeg"),
		FPS:        fs.Int("fps", 60, "Frame rate of the recording"),
		Codec:      fs.String("codec", "h264", "Recording codec (h264 or hevc)"),
		FFmpegPath: fs.String("ffmpeg", "", "Path to ffmpeg executable"),
		Config:     fs.String("config", "", "TOML file with default option values"),
	}
}

// Parse registers the options on fs, parses args and, when -config is given,
// fills every option not set on the command line from the file.
func Parse(fs *flag.FlagSet, args []string) (*Options, error) {
	opts := Register(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if *opts.Config != "" {
		file, err := LoadFile(*opts.Config)
		if err != nil {
			return nil, err
		}
		set := map[string]bool{}
		fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
		opts.apply(file, set)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

// LoadFile reads a TOML configuration file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	var file File
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &file, nil
}

func (o *Options) apply(f *File, set map[string]bool) {
	setInt := func(name string, dst *int, src *int) {
		if src != nil && !set[name] {
			*dst = *src
		}
	}
	setString := func(name string, dst *string, src *string) {
		if src != nil && !set[name] {
			*dst = *src
		}
	}
	setBool := func(name string, dst *bool, src *bool) {
		if src != nil && !set[name] {
			*dst = *src
		}
	}
	setInt("width", o.Width, f.Width)
	setInt("height", o.Height, f.Height)
	setString("title", o.Title, f.Title)
	setBool("headless", o.Headless, f.Headless)
	setInt("frames", o.Frames, f.Frames)
	setBool("info", o.Info, f.Info)
	setBool("essl", o.ESSL, f.ESSL)
	setString("record", o.Record, f.Record)
	setInt("fps", o.FPS, f.FPS)
	setString("codec", o.Codec, f.Codec)
	setString("ffmpeg", o.FFmpegPath, f.FFmpegPath)
}

// Validate checks option values that flag parsing cannot.
func (o *Options) Validate() error {
	var errs []error
	if *o.Width <= 0 || *o.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", *o.Width, *o.Height))
	}
	if *o.Frames < 0 {
		errs = append(errs, fmt.Errorf("frames must not be negative, got %d", *o.Frames))
	}
	if *o.Record != "" && *o.FPS <= 0 {
		errs = append(errs, fmt.Errorf("fps must be positive when recording, got %d", *o.FPS))
	}
	switch *o.Codec {
	case "h264", "hevc":
	default:
		errs = append(errs, fmt.Errorf("unsupported codec %q", *o.Codec))
	}
	return errors.Join(errs...)
}
