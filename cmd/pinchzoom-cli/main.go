// CLI-only version (no GUI dependencies)
package main

import (
	"fmt"
	"os"
	"strconv"

	"pinchzoom/internal/cli"
	"pinchzoom/pkg/api"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "info":
		if len(os.Args) < 3 {
			fmt.Println("Usage: pinchzoom-cli info <image> [width height]")
			os.Exit(1)
		}
		cmdInfo(os.Args[2:])

	case "render":
		if len(os.Args) < 3 {
			fmt.Println("Usage: pinchzoom-cli render <image> [-o output.png] [-w width] [-h height] ...")
			os.Exit(1)
		}
		cmdRender(os.Args[2:])

	case "replay":
		if len(os.Args) < 4 {
			fmt.Println("Usage: pinchzoom-cli replay <image> <script> [-o output.png] [-w width] [-h height]")
			os.Exit(1)
		}
		cmdReplay(os.Args[2:])

	case "help", "-h", "--help":
		printUsage()

	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`
  ██████╗ ██╗███╗   ██╗ ██████╗██╗  ██╗███████╗ ██████╗  ██████╗ ███╗   ███╗
  ██╔══██╗██║████╗  ██║██╔════╝██║  ██║╚══███╔╝██╔═══██╗██╔═══██╗████╗ ████║
  ██████╔╝██║██╔██╗ ██║██║     ███████║  ███╔╝ ██║   ██║██║   ██║██╔████╔██║
  ██╔═══╝ ██║██║╚██╗██║██║     ██╔══██║ ███╔╝  ██║   ██║██║   ██║██║╚██╔╝██║
  ██║     ██║██║ ╚████║╚██████╗██║  ██║███████╗╚██████╔╝╚██████╔╝██║ ╚═╝ ██║
  ╚═╝     ╚═╝╚═╝  ╚═══╝ ╚═════╝╚═╝  ╚═╝╚══════╝ ╚═════╝  ╚═════╝ ╚═╝     ╚═╝

  A gesture-driven photo viewport written in Go (CLI version)

Usage:
  pinchzoom-cli <command> [arguments]

Commands:
  info <image> [w h]              Show image size and fitted placement
  render <image> [options]        Render a viewport to an image file
    -o <output.png>               Output file (default: output.png)
    -w <width> -h <height>        Viewport size (default: 800x600)
    -fit <mode>                   fit_center, center, center_crop, center_inside,
                                  fit_start, fit_end, fit_xy
    -scale <s>                    Zoom relative to the fitted size
    -rotate <deg> [-ccw]          Quarter turn, clockwise unless -ccw
    -pan <dx,dy>                  Pan after zooming
    -q <quality>                  nearest, approx, bilinear, catmullrom
    -bg <#rrggbb>                 Background color
    -outline <#rrggbb>            Outline the content edge
    -v                            Verbose logging
  replay <image> <script> [opts]  Run a gesture script and print the state
    -o <output.png>               Also render the final frame
    -w <width> -h <height>        Viewport size (default: 800x600)

Script commands:
  down, up, cancel, drag dx dy, pinch f x y, pinchend, fling vx vy,
  doubletap x y, tap x y, longpress x y, rotate deg cw|ccw [anim],
  scale s [anim], step n, pan dx dy, fit mode, resize w h, reset,
  frames n, settle, print

Examples:
  pinchzoom-cli info photo.jpg 1080 1920
  pinchzoom-cli render photo.jpg -o zoomed.png -scale 2 -rotate 90
  pinchzoom-cli replay photo.jpg gestures.txt`)
}

func cmdInfo(args []string) {
	width, height := 800, 600
	if len(args) >= 3 {
		width, _ = strconv.Atoi(args[1])
		height, _ = strconv.Atoi(args[2])
	}
	if err := cli.Info(os.Stdout, args[0], width, height); err != nil {
		fmt.Printf("%v\n", err)
		os.Exit(1)
	}
}

func cmdRender(args []string) {
	ra, err := cli.ParseRenderArgs(args, cli.LoadConfig())
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	cli.SetVerbose(ra.Verbose)

	if err := cli.Render(os.Stdout, ra); err != nil {
		fmt.Printf("%v\n", err)
		os.Exit(1)
	}
}

func cmdReplay(args []string) {
	photoPath, scriptPath := args[0], args[1]
	ra := cli.ReplayArgs{Width: 800, Height: 600, Config: cli.LoadConfig()}

	verbose := false
	for i := 2; i < len(args); i++ {
		switch args[i] {
		case "-o":
			if i+1 < len(args) {
				ra.Output = args[i+1]
				i++
			}
		case "-w":
			if i+1 < len(args) {
				ra.Width, _ = strconv.Atoi(args[i+1])
				i++
			}
		case "-h":
			if i+1 < len(args) {
				ra.Height, _ = strconv.Atoi(args[i+1])
				i++
			}
		case "-v":
			verbose = true
		}
	}
	cli.SetVerbose(verbose)

	p, err := api.Open(photoPath)
	if err != nil {
		fmt.Printf("Error opening photo: %v\n", err)
		os.Exit(1)
	}

	f, err := os.Open(scriptPath)
	if err != nil {
		fmt.Printf("Error opening script: %v\n", err)
		os.Exit(1)
	}
	cmds, err := cli.ParseScript(f)
	f.Close()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if err := cli.Replay(os.Stdout, p, cmds, ra); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
