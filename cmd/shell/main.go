// The shell command runs an interactive REPL for loading an OBJ scene,
// adjusting camera/render options, and re-rendering it to PNG on demand.
package main

import (
	"errors"
	"fmt"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ergochat/readline"

	rt "github.com/nrieke/objtrace"
	"github.com/nrieke/objtrace/internal/camera"
	"github.com/nrieke/objtrace/internal/prim"
	"github.com/nrieke/objtrace/internal/scene"
)

// Command mirrors the dispatch shape of the GML shell this tool grew out
// of: a symbol, aliases, and a handler over shared State.
type Command struct {
	Symbol       string
	Aliases      []string
	ExpectedArgs []string
	HelpText     string
	Run          func(*State) error
}

// State is the shell's mutable session: the loaded scene and the render
// options accumulated by :camera/:depth/:mode.
type State struct {
	args []string

	scene *scene.Scene
	opts  rt.Options

	commands []*Command
}

var errQuit = errors.New("quit")

func main() {
	rl, err := readline.NewFromConfig(&readline.Config{
		Prompt:       "raytrace> ",
		HistoryFile:  historyFilePath(),
		HistoryLimit: 10000,
	})
	if err != nil {
		log.Fatalf("readline init error: %v", err)
	}

	state := &State{
		opts: rt.Options{
			Camera: camera.Options{
				LookFrom:     prim.Vec3{Z: 5},
				LookTo:       prim.Vec3{},
				Fov:          camera.DefaultFov,
				ScreenWidth:  800,
				ScreenHeight: 600,
			},
			Depth: 4,
			Mode:  rt.Full,
		},
	}

	var commands []*Command
	lookup := make(map[string]*Command)
	register := func(c *Command) {
		commands = append(commands, c)
		lookup[c.Symbol] = c
		for _, alias := range c.Aliases {
			lookup[alias] = c
		}
	}
	state.commands = commands

	register(&Command{
		Symbol: ":load", Aliases: []string{":l"}, ExpectedArgs: []string{"<scene.obj>"},
		HelpText: "Load a scene file",
		Run: func(st *State) error {
			if len(st.args) < 1 {
				return errors.New("usage: :load <scene.obj>")
			}
			sc, err := scene.Load(st.args[0])
			if err != nil {
				return err
			}
			st.scene = sc
			fmt.Printf("loaded %d triangles, %d spheres, %d lights\n", len(sc.Objects), len(sc.SphereObjects), len(sc.Lights))
			return nil
		},
	})
	register(&Command{
		Symbol: ":camera", Aliases: []string{":c"},
		ExpectedArgs: []string{"<width> <height> <fov>"},
		HelpText:     "Set screen size and field of view (radians)",
		Run: func(st *State) error {
			if len(st.args) < 3 {
				return errors.New("usage: :camera <width> <height> <fov>")
			}
			w, err := strconv.Atoi(st.args[0])
			if err != nil {
				return err
			}
			h, err := strconv.Atoi(st.args[1])
			if err != nil {
				return err
			}
			fov, err := strconv.ParseFloat(st.args[2], 64)
			if err != nil {
				return err
			}
			st.opts.Camera.ScreenWidth, st.opts.Camera.ScreenHeight, st.opts.Camera.Fov = w, h, fov
			return nil
		},
	})
	register(&Command{
		Symbol: ":depth", Aliases: []string{":d"}, ExpectedArgs: []string{"<n>"},
		HelpText: "Set the recursion budget for full mode",
		Run: func(st *State) error {
			if len(st.args) < 1 {
				return errors.New("usage: :depth <n>")
			}
			n, err := strconv.Atoi(st.args[0])
			if err != nil {
				return err
			}
			st.opts.Depth = n
			return nil
		},
	})
	register(&Command{
		Symbol: ":mode", Aliases: []string{":m"}, ExpectedArgs: []string{"<depth|normal|full>"},
		HelpText: "Set the render mode",
		Run: func(st *State) error {
			if len(st.args) < 1 {
				return errors.New("usage: :mode <depth|normal|full>")
			}
			switch strings.ToLower(st.args[0]) {
			case "depth":
				st.opts.Mode = rt.Depth
			case "normal":
				st.opts.Mode = rt.Normal
			case "full":
				st.opts.Mode = rt.Full
			default:
				return fmt.Errorf("unknown mode %q", st.args[0])
			}
			return nil
		},
	})
	register(&Command{
		Symbol: ":render", Aliases: []string{":r"}, ExpectedArgs: []string{"<out.png>"},
		HelpText: "Render the loaded scene to a PNG file",
		Run: func(st *State) error {
			if st.scene == nil {
				return errors.New("no scene loaded, use :load first")
			}
			if len(st.args) < 1 {
				return errors.New("usage: :render <out.png>")
			}
			img := rt.Render(st.scene, st.opts)
			f, err := os.Create(st.args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			if err := png.Encode(f, img); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", st.args[0])
			return nil
		},
	})
	register(&Command{
		Symbol: ":help", Aliases: []string{":h"},
		HelpText: "Prints this help text",
		Run:      showHelp,
	})
	register(&Command{
		Symbol: ":quit", Aliases: []string{":q"},
		HelpText: "Exit the shell",
		Run:      func(st *State) error { return errQuit },
	})
	state.commands = commands

	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
				return
			}
			log.Fatalf("readline error: %v", err)
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line[0] != ':' {
			fmt.Println("unrecognized input; type :help for commands")
			continue
		}
		args := strings.Fields(line)
		cmd := lookup[args[0]]
		if cmd == nil {
			fmt.Printf("unknown command: %v\n", args[0])
			continue
		}
		state.args = args[1:]
		if err := cmd.Run(state); err != nil {
			if errors.Is(err, errQuit) {
				return
			}
			fmt.Printf("command error: %v\n", err)
		}
	}
}

func showHelp(st *State) error {
	usage := make([]string, len(st.commands))
	maxLen := 0
	for i, c := range st.commands {
		parts := append([]string{c.Symbol}, c.Aliases...)
		parts = append(parts, c.ExpectedArgs...)
		usage[i] = strings.Join(parts, " ")
		if len(usage[i]) > maxLen {
			maxLen = len(usage[i])
		}
	}
	fmt.Println("Commands:")
	for i, c := range st.commands {
		fmt.Printf("  %-*s : %s\n", maxLen, usage[i], c.HelpText)
	}
	return nil
}

func historyFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Printf("user home dir error: %v", err)
		return ""
	}
	return filepath.Join(home, ".objtrace_history")
}
