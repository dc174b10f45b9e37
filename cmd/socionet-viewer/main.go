package main

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/hajimehoshi/ebiten/v2"
	_ "github.com/silbinarywolf/preferdiscretegpu"

	"github.com/rdvisser/socionet/pkg/feed"
	"github.com/rdvisser/socionet/pkg/netviz"
	"github.com/rdvisser/socionet/pkg/social"
	"github.com/rdvisser/socionet/pkg/vistable"
)

var cli struct {
	Config   string `help:"TOML config file with viewer options." type:"path"`
	Nodes    string `help:"Nodes table, CSV or JSON." type:"path"`
	Links    string `help:"Links table, CSV or JSON." type:"path"`
	Packages string `help:"Packages table, CSV or JSON." type:"path"`
	Persons  string `help:"Survey export (persons JSON); builds the node and link tables." type:"path"`
	Feed     string `help:"Websocket URL streaming live table updates."`

	WindowWidth  int `name:"window-width" default:"1024" help:"Initial window width."`
	WindowHeight int `name:"window-height" default:"768" help:"Initial window height."`
	TPS          int `default:"20" help:"Ticks per second (animation refresh rate)."`
}

func main() {
	kong.Parse(&cli,
		kong.Name("socionet-viewer"),
		kong.Description("Interactive force-directed viewer for social-network survey data."))

	log.SetOutput(os.Stderr)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	opts := netviz.DefaultOptions()
	if cli.Config != "" {
		if err := applyConfig(cli.Config, &opts); err != nil {
			fatal(err)
		}
	}

	nodes, links, packages, err := loadTables()
	if err != nil {
		fatal(err)
	}
	if nodes == nil {
		fatal(errMissingInput)
	}

	viewer, err := netviz.New(nodes, links, packages, opts)
	if err != nil {
		fatal(err)
	}
	viewer.OnReady = func() {
		color.Green("Network ready: %d nodes, %d links, %d packages",
			len(viewer.Scene().Nodes), len(viewer.Scene().Links), len(viewer.Scene().Packages))
	}
	viewer.OnSelect = func() {
		log.Printf("Selection changed: %v", viewer.Selection())
	}

	if cli.Feed != "" {
		client := &feed.Client{URL: cli.Feed, OnFrame: func(f feed.Frame) {
			viewer.Enqueue(func() {
				if err := applyFrame(viewer, f); err != nil {
					log.Printf("Rejected feed frame: %v", err)
					return
				}
				viewer.StartAnimation()
			})
		}}
		go client.Listen()
	}

	ebiten.SetTPS(cli.TPS)
	ebiten.SetWindowSize(cli.WindowWidth, cli.WindowHeight)
	ebiten.SetWindowTitle("socionet - social network viewer")
	if err := ebiten.RunGame(viewer); err != nil {
		log.Fatal(err)
	}
}

type inputError string

func (e inputError) Error() string { return string(e) }

const errMissingInput = inputError("no input: provide --persons, or --nodes (with optional --links/--packages)")

func fatal(err error) {
	color.Red("Error: %v", err)
	os.Exit(1)
}

// loadTables resolves the three entity tables from whichever inputs were
// given. A persons file yields nodes and links directly; explicit table
// files override nothing and are loaded as-is.
func loadTables() (nodes, links, packages *vistable.Table, err error) {
	if cli.Persons != "" {
		f, err := os.Open(cli.Persons)
		if err != nil {
			return nil, nil, nil, err
		}
		defer f.Close()
		persons, err := social.LoadPersons(f)
		if err != nil {
			return nil, nil, nil, err
		}
		nodes, links = social.BuildTables(persons)
		return nodes, links, nil, nil
	}

	if cli.Nodes != "" {
		if nodes, err = loadTable(cli.Nodes); err != nil {
			return nil, nil, nil, err
		}
	}
	if cli.Links != "" {
		if links, err = loadTable(cli.Links); err != nil {
			return nil, nil, nil, err
		}
	}
	if cli.Packages != "" {
		if packages, err = loadTable(cli.Packages); err != nil {
			return nil, nil, nil, err
		}
	}
	return nodes, links, packages, nil
}

func loadTable(path string) (*vistable.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return vistable.FromCSV(f)
	}
	return vistable.FromJSON(f)
}

// applyFrame merges one live update batch into the scene.
func applyFrame(v *netviz.Viewer, f feed.Frame) error {
	t := f.Table()
	switch f.Kind {
	case "nodes":
		return v.Scene().AddNodes(t)
	case "links":
		return v.Scene().AddLinks(t)
	case "packages":
		return v.Scene().AddPackages(t)
	default:
		return nil
	}
}
