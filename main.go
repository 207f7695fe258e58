package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log"
	"net/url"
	"os"
	"strings"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"lightbox/viewer"
)

var debugEnabled atomic.Bool

func debugLog(format string, args ...interface{}) {
	if debugEnabled.Load() {
		log.Printf("[DEBUG] "+format, args...)
	}
}

func setDebug(enabled bool) {
	debugEnabled.Store(enabled)
	viewer.SetDebug(enabled)
}

// options are the command line settings of one run
type options struct {
	configPath string
	sort       string
	printKept  bool
	decode     bool
	debug      bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:          "lightbox [flags] <file|dir|archive|url>...",
		Short:        "Full-screen paging image viewer",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Page through a directory
  lightbox ~/Pictures/trip

  # Comic archives and remote images, printing what was kept
  lightbox --print-kept book.zip https://example.com/cover.jpg
`),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.OutOrStdout(), opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "Config file (default ~/.lightbox.json)")
	cmd.Flags().StringVar(&opts.sort, "sort", "", "Sort order: natural, simple or entry (overrides config)")
	cmd.Flags().BoolVar(&opts.printKept, "print-kept", false, "Print the pages that were not deleted on exit")
	cmd.Flags().BoolVar(&opts.decode, "decode", false, "Decode local images up front instead of on demand")
	cmd.Flags().BoolVar(&opts.debug, "debug", os.Getenv("LIGHTBOX_DEBUG") == "1", "Enable debug logging (env LIGHTBOX_DEBUG=1)")

	return cmd
}

func run(out io.Writer, opts *options, args []string) error {
	setDebug(opts.debug)

	configPath := opts.configPath
	if configPath == "" {
		configPath = getConfigPath()
	}
	configResult := loadConfigFromPath(configPath)
	config := configResult.Config

	if opts.sort != "" {
		method, ok := parseSortMethod(opts.sort)
		if !ok {
			return fmt.Errorf("unknown sort order %q", opts.sort)
		}
		config.SortMethod = method
	}

	locators, err := collectLocators(args, GetSortStrategy(config.SortMethod))
	if err != nil {
		return err
	}
	if len(locators) == 0 {
		return errors.New("no images found")
	}
	debugLog("Collected %d pages (%s sort)", len(locators), GetSortStrategy(config.SortMethod).Name())

	if err := InitGraphics(); err != nil {
		return fmt.Errorf("initializing fonts: %w", err)
	}

	fetcher := NewFetcher(config.FetchTimeout())
	contents, decoded := buildContents(fetcher, locators, opts.decode)

	g, err := newGame(config, configResult, contents, fetcher)
	if err != nil {
		return err
	}
	g.decoded = decoded

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle("lightbox")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if config.Fullscreen {
		g.ToggleFullscreen()
	}

	if err := ebiten.RunGame(g); err != nil {
		return err
	}

	if opts.printKept {
		for _, p := range g.kept {
			fmt.Fprintln(out, p)
		}
	}
	return nil
}

// buildContents turns locators into page contents. With decode set, local
// pages are decoded now and handed over as images, and decoded maps each image
// back to its path. Remote pages always load lazily.
func buildContents(fetcher *Fetcher, locators []*url.URL, decode bool) (contents []viewer.Content, decoded map[image.Image]string) {
	contents = make([]viewer.Content, 0, len(locators))
	decoded = make(map[image.Image]string)
	for _, u := range locators {
		if !decode || isRemote(u) {
			contents = append(contents, viewer.LocatorContent(u))
			continue
		}

		data, err := fetcher.Fetch(context.Background(), u)
		if err == nil {
			img, derr := decodeImage(data, displayName(u))
			if derr == nil {
				contents = append(contents, viewer.ImageContent(img))
				decoded[img] = displayPath(u)
				continue
			}
			err = derr
		}
		log.Printf("Warning: Failed to decode %s, loading on demand: %v", displayPath(u), err)
		contents = append(contents, viewer.LocatorContent(u))
	}
	return contents, decoded
}

func newGame(config Config, configResult ConfigLoadResult, contents []viewer.Content, fetcher *Fetcher) (*Game, error) {
	g := &Game{
		config:       config,
		configStatus: configResult,
		images:       NewImageManager(fetcher, config.CacheSize, config.PreloadCount, config.PreloadEnabled),
		transition:   newFadeTransition(config.FadeDuration(), nil),
		viewportW:    config.WindowWidth,
		viewportH:    config.WindowHeight,
	}

	g.surface = newPagingSurface(viewer.Size{W: float64(config.WindowWidth), H: float64(config.WindowHeight)}, nil)

	controller, err := viewer.New(contents, g.surface, pageFactory{images: g.images}, g,
		viewer.WithChrome(config.Chrome.toChrome()),
		viewer.WithTransition(g.transition),
		viewer.WithTextMeasurer(MeasureText),
		viewer.WithPageDelegate(viewer.PageChangedFunc(g.pageChanged)),
		viewer.WithDismissalDelegate(viewer.WillDismissFunc(g.willDismiss)),
	)
	if err != nil {
		g.images.Stop()
		return nil, fmt.Errorf("creating viewer: %w", err)
	}
	g.controller = controller
	g.surface.onSettle = controller.GestureSettled

	g.keybindingManager = NewKeybindingManager(config.Keybindings)
	g.mousebindingManager = NewMousebindingManager(config.Mousebindings, config.Mouse)
	g.inputHandler = NewInputHandler(g, g.surface, g.keybindingManager, g.mousebindingManager)
	g.renderer = NewRenderer(g)

	return g, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
