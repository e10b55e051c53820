package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type textList []string

func (t *textList) String() string { return strings.Join(*t, ", ") }

func (t *textList) Set(v string) error {
	*t = append(*t, v)
	return nil
}

type options struct {
	image     string
	render    bool
	out       string
	texts     textList
	font      string
	stroke    float64
	order     string
	watermark bool
}

func parseFlags(config *Config, args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("memedit", flag.ContinueOnError)
	fs.StringVar(&opts.image, "image", "", "source image: path, data URI or http(s) URL")
	fs.BoolVar(&opts.render, "render", false, "render -image to -out without starting the editor")
	fs.StringVar(&opts.out, "out", defaultExportName, "PNG output path for -render")
	fs.Var(&opts.texts, "text", "caption text, once per field from the top")
	fs.StringVar(&opts.font, "font", config.Font, "font family, or a .ttf/.otf file to import")
	fs.Float64Var(&opts.stroke, "stroke", config.StrokeWidth, "stroke width (1-10)")
	fs.StringVar(&opts.order, "order", config.StrokeOrder, "stroke order: outer or inner")
	fs.BoolVar(&opts.watermark, "watermark", config.Watermark, "draw the watermark")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.image == "" && fs.NArg() > 0 {
		opts.image = fs.Arg(0)
	}
	return opts, nil
}

func main() {
	config := loadConfig()
	opts, err := parseFlags(config, os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		os.Exit(2)
	}
	config.Font = opts.font
	config.StrokeWidth = opts.stroke
	config.StrokeOrder = opts.order
	config.Watermark = opts.watermark

	if opts.render {
		if err := renderHeadless(config, opts); err != nil {
			log.Fatalf("memedit: %v", err)
		}
		return
	}

	if path := debugLogPath(config); path != "" {
		f, err := tea.LogToFile(path, "memedit")
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	m := newModel(config, opts)
	defer m.watcher.Close()
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	m.watcher.Start(p)
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}

func debugLogPath(config *Config) string {
	if config.DebugLog != "" {
		return config.DebugLog
	}
	if os.Getenv("DEBUG") != "" {
		return "memedit-debug.log"
	}
	return ""
}

// setupFonts builds the registry from the built-in fonts and the stored
// ones, importing fontArg first when it names a font file.
func setupFonts(st Store, fontArg string) (*FontRegistry, string, error) {
	fonts := NewFontRegistry()
	loadStoredFonts(st, fonts)
	if !looksLikeFontFile(fontArg) {
		return fonts, fontArg, nil
	}
	rec, err := importFont(fontArg)
	if err != nil {
		return fonts, "", err
	}
	if err := fonts.Register(rec.Name, rec.Data); err != nil {
		return fonts, "", err
	}
	if err := st.PutFont(rec); err != nil {
		log.Printf("persist font %s: %v", rec.Name, err)
	}
	return fonts, rec.Name, nil
}

func looksLikeFontFile(s string) bool {
	lower := strings.ToLower(s)
	for _, ext := range []string{".ttf", ".otf"} {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

func renderHeadless(config *Config, opts options) error {
	if opts.image == "" {
		return fmt.Errorf("-render needs -image")
	}
	st := openStore(config.StoreDirectory())
	fonts, family, err := setupFonts(st, opts.font)
	if err != nil {
		return err
	}
	config.Font = family

	doc := NewDocument(config.RenderStyle())
	doc.Image = opts.image
	for i, text := range opts.texts {
		if i >= len(doc.Fields) {
			doc.AddField()
		}
		doc.Fields[i].Text = text
	}
	path, err := ExportPNGFile(context.Background(), opts.out, doc, fonts)
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

func newModel(config *Config, opts options) model {
	st := openStore(config.StoreDirectory())
	fonts, family, err := setupFonts(st, opts.font)
	errorMessage := ""
	if err != nil {
		errorMessage = fmt.Sprintf("Error loading font: %s", err)
	} else {
		config.Font = family
	}

	doc := NewDocument(config.RenderStyle())
	for i, text := range opts.texts {
		if i >= len(doc.Fields) {
			doc.AddField()
		}
		doc.Fields[i].Text = text
	}

	input := textinput.New()
	input.CharLimit = 512

	m := model{
		doc:    doc,
		fonts:  fonts,
		store:  st,
		config: config,
		generator: &Generator{
			Endpoint: config.GeneratorEndpoint,
			APIKey:   config.GeneratorAPIKey,
		},
		watcher:      newImageWatcher(),
		mode:         ModeNormal,
		input:        input,
		errorMessage: errorMessage,
	}
	if opts.image != "" {
		m.decodeGen = 1
		m.pendingImage = opts.image
		m.recordImage = false
	}
	return m
}

func (m model) Init() tea.Cmd {
	if m.pendingImage == "" {
		return nil
	}
	return decodeCmd(m.decodeGen, m.pendingImage)
}
