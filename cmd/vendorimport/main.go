// Command vendorimport imports a vendor file into the vendor store from the
// terminal. It shows the extracted vendors and asks before writing them.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/joho/godotenv"

	"upkeep/internal/ai/providers"
	"upkeep/internal/config"
	"upkeep/internal/csvexport"
	"upkeep/internal/domain"
	"upkeep/internal/ocr"
	"upkeep/internal/port"
	"upkeep/internal/raster"
	"upkeep/internal/repository"
	"upkeep/internal/service"
	s3storage "upkeep/internal/storage/s3"
)

var errNothingImported = errors.New("no vendors were imported")

type options struct {
	file     string
	vision   bool
	yes      bool
	template string
	store    string
	out      string
}

func main() {
	var opts options
	flag.StringVar(&opts.file, "file", "", "vendor file to import (prompted when empty)")
	flag.BoolVar(&opts.vision, "vision", false, "parse documents as page images")
	flag.BoolVar(&opts.yes, "yes", false, "import without confirmation")
	flag.StringVar(&opts.template, "template", "", "write the CSV import template to this path and exit")
	flag.StringVar(&opts.store, "store", "", "vendor store: sqlite or postgres (default from config)")
	flag.StringVar(&opts.out, "out", "", "also write the extracted vendors as CSV to this path")
	flag.Parse()

	if err := run(context.Background(), opts); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println(mutedStyle.Render("Import cancelled."))
			return
		}
		if errors.Is(err, errNothingImported) {
			os.Exit(2)
		}
		fmt.Println(renderError(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	_ = godotenv.Load()

	if opts.template != "" {
		return writeTemplate(opts.template)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if opts.store != "" {
		cfg.Store.Driver = opts.store
	}

	if opts.file == "" {
		if opts.file, err = pickFile(); err != nil {
			return err
		}
		if opts.vision, err = askVision(opts.file, opts.vision); err != nil {
			return err
		}
	}

	data, err := os.ReadFile(opts.file)
	if err != nil {
		return fmt.Errorf("reading %s: %w", opts.file, err)
	}

	vendors, closeStore, err := repository.OpenVendorStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	svc, err := newImportService(cfg, vendors)
	if err != nil {
		return err
	}

	input := service.PreviewInput{FileName: filepath.Base(opts.file), Data: data, UseVision: opts.vision}
	var (
		preview    *service.Preview
		previewErr error
	)
	err = spinner.New().
		Title("Extracting vendors from " + input.FileName + "...").
		Action(func() {
			preview, previewErr = svc.Preview(ctx, input)
		}).
		Run()
	if err != nil {
		return err
	}
	if previewErr != nil {
		return previewErr
	}
	fmt.Println(renderPreview(input.FileName, preview.Records, preview.Skipped))

	if opts.out != "" {
		if err := writeVendors(opts.out, preview.Records); err != nil {
			return err
		}
	}

	if !opts.yes {
		proceed := true
		err := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Import %d vendors?", len(preview.Records))).
				Affirmative("Import").
				Negative("Cancel").
				Value(&proceed),
		)).WithTheme(huh.ThemeCatppuccin()).Run()
		if err != nil {
			return err
		}
		if !proceed {
			return huh.ErrUserAborted
		}
	}

	var result domain.ImportResult
	err = spinner.New().
		Title(fmt.Sprintf("Importing %d vendors...", len(preview.Records))).
		Action(func() {
			result = svc.Import(ctx, preview.Records)
		}).
		Run()
	if err != nil {
		return err
	}
	fmt.Println(renderResult(result))

	if _, total, err := vendors.List(ctx, 0, 1); err == nil {
		fmt.Println(mutedStyle.Render(fmt.Sprintf("The vendor store now holds %d vendors.", total)))
	}
	if result.Status() == domain.ImportStatusError {
		return errNothingImported
	}
	return nil
}

func newImportService(cfg *config.Config, vendors port.VendorCreator) (service.ImportService, error) {
	aiClient, err := providers.NewClient(&cfg.AI)
	if err != nil {
		return nil, fmt.Errorf("initializing AI providers: %w", err)
	}
	if !aiClient.IsAvailable() {
		log.Printf("vendorimport: no AI provider has an API key; only CSV files can be imported")
	}

	var archive port.ObjectStorage
	if cfg.Import.ArchiveUploads {
		if archive, err = s3storage.NewS3Client(&cfg.S3); err != nil {
			return nil, fmt.Errorf("initializing S3 client: %w", err)
		}
	}
	return service.NewImportService(
		vendors,
		aiClient,
		raster.New(),
		ocr.NewTesseractEngine(cfg.Extract.OCRLanguage),
		archive,
		cfg,
	)
}

func pickFile() (string, error) {
	exts := make([]string, 0, len(domain.AllowedExtensions))
	for ext := range domain.AllowedExtensions {
		exts = append(exts, "."+ext)
	}
	sort.Strings(exts)

	startDir, _ := os.Getwd()
	var path string
	err := huh.NewForm(huh.NewGroup(
		huh.NewFilePicker().
			Title("Select a vendor file").
			Description("CSV, PDF, Word, spreadsheets, presentations or images").
			Picking(true).
			CurrentDirectory(startDir).
			ShowSize(true).
			Height(15).
			AllowedTypes(exts).
			Value(&path),
	)).WithTheme(huh.ThemeCatppuccin()).Run()
	return path, err
}

// askVision only prompts for document types where both modes apply.
func askVision(path string, current bool) (bool, error) {
	class, _, err := domain.ClassifyFile(path)
	if err != nil || class == domain.FileClassCSV || class == domain.FileClassImage {
		return current, nil
	}

	vision := current
	err = huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title("Parse pages as images?").
			Description("Better for scans, tables and business cards; slower than text parsing.").
			Affirmative("Yes").
			Negative("No, read the text").
			Value(&vision),
	)).WithTheme(huh.ThemeCatppuccin()).Run()
	return vision, err
}

func writeTemplate(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	if err := csvexport.WriteTemplate(f); err != nil {
		return fmt.Errorf("writing template: %w", err)
	}
	fmt.Println(renderResultLine("Template written to " + path))
	return nil
}

func writeVendors(path string, records []domain.ParsedVendorRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	if err := csvexport.WriteVendors(f, records); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Println(mutedStyle.Render(fmt.Sprintf("Extracted vendors saved to %s", path)))
	return nil
}

func renderResultLine(msg string) string {
	return boxStyle.BorderForeground(colorSuccess).Foreground(colorSuccess).Render(msg)
}
