package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"mime"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"upkeep/internal/config"
	"upkeep/internal/convert"
	"upkeep/internal/csvimport"
	"upkeep/internal/domain"
	"upkeep/internal/extract"
	"upkeep/internal/port"
	"upkeep/internal/segment"
	"upkeep/internal/structured"
)

// PreviewInput is the DTO for running an uploaded file through extraction.
type PreviewInput struct {
	FileName  string
	Data      []byte
	UseVision bool
}

// Preview is the extraction result shown to the user before confirming.
type Preview struct {
	ImportID  uuid.UUID                   `json:"import_id"`
	FileName  string                      `json:"file_name"`
	FileClass domain.FileClass            `json:"file_class"`
	Records   []domain.ParsedVendorRecord `json:"records"`
	Skipped   int                         `json:"skipped"`
	Trace     []extract.Attempt           `json:"-"`
}

// ImportService defines the vendor import contract.
type ImportService interface {
	Classify(fileName string) (domain.FileClass, domain.Format, error)
	Preview(ctx context.Context, input PreviewInput) (*Preview, error)
	Dedupe(records []domain.ParsedVendorRecord) []domain.ParsedVendorRecord
	Import(ctx context.Context, records []domain.ParsedVendorRecord) domain.ImportResult
	PreviewAndImport(ctx context.Context, input PreviewInput) (*Preview, domain.ImportResult, error)
}

type importService struct {
	vendors    port.VendorCreator
	client     port.AIClient
	rasterizer port.Rasterizer
	storage    port.ObjectStorage
	converter  *convert.Converter
	chain      *extract.Chain
	extractor  *structured.Extractor
	cfg        *config.Config
}

// NewImportService creates a new ImportService implementation. storage may
// be nil, in which case uploads are never archived.
func NewImportService(
	vendors port.VendorCreator,
	client port.AIClient,
	rasterizer port.Rasterizer,
	ocr port.OCREngine,
	storage port.ObjectStorage,
	cfg *config.Config,
) (ImportService, error) {
	extractor, err := structured.NewExtractor(client)
	if err != nil {
		return nil, fmt.Errorf("building structured extractor: %w", err)
	}
	opts := extract.Options{
		MinTextChars: cfg.Extract.MinTextChars,
		Zoom:         cfg.Extract.Zoom,
		MaxPages:     cfg.Extract.MaxPages,
	}
	converter := convert.New(
		cfg.Extract.CanvasWidthPx,
		cfg.Extract.CanvasMaxHeightPx,
		cfg.Extract.MaxPages,
		convert.NewDocxTextExtractor(cfg.Extract.DocxMinChars),
	)
	return &importService{
		vendors:    vendors,
		client:     client,
		rasterizer: rasterizer,
		storage:    storage,
		converter:  converter,
		chain:      extract.NewPDFChain(opts, client, rasterizer, ocr),
		extractor:  extractor,
		cfg:        cfg,
	}, nil
}

func (s *importService) Classify(fileName string) (domain.FileClass, domain.Format, error) {
	class, format, err := domain.ClassifyFile(fileName)
	if err != nil {
		return "", "", fmt.Errorf("%w: %q", err, fileName)
	}
	return class, format, nil
}

func (s *importService) Preview(ctx context.Context, input PreviewInput) (*Preview, error) {
	class, format, err := s.Classify(input.FileName)
	if err != nil {
		return nil, err
	}
	if len(input.Data) == 0 {
		return nil, domain.ErrEmptyFile
	}
	if int64(len(input.Data)) > s.cfg.Import.MaxFileSizeBytes() {
		return nil, domain.ErrFileTooLarge
	}
	if class != domain.FileClassCSV && !s.client.IsAvailable() {
		return nil, domain.ErrAIUnavailable
	}

	preview := &Preview{
		ImportID:  uuid.New(),
		FileName:  input.FileName,
		FileClass: class,
	}
	log.Printf("importService.Preview: import %s file %s (%s/%s, %d bytes, vision=%t)",
		preview.ImportID, input.FileName, class, format, len(input.Data), input.UseVision)

	s.archive(ctx, preview.ImportID, input)

	records, trace, err := s.extract(ctx, class, format, input)
	preview.Trace = trace
	if err != nil {
		return nil, err
	}

	usable := make([]domain.ParsedVendorRecord, 0, len(records))
	for _, r := range records {
		if r.ErrorFlag {
			preview.Skipped++
			continue
		}
		usable = append(usable, r)
	}
	preview.Records = Dedupe(usable)

	log.Printf("importService.Preview: import %s extracted %d records (%d flagged, %d after dedupe)",
		preview.ImportID, len(records), preview.Skipped, len(preview.Records))

	if len(preview.Records) == 0 {
		return preview, domain.ErrNoVendorsFound
	}
	return preview, nil
}

func (s *importService) extract(ctx context.Context, class domain.FileClass, format domain.Format, input PreviewInput) ([]domain.ParsedVendorRecord, []extract.Attempt, error) {
	ext := domain.Extension(input.FileName)

	switch class {
	case domain.FileClassCSV:
		return csvimport.Parse(input.Data), nil, nil

	case domain.FileClassImage:
		img, err := convert.NormalizeImage(ext, input.Data)
		if err != nil {
			return nil, nil, err
		}
		records, err := s.extractor.ExtractImages(ctx, []port.ImageInput{img})
		return records, nil, err

	case domain.FileClassDocx:
		if input.UseVision {
			images, err := s.converter.DocxToImages(input.Data)
			if err != nil {
				return nil, nil, err
			}
			records, err := s.extractor.ExtractImages(ctx, images)
			return records, nil, err
		}
		text, err := s.converter.DocxText(input.Data)
		if err != nil {
			return nil, nil, err
		}
		records, err := s.extractText(ctx, text)
		return records, nil, err
	}

	if format == domain.FormatPDF {
		return s.extractPDF(ctx, input)
	}

	if input.UseVision {
		images, err := s.converter.DocumentToImages(format, ext, input.Data)
		if err != nil {
			return nil, nil, err
		}
		records, err := s.extractor.ExtractImages(ctx, images)
		return records, nil, err
	}
	text, err := s.converter.DocumentText(format, ext, input.Data)
	if err != nil {
		return nil, nil, err
	}
	records, err := s.extractText(ctx, text)
	return records, nil, err
}

// extractPDF vision-parses each rasterized page when vision is requested and
// otherwise runs the text extraction chain followed by segmentation.
func (s *importService) extractPDF(ctx context.Context, input PreviewInput) ([]domain.ParsedVendorRecord, []extract.Attempt, error) {
	pages, err := s.rasterizer.PageCount(ctx, input.Data)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}
	log.Printf("importService.extractPDF: %s has %d pages", input.FileName, pages)

	if input.UseVision {
		raw, err := s.rasterizer.Rasterize(ctx, input.Data, s.cfg.Extract.Zoom, s.cfg.Extract.MaxPages)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
		}
		images := make([]port.ImageInput, len(raw))
		for i, png := range raw {
			images[i] = port.ImageInput{Bytes: png, ContentType: "image/png"}
		}
		records, err := s.extractor.ExtractImages(ctx, images)
		return records, nil, err
	}

	text, trace, err := s.chain.RunPDF(ctx, input.Data)
	if err != nil {
		if ctx.Err() != nil {
			return nil, trace, ctx.Err()
		}
		return nil, trace, fmt.Errorf("%w: %w", domain.ErrExtractionFailed, err)
	}
	records, err := s.extractText(ctx, text)
	return records, trace, err
}

func (s *importService) extractText(ctx context.Context, text string) ([]domain.ParsedVendorRecord, error) {
	blocks := segment.Split(text, segment.Options{
		BlankLineRun:  s.cfg.Segment.BlankLineRun,
		MinBlockChars: s.cfg.Segment.MinBlockChars,
	})
	log.Printf("importService.extractText: %d chars segmented into %d blocks", len(text), len(blocks))
	if len(blocks) == 0 {
		return nil, nil
	}
	return s.extractor.ExtractBlocks(ctx, segment.Texts(blocks))
}

// archive stores the uploaded source under vendor-imports/<import_id>/.
// Failures are logged and never abort the preview.
func (s *importService) archive(ctx context.Context, importID uuid.UUID, input PreviewInput) {
	if s.storage == nil || !s.cfg.Import.ArchiveUploads {
		return
	}
	contentType := mime.TypeByExtension("." + domain.Extension(input.FileName))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	key := fmt.Sprintf("vendor-imports/%s/%s", importID, input.FileName)
	_, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.S3.Bucket,
		Key:         key,
		Body:        bytes.NewReader(input.Data),
		ContentType: contentType,
		Size:        int64(len(input.Data)),
	})
	if err != nil {
		log.Printf("importService.archive: upload of %s failed: %v", key, err)
	}
}

func (s *importService) Dedupe(records []domain.ParsedVendorRecord) []domain.ParsedVendorRecord {
	return Dedupe(records)
}

// Dedupe drops records whose case-insensitive (name, email) pair was already
// seen. The first occurrence wins and order is preserved.
func Dedupe(records []domain.ParsedVendorRecord) []domain.ParsedVendorRecord {
	seen := make(map[string]struct{}, len(records))
	out := make([]domain.ParsedVendorRecord, 0, len(records))
	for _, r := range records {
		key := r.DedupeKey()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out
}

// Import writes every record with its own CreateVendor call. All calls run
// concurrently (bounded by import.write_concurrency when set) and each
// outcome is recorded independently; nothing is rolled back.
func (s *importService) Import(ctx context.Context, records []domain.ParsedVendorRecord) domain.ImportResult {
	errs := make([]error, len(records))
	normalized := make([]domain.ParsedVendorRecord, len(records))

	var g errgroup.Group
	if s.cfg.Import.WriteConcurrency > 0 {
		g.SetLimit(s.cfg.Import.WriteConcurrency)
	}
	for i := range records {
		i := i
		normalized[i] = records[i]
		normalized[i].Normalize()
		g.Go(func() error {
			errs[i] = s.create(ctx, &normalized[i])
			return nil
		})
	}
	_ = g.Wait()

	result := domain.ImportResult{Total: len(records)}
	for i, err := range errs {
		if err == nil {
			result.Successful++
			continue
		}
		result.Failed++
		result.Failures = append(result.Failures, domain.ImportFailure{
			Index: i,
			Name:  normalized[i].Name,
			Error: err.Error(),
		})
	}
	log.Printf("importService.Import: %d/%d created, %d failed", result.Successful, result.Total, result.Failed)
	return result
}

func (s *importService) create(ctx context.Context, rec *domain.ParsedVendorRecord) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("creating vendor %q: panic: %v", rec.Name, r)
		}
	}()
	if rec.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidVendor)
	}
	if err := s.vendors.CreateVendor(ctx, rec); err != nil {
		if !errors.Is(err, domain.ErrDuplicateVendor) {
			log.Printf("importService.Import: creating vendor %q failed: %v", rec.Name, err)
		}
		return err
	}
	return nil
}

func (s *importService) PreviewAndImport(ctx context.Context, input PreviewInput) (*Preview, domain.ImportResult, error) {
	preview, err := s.Preview(ctx, input)
	if err != nil {
		return preview, domain.ImportResult{}, err
	}
	return preview, s.Import(ctx, preview.Records), nil
}
