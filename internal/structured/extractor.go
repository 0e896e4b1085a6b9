// Package structured turns vendor text blocks and page images into
// ParsedVendorRecords through an AI model.
package structured

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"log"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"upkeep/internal/ai"
	"upkeep/internal/domain"
	"upkeep/internal/port"
)

var errNoJSON = errors.New("no JSON found in model response")

// Extractor calls the AI client once per block or image, strictly in order.
// Failures on one input become flagged placeholder records; they never stop
// the remaining inputs.
type Extractor struct {
	client       port.AIClient
	blockSchema  *jsonschema.Schema
	vendorSchema *jsonschema.Schema
	policy       *bluemonday.Policy
}

// NewExtractor builds an Extractor around client.
func NewExtractor(client port.AIClient) (*Extractor, error) {
	bs, err := compileSchema("block.json", blockSchema)
	if err != nil {
		return nil, err
	}
	vs, err := compileSchema("vendor.json", vendorSchema)
	if err != nil {
		return nil, err
	}
	return &Extractor{
		client:       client,
		blockSchema:  bs,
		vendorSchema: vs,
		policy:       bluemonday.StrictPolicy(),
	}, nil
}

// ExtractBlocks runs text-mode extraction, one record per block.
func (e *Extractor) ExtractBlocks(ctx context.Context, blocks []string) ([]domain.ParsedVendorRecord, error) {
	if !e.client.IsAvailable() {
		return nil, domain.ErrAIUnavailable
	}

	records := make([]domain.ParsedVendorRecord, 0, len(blocks))
	for i, block := range blocks {
		if err := ctx.Err(); err != nil {
			return records, err
		}
		source := fmt.Sprintf("text-block-%d", i+1)

		rec, err := e.extractBlock(ctx, block)
		if err != nil {
			if ctx.Err() != nil {
				return records, ctx.Err()
			}
			if errors.Is(err, domain.ErrAIUnavailable) {
				return records, err
			}
			log.Printf("structured.Extractor.ExtractBlocks: %s: %v", source, err)
			rec = placeholder(err)
		}
		rec.Source = source
		records = append(records, rec)
	}
	return records, nil
}

// ExtractImages runs vision-mode extraction. Each image may yield any number
// of records; they are returned in image order.
func (e *Extractor) ExtractImages(ctx context.Context, images []port.ImageInput) ([]domain.ParsedVendorRecord, error) {
	if !e.client.IsAvailable() {
		return nil, domain.ErrAIUnavailable
	}

	var records []domain.ParsedVendorRecord
	for i, img := range images {
		if err := ctx.Err(); err != nil {
			return records, err
		}
		source := fmt.Sprintf("vision-page-%d", i+1)

		page, err := e.extractImage(ctx, img)
		if err != nil {
			if ctx.Err() != nil {
				return records, ctx.Err()
			}
			if errors.Is(err, domain.ErrAIUnavailable) {
				return records, err
			}
			log.Printf("structured.Extractor.ExtractImages: %s: %v", source, err)
			page = []domain.ParsedVendorRecord{placeholder(err)}
		}
		for j := range page {
			page[j].Source = source
		}
		records = append(records, page...)
	}
	return records, nil
}

func (e *Extractor) extractBlock(ctx context.Context, block string) (domain.ParsedVendorRecord, error) {
	resp, err := e.client.Complete(ctx, port.CompletionRequest{Prompt: ai.BuildVendorBlockPrompt(block)})
	if err != nil {
		return domain.ParsedVendorRecord{}, err
	}

	payload, ok := locate(resp.Text, '{', '}')
	if !ok {
		return domain.ParsedVendorRecord{}, errNoJSON
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(payload), &obj); err != nil {
		return domain.ParsedVendorRecord{}, fmt.Errorf("parsing model JSON: %w", err)
	}
	return e.toRecord(obj, e.blockSchema), nil
}

func (e *Extractor) extractImage(ctx context.Context, img port.ImageInput) ([]domain.ParsedVendorRecord, error) {
	resp, err := e.client.Complete(ctx, port.CompletionRequest{
		Prompt: ai.BuildVendorVisionPrompt(),
		Images: []port.ImageInput{img},
	})
	if err != nil {
		return nil, err
	}

	var items []any
	if payload, ok := locate(resp.Text, '[', ']'); ok {
		if err := json.Unmarshal([]byte(payload), &items); err != nil {
			return nil, fmt.Errorf("parsing model JSON: %w", err)
		}
	} else if payload, ok := locate(resp.Text, '{', '}'); ok {
		// A lone object is accepted as a one-vendor page.
		var obj any
		if err := json.Unmarshal([]byte(payload), &obj); err != nil {
			return nil, fmt.Errorf("parsing model JSON: %w", err)
		}
		items = []any{obj}
	} else {
		return nil, errNoJSON
	}

	records := make([]domain.ParsedVendorRecord, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			records = append(records, placeholder(fmt.Errorf("array element is %T, not an object", item)))
			continue
		}
		records = append(records, e.toRecord(obj, e.vendorSchema))
	}
	return records, nil
}

// toRecord validates obj, copies its fields into a normalised record and
// flags it when validation fails or the name is blank.
func (e *Extractor) toRecord(obj map[string]any, schema *jsonschema.Schema) domain.ParsedVendorRecord {
	rec := domain.ParsedVendorRecord{
		Name:          e.field(obj, "name"),
		Email:         e.field(obj, "email"),
		Phone:         e.field(obj, "phone"),
		ContactPerson: e.field(obj, "contact_person"),
		ContactTitle:  e.field(obj, "contact_title"),
		VendorType:    domain.VendorType(e.field(obj, "vendor_type")),
		Status:        domain.VendorStatus(e.field(obj, "status")),
		Address:       e.field(obj, "address"),
		City:          e.field(obj, "city"),
		State:         e.field(obj, "state"),
		ZipCode:       e.field(obj, "zip_code"),
		Website:       e.field(obj, "website"),
		Description:   e.field(obj, "description"),
		Rating:        rating(obj["rating"]),
	}
	rec.Normalize()

	if err := schema.Validate(obj); err != nil {
		rec.Flag(fmt.Sprintf("response does not match vendor schema: %v", err))
		return rec
	}
	if rec.Name == "" {
		rec.Flag("missing vendor name")
	}
	return rec
}

// field returns obj[key] as plain text with any markup removed.
func (e *Extractor) field(obj map[string]any, key string) string {
	s := stringify(obj[key])
	if s == "" {
		return ""
	}
	return html.UnescapeString(e.policy.Sanitize(s))
}

func placeholder(err error) domain.ParsedVendorRecord {
	rec := domain.NewParsedVendorRecord("")
	rec.Flag(err.Error())
	return rec
}

// locate returns the substring from the first open to the last close
// delimiter, dropping any prose the model wrapped around the JSON.
func locate(text string, open, closing byte) (string, bool) {
	start := strings.IndexByte(text, open)
	end := strings.LastIndexByte(text, closing)
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

func rating(v any) *int {
	var n int
	switch t := v.(type) {
	case float64:
		n = int(t)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return nil
		}
		n = parsed
	default:
		return nil
	}
	return &n
}
