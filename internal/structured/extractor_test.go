package structured_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"upkeep/internal/domain"
	"upkeep/internal/port"
	"upkeep/internal/structured"
	"upkeep/mocks"
)

func newExtractor(t *testing.T, client port.AIClient) *structured.Extractor {
	t.Helper()
	e, err := structured.NewExtractor(client)
	require.NoError(t, err)
	return e
}

func reply(text string) *port.CompletionResponse {
	return &port.CompletionResponse{Text: text, ModelUsed: "test"}
}

func promptContains(s string) interface{} {
	return mock.MatchedBy(func(req port.CompletionRequest) bool {
		return strings.Contains(req.Prompt, s)
	})
}

func TestExtractBlocks_UnavailableFailsFastWithoutCalls(t *testing.T) {
	client := new(mocks.MockAIClient)
	client.On("IsAvailable").Return(false)

	records, err := newExtractor(t, client).ExtractBlocks(context.Background(), []string{"Acme Plumbing"})

	assert.ErrorIs(t, err, domain.ErrAIUnavailable)
	assert.Nil(t, records)
	client.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestExtractImages_UnavailableFailsFastWithoutCalls(t *testing.T) {
	client := new(mocks.MockAIClient)
	client.On("IsAvailable").Return(false)

	_, err := newExtractor(t, client).ExtractImages(context.Background(), []port.ImageInput{{Bytes: []byte{1}, ContentType: "image/png"}})

	assert.ErrorIs(t, err, domain.ErrAIUnavailable)
	client.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestExtractBlocks_ParsesWrappedJSON(t *testing.T) {
	client := new(mocks.MockAIClient)
	client.On("IsAvailable").Return(true)
	client.On("Complete", mock.Anything, promptContains("Acme Plumbing")).Return(reply(
		"Sure! Here is the vendor:\n```json\n{\"name\": \"Acme <b>Plumbing</b> &amp; Heating\", \"email\": \"a@acme.com\", \"phone\": \"555-1234\", \"address\": null, \"contact_person\": \"\", \"description\": \"Pipes\"}\n```\nLet me know!",
	), nil)

	records, err := newExtractor(t, client).ExtractBlocks(context.Background(), []string{"Acme Plumbing\na@acme.com"})

	require.NoError(t, err)
	require.Len(t, records, 1)
	r := records[0]
	assert.False(t, r.ErrorFlag)
	assert.Equal(t, "Acme Plumbing & Heating", r.Name)
	assert.Equal(t, "a@acme.com", r.Email)
	assert.Equal(t, "", r.Address)
	assert.Equal(t, domain.VendorTypeService, r.VendorType)
	assert.Equal(t, domain.VendorStatusActive, r.Status)
	assert.Equal(t, "text-block-1", r.Source)
}

func TestExtractBlocks_FailuresBecomeFlaggedPlaceholders(t *testing.T) {
	client := new(mocks.MockAIClient)
	client.On("IsAvailable").Return(true)
	client.On("Complete", mock.Anything, promptContains("first")).Return(nil, errors.New("provider down"))
	client.On("Complete", mock.Anything, promptContains("second")).Return(reply("I could not find a vendor."), nil)
	client.On("Complete", mock.Anything, promptContains("third")).Return(reply(`{"name": "", "email": "x@y.z"}`), nil)
	client.On("Complete", mock.Anything, promptContains("fourth")).Return(reply(`{"name": 42}`), nil)
	client.On("Complete", mock.Anything, promptContains("fifth")).Return(reply(`{"name": "Bolt Electric"}`), nil)

	records, err := newExtractor(t, client).ExtractBlocks(context.Background(), []string{"first", "second", "third", "fourth", "fifth"})

	require.NoError(t, err)
	require.Len(t, records, 5)
	assert.True(t, records[0].ErrorFlag)
	assert.Contains(t, records[0].ErrorMessage, "provider down")
	assert.True(t, records[1].ErrorFlag)
	assert.True(t, records[2].ErrorFlag)
	assert.Equal(t, "missing vendor name", records[2].ErrorMessage)
	assert.True(t, records[3].ErrorFlag)
	assert.Contains(t, records[3].ErrorMessage, "schema")
	assert.False(t, records[4].ErrorFlag)
	assert.Equal(t, "Bolt Electric", records[4].Name)
	assert.Equal(t, "text-block-5", records[4].Source)
}

func TestExtractBlocks_ProcessesSequentiallyInOrder(t *testing.T) {
	var order []string
	client := new(mocks.MockAIClient)
	client.On("IsAvailable").Return(true)
	client.On("Complete", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		req := args.Get(1).(port.CompletionRequest)
		order = append(order, req.Prompt[len(req.Prompt)-1:])
	}).Return(reply(`{"name":"V"}`), nil)

	_, err := newExtractor(t, client).ExtractBlocks(context.Background(), []string{"block a", "block b", "block c"})

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestExtractBlocks_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	client := new(mocks.MockAIClient)
	client.On("IsAvailable").Return(true)
	client.On("Complete", mock.Anything, mock.Anything).Run(func(mock.Arguments) { cancel() }).Return(reply(`{"name":"V"}`), nil).Once()

	records, err := newExtractor(t, client).ExtractBlocks(ctx, []string{"one", "two", "three"})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, records, 1)
	client.AssertNumberOfCalls(t, "Complete", 1)
}

func TestExtractImages_ParsesArrayWithFullFields(t *testing.T) {
	client := new(mocks.MockAIClient)
	client.On("IsAvailable").Return(true)
	client.On("Complete", mock.Anything, mock.MatchedBy(func(req port.CompletionRequest) bool {
		return len(req.Images) == 1 && req.Images[0].ContentType == "image/png"
	})).Return(reply(`Here you go: [
		{"name": "Acme", "email": "a@acme.com", "vendor_type": "Supplier", "rating": 4, "city": "Springfield"},
		{"name": "Bolt", "rating": "9", "status": "SUSPENDED"},
		"junk",
		{"email": "nobody@x.com"}
	]`), nil)

	records, err := newExtractor(t, client).ExtractImages(context.Background(), []port.ImageInput{{Bytes: []byte{1}, ContentType: "image/png"}})

	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, "Acme", records[0].Name)
	assert.Equal(t, domain.VendorTypeSupplier, records[0].VendorType)
	require.NotNil(t, records[0].Rating)
	assert.Equal(t, 4, *records[0].Rating)
	assert.Equal(t, "Springfield", records[0].City)
	assert.Equal(t, "vision-page-1", records[0].Source)

	assert.False(t, records[1].ErrorFlag)
	assert.Nil(t, records[1].Rating)
	assert.Equal(t, domain.VendorStatusSuspended, records[1].Status)

	assert.True(t, records[2].ErrorFlag)
	assert.True(t, records[3].ErrorFlag)
}

func TestExtractImages_EmptyArrayAndPageFailure(t *testing.T) {
	client := new(mocks.MockAIClient)
	client.On("IsAvailable").Return(true)
	client.On("Complete", mock.Anything, mock.Anything).Return(reply("[]"), nil).Once()
	client.On("Complete", mock.Anything, mock.Anything).Return(nil, errors.New("timeout")).Once()
	client.On("Complete", mock.Anything, mock.Anything).Return(reply(`{"name": "Solo Vendor"}`), nil).Once()

	images := []port.ImageInput{
		{Bytes: []byte{1}, ContentType: "image/png"},
		{Bytes: []byte{2}, ContentType: "image/png"},
		{Bytes: []byte{3}, ContentType: "image/png"},
	}
	records, err := newExtractor(t, client).ExtractImages(context.Background(), images)

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.True(t, records[0].ErrorFlag)
	assert.Equal(t, "vision-page-2", records[0].Source)
	assert.Equal(t, "Solo Vendor", records[1].Name)
	assert.Equal(t, "vision-page-3", records[1].Source)
}
