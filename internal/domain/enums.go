package domain

import (
	"path/filepath"
	"strings"
)

// FileClass decides which import pipeline runs for an uploaded file.
type FileClass string

const (
	FileClassCSV      FileClass = "csv"
	FileClassImage    FileClass = "image"
	FileClassDocx     FileClass = "docx"
	FileClassDocument FileClass = "document" // pdf or any other office document
)

// Format narrows FileClassDocument down to the converter that handles it.
type Format string

const (
	FormatCSV         Format = "csv"
	FormatImage       Format = "image"
	FormatDocx        Format = "docx"
	FormatPDF         Format = "pdf"
	FormatText        Format = "text"
	FormatSpreadsheet Format = "spreadsheet"
	FormatOffice      Format = "office"
)

type extensionInfo struct {
	Class  FileClass
	Format Format
}

// AllowedExtensions maps file extensions (without dot) to their classification.
var AllowedExtensions = map[string]extensionInfo{
	"csv":  {FileClassCSV, FormatCSV},
	"jpg":  {FileClassImage, FormatImage},
	"jpeg": {FileClassImage, FormatImage},
	"png":  {FileClassImage, FormatImage},
	"gif":  {FileClassImage, FormatImage},
	"bmp":  {FileClassImage, FormatImage},
	"webp": {FileClassImage, FormatImage},
	"docx": {FileClassDocx, FormatDocx},
	"pdf":  {FileClassDocument, FormatPDF},
	"txt":  {FileClassDocument, FormatText},
	"xlsx": {FileClassDocument, FormatSpreadsheet},
	"xls":  {FileClassDocument, FormatSpreadsheet},
	"doc":  {FileClassDocument, FormatOffice},
	"rtf":  {FileClassDocument, FormatOffice},
	"odt":  {FileClassDocument, FormatOffice},
	"ppt":  {FileClassDocument, FormatOffice},
	"pptx": {FileClassDocument, FormatOffice},
}

// ImageContentTypes maps image extensions to the MIME type sent to vision models.
var ImageContentTypes = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"bmp":  "image/bmp",
	"webp": "image/webp",
}

// Extension returns the lower-cased extension of name without the leading dot.
func Extension(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}

// ClassifyFile derives the pipeline for a file purely from its extension.
func ClassifyFile(name string) (FileClass, Format, error) {
	info, ok := AllowedExtensions[Extension(name)]
	if !ok {
		return "", "", ErrUnsupportedFileType
	}
	return info.Class, info.Format, nil
}

// VendorType is the kind of business a vendor is.
type VendorType string

const (
	VendorTypeService    VendorType = "service"
	VendorTypeSupplier   VendorType = "supplier"
	VendorTypeContractor VendorType = "contractor"
	VendorTypeConsultant VendorType = "consultant"
)

// Valid reports whether t is one of the known vendor types.
func (t VendorType) Valid() bool {
	switch t {
	case VendorTypeService, VendorTypeSupplier, VendorTypeContractor, VendorTypeConsultant:
		return true
	}
	return false
}

// VendorStatus is the lifecycle state of a vendor.
type VendorStatus string

const (
	VendorStatusActive    VendorStatus = "active"
	VendorStatusInactive  VendorStatus = "inactive"
	VendorStatusSuspended VendorStatus = "suspended"
)

// Valid reports whether s is one of the known vendor statuses.
func (s VendorStatus) Valid() bool {
	switch s {
	case VendorStatusActive, VendorStatusInactive, VendorStatusSuspended:
		return true
	}
	return false
}

// ImportStatus summarises an ImportResult for the UI.
type ImportStatus string

const (
	ImportStatusSuccess ImportStatus = "success"
	ImportStatusWarning ImportStatus = "warning"
	ImportStatusError   ImportStatus = "error"
)
