package models

import "time"

// CatalogAttachment is a downloadable or previewable course material.
type CatalogAttachment struct {
	ID                    string  `json:"id"`
	Category              string  `json:"category"`
	CategoryDisplay       string  `json:"category_display"`
	CategoryOrder         *int    `json:"category_order,omitempty"`
	ItemName              *string `json:"item_name,omitempty"`
	ItemLabel             *string `json:"item_label,omitempty"`
	Label                 string  `json:"label"`
	Filename              string  `json:"filename"`
	FileType              string  `json:"file_type"`
	MediaURL              *string `json:"media_url,omitempty"`
	PreviewURL            *string `json:"preview_url,omitempty"`
	DownloadURL           *string `json:"download_url,omitempty"`
	HTMLPreviewURL        *string `json:"html_preview_url,omitempty"`
	OrigName              *string `json:"orig_name,omitempty"`
	SupportsInlinePreview *bool   `json:"supports_inline_preview,omitempty"`
}

// ExperimentBucket groups attachments of one experiment category.
type ExperimentBucket struct {
	Category        string              `json:"category"`
	CategoryDisplay string              `json:"category_display"`
	Order           int                 `json:"order"`
	Items           []CatalogAttachment `json:"items"`
	FilesCount      *int                `json:"files_count,omitempty"`
}

// SyncMarker tells up to which experiment the catalog is synced.
type SyncMarker struct {
	Order *int    `json:"order"`
	Label *string `json:"label"`
}

// MaterialsCatalog is the read-only catalog of course materials.
type MaterialsCatalog struct {
	UpdatedAt   *time.Time          `json:"updated_at"`
	SyncedTo    *SyncMarker         `json:"synced_to"`
	Experiments []ExperimentBucket  `json:"experiments"`
	Videos      []CatalogAttachment `json:"videos"`
	Books       []CatalogAttachment `json:"books"`
}

// HTMLPreview is the reply of an attachment's html preview url.
type HTMLPreview struct {
	HTML string `json:"html"`
}
