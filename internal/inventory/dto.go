package inventory

// ItemDTO is the wire shape of an inventory item: camelCase keys, calendar
// dates as YYYY-MM-DD strings, optional fields as JSON null when absent.
type ItemDTO struct {
	ID                string  `json:"id"`
	Type              string  `json:"type"`
	Brand             string  `json:"brand"`
	Model             *string `json:"model"`
	Serial            string  `json:"serial"`
	Status            string  `json:"status"`
	AssignedTo        *string `json:"assignedTo"`
	Location          *string `json:"location"`
	Department        *string `json:"department"`
	SubArea           *string `json:"subArea"`
	RegisteredAt      string  `json:"registeredAt"`
	LastMaintenanceAt *string `json:"lastMaintenanceAt"`
	Image             *string `json:"image"`
	ImageThumbnail    *string `json:"imageThumbnail"`
	ImageDeleteURL    *string `json:"imageDeleteUrl"`
}

// ImageData carries the hosted or local locations for an item's image. The
// thumbnail and delete URL only exist when the external host produced them.
type ImageData struct {
	URL          string
	ThumbnailURL *string
	DeleteURL    *string
}

// UpsertItemInput is the validated payload for create and full-update calls.
// Omitted optional image fields fall back to the stored values on update.
type UpsertItemInput struct {
	Type              string
	Brand             string
	Model             *string
	Serial            string
	Status            string
	AssignedTo        *string
	Location          *string
	Department        *string
	SubArea           *string
	RegisteredAt      *string
	LastMaintenanceAt *string
	Image             *ImageData
}
